package git

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// CreateAndCheckoutBranch creates a new branch and checks it out
func CreateAndCheckoutBranch(ctx context.Context, branchName string) error {
	_, err := RunGitCommandWithContext(ctx, "checkout", "-b", branchName)
	if err != nil {
		return fmt.Errorf("failed to create and checkout branch %s: %w", branchName, err)
	}
	return nil
}

// CheckoutBranch checks out an existing branch
func CheckoutBranch(ctx context.Context, branchName string) error {
	_, err := RunGitCommandWithContext(ctx, "checkout", branchName)
	if err != nil {
		return fmt.Errorf("failed to checkout branch %s: %w", branchName, err)
	}
	return nil
}

// LocalBranchExists reports whether a local branch with the given name
// exists. A missing branch is not an error; only a failing git invocation is.
func LocalBranchExists(ctx context.Context, branchName string) (bool, error) {
	_, err := RunGitCommandWithContext(ctx, "rev-parse", "--verify", "--quiet", "refs/heads/"+branchName)
	if err == nil {
		return true, nil
	}

	// rev-parse --verify --quiet exits 1 for an unknown ref and louder for
	// real failures like not being in a repository.
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) && exitErr.ExitCode() == 1 {
		return false, nil
	}
	return false, err
}
