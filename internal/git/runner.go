// Package git wraps the git binary for working copy operations and go-git
// for the places where a structured view of the repository beats parsing
// porcelain output.
package git

import (
	"bytes"
	"context"
	"os/exec"
	"strings"
	"time"

	shipiterrors "shipit.dev/shipit/internal/errors"
)

// CommandTimeout bounds every git subprocess this package starts. The
// commands here are all local; one that runs longer than this has hung.
const CommandTimeout = 30 * time.Second

// CommandRunner executes git commands in a fixed working directory.
type CommandRunner struct {
	workingDir string
}

// NewCommandRunner returns a runner whose commands execute in workingDir.
func NewCommandRunner(workingDir string) *CommandRunner {
	return &CommandRunner{workingDir: workingDir}
}

// defaultRunner backs the package-level functions. The runtime points it at
// the working directory of the current invocation.
var defaultRunner = &CommandRunner{}

// SetWorkingDir sets the working directory for the default runner.
func SetWorkingDir(dir string) {
	defaultRunner.workingDir = dir
}

// Run executes a git command and returns its trimmed stdout. The command
// inherits the deadline of ctx, or CommandTimeout when ctx has none.
func (r *CommandRunner) Run(ctx context.Context, args ...string) (string, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if _, ok := ctx.Deadline(); !ok {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, CommandTimeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	if r.workingDir != "" {
		cmd.Dir = r.workingDir
	}
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			err = ctx.Err()
		}
		subcommand := "git"
		var rest []string
		if len(args) > 0 {
			subcommand = args[0]
			rest = args[1:]
		}
		return "", shipiterrors.NewGitCommandError(subcommand, rest, stdout.String(), stderr.String(), err)
	}

	return strings.TrimSpace(stdout.String()), nil
}

// RunGitCommandWithContext executes a git command with the default runner.
func RunGitCommandWithContext(ctx context.Context, args ...string) (string, error) {
	return defaultRunner.Run(ctx, args...)
}

// RunGitCommandInDir executes a git command in a specific directory.
func RunGitCommandInDir(ctx context.Context, dir string, args ...string) (string, error) {
	return NewCommandRunner(dir).Run(ctx, args...)
}
