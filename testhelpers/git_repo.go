package testhelpers

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

const textFileName = "test.txt"

// GitRepo drives a real git repository for tests. It shells out to the git
// binary so test repositories behave exactly like user repositories.
type GitRepo struct {
	Dir string
}

// NewGitRepo runs 'git init' in dir with a deterministic configuration.
func NewGitRepo(dir string) (*GitRepo, error) {
	repo := &GitRepo{Dir: dir}

	cmd := exec.Command("git",
		"-c", "init.defaultBranch=main",
		"-c", "core.autocrlf=false",
		"-c", "core.fileMode=false",
		"init", dir, "-b", "main")
	cmd.Env = isolatedEnv()
	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to init repo: %w", err)
	}

	// Commits need an identity.
	if err := repo.run("config", "user.name", "Test User"); err != nil {
		return nil, err
	}
	return repo, repo.run("config", "user.email", "test@example.com")
}

// isolatedEnv hides the user's global git config from test repositories.
func isolatedEnv() []string {
	return append(os.Environ(), "GIT_CONFIG_GLOBAL=/dev/null")
}

func (r *GitRepo) run(args ...string) error {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = isolatedEnv()
	if os.Getenv("DEBUG") != "" {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}
	return cmd.Run()
}

func (r *GitRepo) capture(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = r.Dir
	cmd.Env = isolatedEnv()
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("git %s: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(string(out)), nil
}

// CreateChangeAndCommit writes content to the shared test file, stages it and
// commits.
func (r *GitRepo) CreateChangeAndCommit(content string, message string) error {
	path := filepath.Join(r.Dir, textFileName)
	if err := os.WriteFile(path, []byte(content+"\n"), 0644); err != nil {
		return err
	}
	if err := r.run("add", "."); err != nil {
		return fmt.Errorf("failed to stage changes: %w", err)
	}
	if err := r.run("commit", "-m", message); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	return nil
}

// SetRemoteOriginURL points the 'origin' remote at the given URL, adding the
// remote if it does not exist yet.
func (r *GitRepo) SetRemoteOriginURL(url string) error {
	if err := r.run("remote", "add", "origin", url); err == nil {
		return nil
	}
	return r.run("remote", "set-url", "origin", url)
}

// CreateAndCheckoutBranch creates a new branch and checks it out.
func (r *GitRepo) CreateAndCheckoutBranch(name string) error {
	return r.run("checkout", "-b", name)
}

// CheckoutBranch checks out an existing branch.
func (r *GitRepo) CheckoutBranch(name string) error {
	return r.run("checkout", name)
}

// CurrentBranchName returns the name of the currently checked out branch.
func (r *GitRepo) CurrentBranchName() (string, error) {
	return r.capture("branch", "--show-current")
}
