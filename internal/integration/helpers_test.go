package integration

import (
	"os"
	"os/exec"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"shipit.dev/shipit/internal/tui"
	"shipit.dev/shipit/testhelpers"
)

// TestShell runs shipit commands the way a user would, in a scratch git
// repository with its own home directory. Configuration written by one test
// never leaks into another, and interactive prompts are switched off so a
// command that would block fails instead.
type TestShell struct {
	t          *testing.T
	repo       *testhelpers.GitRepo
	home       string
	binaryPath string
	overrides  map[string]string
	lastOutput string
}

// NewTestShell creates a shell around a fresh repository with one commit.
func NewTestShell(t *testing.T, binaryPath string) *TestShell {
	t.Helper()

	repo, err := testhelpers.NewGitRepo(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, repo.CreateChangeAndCommit("initial", "init"))

	shell := &TestShell{
		t:          t,
		repo:       repo,
		home:       t.TempDir(),
		binaryPath: binaryPath,
		overrides:  map[string]string{},
	}
	shell.Setenv("HOME", shell.home)
	shell.Setenv(tui.NoInteractiveEnv, "1")
	return shell
}

// Demo switches the shell into demo mode. Commands then run against the
// canned provider instead of resolving a real adapter.
func (s *TestShell) Demo() *TestShell {
	s.Setenv("SHIPIT_DEMO", "1")
	return s
}

// Setenv sets an environment variable for every command this shell runs.
func (s *TestShell) Setenv(key, value string) *TestShell {
	s.overrides[key] = value
	return s
}

// Dir returns the repository directory commands run in.
func (s *TestShell) Dir() string {
	return s.repo.Dir
}

// Repo returns the underlying repository for direct git access.
func (s *TestShell) Repo() *testhelpers.GitRepo {
	return s.repo
}

// Home returns the isolated home directory of this shell.
func (s *TestShell) Home() string {
	return s.home
}

// environ builds the child environment. Overridden keys are dropped from the
// inherited environment first; a duplicated key would win or lose depending
// on the child's runtime.
func (s *TestShell) environ() []string {
	env := make([]string, 0, len(s.overrides)+8)
	for _, kv := range os.Environ() {
		key, _, _ := strings.Cut(kv, "=")
		if _, overridden := s.overrides[key]; overridden {
			continue
		}
		env = append(env, kv)
	}
	for key, value := range s.overrides {
		env = append(env, key+"="+value)
	}
	return env
}

// Run executes a shipit command (e.g. "issue list --state all") and fails
// the test if it exits non-zero.
func (s *TestShell) Run(args string) *TestShell {
	s.t.Helper()
	cmd := exec.Command(s.binaryPath, splitArgs(args)...)
	cmd.Dir = s.repo.Dir
	cmd.Env = s.environ()
	output, err := cmd.CombinedOutput()
	s.lastOutput = string(output)
	require.NoError(s.t, err, "$ shipit %s\n%s", args, s.lastOutput)
	return s
}

// RunExpectError executes a shipit command and expects a non-zero exit.
func (s *TestShell) RunExpectError(args string) *TestShell {
	s.t.Helper()
	cmd := exec.Command(s.binaryPath, splitArgs(args)...)
	cmd.Dir = s.repo.Dir
	cmd.Env = s.environ()
	output, err := cmd.CombinedOutput()
	s.lastOutput = string(output)
	require.Error(s.t, err, "$ shipit %s (expected error)\n%s", args, s.lastOutput)
	return s
}

// Output returns the combined output of the last command.
func (s *TestShell) Output() string {
	return s.lastOutput
}

// OutputContains asserts the last output contains the given string.
func (s *TestShell) OutputContains(substr string) *TestShell {
	s.t.Helper()
	require.Contains(s.t, s.lastOutput, substr)
	return s
}

// OutputNotContains asserts the last output does not contain the given string.
func (s *TestShell) OutputNotContains(substr string) *TestShell {
	s.t.Helper()
	require.NotContains(s.t, s.lastOutput, substr)
	return s
}

// OnBranch asserts the repository has the expected branch checked out.
func (s *TestShell) OnBranch(expected string) *TestShell {
	s.t.Helper()
	branch, err := s.repo.CurrentBranchName()
	require.NoError(s.t, err)
	require.Equal(s.t, expected, branch)
	return s
}

// splitArgs splits a command string into args, respecting quotes.
func splitArgs(s string) []string {
	var args []string
	var current strings.Builder
	inQuote := false
	quoteChar := rune(0)

	for _, r := range s {
		switch {
		case r == '"' || r == '\'':
			switch {
			case inQuote && r == quoteChar:
				inQuote = false
			case !inQuote:
				inQuote = true
				quoteChar = r
			default:
				current.WriteRune(r)
			}
		case r == ' ' && !inQuote:
			if current.Len() > 0 {
				args = append(args, current.String())
				current.Reset()
			}
		default:
			current.WriteRune(r)
		}
	}
	if current.Len() > 0 {
		args = append(args, current.String())
	}
	return args
}
