// Package tui provides the interactive terminal prompts used by shipit
// commands.
package tui

import (
	"os"

	"github.com/mattn/go-isatty"
)

// IsTTY reports whether stdin and stdout are both attached to a usable
// terminal.
func IsTTY() bool {
	if !isTerminal(os.Stdin) || !isTerminal(os.Stdout) {
		return false
	}
	// Some environments report a terminal on the std fds but have no
	// controlling TTY to read keystrokes from.
	f, err := os.OpenFile("/dev/tty", os.O_RDWR, 0)
	if err != nil {
		return false
	}
	f.Close()
	return true
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Interactive reports whether prompts may be shown at all: a usable TTY and
// no test escape hatch.
func Interactive() bool {
	return IsTTY() && os.Getenv(NoInteractiveEnv) == ""
}
