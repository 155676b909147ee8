//go:build darwin

// Package browser opens URLs in the user's default browser.
package browser

import (
	"os/exec"
)

// Open opens a URL in the default browser on macOS
func Open(url string) error {
	return exec.Command("open", url).Run()
}
