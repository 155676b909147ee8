// Package integration exercises the built shipit binary end to end. The
// tests run against the demo provider so no credentials or network access
// are required.
package integration

import (
	"testing"

	"shipit.dev/shipit/internal/testhelper"
)

// shipitBinary returns the path to the shared shipit binary, building it on
// first use.
func shipitBinary(t *testing.T) string {
	t.Helper()
	path, err := testhelper.BinaryPath()
	if err != nil {
		t.Fatalf("failed to build shipit binary: %v", err)
	}
	return path
}
