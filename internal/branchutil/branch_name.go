// Package branchutil derives safe git branch names from free-form text such
// as issue titles.
package branchutil

import (
	"fmt"
	"regexp"
	"strings"
)

// MaxBranchNameByteLength caps generated branch names. Git itself allows
// longer refs, but some providers truncate around 244 bytes, so stay under
// that with room for a remote prefix.
const MaxBranchNameByteLength = 234

var (
	invalidBranchChars = regexp.MustCompile(`[^A-Za-z0-9._/\-]+`)
	hyphenRuns         = regexp.MustCompile(`-{2,}`)
)

// SanitizeBranchName reduces a string to characters git accepts in a ref
// name. Runs of invalid characters become a single hyphen, repeated hyphens
// collapse, and separators that would be illegal at the end of a ref are
// trimmed. The result may be empty.
func SanitizeBranchName(name string) string {
	sanitized := invalidBranchChars.ReplaceAllString(name, "-")
	sanitized = hyphenRuns.ReplaceAllString(sanitized, "-")
	sanitized = trimSeparators(sanitized)

	if len(sanitized) > MaxBranchNameByteLength {
		sanitized = trimSeparators(sanitized[:MaxBranchNameByteLength])
	}

	return sanitized
}

// trimSeparators removes leading and trailing hyphens plus trailing dots and
// slashes, repeating until nothing changes so one trim cannot expose another.
func trimSeparators(name string) string {
	for {
		trimmed := strings.Trim(name, "-")
		trimmed = strings.TrimRight(trimmed, "./")
		if trimmed == name {
			return name
		}
		name = trimmed
	}
}

// BranchNameForIssue builds the branch name used when adopting an issue,
// the issue number followed by a lowercased slug of its title.
func BranchNameForIssue(number int, title string) string {
	slug := SanitizeBranchName(strings.ToLower(strings.TrimSpace(title)))
	if slug == "" {
		return fmt.Sprintf("issue-%d", number)
	}
	return fmt.Sprintf("%d-%s", number, slug)
}
