// Package demo provides a simulated provider adapter for trying out the CLI
// without credentials or a real remote.
package demo

import (
	"time"

	"shipit.dev/shipit/internal/adapter"
)

// Owner and Repo name the pretend repository every demo command operates on.
const (
	Owner = "octocat"
	Repo  = "spoon-knife"
)

func demoTime(day, hour int) time.Time {
	return time.Date(2026, time.May, day, hour, 0, 0, 0, time.UTC)
}

func demoIssues() []*adapter.IssueInfo {
	return []*adapter.IssueInfo{
		{
			Number:    41,
			Title:     "Forks are stale after upstream rename",
			Body:      "Forks created before the rename still point at the old clone URL.",
			State:     "open",
			Author:    "hubot",
			Assignee:  "octocat",
			Labels:    []string{"bug"},
			HTMLURL:   "https://github.com/octocat/spoon-knife/issues/41",
			CreatedAt: demoTime(2, 9),
		},
		{
			Number:    42,
			Title:     "Document the fork workflow",
			Body:      "The README never explains what to do after forking.",
			State:     "open",
			Author:    "octocat",
			Labels:    []string{"documentation", "good first issue"},
			HTMLURL:   "https://github.com/octocat/spoon-knife/issues/42",
			CreatedAt: demoTime(3, 14),
		},
		{
			Number:    43,
			Title:     "CI badge points at the wrong branch",
			Body:      "Badge renders the status of main, the default branch is trunk.",
			State:     "closed",
			Author:    "hubot",
			Assignee:  "hubot",
			Labels:    []string{"bug", "ci"},
			HTMLURL:   "https://github.com/octocat/spoon-knife/issues/43",
			CreatedAt: demoTime(5, 11),
		},
	}
}

func demoPullRequests() []*adapter.PullRequestInfo {
	return []*adapter.PullRequestInfo{
		{
			Number:    50,
			Title:     "Explain the fork workflow in the README",
			Body:      "Adds a step by step fork guide.\n\nFixes #42",
			State:     "open",
			HTMLURL:   "https://github.com/octocat/spoon-knife/pull/50",
			Head:      "docs/fork-workflow",
			Base:      "main",
			Author:    "octocat",
			CreatedAt: demoTime(6, 10),
		},
		{
			Number:    51,
			Title:     "Switch CI badge to the default branch",
			Body:      "Fixes #43",
			State:     "closed",
			HTMLURL:   "https://github.com/octocat/spoon-knife/pull/51",
			Head:      "fix/ci-badge",
			Base:      "main",
			Author:    "hubot",
			Merged:    true,
			CreatedAt: demoTime(7, 16),
		},
		{
			Number:    52,
			Title:     "Experiment with a table of contents",
			Body:      "Not ready for review yet.",
			State:     "open",
			HTMLURL:   "https://github.com/octocat/spoon-knife/pull/52",
			Head:      "docs/toc",
			Base:      "main",
			Author:    "octocat",
			Draft:     true,
			CreatedAt: demoTime(9, 8),
		},
	}
}

func demoReleases() []*adapter.ReleaseInfo {
	return []*adapter.ReleaseInfo{
		{
			ID:        9001,
			TagName:   "v1.0.0",
			Name:      "First stable release",
			Body:      "The spoon and the knife, together at last.",
			HTMLURL:   "https://github.com/octocat/spoon-knife/releases/tag/v1.0.0",
			CreatedAt: demoTime(1, 12),
		},
		{
			ID:         9002,
			TagName:    "v1.1.0-rc.1",
			Name:       "Release candidate",
			Body:       "Trying out the new utensils.",
			Prerelease: true,
			HTMLURL:    "https://github.com/octocat/spoon-knife/releases/tag/v1.1.0-rc.1",
			CreatedAt:  demoTime(8, 12),
		},
	}
}

func demoBranches() []*adapter.BranchInfo {
	return []*adapter.BranchInfo{
		{Name: "main", SHA: "d0c9e2f3a4b5c6d7e8f90a1b2c3d4e5f6a7b8c9d"},
		{Name: "docs/fork-workflow", SHA: "a1b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0"},
		{Name: "docs/toc", SHA: "b2c3d4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0c1"},
		{Name: "fix/ci-badge", SHA: "c3d4e5f6a7b8c9d0e1f2a3b4c5d6e7f8a9b0c1d2"},
	}
}
