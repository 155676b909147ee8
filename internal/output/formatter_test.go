package output

import (
	"testing"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"shipit.dev/shipit/internal/adapter"
)

func init() {
	// Strip color for all tests in this file so assertions see plain text
	lipgloss.SetColorProfile(termenv.Ascii)
}

func TestStateBadge(t *testing.T) {
	tests := []struct {
		state string
		want  string
	}{
		{state: "open", want: "open"},
		{state: "opened", want: "opened"},
		{state: "OPEN", want: "OPEN"},
		{state: "closed", want: "closed"},
		{state: "merged", want: "merged"},
		{state: "on hold", want: "on hold"},
	}

	for _, tt := range tests {
		t.Run(tt.state, func(t *testing.T) {
			require.Equal(t, tt.want, StateBadge(tt.state))
		})
	}
}

func TestFormatIssueLine(t *testing.T) {
	t.Run("renders number, state, title and metadata", func(t *testing.T) {
		line := FormatIssueLine(&adapter.IssueInfo{
			Number:   17,
			State:    "open",
			Title:    "Login button broken",
			Assignee: "cordoval",
			Labels:   []string{"bug", "ui"},
		})

		require.Contains(t, line, "#17")
		require.Contains(t, line, "open")
		require.Contains(t, line, "Login button broken")
		require.Contains(t, line, "@cordoval")
		require.Contains(t, line, "[bug, ui]")
	})

	t.Run("omits empty metadata", func(t *testing.T) {
		line := FormatIssueLine(&adapter.IssueInfo{Number: 1, State: "open", Title: "x"})
		require.NotContains(t, line, "@")
		require.NotContains(t, line, "[")
	})
}

func TestFormatIssueDetail(t *testing.T) {
	detail := FormatIssueDetail(&adapter.IssueInfo{
		Number:    3,
		Title:     "Crash on start",
		State:     "open",
		Author:    "someone",
		Milestone: "v1.0",
		Body:      "Steps to reproduce",
		HTMLURL:   "https://github.com/acme/widgets/issues/3",
	})

	require.Contains(t, detail, "#3")
	require.Contains(t, detail, "Crash on start")
	require.Contains(t, detail, "author:    someone")
	require.Contains(t, detail, "milestone: v1.0")
	require.Contains(t, detail, "Steps to reproduce")
}

func TestFormatPullRequestLine(t *testing.T) {
	t.Run("shows head and base branches", func(t *testing.T) {
		line := FormatPullRequestLine(&adapter.PullRequestInfo{
			Number: 42,
			State:  "open",
			Title:  "Add login form",
			Head:   "feature/login",
			Base:   "main",
		})

		require.Contains(t, line, "#42")
		require.Contains(t, line, "feature/login -> main")
	})

	t.Run("folds the merged flag into the state", func(t *testing.T) {
		line := FormatPullRequestLine(&adapter.PullRequestInfo{
			Number: 7,
			State:  "closed",
			Merged: true,
			Title:  "x",
		})
		require.Contains(t, line, "merged")
	})

	t.Run("marks drafts", func(t *testing.T) {
		line := FormatPullRequestLine(&adapter.PullRequestInfo{Number: 1, State: "open", Title: "x", Draft: true})
		require.Contains(t, line, "(draft)")
	})
}

func TestFormatReleaseLine(t *testing.T) {
	line := FormatReleaseLine(&adapter.ReleaseInfo{
		TagName:    "v1.2.0",
		Name:       "Spring release",
		Draft:      true,
		Prerelease: true,
		CreatedAt:  time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
	})

	require.Contains(t, line, "v1.2.0")
	require.Contains(t, line, "Spring release")
	require.Contains(t, line, "(draft)")
	require.Contains(t, line, "(prerelease)")
	require.Contains(t, line, "2024-03-01")
}

func TestFormatBranchLine(t *testing.T) {
	t.Run("shortens the sha", func(t *testing.T) {
		line := FormatBranchLine(&adapter.BranchInfo{
			Name: "feature/login",
			SHA:  "0123456789abcdef0123456789abcdef01234567",
		})
		require.Contains(t, line, "feature/login")
		require.Contains(t, line, "01234567")
		require.NotContains(t, line, "0123456789")
	})

	t.Run("handles a missing sha", func(t *testing.T) {
		require.Equal(t, "main", FormatBranchLine(&adapter.BranchInfo{Name: "main"}))
	})
}
