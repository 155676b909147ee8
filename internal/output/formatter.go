package output

import (
	"fmt"
	"strings"

	"shipit.dev/shipit/internal/adapter"
)

// StateBadge renders an issue or pull request state with its usual color.
// Providers disagree on state names, so the common ones are folded together.
func StateBadge(state string) string {
	switch strings.ToLower(state) {
	case "open", "opened", "new":
		return ColorGreen(state)
	case "closed", "declined", "resolved":
		return ColorRed(state)
	case "merged":
		return ColorMagenta(state)
	default:
		return ColorYellow(state)
	}
}

// FormatIssueLine renders one issue for list output.
func FormatIssueLine(issue *adapter.IssueInfo) string {
	parts := []string{
		ColorDim(fmt.Sprintf("#%-5d", issue.Number)),
		StateBadge(issue.State),
		issue.Title,
	}
	if issue.Assignee != "" {
		parts = append(parts, ColorDim("@"+issue.Assignee))
	}
	if len(issue.Labels) > 0 {
		parts = append(parts, ColorMagenta("["+strings.Join(issue.Labels, ", ")+"]"))
	}
	return strings.Join(parts, " ")
}

// FormatIssueDetail renders a full issue for show output.
func FormatIssueDetail(issue *adapter.IssueInfo) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", Bold(fmt.Sprintf("#%d", issue.Number)), Bold(issue.Title))
	fmt.Fprintf(&b, "state:     %s\n", StateBadge(issue.State))
	if issue.Author != "" {
		fmt.Fprintf(&b, "author:    %s\n", issue.Author)
	}
	if issue.Assignee != "" {
		fmt.Fprintf(&b, "assignee:  %s\n", issue.Assignee)
	}
	if issue.Milestone != "" {
		fmt.Fprintf(&b, "milestone: %s\n", issue.Milestone)
	}
	if len(issue.Labels) > 0 {
		fmt.Fprintf(&b, "labels:    %s\n", strings.Join(issue.Labels, ", "))
	}
	if issue.HTMLURL != "" {
		fmt.Fprintf(&b, "url:       %s\n", ColorCyan(issue.HTMLURL))
	}
	if issue.Body != "" {
		fmt.Fprintf(&b, "\n%s\n", issue.Body)
	}

	return b.String()
}

// FormatPullRequestLine renders one pull request for list output.
func FormatPullRequestLine(pr *adapter.PullRequestInfo) string {
	parts := []string{
		ColorDim(fmt.Sprintf("#%-5d", pr.Number)),
		StateBadge(prDisplayState(pr)),
		pr.Title,
		ColorDim(fmt.Sprintf("%s -> %s", pr.Head, pr.Base)),
	}
	if pr.Draft {
		parts = append(parts, ColorYellow("(draft)"))
	}
	return strings.Join(parts, " ")
}

// FormatPullRequestDetail renders a full pull request for show output.
func FormatPullRequestDetail(pr *adapter.PullRequestInfo) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n", Bold(fmt.Sprintf("#%d", pr.Number)), Bold(pr.Title))
	fmt.Fprintf(&b, "state:    %s\n", StateBadge(prDisplayState(pr)))
	fmt.Fprintf(&b, "branches: %s -> %s\n", pr.Head, pr.Base)
	if pr.Author != "" {
		fmt.Fprintf(&b, "author:   %s\n", pr.Author)
	}
	if pr.HTMLURL != "" {
		fmt.Fprintf(&b, "url:      %s\n", ColorCyan(pr.HTMLURL))
	}
	if pr.Body != "" {
		fmt.Fprintf(&b, "\n%s\n", pr.Body)
	}

	return b.String()
}

// prDisplayState folds the merged flag into the displayed state.
func prDisplayState(pr *adapter.PullRequestInfo) string {
	if pr.Merged {
		return "merged"
	}
	return pr.State
}

// FormatReleaseLine renders one release for list output.
func FormatReleaseLine(release *adapter.ReleaseInfo) string {
	parts := []string{
		ColorCyan(release.TagName),
	}
	if release.Name != "" && release.Name != release.TagName {
		parts = append(parts, release.Name)
	}
	if release.Draft {
		parts = append(parts, ColorYellow("(draft)"))
	}
	if release.Prerelease {
		parts = append(parts, ColorYellow("(prerelease)"))
	}
	if !release.CreatedAt.IsZero() {
		parts = append(parts, ColorDim(release.CreatedAt.Format("2006-01-02")))
	}
	return strings.Join(parts, " ")
}

// FormatBranchLine renders one remote branch for list output.
func FormatBranchLine(branch *adapter.BranchInfo) string {
	if branch.SHA == "" {
		return branch.Name
	}
	sha := branch.SHA
	if len(sha) > 8 {
		sha = sha[:8]
	}
	return fmt.Sprintf("%s %s", branch.Name, ColorDim(sha))
}
