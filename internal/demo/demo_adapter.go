package demo

import (
	"context"
	"fmt"
	"time"

	"shipit.dev/shipit/internal/adapter"
	"shipit.dev/shipit/internal/runtime"
)

// simulateDelay makes demo calls feel like real network round trips. The
// jitter is derived from the base so a given call always takes the same time.
func simulateDelay(base time.Duration) {
	jitter := time.Duration(base.Nanoseconds()%100) * time.Millisecond
	time.Sleep(base + jitter)
}

func init() {
	// Register the demo adapter factory with the runtime package
	runtime.DemoAdapterFactory = func() adapter.Adapter {
		return NewAdapter()
	}
	runtime.DemoOwner = Owner
	runtime.DemoRepo = Repo
}

// Adapter implements the adapter.Adapter interface with simulated data.
type Adapter struct {
	issues       []*adapter.IssueInfo
	pullRequests []*adapter.PullRequestInfo
	releases     []*adapter.ReleaseInfo
	branches     []*adapter.BranchInfo
}

// NewAdapter creates a demo adapter seeded with simulated repository data.
func NewAdapter() *Adapter {
	return &Adapter{
		issues:       demoIssues(),
		pullRequests: demoPullRequests(),
		releases:     demoReleases(),
		branches:     demoBranches(),
	}
}

// Identifier returns the provider identifier.
func (a *Adapter) Identifier() string {
	return "demo"
}

// Authenticate always succeeds after a short pause.
func (a *Adapter) Authenticate(_ context.Context) error {
	simulateDelay(150 * time.Millisecond)
	return nil
}

// nextNumber returns the next free number across issues and pull requests.
// They draw from one sequence, like the real providers.
func (a *Adapter) nextNumber() int {
	next := 1
	for _, issue := range a.issues {
		if issue.Number >= next {
			next = issue.Number + 1
		}
	}
	for _, pr := range a.pullRequests {
		if pr.Number >= next {
			next = pr.Number + 1
		}
	}
	return next
}

// CreateIssue opens a simulated issue.
func (a *Adapter) CreateIssue(_ context.Context, owner, repo string, opts adapter.IssueOptions) (*adapter.IssueInfo, error) {
	issue := &adapter.IssueInfo{
		Number:    a.nextNumber(),
		Title:     opts.Title,
		Body:      opts.Body,
		State:     "open",
		Author:    Owner,
		Assignee:  opts.Assignee,
		Labels:    opts.Labels,
		Milestone: opts.Milestone,
		CreatedAt: time.Now(),
	}
	issue.HTMLURL = fmt.Sprintf("https://github.com/%s/%s/issues/%d", owner, repo, issue.Number)
	a.issues = append(a.issues, issue)
	return issue, nil
}

// ListIssues returns simulated issues matching the filter.
func (a *Adapter) ListIssues(_ context.Context, _, _ string, filter adapter.IssueFilter) ([]*adapter.IssueInfo, error) {
	var out []*adapter.IssueInfo
	for _, issue := range a.issues {
		if filter.State != "" && filter.State != "all" && issue.State != filter.State {
			continue
		}
		if filter.Assignee != "" && issue.Assignee != filter.Assignee {
			continue
		}
		if filter.Creator != "" && issue.Author != filter.Creator {
			continue
		}
		out = append(out, issue)
	}
	return out, nil
}

// GetIssue returns a simulated issue by number.
func (a *Adapter) GetIssue(_ context.Context, _, _ string, number int) (*adapter.IssueInfo, error) {
	for _, issue := range a.issues {
		if issue.Number == number {
			return issue, nil
		}
	}
	return nil, fmt.Errorf("issue #%d not found", number)
}

// CloseIssue marks a simulated issue closed.
func (a *Adapter) CloseIssue(ctx context.Context, owner, repo string, number int) error {
	issue, err := a.GetIssue(ctx, owner, repo, number)
	if err != nil {
		return err
	}
	issue.State = "closed"
	return nil
}

// CreatePullRequest opens a simulated pull request.
func (a *Adapter) CreatePullRequest(_ context.Context, owner, repo string, opts adapter.CreatePROptions) (*adapter.PullRequestInfo, error) {
	pr := &adapter.PullRequestInfo{
		Number:    a.nextNumber(),
		Title:     opts.Title,
		Body:      opts.Body,
		State:     "open",
		Head:      opts.Head,
		Base:      opts.Base,
		Author:    Owner,
		Draft:     opts.Draft,
		CreatedAt: time.Now(),
	}
	pr.HTMLURL = fmt.Sprintf("https://github.com/%s/%s/pull/%d", owner, repo, pr.Number)
	a.pullRequests = append(a.pullRequests, pr)
	return pr, nil
}

// ListPullRequests returns simulated pull requests in the given state.
func (a *Adapter) ListPullRequests(_ context.Context, _, _ string, state string) ([]*adapter.PullRequestInfo, error) {
	var out []*adapter.PullRequestInfo
	for _, pr := range a.pullRequests {
		if state != "" && state != "all" && pr.State != state {
			continue
		}
		out = append(out, pr)
	}
	return out, nil
}

// GetPullRequestByBranch returns the pull request whose head is the given
// branch, or nil when none exists.
func (a *Adapter) GetPullRequestByBranch(_ context.Context, _, _ string, branchName string) (*adapter.PullRequestInfo, error) {
	for _, pr := range a.pullRequests {
		if pr.Head == branchName {
			return pr, nil
		}
	}
	return nil, nil
}

// MergePullRequest marks a simulated pull request merged.
func (a *Adapter) MergePullRequest(_ context.Context, _, _ string, number int, _ string) error {
	simulateDelay(200 * time.Millisecond)
	for _, pr := range a.pullRequests {
		if pr.Number == number {
			pr.State = "closed"
			pr.Merged = true
			return nil
		}
	}
	return fmt.Errorf("pull request #%d not found", number)
}

// CreateRelease publishes a simulated release.
func (a *Adapter) CreateRelease(_ context.Context, owner, repo string, opts adapter.ReleaseOptions) (*adapter.ReleaseInfo, error) {
	var maxID int64
	for _, release := range a.releases {
		if release.ID > maxID {
			maxID = release.ID
		}
	}

	release := &adapter.ReleaseInfo{
		ID:         maxID + 1,
		TagName:    opts.TagName,
		Name:       opts.Name,
		Body:       opts.Body,
		Draft:      opts.Draft,
		Prerelease: opts.Prerelease,
		CreatedAt:  time.Now(),
	}
	release.HTMLURL = fmt.Sprintf("https://github.com/%s/%s/releases/tag/%s", owner, repo, release.TagName)
	a.releases = append(a.releases, release)
	return release, nil
}

// ListReleases returns all simulated releases.
func (a *Adapter) ListReleases(_ context.Context, _, _ string) ([]*adapter.ReleaseInfo, error) {
	return append([]*adapter.ReleaseInfo(nil), a.releases...), nil
}

// ListBranches returns all simulated branches.
func (a *Adapter) ListBranches(_ context.Context, _, _ string) ([]*adapter.BranchInfo, error) {
	return append([]*adapter.BranchInfo(nil), a.branches...), nil
}

// DeleteBranch removes a simulated branch.
func (a *Adapter) DeleteBranch(_ context.Context, _, _ string, branchName string) error {
	for i, branch := range a.branches {
		if branch.Name == branchName {
			a.branches = append(a.branches[:i], a.branches[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("branch %q not found", branchName)
}

var _ adapter.Adapter = (*Adapter)(nil)
