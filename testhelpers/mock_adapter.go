package testhelpers

import (
	"context"
	"fmt"
	"sync"

	"shipit.dev/shipit/internal/adapter"
	"shipit.dev/shipit/internal/config"
)

// MockFactory implements adapter.Factory for tests. It records constructor
// calls and can be told to fail construction or authentication.
type MockFactory struct {
	ID         string
	NewErr     error
	AuthErr    error
	NewCalls   int
	LastConfig *config.Store
	Built      *MockAdapter
}

// NewMockFactory returns a factory that registers under the given identifier.
func NewMockFactory(identifier string) *MockFactory {
	return &MockFactory{ID: identifier}
}

// Identifier returns the factory's registration identifier.
func (f *MockFactory) Identifier() string {
	return f.ID
}

// New builds a MockAdapter, or fails with NewErr when set.
func (f *MockFactory) New(cfg *config.Store) (adapter.Adapter, error) {
	f.NewCalls++
	f.LastConfig = cfg
	if f.NewErr != nil {
		return nil, f.NewErr
	}

	built := NewMockAdapter(f.ID)
	built.AuthErr = f.AuthErr
	f.Built = built
	return built, nil
}

// MockAdapter is an in-memory adapter.Adapter implementation for tests.
type MockAdapter struct {
	ID        string
	AuthErr   error
	AuthCalls int

	mu           sync.Mutex
	issues       []*adapter.IssueInfo
	pullRequests []*adapter.PullRequestInfo
	releases     []*adapter.ReleaseInfo
	branches     []*adapter.BranchInfo
}

// NewMockAdapter returns an empty in-memory adapter.
func NewMockAdapter(identifier string) *MockAdapter {
	return &MockAdapter{ID: identifier}
}

// Identifier returns the provider identifier.
func (a *MockAdapter) Identifier() string {
	return a.ID
}

// Authenticate counts calls and fails with AuthErr when set.
func (a *MockAdapter) Authenticate(_ context.Context) error {
	a.AuthCalls++
	return a.AuthErr
}

// SeedBranch adds a branch to the in-memory state.
func (a *MockAdapter) SeedBranch(name, sha string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.branches = append(a.branches, &adapter.BranchInfo{Name: name, SHA: sha})
}

// CreateIssue opens a new in-memory issue.
func (a *MockAdapter) CreateIssue(_ context.Context, _, _ string, opts adapter.IssueOptions) (*adapter.IssueInfo, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	issue := &adapter.IssueInfo{
		Number:    len(a.issues) + 1,
		Title:     opts.Title,
		Body:      opts.Body,
		State:     "open",
		Assignee:  opts.Assignee,
		Labels:    opts.Labels,
		Milestone: opts.Milestone,
	}
	a.issues = append(a.issues, issue)
	return issue, nil
}

// ListIssues returns issues matching the filter.
func (a *MockAdapter) ListIssues(_ context.Context, _, _ string, filter adapter.IssueFilter) ([]*adapter.IssueInfo, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var out []*adapter.IssueInfo
	for _, issue := range a.issues {
		if filter.State != "" && filter.State != "all" && issue.State != filter.State {
			continue
		}
		if filter.Assignee != "" && issue.Assignee != filter.Assignee {
			continue
		}
		out = append(out, issue)
	}
	return out, nil
}

// GetIssue returns a single issue by number.
func (a *MockAdapter) GetIssue(_ context.Context, _, _ string, number int) (*adapter.IssueInfo, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, issue := range a.issues {
		if issue.Number == number {
			return issue, nil
		}
	}
	return nil, fmt.Errorf("issue #%d not found", number)
}

// CloseIssue marks an issue closed.
func (a *MockAdapter) CloseIssue(ctx context.Context, owner, repo string, number int) error {
	issue, err := a.GetIssue(ctx, owner, repo, number)
	if err != nil {
		return err
	}
	issue.State = "closed"
	return nil
}

// CreatePullRequest opens a new in-memory pull request.
func (a *MockAdapter) CreatePullRequest(_ context.Context, _, _ string, opts adapter.CreatePROptions) (*adapter.PullRequestInfo, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	pr := &adapter.PullRequestInfo{
		Number: len(a.pullRequests) + 1,
		Title:  opts.Title,
		Body:   opts.Body,
		Head:   opts.Head,
		Base:   opts.Base,
		Draft:  opts.Draft,
		State:  "open",
	}
	a.pullRequests = append(a.pullRequests, pr)
	return pr, nil
}

// ListPullRequests returns pull requests in the given state.
func (a *MockAdapter) ListPullRequests(_ context.Context, _, _ string, state string) ([]*adapter.PullRequestInfo, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	var out []*adapter.PullRequestInfo
	for _, pr := range a.pullRequests {
		if state != "" && state != "all" && pr.State != state {
			continue
		}
		out = append(out, pr)
	}
	return out, nil
}

// GetPullRequestByBranch returns the pull request whose head is branchName.
func (a *MockAdapter) GetPullRequestByBranch(_ context.Context, _, _ string, branchName string) (*adapter.PullRequestInfo, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, pr := range a.pullRequests {
		if pr.Head == branchName {
			return pr, nil
		}
	}
	return nil, nil
}

// MergePullRequest marks a pull request merged.
func (a *MockAdapter) MergePullRequest(_ context.Context, _, _ string, number int, _ string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for _, pr := range a.pullRequests {
		if pr.Number == number {
			pr.State = "closed"
			pr.Merged = true
			return nil
		}
	}
	return fmt.Errorf("pull request #%d not found", number)
}

// CreateRelease publishes an in-memory release.
func (a *MockAdapter) CreateRelease(_ context.Context, _, _ string, opts adapter.ReleaseOptions) (*adapter.ReleaseInfo, error) {
	a.mu.Lock()
	defer a.mu.Unlock()

	release := &adapter.ReleaseInfo{
		ID:         int64(len(a.releases) + 1),
		TagName:    opts.TagName,
		Name:       opts.Name,
		Body:       opts.Body,
		Draft:      opts.Draft,
		Prerelease: opts.Prerelease,
	}
	a.releases = append(a.releases, release)
	return release, nil
}

// ListReleases returns all releases.
func (a *MockAdapter) ListReleases(_ context.Context, _, _ string) ([]*adapter.ReleaseInfo, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]*adapter.ReleaseInfo(nil), a.releases...), nil
}

// ListBranches returns all seeded branches.
func (a *MockAdapter) ListBranches(_ context.Context, _, _ string) ([]*adapter.BranchInfo, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]*adapter.BranchInfo(nil), a.branches...), nil
}

// DeleteBranch removes a branch from the in-memory state.
func (a *MockAdapter) DeleteBranch(_ context.Context, _, _ string, branchName string) error {
	a.mu.Lock()
	defer a.mu.Unlock()

	for i, branch := range a.branches {
		if branch.Name == branchName {
			a.branches = append(a.branches[:i], a.branches[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("branch %q not found", branchName)
}
