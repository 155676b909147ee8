// Package adapter defines the provider contract and the machinery that
// registers, resolves and builds provider adapters.
package adapter

import (
	"context"
	"time"

	"shipit.dev/shipit/internal/config"
)

// IssueInfo contains information about an issue.
// This is a simplified struct to avoid coupling to any provider SDK.
type IssueInfo struct {
	Number    int
	Title     string
	Body      string
	State     string
	Author    string
	Assignee  string
	Labels    []string
	Milestone string
	HTMLURL   string
	CreatedAt time.Time
}

// IssueOptions contains options for creating an issue.
type IssueOptions struct {
	Title     string
	Body      string
	Assignee  string
	Labels    []string
	Milestone string
}

// IssueFilter narrows an issue listing.
type IssueFilter struct {
	State    string // open, closed, all
	Assignee string
	Creator  string
	Labels   []string
}

// PullRequestInfo contains information about a pull request.
type PullRequestInfo struct {
	Number    int
	Title     string
	Body      string
	State     string
	HTMLURL   string
	Head      string
	Base      string
	Author    string
	Draft     bool
	Merged    bool
	CreatedAt time.Time
}

// CreatePROptions contains options for creating a pull request.
type CreatePROptions struct {
	Title string
	Body  string
	Head  string
	Base  string
	Draft bool
}

// ReleaseInfo contains information about a release.
type ReleaseInfo struct {
	ID         int64
	TagName    string
	Name       string
	Body       string
	Draft      bool
	Prerelease bool
	HTMLURL    string
	CreatedAt  time.Time
}

// ReleaseOptions contains options for creating a release.
type ReleaseOptions struct {
	TagName         string
	Name            string
	Body            string
	TargetCommitish string
	Draft           bool
	Prerelease      bool
}

// BranchInfo contains information about a remote branch.
type BranchInfo struct {
	Name string
	SHA  string
}

// Adapter is the capability contract every provider implements. Commands
// consume this interface and never touch provider SDKs directly.
type Adapter interface {
	// Identifier returns the stable provider name ("github", "gitlab", ...).
	Identifier() string

	// Authenticate verifies the configured credentials against the provider.
	Authenticate(ctx context.Context) error

	// CreateIssue opens a new issue.
	CreateIssue(ctx context.Context, owner, repo string, opts IssueOptions) (*IssueInfo, error)

	// ListIssues returns issues matching the filter.
	ListIssues(ctx context.Context, owner, repo string, filter IssueFilter) ([]*IssueInfo, error)

	// GetIssue returns a single issue by number.
	GetIssue(ctx context.Context, owner, repo string, number int) (*IssueInfo, error)

	// CloseIssue closes an issue.
	CloseIssue(ctx context.Context, owner, repo string, number int) error

	// CreatePullRequest opens a new pull request.
	CreatePullRequest(ctx context.Context, owner, repo string, opts CreatePROptions) (*PullRequestInfo, error)

	// ListPullRequests returns pull requests in the given state.
	ListPullRequests(ctx context.Context, owner, repo string, state string) ([]*PullRequestInfo, error)

	// GetPullRequestByBranch returns the open pull request whose head is the
	// given branch, or nil when none exists.
	GetPullRequestByBranch(ctx context.Context, owner, repo, branchName string) (*PullRequestInfo, error)

	// MergePullRequest merges a pull request.
	MergePullRequest(ctx context.Context, owner, repo string, number int, message string) error

	// CreateRelease publishes a new release.
	CreateRelease(ctx context.Context, owner, repo string, opts ReleaseOptions) (*ReleaseInfo, error)

	// ListReleases returns the repository's releases.
	ListReleases(ctx context.Context, owner, repo string) ([]*ReleaseInfo, error)

	// ListBranches returns the repository's remote branches.
	ListBranches(ctx context.Context, owner, repo string) ([]*BranchInfo, error)

	// DeleteBranch deletes a remote branch.
	DeleteBranch(ctx context.Context, owner, repo, branchName string) error
}

// Factory builds adapters for a single provider. Registering a Factory is
// how a provider becomes available to the resolution pipeline.
type Factory interface {
	// Identifier returns the stable name the factory registers under.
	Identifier() string

	// New builds an adapter from the reshaped configuration view produced by
	// Build.
	New(cfg *config.Store) (Adapter, error)
}
