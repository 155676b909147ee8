package forge

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/google/go-github/v62/github"
	"golang.org/x/oauth2"

	"shipit.dev/shipit/internal/adapter"
	"shipit.dev/shipit/internal/config"
	shipiterrors "shipit.dev/shipit/internal/errors"
)

// githubFactory builds GitHub adapters. The same factory backs both the
// github and github_enterprise identifiers; an enterprise instance differs
// only in its API endpoints.
type githubFactory struct {
	identifier string
}

// NewGitHubFactory returns a factory registering under the given identifier.
func NewGitHubFactory(identifier string) adapter.Factory {
	return &githubFactory{identifier: identifier}
}

func (f *githubFactory) Identifier() string {
	return f.identifier
}

func (f *githubFactory) New(cfg *config.Store) (adapter.Adapter, error) {
	token := cfg.GetString("authentication.token")
	if token == "" {
		token = cfg.GetString("authentication.password-or-token")
	}

	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
	tc := oauth2.NewClient(context.Background(), ts)
	client := github.NewClient(tc)

	// Enterprise instances carry their API endpoint in base_url.
	// REST API: https://hostname/api/v3/
	baseURL := cfg.GetString(f.identifier + ".base_url")
	if baseURL != "" && !strings.Contains(baseURL, "api.github.com") {
		parsed, err := url.Parse(baseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to parse base URL %s: %w", baseURL, err)
		}
		// go-github requires a trailing slash on the base URL.
		if !strings.HasSuffix(parsed.Path, "/") {
			parsed.Path += "/"
		}
		client.BaseURL = parsed
		client.UploadURL = parsed
	}

	return &GitHubAdapter{
		identifier: f.identifier,
		client:     client,
	}, nil
}

// GitHubAdapter talks to the GitHub REST API. It serves both github.com and
// GitHub Enterprise instances.
type GitHubAdapter struct {
	identifier string
	client     *github.Client
}

// Identifier returns the provider identifier this adapter was built for.
func (a *GitHubAdapter) Identifier() string {
	return a.identifier
}

// Authenticate verifies the configured token by fetching the current user.
func (a *GitHubAdapter) Authenticate(ctx context.Context) error {
	if _, _, err := a.client.Users.Get(ctx, ""); err != nil {
		return shipiterrors.NewAuthError(a.identifier, err)
	}
	return nil
}

// CreateIssue opens a new issue.
func (a *GitHubAdapter) CreateIssue(ctx context.Context, owner, repo string, opts adapter.IssueOptions) (*adapter.IssueInfo, error) {
	req := &github.IssueRequest{
		Title: github.String(opts.Title),
	}
	if opts.Body != "" {
		req.Body = github.String(opts.Body)
	}
	if opts.Assignee != "" {
		req.Assignee = github.String(opts.Assignee)
	}
	if len(opts.Labels) > 0 {
		req.Labels = &opts.Labels
	}
	if opts.Milestone != "" {
		// The API wants the milestone number, not its title.
		if number, err := strconv.Atoi(opts.Milestone); err == nil {
			req.Milestone = github.Int(number)
		}
	}

	issue, _, err := a.client.Issues.Create(ctx, owner, repo, req)
	if err != nil {
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}
	return toIssueInfo(issue), nil
}

// ListIssues returns issues matching the filter. Pull requests surface in
// the issues API as well and are skipped.
func (a *GitHubAdapter) ListIssues(ctx context.Context, owner, repo string, filter adapter.IssueFilter) ([]*adapter.IssueInfo, error) {
	opts := &github.IssueListByRepoOptions{
		State:    filter.State,
		Assignee: filter.Assignee,
		Creator:  filter.Creator,
		Labels:   filter.Labels,
	}
	if opts.State == "" {
		opts.State = "open"
	}

	issues, _, err := a.client.Issues.ListByRepo(ctx, owner, repo, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}

	var out []*adapter.IssueInfo
	for _, issue := range issues {
		if issue.PullRequestLinks != nil {
			continue
		}
		out = append(out, toIssueInfo(issue))
	}
	return out, nil
}

// GetIssue returns a single issue by number.
func (a *GitHubAdapter) GetIssue(ctx context.Context, owner, repo string, number int) (*adapter.IssueInfo, error) {
	issue, _, err := a.client.Issues.Get(ctx, owner, repo, number)
	if err != nil {
		return nil, fmt.Errorf("failed to get issue #%d: %w", number, err)
	}
	return toIssueInfo(issue), nil
}

// CloseIssue closes an issue.
func (a *GitHubAdapter) CloseIssue(ctx context.Context, owner, repo string, number int) error {
	_, _, err := a.client.Issues.Edit(ctx, owner, repo, number, &github.IssueRequest{
		State: github.String("closed"),
	})
	if err != nil {
		return fmt.Errorf("failed to close issue #%d: %w", number, err)
	}
	return nil
}

// CreatePullRequest opens a new pull request.
func (a *GitHubAdapter) CreatePullRequest(ctx context.Context, owner, repo string, opts adapter.CreatePROptions) (*adapter.PullRequestInfo, error) {
	pr := &github.NewPullRequest{
		Title: github.String(opts.Title),
		Head:  github.String(opts.Head),
		Base:  github.String(opts.Base),
		Draft: github.Bool(opts.Draft),
	}
	if opts.Body != "" {
		pr.Body = github.String(opts.Body)
	}

	createdPR, _, err := a.client.PullRequests.Create(ctx, owner, repo, pr)
	if err != nil {
		return nil, fmt.Errorf("failed to create pull request: %w", err)
	}
	return toGitHubPullRequestInfo(createdPR), nil
}

// ListPullRequests returns pull requests in the given state.
func (a *GitHubAdapter) ListPullRequests(ctx context.Context, owner, repo string, state string) ([]*adapter.PullRequestInfo, error) {
	if state == "" {
		state = "open"
	}
	prs, _, err := a.client.PullRequests.List(ctx, owner, repo, &github.PullRequestListOptions{
		State: state,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list pull requests: %w", err)
	}

	out := make([]*adapter.PullRequestInfo, 0, len(prs))
	for _, pr := range prs {
		out = append(out, toGitHubPullRequestInfo(pr))
	}
	return out, nil
}

// GetPullRequestByBranch returns the open pull request whose head is the
// given branch, or nil when none exists.
func (a *GitHubAdapter) GetPullRequestByBranch(ctx context.Context, owner, repo, branchName string) (*adapter.PullRequestInfo, error) {
	prs, _, err := a.client.PullRequests.List(ctx, owner, repo, &github.PullRequestListOptions{
		Head:  fmt.Sprintf("%s:%s", owner, branchName),
		State: "open",
		ListOptions: github.ListOptions{
			PerPage: 1,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to look up pull request for %s: %w", branchName, err)
	}
	if len(prs) == 0 {
		return nil, nil
	}
	return toGitHubPullRequestInfo(prs[0]), nil
}

// MergePullRequest merges a pull request.
func (a *GitHubAdapter) MergePullRequest(ctx context.Context, owner, repo string, number int, message string) error {
	result, _, err := a.client.PullRequests.Merge(ctx, owner, repo, number, message, nil)
	if err != nil {
		return fmt.Errorf("failed to merge pull request #%d: %w", number, err)
	}
	if result.Merged != nil && !*result.Merged {
		reason := "not mergeable"
		if result.Message != nil {
			reason = *result.Message
		}
		return fmt.Errorf("pull request #%d was not merged: %s", number, reason)
	}
	return nil
}

// CreateRelease publishes a new release.
func (a *GitHubAdapter) CreateRelease(ctx context.Context, owner, repo string, opts adapter.ReleaseOptions) (*adapter.ReleaseInfo, error) {
	release := &github.RepositoryRelease{
		TagName:    github.String(opts.TagName),
		Draft:      github.Bool(opts.Draft),
		Prerelease: github.Bool(opts.Prerelease),
	}
	if opts.Name != "" {
		release.Name = github.String(opts.Name)
	}
	if opts.Body != "" {
		release.Body = github.String(opts.Body)
	}
	if opts.TargetCommitish != "" {
		release.TargetCommitish = github.String(opts.TargetCommitish)
	}

	created, _, err := a.client.Repositories.CreateRelease(ctx, owner, repo, release)
	if err != nil {
		return nil, fmt.Errorf("failed to create release %s: %w", opts.TagName, err)
	}
	return toReleaseInfo(created), nil
}

// ListReleases returns the repository's releases.
func (a *GitHubAdapter) ListReleases(ctx context.Context, owner, repo string) ([]*adapter.ReleaseInfo, error) {
	releases, _, err := a.client.Repositories.ListReleases(ctx, owner, repo, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list releases: %w", err)
	}

	out := make([]*adapter.ReleaseInfo, 0, len(releases))
	for _, release := range releases {
		out = append(out, toReleaseInfo(release))
	}
	return out, nil
}

// ListBranches returns the repository's remote branches.
func (a *GitHubAdapter) ListBranches(ctx context.Context, owner, repo string) ([]*adapter.BranchInfo, error) {
	branches, _, err := a.client.Repositories.ListBranches(ctx, owner, repo, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}

	out := make([]*adapter.BranchInfo, 0, len(branches))
	for _, branch := range branches {
		info := &adapter.BranchInfo{}
		if branch.Name != nil {
			info.Name = *branch.Name
		}
		if branch.Commit != nil && branch.Commit.SHA != nil {
			info.SHA = *branch.Commit.SHA
		}
		out = append(out, info)
	}
	return out, nil
}

// DeleteBranch deletes a remote branch.
func (a *GitHubAdapter) DeleteBranch(ctx context.Context, owner, repo, branchName string) error {
	_, err := a.client.Git.DeleteRef(ctx, owner, repo, "refs/heads/"+branchName)
	if err != nil {
		return fmt.Errorf("failed to delete branch %s: %w", branchName, err)
	}
	return nil
}

// toIssueInfo converts a github.Issue to adapter.IssueInfo
func toIssueInfo(issue *github.Issue) *adapter.IssueInfo {
	if issue == nil {
		return nil
	}

	info := &adapter.IssueInfo{}

	if issue.Number != nil {
		info.Number = *issue.Number
	}
	if issue.Title != nil {
		info.Title = *issue.Title
	}
	if issue.Body != nil {
		info.Body = *issue.Body
	}
	if issue.State != nil {
		info.State = *issue.State
	}
	if issue.User != nil && issue.User.Login != nil {
		info.Author = *issue.User.Login
	}
	if issue.Assignee != nil && issue.Assignee.Login != nil {
		info.Assignee = *issue.Assignee.Login
	}
	for _, label := range issue.Labels {
		if label.Name != nil {
			info.Labels = append(info.Labels, *label.Name)
		}
	}
	if issue.Milestone != nil && issue.Milestone.Title != nil {
		info.Milestone = *issue.Milestone.Title
	}
	if issue.HTMLURL != nil {
		info.HTMLURL = *issue.HTMLURL
	}
	if issue.CreatedAt != nil {
		info.CreatedAt = issue.CreatedAt.Time
	}

	return info
}

// toGitHubPullRequestInfo converts a github.PullRequest to adapter.PullRequestInfo
func toGitHubPullRequestInfo(pr *github.PullRequest) *adapter.PullRequestInfo {
	if pr == nil {
		return nil
	}

	info := &adapter.PullRequestInfo{}

	if pr.Number != nil {
		info.Number = *pr.Number
	}
	if pr.Title != nil {
		info.Title = *pr.Title
	}
	if pr.Body != nil {
		info.Body = *pr.Body
	}
	if pr.State != nil {
		info.State = *pr.State
	}
	if pr.HTMLURL != nil {
		info.HTMLURL = *pr.HTMLURL
	}
	if pr.Head != nil && pr.Head.Ref != nil {
		info.Head = *pr.Head.Ref
	}
	if pr.Base != nil && pr.Base.Ref != nil {
		info.Base = *pr.Base.Ref
	}
	if pr.User != nil && pr.User.Login != nil {
		info.Author = *pr.User.Login
	}
	if pr.Draft != nil {
		info.Draft = *pr.Draft
	}
	if pr.Merged != nil {
		info.Merged = *pr.Merged
	}
	if pr.CreatedAt != nil {
		info.CreatedAt = pr.CreatedAt.Time
	}

	return info
}

// toReleaseInfo converts a github.RepositoryRelease to adapter.ReleaseInfo
func toReleaseInfo(release *github.RepositoryRelease) *adapter.ReleaseInfo {
	if release == nil {
		return nil
	}

	info := &adapter.ReleaseInfo{}

	if release.ID != nil {
		info.ID = *release.ID
	}
	if release.TagName != nil {
		info.TagName = *release.TagName
	}
	if release.Name != nil {
		info.Name = *release.Name
	}
	if release.Body != nil {
		info.Body = *release.Body
	}
	if release.Draft != nil {
		info.Draft = *release.Draft
	}
	if release.Prerelease != nil {
		info.Prerelease = *release.Prerelease
	}
	if release.HTMLURL != nil {
		info.HTMLURL = *release.HTMLURL
	}
	if release.CreatedAt != nil {
		info.CreatedAt = release.CreatedAt.Time
	}

	return info
}
