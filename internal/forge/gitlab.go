package forge

import (
	"context"
	"fmt"
	"strconv"

	gitlab "github.com/xanzy/go-gitlab"

	"shipit.dev/shipit/internal/adapter"
	"shipit.dev/shipit/internal/config"
	shipiterrors "shipit.dev/shipit/internal/errors"
)

// gitlabFactory builds GitLab adapters.
type gitlabFactory struct{}

// NewGitLabFactory returns the factory for the gitlab identifier.
func NewGitLabFactory() adapter.Factory {
	return &gitlabFactory{}
}

func (f *gitlabFactory) Identifier() string {
	return GitLab
}

func (f *gitlabFactory) New(cfg *config.Store) (adapter.Adapter, error) {
	token := cfg.GetString("authentication.token")
	if token == "" {
		token = cfg.GetString("authentication.password-or-token")
	}

	opts := []gitlab.ClientOptionFunc{}
	if baseURL := cfg.GetString(GitLab + ".base_url"); baseURL != "" {
		opts = append(opts, gitlab.WithBaseURL(baseURL))
	}

	client, err := gitlab.NewClient(token, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create gitlab client: %w", err)
	}

	return &GitLabAdapter{client: client}, nil
}

// GitLabAdapter talks to the GitLab REST API, for gitlab.com and self-hosted
// instances alike.
type GitLabAdapter struct {
	client *gitlab.Client
}

// Identifier returns the provider identifier.
func (a *GitLabAdapter) Identifier() string {
	return GitLab
}

// Authenticate verifies the configured token by fetching the current user.
func (a *GitLabAdapter) Authenticate(ctx context.Context) error {
	if _, _, err := a.client.Users.CurrentUser(gitlab.WithContext(ctx)); err != nil {
		return shipiterrors.NewAuthError(GitLab, err)
	}
	return nil
}

// projectID builds the URL-encoded project path GitLab addresses projects by.
func projectID(owner, repo string) string {
	return fmt.Sprintf("%s/%s", owner, repo)
}

// gitlabState maps the cross-provider state names onto GitLab's.
func gitlabState(state string) string {
	switch state {
	case "", "open":
		return "opened"
	case "closed":
		return "closed"
	default:
		return "all"
	}
}

// CreateIssue opens a new issue.
func (a *GitLabAdapter) CreateIssue(ctx context.Context, owner, repo string, opts adapter.IssueOptions) (*adapter.IssueInfo, error) {
	req := &gitlab.CreateIssueOptions{
		Title: gitlab.Ptr(opts.Title),
	}
	if opts.Body != "" {
		req.Description = gitlab.Ptr(opts.Body)
	}
	if len(opts.Labels) > 0 {
		labels := gitlab.LabelOptions(opts.Labels)
		req.Labels = &labels
	}
	if opts.Milestone != "" {
		// The API wants the milestone ID, not its title.
		if id, err := strconv.Atoi(opts.Milestone); err == nil {
			req.MilestoneID = gitlab.Ptr(id)
		}
	}

	issue, _, err := a.client.Issues.CreateIssue(projectID(owner, repo), req, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}
	return toGitLabIssueInfo(issue), nil
}

// ListIssues returns issues matching the filter.
func (a *GitLabAdapter) ListIssues(ctx context.Context, owner, repo string, filter adapter.IssueFilter) ([]*adapter.IssueInfo, error) {
	opts := &gitlab.ListProjectIssuesOptions{
		State: gitlab.Ptr(gitlabState(filter.State)),
	}
	if len(filter.Labels) > 0 {
		labels := gitlab.LabelOptions(filter.Labels)
		opts.Labels = &labels
	}

	issues, _, err := a.client.Issues.ListProjectIssues(projectID(owner, repo), opts, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}

	var out []*adapter.IssueInfo
	for _, issue := range issues {
		info := toGitLabIssueInfo(issue)
		if filter.Assignee != "" && info.Assignee != filter.Assignee {
			continue
		}
		if filter.Creator != "" && info.Author != filter.Creator {
			continue
		}
		out = append(out, info)
	}
	return out, nil
}

// GetIssue returns a single issue by number.
func (a *GitLabAdapter) GetIssue(ctx context.Context, owner, repo string, number int) (*adapter.IssueInfo, error) {
	issue, _, err := a.client.Issues.GetIssue(projectID(owner, repo), number, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to get issue #%d: %w", number, err)
	}
	return toGitLabIssueInfo(issue), nil
}

// CloseIssue closes an issue.
func (a *GitLabAdapter) CloseIssue(ctx context.Context, owner, repo string, number int) error {
	_, _, err := a.client.Issues.UpdateIssue(projectID(owner, repo), number, &gitlab.UpdateIssueOptions{
		StateEvent: gitlab.Ptr("close"),
	}, gitlab.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to close issue #%d: %w", number, err)
	}
	return nil
}

// CreatePullRequest opens a new merge request.
func (a *GitLabAdapter) CreatePullRequest(ctx context.Context, owner, repo string, opts adapter.CreatePROptions) (*adapter.PullRequestInfo, error) {
	title := opts.Title
	if opts.Draft {
		title = "Draft: " + title
	}

	mr, _, err := a.client.MergeRequests.CreateMergeRequest(projectID(owner, repo), &gitlab.CreateMergeRequestOptions{
		Title:        gitlab.Ptr(title),
		Description:  gitlab.Ptr(opts.Body),
		SourceBranch: gitlab.Ptr(opts.Head),
		TargetBranch: gitlab.Ptr(opts.Base),
	}, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to create merge request: %w", err)
	}
	return toGitLabPullRequestInfo(mr), nil
}

// ListPullRequests returns merge requests in the given state.
func (a *GitLabAdapter) ListPullRequests(ctx context.Context, owner, repo string, state string) ([]*adapter.PullRequestInfo, error) {
	mrs, _, err := a.client.MergeRequests.ListProjectMergeRequests(projectID(owner, repo), &gitlab.ListProjectMergeRequestsOptions{
		State: gitlab.Ptr(gitlabState(state)),
	}, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to list merge requests: %w", err)
	}

	out := make([]*adapter.PullRequestInfo, 0, len(mrs))
	for _, mr := range mrs {
		out = append(out, toGitLabPullRequestInfo(mr))
	}
	return out, nil
}

// GetPullRequestByBranch returns the open merge request whose source branch
// is the given branch, or nil when none exists.
func (a *GitLabAdapter) GetPullRequestByBranch(ctx context.Context, owner, repo, branchName string) (*adapter.PullRequestInfo, error) {
	mrs, _, err := a.client.MergeRequests.ListProjectMergeRequests(projectID(owner, repo), &gitlab.ListProjectMergeRequestsOptions{
		State:        gitlab.Ptr("opened"),
		SourceBranch: gitlab.Ptr(branchName),
	}, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to look up merge request for %s: %w", branchName, err)
	}
	if len(mrs) == 0 {
		return nil, nil
	}
	return toGitLabPullRequestInfo(mrs[0]), nil
}

// MergePullRequest merges a merge request.
func (a *GitLabAdapter) MergePullRequest(ctx context.Context, owner, repo string, number int, message string) error {
	opts := &gitlab.AcceptMergeRequestOptions{}
	if message != "" {
		opts.MergeCommitMessage = gitlab.Ptr(message)
	}

	_, _, err := a.client.MergeRequests.AcceptMergeRequest(projectID(owner, repo), number, opts, gitlab.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to merge merge request !%d: %w", number, err)
	}
	return nil
}

// CreateRelease publishes a new release.
func (a *GitLabAdapter) CreateRelease(ctx context.Context, owner, repo string, opts adapter.ReleaseOptions) (*adapter.ReleaseInfo, error) {
	req := &gitlab.CreateReleaseOptions{
		TagName: gitlab.Ptr(opts.TagName),
	}
	if opts.Name != "" {
		req.Name = gitlab.Ptr(opts.Name)
	}
	if opts.Body != "" {
		req.Description = gitlab.Ptr(opts.Body)
	}
	if opts.TargetCommitish != "" {
		req.Ref = gitlab.Ptr(opts.TargetCommitish)
	}

	release, _, err := a.client.Releases.CreateRelease(projectID(owner, repo), req, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to create release %s: %w", opts.TagName, err)
	}
	return toGitLabReleaseInfo(release), nil
}

// ListReleases returns the project's releases.
func (a *GitLabAdapter) ListReleases(ctx context.Context, owner, repo string) ([]*adapter.ReleaseInfo, error) {
	releases, _, err := a.client.Releases.ListReleases(projectID(owner, repo), &gitlab.ListReleasesOptions{}, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to list releases: %w", err)
	}

	out := make([]*adapter.ReleaseInfo, 0, len(releases))
	for _, release := range releases {
		out = append(out, toGitLabReleaseInfo(release))
	}
	return out, nil
}

// ListBranches returns the project's branches.
func (a *GitLabAdapter) ListBranches(ctx context.Context, owner, repo string) ([]*adapter.BranchInfo, error) {
	branches, _, err := a.client.Branches.ListBranches(projectID(owner, repo), &gitlab.ListBranchesOptions{}, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}

	out := make([]*adapter.BranchInfo, 0, len(branches))
	for _, branch := range branches {
		info := &adapter.BranchInfo{Name: branch.Name}
		if branch.Commit != nil {
			info.SHA = branch.Commit.ID
		}
		out = append(out, info)
	}
	return out, nil
}

// DeleteBranch deletes a branch.
func (a *GitLabAdapter) DeleteBranch(ctx context.Context, owner, repo, branchName string) error {
	_, err := a.client.Branches.DeleteBranch(projectID(owner, repo), branchName, gitlab.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("failed to delete branch %s: %w", branchName, err)
	}
	return nil
}

// toGitLabIssueInfo converts a gitlab.Issue to adapter.IssueInfo
func toGitLabIssueInfo(issue *gitlab.Issue) *adapter.IssueInfo {
	if issue == nil {
		return nil
	}

	info := &adapter.IssueInfo{
		Number:  issue.IID,
		Title:   issue.Title,
		Body:    issue.Description,
		State:   issue.State,
		Labels:  issue.Labels,
		HTMLURL: issue.WebURL,
	}
	if issue.Author != nil {
		info.Author = issue.Author.Username
	}
	if issue.Assignee != nil {
		info.Assignee = issue.Assignee.Username
	}
	if issue.Milestone != nil {
		info.Milestone = issue.Milestone.Title
	}
	if issue.CreatedAt != nil {
		info.CreatedAt = *issue.CreatedAt
	}

	return info
}

// toGitLabPullRequestInfo converts a gitlab.MergeRequest to adapter.PullRequestInfo
func toGitLabPullRequestInfo(mr *gitlab.MergeRequest) *adapter.PullRequestInfo {
	if mr == nil {
		return nil
	}

	info := &adapter.PullRequestInfo{
		Number:  mr.IID,
		Title:   mr.Title,
		Body:    mr.Description,
		State:   mr.State,
		HTMLURL: mr.WebURL,
		Head:    mr.SourceBranch,
		Base:    mr.TargetBranch,
		Draft:   mr.Draft,
		Merged:  mr.State == "merged",
	}
	if mr.Author != nil {
		info.Author = mr.Author.Username
	}
	if mr.CreatedAt != nil {
		info.CreatedAt = *mr.CreatedAt
	}

	return info
}

// toGitLabReleaseInfo converts a gitlab.Release to adapter.ReleaseInfo
func toGitLabReleaseInfo(release *gitlab.Release) *adapter.ReleaseInfo {
	if release == nil {
		return nil
	}

	info := &adapter.ReleaseInfo{
		TagName: release.TagName,
		Name:    release.Name,
		Body:    release.Description,
	}
	if release.CreatedAt != nil {
		info.CreatedAt = *release.CreatedAt
	}

	return info
}
