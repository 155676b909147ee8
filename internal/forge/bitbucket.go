package forge

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/ktrysmt/go-bitbucket"

	"shipit.dev/shipit/internal/adapter"
	"shipit.dev/shipit/internal/config"
	shipiterrors "shipit.dev/shipit/internal/errors"
)

// bitbucketFactory builds Bitbucket Cloud adapters.
type bitbucketFactory struct{}

// NewBitbucketFactory returns the factory for the bitbucket identifier.
func NewBitbucketFactory() adapter.Factory {
	return &bitbucketFactory{}
}

func (f *bitbucketFactory) Identifier() string {
	return Bitbucket
}

func (f *bitbucketFactory) New(cfg *config.Store) (adapter.Adapter, error) {
	username := cfg.GetString("authentication.username")
	password := cfg.GetString("authentication.password-or-token")
	token := cfg.GetString("authentication.token")

	var client *bitbucket.Client
	switch {
	case username != "" && password != "":
		client = bitbucket.NewBasicAuth(username, password)
	case token != "":
		client = bitbucket.NewOAuthbearerToken(token)
	default:
		client = bitbucket.NewBasicAuth(username, token)
	}

	return &BitbucketAdapter{client: client}, nil
}

// BitbucketAdapter talks to the Bitbucket Cloud REST API. The API has no
// release support, so the release capabilities report ErrNotSupported.
type BitbucketAdapter struct {
	client *bitbucket.Client
}

// Identifier returns the provider identifier.
func (a *BitbucketAdapter) Identifier() string {
	return Bitbucket
}

// Authenticate verifies the configured credentials by fetching the profile.
func (a *BitbucketAdapter) Authenticate(_ context.Context) error {
	if _, err := a.client.User.Profile(); err != nil {
		return shipiterrors.NewAuthError(Bitbucket, err)
	}
	return nil
}

// CreateIssue opens a new issue.
func (a *BitbucketAdapter) CreateIssue(_ context.Context, owner, repo string, opts adapter.IssueOptions) (*adapter.IssueInfo, error) {
	res, err := a.client.Repositories.Issues.Create(&bitbucket.IssuesOptions{
		Owner:     owner,
		RepoSlug:  repo,
		Title:     opts.Title,
		Content:   opts.Body,
		Assignee:  opts.Assignee,
		Milestone: opts.Milestone,
		State:     "new",
		Kind:      "bug",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create issue: %w", err)
	}
	return bbIssueInfo(bbMap(res)), nil
}

// ListIssues returns issues matching the filter.
func (a *BitbucketAdapter) ListIssues(_ context.Context, owner, repo string, filter adapter.IssueFilter) ([]*adapter.IssueInfo, error) {
	res, err := a.client.Repositories.Issues.Gets(&bitbucket.IssuesOptions{
		Owner:    owner,
		RepoSlug: repo,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list issues: %w", err)
	}

	var out []*adapter.IssueInfo
	for _, value := range bbValues(res) {
		info := bbIssueInfo(bbMap(value))
		if info == nil {
			continue
		}
		if filter.State == "open" && info.State == "closed" {
			continue
		}
		if filter.State == "closed" && info.State != "closed" {
			continue
		}
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
func (a *BitbucketAdapter) GetIssue(_ context.Context, owner, repo string, number int) (*adapter.IssueInfo, error) {
	res, err := a.client.Repositories.Issues.Get(&bitbucket.IssuesOptions{
		Owner:    owner,
		RepoSlug: repo,
		ID:       strconv.Itoa(number),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to get issue #%d: %w", number, err)
	}
	return bbIssueInfo(bbMap(res)), nil
}

// CloseIssue closes an issue.
func (a *BitbucketAdapter) CloseIssue(_ context.Context, owner, repo string, number int) error {
	_, err := a.client.Repositories.Issues.Update(&bitbucket.IssuesOptions{
		Owner:    owner,
		RepoSlug: repo,
		ID:       strconv.Itoa(number),
		State:    "closed",
	})
	if err != nil {
		return fmt.Errorf("failed to close issue #%d: %w", number, err)
	}
	return nil
}

// CreatePullRequest opens a new pull request.
func (a *BitbucketAdapter) CreatePullRequest(_ context.Context, owner, repo string, opts adapter.CreatePROptions) (*adapter.PullRequestInfo, error) {
	res, err := a.client.Repositories.PullRequests.Create(&bitbucket.PullRequestsOptions{
		Owner:             owner,
		RepoSlug:          repo,
		Title:             opts.Title,
		Description:       opts.Body,
		SourceBranch:      opts.Head,
		DestinationBranch: opts.Base,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create pull request: %w", err)
	}
	return bbPullRequestInfo(bbMap(res)), nil
}

// ListPullRequests returns pull requests in the given state.
func (a *BitbucketAdapter) ListPullRequests(_ context.Context, owner, repo string, state string) ([]*adapter.PullRequestInfo, error) {
	opts := &bitbucket.PullRequestsOptions{
		Owner:    owner,
		RepoSlug: repo,
	}
	switch state {
	case "", "open":
		opts.States = []string{"OPEN"}
	case "closed":
		opts.States = []string{"MERGED", "DECLINED"}
	}

	res, err := a.client.Repositories.PullRequests.Gets(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list pull requests: %w", err)
	}

	var out []*adapter.PullRequestInfo
	for _, value := range bbValues(res) {
		if info := bbPullRequestInfo(bbMap(value)); info != nil {
			out = append(out, info)
		}
	}
	return out, nil
}

// GetPullRequestByBranch returns the open pull request whose source branch is
// the given branch, or nil when none exists.
func (a *BitbucketAdapter) GetPullRequestByBranch(_ context.Context, owner, repo, branchName string) (*adapter.PullRequestInfo, error) {
	res, err := a.client.Repositories.PullRequests.Gets(&bitbucket.PullRequestsOptions{
		Owner:    owner,
		RepoSlug: repo,
		Query:    fmt.Sprintf(`source.branch.name = "%s" AND state = "OPEN"`, branchName),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to look up pull request for %s: %w", branchName, err)
	}

	values := bbValues(res)
	if len(values) == 0 {
		return nil, nil
	}
	return bbPullRequestInfo(bbMap(values[0])), nil
}

// MergePullRequest merges a pull request.
func (a *BitbucketAdapter) MergePullRequest(_ context.Context, owner, repo string, number int, message string) error {
	_, err := a.client.Repositories.PullRequests.Merge(&bitbucket.PullRequestsOptions{
		Owner:    owner,
		RepoSlug: repo,
		ID:       strconv.Itoa(number),
		Message:  message,
	})
	if err != nil {
		return fmt.Errorf("failed to merge pull request #%d: %w", number, err)
	}
	return nil
}

// CreateRelease reports that Bitbucket Cloud has no release API.
func (a *BitbucketAdapter) CreateRelease(_ context.Context, _, _ string, _ adapter.ReleaseOptions) (*adapter.ReleaseInfo, error) {
	return nil, shipiterrors.NewNotSupportedError(Bitbucket, "releases")
}

// ListReleases reports that Bitbucket Cloud has no release API.
func (a *BitbucketAdapter) ListReleases(_ context.Context, _, _ string) ([]*adapter.ReleaseInfo, error) {
	return nil, shipiterrors.NewNotSupportedError(Bitbucket, "releases")
}

// ListBranches returns the repository's branches.
func (a *BitbucketAdapter) ListBranches(_ context.Context, owner, repo string) ([]*adapter.BranchInfo, error) {
	res, err := a.client.Repositories.Repository.ListBranches(&bitbucket.RepositoryBranchOptions{
		Owner:    owner,
		RepoSlug: repo,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list branches: %w", err)
	}

	out := make([]*adapter.BranchInfo, 0, len(res.Branches))
	for _, branch := range res.Branches {
		info := &adapter.BranchInfo{Name: branch.Name}
		if hash, ok := branch.Target["hash"].(string); ok {
			info.SHA = hash
		}
		out = append(out, info)
	}
	return out, nil
}

// DeleteBranch deletes a branch.
func (a *BitbucketAdapter) DeleteBranch(_ context.Context, owner, repo, branchName string) error {
	err := a.client.Repositories.Repository.DeleteBranch(&bitbucket.RepositoryBranchDeleteOptions{
		Owner:    owner,
		RepoSlug: repo,
		RefName:  branchName,
	})
	if err != nil {
		return fmt.Errorf("failed to delete branch %s: %w", branchName, err)
	}
	return nil
}

// bbMap narrows a decoded API value to a JSON object.
func bbMap(v interface{}) map[string]interface{} {
	m, _ := v.(map[string]interface{})
	return m
}

// bbValues extracts the values array of a paginated response.
func bbValues(v interface{}) []interface{} {
	values, _ := bbMap(v)["values"].([]interface{})
	return values
}

func bbString(m map[string]interface{}, key string) string {
	s, _ := m[key].(string)
	return s
}

func bbInt(m map[string]interface{}, key string) int {
	f, _ := m[key].(float64)
	return int(f)
}

func bbNested(m map[string]interface{}, keys ...string) map[string]interface{} {
	for _, key := range keys {
		m = bbMap(m[key])
		if m == nil {
			return nil
		}
	}
	return m
}

func bbTime(m map[string]interface{}, key string) time.Time {
	parsed, err := time.Parse(time.RFC3339, bbString(m, key))
	if err != nil {
		return time.Time{}
	}
	return parsed
}

// bbIssueInfo converts a decoded issue object to adapter.IssueInfo
func bbIssueInfo(m map[string]interface{}) *adapter.IssueInfo {
	if m == nil {
		return nil
	}

	info := &adapter.IssueInfo{
		Number:    bbInt(m, "id"),
		Title:     bbString(m, "title"),
		State:     bbString(m, "state"),
		Body:      bbString(bbNested(m, "content"), "raw"),
		Author:    bbString(bbNested(m, "reporter"), "nickname"),
		Assignee:  bbString(bbNested(m, "assignee"), "nickname"),
		Milestone: bbString(bbNested(m, "milestone"), "name"),
		HTMLURL:   bbString(bbNested(m, "links", "html"), "href"),
		CreatedAt: bbTime(m, "created_on"),
	}
	return info
}

// bbPullRequestInfo converts a decoded pull request object to adapter.PullRequestInfo
func bbPullRequestInfo(m map[string]interface{}) *adapter.PullRequestInfo {
	if m == nil {
		return nil
	}

	state := bbString(m, "state")
	info := &adapter.PullRequestInfo{
		Number:    bbInt(m, "id"),
		Title:     bbString(m, "title"),
		Body:      bbString(m, "description"),
		State:     state,
		Merged:    state == "MERGED",
		HTMLURL:   bbString(bbNested(m, "links", "html"), "href"),
		Head:      bbString(bbNested(m, "source", "branch"), "name"),
		Base:      bbString(bbNested(m, "destination", "branch"), "name"),
		Author:    bbString(bbNested(m, "author"), "nickname"),
		CreatedAt: bbTime(m, "created_on"),
	}
	return info
}
