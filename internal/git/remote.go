package git

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
)

// RemoteOriginURL returns the URL of the origin remote for the repository
// containing dir. The caller controls the timeout through ctx.
func RemoteOriginURL(ctx context.Context, dir string) (string, error) {
	return RunGitCommandInDir(ctx, dir, "config", "--get", "remote.origin.url")
}

// RepoInfo is the hostname, owner, and repository name extracted from a
// remote URL.
type RepoInfo struct {
	Hostname string
	Owner    string
	Repo     string
}

// scpLikeRe matches scp-style remotes such as git@host:owner/repo, plus the
// variant with a slash after the host that some older tooling writes.
var scpLikeRe = regexp.MustCompile(`^[\w.-]+@([\w.-]+)[:/](.+)$`)

// ParseRemoteURL extracts hostname, owner, and repository name from a remote
// URL. It handles https and scp-like ssh remotes, for hosted and self-hosted
// instances alike.
func ParseRemoteURL(remoteURL string) (*RepoInfo, error) {
	trimmed := strings.TrimSuffix(strings.TrimSpace(remoteURL), ".git")

	var host, path string
	switch {
	case scpLikeRe.MatchString(trimmed):
		m := scpLikeRe.FindStringSubmatch(trimmed)
		host, path = m[1], m[2]
	case strings.HasPrefix(trimmed, "https://"), strings.HasPrefix(trimmed, "http://"):
		u, err := url.Parse(trimmed)
		if err != nil {
			return nil, fmt.Errorf("invalid remote URL %q: %w", remoteURL, err)
		}
		host, path = u.Hostname(), u.Path
	default:
		return nil, fmt.Errorf("unrecognized remote URL %q", remoteURL)
	}

	segments := strings.Split(strings.Trim(path, "/"), "/")
	if host == "" || len(segments) < 2 || segments[0] == "" || segments[len(segments)-1] == "" {
		return nil, fmt.Errorf("remote URL %q does not name an owner and repository", remoteURL)
	}

	return &RepoInfo{
		Hostname: host,
		Owner:    segments[0],
		Repo:     segments[len(segments)-1],
	}, nil
}

// OriginInfo resolves the origin remote of the repository containing dir and
// parses it into hostname, owner, and repo.
func OriginInfo(ctx context.Context, dir string) (*RepoInfo, error) {
	remoteURL, err := RemoteOriginURL(ctx, dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read the origin remote: %w", err)
	}
	return ParseRemoteURL(remoteURL)
}
