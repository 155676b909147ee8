package forge

import (
	"context"
	"strings"
	"time"

	shipiterrors "shipit.dev/shipit/internal/errors"
	"shipit.dev/shipit/internal/git"
)

// DetectTimeout bounds the git subprocess used for provider detection.
const DetectTimeout = 5 * time.Second

// Detect determines the provider identifier for the repository in workDir by
// reading the origin remote URL. Only a failing git invocation is fatal; a
// URL that matches no known provider falls back to GitHub.
func Detect(ctx context.Context, workDir string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, DetectTimeout)
	defer cancel()

	remoteURL, err := git.RemoteOriginURL(ctx, workDir)
	if err != nil {
		return "", shipiterrors.NewDetectionError(workDir, err)
	}

	return DetectFromURL(remoteURL), nil
}

// DetectFromURL maps a remote URL onto a provider identifier. Matching is a
// case-insensitive substring check in fixed priority order; anything
// unrecognized, including an empty URL, yields GitHub.
func DetectFromURL(remoteURL string) string {
	url := strings.ToLower(remoteURL)

	switch {
	case strings.Contains(url, "github.com"):
		return GitHub
	case strings.Contains(url, "bitbucket.org"):
		return Bitbucket
	case strings.Contains(url, "gitlab.com"):
		return GitLab
	default:
		return GitHub
	}
}
