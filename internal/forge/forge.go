// Package forge implements the built-in provider adapters and the remote
// detection that selects between them.
package forge

import (
	"shipit.dev/shipit/internal/adapter"
)

// Provider identifiers. These are the legal values of the top-level adapter
// configuration key and the names the built-in factories register under.
const (
	GitHub           = "github"
	GitHubEnterprise = "github_enterprise"
	Bitbucket        = "bitbucket"
	GitLab           = "gitlab"
)

// Builtins registers the built-in provider factories. They go through the
// registry's public Register path exactly like a third-party factory would.
func Builtins(reg *adapter.Registry) error {
	factories := []adapter.Factory{
		NewGitHubFactory(GitHub),
		NewGitHubFactory(GitHubEnterprise),
		NewBitbucketFactory(),
		NewGitLabFactory(),
	}

	for _, factory := range factories {
		if err := reg.Register(factory); err != nil {
			return err
		}
	}
	return nil
}

var (
	_ adapter.Adapter = (*GitHubAdapter)(nil)
	_ adapter.Adapter = (*GitLabAdapter)(nil)
	_ adapter.Adapter = (*BitbucketAdapter)(nil)
)
