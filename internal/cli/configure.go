package cli

import (
	"fmt"
	"strings"

	"github.com/AlecAivazis/survey/v2"
	"github.com/spf13/cobra"

	"shipit.dev/shipit/internal/adapter"
	"shipit.dev/shipit/internal/config"
	"shipit.dev/shipit/internal/forge"
	"shipit.dev/shipit/internal/output"
	"shipit.dev/shipit/internal/tui"
)

// newConfigureCmd creates the configure command. It deliberately does not go
// through the runtime context, configuring must work before any adapter can
// be built.
func newConfigureCmd() *cobra.Command {
	var (
		adapterName string
		username    string
		token       string
		baseURL     string
	)

	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Store the provider and credentials shipit should use",
		Long: `Configure writes ~/.shipit.yml with the provider and credentials every other
command needs. Without flags it asks interactively. Existing configuration
for other providers is kept.`,
		Args: cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			splog := output.NewSplog()
			interactive := tui.Interactive()

			reg := adapter.NewRegistry()
			if err := forge.Builtins(reg); err != nil {
				return err
			}

			if adapterName == "" {
				if !interactive {
					return fmt.Errorf("pass --adapter when running non-interactively")
				}
				choice, err := promptAdapterChoice(reg)
				if err != nil {
					return err
				}
				adapterName = choice
			}
			if _, ok := reg.Lookup(adapterName); !ok {
				return fmt.Errorf("unknown adapter %q, pick one of %s", adapterName, strings.Join(reg.Identifiers(), ", "))
			}

			if baseURL == "" {
				baseURL = defaultBaseURL(adapterName)
				if interactive {
					prompt := &survey.Input{Message: "API endpoint", Default: baseURL}
					if err := survey.AskOne(prompt, &baseURL); err != nil {
						return fmt.Errorf("canceled")
					}
				}
			}
			if baseURL == "" {
				return fmt.Errorf("pass --base-url, %s has no default endpoint", adapterName)
			}

			if username == "" {
				if !interactive {
					return fmt.Errorf("pass --username when running non-interactively")
				}
				prompt := &survey.Input{Message: "Username"}
				if err := survey.AskOne(prompt, &username); err != nil {
					return fmt.Errorf("canceled")
				}
			}

			if token == "" {
				if !interactive {
					return fmt.Errorf("pass --token when running non-interactively")
				}
				prompt := &survey.Password{Message: "API token"}
				if err := survey.AskOne(prompt, &token); err != nil {
					return fmt.Errorf("canceled")
				}
			}

			tree := map[string]any{
				"adapter": adapterName,
				"adapters": map[string]any{
					adapterName: map[string]any{
						"config": map[string]any{
							"base_url": baseURL,
						},
						"authentication": map[string]any{
							"username": username,
							"token":    token,
						},
					},
				},
			}

			merged, err := mergeWithExistingConfig(splog, tree)
			if err != nil {
				return err
			}

			path, err := config.WriteUserConfig(merged)
			if err != nil {
				return err
			}

			splog.Success("Configuration written to %s", path)
			return nil
		},
	}

	cmd.Flags().StringVar(&adapterName, "adapter", "", "Provider identifier (github, github_enterprise, bitbucket, gitlab)")
	cmd.Flags().StringVar(&username, "username", "", "Provider username")
	cmd.Flags().StringVar(&token, "token", "", "API token or application password")
	cmd.Flags().StringVar(&baseURL, "base-url", "", "API endpoint (defaults to the provider's public endpoint)")

	return cmd
}

func promptAdapterChoice(reg *adapter.Registry) (string, error) {
	var choice string
	prompt := &survey.Select{
		Message: "Which provider do you use?",
		Options: reg.Identifiers(),
		Default: forge.GitHub,
	}
	if err := survey.AskOne(prompt, &choice); err != nil {
		return "", fmt.Errorf("canceled")
	}
	return choice, nil
}

// mergeWithExistingConfig layers the freshly gathered tree over whatever the
// user configuration file already holds, so configuring one provider does
// not wipe another.
func mergeWithExistingConfig(splog *output.Splog, tree map[string]any) (map[string]any, error) {
	path, err := config.UserConfigPath()
	if err != nil {
		return tree, nil
	}

	existing, err := config.LoadFile(path)
	if err != nil {
		splog.Warn("Existing configuration at %s could not be parsed and will be replaced", path)
		return tree, nil
	}

	if err := existing.Merge(tree); err != nil {
		return nil, err
	}
	return existing.Raw(), nil
}

func defaultBaseURL(identifier string) string {
	switch identifier {
	case forge.GitHub:
		return "https://api.github.com/"
	case forge.GitLab:
		return "https://gitlab.com/"
	case forge.Bitbucket:
		return "https://api.bitbucket.org/2.0/"
	default:
		return ""
	}
}
