package cli

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"shipit.dev/shipit/internal/runtime"
)

// bodyTemplates holds the built-in description skeletons, keyed by the
// template domain a command declares and then by template name.
var bodyTemplates = map[string]map[string]string{
	"issue-create": {
		"default": "### Expected behavior\n\n### Actual behavior\n\n### Steps to reproduce\n",
		"feature": "### Motivation\n\n### Proposed change\n",
	},
	"pull-request-create": {
		"default": "### What does this change?\n\n### How was it tested?\n",
		"symfony": "| Q             | A\n" +
			"|---------------| ---\n" +
			"| Bug fix?      | no\n" +
			"| New feature?  | no\n" +
			"| BC breaks?    | no\n" +
			"| Deprecations? | no\n" +
			"| Fixed tickets |\n" +
			"| License       | MIT\n",
	},
}

// templateBody resolves the --template flag contributed by the template
// observer into a description body. Commands without the flag, or runs
// without a value, get an empty body.
func templateBody(cmd *cobra.Command) (string, error) {
	flag := cmd.Flags().Lookup("template")
	if flag == nil || flag.Value.String() == "" {
		return "", nil
	}

	domain := cmd.Annotations[runtime.TemplateAnnotation]
	templates, ok := bodyTemplates[domain]
	if !ok {
		return "", fmt.Errorf("command has no templates")
	}

	name := flag.Value.String()
	body, ok := templates[name]
	if !ok {
		names := make([]string, 0, len(templates))
		for n := range templates {
			names = append(names, n)
		}
		sort.Strings(names)
		return "", fmt.Errorf("unknown template %q, available: %s", name, strings.Join(names, ", "))
	}
	return body, nil
}
