package runtime

import (
	"github.com/spf13/cobra"
)

// Observer decorates a command's declared flag surface before dispatch. The
// root command runs every registered observer over each command that
// requires a resolved adapter.
type Observer func(cmd *cobra.Command)

var observers []Observer

// RegisterObserver adds an observer to the decoration pipeline. Observers
// run in registration order.
func RegisterObserver(obs Observer) {
	if obs == nil {
		return
	}
	observers = append(observers, obs)
}

// DecorateCommand runs every registered observer over cmd.
func DecorateCommand(cmd *cobra.Command) {
	for _, obs := range observers {
		obs(cmd)
	}
}

// TemplateAnnotation marks a command as template capable. Its value names
// the template domain the command draws from, and the built-in template
// observer contributes a --template flag to every marked command.
const TemplateAnnotation = "shipit.template"

func init() {
	RegisterObserver(func(cmd *cobra.Command) {
		if cmd.Annotations[TemplateAnnotation] == "" {
			return
		}
		if cmd.Flags().Lookup("template") != nil {
			return
		}
		cmd.Flags().String("template", "", "Name of the description template to apply")
	})
}
