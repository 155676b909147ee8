package runtime_test

import (
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"shipit.dev/shipit/internal/runtime"
)

func TestDecorateCommand(t *testing.T) {
	t.Run("adds a template flag to template capable commands", func(t *testing.T) {
		cmd := &cobra.Command{
			Use:         "create",
			Annotations: map[string]string{runtime.TemplateAnnotation: "pull-request-create"},
		}

		runtime.DecorateCommand(cmd)

		flag := cmd.Flags().Lookup("template")
		require.NotNil(t, flag)
		require.Equal(t, "", flag.DefValue)
	})

	t.Run("leaves other commands untouched", func(t *testing.T) {
		cmd := &cobra.Command{Use: "list"}

		runtime.DecorateCommand(cmd)

		require.Nil(t, cmd.Flags().Lookup("template"))
	})

	t.Run("does not add the template flag twice", func(t *testing.T) {
		cmd := &cobra.Command{
			Use:         "create",
			Annotations: map[string]string{runtime.TemplateAnnotation: "issue-create"},
		}

		runtime.DecorateCommand(cmd)
		runtime.DecorateCommand(cmd)

		require.NotNil(t, cmd.Flags().Lookup("template"))
	})

	t.Run("runs registered observers over the command", func(t *testing.T) {
		runtime.RegisterObserver(func(cmd *cobra.Command) {
			if cmd.Name() != "observer-probe" {
				return
			}
			cmd.Flags().Bool("dry-run", false, "Print what would happen without doing it")
		})

		cmd := &cobra.Command{Use: "observer-probe"}
		runtime.DecorateCommand(cmd)

		require.NotNil(t, cmd.Flags().Lookup("dry-run"))
	})
}
