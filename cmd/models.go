package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/killallgit/tadabbur/pkg/chat"
	"github.com/killallgit/tadabbur/pkg/config"
	"github.com/killallgit/tadabbur/pkg/controllers"
)

func newModelsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "models",
		Short: "List available models",
		Long:  `List the models the chat backend can switch between. The configured model is marked.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			controller := controllers.NewModelsController(chat.DefaultModelCatalog())
			if err := controller.ListModels(cmd.OutOrStdout(), config.Get().Chat.Model); err != nil {
				return fmt.Errorf("failed to list models: %w", err)
			}
			return nil
		},
	}
}
