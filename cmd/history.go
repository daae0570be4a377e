package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/killallgit/tadabbur/pkg/chat"
	"github.com/killallgit/tadabbur/pkg/controllers"
)

func newHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history",
		Short: "List previous chats",
		Long:  `List previous chat sessions. Resume one in the TUI with /resume <session_id>.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			controller := controllers.NewHistoryController(chat.DefaultRecords())
			if err := controller.ListHistory(cmd.OutOrStdout()); err != nil {
				return fmt.Errorf("failed to list history: %w", err)
			}
			return nil
		},
	}
}
