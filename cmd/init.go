package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/killallgit/tadabbur/pkg/config"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create .tadabbur/settings.yaml with default settings",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.InitializeDefaults(); err != nil {
				return fmt.Errorf("failed to write settings: %w", err)
			}
			return nil
		},
	}
}
