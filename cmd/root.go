package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/killallgit/tadabbur/pkg/config"
	"github.com/killallgit/tadabbur/pkg/headless"
	"github.com/killallgit/tadabbur/pkg/logger"
	"github.com/killallgit/tadabbur/pkg/tui"
)

var cfgFile string

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	var (
		prompt       string
		headlessMode bool
	)

	cmd := &cobra.Command{
		Use:   "tadabbur",
		Short: "Chat with the Tadabbur Quran study assistant",
		Long: `Terminal client for the Tadabbur backend. Ask about the Quran and its
tafsir, or switch to the story-telling agent, from a full-screen chat or
with a one-shot prompt.`,
		SilenceUsage:      true,
		PersistentPreRunE: initConfig,
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			logger.Close()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Get()
			if headlessMode || prompt != "" {
				return headless.RunHeadless(cmd.Context(), cfg, prompt, cmd.OutOrStdout())
			}
			return tui.StartApp(cmd.Context(), cfg)
		},
	}

	flags := cmd.PersistentFlags()
	flags.StringVarP(&cfgFile, "config", "c", "", "config file (default is .tadabbur/settings.yaml)")
	flags.StringP("log-level", "l", "info", "log level (debug, info, warn, error)")
	flags.String("url", "", "chat backend WebSocket URL")
	flags.String("model", "", "model to select after connecting")
	flags.String("agent", "", "agent to switch to after connecting (tafseer, story-telling)")

	bindFlag(cmd, "logging.level", "log-level")
	bindFlag(cmd, "server.url", "url")
	bindFlag(cmd, "chat.model", "model")
	bindFlag(cmd, "chat.agent", "agent")

	cmd.Flags().StringVarP(&prompt, "prompt", "p", "", "send a prompt without entering the TUI")
	cmd.Flags().BoolVarP(&headlessMode, "headless", "H", false, "run without TUI (requires --prompt)")

	cmd.AddCommand(newModelsCmd(), newHistoryCmd(), newInitCmd())
	return cmd
}

// bindFlag binds a persistent flag to a config key. Unset flags fall through
// to the file, environment and defaults.
func bindFlag(cmd *cobra.Command, key, flag string) {
	if err := viper.BindPFlag(key, cmd.PersistentFlags().Lookup(flag)); err != nil {
		panic(fmt.Sprintf("cmd: bind %s: %v", flag, err))
	}
}

func initConfig(cmd *cobra.Command, args []string) error {
	if _, err := config.Load(cfgFile); err != nil {
		return err
	}
	if err := logger.Init(); err != nil {
		return err
	}
	if used := config.GetConfigFileUsed(); used != "" {
		logger.Debug("Using config file: %s", used)
	}
	return nil
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		os.Exit(1)
	}
}
