package tui

import (
	"context"
	"errors"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/killallgit/tadabbur/pkg/chat"
	"github.com/killallgit/tadabbur/pkg/config"
	"github.com/killallgit/tadabbur/pkg/controllers"
	"github.com/killallgit/tadabbur/pkg/logger"
	"github.com/killallgit/tadabbur/pkg/socket"
	tuichat "github.com/killallgit/tadabbur/pkg/tui/chat"
)

// StartApp connects to the backend and runs the chat TUI until the user
// quits or ctx is cancelled. The connection is always closed on return.
func StartApp(ctx context.Context, cfg *config.Config) error {
	client, err := socket.Dial(ctx, cfg.Server.URL, socket.Options{
		HandshakeTimeout: cfg.Server.HandshakeTimeout,
		WriteTimeout:     cfg.Server.WriteTimeout,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to %s: %w", cfg.Server.URL, err)
	}
	defer client.Close()

	controller, err := newController(client, cfg)
	if err != nil {
		return err
	}

	view := tuichat.NewChatModel(controller, client, tuichat.Options{
		Markdown: cfg.Chat.Markdown,
	})
	root := NewRootModel(view)
	p := tea.NewProgram(root, tea.WithContext(ctx), tea.WithAltScreen())

	logger.Info("Starting TUI against %s (session %s)", cfg.Server.URL, controller.SessionID())
	if _, err := p.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("tui exited: %w", err)
	}
	return nil
}

func newController(sender socket.Sender, cfg *config.Config) (*controllers.ChatController, error) {
	opts := []controllers.Option{
		controllers.WithHistoryWindow(cfg.Chat.HistoryWindow),
	}
	controller := controllers.NewChatController(sender, chat.DefaultModel, opts...)
	if _, err := controller.Bootstrap(cfg.Chat.Model, cfg.Chat.Agent); err != nil {
		return nil, err
	}
	return controller, nil
}
