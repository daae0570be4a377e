package headless

import (
	"context"
	"fmt"

	"github.com/killallgit/tadabbur/pkg/chat"
	"github.com/killallgit/tadabbur/pkg/config"
	"github.com/killallgit/tadabbur/pkg/controllers"
	"github.com/killallgit/tadabbur/pkg/logger"
	"github.com/killallgit/tadabbur/pkg/socket"
)

// runner drives one prompt over one connection
type runner struct {
	client     *socket.Client
	controller *controllers.ChatController
	output     *Output
}

func newRunner(ctx context.Context, cfg *config.Config, output *Output) (*runner, error) {
	client, err := socket.Dial(ctx, cfg.Server.URL, socket.Options{
		HandshakeTimeout: cfg.Server.HandshakeTimeout,
		WriteTimeout:     cfg.Server.WriteTimeout,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", cfg.Server.URL, err)
	}

	controller := controllers.NewChatController(client, chat.DefaultModel,
		controllers.WithHistoryWindow(cfg.Chat.HistoryWindow))
	controller.SetHandler(output.Handler())

	if _, err := controller.Bootstrap(cfg.Chat.Model, cfg.Chat.Agent); err != nil {
		client.Close()
		return nil, err
	}

	return &runner{
		client:     client,
		controller: controller,
		output:     output,
	}, nil
}

// run submits prompt and applies frames until loading turns off
func (r *runner) run(ctx context.Context, prompt string) error {
	logger.Debug("User prompt: %s", prompt)

	if err := r.controller.Submit(prompt); err != nil {
		r.output.Error(fmt.Sprintf("Send error: %v", err))
		return err
	}

	frames := r.client.Frames()
	for {
		select {
		case <-ctx.Done():
			return fmt.Errorf("waiting for reply: %w", ctx.Err())

		case f, ok := <-frames:
			if !ok {
				if ctx.Err() != nil {
					return fmt.Errorf("waiting for reply: %w", ctx.Err())
				}
				err := r.client.Err()
				r.output.Error(fmt.Sprintf("Connection error: %v", err))
				return err
			}

			res := r.controller.HandleFrame(f)
			if res.Notice != "" {
				r.output.Notice(res.Notice)
			}
			if res.Completed {
				logger.WithComponent("headless").Debugw("Response complete",
					"session_id", r.controller.SessionID(),
					"entries", r.controller.GetMessageCount())
				return nil
			}
		}
	}
}

// cleanup closes the connection
func (r *runner) cleanup() error {
	return r.client.Close()
}
