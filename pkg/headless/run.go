package headless

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/killallgit/tadabbur/pkg/config"
	"github.com/killallgit/tadabbur/pkg/logger"
)

var ErrEmptyPrompt = errors.New("prompt cannot be empty in headless mode")

// RunHeadless sends a single prompt and prints the reply to w as it
// streams. It returns once the reply is complete, the connection drops or
// the configured timeout passes.
func RunHeadless(ctx context.Context, cfg *config.Config, prompt string, w io.Writer) error {
	if strings.TrimSpace(prompt) == "" {
		return ErrEmptyPrompt
	}

	if cfg.Headless.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, cfg.Headless.Timeout)
		defer cancel()
	}

	r, err := newRunner(ctx, cfg, NewOutput(w, cfg.Chat.Markdown))
	if err != nil {
		return fmt.Errorf("failed to initialize headless mode: %w", err)
	}
	defer func() {
		if err := r.cleanup(); err != nil {
			logger.Warn("Cleanup error: %v", err)
		}
	}()

	if err := r.run(ctx, prompt); err != nil {
		return fmt.Errorf("failed to execute prompt: %w", err)
	}
	return nil
}
