package controllers

import (
	"fmt"
	"strings"

	"github.com/killallgit/tadabbur/pkg/chat"
)

// Bootstrap announces a fresh session, selects the configured model and,
// when it differs from the server default, switches agent. It returns the
// session id.
func (cc *ChatController) Bootstrap(model, agent string) (string, error) {
	id, err := cc.StartSession()
	if err != nil {
		return "", err
	}

	if model = strings.TrimSpace(model); model != "" {
		if err := cc.SelectModel(model); err != nil {
			return id, fmt.Errorf("failed to select model: %w", err)
		}
	}

	if agent = strings.TrimSpace(agent); agent != "" && !strings.EqualFold(agent, chat.DefaultAgentProfile().Name) {
		if err := cc.SwitchAgent(agent); err != nil {
			return id, fmt.Errorf("failed to switch agent: %w", err)
		}
	}
	return id, nil
}
