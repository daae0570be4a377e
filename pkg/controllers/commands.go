package controllers

import (
	"errors"
	"fmt"
	"strings"
)

var ErrUnknownCommand = errors.New("unknown command")

// Action reports what HandleInput did so the UI can follow up.
type Action int

const (
	ActionNone Action = iota
	ActionSent
	ActionNewChat
	ActionModelSelected
	ActionAgentSwitched
	ActionShowHistory
	ActionResumed
)

func (a Action) String() string {
	switch a {
	case ActionNone:
		return "none"
	case ActionSent:
		return "sent"
	case ActionNewChat:
		return "new_chat"
	case ActionModelSelected:
		return "model_selected"
	case ActionAgentSwitched:
		return "agent_switched"
	case ActionShowHistory:
		return "show_history"
	case ActionResumed:
		return "resumed"
	default:
		return "unknown"
	}
}

// Commands lists the slash commands with a short usage line each.
var Commands = []struct {
	Name  string
	Usage string
}{
	{"/new", "start a new chat"},
	{"/model <name>", "switch the model"},
	{"/agent <name>", "switch between tafseer and story-telling"},
	{"/history", "show previous chats"},
	{"/resume <session_id>", "continue a previous chat"},
}

// HandleInput runs a slash command or submits the input as a message.
func (cc *ChatController) HandleInput(input string) (Action, error) {
	trimmed := strings.TrimSpace(input)
	if !strings.HasPrefix(trimmed, "/") {
		if err := cc.Submit(input); err != nil {
			if errors.Is(err, ErrEmptyInput) {
				return ActionNone, err
			}
			return ActionSent, err
		}
		return ActionSent, nil
	}

	name, arg, _ := strings.Cut(trimmed, " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(name) {
	case "/new":
		_, err := cc.NewChat()
		return ActionNewChat, err
	case "/model":
		if arg == "" {
			_, err := cc.CycleModel()
			return ActionModelSelected, err
		}
		return ActionModelSelected, cc.SelectModel(arg)
	case "/agent":
		if arg == "" {
			return ActionNone, fmt.Errorf("agent name: %w", ErrEmptyInput)
		}
		return ActionAgentSwitched, cc.SwitchAgent(arg)
	case "/history":
		return ActionShowHistory, nil
	case "/resume":
		return ActionResumed, cc.ResumeSession(arg)
	default:
		return ActionNone, fmt.Errorf("%w: %s", ErrUnknownCommand, name)
	}
}
