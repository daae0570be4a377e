package protocol

import "github.com/killallgit/tadabbur/pkg/chat"

const (
	typeNewSession     = "new-session"
	typeModelSelection = "model-selection"
	typeAgent          = "agent"
)

// SessionFrame asks the server to switch to an existing or fresh session.
type SessionFrame struct {
	SessionID string `json:"session_id"`
}

// NewSessionFrame announces the session id right after connecting.
type NewSessionFrame struct {
	Type      string `json:"type"`
	SessionID string `json:"session_id"`
}

// MessagesFrame carries the trailing window of the conversation.
type MessagesFrame struct {
	Messages []chat.Message `json:"messages"`
}

type ModelSelectionFrame struct {
	Type  string `json:"type"`
	Model string `json:"model"`
}

type AgentFrame struct {
	Type  string `json:"type"`
	Agent string `json:"agent"`
}

func NewSession(sessionID string) NewSessionFrame {
	return NewSessionFrame{Type: typeNewSession, SessionID: sessionID}
}

func Session(sessionID string) SessionFrame {
	return SessionFrame{SessionID: sessionID}
}

func Messages(messages []chat.Message) MessagesFrame {
	if messages == nil {
		messages = []chat.Message{}
	}
	return MessagesFrame{Messages: messages}
}

func ModelSelection(model string) ModelSelectionFrame {
	return ModelSelectionFrame{Type: typeModelSelection, Model: model}
}

func SwitchAgent(agent string) AgentFrame {
	return AgentFrame{Type: typeAgent, Agent: agent}
}
