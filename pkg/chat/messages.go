package chat

import (
	"strings"
)

// Message is one entry of the chat log. Only Role and Content travel over
// the wire; Kind is a display hint for entries the assistant side pushes
// while an agent run is in progress.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
	Kind    Kind   `json:"-"`
}

// Kind classifies assistant entries for rendering.
type Kind int

const (
	KindReply Kind = iota
	KindToolCall
	KindToolResult
	KindHandoff
	KindProgress
)

func (k Kind) String() string {
	switch k {
	case KindReply:
		return "reply"
	case KindToolCall:
		return "tool_call"
	case KindToolResult:
		return "tool_result"
	case KindHandoff:
		return "handoff"
	case KindProgress:
		return "progress"
	default:
		return "unknown"
	}
}

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// NewUserMessage keeps content exactly as typed; callers decide whether it is
// blank with IsEmpty.
func NewUserMessage(content string) Message {
	return Message{
		Role:    RoleUser,
		Content: content,
	}
}

func NewAssistantMessage(content string) Message {
	return Message{
		Role:    RoleAssistant,
		Content: content,
	}
}

// NewPlaceholderMessage returns the empty assistant entry appended on submit
// that streamed content is later written into.
func NewPlaceholderMessage() Message {
	return NewAssistantMessage("")
}

// NewActivityMessage returns a standalone assistant entry describing
// intermediate agent activity.
func NewActivityMessage(kind Kind, content string) Message {
	return Message{
		Role:    RoleAssistant,
		Content: content,
		Kind:    kind,
	}
}

func (m Message) IsUser() bool {
	return m.Role == RoleUser
}

func (m Message) IsAssistant() bool {
	return m.Role == RoleAssistant
}

func (m Message) IsActivity() bool {
	return m.IsAssistant() && m.Kind != KindReply
}

func (m Message) IsEmpty() bool {
	return strings.TrimSpace(m.Content) == ""
}

func (m Message) WithContent(content string) Message {
	return Message{
		Role:    m.Role,
		Content: content,
		Kind:    m.Kind,
	}
}
