package process

import "github.com/killallgit/tadabbur/pkg/protocol"

// State is what the client is waiting on during a turn
type State string

const (
	StateIdle      State = ""
	StateSending   State = "sending"
	StateReceiving State = "receiving"
	// StateThinking covers server-side work that produces no text yet
	StateThinking State = "thinking"
	StateToolUse  State = "tool"
	StateHandoff  State = "handoff"
)

func (s State) String() string {
	return string(s)
}

// GetIcon returns the icon shown next to the status text
func (s State) GetIcon() string {
	switch s {
	case StateSending:
		return "↑"
	case StateReceiving:
		return "↓"
	case StateThinking:
		return "🤔"
	case StateToolUse:
		return "🔨"
	case StateHandoff:
		return "⇄"
	default:
		return ""
	}
}

// GetDisplayName returns the status text for the state
func (s State) GetDisplayName() string {
	switch s {
	case StateSending:
		return "Sending"
	case StateReceiving:
		return "Receiving"
	case StateThinking:
		return "Thinking"
	case StateToolUse:
		return "Using tools"
	case StateHandoff:
		return "Handing off"
	default:
		return ""
	}
}

// FromKind maps an inbound frame to the state it signals. Frames that say
// nothing about progress map to StateIdle.
func FromKind(kind protocol.Kind) State {
	switch kind {
	case protocol.KindToken, protocol.KindResponseChunk:
		return StateReceiving
	case protocol.KindToolCalled, protocol.KindToolOutput:
		return StateToolUse
	case protocol.KindAgentUpdated:
		return StateHandoff
	case protocol.KindLoading, protocol.KindRunItem:
		return StateThinking
	default:
		return StateIdle
	}
}
