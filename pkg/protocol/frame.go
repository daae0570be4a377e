// Package protocol defines the JSON frames exchanged with the chat backend
// over its WebSocket endpoint.
package protocol

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
)

// Kind is the discriminant of an inbound frame.
type Kind string

const (
	KindToken         Kind = "token"
	KindMessageOutput Kind = "message_output"
	KindFinalOutput   Kind = "final_output"
	KindToolCalled    Kind = "tool_called"
	KindToolOutput    Kind = "tool_output"
	KindAgentUpdated  Kind = "agent_updated"
	KindRunItem       Kind = "run_item"
	KindRunComplete   Kind = "run_complete"
	KindLoading       Kind = "loading_message"
	KindAgent         Kind = "agent"

	// Emitted by the backend outside of the stream_event vocabulary.
	KindResponseChunk Kind = "assistance_response_chunk"
	KindResponse      Kind = "assistance_response"
	KindStreamingEnd  Kind = "streaming_end"
	KindSessionInit   Kind = "session_init"
	KindSessionID     Kind = "session_id"
	KindChatHistory   Kind = "chat-history"
)

var ErrMalformedFrame = errors.New("malformed frame")

// Frame is a decoded inbound frame. Payload fields are populated according
// to the discriminant; unused ones stay empty.
type Frame struct {
	Type        string `json:"type,omitempty"`
	StreamEvent string `json:"stream_event,omitempty"`

	Delta        Text `json:"delta,omitempty"`
	Text         Text `json:"text,omitempty"`
	Content      Text `json:"content,omitempty"`
	ToolName     Text `json:"tool_name,omitempty"`
	ToolInput    Text `json:"tool_input,omitempty"`
	Output       Text `json:"output,omitempty"`
	NewAgentName Text `json:"new_agent_name,omitempty"`
	ItemType     Text `json:"item_type,omitempty"`
	Final        bool `json:"final,omitempty"`

	SessionID    string          `json:"session_id,omitempty"`
	Agent        string          `json:"agent,omitempty"`
	CurrentModel string          `json:"current_model,omitempty"`
	CurrentAgent string          `json:"current_agent,omitempty"`
	ChatHistory  json.RawMessage `json:"chat_history,omitempty"`
}

// Kind returns stream_event when set, type otherwise.
func (f Frame) Kind() Kind {
	if f.StreamEvent != "" {
		return Kind(f.StreamEvent)
	}
	return Kind(f.Type)
}

// Decode parses one inbound frame. Anything but a JSON object is malformed.
func Decode(data []byte) (Frame, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return Frame{}, fmt.Errorf("%w: expected JSON object", ErrMalformedFrame)
	}

	var f Frame
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return Frame{}, fmt.Errorf("%w: %v", ErrMalformedFrame, err)
	}
	return f, nil
}

// Text is a payload field that is usually a string but may carry any JSON
// value; non-string values are kept as compact JSON.
type Text string

func (t *Text) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*t = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Text(s)
		return nil
	}

	var buf bytes.Buffer
	if err := json.Compact(&buf, data); err != nil {
		return err
	}
	*t = Text(buf.String())
	return nil
}

func (t Text) String() string {
	return string(t)
}

// IsJSON reports whether the text holds a JSON object or array.
func (t Text) IsJSON() bool {
	s := bytes.TrimSpace([]byte(t))
	if len(s) == 0 || (s[0] != '{' && s[0] != '[') {
		return false
	}
	return json.Valid(s)
}
