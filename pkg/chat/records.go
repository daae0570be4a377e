package chat

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"

	"gopkg.in/yaml.v3"
)

//go:embed fixtures/history.yaml
var historyFixture []byte

// ChatRecord is one row of the chat history panel. Every field may be
// null on the wire; null decodes to the empty string.
type ChatRecord struct {
	SessionID   string `json:"session_id" yaml:"session_id"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Date        string `json:"date" yaml:"date"`
}

// DefaultRecords returns the bundled history shown until the server pushes
// its own list.
func DefaultRecords() []ChatRecord {
	var records []ChatRecord
	if err := yaml.Unmarshal(historyFixture, &records); err != nil {
		// the fixture is compiled in; a decode failure is a build defect
		panic(fmt.Sprintf("chat: invalid history fixture: %v", err))
	}
	return records
}

// ErrNoHistory is returned for a chat_history payload that is absent, null
// or an empty list.
var ErrNoHistory = errors.New("chat history is empty")

// ParseRecords decodes the chat_history payload of a chat-history frame.
func ParseRecords(data []byte) ([]ChatRecord, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		return nil, ErrNoHistory
	}
	var records []ChatRecord
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to decode chat history: %w", err)
	}
	if len(records) == 0 {
		return nil, ErrNoHistory
	}
	return records, nil
}

// FindRecord looks a record up by session id.
func FindRecord(records []ChatRecord, sessionID string) (ChatRecord, bool) {
	for _, r := range records {
		if r.SessionID == sessionID {
			return r, true
		}
	}
	return ChatRecord{}, false
}
