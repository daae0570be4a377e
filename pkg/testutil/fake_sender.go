package testutil

import (
	"encoding/json"
	"sync"
)

// FakeSender records every value sent through it as JSON.
type FakeSender struct {
	mu   sync.Mutex
	sent []json.RawMessage
	err  error
}

func NewFakeSender() *FakeSender {
	return &FakeSender{}
}

// Send implements socket.Sender.
func (s *FakeSender) Send(v any) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.err != nil {
		return s.err
	}
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	s.sent = append(s.sent, data)
	return nil
}

// FailWith makes subsequent sends return err. nil restores success.
func (s *FakeSender) FailWith(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.err = err
}

func (s *FakeSender) Sent() []json.RawMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	result := make([]json.RawMessage, len(s.sent))
	copy(result, s.sent)
	return result
}

// Last decodes the most recent sent value into a generic map.
func (s *FakeSender) Last() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.sent) == 0 {
		return nil
	}
	var m map[string]any
	_ = json.Unmarshal(s.sent[len(s.sent)-1], &m)
	return m
}
