package testutil

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Responder produces the frames the fake backend writes back for one
// inbound message.
type Responder func(inbound map[string]any) []any

// FakeBackend is a scripted chat backend speaking the WebSocket protocol
// over an httptest server.
type FakeBackend struct {
	server   *httptest.Server
	upgrader websocket.Upgrader

	mu        sync.Mutex
	received  []json.RawMessage
	onConnect []any
	responder Responder
	dropAfter int // close the connection after N frames (0 = never)
	sent      int

	frameDelay time.Duration
	open       map[*websocket.Conn]struct{}
	conns      sync.WaitGroup
}

// NewFakeBackend starts a fake backend. Close must be called to stop it.
func NewFakeBackend(responder Responder) *FakeBackend {
	b := &FakeBackend{
		responder: responder,
		open:      make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
	b.server = httptest.NewServer(http.HandlerFunc(b.serve))
	return b
}

// URL returns the ws:// address of the backend.
func (b *FakeBackend) URL() string {
	return "ws" + strings.TrimPrefix(b.server.URL, "http")
}

// SetOnConnect sets frames written as soon as a client connects.
func (b *FakeBackend) SetOnConnect(frames ...any) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.onConnect = frames
}

// SetFrameDelay sets the delay between written frames.
func (b *FakeBackend) SetFrameDelay(d time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.frameDelay = d
}

// SetDropAfter makes the backend drop the connection after n frames.
func (b *FakeBackend) SetDropAfter(n int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.dropAfter = n
}

// Received returns every message the backend has read, in order.
func (b *FakeBackend) Received() []json.RawMessage {
	b.mu.Lock()
	defer b.mu.Unlock()
	result := make([]json.RawMessage, len(b.received))
	copy(result, b.received)
	return result
}

// ReceivedCount returns the number of messages read so far.
func (b *FakeBackend) ReceivedCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.received)
}

// Close drops every open connection and stops the server.
func (b *FakeBackend) Close() {
	b.mu.Lock()
	for conn := range b.open {
		conn.Close()
	}
	b.mu.Unlock()
	b.server.Close()
	b.conns.Wait()
}

// DropConnections closes every open connection without a close frame.
func (b *FakeBackend) DropConnections() {
	b.mu.Lock()
	defer b.mu.Unlock()
	for conn := range b.open {
		conn.Close()
	}
}

func (b *FakeBackend) serve(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	b.conns.Add(1)
	defer b.conns.Done()

	b.mu.Lock()
	b.open[conn] = struct{}{}
	greeting := b.onConnect
	b.mu.Unlock()

	defer func() {
		b.mu.Lock()
		delete(b.open, conn)
		b.mu.Unlock()
		conn.Close()
	}()
	if !b.write(conn, greeting) {
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}

		b.mu.Lock()
		b.received = append(b.received, json.RawMessage(data))
		responder := b.responder
		b.mu.Unlock()

		if responder == nil {
			continue
		}
		var inbound map[string]any
		if err := json.Unmarshal(data, &inbound); err != nil {
			continue
		}
		if !b.write(conn, responder(inbound)) {
			return
		}
	}
}

// write sends frames in order and reports whether the connection is still
// usable. Raw strings and byte slices are written verbatim.
func (b *FakeBackend) write(conn *websocket.Conn, frames []any) bool {
	for _, f := range frames {
		b.mu.Lock()
		delay := b.frameDelay
		drop := b.dropAfter > 0 && b.sent >= b.dropAfter
		b.sent++
		b.mu.Unlock()

		if drop {
			return false
		}
		if delay > 0 {
			time.Sleep(delay)
		}

		var err error
		switch v := f.(type) {
		case string:
			err = conn.WriteMessage(websocket.TextMessage, []byte(v))
		case []byte:
			err = conn.WriteMessage(websocket.TextMessage, v)
		default:
			err = conn.WriteJSON(v)
		}
		if err != nil {
			return false
		}
	}
	return true
}

// StreamReply splits text into assistance_response_chunk frames of
// chunkSize bytes, followed by the authoritative reply and streaming_end,
// the sequence the chat backend emits for one answer.
func StreamReply(text string, chunkSize int) []any {
	if chunkSize <= 0 {
		chunkSize = len(text)
	}
	var frames []any
	for i := 0; i < len(text); i += chunkSize {
		end := i + chunkSize
		if end > len(text) {
			end = len(text)
		}
		frames = append(frames, map[string]any{
			"type":    "assistance_response_chunk",
			"content": text[i:end],
		})
	}
	frames = append(frames,
		map[string]any{"type": "assistance_response", "content": text, "final": true},
		map[string]any{"type": "streaming_end"},
	)
	return frames
}

// EventReply builds a stream_event style run: token deltas, then
// final_output and run_complete.
func EventReply(deltas ...string) []any {
	var frames []any
	for _, d := range deltas {
		frames = append(frames, map[string]any{"stream_event": "token", "delta": d})
	}
	frames = append(frames,
		map[string]any{"stream_event": "final_output", "text": strings.Join(deltas, "")},
		map[string]any{"stream_event": "run_complete"},
	)
	return frames
}

// ReplyToMessages answers only compose frames (those carrying messages)
// with the frames produced by reply.
func ReplyToMessages(reply func(lastUser string) []any) Responder {
	return func(inbound map[string]any) []any {
		msgs, ok := inbound["messages"].([]any)
		if !ok || len(msgs) == 0 {
			return nil
		}
		last, _ := msgs[len(msgs)-1].(map[string]any)
		content, _ := last["content"].(string)
		return reply(content)
	}
}
