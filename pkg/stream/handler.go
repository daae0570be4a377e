package stream

import "github.com/killallgit/tadabbur/pkg/chat"

// Handler observes what the assembler does to the message log. It lets
// output sinks follow a response without re-reading the whole log.
type Handler interface {
	// OnChunk is called with each delta appended to the trailing assistant entry.
	OnChunk(chunk []byte) error

	// OnEntry is called when a standalone assistant entry is pushed.
	OnEntry(msg chat.Message) error

	// OnComplete is called when loading turns off, with the trailing
	// assistant content at that point.
	OnComplete(finalContent string) error

	// OnError is called when applying a frame fails downstream.
	OnError(err error)
}

// HandlerFunc is a function adapter for Handler interface
type HandlerFunc struct {
	ChunkFunc    func(chunk []byte) error
	EntryFunc    func(msg chat.Message) error
	CompleteFunc func(finalContent string) error
	ErrorFunc    func(err error)
}

// OnChunk implements Handler
func (h HandlerFunc) OnChunk(chunk []byte) error {
	if h.ChunkFunc != nil {
		return h.ChunkFunc(chunk)
	}
	return nil
}

// OnEntry implements Handler
func (h HandlerFunc) OnEntry(msg chat.Message) error {
	if h.EntryFunc != nil {
		return h.EntryFunc(msg)
	}
	return nil
}

// OnComplete implements Handler
func (h HandlerFunc) OnComplete(finalContent string) error {
	if h.CompleteFunc != nil {
		return h.CompleteFunc(finalContent)
	}
	return nil
}

// OnError implements Handler
func (h HandlerFunc) OnError(err error) {
	if h.ErrorFunc != nil {
		h.ErrorFunc(err)
	}
}

var _ Handler = HandlerFunc{}
