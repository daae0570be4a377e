package stream

import (
	"io"
	"strings"

	"github.com/killallgit/tadabbur/pkg/chat"
)

// EntryFormatter renders a standalone entry for a WriterHandler.
type EntryFormatter func(msg chat.Message) string

// WriterHandler adapts an io.Writer to the Handler interface. It tracks
// what it printed for the trailing assistant entry so a final replacement
// only prints what is new.
type WriterHandler struct {
	writer  io.Writer
	printed strings.Builder
	format  EntryFormatter
	render  func(string) string
}

// NewWriterHandler creates a new handler that writes to an io.Writer
func NewWriterHandler(w io.Writer) *WriterHandler {
	return &WriterHandler{
		writer: w,
		format: func(msg chat.Message) string { return msg.Content },
		render: func(s string) string { return s },
	}
}

// WithEntryFormatter sets how standalone entries are printed.
func (w *WriterHandler) WithEntryFormatter(f EntryFormatter) *WriterHandler {
	if f != nil {
		w.format = f
	}
	return w
}

// WithFinalRenderer sets how a replaced final answer is printed.
func (w *WriterHandler) WithFinalRenderer(r func(string) string) *WriterHandler {
	if r != nil {
		w.render = r
	}
	return w
}

// OnChunk writes the chunk to the underlying writer
func (w *WriterHandler) OnChunk(chunk []byte) error {
	if _, err := w.writer.Write(chunk); err != nil {
		return err
	}
	w.printed.Write(chunk)
	return nil
}

// OnEntry prints a standalone entry on its own lines; later chunks extend it.
func (w *WriterHandler) OnEntry(msg chat.Message) error {
	prefix := ""
	if w.printed.Len() > 0 {
		prefix = "\n\n"
	}
	if _, err := io.WriteString(w.writer, prefix+w.format(msg)+"\n\n"); err != nil {
		return err
	}
	w.printed.Reset()
	w.printed.WriteString(msg.Content)
	return nil
}

// OnComplete writes whatever part of the final content was not streamed.
func (w *WriterHandler) OnComplete(finalContent string) error {
	printed := w.printed.String()
	defer func() {
		w.printed.Reset()
	}()

	var out string
	switch {
	case finalContent == "" || finalContent == printed:
	case strings.HasPrefix(finalContent, printed) && printed != "":
		out = strings.TrimPrefix(finalContent, printed)
	case printed == "":
		out = w.render(finalContent)
	default:
		out = "\n\n" + w.render(finalContent)
	}

	if !strings.HasSuffix(printed+out, "\n") {
		out += "\n"
	}
	_, err := io.WriteString(w.writer, out)
	return err
}

// OnError is a no-op; write errors are returned from the other callbacks.
func (w *WriterHandler) OnError(err error) {}

// GetContent returns what has been printed for the current trailing entry.
func (w *WriterHandler) GetContent() string {
	return w.printed.String()
}

// MultiHandler broadcasts to multiple handlers, like io.MultiWriter.
type MultiHandler struct {
	handlers []Handler
}

// NewMultiHandler creates a handler that forwards to multiple handlers
func NewMultiHandler(handlers ...Handler) *MultiHandler {
	return &MultiHandler{
		handlers: handlers,
	}
}

// OnChunk forwards the chunk to all handlers
func (m *MultiHandler) OnChunk(chunk []byte) error {
	for _, h := range m.handlers {
		if err := h.OnChunk(chunk); err != nil {
			return err
		}
	}
	return nil
}

// OnEntry forwards the entry to all handlers
func (m *MultiHandler) OnEntry(msg chat.Message) error {
	for _, h := range m.handlers {
		if err := h.OnEntry(msg); err != nil {
			return err
		}
	}
	return nil
}

// OnComplete forwards completion to all handlers
func (m *MultiHandler) OnComplete(finalContent string) error {
	for _, h := range m.handlers {
		if err := h.OnComplete(finalContent); err != nil {
			return err
		}
	}
	return nil
}

// OnError forwards errors to all handlers
func (m *MultiHandler) OnError(err error) {
	for _, h := range m.handlers {
		h.OnError(err)
	}
}

var (
	_ Handler = (*WriterHandler)(nil)
	_ Handler = (*MultiHandler)(nil)
)
