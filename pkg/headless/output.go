package headless

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/killallgit/tadabbur/pkg/logger"
	"github.com/killallgit/tadabbur/pkg/stream"
)

const defaultWrap = 100

var (
	noticeColor = color.New(color.FgYellow)
	errorColor  = color.New(color.FgRed, color.Bold)
)

// Output handles console output for headless mode
type Output struct {
	writer   io.Writer
	errOut   io.Writer
	renderer *glamour.TermRenderer
}

// NewOutput creates a new output handler. Markdown is rendered only when
// markdown is set and w is a terminal.
func NewOutput(w io.Writer, markdown bool) *Output {
	o := &Output{writer: w, errOut: os.Stderr}

	f, ok := w.(*os.File)
	if !markdown || !ok || !isTerminal(f) {
		return o
	}

	wrap := defaultWrap
	if width, _, err := term.GetSize(int(f.Fd())); err == nil && width > 0 {
		wrap = width
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(wrap))
	if err != nil {
		logger.Warn("Markdown rendering disabled: %v", err)
		return o
	}
	o.renderer = r
	return o
}

func isTerminal(f *os.File) bool {
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Handler returns a stream handler printing deltas and standalone entries
func (o *Output) Handler() stream.Handler {
	return stream.NewWriterHandler(o.writer).
		WithEntryFormatter(formatEntry).
		WithFinalRenderer(o.render)
}

func (o *Output) render(content string) string {
	if o.renderer == nil {
		return content
	}
	out, err := o.renderer.Render(content)
	if err != nil {
		logger.Debug("Markdown render failed: %v", err)
		return content
	}
	return strings.Trim(out, "\n")
}

// Notice prints a server notice on its own line
func (o *Output) Notice(msg string) {
	noticeColor.Fprintf(o.writer, "\nℹ %s\n", msg)
}

// Error logs msg and echoes it to stderr
func (o *Output) Error(msg string) {
	logger.Error("%s", msg)
	if o.errOut != nil {
		errorColor.Fprintf(o.errOut, "✗ %s\n", msg)
	}
}
