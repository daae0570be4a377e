package chat

import (
	"fmt"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"

	"github.com/killallgit/tadabbur/pkg/chat"
	"github.com/killallgit/tadabbur/pkg/logger"
	"github.com/killallgit/tadabbur/pkg/tui/theme"
)

const (
	jsonFenceOpen  = "```json\n"
	jsonFenceClose = "\n```"
	maxOutputLines = 12
)

// ToolDisplay formats activity entries pushed during an agent run
type ToolDisplay struct {
	styles *theme.Styles
	// Formatter and Style are chroma names used for JSON payloads
	Formatter string
	Style     string
}

func NewToolDisplay(styles *theme.Styles) *ToolDisplay {
	return &ToolDisplay{
		styles:    styles,
		Formatter: "terminal256",
		Style:     "monokai",
	}
}

// Format renders one activity entry
func (td *ToolDisplay) Format(msg chat.Message) string {
	header, body, _ := strings.Cut(msg.Content, "\n\n")

	switch msg.Kind {
	case chat.KindToolCall:
		// Format: ● Calling name
		line := fmt.Sprintf("%s %s", td.styles.ToolIndicator.Render("●"), td.formatHeader(header))
		return td.withBody(line, body)

	case chat.KindToolResult:
		// Format: ⎿ Result from name
		line := fmt.Sprintf("  %s %s", td.styles.ToolIndicator.Render("⎿"), td.formatHeader(header))
		return td.withBody(line, body)

	case chat.KindHandoff:
		return td.styles.Handoff.Render("→ " + strings.ReplaceAll(msg.Content, "**", ""))

	default:
		return td.styles.Progress.Render(msg.Content)
	}
}

// formatHeader highlights the backquoted tool name in a header line
func (td *ToolDisplay) formatHeader(header string) string {
	before, rest, ok := strings.Cut(header, "`")
	if !ok {
		return header
	}
	name, after, _ := strings.Cut(rest, "`")
	return before + td.styles.ToolName.Render(name) + after
}

func (td *ToolDisplay) withBody(line, body string) string {
	if strings.TrimSpace(body) == "" {
		return line
	}
	return line + "\n" + indent(td.formatBody(body), "    ")
}

func (td *ToolDisplay) formatBody(body string) string {
	if strings.HasPrefix(body, jsonFenceOpen) {
		code := strings.TrimSuffix(strings.TrimPrefix(body, jsonFenceOpen), jsonFenceClose)
		return td.highlight(truncateLines(code, maxOutputLines))
	}

	lines := strings.Split(body, "\n")
	for i, l := range lines {
		lines[i] = strings.TrimPrefix(l, "> ")
	}
	return td.styles.ToolOutput.UnsetPaddingLeft().Render(truncateLines(strings.Join(lines, "\n"), maxOutputLines))
}

func (td *ToolDisplay) highlight(code string) string {
	var b strings.Builder
	if err := quick.Highlight(&b, code, "json", td.Formatter, td.Style); err != nil {
		logger.Debug("Failed to highlight tool payload: %v", err)
		return code
	}
	return strings.TrimRight(b.String(), "\n")
}

// truncateLines keeps the first n lines and marks the cut
func truncateLines(s string, n int) string {
	lines := strings.Split(s, "\n")
	if len(lines) <= n {
		return s
	}
	return strings.Join(lines[:n], "\n") + "\n…"
}

func indent(s, prefix string) string {
	lines := strings.Split(s, "\n")
	for i, l := range lines {
		lines[i] = prefix + l
	}
	return strings.Join(lines, "\n")
}
