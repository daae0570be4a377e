package headless

import (
	"strings"

	"github.com/killallgit/tadabbur/pkg/chat"
)

// formatEntry prints activity entries as plain text with a marker per kind
func formatEntry(msg chat.Message) string {
	header, body, found := strings.Cut(msg.Content, "\n\n")
	content := strings.ReplaceAll(header, "`", "")
	if found {
		content += "\n\n" + body
	}
	switch msg.Kind {
	case chat.KindToolCall:
		return "● " + content
	case chat.KindToolResult:
		return "⎿ " + content
	case chat.KindHandoff:
		return "→ " + strings.ReplaceAll(content, "**", "")
	default:
		return content
	}
}
