package stream

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/killallgit/tadabbur/pkg/protocol"
)

const progressText = "Working on your request..."

func describeToolCall(f protocol.Frame) string {
	name := strings.TrimSpace(f.ToolName.String())
	if name == "" {
		name = "tool"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Calling `%s`", name)
	if input := strings.TrimSpace(f.ToolInput.String()); input != "" {
		b.WriteString("\n\n")
		b.WriteString(fence(f.ToolInput))
	}
	return b.String()
}

func describeToolOutput(f protocol.Frame) string {
	title := "Tool result"
	if name := strings.TrimSpace(f.ToolName.String()); name != "" {
		title = fmt.Sprintf("Result from `%s`", name)
	}
	output := strings.TrimSpace(f.Output.String())
	if output == "" {
		return title
	}
	return title + "\n\n" + fence(f.Output)
}

func describeHandoff(f protocol.Frame) string {
	name := strings.TrimSpace(f.NewAgentName.String())
	if name == "" {
		return "Handing off to another agent"
	}
	return fmt.Sprintf("Handing off to **%s**", name)
}

func describeRunItem(f protocol.Frame) string {
	if item := strings.TrimSpace(f.ItemType.String()); item != "" {
		return fmt.Sprintf("%s (%s)", progressText, item)
	}
	return progressText
}

// fence wraps JSON payloads in an indented json code block and quotes
// anything else.
func fence(t protocol.Text) string {
	if t.IsJSON() {
		var buf bytes.Buffer
		if err := json.Indent(&buf, []byte(t), "", "  "); err == nil {
			return "```json\n" + buf.String() + "\n```"
		}
	}
	lines := strings.Split(strings.TrimSpace(t.String()), "\n")
	for i, l := range lines {
		lines[i] = "> " + l
	}
	return strings.Join(lines, "\n")
}
