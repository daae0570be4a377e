package chat

import "strings"

// updateViewportContent re-renders the whole log and scrolls to the end.
func (m *chatModel) updateViewportContent() {
	m.viewport.SetContent(m.renderMessages())
	m.viewport.GotoBottom()
}

// contentWidth is the wrap width for rendered entries.
func (m *chatModel) contentWidth() int {
	if m.viewport.Width <= 0 {
		return 80
	}
	return m.viewport.Width
}

func joinBlocks(blocks []string) string {
	return strings.Join(blocks, "\n\n")
}
