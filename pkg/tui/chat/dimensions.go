package chat

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

const maxTextAreaHeight = 10

// calculateTextAreaHeight determines the visual height of the textarea
// based on its content and wrapping
func (m *chatModel) calculateTextAreaHeight() int {
	content := m.textarea.Value()
	if content == "" {
		return 1
	}

	textWidth := m.textarea.Width()
	if textWidth <= 0 {
		textWidth = m.width - 4
		if textWidth <= 0 {
			textWidth = 80
		}
	}

	totalVisualLines := 0
	for _, line := range strings.Split(content, "\n") {
		// runewidth counts wide glyphs such as Arabic ligatures correctly
		visualLines := (runewidth.StringWidth(line) + textWidth - 1) / textWidth
		totalVisualLines += max(visualLines, 1)
	}

	return min(max(totalVisualLines, 1), maxTextAreaHeight)
}

// updateViewportHeight adjusts the viewport height based on textarea size
func (m *chatModel) updateViewportHeight() {
	if m.height > 0 {
		// notice line, status bar and spacing
		m.viewport.Height = max(m.height-m.calculateTextAreaHeight()-4, 1)
	}
}

// handleWindowResize updates all dimensions when window size changes
func (m *chatModel) handleWindowResize(width, height int) {
	m.width = width
	m.height = height

	m.textarea.SetWidth(width - 4)
	m.textarea.SetHeight(m.calculateTextAreaHeight())

	m.viewport.Width = width
	m.updateViewportHeight()

	m.updateViewportContent()
}
