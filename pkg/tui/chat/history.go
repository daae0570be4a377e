package chat

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/killallgit/tadabbur/pkg/tui/chat/status"
)

func (m *chatModel) toggleHistory() {
	if m.showHistory {
		m.showHistory = false
		return
	}
	m.openHistory()
}

func (m *chatModel) openHistory() {
	m.showHistory = true
	m.historyCursor = 0
}

// clampHistoryCursor keeps the cursor inside the current record list, which
// the server may replace while the panel is open.
func (m *chatModel) clampHistoryCursor() {
	n := len(m.controller.Records())
	if m.historyCursor >= n {
		m.historyCursor = n - 1
	}
	if m.historyCursor < 0 {
		m.historyCursor = 0
	}
}

func handleHistoryKey(m chatModel, msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	records := m.controller.Records()
	m.clampHistoryCursor()

	switch msg.Type {
	case tea.KeyEscape:
		m.showHistory = false
	case tea.KeyUp:
		if m.historyCursor > 0 {
			m.historyCursor--
		}
	case tea.KeyDown:
		if m.historyCursor < len(records)-1 {
			m.historyCursor++
		}
	case tea.KeyEnter:
		if len(records) == 0 {
			m.showHistory = false
			return m, nil
		}
		m.resetFeedback()
		rec := records[m.historyCursor]
		if err := m.controller.ResumeSession(rec.SessionID); err != nil {
			m.err = err
		} else {
			m.notice = fmt.Sprintf("Resumed %q", rec.Title)
		}
		m.showHistory = false
		m.statusBar, _ = m.statusBar.Update(status.StopStreamingMsg{})
		m.updateViewportContent()
	}
	return m, nil
}

func (m chatModel) renderHistory() string {
	records := m.controller.Records()
	width := max(m.contentWidth()-4, 20)

	var b strings.Builder
	b.WriteString(m.styles.PanelTitle.Render("Chat history"))
	b.WriteString("\n\n")

	if len(records) == 0 {
		b.WriteString(m.styles.HistoryMeta.Render("No previous chats"))
	}
	for i, rec := range records {
		title := rec.Title
		if title == "" {
			title = rec.SessionID
		}
		style := m.styles.HistoryItem
		if i == m.historyCursor {
			style = m.styles.HistorySelected
		}
		b.WriteString(style.Width(width).Render(title))
		b.WriteString("\n")
		meta := strings.TrimSpace(rec.Date + "  " + rec.Description)
		if meta != "" {
			b.WriteString(m.styles.HistoryMeta.Width(width).Render(meta))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("↑/↓ select • enter resume • esc close"))

	return m.styles.PanelBorder.Width(width).Render(b.String())
}
