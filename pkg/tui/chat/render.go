package chat

import (
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/killallgit/tadabbur/pkg/chat"
	"github.com/killallgit/tadabbur/pkg/logger"
	"github.com/killallgit/tadabbur/pkg/stream"
)

const thinkingText = "Thinking..."

func (m *chatModel) renderMessages() string {
	width := m.contentWidth()
	messages := m.controller.Messages()

	if len(messages) == 0 {
		clear(m.rendered)
		return m.renderGreeting(width)
	}

	loading := m.controller.Loading()
	lastAssistant := chat.LastAssistantIndex(m.controller.Conversation())
	tailStreaming := m.controller.TailState() == stream.TailStreaming

	var rendered []string
	for i, msg := range messages {
		switch {
		case msg.IsUser():
			rendered = append(rendered, m.renderUser(msg, width))
		case msg.IsActivity():
			rendered = append(rendered, m.tools.Format(msg))
		case msg.IsEmpty():
			if loading && i == lastAssistant {
				rendered = append(rendered, m.styles.Progress.Render(thinkingText))
			}
		default:
			streaming := tailStreaming && i == lastAssistant
			rendered = append(rendered, m.renderAssistant(msg, width, streaming))
		}
	}

	return joinBlocks(rendered)
}

func (m *chatModel) renderGreeting(width int) string {
	return lipgloss.Place(width, max(m.viewport.Height, 1),
		lipgloss.Center, lipgloss.Center,
		m.styles.Greeting.Width(width).Render(m.controller.Profile().Greeting))
}

func (m *chatModel) renderUser(msg chat.Message, width int) string {
	label := m.styles.UserLabel.Render("You")
	body := m.styles.UserMessage.Width(width).Render(msg.Content)
	return label + "\n" + body
}

// renderAssistant renders a reply. Replies still streaming stay plain text
// until the tail is finalized.
func (m *chatModel) renderAssistant(msg chat.Message, width int, streaming bool) string {
	label := m.styles.AssistantLabel.Render(m.controller.Profile().Name)
	if m.markdown && !streaming {
		out, err := m.renderMarkdown(msg.Content, width)
		if err == nil {
			return label + "\n" + strings.Trim(out, "\n")
		}
		logger.Debug("Markdown render failed, falling back to plain text: %v", err)
	}
	return label + "\n" + m.styles.AssistantMessage.Width(width).Render(msg.Content)
}

// renderMarkdown renders a finished reply, reusing earlier output for the
// same content and width.
func (m *chatModel) renderMarkdown(content string, width int) (string, error) {
	if m.renderer != nil && m.rendererWrap == width {
		if out, ok := m.rendered[content]; ok {
			return out, nil
		}
	}
	if m.renderer == nil || m.rendererWrap != width {
		styleOpt := glamour.WithAutoStyle()
		if m.glamourStyle != "" {
			styleOpt = glamour.WithStandardStyle(m.glamourStyle)
		}
		r, err := glamour.NewTermRenderer(styleOpt, glamour.WithWordWrap(width))
		if err != nil {
			return "", err
		}
		m.renderer = r
		m.rendererWrap = width
		clear(m.rendered)
	}
	out, err := m.renderer.Render(content)
	if err != nil {
		return "", err
	}
	m.rendered[content] = out
	return out, nil
}
