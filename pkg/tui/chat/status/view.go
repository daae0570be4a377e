package status

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/killallgit/tadabbur/pkg/tui/theme"
)

func (m StatusModel) View() string {
	if m.width == 0 {
		return ""
	}

	var components []string

	if m.isActive {
		components = append(components, m.spinner.View())

		if m.status != "" {
			statusStyle := lipgloss.NewStyle().Foreground(theme.ColorBase05)
			components = append(components, statusStyle.Render(m.status))
		}

		if m.timer > 0 {
			minutes := int(m.timer.Minutes())
			seconds := int(m.timer.Seconds()) % 60
			timerStyle := lipgloss.NewStyle().Foreground(theme.ColorBase04)
			components = append(components, timerStyle.Render(fmt.Sprintf("%02d:%02d", minutes, seconds)))
		}

		if m.icon != "" {
			iconStyle := lipgloss.NewStyle().Foreground(theme.ColorOrange)
			components = append(components, iconStyle.Render(m.icon))
		}
	}

	if m.model != "" {
		modelStyle := lipgloss.NewStyle().Foreground(theme.ColorBase04)
		components = append(components, modelStyle.Render(m.model))
	}

	if len(components) == 0 {
		return ""
	}

	separator := lipgloss.NewStyle().Foreground(theme.ColorBase03).Render(" | ")

	return lipgloss.NewStyle().
		Width(m.width).
		Background(theme.ColorBase01).
		Padding(0, 1).
		Render(strings.Join(components, separator))
}
