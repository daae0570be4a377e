package status

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/lipgloss"

	"github.com/killallgit/tadabbur/pkg/process"
	"github.com/killallgit/tadabbur/pkg/tui/theme"
)

// StatusModel represents the status bar component
type StatusModel struct {
	spinner      spinner.Model
	status       string        // "Sending", "Receiving", or the server's loading text
	timer        time.Duration // Elapsed time
	icon         string
	model        string
	processState process.State
	startTime    time.Time
	isActive     bool
	width        int
}

// NewStatusModel creates a new status bar model
func NewStatusModel() StatusModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = lipgloss.NewStyle().Foreground(theme.ColorViolet)

	return StatusModel{
		spinner: s,
	}
}

func (m StatusModel) IsActive() bool {
	return m.isActive
}

func (m StatusModel) Status() string {
	return m.status
}

func (m StatusModel) State() process.State {
	return m.processState
}
