package status

import (
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/killallgit/tadabbur/pkg/process"
)

func (m StatusModel) Update(msg tea.Msg) (StatusModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case spinner.TickMsg:
		if !m.isActive {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case StatusUpdateMsg:
		if msg.State != process.StateIdle {
			m.processState = msg.State
			m.icon = msg.State.GetIcon()
		}
		// server loading text wins over the generic state name
		switch {
		case msg.Status != "":
			m.status = msg.Status
		case msg.State != process.StateIdle:
			m.status = msg.State.GetDisplayName()
		}
		return m, nil

	case StartStreamingMsg:
		wasActive := m.isActive
		m.isActive = true
		m.startTime = time.Now()
		m.timer = 0
		m.processState = msg.State
		if m.processState == process.StateIdle {
			m.processState = process.StateSending
		}
		m.icon = m.processState.GetIcon()
		m.status = m.processState.GetDisplayName()
		if wasActive {
			return m, nil
		}
		return m, tea.Batch(
			m.spinner.Tick,
			tickEvery(),
		)

	case SetProcessStateMsg:
		if m.processState == msg.State {
			return m, nil
		}
		m.processState = msg.State
		m.icon = msg.State.GetIcon()
		m.status = msg.State.GetDisplayName()
		return m, nil

	case SetModelMsg:
		m.model = msg.Model
		return m, nil

	case StopStreamingMsg:
		m.isActive = false
		m.processState = process.StateIdle
		m.status = ""
		m.icon = ""
		m.timer = 0
		return m, nil

	case TickMsg:
		if m.isActive {
			m.timer = time.Since(m.startTime)
			return m, tickEvery()
		}
		return m, nil
	}

	return m, nil
}

// tickEvery returns a command that sends a tick message every second
func tickEvery() tea.Cmd {
	return tea.Every(time.Second, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
