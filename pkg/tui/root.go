package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/killallgit/tadabbur/pkg/controllers"
	"github.com/killallgit/tadabbur/pkg/tui/theme"
)

// rootModel owns the global key bindings and the help overlay and forwards
// everything else to the chat view.
type rootModel struct {
	view     tea.Model
	help     help.Model
	styles   *theme.Styles
	showHelp bool
	width    int
	height   int
}

func (m rootModel) Init() tea.Cmd {
	return m.view.Init()
}

func (m rootModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Help):
			m.showHelp = !m.showHelp
			return m, nil
		case m.showHelp && msg.Type == tea.KeyEscape:
			m.showHelp = false
			return m, nil
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	}

	var cmd tea.Cmd
	m.view, cmd = m.view.Update(msg)
	return m, cmd
}

func (m rootModel) View() string {
	if !m.showHelp {
		return m.view.View()
	}
	return m.renderHelp()
}

func (m rootModel) renderHelp() string {
	var b strings.Builder
	b.WriteString(m.styles.PanelTitle.Render("Keys"))
	b.WriteString("\n\n")
	b.WriteString(m.help.FullHelpView(keys.FullHelp()))
	b.WriteString("\n\n")
	b.WriteString(m.styles.PanelTitle.Render("Commands"))
	b.WriteString("\n\n")
	for _, c := range controllers.Commands {
		b.WriteString(m.styles.ToolName.Render(c.Name))
		b.WriteString("  ")
		b.WriteString(m.styles.HistoryMeta.Render(c.Usage))
		b.WriteString("\n")
	}
	return m.styles.PanelBorder.Render(b.String())
}

func NewRootModel(view tea.Model) *rootModel {
	h := help.New()
	h.ShowAll = true
	return &rootModel{
		view:   view,
		help:   h,
		styles: theme.DefaultStyles(),
	}
}
