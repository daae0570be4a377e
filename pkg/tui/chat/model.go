package chat

import (
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/killallgit/tadabbur/pkg/controllers"
	"github.com/killallgit/tadabbur/pkg/stream"
	"github.com/killallgit/tadabbur/pkg/tui/chat/status"
	"github.com/killallgit/tadabbur/pkg/tui/theme"
)

// Options tunes rendering of the chat view.
type Options struct {
	// Markdown renders assistant replies through glamour.
	Markdown bool
	// GlamourStyle names a glamour standard style. Empty picks one from the
	// terminal background.
	GlamourStyle string
}

type chatModel struct {
	controller *controllers.ChatController
	source     stream.FrameSource

	viewport  viewport.Model
	textarea  textarea.Model
	statusBar status.StatusModel
	styles    *theme.Styles
	tools     *ToolDisplay

	markdown     bool
	glamourStyle string
	renderer     *glamour.TermRenderer
	rendererWrap int
	// rendered holds glamour output of finished replies by content; it is
	// only valid for rendererWrap.
	rendered map[string]string

	showHistory   bool
	historyCursor int

	notice     string
	err        error
	connClosed bool

	numEscPress int
	width       int
	height      int
}

// NewChatModel builds the chat view over an already bootstrapped controller.
// Frames are read from source on the event loop.
func NewChatModel(controller *controllers.ChatController, source stream.FrameSource, opts Options) chatModel {
	ta := textarea.New()
	ta.Focus()
	ta.Placeholder = controller.Profile().Placeholder
	ta.CharLimit = 0
	ta.SetHeight(1)
	ta.ShowLineNumbers = false
	ta.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ta.KeyMap.InsertNewline.SetKeys("alt+enter")

	styles := theme.DefaultStyles()
	m := chatModel{
		controller:   controller,
		source:       source,
		viewport:     viewport.New(80, 20),
		textarea:     ta,
		statusBar:    status.NewStatusModel(),
		styles:       styles,
		tools:        NewToolDisplay(styles),
		markdown:     opts.Markdown,
		glamourStyle: opts.GlamourStyle,
		rendered:     make(map[string]string),
	}
	m.statusBar, _ = m.statusBar.Update(status.SetModelMsg{Model: controller.Model()})
	m.updateViewportContent()
	return m
}
