package theme

import (
	"github.com/charmbracelet/lipgloss"
)

// Base16 color palette with orange, brown, yellow, and pink tones
// Based on Autumn theme with warm earth tones
var (
	// Base colors (backgrounds and text)
	ColorBase00 = lipgloss.Color("#1a1816") // Dark background
	ColorBase01 = lipgloss.Color("#282420") // Lighter background
	ColorBase02 = lipgloss.Color("#36302a") // Selection background
	ColorBase03 = lipgloss.Color("#5c5044") // Comments, invisibles
	ColorBase04 = lipgloss.Color("#83715f") // Dark foreground
	ColorBase05 = lipgloss.Color("#ab937b") // Default foreground
	ColorBase06 = lipgloss.Color("#d3b597") // Light foreground
	ColorBase07 = lipgloss.Color("#f5d7b9") // Lightest foreground

	// Accent colors
	ColorRed    = lipgloss.Color("#d95f5f")
	ColorOrange = lipgloss.Color("#eb8755")
	ColorYellow = lipgloss.Color("#f5b761")
	ColorGreen  = lipgloss.Color("#93b56b")
	ColorCyan   = lipgloss.Color("#61afaf")
	ColorBlue   = lipgloss.Color("#6b93b5")
	ColorPurple = lipgloss.Color("#976bb5")
	ColorBrown  = lipgloss.Color("#b57f6b")

	// UI specific colors
	ColorBorder    = ColorBase03
	ColorSelection = ColorBase02
	ColorFocus     = ColorOrange
	ColorSuccess   = ColorGreen
	ColorWarning   = ColorYellow
	ColorError     = ColorRed
	ColorInfo      = ColorCyan
	ColorMuted     = ColorBase03
	ColorHighlight = ColorYellow

	ColorViolet = lipgloss.Color("#6c71c4") // spinner
)

// Styles defines the Lipgloss styles for the TUI components
type Styles struct {
	// Text styles
	UserMessage      lipgloss.Style
	AssistantMessage lipgloss.Style
	SystemMessage    lipgloss.Style
	ErrorMessage     lipgloss.Style
	InfoMessage      lipgloss.Style
	SuccessMessage   lipgloss.Style

	// Role labels above each entry
	UserLabel      lipgloss.Style
	AssistantLabel lipgloss.Style

	// Activity entries pushed during an agent run
	ToolIndicator lipgloss.Style
	ToolName      lipgloss.Style
	ToolOutput    lipgloss.Style
	Handoff       lipgloss.Style
	Progress      lipgloss.Style

	Greeting lipgloss.Style
	Notice   lipgloss.Style

	// History panel
	PanelBorder     lipgloss.Style
	PanelTitle      lipgloss.Style
	HistoryItem     lipgloss.Style
	HistorySelected lipgloss.Style
	HistoryMeta     lipgloss.Style

	Input lipgloss.Style
	Help  lipgloss.Style
}

// DefaultStyles returns the default Lipgloss styles
func DefaultStyles() *Styles {
	return &Styles{
		UserMessage: lipgloss.NewStyle().
			Foreground(ColorGreen),

		AssistantMessage: lipgloss.NewStyle().
			Foreground(ColorBase06),

		SystemMessage: lipgloss.NewStyle().
			Foreground(ColorPurple),

		ErrorMessage: lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true),

		InfoMessage: lipgloss.NewStyle().
			Foreground(ColorInfo),

		SuccessMessage: lipgloss.NewStyle().
			Foreground(ColorSuccess),

		UserLabel: lipgloss.NewStyle().
			Foreground(ColorGreen).
			Bold(true),

		AssistantLabel: lipgloss.NewStyle().
			Foreground(ColorOrange).
			Bold(true),

		ToolIndicator: lipgloss.NewStyle().
			Foreground(ColorOrange),

		ToolName: lipgloss.NewStyle().
			Foreground(ColorBlue).
			Bold(true),

		ToolOutput: lipgloss.NewStyle().
			Foreground(ColorBase04).
			PaddingLeft(2),

		Handoff: lipgloss.NewStyle().
			Foreground(ColorPurple).
			Italic(true),

		Progress: lipgloss.NewStyle().
			Foreground(ColorMuted).
			Italic(true),

		Greeting: lipgloss.NewStyle().
			Foreground(ColorBase07).
			Bold(true).
			Align(lipgloss.Center),

		Notice: lipgloss.NewStyle().
			Foreground(ColorYellow),

		PanelBorder: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorBorder).
			Padding(0, 1),

		PanelTitle: lipgloss.NewStyle().
			Foreground(ColorFocus).
			Bold(true),

		HistoryItem: lipgloss.NewStyle().
			Foreground(ColorBase05),

		HistorySelected: lipgloss.NewStyle().
			Foreground(ColorBase07).
			Background(ColorSelection).
			Bold(true),

		HistoryMeta: lipgloss.NewStyle().
			Foreground(ColorMuted),

		Input: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorFocus),

		Help: lipgloss.NewStyle().
			Foreground(ColorMuted),
	}
}
