package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Colors
	Primary   = lipgloss.Color("#7C3AED") // Purple
	Secondary = lipgloss.Color("#10B981") // Green
	Muted     = lipgloss.Color("#6B7280") // Gray
	Warning   = lipgloss.Color("#F59E0B") // Amber
	Error     = lipgloss.Color("#EF4444") // Red
	White     = lipgloss.Color("#FFFFFF")
	Black     = lipgloss.Color("#000000")
	Blue      = lipgloss.Color("#60A5FA")
	Land      = lipgloss.Color("#374151")

	// Base styles
	App = lipgloss.NewStyle().
		Padding(1, 2)

	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		MarginBottom(1)

	Subtitle = lipgloss.NewStyle().
			Foreground(Muted).
			Italic(true)

	// Map
	Graticule = lipgloss.NewStyle().Foreground(Land)

	MarkerDefault = lipgloss.NewStyle().Foreground(Blue).Bold(true)
	MarkerNearby  = lipgloss.NewStyle().Foreground(Warning).Bold(true)
	MarkerActive  = lipgloss.NewStyle().Foreground(Error).Bold(true)
	MarkerSearch  = lipgloss.NewStyle().Foreground(Secondary).Bold(true)
	Pending       = lipgloss.NewStyle().Foreground(White).Background(Primary)

	// Marker glyphs
	GlyphPin     = "●"
	GlyphActive  = "◉"
	GlyphSearch  = "✚"
	GlyphPending = "?"
	GlyphGrid    = "·"

	// Detail panel
	Panel = lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Primary).
		Padding(0, 1)

	PanelHandle = lipgloss.NewStyle().
			Foreground(White).
			Background(Primary).
			Padding(0, 1)

	PanelClose = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	SectionHeader = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	Unsaved = lipgloss.NewStyle().
		Foreground(Warning).
		Italic(true)

	// Section indicators
	SectionExpanded  = "▼ "
	SectionCollapsed = "▶ "

	// Status bar
	StatusBar = lipgloss.NewStyle().
			Background(lipgloss.Color("#1F2937")).
			Foreground(White).
			Padding(0, 1)

	StatusKey = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Padding(0, 1).
			MarginRight(1)

	StatusOn = lipgloss.NewStyle().
			Background(Secondary).
			Foreground(Black).
			Padding(0, 1).
			MarginRight(1)

	StatusText = lipgloss.NewStyle().
			Foreground(Muted)

	// Input styles
	InputLabel = lipgloss.NewStyle().
			Foreground(Secondary).
			Bold(true)

	// Help styles
	HelpKey = lipgloss.NewStyle().
		Foreground(Primary).
		Bold(true)

	HelpDesc = lipgloss.NewStyle().
			Foreground(Muted)

	HelpSeparator = lipgloss.NewStyle().
			Foreground(Muted).
			SetString(" • ")

	// Message styles
	Success = lipgloss.NewStyle().
		Foreground(Secondary).
		Bold(true)

	ErrorMsg = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	// Search
	ResultSelected = lipgloss.NewStyle().
			Background(Primary).
			Foreground(White).
			Bold(true)

	MutedText = lipgloss.NewStyle().
			Foreground(Muted)
)
