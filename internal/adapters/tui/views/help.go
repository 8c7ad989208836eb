package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"fabmap/internal/adapters/tui/styles"
	"fabmap/internal/domain"
)

// HelpKeyMap defines key bindings for the help view
type HelpKeyMap struct {
	Close key.Binding
}

var HelpKeys = HelpKeyMap{
	Close: key.NewBinding(
		key.WithKeys("esc", "q", "?"),
		key.WithHelp("esc/q/?", "close"),
	),
}

// HelpModel is the model for the help view
type HelpModel struct {
	ViewState
}

// NewHelpModel creates a new help view model
func NewHelpModel() *HelpModel {
	return &HelpModel{}
}

func (m *HelpModel) Init() tea.Cmd { return nil }

// Update handles messages for the help view
func (m *HelpModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && key.Matches(msg, HelpKeys.Close) {
		return m, send(SwitchToMapMsg{})
	}
	return m, nil
}

// View renders the help view
func (m *HelpModel) View() string {
	var b strings.Builder
	b.WriteString(styles.Title.Render("fabmap Help") + "\n\n")
	b.WriteString(styles.Subtitle.Render("Pins and fabricators on a terminal map") + "\n\n")

	section := func(title string, lines ...string) {
		b.WriteString(styles.InputLabel.Render(title) + "\n")
		for _, l := range lines {
			b.WriteString(l)
		}
		b.WriteString("\n")
	}

	section("Map",
		helpLine("← ↑ → ↓ / h j k l", "Pan"),
		helpLine("+ / - / wheel", "Zoom in / out"),
		helpLine("click", "Open a pin, or place one in placement mode"),
		helpLine("p", "Toggle placement mode"),
		helpLine("v", "Show / hide pins"),
		helpLine("/", "Search for a location"),
		helpLine("r", "Reload pins"),
	)
	section("Pin panel",
		helpLine("drag "+handleLabel, "Reposition the panel"),
		helpLine("d / f", "Expand details / fabricators"),
		helpLine("tab / shift+tab", "Move between fields"),
		helpLine("ctrl+s", "Save title and notes"),
		helpLine("ctrl+a", "Add the fabricator"),
		helpLine("e", "Edit notes in $EDITOR"),
		helpLine("y", "Copy coordinates"),
		helpLine("o", "Open the pin on a web map"),
		helpLine("esc / x / "+closeLabel, "Close (discards unsaved edits)"),
	)
	section("General",
		helpLine("ctrl+l", "Sign out and quit"),
		helpLine("?", "Toggle help"),
		helpLine("q / ctrl+c", "Quit"),
	)
	section("Markers",
		"  "+styles.MarkerDefault.Render(styles.GlyphPin)+RenderMuted(" pin   ")+
			styles.MarkerNearby.Render(styles.GlyphPin)+RenderMuted(fmt.Sprintf(" within %.0f km of the search   ", domain.NearbyRadiusKm))+
			styles.MarkerActive.Render(styles.GlyphActive)+RenderMuted(" open   ")+
			styles.MarkerSearch.Render(styles.GlyphSearch)+RenderMuted(" search result")+"\n",
	)

	b.WriteString(RenderHelpLine(HelpKeys.Close))
	return clip(styles.App.Render(b.String()), m.Width)
}

func helpLine(key, desc string) string {
	return "  " + styles.HelpKey.Render(padRight(key, 20)) + styles.HelpDesc.Render(desc) + "\n"
}

