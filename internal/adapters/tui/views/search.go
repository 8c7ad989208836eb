package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"fabmap/internal/adapters/tui/styles"
	"fabmap/internal/engine"
)

// SearchKeyMap defines key bindings for the location search box
type SearchKeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Cancel key.Binding
}

var SearchKeys = SearchKeyMap{
	Up: key.NewBinding(
		key.WithKeys("up", "ctrl+p"),
		key.WithHelp("↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("down", "ctrl+n"),
		key.WithHelp("↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "go to place"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "back to map"),
	),
}

const maxResultsShown = 8

// SearchModel is the location search box. Results live in the engine's SearchState.
type SearchModel struct {
	ViewState
	eng    *engine.Engine
	input  textinput.Model
	cursor int
}

// NewSearchModel creates a new search box
func NewSearchModel(eng *engine.Engine) *SearchModel {
	input := textinput.New()
	input.Placeholder = "Search location..."
	input.Prompt = "/ "
	input.CharLimit = 200

	return &SearchModel{eng: eng, input: input}
}

// Focus resets the cursor and focuses the input, keeping the last query
func (m *SearchModel) Focus() tea.Cmd {
	m.cursor = 0
	m.input.SetValue(m.eng.Search().Query())
	m.input.CursorEnd()
	return m.input.Focus()
}

func (m *SearchModel) Blur() {
	m.input.Blur()
}

func (m *SearchModel) Init() tea.Cmd { return nil }

// Update handles messages while the search box has focus
func (m *SearchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok {
		results := m.eng.Search().Results()
		switch {
		case key.Matches(msg, SearchKeys.Cancel):
			return m, send(SwitchToMapMsg{})

		case key.Matches(msg, SearchKeys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil

		case key.Matches(msg, SearchKeys.Down):
			if m.cursor < min(len(results), maxResultsShown)-1 {
				m.cursor++
			}
			return m, nil

		case key.Matches(msg, SearchKeys.Select):
			if m.cursor >= 0 && m.cursor < len(results) {
				return m, send(SearchSelectMsg{Index: m.cursor})
			}
			return m, nil
		}
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)

	// Every keystroke is a lookup; stale responses are dropped by sequence number
	if q := m.input.Value(); q != before {
		m.cursor = 0
		return m, tea.Batch(cmd, send(SearchQueryMsg{Query: q}))
	}
	return m, cmd
}

// ResetCursor is called when fresh results arrive
func (m *SearchModel) ResetCursor() {
	m.cursor = 0
}

// Clear empties the box after a result is selected
func (m *SearchModel) Clear() {
	m.input.SetValue("")
	m.cursor = 0
}

// View renders the input line
func (m *SearchModel) View() string {
	return m.input.View()
}

// ResultsView renders the result list shown under the input while searching
func (m *SearchModel) ResultsView() string {
	results := m.eng.Search().Results()
	if len(results) == 0 {
		if strings.TrimSpace(m.input.Value()) != "" {
			return RenderMuted("no results")
		}
		return ""
	}

	var lines []string
	width := max(min(m.Width-4, 70), 10)
	for i, r := range results {
		if i == maxResultsShown {
			break
		}
		label := ansi.Truncate(r.Label, width, "…")
		if i == m.cursor {
			lines = append(lines, styles.ResultSelected.Render("> "+label))
		} else {
			lines = append(lines, styles.StatusBar.Render("  "+label))
		}
	}
	return strings.Join(lines, "\n")
}
