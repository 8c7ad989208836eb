package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"fabmap/internal/adapters/tui/styles"
	"fabmap/internal/domain"
)

// ConfirmKeyMap defines key bindings for confirmation prompts
type ConfirmKeyMap struct {
	Confirm key.Binding
	Cancel  key.Binding
}

var DefaultConfirmKeys = ConfirmKeyMap{
	Confirm: key.NewBinding(
		key.WithKeys("y", "enter"),
		key.WithHelp("y", "confirm"),
	),
	Cancel: key.NewBinding(
		key.WithKeys("n", "esc"),
		key.WithHelp("n/esc", "cancel"),
	),
}

// ConfirmationModel asks a yes/no question before a pin is placed
type ConfirmationModel struct {
	Target *domain.Coordinate
	Keys   ConfirmKeyMap
}

// NewConfirmationModel creates a new confirmation model with default keys
func NewConfirmationModel() *ConfirmationModel {
	return &ConfirmationModel{Keys: DefaultConfirmKeys}
}

// SetTarget sets the coordinate awaiting confirmation
func (m *ConfirmationModel) SetTarget(c domain.Coordinate) {
	m.Target = &c
}

// Update turns y/n into ConfirmPlacementMsg / CancelPlacementMsg
func (m *ConfirmationModel) Update(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.Keys.Cancel):
		m.Target = nil
		return send(CancelPlacementMsg{})
	case key.Matches(msg, m.Keys.Confirm):
		m.Target = nil
		return send(ConfirmPlacementMsg{})
	}
	return nil
}

// View renders the prompt line
func (m *ConfirmationModel) View() string {
	if m.Target == nil {
		return ""
	}
	return RenderConfirmPrompt("Place a pin at " + m.Target.String() + "?")
}

// RenderConfirmPrompt renders the standard confirmation prompt
func RenderConfirmPrompt(question string) string {
	var b strings.Builder
	b.WriteString(styles.InputLabel.Render(question))
	b.WriteString(" ")
	b.WriteString(styles.HelpKey.Render("y"))
	b.WriteString(styles.HelpDesc.Render(" to confirm, "))
	b.WriteString(styles.HelpKey.Render("n"))
	b.WriteString(styles.HelpDesc.Render(" to cancel"))
	return b.String()
}
