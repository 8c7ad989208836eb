package views

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"

	"fabmap/internal/adapters/tui/styles"
	"fabmap/internal/domain"
	"fabmap/internal/engine"
)

const (
	panelInner   = 44
	labelWidth   = 9
	handleLabel  = "⠿ move"
	closeLabel   = "[x]"
	fabName      = 0
	fabAddress   = 1
	fabPhone     = 2
	descHeight   = 3
	maxListedFab = 6
)

// PanelKeyMap defines key bindings for the detail panel
type PanelKeyMap struct {
	ToggleDetail      key.Binding
	ToggleFabricators key.Binding
	Focus             key.Binding
	Unfocus           key.Binding
	Save              key.Binding
	AddFabricator     key.Binding
	Copy              key.Binding
	Editor            key.Binding
	OpenMap           key.Binding
	Close             key.Binding
}

var PanelKeys = PanelKeyMap{
	ToggleDetail: key.NewBinding(
		key.WithKeys("d"),
		key.WithHelp("d", "details"),
	),
	ToggleFabricators: key.NewBinding(
		key.WithKeys("f"),
		key.WithHelp("f", "fabricators"),
	),
	Focus: key.NewBinding(
		key.WithKeys("tab", "shift+tab"),
		key.WithHelp("tab", "edit"),
	),
	Unfocus: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "done"),
	),
	Save: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "save"),
	),
	AddFabricator: key.NewBinding(
		key.WithKeys("ctrl+a"),
		key.WithHelp("ctrl+a", "add fabricator"),
	),
	Copy: key.NewBinding(
		key.WithKeys("y"),
		key.WithHelp("y", "copy coords"),
	),
	Editor: key.NewBinding(
		key.WithKeys("e"),
		key.WithHelp("e", "$EDITOR"),
	),
	OpenMap: key.NewBinding(
		key.WithKeys("o"),
		key.WithHelp("o", "open in browser"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc", "x"),
		key.WithHelp("esc/x", "close"),
	),
}

type focusTarget int

const (
	focusTitle focusTarget = iota
	focusDescription
	focusFabName
	focusFabAddress
	focusFabPhone
)

// PanelLayout is where the panel was last drawn, used for mouse hit tests
type PanelLayout struct {
	X, Y    int
	W, H    int
	handleW int
}

func (l PanelLayout) Contains(x, y int) bool {
	return x >= l.X && x < l.X+l.W && y >= l.Y && y < l.Y+l.H
}

// OnHandle reports whether (x, y) is on the drag handle in the header row
func (l PanelLayout) OnHandle(x, y int) bool {
	return y == l.Y+1 && x >= l.X+2 && x < l.X+2+l.handleW
}

// OnClose reports whether (x, y) is on the close button
func (l PanelLayout) OnClose(x, y int) bool {
	right := l.X + l.W - 2
	return y == l.Y+1 && x >= right-len(closeLabel) && x < right
}

// PanelModel renders the active pin and binds its inputs to the engine's buffers
type PanelModel struct {
	eng    *engine.Engine
	pinID  string
	title  textinput.Model
	desc   textarea.Model
	fab    *InputForm
	focus  focusTarget
	active bool
	layout PanelLayout
}

// NewPanelModel creates the panel for eng
func NewPanelModel(eng *engine.Engine) *PanelModel {
	title := textinput.New()
	title.Prompt = ""
	title.Placeholder = "Title"
	title.CharLimit = 120
	title.Width = panelInner - labelWidth - 2

	desc := textarea.New()
	desc.Placeholder = "Description"
	desc.ShowLineNumbers = false
	desc.Prompt = "  "
	desc.SetWidth(panelInner)
	desc.SetHeight(descHeight)

	fab := NewInputForm(
		NewInputField("Name", "Company name", 120, panelInner-labelWidth-2),
		NewInputField("Address", "Street, city", 200, panelInner-labelWidth-2),
		NewInputField("Phone", "optional", 40, panelInner-labelWidth-2),
	)

	return &PanelModel{eng: eng, title: title, desc: desc, fab: fab}
}

// Load copies the active pin's display values into the inputs.
// Call it after opening a pin and after every applied reload.
func (m *PanelModel) Load() {
	pin, ok := m.eng.ActivePin()
	if !ok {
		m.pinID = ""
		m.blur()
		return
	}
	if pin.ID != m.pinID {
		m.blur()
	}
	m.pinID = pin.ID
	m.title.SetValue(m.eng.Edits().DisplayTitle(pin))
	m.desc.SetValue(m.eng.Edits().DisplayDescription(pin))
	draft := m.eng.Drafts().Draft(pin.ID)
	m.fab.SetValue(fabName, draft.Name)
	m.fab.SetValue(fabAddress, draft.Address)
	m.fab.SetValue(fabPhone, draft.Phone)
}

// Editing reports whether an input has focus, meaning keys belong to the panel
func (m *PanelModel) Editing() bool { return m.active }

// Layout returns where the panel was last drawn
func (m *PanelModel) Layout() PanelLayout { return m.layout }

// Place moves the recorded layout after the caller clamps it to the screen
func (m *PanelModel) Place(x, y int) {
	m.layout.X = x
	m.layout.Y = y
}

func (m *PanelModel) targets() []focusTarget {
	var out []focusTarget
	if m.eng.Panel().DetailExpanded(m.pinID) {
		out = append(out, focusTitle, focusDescription)
	}
	if m.eng.Panel().FabricatorsExpanded(m.pinID) {
		out = append(out, focusFabName, focusFabAddress, focusFabPhone)
	}
	return out
}

func (m *PanelModel) blur() {
	m.active = false
	m.title.Blur()
	m.desc.Blur()
	m.fab.Blur()
}

func (m *PanelModel) setFocus(t focusTarget) tea.Cmd {
	m.blur()
	m.active = true
	m.focus = t
	switch t {
	case focusTitle:
		return m.title.Focus()
	case focusDescription:
		return m.desc.Focus()
	case focusFabName:
		return m.fab.Focus(fabName)
	case focusFabAddress:
		return m.fab.Focus(fabAddress)
	default:
		return m.fab.Focus(fabPhone)
	}
}

// cycle moves focus by delta through the visible inputs
func (m *PanelModel) cycle(delta int) tea.Cmd {
	targets := m.targets()
	if len(targets) == 0 {
		return nil
	}
	if !m.active {
		if delta < 0 {
			return m.setFocus(targets[len(targets)-1])
		}
		return m.setFocus(targets[0])
	}
	cur := 0
	for i, t := range targets {
		if t == m.focus {
			cur = i
		}
	}
	next := (cur + delta + len(targets)) % len(targets)
	return m.setFocus(targets[next])
}

func send(msg tea.Msg) tea.Cmd {
	return func() tea.Msg { return msg }
}

// Update handles a key while the panel is open
func (m *PanelModel) Update(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, PanelKeys.Save):
		return send(SavePinMsg{})
	case key.Matches(msg, PanelKeys.AddFabricator):
		return send(AddFabricatorMsg{})
	}

	if m.active {
		switch msg.String() {
		case "tab":
			return m.cycle(1)
		case "shift+tab":
			return m.cycle(-1)
		case "esc":
			m.blur()
			return nil
		}
		return m.updateInput(msg)
	}

	switch {
	case key.Matches(msg, PanelKeys.ToggleDetail):
		m.eng.Panel().ToggleDetail(m.pinID)
	case key.Matches(msg, PanelKeys.ToggleFabricators):
		m.eng.Panel().ToggleFabricators(m.pinID)
	case msg.String() == "tab":
		return m.cycle(1)
	case msg.String() == "shift+tab":
		return m.cycle(-1)
	case key.Matches(msg, PanelKeys.Copy):
		return send(CopyCoordsMsg{})
	case key.Matches(msg, PanelKeys.OpenMap):
		return send(OpenInBrowserMsg{})
	case key.Matches(msg, PanelKeys.Editor):
		return send(EditDescriptionMsg{})
	case key.Matches(msg, PanelKeys.Close):
		return send(ClosePanelMsg{})
	}
	return nil
}

// updateInput feeds the key to the focused input and mirrors changes into the buffers
func (m *PanelModel) updateInput(msg tea.Msg) tea.Cmd {
	id := m.pinID
	var cmd tea.Cmd
	switch m.focus {
	case focusTitle:
		before := m.title.Value()
		m.title, cmd = m.title.Update(msg)
		if v := m.title.Value(); v != before {
			m.eng.Edits().SetTitle(id, v)
		}
	case focusDescription:
		before := m.desc.Value()
		m.desc, cmd = m.desc.Update(msg)
		if v := m.desc.Value(); v != before {
			m.eng.Edits().SetDescription(id, v)
		}
	default:
		var changed bool
		changed, cmd = m.fab.Update(msg)
		if changed {
			switch m.fab.Focused {
			case fabName:
				m.eng.Drafts().SetName(id, m.fab.Value(fabName))
			case fabAddress:
				m.eng.Drafts().SetAddress(id, m.fab.Value(fabAddress))
			case fabPhone:
				m.eng.Drafts().SetPhone(id, m.fab.Value(fabPhone))
			}
		}
	}
	return cmd
}

// View renders the panel for the active pin at pos and records its layout
func (m *PanelModel) View(pos engine.Position) string {
	pin, ok := m.eng.ActivePin()
	if !ok {
		m.layout = PanelLayout{}
		return ""
	}

	var b strings.Builder
	b.WriteString(m.header(pin))
	b.WriteString("\n")
	b.WriteString(RenderMuted(pin.Position().String()))
	if m.eng.Edits().Has(pin.ID) || m.eng.Drafts().Has(pin.ID) {
		b.WriteString("  " + styles.Unsaved.Render("unsaved changes"))
	}
	b.WriteString("\n")

	detail := m.eng.Panel().DetailExpanded(pin.ID)
	b.WriteString(sectionHeader(detail, "Details", "d"))
	b.WriteString("\n")
	if detail {
		b.WriteString(m.focusLabel(focusTitle, "Title") + m.title.View())
		b.WriteString("\n")
		b.WriteString(m.focusLabel(focusDescription, "Notes"))
		b.WriteString("\n")
		b.WriteString(m.desc.View())
		b.WriteString("\n")
		b.WriteString(RenderHelpLine(PanelKeys.Save, PanelKeys.Editor))
		b.WriteString("\n")
	}

	fabs := m.eng.Panel().FabricatorsExpanded(pin.ID)
	b.WriteString(sectionHeader(fabs, fmt.Sprintf("Fabricators (%d)", len(pin.Fabricators)), "f"))
	if fabs {
		b.WriteString("\n")
		b.WriteString(renderFabricators(pin.Fabricators))
		for i := range m.fab.Fields {
			b.WriteString(m.fab.RenderInline(i, labelWidth))
			b.WriteString("\n")
		}
		b.WriteString(RenderHelpLine(PanelKeys.AddFabricator))
	}

	box := styles.Panel.Width(panelInner + 2).Render(b.String())
	m.layout = PanelLayout{
		X:       pos.X,
		Y:       pos.Y,
		W:       ansi.StringWidth(strings.SplitN(box, "\n", 2)[0]),
		H:       strings.Count(box, "\n") + 1,
		handleW: ansi.StringWidth(styles.PanelHandle.Render(handleLabel)),
	}
	return box
}

func (m *PanelModel) header(pin domain.Pin) string {
	handle := styles.PanelHandle.Render(handleLabel)
	closeBtn := styles.PanelClose.Render(closeLabel)
	room := panelInner - ansi.StringWidth(handle) - len(closeLabel) - 2
	title := m.eng.Edits().DisplayTitle(pin)
	if title == "" {
		title = "(untitled)"
	}
	title = ansi.Truncate(title, room, "…")
	gap := max(room-ansi.StringWidth(title), 0)
	return handle + " " + styles.Title.UnsetMarginBottom().Render(title) + strings.Repeat(" ", gap+1) + closeBtn
}

func (m *PanelModel) focusLabel(t focusTarget, label string) string {
	if m.active && m.focus == t {
		return styles.Success.Render("›" + padRight(label, labelWidth))
	}
	return styles.InputLabel.Render(" " + padRight(label, labelWidth))
}

func renderFabricators(fabs []domain.Fabricator) string {
	if len(fabs) == 0 {
		return RenderMuted("  No fabricators yet") + "\n"
	}
	var b strings.Builder
	for i, f := range fabs {
		if i == maxListedFab {
			b.WriteString(RenderMuted(fmt.Sprintf("  … %d more", len(fabs)-maxListedFab)) + "\n")
			break
		}
		line := "• " + f.Name + " · " + f.Address
		if f.Phone != "" {
			line += " · " + f.Phone
		}
		b.WriteString("  " + ansi.Truncate(line, panelInner-2, "…") + "\n")
	}
	return b.String()
}

// Handles reports whether the panel consumes msg while it is open
func (m *PanelModel) Handles(msg tea.KeyMsg) bool {
	if m.active {
		return true
	}
	return key.Matches(msg,
		PanelKeys.ToggleDetail, PanelKeys.ToggleFabricators, PanelKeys.Focus,
		PanelKeys.Save, PanelKeys.AddFabricator, PanelKeys.Copy, PanelKeys.Editor, PanelKeys.OpenMap, PanelKeys.Close)
}
