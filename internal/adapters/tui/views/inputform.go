package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"fabmap/internal/adapters/tui/styles"
)

// InputFormKeyMap defines key bindings for input forms
type InputFormKeyMap struct {
	Next key.Binding
	Prev key.Binding
}

var DefaultInputFormKeys = InputFormKeyMap{
	Next: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "next field"),
	),
	Prev: key.NewBinding(
		key.WithKeys("shift+tab"),
		key.WithHelp("shift+tab", "previous field"),
	),
}

// InputField represents a single input field with label and textinput
type InputField struct {
	Label string
	Input textinput.Model
}

// InputForm manages a group of single-line fields. Focused is -1 when
// no field has focus.
type InputForm struct {
	Fields  []InputField
	Focused int
}

// NewInputForm creates a form with no field focused
func NewInputForm(fields ...InputField) *InputForm {
	return &InputForm{Fields: fields, Focused: -1}
}

// NewInputField creates a new input field with the given label and placeholder
func NewInputField(label, placeholder string, charLimit, width int) InputField {
	input := textinput.New()
	input.Placeholder = placeholder
	input.Prompt = ""
	input.Width = width
	if charLimit > 0 {
		input.CharLimit = charLimit
	}
	return InputField{Label: label, Input: input}
}

// Update feeds msg to the focused field and reports whether its value changed
func (f *InputForm) Update(msg tea.Msg) (bool, tea.Cmd) {
	if f.Focused < 0 || f.Focused >= len(f.Fields) {
		return false, nil
	}
	before := f.Fields[f.Focused].Input.Value()
	var cmd tea.Cmd
	f.Fields[f.Focused].Input, cmd = f.Fields[f.Focused].Input.Update(msg)
	return f.Fields[f.Focused].Input.Value() != before, cmd
}

// Focus moves focus to field index; out of range blurs everything
func (f *InputForm) Focus(index int) tea.Cmd {
	f.Blur()
	if index < 0 || index >= len(f.Fields) {
		return nil
	}
	f.Focused = index
	return f.Fields[index].Input.Focus()
}

// Blur removes focus from every field
func (f *InputForm) Blur() {
	for i := range f.Fields {
		f.Fields[i].Input.Blur()
	}
	f.Focused = -1
}

// Value returns the untrimmed value of a field
func (f *InputForm) Value(index int) string {
	if index < 0 || index >= len(f.Fields) {
		return ""
	}
	return f.Fields[index].Input.Value()
}

// SetValue sets the value of a field by index
func (f *InputForm) SetValue(index int, value string) {
	if index < 0 || index >= len(f.Fields) {
		return
	}
	f.Fields[index].Input.SetValue(value)
}

// RenderInline renders a field as "label  input" on one line
func (f *InputForm) RenderInline(index, labelWidth int) string {
	if index < 0 || index >= len(f.Fields) {
		return ""
	}
	field := f.Fields[index]
	label := padRight(field.Label, labelWidth)
	if index == f.Focused {
		return styles.Success.Render("›"+label) + field.Input.View()
	}
	return styles.InputLabel.Render(" "+label) + field.Input.View()
}

func padRight(s string, length int) string {
	if n := len([]rune(s)); n < length {
		return s + strings.Repeat(" ", length-n)
	}
	return s
}
