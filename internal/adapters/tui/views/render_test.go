package views

import (
	"strings"
	"testing"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/x/ansi"
)

func TestRenderHelpLine_SkipsBindingsWithoutHelp(t *testing.T) {
	withHelp := key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "place"))
	bare := key.NewBinding(key.WithKeys("up"))
	disabled := key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "gone"), key.WithDisabled())

	got := ansi.Strip(RenderHelpLine(withHelp, bare, disabled))

	if !strings.Contains(got, "p place") {
		t.Errorf("help line %q is missing the place binding", got)
	}
	if strings.Contains(got, "gone") || strings.Contains(got, "up") {
		t.Errorf("help line %q should skip bare and disabled bindings", got)
	}
}

func TestRenderMessage(t *testing.T) {
	if got := RenderMessage("", true); got != "" {
		t.Errorf("empty message rendered as %q", got)
	}
	if got := ansi.Strip(RenderMessage("Saved", false)); got != "Saved" {
		t.Errorf("got %q", got)
	}
}

func TestClip(t *testing.T) {
	tests := []struct {
		name  string
		block string
		width int
		want  string
	}{
		{"shorter lines untouched", "ab\ncd", 5, "ab\ncd"},
		{"long lines cut", "abcdef\nxy", 3, "abc\nxy"},
		{"zero width is a no-op", "abcdef", 0, "abcdef"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := clip(tt.block, tt.width); got != tt.want {
				t.Errorf("clip() = %q, want %q", got, tt.want)
			}
		})
	}
}
