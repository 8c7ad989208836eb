package views

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/x/ansi"

	"fabmap/internal/adapters/tui/styles"
)

// RenderHelpLine joins the enabled bindings that carry help text
func RenderHelpLine(bindings ...key.Binding) string {
	parts := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		if h.Key == "" || !b.Enabled() {
			continue
		}
		parts = append(parts, styles.HelpKey.Render(h.Key)+" "+styles.HelpDesc.Render(h.Desc))
	}
	return strings.Join(parts, styles.HelpSeparator.String())
}

// RenderMessage styles the message line, red for errors
func RenderMessage(message string, isError bool) string {
	switch {
	case message == "":
		return ""
	case isError:
		return styles.ErrorMsg.Render(message)
	default:
		return styles.Success.Render(message)
	}
}

// RenderMuted renders secondary text
func RenderMuted(text string) string {
	return styles.MutedText.Render(text)
}

// sectionHeader renders a collapsible panel section with its toggle key
func sectionHeader(expanded bool, label, hotkey string) string {
	indicator := styles.SectionCollapsed
	if expanded {
		indicator = styles.SectionExpanded
	}
	return styles.SectionHeader.Render(indicator+label) + " " + styles.HelpDesc.Render("["+hotkey+"]")
}

// clip cuts every line of block to width cells. A zero width leaves it alone.
func clip(block string, width int) string {
	if width <= 0 {
		return block
	}
	lines := strings.Split(block, "\n")
	for i, l := range lines {
		lines[i] = ansi.Truncate(l, width, "")
	}
	return strings.Join(lines, "\n")
}
