package editor

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"fabmap/internal/ports"
)

// Opener implements ports.EditorOpener
type Opener struct {
	lookup func(string) (string, error)
}

var _ ports.EditorOpener = (*Opener)(nil)

// NewOpener creates a new editor opener
func NewOpener() *Opener {
	return &Opener{lookup: exec.LookPath}
}

// OpenFile opens a file in the user's preferred editor and waits for it to exit
func (o *Opener) OpenFile(path string) error {
	cmd, err := o.Command(path)
	if err != nil {
		return err
	}
	return cmd.Run()
}

// Command returns an exec.Cmd for editing path.
// $EDITOR may carry arguments, e.g. "code --wait".
func (o *Opener) Command(path string) (*exec.Cmd, error) {
	editor := o.findEditor()
	if editor == "" {
		return nil, fmt.Errorf("no editor found: set $EDITOR environment variable")
	}

	fields := strings.Fields(editor)
	args := append(fields[1:], path)
	cmd := exec.Command(fields[0], args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	return cmd, nil
}

func (o *Opener) findEditor() string {
	if editor := strings.TrimSpace(os.Getenv("EDITOR")); editor != "" {
		return editor
	}
	if visual := strings.TrimSpace(os.Getenv("VISUAL")); visual != "" {
		return visual
	}
	for _, editor := range []string{"nvim", "vim", "vi", "nano"} {
		if path, err := o.lookup(editor); err == nil {
			return path
		}
	}
	return ""
}

// WriteScratch puts text in a new temporary markdown file and returns its path
func WriteScratch(text string) (string, error) {
	f, err := os.CreateTemp("", "fabmap-description-*.md")
	if err != nil {
		return "", fmt.Errorf("failed to create scratch file: %w", err)
	}
	defer f.Close()
	if _, err := f.WriteString(text); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("failed to write scratch file: %w", err)
	}
	return f.Name(), nil
}

// ReadScratch returns the edited text without its trailing newline and removes the file
func ReadScratch(path string) (string, error) {
	defer os.Remove(path)
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read scratch file: %w", err)
	}
	return strings.TrimRight(string(data), "\r\n"), nil
}
