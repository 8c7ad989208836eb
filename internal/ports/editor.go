package ports

import "os/exec"

// EditorOpener launches the user's editor on a file.
// Long pin descriptions are edited this way from the CLI and the map.
type EditorOpener interface {
	// OpenFile edits path and blocks until the editor exits
	OpenFile(path string) error

	// Command returns the editor process for path without starting it,
	// for use with bubbletea's ExecProcess
	Command(path string) (*exec.Cmd, error)
}
