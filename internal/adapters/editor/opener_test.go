package editor

import (
	"errors"
	"os"
	"testing"
)

func TestOpener_Command(t *testing.T) {
	tests := []struct {
		name     string
		editor   string
		visual   string
		onPath   map[string]string
		wantArgs []string
		wantErr  bool
	}{
		{
			name:     "EDITOR wins",
			editor:   "hx",
			visual:   "code",
			wantArgs: []string{"hx", "/tmp/d.md"},
		},
		{
			name:     "EDITOR with flags",
			editor:   "code --wait",
			wantArgs: []string{"code", "--wait", "/tmp/d.md"},
		},
		{
			name:     "VISUAL fallback",
			visual:   "emacs",
			wantArgs: []string{"emacs", "/tmp/d.md"},
		},
		{
			name:     "PATH fallback",
			onPath:   map[string]string{"vi": "/usr/bin/vi"},
			wantArgs: []string{"/usr/bin/vi", "/tmp/d.md"},
		},
		{
			name:    "nothing available",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("EDITOR", tt.editor)
			t.Setenv("VISUAL", tt.visual)
			o := &Opener{lookup: func(name string) (string, error) {
				if p, ok := tt.onPath[name]; ok {
					return p, nil
				}
				return "", errors.New("not found")
			}}

			cmd, err := o.Command("/tmp/d.md")
			if tt.wantErr {
				if err == nil {
					t.Error("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if len(cmd.Args) != len(tt.wantArgs) {
				t.Fatalf("args = %v, want %v", cmd.Args, tt.wantArgs)
			}
			for i := range cmd.Args {
				if cmd.Args[i] != tt.wantArgs[i] {
					t.Errorf("args = %v, want %v", cmd.Args, tt.wantArgs)
					break
				}
			}
		})
	}
}

func TestScratchRoundTrip(t *testing.T) {
	path, err := WriteScratch("line one\nline two")
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("edited\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	got, err := ReadScratch(path)
	if err != nil {
		t.Fatal(err)
	}
	if got != "edited" {
		t.Errorf("ReadScratch = %q", got)
	}
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		t.Error("scratch file should be removed")
	}
}
