// Package session keeps the signed-in user in a small JSON file.
package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"fabmap/internal/application"
	"fabmap/internal/ports"
)

// Record is the persisted session
type Record struct {
	UserID   string    `json:"user_id"`
	Email    string    `json:"email"`
	SignedIn time.Time `json:"signed_in_at"`
}

// File implements ports.Session on a JSON file
type File struct {
	path string
}

var _ ports.Session = (*File)(nil)

// NewFile uses path, or the XDG config location when path is empty
func NewFile(path string) *File {
	if path == "" {
		path = DefaultPath()
	}
	return &File{path: path}
}

// DefaultPath returns the session file under XDG_CONFIG_HOME
func DefaultPath() string {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, _ := os.UserHomeDir()
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "fabmap", "session.json")
}

func (f *File) Path() string { return f.path }

// Load reads the stored session
func (f *File) Load() (*Record, error) {
	data, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, application.ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("corrupt session file %s: %w", f.path, err)
	}
	if rec.UserID == "" {
		return nil, application.ErrNoSession
	}
	return &rec, nil
}

// UserID returns the signed-in user's ID
func (f *File) UserID() (string, error) {
	rec, err := f.Load()
	if err != nil {
		return "", err
	}
	return rec.UserID, nil
}

// SignIn stores a session for email. The user ID is derived from the email,
// so signing in again as the same person keeps pin ownership.
func (f *File) SignIn(email string) (*Record, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if err := application.ValidateRequired("email", email); err != nil {
		return nil, err
	}
	if !strings.Contains(email, "@") {
		return nil, &application.ValidationError{Field: "email", Message: "email must contain @"}
	}

	rec := Record{
		UserID:   uuid.NewSHA1(uuid.NameSpaceURL, []byte("mailto:"+email)).String(),
		Email:    email,
		SignedIn: time.Now().UTC(),
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(f.path), 0700); err != nil {
		return nil, fmt.Errorf("failed to create session directory: %w", err)
	}
	if err := os.WriteFile(f.path, data, 0600); err != nil {
		return nil, fmt.Errorf("failed to write session: %w", err)
	}
	return &rec, nil
}

// SignOut removes the session file. Signing out twice is not an error.
func (f *File) SignOut() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove session: %w", err)
	}
	return nil
}
