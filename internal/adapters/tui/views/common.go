package views

import (
	"errors"

	"fabmap/internal/application"
)

// ViewState contains common state shared by all view models.
// Embed this struct in view models to get width/height and message handling.
type ViewState struct {
	Width      int
	Height     int
	Message    string
	MessageErr bool
}

// SetSize updates the view dimensions
func (s *ViewState) SetSize(width, height int) {
	s.Width = width
	s.Height = height
}

// SetMessage sets a message to display in the view
func (s *ViewState) SetMessage(msg string, isErr bool) {
	s.Message = msg
	s.MessageErr = isErr
}

// SetError shows err unless it is a precondition failure, which the map ignores.
// It reports whether anything was shown.
func (s *ViewState) SetError(err error) bool {
	if err == nil || application.IsPrecondition(err) {
		return false
	}
	var valErr *application.ValidationError
	if errors.As(err, &valErr) {
		s.SetMessage(valErr.Message, true)
		return true
	}
	s.SetMessage(err.Error(), true)
	return true
}

// ClearMessage clears the current message
func (s *ViewState) ClearMessage() {
	s.Message = ""
	s.MessageErr = false
}
