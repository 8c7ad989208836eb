package commands

import (
	"context"
	"fmt"

	"fabmap/internal/application"
	"fabmap/internal/ports"
)

// UpdatePinResult contains the result of saving a pin
type UpdatePinResult struct {
	PinID   string
	Message string
}

// UpdatePinCommand saves a pin's title and description.
// An empty title is passed through to the backend unchanged.
type UpdatePinCommand struct {
	repo        ports.PinRepository
	PinID       string
	Title       string
	Description string
}

// NewUpdatePinCommand creates a new UpdatePinCommand
func NewUpdatePinCommand(repo ports.PinRepository, pinID, title, description string) *UpdatePinCommand {
	return &UpdatePinCommand{
		repo:        repo,
		PinID:       pinID,
		Title:       title,
		Description: description,
	}
}

// Validate checks the command targets a pin
func (c *UpdatePinCommand) Validate() error {
	return application.ValidateRequired("pinID", c.PinID)
}

// Execute runs the update pin command
func (c *UpdatePinCommand) Execute(ctx context.Context) (*UpdatePinResult, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	if err := c.repo.UpdatePin(ctx, c.PinID, c.Title, c.Description); err != nil {
		return nil, &application.NetworkError{Op: "update pin", Err: err}
	}

	return &UpdatePinResult{
		PinID:   c.PinID,
		Message: fmt.Sprintf("Saved %q", c.Title),
	}, nil
}
