package commands

import (
	"context"

	"fabmap/internal/application"
	"fabmap/internal/domain"
	"fabmap/internal/ports"
)

// ListPinsCommand fetches every pin with its fabricators
type ListPinsCommand struct {
	repo ports.PinRepository
}

// NewListPinsCommand creates a new ListPinsCommand
func NewListPinsCommand(repo ports.PinRepository) *ListPinsCommand {
	return &ListPinsCommand{repo: repo}
}

// Execute runs the list command. The result is always newest first,
// even if the backend returned a different order.
func (c *ListPinsCommand) Execute(ctx context.Context) ([]domain.Pin, error) {
	pins, err := c.repo.ListPins(ctx)
	if err != nil {
		return nil, &application.NetworkError{Op: "list pins", Err: err}
	}
	domain.SortNewestFirst(pins)
	return pins, nil
}
