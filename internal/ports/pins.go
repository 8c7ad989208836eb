package ports

import (
	"context"

	"fabmap/internal/domain"
)

// PinRepository defines the backend storage operations for pins and fabricators
type PinRepository interface {
	// ListPins returns every pin with its fabricators, newest first
	ListPins(ctx context.Context) ([]domain.Pin, error)

	// InsertPin stores a new pin and returns it with its server-assigned ID
	InsertPin(ctx context.Context, pin domain.NewPin) (*domain.Pin, error)

	// UpdatePin replaces the title and description of an existing pin
	UpdatePin(ctx context.Context, id, title, description string) error

	// InsertFabricator attaches a fabricator to an existing pin
	InsertFabricator(ctx context.Context, fab domain.NewFabricator) (*domain.Fabricator, error)
}
