package ports

import (
	"context"

	"fabmap/internal/domain"
)

// Geocoder resolves free text into an ordered list of places
type Geocoder interface {
	Search(ctx context.Context, query string) ([]domain.Place, error)
}
