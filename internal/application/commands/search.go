package commands

import (
	"context"
	"strings"

	"fabmap/internal/application"
	"fabmap/internal/domain"
	"fabmap/internal/ports"
)

// SearchLocationCommand looks up places matching free text
type SearchLocationCommand struct {
	geocoder ports.Geocoder
	Query    string
}

// NewSearchLocationCommand creates a new SearchLocationCommand
func NewSearchLocationCommand(geocoder ports.Geocoder, query string) *SearchLocationCommand {
	return &SearchLocationCommand{
		geocoder: geocoder,
		Query:    query,
	}
}

// Execute runs the search. An empty query returns no results without a request.
func (c *SearchLocationCommand) Execute(ctx context.Context) ([]domain.Place, error) {
	query := strings.TrimSpace(c.Query)
	if query == "" {
		return nil, nil
	}

	places, err := c.geocoder.Search(ctx, query)
	if err != nil {
		return nil, &application.NetworkError{Op: "search location", Err: err}
	}
	return places, nil
}
