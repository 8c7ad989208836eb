package application

import "fabmap/internal/domain"

// Re-export domain types for use by adapters
type (
	Pin           = domain.Pin
	Fabricator    = domain.Fabricator
	Coordinate    = domain.Coordinate
	Place         = domain.Place
	Proximity     = domain.Proximity
	NewPin        = domain.NewPin
	NewFabricator = domain.NewFabricator
)

const (
	ProximityDefault = domain.ProximityDefault
	ProximityNearby  = domain.ProximityNearby
	ProximityActive  = domain.ProximityActive
)

// Classify resolves the proximity state of a pin
func Classify(pin Pin, marker *Coordinate, activeID string) Proximity {
	return domain.Classify(pin, marker, activeID)
}
