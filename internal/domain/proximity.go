package domain

// NearbyRadiusKm is the distance within which a pin counts as near the search marker
const NearbyRadiusKm = 5.0

// Proximity is the visual state of a pin for one render pass
type Proximity int

const (
	ProximityDefault Proximity = iota
	ProximityNearby
	ProximityActive
)

func (p Proximity) String() string {
	switch p {
	case ProximityNearby:
		return "nearby"
	case ProximityActive:
		return "active"
	default:
		return "default"
	}
}

// Classify resolves the proximity state of a pin.
// The active pin wins over proximity; marker may be nil.
func Classify(pin Pin, marker *Coordinate, activeID string) Proximity {
	if activeID != "" && pin.ID == activeID {
		return ProximityActive
	}
	if marker != nil && DistanceKm(pin.Lat, pin.Lng, marker.Lat, marker.Lng) <= NearbyRadiusKm {
		return ProximityNearby
	}
	return ProximityDefault
}
