package application

import (
	"cmp"
	"slices"

	"fabmap/internal/domain"
)

// NearbyPins returns the pins within the nearby radius of marker, nearest first
func NearbyPins(pins []Pin, marker Coordinate) []Pin {
	var out []Pin
	for _, p := range pins {
		if Classify(p, &marker, "") == ProximityNearby {
			out = append(out, p)
		}
	}
	slices.SortStableFunc(out, func(a, b Pin) int {
		return cmp.Compare(domain.DistanceBetween(marker, a.Position()), domain.DistanceBetween(marker, b.Position()))
	})
	return out
}
