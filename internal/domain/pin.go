package domain

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"time"
)

// DefaultPinTitle is the title given to every newly placed pin
const DefaultPinTitle = "New Pin"

// ErrInvalidCoordinate is returned for coordinates outside WGS84 bounds
var ErrInvalidCoordinate = errors.New("invalid coordinate")

// Coordinate is a WGS84 latitude/longitude pair in decimal degrees
type Coordinate struct {
	Lat float64
	Lng float64
}

// Validate checks that the coordinate is finite and within bounds
func (c Coordinate) Validate() error {
	if math.IsNaN(c.Lat) || math.IsInf(c.Lat, 0) || math.IsNaN(c.Lng) || math.IsInf(c.Lng, 0) {
		return fmt.Errorf("%w: not finite (%v, %v)", ErrInvalidCoordinate, c.Lat, c.Lng)
	}
	if c.Lat < -90 || c.Lat > 90 {
		return fmt.Errorf("%w: latitude %v out of range", ErrInvalidCoordinate, c.Lat)
	}
	if c.Lng < -180 || c.Lng > 180 {
		return fmt.Errorf("%w: longitude %v out of range", ErrInvalidCoordinate, c.Lng)
	}
	return nil
}

func (c Coordinate) String() string {
	return fmt.Sprintf("%.5f, %.5f", c.Lat, c.Lng)
}

// Pin is a user-placed annotation on the map
type Pin struct {
	ID          string
	OwnerID     string
	Lat         float64
	Lng         float64
	Title       string
	Description string
	Fabricators []Fabricator
	CreatedAt   time.Time
}

// Position returns the pin's coordinate
func (p Pin) Position() Coordinate {
	return Coordinate{Lat: p.Lat, Lng: p.Lng}
}

// Fabricator is a company contact attached to a pin
type Fabricator struct {
	ID        string
	PinID     string
	Name      string
	Address   string
	Phone     string
	CreatedAt time.Time
}

// NewPin holds the fields sent to the backend when placing a pin
type NewPin struct {
	OwnerID     string
	Lat         float64
	Lng         float64
	Title       string
	Description string
}

// NewFabricator holds the fields sent to the backend when adding a fabricator
type NewFabricator struct {
	PinID   string
	Name    string
	Address string
	Phone   string
}

// Place is a single geocoding search result
type Place struct {
	Label    string
	Position Coordinate
}

// SortNewestFirst orders pins by creation time, newest first.
// Pins created at the same instant keep their relative order.
func SortNewestFirst(pins []Pin) {
	slices.SortStableFunc(pins, func(a, b Pin) int {
		return b.CreatedAt.Compare(a.CreatedAt)
	})
}

// FindPin returns the pin with the given ID
func FindPin(pins []Pin, id string) (Pin, bool) {
	for _, p := range pins {
		if p.ID == id {
			return p, true
		}
	}
	return Pin{}, false
}
