package engine

import "fabmap/internal/domain"

// PinCache is the engine's read-only copy of the backend's pins.
// Replace is its only writer.
type PinCache struct {
	pins []domain.Pin
}

// Replace swaps in a freshly reloaded pin list
func (c *PinCache) Replace(pins []domain.Pin) {
	c.pins = append([]domain.Pin(nil), pins...)
}

// Pins returns the cached pins, newest first
func (c *PinCache) Pins() []domain.Pin {
	return c.pins
}

// Get looks up a cached pin by ID
func (c *PinCache) Get(id string) (domain.Pin, bool) {
	return domain.FindPin(c.pins, id)
}

func (c *PinCache) Len() int { return len(c.pins) }
