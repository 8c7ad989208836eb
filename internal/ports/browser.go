package ports

import "fabmap/internal/domain"

// MapLinkOpener shows a coordinate on an external web map
type MapLinkOpener interface {
	Open(c domain.Coordinate, zoom int) error
}
