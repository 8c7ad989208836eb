package domain

import "math"

// EarthRadiusKm is the mean Earth radius used for great-circle distances
const EarthRadiusKm = 6371.0

// DistanceKm returns the haversine great-circle distance between two points.
// Inputs are degrees; no range checking is done.
func DistanceKm(latA, lonA, latB, lonB float64) float64 {
	dLat := toRadians(latB - latA)
	dLon := toRadians(lonB - lonA)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRadians(latA))*math.Cos(toRadians(latB))*math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
	return EarthRadiusKm * c
}

// DistanceBetween is DistanceKm for two coordinates
func DistanceBetween(a, b Coordinate) float64 {
	return DistanceKm(a.Lat, a.Lng, b.Lat, b.Lng)
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
