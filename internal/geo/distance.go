package geo

import "math"

const earthRadiusKm = 6371.0

// Coordinate is a latitude/longitude pair in decimal degrees
type Coordinate struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

// HaversineDistanceKm returns the great-circle distance between a and b.
// Inputs are not range checked; NaN propagates.
func HaversineDistanceKm(a, b Coordinate) float64 {
	latA := toRadians(a.Latitude)
	latB := toRadians(b.Latitude)
	dLat := toRadians(b.Latitude - a.Latitude)
	dLon := toRadians(b.Longitude - a.Longitude)

	h := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(latA)*math.Cos(latB)*
			math.Sin(dLon/2)*math.Sin(dLon/2)
	c := 2 * math.Atan2(math.Sqrt(h), math.Sqrt(1-h))
	return earthRadiusKm * c
}

// Midpoint returns the arithmetic midpoint of a and b. It is only used to
// place labels, so the planar approximation is fine at city scale.
func Midpoint(a, b Coordinate) Coordinate {
	return Coordinate{
		Latitude:  (a.Latitude + b.Latitude) / 2,
		Longitude: (a.Longitude + b.Longitude) / 2,
	}
}

func toRadians(deg float64) float64 {
	return deg * math.Pi / 180
}
