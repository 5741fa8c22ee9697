package geo

import (
	"fmt"
	"math"
)

// CoordinateError describes a coordinate rejected at an input boundary
type CoordinateError struct {
	Field   string
	Value   float64
	Message string
}

func (e *CoordinateError) Error() string {
	return fmt.Sprintf("%s: %s (value: %.6f)", e.Field, e.Message, e.Value)
}

// ValidateLatitude checks lat is a finite value in [-90, 90]
func ValidateLatitude(lat float64) error {
	return validateRange("latitude", lat, 90)
}

// ValidateLongitude checks lon is a finite value in [-180, 180]
func ValidateLongitude(lon float64) error {
	return validateRange("longitude", lon, 180)
}

// ValidateCoordinate validates both halves of c, latitude first.
func ValidateCoordinate(c Coordinate) error {
	if err := ValidateLatitude(c.Latitude); err != nil {
		return err
	}
	return ValidateLongitude(c.Longitude)
}

func validateRange(field string, v, limit float64) error {
	switch {
	case math.IsNaN(v):
		return &CoordinateError{Field: field, Value: v, Message: "NaN is not allowed"}
	case math.IsInf(v, 0):
		return &CoordinateError{Field: field, Value: v, Message: "infinite value is not allowed"}
	case v < -limit || v > limit:
		return &CoordinateError{Field: field, Value: v, Message: fmt.Sprintf("must be between %g and %g", -limit, limit)}
	}
	return nil
}
