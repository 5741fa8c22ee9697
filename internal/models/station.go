package models

import (
	"fmt"

	"github.com/rainwise/web-go/internal/geo"
)

type Source string

const (
	SourcePlaceholder Source = "PLACEHOLDER"
	SourceRegistry    Source = "REGISTRY"
)

// Station is a groundwater/rainfall monitoring station shown on the map
type Station struct {
	ID        string  `json:"id" dynamodbav:"stationId"`
	Name      string  `json:"name" dynamodbav:"name"`
	State     *string `json:"state,omitempty" dynamodbav:"state,omitempty"`
	Latitude  float64 `json:"latitude" dynamodbav:"latitude"`
	Longitude float64 `json:"longitude" dynamodbav:"longitude"`
	Source    Source  `json:"source" dynamodbav:"source"`
	Distance  float64 `json:"distance,omitempty" dynamodbav:"-"`
}

func (s Station) Coordinate() geo.Coordinate {
	return geo.Coordinate{Latitude: s.Latitude, Longitude: s.Longitude}
}

// Validate checks the fields a registry record must carry
func (s *Station) Validate() error {
	if s.ID == "" {
		return fmt.Errorf("station ID is required")
	}
	if s.Name == "" {
		return fmt.Errorf("station name is required for %s", s.ID)
	}

	switch s.Source {
	case SourcePlaceholder, SourceRegistry:
	default:
		return fmt.Errorf("invalid station source: %s", s.Source)
	}

	if err := geo.ValidateCoordinate(s.Coordinate()); err != nil {
		return fmt.Errorf("station %s: %w", s.ID, err)
	}
	return nil
}

// NearestResult is derived from a user location and a station list; it is
// recomputed whenever either changes and never stored as canonical state.
type NearestResult struct {
	Station    Station `json:"station"`
	DistanceKm float64 `json:"distanceKm"`
}
