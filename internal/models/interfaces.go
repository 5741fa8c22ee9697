package models

import (
	"context"

	"github.com/rainwise/web-go/internal/geo"
)

type StationFinder interface {
	Stations(ctx context.Context) ([]Station, error)
	FindStation(ctx context.Context, stationID string) (*Station, error)
	FindNearest(ctx context.Context, user *geo.Coordinate) (*NearestResult, error)
	FindNearestStations(ctx context.Context, lat, lon float64, limit int) ([]Station, error)
}
