package station

import (
	"errors"

	"github.com/rainwise/web-go/internal/models"
)

// StationFinder defines the interface for finding stations
type StationFinder = models.StationFinder

// ErrStationNotFound is returned by FindStation for an unknown id
var ErrStationNotFound = errors.New("station not found")
