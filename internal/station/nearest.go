package station

import (
	"sort"

	"github.com/rainwise/web-go/internal/geo"
	"github.com/rainwise/web-go/internal/models"
)

// FindNearest returns the station closest to user by great-circle
// distance. It reports false when user is nil or stations is empty.
// The scan keeps the first strictly smaller candidate, so ties go to the
// earlier station in list order.
func FindNearest(user *geo.Coordinate, stations []models.Station) (models.NearestResult, bool) {
	if user == nil || len(stations) == 0 {
		return models.NearestResult{}, false
	}

	best := models.NearestResult{
		Station:    stations[0],
		DistanceKm: geo.HaversineDistanceKm(*user, stations[0].Coordinate()),
	}
	for _, s := range stations[1:] {
		d := geo.HaversineDistanceKm(*user, s.Coordinate())
		if d < best.DistanceKm {
			best = models.NearestResult{Station: s, DistanceKm: d}
		}
	}
	return best, true
}

// NearestN returns up to limit stations ordered by distance from user,
// each annotated with its distance. Equal distances keep list order.
func NearestN(user geo.Coordinate, stations []models.Station, limit int) []models.Station {
	ranked := make([]models.Station, len(stations))
	for i, s := range stations {
		s.Distance = geo.HaversineDistanceKm(user, s.Coordinate())
		ranked[i] = s
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Distance < ranked[j].Distance
	})

	if limit > len(ranked) {
		limit = len(ranked)
	}
	return ranked[:limit]
}
