package station

import (
	"context"
	"fmt"
	"sync"

	"github.com/rainwise/web-go/internal/cache"
	"github.com/rainwise/web-go/internal/geo"
	"github.com/rainwise/web-go/internal/models"
	"github.com/rs/zerolog/log"
)

const defaultNearestLimit = 5

// Finder resolves the session's station list through memory, the S3 list
// cache and the station registry, falling back to the placeholder list.
type Finder struct {
	source   cache.StationSource
	memCache *cache.StationCache
	s3Cache  cache.StationListCacheProvider
	nearest  *cache.NearestCache

	// OnLookup, when set, is told whether each FindNearest call was served
	// from the nearest cache.
	OnLookup func(cacheHit bool)

	loadMutex sync.Mutex
	saves     sync.WaitGroup
}

var _ models.StationFinder = (*Finder)(nil)

type FinderOption func(*Finder)

// WithS3Cache adds the S3 list cache between memory and the registry
func WithS3Cache(c cache.StationListCacheProvider) FinderOption {
	return func(f *Finder) {
		f.s3Cache = c
	}
}

func WithNearestCache(c *cache.NearestCache) FinderOption {
	return func(f *Finder) {
		f.nearest = c
	}
}

// NewFinder builds a Finder; a nil source means the placeholder list is
// the registry.
func NewFinder(source cache.StationSource, memCache *cache.StationCache, opts ...FinderOption) *Finder {
	if memCache == nil {
		memCache = cache.NewStationCache(nil)
	}

	f := &Finder{
		source:   source,
		memCache: memCache,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

func (f *Finder) Stations(ctx context.Context) ([]models.Station, error) {
	return f.getStationList(ctx)
}

func (f *Finder) FindStation(ctx context.Context, stationID string) (*models.Station, error) {
	stations, err := f.getStationList(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting station list: %w", err)
	}

	for _, s := range stations {
		if s.ID == stationID {
			return &s, nil
		}
	}

	return nil, fmt.Errorf("%w: %s", ErrStationNotFound, stationID)
}

// FindNearest returns nil without error when user is nil
func (f *Finder) FindNearest(ctx context.Context, user *geo.Coordinate) (*models.NearestResult, error) {
	if user == nil {
		return nil, nil
	}

	stations, err := f.getStationList(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting station list: %w", err)
	}

	if f.nearest != nil {
		if result, ok := f.nearest.Get(*user); ok {
			f.reportLookup(true)
			return &result, nil
		}
	}
	f.reportLookup(false)

	result, ok := FindNearest(user, stations)
	if !ok {
		return nil, nil
	}
	if f.nearest != nil {
		f.nearest.Add(*user, result)
	}
	return &result, nil
}

func (f *Finder) FindNearestStations(ctx context.Context, lat, lon float64, limit int) ([]models.Station, error) {
	user := geo.Coordinate{Latitude: lat, Longitude: lon}
	if err := geo.ValidateCoordinate(user); err != nil {
		return nil, err
	}

	stations, err := f.getStationList(ctx)
	if err != nil {
		return nil, fmt.Errorf("getting station list: %w", err)
	}

	if limit <= 0 {
		limit = defaultNearestLimit
	}
	return NearestN(user, stations, limit), nil
}

// WaitForPendingSaves blocks until background S3 writes have finished
func (f *Finder) WaitForPendingSaves() {
	f.saves.Wait()
}

func (f *Finder) reportLookup(hit bool) {
	if f.OnLookup != nil {
		f.OnLookup(hit)
	}
}

func (f *Finder) getStationList(ctx context.Context) ([]models.Station, error) {
	if stations := f.memCache.GetStations(); stations != nil {
		log.Debug().Msg("Memory cache HIT for station list")
		return stations, nil
	}

	f.loadMutex.Lock()
	defer f.loadMutex.Unlock()

	// Another caller may have loaded the list while we waited
	if stations := f.memCache.GetStations(); stations != nil {
		return stations, nil
	}

	stations, err := f.loadStationList(ctx)
	if err != nil {
		return nil, err
	}

	f.memCache.SetStations(stations)
	if f.nearest != nil {
		f.nearest.Purge()
	}
	return stations, nil
}

func (f *Finder) loadStationList(ctx context.Context) ([]models.Station, error) {
	if f.source == nil {
		log.Debug().Msg("No station registry configured, using placeholder stations")
		return PlaceholderStations(), nil
	}

	if f.s3Cache != nil {
		stations, err := f.s3Cache.GetStations(ctx)
		if err != nil {
			log.Error().Err(err).Msg("Error getting stations from S3 cache")
		} else if len(stations) > 0 {
			log.Debug().Msg("S3 cache HIT for station list")
			return stations, nil
		}
	}

	log.Debug().Msg("Cache MISS for station list, reading station registry")

	stations, err := f.source.ListStations(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return nil, fmt.Errorf("listing stations: %w", err)
		}
		log.Error().Err(err).Msg("Station registry unavailable, using placeholder stations")
		return PlaceholderStations(), nil
	}
	if len(stations) == 0 {
		log.Warn().Msg("Station registry is empty, using placeholder stations")
		return PlaceholderStations(), nil
	}

	if f.s3Cache != nil {
		f.saves.Add(1)
		go func() {
			defer f.saves.Done()
			if err := f.s3Cache.SaveStations(context.Background(), stations); err != nil {
				log.Error().Err(err).Msg("Failed to save stations to S3 cache")
			}
		}()
	}

	return stations, nil
}
