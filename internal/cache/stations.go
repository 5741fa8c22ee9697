package cache

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/rainwise/web-go/internal/config"
	"github.com/rainwise/web-go/internal/models"
)

// StationCache holds the station list in memory for the lifetime of a
// process, so every view of a session sees the same fixed list.
type StationCache struct {
	stations    []models.Station
	lastUpdated time.Time
	ttl         time.Duration
	clock       clockwork.Clock
	mu          sync.RWMutex
}

func NewStationCache(cfg *config.CacheConfig) *StationCache {
	return NewStationCacheWithClock(cfg, clockwork.NewRealClock())
}

func NewStationCacheWithClock(cfg *config.CacheConfig, clock clockwork.Clock) *StationCache {
	if cfg == nil {
		cfg = config.GetCacheConfig()
	}
	return &StationCache{
		ttl:   cfg.GetStationMemoryTTL(),
		clock: clock,
	}
}

// GetStations returns nil when the cache is empty or expired
func (c *StationCache) GetStations() []models.Station {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if c.stations == nil || c.isExpired() {
		return nil
	}
	return c.stations
}

func (c *StationCache) SetStations(stations []models.Station) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.stations = stations
	c.lastUpdated = c.clock.Now()
}

func (c *StationCache) isExpired() bool {
	return c.clock.Since(c.lastUpdated) > c.ttl
}
