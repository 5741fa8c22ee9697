package cache

import (
	"strconv"
	"sync/atomic"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/rainwise/web-go/internal/config"
	"github.com/rainwise/web-go/internal/geo"
	"github.com/rainwise/web-go/internal/models"
)

// NearestCache memoises nearest-station lookups keyed by the exact
// coordinate, so a hit always carries the distance for that point.
type NearestCache struct {
	lru    *expirable.LRU[string, models.NearestResult]
	hits   atomic.Uint64
	misses atomic.Uint64
}

func NewNearestCache(cfg *config.CacheConfig) *NearestCache {
	if cfg == nil {
		cfg = config.GetCacheConfig()
	}
	return &NearestCache{
		lru: expirable.NewLRU[string, models.NearestResult](cfg.NearestLRUSize, nil, cfg.GetNearestLRUTTL()),
	}
}

func nearestKey(c geo.Coordinate) string {
	return strconv.FormatFloat(c.Latitude, 'g', -1, 64) + "," + strconv.FormatFloat(c.Longitude, 'g', -1, 64)
}

func (c *NearestCache) Get(user geo.Coordinate) (models.NearestResult, bool) {
	result, ok := c.lru.Get(nearestKey(user))
	if ok {
		c.hits.Add(1)
	} else {
		c.misses.Add(1)
	}
	return result, ok
}

func (c *NearestCache) Add(user geo.Coordinate, result models.NearestResult) {
	c.lru.Add(nearestKey(user), result)
}

// Purge drops every entry; called when the station list is replaced.
func (c *NearestCache) Purge() {
	c.lru.Purge()
}

func (c *NearestCache) Len() int {
	return c.lru.Len()
}

func (c *NearestCache) stats() map[string]uint64 {
	return map[string]uint64{
		"nearest_hits":   c.hits.Load(),
		"nearest_misses": c.misses.Load(),
	}
}
