package cache

import (
	"testing"

	"github.com/rainwise/web-go/internal/geo"
	"github.com/rainwise/web-go/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNearestCacheGetAdd(t *testing.T) {
	c := NewNearestCache(testCacheConfig())
	user := geo.Coordinate{Latitude: 28.6139, Longitude: 77.2090}
	want := models.NearestResult{Station: createTestStations()[0], DistanceKm: 0}

	_, ok := c.Get(user)
	assert.False(t, ok)

	c.Add(user, want)
	got, ok := c.Get(user)
	require.True(t, ok)
	assert.Equal(t, want, got)

	assert.Equal(t, map[string]uint64{"nearest_hits": 1, "nearest_misses": 1}, c.stats())
}

func TestNearestCacheKeysExactCoordinates(t *testing.T) {
	c := NewNearestCache(testCacheConfig())
	c.Add(geo.Coordinate{Latitude: 28.61391, Longitude: 77.20902}, models.NearestResult{DistanceKm: 1})

	_, ok := c.Get(geo.Coordinate{Latitude: 28.61391, Longitude: 77.20902})
	assert.True(t, ok)

	_, ok = c.Get(geo.Coordinate{Latitude: 28.61389, Longitude: 77.20898})
	assert.False(t, ok, "nearby points must not share an entry")
}

func TestNearestCacheEvictsBeyondSize(t *testing.T) {
	cfg := testCacheConfig()
	cfg.NearestLRUSize = 2
	c := NewNearestCache(cfg)

	for i := 0; i < 3; i++ {
		c.Add(geo.Coordinate{Latitude: float64(i)}, models.NearestResult{DistanceKm: float64(i)})
	}

	assert.Equal(t, 2, c.Len())
	_, ok := c.Get(geo.Coordinate{Latitude: 0})
	assert.False(t, ok)
}

func TestNearestCachePurge(t *testing.T) {
	c := NewNearestCache(testCacheConfig())
	c.Add(geo.Coordinate{Latitude: 1}, models.NearestResult{})
	c.Purge()

	assert.Equal(t, 0, c.Len())
}
