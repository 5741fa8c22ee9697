package mapview

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rainwise/web-go/internal/config"
	"github.com/rainwise/web-go/internal/geo"
)

func TestFeatureCollection(t *testing.T) {
	r := NewRenderer(nil)
	user := geo.Coordinate{Latitude: 19.0, Longitude: 72.8}
	require.True(t, r.Update(Snapshot{User: &user, Stations: testStations()}))

	fc := r.FeatureCollection()
	require.Len(t, fc.Features, 8)

	userFeature := fc.Features[0]
	assert.Equal(t, orb.Point{72.8, 19.0}, userFeature.Geometry)
	assert.Equal(t, "user-marker", userFeature.Properties["kind"])
	assert.Equal(t, true, userFeature.Properties["draggable"])

	line, ok := fc.Features[3].Geometry.(orb.LineString)
	require.True(t, ok)
	assert.Len(t, line, 2)

	data, err := json.Marshal(fc)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"FeatureCollection"`)
	assert.Contains(t, string(data), `"nearest":true`)
}

func TestLayersToGeoJSONSkipsEmpty(t *testing.T) {
	fc := LayersToGeoJSON([]Layer{{Kind: KindEndpoint}})
	assert.Empty(t, fc.Features)
}

func TestTileSource(t *testing.T) {
	ts := NewTileSource("", "")
	assert.Equal(t, "https://a.tile.openstreetmap.org/5/22/14.png", ts.tileURL(5, 22, 14))
	assert.Equal(t, DefaultMaxZoom, ts.MaxZoom)
	assert.Equal(t, config.DefaultTileURL, ts.URLTemplate)
	assert.Equal(t, config.DefaultTileAttribution, ts.Attribution)

	custom := NewTileSource("https://tiles.example/{z}/{x}/{y}.webp", "Example")
	assert.Equal(t, "https://tiles.example/1/2/3.webp", custom.tileURL(1, 2, 3))
	assert.Equal(t, "Example", custom.Attribution)
}
