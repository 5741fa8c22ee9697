package session

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rainwise/web-go/internal/geo"
	"github.com/rainwise/web-go/internal/mapview"
	"github.com/rainwise/web-go/internal/models"
)

type staticLister struct {
	stations []models.Station
	err      error
}

func (l *staticLister) Stations(ctx context.Context) ([]models.Station, error) {
	return l.stations, l.err
}

func testLister() *staticLister {
	return &staticLister{stations: []models.Station{
		{ID: "st-01", Name: "Delhi", Latitude: 28.6139, Longitude: 77.2090},
		{ID: "st-02", Name: "Mumbai", Latitude: 19.0760, Longitude: 72.8777},
	}}
}

func TestCreateDrawsInitialView(t *testing.T) {
	store := NewStore(testLister(), 10, time.Hour)
	loc := geo.Coordinate{Latitude: 19.0, Longitude: 72.8}

	sess, err := store.Create(context.Background(), &loc)
	require.NoError(t, err)
	assert.NotEmpty(t, sess.ID)

	view := sess.View()
	assert.Equal(t, &loc, view.Location)
	require.NotNil(t, view.Nearest)
	assert.Equal(t, "st-02", view.Nearest.Station.ID)
	assert.Len(t, view.Layers.Features, 8)
	assert.Equal(t, 2, view.Stations)

	got, ok := store.Get(sess.ID)
	require.True(t, ok)
	assert.Same(t, sess, got)
}

func TestCreateWithoutLocation(t *testing.T) {
	store := NewStore(testLister(), 10, time.Hour)

	sess, err := store.Create(context.Background(), nil)
	require.NoError(t, err)

	view := sess.View()
	assert.Nil(t, view.Location)
	assert.Nil(t, view.Nearest)
	assert.Len(t, view.Layers.Features, 2)
}

func TestCreateStationError(t *testing.T) {
	store := NewStore(&staticLister{err: errors.New("registry down")}, 10, time.Hour)

	_, err := store.Create(context.Background(), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "registry down")
	assert.Zero(t, store.Len())
}

func TestClickMovesLocation(t *testing.T) {
	var redraws []bool
	store := NewStore(testLister(), 10, time.Hour, WithRedrawHook(func(r bool) { redraws = append(redraws, r) }))
	loc := geo.Coordinate{Latitude: 19.0, Longitude: 72.8}
	sess, err := store.Create(context.Background(), &loc)
	require.NoError(t, err)

	clicked := geo.Coordinate{Latitude: 28.5, Longitude: 77.1}
	sess.Renderer().HandleClick(clicked)

	assert.Equal(t, &clicked, sess.Location())
	assert.Equal(t, "st-01", sess.View().Nearest.Station.ID)

	// Dropping the marker where it already is changes nothing.
	sess.Renderer().HandleDragEnd(clicked)
	assert.Equal(t, []bool{true, true, false}, redraws)
}

func TestConcurrentClicksLeaveMarkerAtLocation(t *testing.T) {
	store := NewStore(testLister(), 10, time.Hour)
	sess, err := store.Create(context.Background(), nil)
	require.NoError(t, err)

	for round := 0; round < 50; round++ {
		var wg sync.WaitGroup
		for i := 0; i < 4; i++ {
			wg.Add(1)
			go func(i int) {
				defer wg.Done()
				sess.Renderer().HandleClick(geo.Coordinate{Latitude: float64(round), Longitude: float64(i)})
			}(i)
		}
		wg.Wait()

		loc := sess.Location()
		require.NotNil(t, loc)
		var marker *mapview.Layer
		for _, l := range sess.Renderer().Layers() {
			if l.Kind == mapview.KindUserMarker {
				marker = &l
				break
			}
		}
		require.NotNil(t, marker)
		assert.Equal(t, *loc, marker.Coordinates[0])
	}
}

func TestDeleteClosesRenderer(t *testing.T) {
	store := NewStore(testLister(), 10, time.Hour)
	sess, err := store.Create(context.Background(), nil)
	require.NoError(t, err)

	assert.True(t, store.Delete(sess.ID))
	assert.True(t, sess.Renderer().Closed())
	assert.False(t, store.Delete(sess.ID))

	_, ok := store.Get(sess.ID)
	assert.False(t, ok)
}

func TestEvictionClosesRenderer(t *testing.T) {
	store := NewStore(testLister(), 1, time.Hour)
	first, err := store.Create(context.Background(), nil)
	require.NoError(t, err)
	second, err := store.Create(context.Background(), nil)
	require.NoError(t, err)

	assert.True(t, first.Renderer().Closed())
	assert.False(t, second.Renderer().Closed())
	assert.Equal(t, 1, store.Len())
}

func TestExpiryClosesRenderer(t *testing.T) {
	store := NewStore(testLister(), 10, 50*time.Millisecond)
	sess, err := store.Create(context.Background(), nil)
	require.NoError(t, err)

	assert.Eventually(t, func() bool {
		return sess.Renderer().Closed()
	}, 2*time.Second, 10*time.Millisecond)
}
