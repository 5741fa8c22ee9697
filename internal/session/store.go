package session

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/paulmach/orb/geojson"
	"github.com/rs/zerolog/log"

	"github.com/rainwise/web-go/internal/geo"
	"github.com/rainwise/web-go/internal/mapview"
	"github.com/rainwise/web-go/internal/models"
)

type StationLister interface {
	Stations(ctx context.Context) ([]models.Station, error)
}

// Session is one mounted map view. It owns the canonical user location;
// its renderer only reports changes back through the callback.
type Session struct {
	ID        string
	CreatedAt time.Time

	// updateMu orders location writes with their redraws
	updateMu sync.Mutex
	mu       sync.Mutex
	location *geo.Coordinate
	stations []models.Station
	renderer *mapview.Renderer
	onRedraw func(bool)
}

// View is the serialisable state of a session.
type View struct {
	ID       string                     `json:"id"`
	Location *geo.Coordinate            `json:"location"`
	Nearest  *models.NearestResult      `json:"nearest"`
	Layers   *geojson.FeatureCollection `json:"layers"`
	Stations int                        `json:"stationCount"`
}

func (s *Session) Location() *geo.Coordinate {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.location == nil {
		return nil
	}
	c := *s.location
	return &c
}

func (s *Session) Renderer() *mapview.Renderer {
	return s.renderer
}

// SetLocation replaces the location and redraws. It reports whether the
// layers were rebuilt.
func (s *Session) SetLocation(c *geo.Coordinate) bool {
	s.updateMu.Lock()
	defer s.updateMu.Unlock()

	s.mu.Lock()
	if c == nil {
		s.location = nil
	} else {
		loc := *c
		s.location = &loc
	}
	snap := mapview.Snapshot{User: s.location, Stations: s.stations}
	onRedraw := s.onRedraw
	s.mu.Unlock()

	redrawn := s.renderer.Update(snap)
	if onRedraw != nil {
		onRedraw(redrawn)
	}
	return redrawn
}

func (s *Session) View() View {
	return View{
		ID:       s.ID,
		Location: s.Location(),
		Nearest:  s.renderer.Nearest(),
		Layers:   s.renderer.FeatureCollection(),
		Stations: len(s.stations),
	}
}

type Option func(*Store)

// WithRedrawHook is called after every location change with the result of
// the redraw.
func WithRedrawHook(fn func(redrawn bool)) Option {
	return func(s *Store) {
		s.onRedraw = fn
	}
}

// Store keeps live sessions in an expiring LRU. Whatever removes a
// session, the renderer is closed.
type Store struct {
	source   StationLister
	sessions *expirable.LRU[string, *Session]
	onRedraw func(bool)
}

func NewStore(source StationLister, size int, ttl time.Duration, opts ...Option) *Store {
	if size <= 0 {
		size = 1000
	}

	s := &Store{source: source}
	for _, opt := range opts {
		opt(s)
	}

	s.sessions = expirable.NewLRU[string, *Session](size, func(id string, sess *Session) {
		sess.renderer.Close()
		log.Debug().Str("sessionId", id).Msg("Map session closed")
	}, ttl)
	return s
}

// Create mounts a new map view over the current station list.
func (s *Store) Create(ctx context.Context, location *geo.Coordinate) (*Session, error) {
	stations, err := s.source.Stations(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading stations for map session: %w", err)
	}

	sess := &Session{
		ID:        uuid.NewString(),
		CreatedAt: time.Now(),
		stations:  stations,
		onRedraw:  s.onRedraw,
	}
	sess.renderer = mapview.NewRenderer(func(ev mapview.LocationChanged) {
		c := ev.Coordinate
		sess.SetLocation(&c)
		log.Debug().
			Str("sessionId", sess.ID).
			Str("cause", string(ev.Cause)).
			Float64("lat", c.Latitude).
			Float64("lon", c.Longitude).
			Msg("Map location changed")
	})
	sess.SetLocation(location)

	s.sessions.Add(sess.ID, sess)
	return sess, nil
}

func (s *Store) Get(id string) (*Session, bool) {
	return s.sessions.Get(id)
}

// Delete unmounts the session. It reports false for unknown ids.
func (s *Store) Delete(id string) bool {
	return s.sessions.Remove(id)
}

func (s *Store) Len() int {
	return s.sessions.Len()
}

func (s *Store) Purge() {
	s.sessions.Purge()
}
