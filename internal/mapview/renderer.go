package mapview

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/rainwise/web-go/internal/geo"
	"github.com/rainwise/web-go/internal/models"
	"github.com/rainwise/web-go/internal/station"
)

var (
	userStyle           = Style{Color: "#dc2626", Radius: 10}
	stationStyle        = Style{Color: "#2563eb", Radius: 6}
	nearestStationStyle = Style{Color: "#16a34a", Radius: 9}
	underlayStyle       = Style{Color: "#ffffff", Weight: 7, Opacity: 0.9}
	overlayStyle        = Style{Color: "#0ea5e9", Weight: 4, Opacity: 1}
	endpointStyle       = Style{Color: "#0ea5e9", Radius: 4}
)

// Snapshot is the full input of one draw.
type Snapshot struct {
	User     *geo.Coordinate
	Stations []models.Station
}

func (s Snapshot) equal(o Snapshot) bool {
	if (s.User == nil) != (o.User == nil) {
		return false
	}
	if s.User != nil && *s.User != *o.User {
		return false
	}
	if len(s.Stations) != len(o.Stations) {
		return false
	}
	for i := range s.Stations {
		a, b := s.Stations[i], o.Stations[i]
		if a.ID != b.ID || a.Name != b.Name || a.Latitude != b.Latitude || a.Longitude != b.Longitude {
			return false
		}
	}
	return true
}

func (s Snapshot) clone() Snapshot {
	c := Snapshot{Stations: append([]models.Station(nil), s.Stations...)}
	if s.User != nil {
		u := *s.User
		c.User = &u
	}
	return c
}

type Cause string

const (
	CauseClick Cause = "click"
	CauseDrag  Cause = "drag"
)

// LocationChanged is emitted for map clicks and user marker drags. The
// renderer does not apply it; the owner of the location does.
type LocationChanged struct {
	Coordinate geo.Coordinate `json:"coordinate"`
	Cause      Cause          `json:"cause"`
}

type Renderer struct {
	mu       sync.Mutex
	group    *LayerGroup
	last     *Snapshot
	nearest  *models.NearestResult
	closed   bool
	redraws  int
	onChange func(LocationChanged)
}

func NewRenderer(onLocationChange func(LocationChanged)) *Renderer {
	return &Renderer{
		group:    NewLayerGroup(),
		onChange: onLocationChange,
	}
}

// Update clears and rebuilds the layer group from s. It reports false,
// leaving the layers untouched, when s matches the previous snapshot or the
// renderer is closed.
func (r *Renderer) Update(s Snapshot) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.closed {
		return false
	}
	if r.last != nil && r.last.equal(s) {
		return false
	}

	snap := s.clone()
	released := r.group.ClearLayers()
	r.nearest = r.draw(snap)
	r.last = &snap
	r.redraws++

	log.Debug().
		Int("released", released).
		Int("layers", r.group.Len()).
		Int("stations", len(snap.Stations)).
		Msg("Map redrawn")
	return true
}

func (r *Renderer) draw(s Snapshot) *models.NearestResult {
	var nearest *models.NearestResult
	if res, ok := station.FindNearest(s.User, s.Stations); ok {
		nearest = &res
	}

	if s.User != nil {
		r.group.Add(Layer{
			Kind:        KindUserMarker,
			Coordinates: []geo.Coordinate{*s.User},
			Name:        "You are here",
			Draggable:   true,
			Style:       userStyle,
		})
	}

	for _, st := range s.Stations {
		isNearest := nearest != nil && nearest.Station.ID == st.ID
		style := stationStyle
		if isNearest {
			style = nearestStationStyle
		}
		r.group.Add(Layer{
			Kind:        KindStationMarker,
			Coordinates: []geo.Coordinate{st.Coordinate()},
			StationID:   st.ID,
			Name:        st.Name,
			Nearest:     isNearest,
			Style:       style,
		})
	}

	if nearest == nil {
		return nil
	}

	from, to := *s.User, nearest.Station.Coordinate()
	line := []geo.Coordinate{from, to}
	r.group.Add(Layer{Kind: KindLineUnderlay, Coordinates: line, Style: underlayStyle})
	r.group.Add(Layer{Kind: KindLineOverlay, Coordinates: line, Style: overlayStyle})
	r.group.Add(Layer{Kind: KindEndpoint, Coordinates: []geo.Coordinate{from}, Style: endpointStyle})
	r.group.Add(Layer{Kind: KindEndpoint, Coordinates: []geo.Coordinate{to}, Style: endpointStyle})
	r.group.Add(Layer{
		Kind:        KindDistanceLabel,
		Coordinates: []geo.Coordinate{geo.Midpoint(from, to)},
		StationID:   nearest.Station.ID,
		Label:       FormatDistance(nearest.DistanceKm),
	})

	return nearest
}

func FormatDistance(km float64) string {
	return fmt.Sprintf("%.2f km", km)
}

func (r *Renderer) HandleClick(c geo.Coordinate) {
	r.emit(LocationChanged{Coordinate: c, Cause: CauseClick})
}

func (r *Renderer) HandleDragEnd(c geo.Coordinate) {
	r.emit(LocationChanged{Coordinate: c, Cause: CauseDrag})
}

// emit runs the callback without holding the lock so the owner may call
// Update from inside it.
func (r *Renderer) emit(ev LocationChanged) {
	r.mu.Lock()
	closed, cb := r.closed, r.onChange
	r.mu.Unlock()

	if closed || cb == nil {
		return
	}
	cb(ev)
}

func (r *Renderer) Layers() []Layer {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.group.Layers()
}

// Nearest returns the result computed by the last draw, or nil.
func (r *Renderer) Nearest() *models.NearestResult {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.nearest == nil {
		return nil
	}
	n := *r.nearest
	return &n
}

func (r *Renderer) Redraws() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.redraws
}

// Close releases all layers. Later updates and events are ignored.
func (r *Renderer) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return
	}
	r.group.ClearLayers()
	r.closed = true
	r.last = nil
	r.nearest = nil
}

func (r *Renderer) Closed() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}
