package mapview

import (
	"github.com/rainwise/web-go/internal/geo"
)

type LayerKind string

const (
	KindUserMarker    LayerKind = "user-marker"
	KindStationMarker LayerKind = "station-marker"
	KindLineUnderlay  LayerKind = "line-underlay"
	KindLineOverlay   LayerKind = "line-overlay"
	KindEndpoint      LayerKind = "endpoint"
	KindDistanceLabel LayerKind = "distance-label"
)

// Handle identifies one layer while it is attached to a group.
type Handle uint64

type Style struct {
	Color   string  `json:"color,omitempty"`
	Weight  float64 `json:"weight,omitempty"`
	Radius  float64 `json:"radius,omitempty"`
	Opacity float64 `json:"opacity,omitempty"`
}

type Layer struct {
	Handle      Handle           `json:"handle"`
	Kind        LayerKind        `json:"kind"`
	Coordinates []geo.Coordinate `json:"coordinates"`
	StationID   string           `json:"stationId,omitempty"`
	Name        string           `json:"name,omitempty"`
	Label       string           `json:"label,omitempty"`
	Nearest     bool             `json:"nearest,omitempty"`
	Draggable   bool             `json:"draggable,omitempty"`
	Style       Style            `json:"style"`
}

// LayerGroup owns the handles of everything currently drawn. Handles are
// never reused, so a stale handle from a previous draw stays dead.
type LayerGroup struct {
	next   Handle
	layers []Layer
	live   map[Handle]struct{}
}

func NewLayerGroup() *LayerGroup {
	return &LayerGroup{live: make(map[Handle]struct{})}
}

func (g *LayerGroup) Add(l Layer) Handle {
	g.next++
	l.Handle = g.next
	g.layers = append(g.layers, l)
	g.live[l.Handle] = struct{}{}
	return l.Handle
}

// ClearLayers releases every handle and returns how many were released.
func (g *LayerGroup) ClearLayers() int {
	n := len(g.layers)
	for _, l := range g.layers {
		delete(g.live, l.Handle)
	}
	g.layers = nil
	return n
}

func (g *LayerGroup) IsLive(h Handle) bool {
	_, ok := g.live[h]
	return ok
}

func (g *LayerGroup) Len() int {
	return len(g.layers)
}

// Layers returns a copy of the current layers in draw order.
func (g *LayerGroup) Layers() []Layer {
	out := make([]Layer, len(g.layers))
	for i, l := range g.layers {
		l.Coordinates = append([]geo.Coordinate(nil), l.Coordinates...)
		out[i] = l
	}
	return out
}
