package mapview

import (
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"

	"github.com/rainwise/web-go/internal/geo"
)

func point(c geo.Coordinate) orb.Point {
	return orb.Point{c.Longitude, c.Latitude}
}

// FeatureCollection exports the current layers for the Leaflet page. Lines
// become LineStrings, everything else a Point.
func (r *Renderer) FeatureCollection() *geojson.FeatureCollection {
	return LayersToGeoJSON(r.Layers())
}

func LayersToGeoJSON(layers []Layer) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()

	for _, l := range layers {
		var g orb.Geometry
		switch len(l.Coordinates) {
		case 0:
			continue
		case 1:
			g = point(l.Coordinates[0])
		default:
			ls := make(orb.LineString, 0, len(l.Coordinates))
			for _, c := range l.Coordinates {
				ls = append(ls, point(c))
			}
			g = ls
		}

		f := geojson.NewFeature(g)
		f.ID = uint64(l.Handle)
		f.Properties["kind"] = string(l.Kind)
		if l.StationID != "" {
			f.Properties["stationId"] = l.StationID
		}
		if l.Name != "" {
			f.Properties["name"] = l.Name
		}
		if l.Label != "" {
			f.Properties["label"] = l.Label
		}
		if l.Nearest {
			f.Properties["nearest"] = true
		}
		if l.Draggable {
			f.Properties["draggable"] = true
		}
		if l.Style.Color != "" {
			f.Properties["color"] = l.Style.Color
		}
		if l.Style.Weight > 0 {
			f.Properties["weight"] = l.Style.Weight
		}
		if l.Style.Radius > 0 {
			f.Properties["radius"] = l.Style.Radius
		}
		if l.Style.Opacity > 0 {
			f.Properties["opacity"] = l.Style.Opacity
		}
		fc.Append(f)
	}

	return fc
}
