package mapview

import (
	"strconv"
	"strings"

	"github.com/rainwise/web-go/internal/config"
)

const DefaultMaxZoom = 19

// TileSource is published to the page; the server never fetches tiles.
type TileSource struct {
	URLTemplate string `json:"urlTemplate"`
	Attribution string `json:"attribution"`
	MaxZoom     int    `json:"maxZoom"`
}

func NewTileSource(urlTemplate, attribution string) TileSource {
	if urlTemplate == "" {
		urlTemplate = config.DefaultTileURL
	}
	if attribution == "" {
		attribution = config.DefaultTileAttribution
	}
	return TileSource{URLTemplate: urlTemplate, Attribution: attribution, MaxZoom: DefaultMaxZoom}
}

// tileURL expands the template for one tile. The {s} subdomain is fixed to "a".
func (t TileSource) tileURL(z, x, y int) string {
	return strings.NewReplacer(
		"{s}", "a",
		"{z}", strconv.Itoa(z),
		"{x}", strconv.Itoa(x),
		"{y}", strconv.Itoa(y),
	).Replace(t.URLTemplate)
}
