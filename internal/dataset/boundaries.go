package dataset

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/twpayne/go-geom"
	geomjson "github.com/twpayne/go-geom/encoding/geojson"

	"github.com/mcadavid/maternal_mortality_dashboard/internal/models"
)

// Fallback map view over Antioquia, used when no boundary geometry decodes.
const (
	defaultCenterLat = 6.5
	defaultCenterLon = -75.5
	mapZoom          = 6.6
)

// BoundaryIndex holds the normalized boundary feature collection. Collection
// is kept as raw JSON because it is embedded verbatim into the map figure;
// geometries are only decoded transiently to derive the map center.
type BoundaryIndex struct {
	Collection json.RawMessage
	Codes      map[string]struct{} // 5-char codes present among the shapes
	Center     models.MapCenter
	Zoom       float64
}

// Has reports whether a municipality code has a boundary shape.
func (b *BoundaryIndex) Has(code string) bool {
	_, ok := b.Codes[code]
	return ok
}

// Empty reports whether the index carries no shapes (degraded mode).
func (b *BoundaryIndex) Empty() bool {
	return len(b.Codes) == 0
}

type geoFeature struct {
	Type       string          `json:"type"`
	ID         any             `json:"id,omitempty"`
	Properties map[string]any  `json:"properties,omitempty"`
	Geometry   json.RawMessage `json:"geometry"`
}

type geoCollection struct {
	Type     string        `json:"type"`
	Features []*geoFeature `json:"features"`
}

// loadBoundaries reads a GeoJSON feature collection and normalizes every
// feature ID to the 5-char municipality code form. Features without a
// top-level ID fall back to a code found in their property bag; features
// with neither stay unkeyed and cannot be colored.
func loadBoundaries(path string) (*BoundaryIndex, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var fc geoCollection
	if err := json.Unmarshal(data, &fc); err != nil {
		return nil, fmt.Errorf("parse feature collection: %w", err)
	}

	codes := make(map[string]struct{})
	bounds := geom.NewBounds(geom.XY)
	decoded := false

	for _, feat := range fc.Features {
		id := normalizeFeatureID(feat.ID)
		if id == "" {
			id = codeFromProperties(feat.Properties)
		}
		if id != "" {
			feat.ID = id
			codes[id] = struct{}{}
		} else {
			feat.ID = nil
		}

		if len(feat.Geometry) > 0 {
			var g geom.T
			if err := geomjson.Unmarshal(feat.Geometry, &g); err == nil && g != nil {
				bounds.Extend(g)
				decoded = true
			}
		}
	}

	normalized, err := json.Marshal(&fc)
	if err != nil {
		return nil, fmt.Errorf("re-encode feature collection: %w", err)
	}

	center := models.MapCenter{Lat: defaultCenterLat, Lon: defaultCenterLon}
	if decoded && !bounds.IsEmpty() {
		center = models.MapCenter{
			Lat: (bounds.Min(1) + bounds.Max(1)) / 2,
			Lon: (bounds.Min(0) + bounds.Max(0)) / 2,
		}
	}

	return &BoundaryIndex{
		Collection: normalized,
		Codes:      codes,
		Center:     center,
		Zoom:       mapZoom,
	}, nil
}

// emptyBoundaryIndex is the degraded index used when the boundary file is
// absent: an empty collection renders a map with no colored regions.
func emptyBoundaryIndex() *BoundaryIndex {
	return &BoundaryIndex{
		Collection: json.RawMessage(`{"type":"FeatureCollection","features":[]}`),
		Codes:      map[string]struct{}{},
		Center:     models.MapCenter{Lat: defaultCenterLat, Lon: defaultCenterLon},
		Zoom:       mapZoom,
	}
}

// normalizeFeatureID renders a GeoJSON feature ID (string or number) as a
// zero-padded 5-char code.
func normalizeFeatureID(id any) string {
	switch v := id.(type) {
	case string:
		return padCode(strings.TrimSpace(v))
	case float64:
		return padCode(strconv.FormatInt(int64(v), 10))
	default:
		return ""
	}
}

// codeFromProperties looks for a municipality code inside a feature's
// property bag, under the same keys the upstream GeoJSON uses.
func codeFromProperties(props map[string]any) string {
	for _, key := range []string{"CodigoMunicipio", "codigo"} {
		if raw, ok := props[key]; ok {
			if id := normalizeFeatureID(raw); id != "" {
				return id
			}
		}
	}
	return ""
}

func padCode(s string) string {
	if s == "" {
		return ""
	}
	if len(s) < 5 {
		s = strings.Repeat("0", 5-len(s)) + s
	}
	return s
}
