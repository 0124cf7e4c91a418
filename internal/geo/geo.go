// Package geo loads world boundary geometries and joins indicator
// values onto them for choropleth rendering.
package geo

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/elecatlas/elecatlas/internal/dataset"
)

// World is a parsed boundary file
type World struct {
	Features []Feature
}

// Feature is one country boundary, keyed by ISO-3 id
type Feature struct {
	ID       string
	Name     string
	Geometry Geometry
}

// Geometry holds polygon rings in geojson coordinate order
// (longitude, latitude). MultiPolygon geometries are flattened to
// their outer rings.
type Geometry struct {
	Rings [][][2]float64
}

// ValueFeature is a boundary with an indicator value attached.
// HasValue is false for countries absent from the year slice; those
// render grey.
type ValueFeature struct {
	Feature
	Value    float64
	HasValue bool
}

type rawCollection struct {
	Type     string       `json:"type"`
	Features []rawFeature `json:"features"`
}

type rawFeature struct {
	ID         string `json:"id"`
	Properties struct {
		Name string `json:"name"`
	} `json:"properties"`
	Geometry struct {
		Type        string          `json:"type"`
		Coordinates json.RawMessage `json:"coordinates"`
	} `json:"geometry"`
}

// LoadWorld reads a geojson FeatureCollection whose features carry a
// 3-letter id field
func LoadWorld(path string) (*World, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading boundaries file: %w", err)
	}

	var raw rawCollection
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing boundaries file: %w", err)
	}

	world := &World{Features: make([]Feature, 0, len(raw.Features))}

	for _, rf := range raw.Features {
		geom, err := parseGeometry(rf.Geometry.Type, rf.Geometry.Coordinates)
		if err != nil {
			return nil, fmt.Errorf("parsing geometry for %q: %w", rf.ID, err)
		}

		world.Features = append(world.Features, Feature{
			ID:       rf.ID,
			Name:     rf.Properties.Name,
			Geometry: geom,
		})
	}

	return world, nil
}

func parseGeometry(geomType string, coords json.RawMessage) (Geometry, error) {
	switch geomType {
	case "Polygon":
		var rings [][][2]float64
		if err := json.Unmarshal(coords, &rings); err != nil {
			return Geometry{}, err
		}
		return Geometry{Rings: rings}, nil
	case "MultiPolygon":
		var polys [][][][2]float64
		if err := json.Unmarshal(coords, &polys); err != nil {
			return Geometry{}, err
		}
		var rings [][][2]float64
		for _, poly := range polys {
			if len(poly) > 0 {
				rings = append(rings, poly[0])
			}
		}
		return Geometry{Rings: rings}, nil
	default:
		return Geometry{}, fmt.Errorf("unsupported geometry type %q", geomType)
	}
}

// JoinYear left-joins one year's consumption values onto the
// boundaries by country code. Every feature is returned; features
// without a matching dataset row carry no value.
func (w *World) JoinYear(tbl *dataset.Table, year int) []ValueFeature {
	values := make(map[string]float64)
	for _, rec := range tbl.FilterYear(year).Records() {
		// First match wins under duplicate keys
		if _, ok := values[rec.CountryCode]; !ok {
			values[rec.CountryCode] = rec.UseKWh
		}
	}

	out := make([]ValueFeature, 0, len(w.Features))

	for _, f := range w.Features {
		vf := ValueFeature{Feature: f}
		if v, ok := values[f.ID]; ok {
			vf.Value = v
			vf.HasValue = true
		}
		out = append(out, vf)
	}

	return out
}
