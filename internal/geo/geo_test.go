package geo

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/elecatlas/elecatlas/internal/dataset"
	"github.com/elecatlas/elecatlas/internal/source"
)

const worldGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "id": "USA",
      "properties": {"name": "United States of America"},
      "geometry": {
        "type": "MultiPolygon",
        "coordinates": [
          [[[-100, 30], [-90, 30], [-90, 40], [-100, 40], [-100, 30]]],
          [[[-160, 55], [-150, 55], [-150, 65], [-160, 65], [-160, 55]]]
        ]
      }
    },
    {
      "type": "Feature",
      "id": "FRA",
      "properties": {"name": "France"},
      "geometry": {
        "type": "Polygon",
        "coordinates": [[[0, 43], [6, 43], [6, 49], [0, 49], [0, 43]]]
      }
    }
  ]
}`

func writeWorld(t *testing.T) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "world_countries.geojson")
	require.NoError(t, os.WriteFile(path, []byte(worldGeoJSON), 0644))

	return path
}

func TestLoadWorld(t *testing.T) {
	world, err := LoadWorld(writeWorld(t))
	require.NoError(t, err)

	require.Len(t, world.Features, 2)

	usa := world.Features[0]
	assert.Equal(t, "USA", usa.ID)
	assert.Equal(t, "United States of America", usa.Name)
	assert.Len(t, usa.Geometry.Rings, 2, "multipolygon keeps one outer ring per polygon")

	fra := world.Features[1]
	assert.Equal(t, "FRA", fra.ID)
	require.Len(t, fra.Geometry.Rings, 1)
	assert.Equal(t, [2]float64{0, 43}, fra.Geometry.Rings[0][0])
}

func TestLoadWorldMissingFile(t *testing.T) {
	_, err := LoadWorld(filepath.Join(t.TempDir(), "nope.geojson"))
	require.Error(t, err)
}

func TestLoadWorldBadGeometry(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.geojson")
	bad := `{"type": "FeatureCollection", "features": [
		{"id": "USA", "properties": {"name": "x"}, "geometry": {"type": "Point", "coordinates": [0, 0]}}
	]}`
	require.NoError(t, os.WriteFile(path, []byte(bad), 0644))

	_, err := LoadWorld(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported geometry type")
}

func TestJoinYear(t *testing.T) {
	world, err := LoadWorld(writeWorld(t))
	require.NoError(t, err)

	tbl := dataset.FromFrame(dataframe.New(
		series.New([]string{"USA", "USA"}, series.String, source.ColCountryCode),
		series.New([]string{"United States", "United States"}, series.String, source.ColCountryName),
		series.New([]int{2010, 2011}, series.Int, source.ColYear),
		series.New([]float64{13394, 13246}, series.Float, source.ColUseKWh),
		series.New([]float64{10.1, 12.3}, series.Float, source.ColRenewable),
		series.New([]float64{6.2, 6.4}, series.Float, source.ColLosses),
	))

	features := world.JoinYear(tbl, 2010)
	require.Len(t, features, 2)

	assert.True(t, features[0].HasValue)
	assert.InDelta(t, 13394, features[0].Value, 1e-9)

	assert.False(t, features[1].HasValue, "FRA has no 2010 row")
}
