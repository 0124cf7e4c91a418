package dashboard

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() {
	gin.SetMode(gin.TestMode)
}

const testDatasetCSV = `country_code,country_name,year,electricity_use_kwh_per_capita,renewable_electricity_percent,electricity_losses_pct
USA,United States,2000,13000,8,6
USA,United States,2001,13100,9,6.1
USA,United States,2002,13200,10,6.2
FRA,France,2000,7500,12,7
FRA,France,2001,7600,13,7.1
FRA,France,2002,7700,14,7.2
`

const testGeoJSON = `{
  "type": "FeatureCollection",
  "features": [
    {
      "type": "Feature",
      "id": "USA",
      "properties": {"name": "United States of America"},
      "geometry": {"type": "Polygon", "coordinates": [[[-100, 30], [-90, 30], [-90, 40], [-100, 40], [-100, 30]]]}
    },
    {
      "type": "Feature",
      "id": "FRA",
      "properties": {"name": "France"},
      "geometry": {"type": "Polygon", "coordinates": [[[0, 43], [6, 43], [6, 49], [0, 49], [0, 43]]]}
    }
  ]
}`

func newTestServer(t *testing.T, profileName string) *Server {
	t.Helper()

	dir := t.TempDir()

	datasetPath := filepath.Join(dir, "integrated_electricity_dataset.csv")
	require.NoError(t, os.WriteFile(datasetPath, []byte(testDatasetCSV), 0644))

	geoPath := filepath.Join(dir, "world_countries.geojson")
	require.NoError(t, os.WriteFile(geoPath, []byte(testGeoJSON), 0644))

	profile, err := Lookup(profileName)
	require.NoError(t, err)

	return New(datasetPath, geoPath, profile)
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)

	return w
}

func decodeJSON(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))

	return body
}

func TestMeta(t *testing.T) {
	w := get(t, newTestServer(t, "explorer"), "/api/meta")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeJSON(t, w)
	assert.Equal(t, "explorer", body["profile"])
	assert.Equal(t, []interface{}{"FRA", "USA"}, body["countries"])
	assert.Equal(t, float64(2000), body["min_year"])
	assert.Equal(t, float64(2002), body["max_year"])
}

func TestMetaByNameProfile(t *testing.T) {
	w := get(t, newTestServer(t, "report"), "/api/meta")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeJSON(t, w)
	assert.Equal(t, []interface{}{"France", "United States"}, body["countries"])
}

func TestKPIs(t *testing.T) {
	w := get(t, newTestServer(t, "explorer"), "/api/kpis?country=USA&from=2000&to=2002")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeJSON(t, w)
	require.Equal(t, false, body["empty"])

	kpis := body["kpis"].(map[string]interface{})
	assert.InDelta(t, 13100, kpis["mean_electricity_use_kwh_per_capita"], 1e-9)
	assert.InDelta(t, 9, kpis["mean_renewable_electricity_percent"], 1e-9)
}

func TestKPIsNoData(t *testing.T) {
	w := get(t, newTestServer(t, "explorer"), "/api/kpis?country=JPN")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeJSON(t, w)
	assert.Equal(t, true, body["empty"])
	assert.Equal(t, ErrNoData.Error(), body["message"])
}

func TestSeries(t *testing.T) {
	w := get(t, newTestServer(t, "explorer"), "/api/series?country=USA&from=2000&to=2001")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeJSON(t, w)
	require.Equal(t, false, body["empty"])
	assert.Equal(t, "USA", body["country"])

	years := body["years"].([]interface{})
	require.Len(t, years, 2)
	assert.Equal(t, float64(2000), years[0])

	uses := body["electricity_use_kwh_per_capita"].([]interface{})
	assert.InDelta(t, 13000, uses[0].(float64), 1e-9)
}

func TestSeriesNoData(t *testing.T) {
	w := get(t, newTestServer(t, "explorer"), "/api/series?country=JPN")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeJSON(t, w)
	assert.Equal(t, true, body["empty"])
}

func TestTop5(t *testing.T) {
	w := get(t, newTestServer(t, "explorer"), "/api/top5?year=2001")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeJSON(t, w)
	assert.Equal(t, float64(2001), body["year"])

	entries := body["entries"].([]interface{})
	require.Len(t, entries, 2)

	first := entries[0].(map[string]interface{})
	assert.Equal(t, "USA", first["country_code"])
	assert.Equal(t, float64(1), first["rank"])
}

func TestIndexedEndpoint(t *testing.T) {
	w := get(t, newTestServer(t, "explorer"), "/api/indexed?country=USA")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeJSON(t, w)
	require.Equal(t, false, body["empty"])

	idx := body["indexed"].(map[string]interface{})
	use := idx["use_index"].([]interface{})
	require.Len(t, use, 3)
	assert.InDelta(t, 100, use[0].(float64), 1e-9)
}

func TestChoroplethEndpoint(t *testing.T) {
	w := get(t, newTestServer(t, "explorer"), "/api/choropleth?year=2000")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeJSON(t, w)
	regions := body["regions"].([]interface{})
	require.Len(t, regions, 2)

	usa := regions[0].(map[string]interface{})
	assert.Equal(t, "USA", usa["id"])
	assert.Equal(t, true, usa["has_value"])
	assert.InDelta(t, 13000, usa["value"].(float64), 1e-9)
}

func TestRecordsSortedByYear(t *testing.T) {
	w := get(t, newTestServer(t, "explorer"), "/api/records?country=FRA")
	require.Equal(t, http.StatusOK, w.Code)

	body := decodeJSON(t, w)
	assert.Equal(t, "FRA", body["country"])

	records := body["records"].([]interface{})
	require.Len(t, records, 3)

	first := records[0].(map[string]interface{})
	assert.Equal(t, float64(2000), first["year"])
}

func TestChartEndpoint(t *testing.T) {
	w := get(t, newTestServer(t, "explorer"), "/charts/use_line.png?country=USA")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.Greater(t, w.Body.Len(), 0)
}

func TestChartEndpointNoData(t *testing.T) {
	w := get(t, newTestServer(t, "explorer"), "/charts/use_line.png?country=JPN")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestChartEndpointUnknownChart(t *testing.T) {
	w := get(t, newTestServer(t, "explorer"), "/charts/nope.png")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestIndexPage(t *testing.T) {
	w := get(t, newTestServer(t, "explorer"), "/")
	require.Equal(t, http.StatusOK, w.Code)

	html := w.Body.String()
	assert.Contains(t, html, "Global Electricity Analysis")
	assert.Contains(t, html, "Profile: explorer")
	// Default selection is the first country alphabetically.
	assert.Contains(t, html, `<option value="FRA" selected>`)
	assert.Contains(t, html, "/charts/choropleth.png")
}

func TestIndexPageNoData(t *testing.T) {
	w := get(t, newTestServer(t, "explorer"), "/?country=JPN")
	require.Equal(t, http.StatusOK, w.Code)

	html := w.Body.String()
	assert.Contains(t, html, "No data available for selected filters.")
	// Per-selection charts are skipped; the map still renders.
	assert.NotContains(t, html, "/charts/use_line.png")
	assert.Contains(t, html, "/charts/choropleth.png")
}

func TestRenderChart(t *testing.T) {
	srv := newTestServer(t, "ranking")

	png, err := srv.RenderChart(ChartBump, "France", 2000, 2002, 2002)
	require.NoError(t, err)
	assert.NotEmpty(t, png)

	_, err = srv.RenderChart(ChartUseLine, "Japan", 2000, 2002, 2002)
	assert.ErrorIs(t, err, ErrNoData)
}

func TestLookupUnknownProfile(t *testing.T) {
	w := Names()
	assert.Equal(t, []string{"deployed", "explorer", "ranking", "report"}, w)

	_, err := Lookup("nope")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown dashboard profile")
}
