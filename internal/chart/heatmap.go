package chart

import (
	"math"
	"sort"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/elecatlas/elecatlas/pkg/models"
)

// heatGrid adapts a country × year value matrix to plotter.GridXYZ.
// Missing combinations are NaN and left unpainted.
type heatGrid struct {
	years     []int
	countries []string
	values    map[string]map[int]float64
}

func (g heatGrid) Dims() (c, r int) { return len(g.years), len(g.countries) }

func (g heatGrid) X(c int) float64 { return float64(g.years[c]) }

func (g heatGrid) Y(r int) float64 { return float64(r) }

func (g heatGrid) Z(c, r int) float64 {
	if v, ok := g.values[g.countries[r]][g.years[c]]; ok {
		return v
	}

	return math.NaN()
}

// countryTicks labels heatmap rows with country identifiers
type countryTicks struct {
	countries []string
}

func (t countryTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick

	for i, name := range t.countries {
		v := float64(i)
		if v < min || v > max {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: v, Label: name})
	}

	return ticks
}

// Heatmap renders consumption intensity per country and year. The
// label argument selects country_code or country_name keys from the
// records.
func Heatmap(title string, records []models.Record, label func(models.Record) string) ([]byte, error) {
	grid := heatGrid{values: make(map[string]map[int]float64)}

	seenYear := make(map[int]struct{})
	seenCountry := make(map[string]struct{})

	for _, rec := range records {
		key := label(rec)

		if _, ok := seenCountry[key]; !ok {
			seenCountry[key] = struct{}{}
			grid.countries = append(grid.countries, key)
			grid.values[key] = make(map[int]float64)
		}

		if _, ok := seenYear[rec.Year]; !ok {
			seenYear[rec.Year] = struct{}{}
			grid.years = append(grid.years, rec.Year)
		}

		// First match wins under duplicate keys
		if _, ok := grid.values[key][rec.Year]; !ok {
			grid.values[key][rec.Year] = rec.UseKWh
		}
	}

	sort.Ints(grid.years)

	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Year"
	p.Y.Tick.Marker = countryTicks{countries: grid.countries}

	h := plotter.NewHeatMap(grid, palette.Heat(12, 1))
	p.Add(h)

	return render(p, 10*vg.Inch, 4*vg.Inch)
}
