package chart

import (
	"fmt"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/elecatlas/elecatlas/pkg/models"
)

// TopBar renders a ranking as horizontal bars, best rank on top
func TopBar(title string, entries []models.RankEntry, label func(models.RankEntry) string) ([]byte, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Electricity Use (kWh per capita)"

	// Reverse so rank 1 renders as the topmost bar
	values := make(plotter.Values, len(entries))
	labels := make([]string, len(entries))

	for i, e := range entries {
		j := len(entries) - 1 - i
		values[j] = e.UseKWh
		labels[j] = label(e)
	}

	bars, err := plotter.NewBarChart(values, vg.Points(18))
	if err != nil {
		return nil, fmt.Errorf("building bar chart: %w", err)
	}

	bars.Horizontal = true
	bars.Color = seriesColor(0)
	bars.LineStyle.Width = vg.Length(0)

	p.Add(bars)
	p.NominalY(labels...)

	return render(p, 8*vg.Inch, 4*vg.Inch)
}

// Bump renders rank positions over time, one line per country, with
// rank 1 at the top
func Bump(title string, entries []models.RankEntry, label func(models.RankEntry) string) ([]byte, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Year"
	p.Y.Label.Text = "Rank"
	p.Y.Scale = plot.InvertedScale{Normalizer: plot.LinearScale{}}
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	byCountry := make(map[string]plotter.XYs)

	var order []string

	for _, e := range entries {
		key := label(e)
		if _, ok := byCountry[key]; !ok {
			order = append(order, key)
		}
		byCountry[key] = append(byCountry[key], plotter.XY{X: float64(e.Year), Y: float64(e.Rank)})
	}

	for i, key := range order {
		line, pts, err := plotter.NewLinePoints(byCountry[key])
		if err != nil {
			return nil, fmt.Errorf("building bump line %q: %w", key, err)
		}

		line.Color = seriesColor(i)
		line.Width = vg.Points(2)
		pts.Color = seriesColor(i)
		pts.Radius = vg.Points(3)

		p.Add(line, pts)
		p.Legend.Add(key, line)
	}

	return render(p, 8*vg.Inch, 5*vg.Inch)
}

// Box renders the distribution of each indicator as a box plot
func Box(title string, stats []models.BoxStats, samples map[string][]float64) ([]byte, error) {
	p := plot.New()
	p.Title.Text = title
	p.Y.Label.Text = "Value"

	labels := make([]string, len(stats))

	for i, s := range stats {
		labels[i] = s.Indicator

		box, err := plotter.NewBoxPlot(vg.Points(40), float64(i), plotter.Values(samples[s.Indicator]))
		if err != nil {
			return nil, fmt.Errorf("building box plot %q: %w", s.Indicator, err)
		}

		p.Add(box)
	}

	p.NominalX(labels...)

	return render(p, 8*vg.Inch, 5*vg.Inch)
}
