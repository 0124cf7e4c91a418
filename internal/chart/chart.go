// Package chart renders the dashboard visualisations to PNG using
// gonum/plot.
package chart

import (
	"bytes"
	"fmt"
	"image/color"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// Series is one named line of a multi-series chart
type Series struct {
	Name   string
	Years  []int
	Values []float64
}

var seriesColors = []color.RGBA{
	{R: 31, G: 119, B: 180, A: 255},
	{R: 44, G: 160, B: 44, A: 255},
	{R: 214, G: 39, B: 40, A: 255},
	{R: 255, G: 127, B: 14, A: 255},
	{R: 148, G: 103, B: 189, A: 255},
}

func seriesColor(i int) color.RGBA {
	return seriesColors[i%len(seriesColors)]
}

// yearPoints pairs years with values, skipping non-finite entries
// (a zero base year makes indexed values infinite)
func yearPoints(years []int, values []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, len(values))

	for i, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(years[i]), Y: v})
	}

	return pts
}

func render(p *plot.Plot, width, height vg.Length) ([]byte, error) {
	w, err := p.WriterTo(width, height, "png")
	if err != nil {
		return nil, fmt.Errorf("rendering chart: %w", err)
	}

	var buf bytes.Buffer
	if _, err := w.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("encoding chart: %w", err)
	}

	return buf.Bytes(), nil
}

// Line renders a single indicator over time
func Line(title, yLabel string, years []int, values []float64) ([]byte, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Year"
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	line, err := plotter.NewLine(yearPoints(years, values))
	if err != nil {
		return nil, fmt.Errorf("building line: %w", err)
	}

	line.Color = seriesColor(0)
	line.Width = vg.Points(2)
	p.Add(line)

	return render(p, 8*vg.Inch, 4*vg.Inch)
}

// MultiLine renders several series on a shared year axis
func MultiLine(title, yLabel string, series []Series) ([]byte, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Year"
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())
	p.Legend.Top = true

	for i, s := range series {
		line, err := plotter.NewLine(yearPoints(s.Years, s.Values))
		if err != nil {
			return nil, fmt.Errorf("building line %q: %w", s.Name, err)
		}

		line.Color = seriesColor(i)
		line.Width = vg.Points(2)
		p.Add(line)
		p.Legend.Add(s.Name, line)
	}

	return render(p, 8*vg.Inch, 4*vg.Inch)
}

// Area renders a single series as a filled area over time
func Area(title, yLabel string, years []int, values []float64) ([]byte, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Year"
	p.Y.Label.Text = yLabel
	p.Add(plotter.NewGrid())

	pts := yearPoints(years, values)
	if len(pts) > 0 {
		ring := make(plotter.XYs, 0, len(pts)+2)
		ring = append(ring, plotter.XY{X: pts[0].X, Y: 0})
		ring = append(ring, pts...)
		ring = append(ring, plotter.XY{X: pts[len(pts)-1].X, Y: 0})

		poly, err := plotter.NewPolygon(ring)
		if err != nil {
			return nil, fmt.Errorf("building area: %w", err)
		}

		fill := seriesColor(1)
		fill.A = 150
		poly.Color = fill
		poly.LineStyle.Color = seriesColor(1)
		p.Add(poly)
	}

	return render(p, 8*vg.Inch, 4*vg.Inch)
}
