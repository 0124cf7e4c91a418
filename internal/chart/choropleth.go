package chart

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"

	"github.com/elecatlas/elecatlas/internal/geo"
)

// Choropleth renders world boundaries filled by consumption value on
// an equirectangular projection. Countries without a value for the
// selected year are grey.
func Choropleth(title string, features []geo.ValueFeature) ([]byte, error) {
	p := plot.New()
	p.Title.Text = title
	p.HideAxes()
	p.X.Min, p.X.Max = -180, 180
	p.Y.Min, p.Y.Max = -90, 90

	min, max := valueBounds(features)

	missing := color.RGBA{R: 211, G: 211, B: 211, A: 255}
	border := color.RGBA{R: 120, G: 120, B: 120, A: 255}

	for _, f := range features {
		fill := missing
		if f.HasValue {
			fill = heatShade(f.Value, min, max)
		}

		for _, ring := range f.Geometry.Rings {
			if len(ring) < 3 {
				continue
			}

			xys := make(plotter.XYs, len(ring))
			for i, pt := range ring {
				xys[i] = plotter.XY{X: pt[0], Y: pt[1]}
			}

			poly, err := plotter.NewPolygon(xys)
			if err != nil {
				return nil, fmt.Errorf("building boundary polygon %q: %w", f.ID, err)
			}

			poly.Color = fill
			poly.LineStyle.Color = border
			poly.LineStyle.Width = vg.Points(0.3)
			p.Add(poly)
		}
	}

	return render(p, 12*vg.Inch, 6*vg.Inch)
}

// heatShade maps a value onto a light-yellow to dark-red ramp
func heatShade(v, min, max float64) color.RGBA {
	frac := 0.5
	if max > min {
		frac = (v - min) / (max - min)
	}

	light := color.RGBA{R: 255, G: 237, B: 160, A: 255}
	dark := color.RGBA{R: 189, G: 0, B: 38, A: 255}

	return lerpColor(light, dark, frac)
}

func valueBounds(features []geo.ValueFeature) (min, max float64) {
	first := true

	for _, f := range features {
		if !f.HasValue {
			continue
		}

		if first {
			min, max = f.Value, f.Value
			first = false
			continue
		}

		if f.Value < min {
			min = f.Value
		}
		if f.Value > max {
			max = f.Value
		}
	}

	return min, max
}
