package chart

import (
	"fmt"
	"image/color"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Scatter plots losses against consumption, shading points by year
func Scatter(title string, xs, ys []float64, years []int) ([]byte, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Electricity Use (kWh per capita)"
	p.Y.Label.Text = "Losses (%)"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i] = plotter.XY{X: xs[i], Y: ys[i]}
	}

	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, fmt.Errorf("building scatter: %w", err)
	}

	minYear, maxYear := intBounds(years)
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		return draw.GlyphStyle{
			Color:  yearShade(years[i], minYear, maxYear),
			Radius: vg.Points(4),
			Shape:  draw.CircleGlyph{},
		}
	}

	p.Add(sc)

	return render(p, 8*vg.Inch, 5*vg.Inch)
}

// Bubble plots losses against consumption with bubble size
// proportional to renewable share
func Bubble(title string, xs, ys, sizes []float64, years []int) ([]byte, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Electricity Use (kWh per capita)"
	p.Y.Label.Text = "Losses (%)"
	p.Add(plotter.NewGrid())

	pts := make(plotter.XYs, len(xs))
	for i := range xs {
		pts[i] = plotter.XY{X: xs[i], Y: ys[i]}
	}

	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return nil, fmt.Errorf("building bubble chart: %w", err)
	}

	minSize, maxSize := floatBounds(sizes)
	minYear, maxYear := intBounds(years)

	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		c := yearShade(years[i], minYear, maxYear)
		c.A = 180

		return draw.GlyphStyle{
			Color:  c,
			Radius: bubbleRadius(sizes[i], minSize, maxSize),
			Shape:  draw.CircleGlyph{},
		}
	}

	p.Add(sc)

	return render(p, 8*vg.Inch, 5*vg.Inch)
}

// bubbleRadius maps a value to a glyph radius between 3 and 14 points
func bubbleRadius(v, min, max float64) vg.Length {
	if max <= min {
		return vg.Points(6)
	}

	frac := (v - min) / (max - min)

	return vg.Points(3 + frac*11)
}

// yearShade maps a year to a blue ramp, later years darker
func yearShade(year, min, max int) color.RGBA {
	frac := 0.5
	if max > min {
		frac = float64(year-min) / float64(max-min)
	}

	light := color.RGBA{R: 158, G: 202, B: 225, A: 255}
	dark := color.RGBA{R: 8, G: 48, B: 107, A: 255}

	return lerpColor(light, dark, frac)
}

func lerpColor(a, b color.RGBA, frac float64) color.RGBA {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}

	return color.RGBA{
		R: uint8(float64(a.R) + frac*(float64(b.R)-float64(a.R))),
		G: uint8(float64(a.G) + frac*(float64(b.G)-float64(a.G))),
		B: uint8(float64(a.B) + frac*(float64(b.B)-float64(a.B))),
		A: 255,
	}
}

func intBounds(vals []int) (min, max int) {
	if len(vals) == 0 {
		return 0, 0
	}

	min, max = vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	return min, max
}

func floatBounds(vals []float64) (min, max float64) {
	if len(vals) == 0 {
		return 0, 0
	}

	min, max = vals[0], vals[0]
	for _, v := range vals[1:] {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	return min, max
}
