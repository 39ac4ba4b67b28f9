package chart

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"io"
	"math"

	gochart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"

	"welldash/internal/well"
)

var ErrTooFewPoints = errors.New("chart: fewer than two plottable points")

const (
	pngDotWidth = 4
	pngDotAlpha = 178 // MarkerOpacity * 255
)

// RenderCrossPlotPNG draws the cross-plot with go-chart. Rows with a missing
// Vp or Vs are skipped.
func RenderCrossPlotPNG(w io.Writer, t *well.Table) error {
	vp, err := t.Column(well.ColVp)
	if err != nil {
		return err
	}
	vs, err := t.Column(well.ColVs)
	if err != nil {
		return err
	}
	nphi, err := t.Column(well.ColNPHI)
	if err != nil {
		return err
	}

	var xs, ys, cs []float64
	for i := range vp {
		if !finite(vp[i]) || !finite(vs[i]) {
			continue
		}
		xs = append(xs, vp[i])
		ys = append(ys, vs[i])
		cs = append(cs, nphi[i])
	}
	if len(xs) < 2 {
		return fmt.Errorf("cross-plot: %w", ErrTooFewPoints)
	}
	lo, hi := bounds(cs)
	colors := scales[ColorScaleName]

	ch := gochart.Chart{
		Title:  CrossPlotTitle,
		Width:  CrossPlotWidth,
		Height: CrossPlotHeight,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 16, Right: 16, Bottom: 16},
		},
		XAxis: gochart.XAxis{Name: well.ColVp},
		YAxis: gochart.YAxis{Name: well.ColVs},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    "Vp/Vs",
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeWidth: gochart.Disabled,
					DotWidth:    pngDotWidth,
					DotColorProvider: func(_, _ gochart.Range, index int, _, _ float64) drawing.Color {
						return interpolate(colors, cs[index], lo, hi).WithAlpha(pngDotAlpha)
					},
				},
			},
		},
	}
	return ch.Render(gochart.PNG, w)
}

// RenderLogTracksPNG draws the three log tracks side by side, each with the
// fixed inverted depth window. Samples outside the window are dropped.
func RenderLogTracksPNG(w io.Writer, t *well.Table) error {
	panelWidth := LogTracksWidth / len(logPanels)
	out := image.NewRGBA(image.Rect(0, 0, panelWidth*len(logPanels), LogTracksHeight))
	draw.Draw(out, out.Bounds(), image.White, image.Point{}, draw.Src)

	for i, p := range logPanels {
		img, err := renderTrack(t, p, panelWidth)
		if err != nil {
			return err
		}
		r := image.Rect(i*panelWidth, 0, (i+1)*panelWidth, LogTracksHeight)
		draw.Draw(out, r, img, img.Bounds().Min, draw.Over)
	}
	return png.Encode(w, out)
}

func renderTrack(t *well.Table, p panel, width int) (image.Image, error) {
	x, err := t.Column(p.column)
	if err != nil {
		return nil, fmt.Errorf("log tracks: %w", err)
	}
	var xs, ys []float64
	for i, depth := range t.Index {
		if !finite(x[i]) || depth < DepthBottom || depth > DepthTop {
			continue
		}
		xs = append(xs, x[i])
		ys = append(ys, depth)
	}
	if len(xs) < 2 {
		return nil, fmt.Errorf("log tracks %s: %w", p.column, ErrTooFewPoints)
	}

	ch := gochart.Chart{
		Title:  p.title,
		Width:  width,
		Height: LogTracksHeight,
		Background: gochart.Style{
			Padding: gochart.Box{Top: 40, Left: 8, Right: 8, Bottom: 16},
		},
		XAxis: gochart.XAxis{Name: p.column},
		YAxis: gochart.YAxis{
			Range: &gochart.ContinuousRange{Min: DepthBottom, Max: DepthTop, Descending: true},
		},
		Series: []gochart.Series{
			gochart.ContinuousSeries{
				Name:    p.column,
				XValues: xs,
				YValues: ys,
				Style: gochart.Style{
					StrokeWidth: 1.5,
					StrokeColor: gochart.ColorBlue,
				},
			},
		},
	}
	var buf bytes.Buffer
	if err := ch.Render(gochart.PNG, &buf); err != nil {
		return nil, fmt.Errorf("render %s: %w", p.column, err)
	}
	return png.Decode(&buf)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func bounds(vals []float64) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range vals {
		if !finite(v) {
			continue
		}
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}
	return lo, hi
}
