package chart

import (
	"fmt"
	"math"

	"github.com/wcharczuk/go-chart/v2/drawing"
)

// turbid is the cmocean "turbid" sequential scale as published by plotly.
// plotly.js only knows a few scales by name, so figures carry the stops.
var turbid = []drawing.Color{
	{R: 232, G: 245, B: 171, A: 255},
	{R: 220, G: 219, B: 137, A: 255},
	{R: 209, G: 193, B: 107, A: 255},
	{R: 199, G: 168, B: 83, A: 255},
	{R: 186, G: 143, B: 66, A: 255},
	{R: 170, G: 121, B: 60, A: 255},
	{R: 149, G: 103, B: 58, A: 255},
	{R: 128, G: 87, B: 55, A: 255},
	{R: 106, G: 73, B: 51, A: 255},
	{R: 84, G: 60, B: 45, A: 255},
	{R: 62, G: 47, B: 36, A: 255},
	{R: 40, G: 34, B: 27, A: 255},
}

var scales = map[string][]drawing.Color{
	"turbid": turbid,
}

// NamedScale returns the plotly colour scale for name with evenly spaced stops.
func NamedScale(name string) (ColorScale, error) {
	colors, ok := scales[name]
	if !ok {
		return nil, fmt.Errorf("unknown colour scale %q", name)
	}
	out := make(ColorScale, len(colors))
	last := len(colors) - 1
	for i, c := range colors {
		out[i] = ColorStop{
			Offset: float64(i) / float64(last),
			Color:  fmt.Sprintf("rgb(%d, %d, %d)", c.R, c.G, c.B),
		}
	}
	return out, nil
}

// interpolate maps v in [lo, hi] onto colors. NaN and empty ranges map to
// the first colour.
func interpolate(colors []drawing.Color, v, lo, hi float64) drawing.Color {
	if math.IsNaN(v) || !(hi > lo) {
		return colors[0]
	}
	pos := (v - lo) / (hi - lo) * float64(len(colors)-1)
	if pos <= 0 {
		return colors[0]
	}
	if pos >= float64(len(colors)-1) {
		return colors[len(colors)-1]
	}
	i := int(pos)
	frac := pos - float64(i)
	a, b := colors[i], colors[i+1]
	mix := func(x, y uint8) uint8 {
		return uint8(math.Round(float64(x) + (float64(y)-float64(x))*frac))
	}
	return drawing.Color{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: 255}
}
