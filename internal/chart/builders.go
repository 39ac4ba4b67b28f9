package chart

import (
	"fmt"

	"welldash/internal/well"
)

// Fixed styling. The depth window is a literal and is not derived from the
// data; wells logged outside 4400-5000 show empty tracks.
const (
	ColorScaleName  = "turbid"
	MarkerSize      = 8
	MarkerOpacity   = 0.7
	MarkerLineColor = "black"
	MarkerLineWidth = 1

	CrossPlotWidth  = 800
	CrossPlotHeight = 800
	CrossPlotTitle  = "Vp Vs Xplot - coloured by GR"

	LogTracksWidth  = 600
	LogTracksHeight = 1000
	LogTracksTitle  = "Vp Vs Rho Subplots"

	DepthTop    = 5000
	DepthBottom = 4400

	background = "white"
	gridColor  = "#EBF0F8"
)

// DepthRange is the shared log-track y axis range, top first so depth
// increases downwards.
func DepthRange() []float64 { return []float64{DepthTop, DepthBottom} }

type panel struct {
	column string
	title  string
	domain []float64
	titleX float64
}

// logPanels are the three tracks, left to right.
var logPanels = []panel{
	{column: well.ColVp, title: "Vp", domain: []float64{0, 0.28}, titleX: 0.14},
	{column: well.ColVs, title: "Vs", domain: []float64{0.36, 0.64}, titleX: 0.5},
	{column: well.ColHROM, title: "Rho", domain: []float64{0.72, 1}, titleX: 0.86},
}

// CrossPlot builds the Vp/Vs scatter coloured by neutron porosity.
func CrossPlot(t *well.Table) (*Figure, error) {
	vp, err := t.Column(well.ColVp)
	if err != nil {
		return nil, fmt.Errorf("cross-plot: %w", err)
	}
	vs, err := t.Column(well.ColVs)
	if err != nil {
		return nil, fmt.Errorf("cross-plot: %w", err)
	}
	nphi, err := t.Column(well.ColNPHI)
	if err != nil {
		return nil, fmt.Errorf("cross-plot: %w", err)
	}
	scale, err := NamedScale(ColorScaleName)
	if err != nil {
		return nil, err
	}

	fig := EmptyCrossPlot()
	fig.Data = []Trace{{
		Type:    "scatter",
		Mode:    "markers",
		X:       vp,
		Y:       vs,
		Opacity: MarkerOpacity,
		Marker: &Marker{
			Size:       MarkerSize,
			Color:      nphi,
			ColorScale: scale,
			Line:       &Line{Color: MarkerLineColor, Width: MarkerLineWidth},
			ShowScale:  true,
		},
	}}
	return fig, nil
}

// EmptyCrossPlot is the cross-plot layout without data.
func EmptyCrossPlot() *Figure {
	return &Figure{
		Data: []Trace{},
		Layout: Layout{
			Title:        Text{Text: CrossPlotTitle},
			Width:        CrossPlotWidth,
			Height:       CrossPlotHeight,
			PaperBGColor: background,
			PlotBGColor:  background,
			XAxis:        &Axis{Title: &Text{Text: well.ColVp}, GridColor: gridColor},
			YAxis:        &Axis{Title: &Text{Text: well.ColVs}, GridColor: gridColor},
		},
	}
}

// LogTracks builds three side-by-side tracks (Vp, Vs, HROM) against depth,
// sharing one y axis clipped to DepthRange.
func LogTracks(t *well.Table) (*Figure, error) {
	fig := EmptyLogTracks()
	for i, p := range logPanels {
		x, err := t.Column(p.column)
		if err != nil {
			return nil, fmt.Errorf("log tracks: %w", err)
		}
		fig.Data = append(fig.Data, Trace{
			Type:  "scatter",
			Name:  p.column,
			X:     x,
			Y:     t.Index,
			XAxis: axisRef("x", i),
			YAxis: "y",
		})
	}
	return fig, nil
}

// EmptyLogTracks is the log-track layout without data.
func EmptyLogTracks() *Figure {
	l := Layout{
		Title:        Text{Text: LogTracksTitle},
		Width:        LogTracksWidth,
		Height:       LogTracksHeight,
		PaperBGColor: background,
		PlotBGColor:  background,
		YAxis:        &Axis{Range: DepthRange(), Anchor: "x", GridColor: gridColor},
	}
	axes := []**Axis{&l.XAxis, &l.XAxis2, &l.XAxis3}
	for i, p := range logPanels {
		*axes[i] = &Axis{Domain: p.domain, Anchor: "y", GridColor: gridColor}
		l.Annotations = append(l.Annotations, Annotation{
			Text:    p.title,
			X:       p.titleX,
			Y:       1,
			XRef:    "paper",
			YRef:    "paper",
			XAnchor: "center",
			YAnchor: "bottom",
		})
	}
	return &Figure{Data: []Trace{}, Layout: l}
}

// axisRef returns plotly's axis id for the i-th panel: "x", "x2", "x3".
func axisRef(prefix string, i int) string {
	if i == 0 {
		return prefix
	}
	return fmt.Sprintf("%s%d", prefix, i+1)
}
