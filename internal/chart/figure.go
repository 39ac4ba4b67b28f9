// Package chart builds the dashboard's figures. Figures are plain structs
// that encode to plotly.js JSON; the same charts can also be rendered to PNG.
package chart

import (
	"encoding/json"

	"welldash/internal/well"
)

// Figure is a plotly.js figure: traces plus layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

type Trace struct {
	Type    string       `json:"type"`
	Mode    string       `json:"mode,omitempty"`
	Name    string       `json:"name,omitempty"`
	X       well.Samples `json:"x"`
	Y       well.Samples `json:"y"`
	XAxis   string       `json:"xaxis,omitempty"`
	YAxis   string       `json:"yaxis,omitempty"`
	Opacity float64      `json:"opacity,omitempty"`
	Marker  *Marker      `json:"marker,omitempty"`
}

type Marker struct {
	Size       int          `json:"size"`
	Color      well.Samples `json:"color"`
	ColorScale ColorScale   `json:"colorscale"`
	Line       *Line        `json:"line,omitempty"`
	ShowScale  bool         `json:"showscale"`
}

type Line struct {
	Color string  `json:"color"`
	Width float64 `json:"width"`
}

type Text struct {
	Text string `json:"text"`
}

type Axis struct {
	Title     *Text     `json:"title,omitempty"`
	Range     []float64 `json:"range,omitempty"`
	Domain    []float64 `json:"domain,omitempty"`
	Anchor    string    `json:"anchor,omitempty"`
	GridColor string    `json:"gridcolor,omitempty"`
	ZeroLine  *bool     `json:"zeroline,omitempty"`
}

// Annotation positions subplot titles in paper coordinates.
type Annotation struct {
	Text      string  `json:"text"`
	X         float64 `json:"x"`
	Y         float64 `json:"y"`
	XRef      string  `json:"xref"`
	YRef      string  `json:"yref"`
	XAnchor   string  `json:"xanchor"`
	YAnchor   string  `json:"yanchor"`
	ShowArrow bool    `json:"showarrow"`
}

type Layout struct {
	Title        Text         `json:"title"`
	Width        int          `json:"width"`
	Height       int          `json:"height"`
	PaperBGColor string       `json:"paper_bgcolor"`
	PlotBGColor  string       `json:"plot_bgcolor"`
	ShowLegend   bool         `json:"showlegend"`
	XAxis        *Axis        `json:"xaxis,omitempty"`
	XAxis2       *Axis        `json:"xaxis2,omitempty"`
	XAxis3       *Axis        `json:"xaxis3,omitempty"`
	YAxis        *Axis        `json:"yaxis,omitempty"`
	Annotations  []Annotation `json:"annotations,omitempty"`
}

// ColorStop is one [offset, colour] pair of a continuous colour scale.
type ColorStop struct {
	Offset float64
	Color  string
}

func (c ColorStop) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]interface{}{c.Offset, c.Color})
}

func (c *ColorStop) UnmarshalJSON(data []byte) error {
	var raw [2]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	if err := json.Unmarshal(raw[0], &c.Offset); err != nil {
		return err
	}
	return json.Unmarshal(raw[1], &c.Color)
}

type ColorScale []ColorStop
