// Package chart builds Plotly figures for the briefing dashboard.
//
// Figures are plain data: the page serializes them to JSON and plotly.js draws
// them in the browser. Nothing in this package knows about HTML or layout.
package chart

import "encoding/json"

// Brand colours shared by every figure.
const (
	AccentColor     = "#0078D4"
	NegativeColor   = "#D6324A"
	NeutralColor    = "#DFDFDF"
	PlotBackground  = "white"
	FontFamily      = "Source Sans Pro"
	ContinuousScale = "Blues"
)

// boldPalette is Plotly's qualitative "Bold" sequence.
var boldPalette = []string{
	"rgb(127, 60, 141)", "rgb(17, 165, 121)", "rgb(57, 105, 172)", "rgb(242, 183, 1)",
	"rgb(231, 63, 116)", "rgb(128, 186, 90)", "rgb(230, 131, 16)", "rgb(0, 134, 149)",
	"rgb(207, 28, 144)", "rgb(249, 123, 114)", "rgb(165, 170, 153)",
}

// Figure is a Plotly figure: traces plus layout.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout Layout  `json:"layout"`
}

// JSON encodes the figure for plotly.js.
func (f Figure) JSON() ([]byte, error) {
	return json.Marshal(f)
}

type Trace struct {
	Type         string    `json:"type"`
	Name         string    `json:"name,omitempty"`
	X            []string  `json:"x,omitempty"`
	Y            []float64 `json:"y,omitempty"`
	R            []float64 `json:"r,omitempty"`
	Theta        []string  `json:"theta,omitempty"`
	Locations    []string  `json:"locations,omitempty"`
	LocationMode string    `json:"locationmode,omitempty"`
	Z            []float64 `json:"z,omitempty"`
	Text         []string  `json:"text,omitempty"`
	TextTemplate string    `json:"texttemplate,omitempty"`
	TextPosition string    `json:"textposition,omitempty"`
	HoverText    []string  `json:"hovertext,omitempty"`
	Mode         string    `json:"mode,omitempty"`
	Fill         string    `json:"fill,omitempty"`
	Marker       *Marker   `json:"marker,omitempty"`
	Line         *Line     `json:"line,omitempty"`
	ColorScale   any       `json:"colorscale,omitempty"`
	ColorBar     *ColorBar `json:"colorbar,omitempty"`
	ShowScale    *bool     `json:"showscale,omitempty"`
	LegendGroup  string    `json:"legendgroup,omitempty"`
	CliponAxis   *bool     `json:"cliponaxis,omitempty"`
}

type Marker struct {
	Color      any       `json:"color,omitempty"`
	ColorScale any       `json:"colorscale,omitempty"`
	ShowScale  *bool     `json:"showscale,omitempty"`
	ColorBar   *ColorBar `json:"colorbar,omitempty"`
	Size       []float64 `json:"size,omitempty"`
	SizeMode   string    `json:"sizemode,omitempty"`
	SizeRef    float64   `json:"sizeref,omitempty"`
}

type Line struct {
	Color string `json:"color,omitempty"`
}

type ColorBar struct {
	Title Title `json:"title"`
}

type Title struct {
	Text string `json:"text"`
}

type Layout struct {
	Title       Title  `json:"title"`
	Height      int    `json:"height,omitempty"`
	PlotBGColor string `json:"plot_bgcolor,omitempty"`
	Font        *Font  `json:"font,omitempty"`
	Margin      Margin `json:"margin"`
	XAxis       *Axis  `json:"xaxis,omitempty"`
	YAxis       *Axis  `json:"yaxis,omitempty"`
	Polar       *Polar `json:"polar,omitempty"`
	Geo         *Geo   `json:"geo,omitempty"`
	ShowLegend  *bool  `json:"showlegend,omitempty"`
}

type Font struct {
	Family string `json:"family"`
}

type Margin struct {
	T int `json:"t"`
	B int `json:"b"`
	L int `json:"l"`
	R int `json:"r"`
}

type Axis struct {
	Title   Title     `json:"title"`
	Visible *bool     `json:"visible,omitempty"`
	Range   []float64 `json:"range,omitempty"`
}

type Polar struct {
	RadialAxis Axis `json:"radialaxis"`
}

type Geo struct {
	Scope   string  `json:"scope,omitempty"`
	LatAxis GeoAxis `json:"lataxis"`
	LonAxis GeoAxis `json:"lonaxis"`
}

type GeoAxis struct {
	Range []float64 `json:"range"`
}

// defaultMargin leaves room for the title only.
var defaultMargin = Margin{T: 50}

func ptr[T any](v T) *T { return &v }

// sizeRef scales bubble areas so the largest marker is sizeMax pixels across.
func sizeRef(sizes []float64, sizeMax float64) float64 {
	largest := 0.0
	for _, s := range sizes {
		largest = max(largest, s)
	}
	if largest == 0 {
		return 1
	}
	return 2 * largest / (sizeMax * sizeMax)
}
