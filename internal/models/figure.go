package models

import "encoding/json"

// Figure is a plotly figure document: a list of traces plus a layout.
// The browser hands it to Plotly.newPlot unchanged, so field names follow the
// plotly schema rather than Go conventions.
type Figure struct {
	Data   []Trace `json:"data"`
	Layout *Layout `json:"layout,omitempty"`
}

// Trace covers the subset of plotly trace attributes the dashboard uses.
// Y values are pointers so an undefined rate serializes as null (a gap in the
// chart), not as zero.
type Trace struct {
	Type          string          `json:"type,omitempty"`
	Mode          string          `json:"mode,omitempty"`
	Name          string          `json:"name,omitempty"`
	X             []any           `json:"x,omitempty"`
	Y             []*float64      `json:"y,omitempty"`
	Text          []string        `json:"text,omitempty"`
	YAxis         string          `json:"yaxis,omitempty"`
	Opacity       float64         `json:"opacity,omitempty"`
	Line          *Line           `json:"line,omitempty"`
	Marker        *Marker         `json:"marker,omitempty"`
	NBinsX        int             `json:"nbinsx,omitempty"`
	BoxPoints     string          `json:"boxpoints,omitempty"`
	HoverTemplate string          `json:"hovertemplate,omitempty"`
	CustomData    [][]any         `json:"customdata,omitempty"`

	// choroplethmapbox attributes
	GeoJSON      json.RawMessage `json:"geojson,omitempty"`
	Locations    []string        `json:"locations,omitempty"`
	Z            []float64       `json:"z,omitempty"`
	FeatureIDKey string          `json:"featureidkey,omitempty"`
	ColorScale   string          `json:"colorscale,omitempty"`
	ZMin         *float64        `json:"zmin,omitempty"`
	ZMax         *float64        `json:"zmax,omitempty"`
	ColorBar     *ColorBar       `json:"colorbar,omitempty"`
}

type Line struct {
	Color string  `json:"color,omitempty"`
	Width float64 `json:"width,omitempty"`
}

type Marker struct {
	Color string    `json:"color,omitempty"`
	Size  []float64 `json:"size,omitempty"`
	Line  *Line     `json:"line,omitempty"`
}

type ColorBar struct {
	Title string `json:"title,omitempty"`
}

type Layout struct {
	Title   string  `json:"title,omitempty"`
	XAxis   *Axis   `json:"xaxis,omitempty"`
	YAxis   *Axis   `json:"yaxis,omitempty"`
	YAxis2  *Axis   `json:"yaxis2,omitempty"`
	Legend  *Legend `json:"legend,omitempty"`
	Mapbox  *Mapbox `json:"mapbox,omitempty"`
	Margin  *Margin `json:"margin,omitempty"`
	BarMode string  `json:"barmode,omitempty"`
}

type Axis struct {
	Title      string `json:"title,omitempty"`
	Type       string `json:"type,omitempty"`
	Overlaying string `json:"overlaying,omitempty"`
	Side       string `json:"side,omitempty"`
}

type Legend struct {
	Orientation string  `json:"orientation,omitempty"`
	Y           float64 `json:"y,omitempty"`
}

type Mapbox struct {
	Style  string    `json:"style,omitempty"`
	Center MapCenter `json:"center"`
	Zoom   float64   `json:"zoom,omitempty"`
}

type MapCenter struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

type Margin struct {
	L int `json:"l"`
	R int `json:"r"`
	T int `json:"t"`
	B int `json:"b"`
}

// EmptyFigure returns a figure with no traces and the given title, the
// uniform placeholder for degraded refreshes.
func EmptyFigure(title string) *Figure {
	return &Figure{Data: []Trace{}, Layout: &Layout{Title: title}}
}
