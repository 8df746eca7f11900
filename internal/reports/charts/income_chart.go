// Package charts renders the line chart embedded in income reports.
package charts

import (
	"bytes"
	"fmt"

	chart "github.com/wcharczuk/go-chart/v2"
	"github.com/wcharczuk/go-chart/v2/drawing"
)

const (
	DefaultWidth  = 800
	DefaultHeight = 600
)

// Point is one labelled value on the x axis.
type Point struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Series is a titled, labelled sequence of points.
type Series struct {
	Title  string  `json:"title"`
	XLabel string  `json:"x_label"`
	YLabel string  `json:"y_label"`
	Points []Point `json:"points"`
}

// IncomeTrends returns the example series shown in every report. It is not
// derived from the generated text.
func IncomeTrends() Series {
	return Series{
		Title:  "Income Trends Over the Years",
		XLabel: "Year",
		YLabel: "Income ($)",
		Points: []Point{
			{Label: "2021", Value: 1000},
			{Label: "2022", Value: 1500},
			{Label: "2023", Value: 1200},
		},
	}
}

// RenderError reports a failure of the plotting library.
type RenderError struct {
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("failed to render chart: %v", e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// Renderer draws series as PNG line charts of a fixed size.
type Renderer struct {
	width  int
	height int
}

// NewRenderer creates a renderer; non-positive sizes fall back to the defaults.
func NewRenderer(width, height int) *Renderer {
	if width <= 0 {
		width = DefaultWidth
	}
	if height <= 0 {
		height = DefaultHeight
	}
	return &Renderer{width: width, height: height}
}

// Size returns the pixel dimensions of rendered images.
func (r *Renderer) Size() (int, int) {
	return r.width, r.height
}

// RenderIncomeTrends renders IncomeTrends.
func (r *Renderer) RenderIncomeTrends() ([]byte, error) {
	return r.RenderPNG(IncomeTrends())
}

// RenderPNG renders s as a line chart with point markers and grid lines.
func (r *Renderer) RenderPNG(s Series) ([]byte, error) {
	if len(s.Points) < 2 {
		return nil, &RenderError{Err: fmt.Errorf("series %q needs at least two points, got %d", s.Title, len(s.Points))}
	}

	xs := make([]float64, len(s.Points))
	ys := make([]float64, len(s.Points))
	ticks := make([]chart.Tick, len(s.Points))
	for i, p := range s.Points {
		xs[i] = float64(i)
		ys[i] = p.Value
		ticks[i] = chart.Tick{Value: float64(i), Label: p.Label}
	}

	grid := chart.Style{
		StrokeColor: drawing.Color{R: 210, G: 210, B: 210, A: 255},
		StrokeWidth: 1,
	}

	ch := chart.Chart{
		Title:      s.Title,
		Width:      r.width,
		Height:     r.height,
		Background: chart.Style{Padding: chart.Box{Top: 40, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:           s.XLabel,
			Ticks:          ticks,
			Range:          &chart.ContinuousRange{Min: -0.25, Max: float64(len(s.Points)-1) + 0.25},
			GridMajorStyle: grid,
		},
		YAxis: chart.YAxis{
			Name:           s.YLabel,
			GridMajorStyle: grid,
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Series: []chart.Series{
			chart.ContinuousSeries{
				Name: s.Title,
				Style: chart.Style{
					StrokeColor: chart.ColorBlue,
					StrokeWidth: 2,
					DotColor:    chart.ColorBlue,
					DotWidth:    5,
				},
				XValues: xs,
				YValues: ys,
			},
		},
	}

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, &RenderError{Err: err}
	}
	return buf.Bytes(), nil
}
