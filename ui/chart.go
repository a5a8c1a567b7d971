package ui

import (
	"fmt"
	"io"
	"math"
	"time"

	"limaprices/domain/prices"
	"limaprices/internal/errors"

	chart "github.com/wcharczuk/go-chart/v2"
)

const (
	priceAxisTitle = "USD/m2"
	monthFormat    = "Jan 2006"
)

// ChartPoint is one plotted observation
type ChartPoint struct {
	Month time.Time `json:"month"`
	Value float64   `json:"value"`
}

// LineSeries is one line of the price chart
type LineSeries struct {
	Name   string       `json:"name"`
	Points []ChartPoint `json:"points"`
}

// ChartSpec describes the price chart independently of how it is drawn
type ChartSpec struct {
	YAxisTitle  string       `json:"y_axis_title"`
	XAxisTitle  string       `json:"x_axis_title"`
	LegendTitle string       `json:"legend_title"`
	Series      []LineSeries `json:"series"`
}

// NewChartSpec builds a line chart with one line per series; missing
// observations are left out of their line.
func NewChartSpec(series []prices.Series) ChartSpec {
	spec := ChartSpec{
		YAxisTitle: priceAxisTitle,
		Series:     make([]LineSeries, 0, len(series)),
	}
	for _, s := range series {
		line := LineSeries{Name: s.Name, Points: make([]ChartPoint, 0, len(s.Points))}
		for _, p := range s.Points {
			if p.Missing() {
				continue
			}
			line.Points = append(line.Points, ChartPoint{Month: p.Month, Value: p.Value})
		}
		spec.Series = append(spec.Series, line)
	}
	return spec
}

// Names returns the line names in plotting order
func (spec ChartSpec) Names() []string {
	names := make([]string, len(spec.Series))
	for i, s := range spec.Series {
		names[i] = s.Name
	}
	return names
}

// ChartRenderer draws a ChartSpec with go-chart
type ChartRenderer struct {
	Width  int
	Height int
}

// RenderSVG writes the chart as SVG. Lines without points are not drawn.
func (r ChartRenderer) RenderSVG(w io.Writer, spec ChartSpec) error {
	series := make([]chart.Series, 0, len(spec.Series))
	yMin, yMax := math.Inf(1), math.Inf(-1)
	for i, line := range spec.Series {
		if len(line.Points) == 0 {
			continue
		}
		xs := make([]time.Time, len(line.Points))
		ys := make([]float64, len(line.Points))
		for j, p := range line.Points {
			xs[j] = p.Month
			ys[j] = p.Value
			yMin = math.Min(yMin, p.Value)
			yMax = math.Max(yMax, p.Value)
		}
		if len(xs) == 1 {
			// go-chart needs a non-zero x range
			xs = append(xs, xs[0].AddDate(0, 1, 0))
			ys = append(ys, ys[0])
		}
		series = append(series, chart.TimeSeries{
			Name:    line.Name,
			XValues: xs,
			YValues: ys,
			Style: chart.Style{
				StrokeColor: chart.GetDefaultColor(i),
				StrokeWidth: 2,
			},
		})
	}
	if len(series) == 0 {
		return errors.DatasetInvalid("no observations to plot")
	}

	graph := chart.Chart{
		Width:      r.Width,
		Height:     r.Height,
		Background: chart.Style{Padding: chart.Box{Top: 20, Left: 20, Right: 20, Bottom: 20}},
		XAxis: chart.XAxis{
			Name:           spec.XAxisTitle,
			ValueFormatter: chart.TimeValueFormatterWithFormat(monthFormat),
		},
		YAxis: chart.YAxis{
			Name: spec.YAxisTitle,
			ValueFormatter: func(v interface{}) string {
				if f, ok := v.(float64); ok {
					return fmt.Sprintf("%.0f", f)
				}
				return ""
			},
		},
		Series: series,
	}
	if yMin == yMax {
		// a flat chart still needs a non-zero y range
		graph.YAxis.Range = &chart.ContinuousRange{Min: yMin - 1, Max: yMax + 1}
	}
	graph.Elements = []chart.Renderable{chart.Legend(&graph)}

	if err := graph.Render(chart.SVG, w); err != nil {
		return errors.Wrap(err, "rendering price chart")
	}
	return nil
}
