// Package plot exports price series as PNG line charts with gonum/plot.
package plot

import (
	"io"
	"os"

	"limaprices/domain/prices"
	"limaprices/internal/errors"

	gplot "gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Options controls the exported image
type Options struct {
	Title  string
	Width  vg.Length
	Height vg.Length
}

// DefaultOptions matches the proportions of the dashboard chart
func DefaultOptions() Options {
	return Options{
		Title:  "Apartment Prices in Lima",
		Width:  12 * vg.Inch,
		Height: 6 * vg.Inch,
	}
}

// NewLinePlot builds one line per series, leaving missing observations out.
// Series without any observation are not drawn.
func NewLinePlot(series []prices.Series, opts Options) (*gplot.Plot, error) {
	p := gplot.New()
	p.Title.Text = opts.Title
	p.Title.TextStyle.Font.Size = vg.Points(16)
	p.Y.Label.Text = "USD/m2"
	p.X.Tick.Marker = gplot.TimeTicks{Format: "Jan 2006"}
	p.Legend.Top = true
	p.Legend.Left = true
	p.Add(plotter.NewGrid())

	drawn := 0
	for i, s := range series {
		observed := s.DropMissing()
		if len(observed.Points) == 0 {
			continue
		}

		xys := make(plotter.XYs, len(observed.Points))
		for j, pt := range observed.Points {
			xys[j].X = float64(pt.Month.Unix())
			xys[j].Y = pt.Value
		}

		line, err := plotter.NewLine(xys)
		if err != nil {
			return nil, errors.Wrapf(err, "plotting %s", s.Name)
		}
		line.Color = plotutil.Color(i)
		line.Width = vg.Points(1.5)

		p.Add(line)
		p.Legend.Add(s.Name, line)
		drawn++
	}

	if drawn == 0 {
		return nil, errors.DatasetInvalid("no observations to plot")
	}
	return p, nil
}

// WritePNG renders the series as a PNG image to w
func WritePNG(w io.Writer, series []prices.Series, opts Options) error {
	p, err := NewLinePlot(series, opts)
	if err != nil {
		return err
	}
	wt, err := p.WriterTo(opts.Width, opts.Height, "png")
	if err != nil {
		return errors.Wrap(err, "creating png canvas")
	}
	if _, err := wt.WriteTo(w); err != nil {
		return errors.Wrap(err, "writing png")
	}
	return nil
}

// SavePNG writes the PNG chart to path
func SavePNG(path string, series []prices.Series, opts Options) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrapf(err, "creating %s", path)
	}
	if err := WritePNG(f, series, opts); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
