package renderer

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"
	"path/filepath"
	"strings"

	"github.com/etnz/inflation"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

// ChartOptions sets the look of a trend chart.
type ChartOptions struct {
	Title  string
	YLabel string
	Width  vg.Length // defaults to 8 inches.
	Height vg.Length // defaults to 4 inches.
}

var errNoData = errors.New("no data to plot")

// trendPlot draws the observations as a line over time.
func trendPlot(opts ChartOptions, obs []inflation.Observation) (*plot.Plot, error) {
	points := make(plotter.XYs, 0, len(obs))
	for _, o := range obs {
		if math.IsNaN(o.Value) {
			continue
		}
		points = append(points, plotter.XY{X: float64(o.Date.Unix()), Y: o.Value})
	}
	if len(points) == 0 {
		return nil, errNoData
	}

	p := plot.New()
	p.Title.Text = opts.Title
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "Date"
	p.Y.Label.Text = opts.YLabel
	if p.Y.Label.Text == "" {
		p.Y.Label.Text = "CPI"
	}
	p.X.Tick.Marker = plot.TimeTicks{Format: "2006"}

	line, err := plotter.NewLine(points)
	if err != nil {
		return nil, fmt.Errorf("error creating trend line: %w", err)
	}
	line.LineStyle.Width = vg.Points(1.5)
	line.LineStyle.Color = color.RGBA{R: 31, G: 119, B: 180, A: 255}

	p.Add(plotter.NewGrid(), line)
	return p, nil
}

func (o ChartOptions) size() (vg.Length, vg.Length) {
	w, h := o.Width, o.Height
	if w <= 0 {
		w = 8 * vg.Inch
	}
	if h <= 0 {
		h = 4 * vg.Inch
	}
	return w, h
}

// Chart writes the trend chart to w, format is "png" or "svg".
func Chart(w io.Writer, format string, opts ChartOptions, obs []inflation.Observation) error {
	format = strings.ToLower(format)
	if format != "png" && format != "svg" {
		return fmt.Errorf("unsupported chart format %q", format)
	}
	p, err := trendPlot(opts, obs)
	if err != nil {
		return err
	}
	width, height := opts.size()
	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return fmt.Errorf("error rendering chart: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("error writing chart: %w", err)
	}
	return nil
}

// SaveChart writes the trend chart to path, the format is chosen by the
// file extension.
func SaveChart(path string, opts ChartOptions, obs []inflation.Observation) error {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), "."))
	if ext != "png" && ext != "svg" {
		return fmt.Errorf("unsupported chart file %q: use a .png or .svg extension", path)
	}
	p, err := trendPlot(opts, obs)
	if err != nil {
		return err
	}
	width, height := opts.size()
	if err := p.Save(width, height, path); err != nil {
		return fmt.Errorf("error saving chart to %s: %w", path, err)
	}
	return nil
}
