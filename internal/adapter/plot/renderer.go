// Package plot renders state accident maps as PNG scatter plots.
package plot

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"log/slog"

	"github.com/couchcryptid/fars-data-pipeline/internal/domain"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// pointColor matches the default matplotlib-style blue used across the
// project's charts.
var pointColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}

// MapRenderer draws one accident map and writes it out as a PNG, either to
// a file or to a writer. A renderer is single-use: DrawBaseMap frames the
// plot, DrawPoints draws the markers and saves.
type MapRenderer struct {
	path   string
	out    io.Writer
	title  string
	width  vg.Length
	height vg.Length
	logger *slog.Logger

	p *plot.Plot
}

// NewFileRenderer creates a renderer that saves the map to path. Geometry
// is in inches.
func NewFileRenderer(path, title string, widthIn, heightIn float64, logger *slog.Logger) *MapRenderer {
	return &MapRenderer{
		path:   path,
		title:  title,
		width:  vg.Length(widthIn) * vg.Inch,
		height: vg.Length(heightIn) * vg.Inch,
		logger: logger,
	}
}

// NewWriterRenderer creates a renderer that streams the PNG to out, for use
// by the HTTP map endpoint.
func NewWriterRenderer(out io.Writer, title string, widthIn, heightIn float64, logger *slog.Logger) *MapRenderer {
	return &MapRenderer{
		out:    out,
		title:  title,
		width:  vg.Length(widthIn) * vg.Inch,
		height: vg.Length(heightIn) * vg.Inch,
		logger: logger,
	}
}

// DrawBaseMap frames the plot around the valid coordinate bounds, with a
// small margin so edge points are not clipped.
func (r *MapRenderer) DrawBaseMap(latRange, lonRange domain.Range) error {
	p := plot.New()
	p.Title.Text = r.title
	p.X.Label.Text = "Longitude"
	p.Y.Label.Text = "Latitude"

	lonPad := pad(lonRange)
	latPad := pad(latRange)
	p.X.Min = lonRange.Min - lonPad
	p.X.Max = lonRange.Max + lonPad
	p.Y.Min = latRange.Min - latPad
	p.Y.Max = latRange.Max + latPad

	p.Add(plotter.NewGrid())

	r.p = p
	return nil
}

// DrawPoints plots every point that has both axes, then writes the PNG.
// Points with a missing axis are silently skipped.
func (r *MapRenderer) DrawPoints(points []domain.Point) error {
	if r.p == nil {
		return errors.New("base map not drawn")
	}

	xys := make(plotter.XYs, 0, len(points))
	for _, pt := range points {
		if !pt.Plottable() {
			continue
		}
		xys = append(xys, plotter.XY{X: pt.Lon, Y: pt.Lat})
	}

	scatter, err := plotter.NewScatter(xys)
	if err != nil {
		return fmt.Errorf("build scatter: %w", err)
	}
	scatter.GlyphStyle.Shape = draw.CircleGlyph{}
	scatter.GlyphStyle.Radius = vg.Points(2)
	scatter.GlyphStyle.Color = pointColor
	r.p.Add(scatter)

	if err := r.write(); err != nil {
		return err
	}
	r.logger.Debug("map written", "title", r.title, "points", len(xys), "path", r.path)
	return nil
}

func (r *MapRenderer) write() error {
	if r.path != "" {
		return r.p.Save(r.width, r.height, r.path)
	}
	wt, err := r.p.WriterTo(r.width, r.height, "png")
	if err != nil {
		return fmt.Errorf("encode map: %w", err)
	}
	if _, err := wt.WriteTo(r.out); err != nil {
		return fmt.Errorf("write map: %w", err)
	}
	return nil
}

// pad returns 2% of the range span, or a small fixed margin when the span
// collapses to a single value.
func pad(rng domain.Range) float64 {
	span := rng.Max - rng.Min
	if span <= 0 {
		return 0.1
	}
	return span * 0.02
}
