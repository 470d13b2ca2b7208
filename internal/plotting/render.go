// Package plotting renders charts over the loaded dataset as PNG byte
// streams. Rendering is delegated to gonum/plot; this package only maps
// table columns onto plotters.
package plotting

import (
	"bytes"
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"

	"github.com/vinodismyname/mcpframe/config"
	"github.com/vinodismyname/mcpframe/internal/dataset"
)

// Kind selects the chart family.
type Kind string

const (
	KindBar     Kind = "bar"
	KindLine    Kind = "line"
	KindScatter Kind = "scatter"
)

// ErrInvalidKind indicates a chart kind outside the supported set.
var ErrInvalidKind = errors.New("plotting: unsupported plot type")

// ErrNoNumericData indicates the table has no numeric columns to chart.
var ErrNoNumericData = errors.New("plotting: no numeric data to plot")

// ParseKind validates and converts a chart kind string.
func ParseKind(s string) (Kind, error) {
	switch Kind(s) {
	case KindBar, KindLine, KindScatter:
		return Kind(s), nil
	}
	return "", fmt.Errorf("%w: %s", ErrInvalidKind, s)
}

// Options describes one chart request. When both X and Y name columns the
// chart is two-dimensional over that pair; otherwise every numeric column
// is charted against the row index.
type Options struct {
	Kind  Kind
	X     string
	Y     string
	Title string
}

// Render draws the requested chart and returns it as PNG bytes.
func Render(tbl *dataset.Table, opts Options) ([]byte, error) {
	if _, err := ParseKind(string(opts.Kind)); err != nil {
		return nil, err
	}

	p := plot.New()
	p.Title.Text = opts.Title

	var err error
	if opts.X != "" && opts.Y != "" {
		err = renderXY(p, tbl, opts)
	} else {
		err = renderDefault(p, tbl, opts.Kind)
	}
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	wt, err := p.WriterTo(
		vg.Length(config.DefaultPlotWidthInches)*vg.Inch,
		vg.Length(config.DefaultPlotHeightInches)*vg.Inch,
		"png",
	)
	if err != nil {
		return nil, fmt.Errorf("plotting: encode png: %w", err)
	}
	if _, err := wt.WriteTo(&buf); err != nil {
		return nil, fmt.Errorf("plotting: write png: %w", err)
	}
	return buf.Bytes(), nil
}

// renderXY draws a two-dimensional chart of column Y against column X.
func renderXY(p *plot.Plot, tbl *dataset.Table, opts Options) error {
	xcol, err := tbl.Column(opts.X)
	if err != nil {
		return err
	}
	ycol, err := tbl.Column(opts.Y)
	if err != nil {
		return err
	}
	p.X.Label.Text = opts.X
	p.Y.Label.Text = opts.Y

	ys := ycol.Float()

	switch opts.Kind {
	case KindBar:
		// Bars use X as nominal labels, pandas-style.
		bars, err := plotter.NewBarChart(barValues(ys), vg.Points(20))
		if err != nil {
			return err
		}
		bars.Color = plotutil.Color(0)
		p.Add(bars)
		p.Legend.Add(opts.Y, bars)
		p.NominalX(xcol.Records()...)
	case KindLine:
		ln, err := plotter.NewLine(xyPairs(xcol.Float(), ys))
		if err != nil {
			return err
		}
		ln.Color = plotutil.Color(0)
		p.Add(ln)
		p.Legend.Add(opts.Y, ln)
	case KindScatter:
		sc, err := plotter.NewScatter(xyPairs(xcol.Float(), ys))
		if err != nil {
			return err
		}
		sc.GlyphStyle.Color = plotutil.Color(0)
		p.Add(sc)
		p.Legend.Add(opts.Y, sc)
	}
	return nil
}

// renderDefault charts every numeric column against the row index.
func renderDefault(p *plot.Plot, tbl *dataset.Table, kind Kind) error {
	numeric := tbl.NumericColumns()
	if len(numeric) == 0 {
		return ErrNoNumericData
	}

	for i, name := range numeric {
		col, err := tbl.Column(name)
		if err != nil {
			return err
		}
		vals := col.Float()

		switch kind {
		case KindBar:
			bars, err := plotter.NewBarChart(barValues(vals), vg.Points(12))
			if err != nil {
				return err
			}
			bars.Color = plotutil.Color(i)
			bars.Offset = vg.Points(12) * vg.Length(i)
			p.Add(bars)
			p.Legend.Add(name, bars)
		case KindLine:
			ln, err := plotter.NewLine(indexPairs(vals))
			if err != nil {
				return err
			}
			ln.Color = plotutil.Color(i)
			p.Add(ln)
			p.Legend.Add(name, ln)
		case KindScatter:
			sc, err := plotter.NewScatter(indexPairs(vals))
			if err != nil {
				return err
			}
			sc.GlyphStyle.Color = plotutil.Color(i)
			sc.GlyphStyle.Shape = plotutil.Shape(i)
			p.Add(sc)
			p.Legend.Add(name, sc)
		}
	}
	return nil
}

// xyPairs builds XY points, skipping pairs with a missing coordinate.
func xyPairs(xs, ys []float64) plotter.XYs {
	n := len(xs)
	if len(ys) < n {
		n = len(ys)
	}
	pts := make(plotter.XYs, 0, n)
	for i := 0; i < n; i++ {
		if math.IsNaN(xs[i]) || math.IsNaN(ys[i]) {
			continue
		}
		pts = append(pts, plotter.XY{X: xs[i], Y: ys[i]})
	}
	return pts
}

// indexPairs builds XY points of values against their row index.
func indexPairs(vals []float64) plotter.XYs {
	pts := make(plotter.XYs, 0, len(vals))
	for i, v := range vals {
		if math.IsNaN(v) {
			continue
		}
		pts = append(pts, plotter.XY{X: float64(i), Y: v})
	}
	return pts
}

// barValues converts a column to bar heights. Bars cannot represent gaps,
// so missing values draw as zero height.
func barValues(vals []float64) plotter.Values {
	out := make(plotter.Values, len(vals))
	for i, v := range vals {
		if math.IsNaN(v) {
			v = 0
		}
		out[i] = v
	}
	return out
}
