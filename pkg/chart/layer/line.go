package layer

import (
	"math"

	"github.com/matzehuels/chartkit/pkg/palette"
	"github.com/matzehuels/chartkit/pkg/scene"
)

const markerRadius = 3

// Line draws a single series through (key, value) points. Values are read
// from the first channel of each bin.
type Line struct {
	series
	data Dataset

	Curve  scene.Curve
	Dashed bool
	// Marker draws a dot on the last defined point.
	Marker bool
	Width  float64
}

// NewLine creates a line layer.
func NewLine(secondaryAxis string, data Dataset, opts ...Option) *Line {
	return &Line{
		series: newSeries(secondaryAxis, opts),
		data:   data,
		Marker: true,
		Width:  2,
	}
}

func (l *Line) Kind() string            { return "line" }
func (l *Line) Data() Dataset           { return l.data }
func (l *Line) SetData(data Dataset)    { l.data = data }
func (l *Line) Init(p *palette.Palette) { l.init(p, 1) }
func (l *Line) Domain() []float64       { return l.data.Keys() }
func (l *Line) Labels() []string        { return l.data.Labels() }

func (l *Line) Range() (float64, float64, bool) {
	return l.RangeWithin(math.Inf(-1), math.Inf(1))
}

// RangeWithin returns the value extent of bins whose key lies in [lo, hi].
func (l *Line) RangeWithin(lo, hi float64) (float64, float64, bool) {
	return extent(len(l.data), func(i int) (float64, float64) {
		d := l.data[i]
		if d.Key < lo || d.Key > hi {
			return nanPair()
		}
		v := d.Value(0)
		return v, v
	})
}

func (l *Line) rowKind() RowKind {
	if l.Dashed {
		return RowDashedLine
	}
	return RowLine
}

func (l *Line) TooltipData(lk Lookup) []TooltipRow {
	d, ok := l.data.Find(lk)
	if !ok {
		return nil
	}
	return []TooltipRow{{
		Value:  d.Value(0),
		Title:  l.title(),
		Color:  l.color(0),
		Kind:   l.rowKind(),
		Hidden: l.hidden[0],
	}}
}

// LegendData describes the line without options; toggling the entry marks
// the whole layer inactive.
func (l *Line) LegendData() LegendData {
	return LegendData{
		Title:    l.title(),
		Color:    l.color(0),
		Kind:     l.rowKind(),
		Inactive: l.hidden[0],
	}
}

func (l *Line) title() string {
	if l.caption != "" {
		return l.caption
	}
	return l.name(0)
}

func (l *Line) Render(target *scene.Node, ctx Context) {
	l.draw(l.begin(target, ctx, l.Kind()))
}

func (l *Line) ReRender() {
	if l.restart() {
		l.draw(l.group)
	}
}

// points maps the bins to canvas coordinates. Missing values yield NaN
// points, which split the path.
func (l *Line) points() []scene.Point {
	pts := make([]scene.Point, 0, len(l.data))
	for _, d := range l.data {
		x, ok := l.ctx.X(d)
		if !ok {
			continue
		}
		v := d.Value(0)
		y := math.NaN()
		if !math.IsNaN(v) {
			y = l.ctx.Y(v)
		}
		pts = append(pts, scene.Point{X: x, Y: y})
	}
	return pts
}

func (l *Line) draw(g *scene.Node) {
	g.Hidden = l.hidden[0]
	pts := l.points()
	l.stroke(g, pts)
}

func (l *Line) stroke(g *scene.Node, pts []scene.Point) {
	path := g.Path(l.Curve.Line(pts)).WithStroke(l.color(0), l.Width).WithClass(seriesClass(0), "line")
	path.Style.Fill = "none"
	if l.Dashed {
		path.Style.Dash = "4,4"
	}

	if !l.Marker {
		return
	}
	for i := len(pts) - 1; i >= 0; i-- {
		if pts[i].Defined() {
			g.Circle(pts[i].X, pts[i].Y, markerRadius).WithFill(l.color(0)).WithClass(seriesClass(0), "line-marker")
			break
		}
	}
}
