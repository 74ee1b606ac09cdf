package interact

import (
	"math"

	"github.com/matzehuels/chartkit/pkg/chart/layer"
	"github.com/matzehuels/chartkit/pkg/chart/scale"
	"github.com/matzehuels/chartkit/pkg/render/theme"
	"github.com/matzehuels/chartkit/pkg/scene"
)

// Brush layout defaults.
const (
	BrushHeight  = 44
	brushPadding = 8
)

// Margins around the brush track.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// DefaultBrushMargins are the margins of the smart-scroll track.
var DefaultBrushMargins = Margins{Top: 10, Right: 20, Bottom: 10, Left: 40}

// Brush is the smart-scroll range selector drawn below a chart. It shows
// a preview line of the data and a draggable selection; moving the
// selection emits the selected primary-axis range.
type Brush struct {
	width   float64
	margins Margins
	data    layer.Dataset
	x       scale.Scale
	y       scale.Scale

	selection [2]float64
	onScroll  func(start, end float64)
}

// BrushOption configures a [Brush].
type BrushOption func(*Brush)

// WithMargins overrides [DefaultBrushMargins].
func WithMargins(m Margins) BrushOption {
	return func(b *Brush) { b.margins = m }
}

// OnScroll registers the scroll handler.
func OnScroll(fn func(start, end float64)) BrushOption {
	return func(b *Brush) { b.onScroll = fn }
}

// NewBrush creates a brush over the first series of data for a track of
// the given width. kind is the kind of the chart's primary axis. The
// selection starts at the full range.
func NewBrush(kind scale.Kind, data layer.Dataset, width float64, opts ...BrushOption) *Brush {
	b := &Brush{width: width, margins: DefaultBrushMargins, data: data}
	for _, opt := range opts {
		opt(b)
	}

	xs := scale.Extent(data.Keys()...)
	ys := scale.Domain{Min: math.NaN(), Max: math.NaN()}
	for _, d := range data {
		ys = ys.Include(d.Value(0))
	}
	if kind != scale.Temporal {
		kind = scale.Numeric
	}
	b.x = scale.Build(kind, xs, b.margins.Left, width-b.margins.Right, scale.WithNice(false))
	b.y = scale.Build(scale.Numeric, ys, BrushHeight-brushPadding, brushPadding, scale.WithNice(false))
	b.selection = b.DefaultSelection()
	return b
}

// DefaultSelection is the full track, in pixels.
func (b *Brush) DefaultSelection() [2]float64 {
	lo, hi := b.x.Range()
	return [2]float64{lo, hi}
}

// Full reports whether the selection covers the whole track.
func (b *Brush) Full() bool { return b.selection == b.DefaultSelection() }

// Selection returns the current selection in pixels.
func (b *Brush) Selection() [2]float64 { return b.selection }

// Domain returns the current selection in primary-axis values.
func (b *Brush) Domain() (float64, float64) {
	return b.x.Invert(b.selection[0]), b.x.Invert(b.selection[1])
}

// Move sets the selection to [x0, x1] pixels, clamped to the track, and
// emits the matching domain range.
func (b *Brush) Move(x0, x1 float64) {
	lo, hi := b.x.Range()
	if x0 > x1 {
		x0, x1 = x1, x0
	}
	b.selection = [2]float64{clamp(x0, lo, hi), clamp(x1, lo, hi)}
	if b.onScroll != nil && !b.x.Empty() {
		start, end := b.Domain()
		b.onScroll(start, end)
	}
}

// End finishes a drag. A nil selection, as produced by a click without a
// drag, snaps back to the full range.
func (b *Brush) End(selection *[2]float64) {
	if selection == nil {
		def := b.DefaultSelection()
		b.Move(def[0], def[1])
		return
	}
	b.Move(selection[0], selection[1])
}

// Render draws the preview line, the track and the selection into a new
// group under target.
func (b *Brush) Render(target *scene.Node, th *theme.Theme) *scene.Node {
	g := target.Group("smart-scroll")

	pts := make([]scene.Point, 0, len(b.data))
	for _, d := range b.data {
		v := d.Value(0)
		y := math.NaN()
		if !math.IsNaN(v) {
			y = b.y.Map(v)
		}
		pts = append(pts, scene.Point{X: b.x.Map(d.Key), Y: y})
	}
	preview := g.Path(scene.CurveMonotone.Line(pts)).WithStroke(th.AxisColor, 1).WithClass("prev-line")
	preview.Style.Fill = "none"

	lo, hi := b.x.Range()
	g.Rect(lo, 0.5, hi-lo, BrushHeight).WithFill("transparent").WithStroke(th.GridColor, 1).WithClass("overlay")
	sel := g.Rect(b.selection[0], 0.5, b.selection[1]-b.selection[0], BrushHeight).WithFill(th.HighlightColor).WithClass("selection")
	sel.Style.FillOpacity = 0.3
	return g
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
