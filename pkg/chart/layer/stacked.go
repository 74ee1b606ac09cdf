package layer

import (
	"math"

	"github.com/matzehuels/chartkit/pkg/palette"
	"github.com/matzehuels/chartkit/pkg/scene"
)

// StackedBars draws one cumulative stack per bin. Hidden series keep their
// slot in the stack with zero height, so the series above them move down.
type StackedBars struct {
	series
	data Dataset

	// Dynamics draws a line per series through its segment tops.
	Dynamics bool
	// Headroom is added to the top of the range.
	Headroom float64

	normalize bool
}

// FullStackedBars draws every stack scaled to the height of the tallest
// bin, a 100% stacked chart. The height is taken over all series, hidden
// or not.
type FullStackedBars struct {
	StackedBars
}

// NewStackedBars creates a stacked bar layer.
func NewStackedBars(secondaryAxis string, data Dataset, opts ...Option) *StackedBars {
	return &StackedBars{
		series:   newSeries(secondaryAxis, opts),
		data:     data,
		Dynamics: true,
		Headroom: DefaultHeadroom,
	}
}

// NewFullStackedBars creates a full-stacked bar layer.
func NewFullStackedBars(secondaryAxis string, data Dataset, opts ...Option) *FullStackedBars {
	s := NewStackedBars(secondaryAxis, data, opts...)
	s.normalize = true
	s.Headroom = 0
	return &FullStackedBars{StackedBars: *s}
}

func (s *StackedBars) Kind() string {
	if s.normalize {
		return "full-stacked"
	}
	return "stacked"
}

func (s *StackedBars) Banded() bool            { return true }
func (s *StackedBars) Data() Dataset           { return s.data }
func (s *StackedBars) SetData(data Dataset)    { s.data = data }
func (s *StackedBars) Init(p *palette.Palette) { s.init(p, s.data.Channels()) }
func (s *StackedBars) Domain() []float64       { return s.data.Keys() }
func (s *StackedBars) Labels() []string        { return s.data.Labels() }

// Stacks returns the segments of every bin under the current visibility,
// normalized for full-stacked layers.
func (s *StackedBars) Stacks() [][]Segment {
	isHidden := func(i int) bool { return s.hidden[i] }
	out := make([][]Segment, len(s.data))
	if !s.normalize {
		for i, d := range s.data {
			out[i] = StackValues(d.Values, isHidden)
		}
		return out
	}

	// The shared height comes from the unfiltered sums, so hiding a series
	// redistributes the remaining ones without shrinking the stacks.
	peak := 0.0
	for _, d := range s.data {
		peak = math.Max(peak, sum(d.Values))
	}
	for i, d := range s.data {
		out[i] = StackValues(NormalizeStack(visible(d.Values, isHidden), peak), nil)
	}
	return out
}

// Range returns [min of bin minimums, max of stack tops + Headroom] for
// stacked layers and [min of lower bounds, max of upper sums] for
// full-stacked ones.
func (s *StackedBars) Range() (float64, float64, bool) {
	stacks := s.Stacks()
	if s.normalize {
		return extent(len(stacks), func(i int) (float64, float64) {
			return stackBounds(stacks[i])
		})
	}
	min, max, ok := extent(len(stacks), func(i int) (float64, float64) {
		lo, _ := minMax(s.data[i].Values)
		_, hi := stackBounds(stacks[i])
		return lo, hi
	})
	if !ok {
		return 0, 0, false
	}
	return min, max + s.Headroom, true
}

func (s *StackedBars) TooltipData(l Lookup) []TooltipRow {
	d, ok := s.data.Find(l)
	if !ok {
		return nil
	}
	return s.rows(d, RowBar)
}

func (s *StackedBars) LegendData() LegendData {
	return LegendData{
		Title:   s.caption,
		Color:   s.color(0),
		Kind:    RowBar,
		Options: s.options(s.data.Channels()),
	}
}

func (s *StackedBars) Render(target *scene.Node, ctx Context) {
	s.draw(s.begin(target, ctx, s.Kind()))
}

// ReRender recomputes the stacks under the current visibility and redraws
// them with the scales of the last render.
func (s *StackedBars) ReRender() {
	if s.restart() {
		s.draw(s.group)
	}
}

func (s *StackedBars) draw(g *scene.Node) {
	ctx := s.ctx
	bw := ctx.Bandwidth(len(s.data))
	stacks := s.Stacks()

	for k, d := range s.data {
		x, ok := ctx.X(d)
		if !ok {
			continue
		}
		bin := g.Group("stack").Translate(x, 0)
		bin.SetDataFloat("key", d.Key)
		for i, seg := range stacks[k] {
			top := ctx.Y(seg.Upper)
			h := max(0, ctx.Y(seg.Lower)-top)
			rect := bin.Rect(bw*0.25, top, bw*0.5, h).WithFill(s.color(i)).WithClass(seriesClass(i), "bar")
			rect.Hidden = s.hidden[i]
		}
		if n := len(stacks[k]); n > 0 {
			top := ctx.Y(stacks[k][n-1].Upper)
			bin.Rect(bw*0.25, top, bw*0.5, 1).WithFill(ctx.Theme.CapColor).WithClass("stack-cap")
		}
	}

	if s.Dynamics {
		for i := 0; i < s.data.Channels(); i++ {
			var pts []scene.Point
			for k, d := range s.data {
				x, ok := ctx.X(d)
				if !ok || i >= len(stacks[k]) {
					continue
				}
				y := ctx.Y(stacks[k][i].Upper)
				pts = append(pts, scene.Point{X: x + bw*0.25, Y: y}, scene.Point{X: x + bw*0.75, Y: y})
			}
			p := g.Path(scene.CurveLinear.Line(pts)).WithStroke(s.color(i), 1).WithClass(seriesClass(i), "dynamics")
			p.Style.Fill = "none"
			p.Hidden = s.hidden[i]
		}
	}
}

func stackBounds(segs []Segment) (float64, float64) {
	if len(segs) == 0 {
		return nanPair()
	}
	lo, hi := segs[0].Lower, segs[0].Upper
	for _, sg := range segs {
		lo = math.Min(lo, math.Min(sg.Lower, sg.Upper))
		hi = math.Max(hi, math.Max(sg.Lower, sg.Upper))
	}
	return lo, hi
}

func sum(values []float64) float64 {
	total := 0.0
	for _, v := range values {
		total += v
	}
	return total
}
