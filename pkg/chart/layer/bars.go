package layer

import (
	"cmp"
	"slices"

	"github.com/matzehuels/chartkit/pkg/chart/axis"
	"github.com/matzehuels/chartkit/pkg/palette"
	"github.com/matzehuels/chartkit/pkg/scene"
)

// ValuePosition places bar value labels relative to the bar top.
type ValuePosition string

// Value label positions.
const (
	Above ValuePosition = "above"
	Below ValuePosition = "below"
)

const (
	aboveOffset = -2
	belowOffset = 10
)

// Bars draws one rectangle per series per bin, taller bars first so
// shorter ones stay visible in front.
type Bars struct {
	series
	data Dataset

	// ShowValues adds a value label and a cap line to every bar.
	ShowValues bool
	// ValuePosition places value labels above or below the bar top.
	ValuePosition ValuePosition
	// Dynamics draws a line per series through the bar tops.
	Dynamics bool
	// Headroom is added to the top of the range.
	Headroom float64
}

// NewBars creates a bar layer plotted on the named secondary axis.
func NewBars(secondaryAxis string, data Dataset, opts ...Option) *Bars {
	return &Bars{
		series:        newSeries(secondaryAxis, opts),
		data:          data,
		ValuePosition: Above,
		Dynamics:      true,
		Headroom:      DefaultHeadroom,
	}
}

func (b *Bars) Kind() string            { return "bars" }
func (b *Bars) Banded() bool            { return true }
func (b *Bars) Data() Dataset           { return b.data }
func (b *Bars) SetData(data Dataset)    { b.data = data }
func (b *Bars) Init(p *palette.Palette) { b.init(p, b.data.Channels()) }
func (b *Bars) Domain() []float64       { return b.data.Keys() }
func (b *Bars) Labels() []string        { return b.data.Labels() }

// Range returns [min of bin minimums, max of bin maximums + Headroom].
func (b *Bars) Range() (float64, float64, bool) {
	min, max, ok := extent(len(b.data), func(i int) (float64, float64) {
		return minMax(b.data[i].Values)
	})
	if !ok {
		return 0, 0, false
	}
	return min, max + b.Headroom, true
}

func (b *Bars) TooltipData(l Lookup) []TooltipRow {
	d, ok := b.data.Find(l)
	if !ok {
		return nil
	}
	return b.rows(d, RowBar)
}

func (b *Bars) LegendData() LegendData {
	return LegendData{
		Title:   b.caption,
		Color:   b.color(0),
		Kind:    RowBar,
		Options: b.options(b.data.Channels()),
	}
}

func (b *Bars) Render(target *scene.Node, ctx Context) {
	b.draw(b.begin(target, ctx, b.Kind()))
}

func (b *Bars) ReRender() {
	if b.restart() {
		b.draw(b.group)
	}
}

func (b *Bars) draw(g *scene.Node) {
	ctx := b.ctx
	bw := ctx.Bandwidth(len(b.data))
	n := b.data.Channels()

	for _, d := range b.data {
		x, ok := ctx.X(d)
		if !ok {
			continue
		}
		bin := g.Group("bar-bin").Translate(x, 0)
		bin.SetDataFloat("key", d.Key)

		order := make([]int, min(n, len(d.Values)))
		for i := range order {
			order[i] = i
		}
		slices.SortStableFunc(order, func(i, j int) int {
			return cmp.Compare(d.Values[j], d.Values[i])
		})

		for _, i := range order {
			v := d.Values[i]
			y := ctx.Y(v)
			h := max(0, ctx.Height-y)
			hidden := b.hidden[i]
			if hidden {
				y, h = ctx.Height, 0
			}
			rect := bin.Rect(bw*0.25, y, bw*0.5, h).WithFill(b.color(i)).WithClass(seriesClass(i), "bar")
			rect.Hidden = hidden
			if b.ShowValues {
				b.drawValue(bin, i, v, y, bw, hidden)
			}
		}
	}

	if b.Dynamics {
		b.drawDynamics(g, bw, n)
	}
}

func (b *Bars) drawValue(bin *scene.Node, i int, v, y, bw float64, hidden bool) {
	th := b.ctx.Theme
	top := bin.Rect(bw*0.25, y, bw*0.5, 1).WithFill(th.CapColor).WithClass(seriesClass(i), "bar-cap")
	top.Hidden = hidden

	dy := float64(aboveOffset)
	if b.ValuePosition == Below {
		dy = belowOffset
	}
	label := bin.Text(bw*0.5, y+dy, axis.FormatNumber(v)).WithFill(th.TextColor).WithClass(seriesClass(i), "bar-label")
	label.Style.Anchor = "middle"
	label.Style.FontSize = th.FontSize
	label.Hidden = hidden
}

func (b *Bars) drawDynamics(g *scene.Node, bw float64, n int) {
	for i := 0; i < n; i++ {
		var pts []scene.Point
		for _, d := range b.data {
			x, ok := b.ctx.X(d)
			if !ok {
				continue
			}
			y := b.ctx.Y(d.Value(i))
			pts = append(pts, scene.Point{X: x + bw*0.25, Y: y}, scene.Point{X: x + bw*0.75, Y: y})
		}
		p := g.Path(scene.CurveLinear.Line(pts)).WithStroke(b.color(i), 1).WithClass(seriesClass(i), "dynamics")
		p.Style.Fill = "none"
		p.Hidden = b.hidden[i]
	}
}

func minMax(values []float64) (float64, float64) {
	lo, hi, ok := extent(len(values), func(i int) (float64, float64) { return values[i], values[i] })
	if !ok {
		return nanPair()
	}
	return lo, hi
}
