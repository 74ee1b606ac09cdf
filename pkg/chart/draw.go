package chart

import (
	"math"
	"slices"

	"github.com/matzehuels/chartkit/pkg/chart/axis"
	"github.com/matzehuels/chartkit/pkg/chart/interact"
	"github.com/matzehuels/chartkit/pkg/chart/layer"
	"github.com/matzehuels/chartkit/pkg/chart/scale"
	"github.com/matzehuels/chartkit/pkg/scene"
)

// layout places the plot inside the margins. Every left axis after the
// first reserves axis.Width more space on the left.
func (c *Composer) layout() {
	lefts := 0
	for _, d := range c.in.Axes {
		if d.Position == axis.Left {
			lefts++
		}
	}
	offset := 0.0
	if lefts > 1 {
		offset = float64(axis.Width * (lefts - 1))
	}
	m := c.in.Margins
	c.originX = m.Left + offset
	c.originY = m.Top
	c.plotW = math.Max(0, c.in.Width-m.Left-m.Right-offset)
	c.plotH = math.Max(0, c.in.Height-m.Top-m.Bottom)
}

// extent returns the pixel range of an axis at position p.
func (c *Composer) extent(p axis.Position) (float64, float64) {
	if p.Horizontal() {
		return 0, c.plotW
	}
	return c.plotH, 0
}

func (c *Composer) computeScales(layers []layer.Layer) map[string]scale.Scale {
	scales := make(map[string]scale.Scale, len(c.in.Axes))
	for _, d := range c.in.Axes {
		lo, hi := c.extent(d.Position)
		n := d.Ticks
		if n <= 0 {
			n = axis.DefaultTickCount(hi - lo)
		}
		// The primary domain stays exact so bins line up with columns.
		opts := []scale.Option{scale.WithTicks(n), scale.WithNice(!d.Primary)}
		dom := c.Domain(d, layers)
		scales[d.Name] = scale.Build(d.Kind, dom, lo, hi, opts...)
		if scales[d.Name].Empty() {
			c.logger.Debug("degenerate axis domain", "chart", c.id, "axis", d.Name)
		}
	}
	return scales
}

// Domain aggregates the domain of the axis declared by d over layers.
func (c *Composer) Domain(d axis.Declaration, layers []layer.Layer) scale.Domain {
	var dom scale.Domain
	switch {
	case d.Kind == scale.Categorical:
		dom.Labels = c.labels(layers)
		return dom
	case d.Primary:
		dom = c.primaryDomain(layers)
	default:
		dom = c.secondaryDomain(d.Name, layers)
	}
	if d.Min != nil {
		dom.Min = *d.Min
	}
	if d.Max != nil {
		dom.Max = *d.Max
	}
	return dom
}

// labels returns the first layer's labels, limited to the bins inside the
// window.
func (c *Composer) labels(layers []layer.Layer) []string {
	if len(layers) == 0 {
		return nil
	}
	first := layers[0]
	ds, ok := first.(layer.DataSource)
	if c.window == nil || !ok {
		return first.Labels()
	}
	var out []string
	for _, d := range ds.Data() {
		if d.Key >= c.window[0] && d.Key <= c.window[1] && d.Label != "" && !slices.Contains(out, d.Label) {
			out = append(out, d.Label)
		}
	}
	return out
}

func (c *Composer) primaryDomain(layers []layer.Layer) scale.Domain {
	if c.window != nil {
		return scale.Domain{Min: c.window[0], Max: c.window[1]}
	}
	dom := scale.Extent()
	var keys []float64
	banded := false
	for _, l := range layers {
		k := l.Domain()
		keys = append(keys, k...)
		dom = dom.Union(scale.Extent(k...))
		if b, ok := l.(layer.Banded); ok && b.Banded() {
			banded = true
		}
	}
	if banded && !math.IsNaN(dom.Max) {
		dom.Max += binStep(keys)
	}
	return dom
}

func (c *Composer) secondaryDomain(name string, layers []layer.Layer) scale.Domain {
	dom := scale.Extent()
	for _, l := range layers {
		if l.SecondaryAxis() != name {
			continue
		}
		var lo, hi float64
		var ok bool
		if w, isWindowed := l.(layer.Windowed); isWindowed && c.window != nil {
			lo, hi, ok = w.RangeWithin(c.window[0], c.window[1])
		} else {
			lo, hi, ok = l.Range()
		}
		if ok {
			dom = dom.Include(lo).Include(hi)
		}
	}
	return dom
}

// binStep returns the smallest positive gap between keys, or 1.
func binStep(keys []float64) float64 {
	sorted := slices.Clone(keys)
	slices.Sort(sorted)
	step := math.Inf(1)
	for i := 1; i < len(sorted); i++ {
		if d := sorted[i] - sorted[i-1]; d > 0 && d < step {
			step = d
		}
	}
	if math.IsInf(step, 1) {
		return 1
	}
	return step
}

func (c *Composer) computeAxes(scales map[string]scale.Scale) {
	lefts := 0
	for _, d := range c.in.Axes {
		lo, hi := c.extent(d.Position)
		a := axis.Build(d, scales[d.Name], math.Abs(hi-lo))
		if d.Position == axis.Left {
			a.Offset = float64(axis.Width * lefts)
			lefts++
		}
		c.axes[d.Name] = a
		if d.Primary {
			c.primary = a
		}
	}
}

func (c *Composer) drawBackground(canvas *scene.Node, layers []layer.Layer) {
	canvas.Rect(0, 0, c.plotW, c.plotH).WithFill(c.th.Background).WithClass("chart-background")
	if c.in.TooltipMode != interact.ModeLine || len(layers) == 0 || c.primary == nil {
		return
	}
	keys := layers[0].Domain()
	if len(keys) == 0 {
		return
	}
	w := c.primary.Scale.Map(keys[len(keys)-1])
	canvas.Rect(0, 0, math.Max(0, w), c.plotH).WithFill(c.th.ActiveBackground).WithClass("chart-active-background")
}

func (c *Composer) drawAxes(canvas *scene.Node) {
	for _, d := range c.in.Axes {
		c.axes[d.Name].Render(canvas, c.plotW, c.plotH, c.th)
	}
	for _, d := range c.in.Axes {
		if d.Grid {
			c.axes[d.Name].RenderGrid(canvas, c.plotW, c.plotH, c.th)
		}
	}
}

func (c *Composer) drawLayers(canvas *scene.Node, layers []layer.Layer) {
	if c.primary == nil {
		return
	}
	for _, l := range layers {
		sec, ok := c.axes[l.SecondaryAxis()]
		if !ok {
			c.logger.Debug("layer skipped: unknown axis", "chart", c.id, "layer", l.ID(), "axis", l.SecondaryAxis())
			continue
		}
		l.Render(canvas, layer.Context{
			Primary:   c.primary,
			Secondary: sec,
			Width:     c.plotW,
			Height:    c.plotH,
			Theme:     c.th,
		})
	}
}

func (c *Composer) drawColumns(canvas *scene.Node, layers []layer.Layer) {
	if c.primary == nil || len(layers) == 0 {
		return
	}
	var labels []string
	if b, ok := c.primary.Band(); ok {
		labels = b.Labels()
	}
	keys := layers[0].Domain()
	if c.window != nil {
		keys = slices.DeleteFunc(slices.Clone(keys), func(k float64) bool {
			return k < c.window[0] || k > c.window[1]
		})
	}
	c.columns = interact.Columns(c.primary, keys, labels, c.in.TooltipMode, c.plotW)
	interact.RenderColumns(canvas, c.columns, c.plotH, c.in.TooltipMode, c.th)
}
