package chart

import (
	"context"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartkit/pkg/chart/axis"
	"github.com/matzehuels/chartkit/pkg/chart/interact"
	"github.com/matzehuels/chartkit/pkg/chart/layer"
	"github.com/matzehuels/chartkit/pkg/observability"
	"github.com/matzehuels/chartkit/pkg/palette"
	"github.com/matzehuels/chartkit/pkg/render/theme"
	"github.com/matzehuels/chartkit/pkg/scene"
)

// Canvas defaults.
const (
	DefaultWidth  = 800
	DefaultHeight = 600
	DefaultMargin = 32
)

// Margins is the space between the canvas edge and the plot.
type Margins struct {
	Top, Right, Bottom, Left float64
}

// Input is the host-supplied definition of a chart.
type Input struct {
	Width, Height float64
	Margins       Margins
	Axes          []axis.Declaration
	// Tooltip enables hover tooltips.
	Tooltip bool
	// Legend enables the legend.
	Legend      bool
	TooltipMode interact.Mode
}

// DefaultInput returns an 800x600 input with 32px margins and tooltips
// and legend enabled.
func DefaultInput() Input {
	return Input{
		Width:       DefaultWidth,
		Height:      DefaultHeight,
		Margins:     Margins{DefaultMargin, DefaultMargin, DefaultMargin, DefaultMargin},
		Tooltip:     true,
		Legend:      true,
		TooltipMode: interact.ModeBars,
	}
}

func (in Input) withDefaults() Input {
	if in.Width <= 0 {
		in.Width = DefaultWidth
	}
	if in.Height <= 0 {
		in.Height = DefaultHeight
	}
	if in.Margins == (Margins{}) {
		in.Margins = Margins{DefaultMargin, DefaultMargin, DefaultMargin, DefaultMargin}
	}
	if in.TooltipMode == "" {
		in.TooltipMode = interact.ModeBars
	}
	return in
}

// State is a step of the draw pass.
type State int

// Draw states, in pass order.
const (
	Idle State = iota
	ComputingScales
	ComputingAxes
	DrawingBackground
	DrawingAxes
	DrawingLayers
	DrawingInteractionColumns
)

var stateNames = [...]string{
	"idle",
	"computing-scales",
	"computing-axes",
	"drawing-background",
	"drawing-axes",
	"drawing-layers",
	"drawing-interaction-columns",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "unknown"
	}
	return stateNames[s]
}

// Option configures a [Composer].
type Option func(*Composer)

// WithLogger sets the logger. The default discards output.
func WithLogger(l *log.Logger) Option {
	return func(c *Composer) { c.logger = l }
}

// WithTheme sets the theme. The default is [theme.Default].
func WithTheme(th *theme.Theme) Option {
	return func(c *Composer) {
		if th != nil {
			c.th = th
		}
	}
}

// WithEvents sets the handlers for host events.
func WithEvents(e interact.Events) Option {
	return func(c *Composer) { c.events = e }
}

// Composer draws one chart instance.
type Composer struct {
	in     Input
	reg    *Registry
	pal    *palette.Palette
	th     *theme.Theme
	logger *log.Logger
	events interact.Events
	id     string

	state    State
	root     *scene.Node
	axes     map[string]*axis.Axis
	primary  *axis.Axis
	columns  []interact.Column
	window   *[2]float64
	inited   map[string]bool
	coord    *interact.Coordinator
	coordGen int

	originX, originY float64
	plotW, plotH     float64
}

// New creates a composer over reg. Layers without explicit names or
// colors take them from pal; a nil pal uses [palette.Default].
func New(in Input, reg *Registry, pal *palette.Palette, opts ...Option) *Composer {
	if reg == nil {
		reg = NewRegistry("chart")
	}
	if pal == nil {
		pal = palette.New()
	}
	c := &Composer{
		in:     in.withDefaults(),
		reg:    reg,
		pal:    pal,
		th:     theme.Default(),
		logger: log.New(io.Discard),
		id:     "chart-" + reg.Namespace().String()[:8],
		inited: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// ID returns the chart id used for the canvas group and hooks.
func (c *Composer) ID() string { return c.id }

// Input returns the effective input.
func (c *Composer) Input() Input { return c.in }

// Registry returns the layer registry.
func (c *Composer) Registry() *Registry { return c.reg }

// Theme returns the chart theme.
func (c *Composer) Theme() *theme.Theme { return c.th }

// State returns the current draw state. It is Idle between passes.
func (c *Composer) State() State { return c.state }

// Validate checks the axis declarations.
func (c *Composer) Validate() error { return axis.Validate(c.in.Axes) }

// Draw runs a full draw pass and returns the new scene.
func (c *Composer) Draw(ctx context.Context) *scene.Node {
	start := time.Now()
	hooks := observability.Chart()
	layers := c.reg.Layers()
	hooks.OnDrawStart(ctx, c.id, len(layers))

	c.root = scene.NewRoot(c.in.Width, c.in.Height)
	c.axes = make(map[string]*axis.Axis, len(c.in.Axes))
	c.primary = nil
	c.columns = nil
	c.initLayers(layers)

	if err := c.Validate(); err != nil {
		c.logger.Warn("chart not drawn", "chart", c.id, "err", err)
		c.finish(ctx, start)
		return c.root
	}
	if err := ctx.Err(); err != nil {
		c.logger.Debug("draw cancelled", "chart", c.id, "err", err)
		c.finish(ctx, start)
		return c.root
	}

	c.layout()
	canvas := c.root.Group("chart").WithID(c.id).Translate(c.originX, c.originY)

	c.setState(ctx, ComputingScales)
	scales := c.computeScales(layers)

	c.setState(ctx, ComputingAxes)
	c.computeAxes(scales)

	c.setState(ctx, DrawingBackground)
	c.drawBackground(canvas, layers)

	c.setState(ctx, DrawingAxes)
	c.drawAxes(canvas)

	c.setState(ctx, DrawingLayers)
	c.drawLayers(canvas, layers)

	c.setState(ctx, DrawingInteractionColumns)
	c.drawColumns(canvas, layers)

	c.finish(ctx, start)
	return c.root
}

func (c *Composer) finish(ctx context.Context, start time.Time) {
	c.setState(ctx, Idle)
	observability.Chart().OnDrawComplete(ctx, c.id, countNodes(c.root), time.Since(start))
}

func (c *Composer) setState(ctx context.Context, s State) {
	c.state = s
	c.logger.Debug("draw state", "chart", c.id, "state", s)
	observability.Chart().OnStateChange(ctx, c.id, s.String())
}

// NotifyDataChanged redraws the chart after its layers' data changed.
func (c *Composer) NotifyDataChanged(ctx context.Context) *scene.Node {
	return c.Draw(ctx)
}

// NotifyResized sets a new canvas size and redraws.
func (c *Composer) NotifyResized(ctx context.Context, width, height float64) *scene.Node {
	if width > 0 {
		c.in.Width = width
	}
	if height > 0 {
		c.in.Height = height
	}
	return c.Draw(ctx)
}

// SetData replaces the dataset of a layer and redraws. It returns false
// when the layer is unknown or does not hold a dataset.
func (c *Composer) SetData(ctx context.Context, layerID string, data layer.Dataset) bool {
	l, ok := c.reg.Get(layerID)
	if !ok {
		return false
	}
	ds, ok := l.(layer.DataSource)
	if !ok {
		return false
	}
	ds.SetData(data)
	c.Draw(ctx)
	return true
}

// SetWindow narrows the primary domain to [lo, hi] for the next draw.
func (c *Composer) SetWindow(lo, hi float64) {
	if lo > hi {
		lo, hi = hi, lo
	}
	c.window = &[2]float64{lo, hi}
}

// ClearWindow restores the full primary domain.
func (c *Composer) ClearWindow() { c.window = nil }

// Window returns the current window.
func (c *Composer) Window() (lo, hi float64, ok bool) {
	if c.window == nil {
		return 0, 0, false
	}
	return c.window[0], c.window[1], true
}

// Interactions returns the coordinator for pointer and legend input. It is
// rebuilt when layers were registered or removed since the last call.
func (c *Composer) Interactions() *interact.Coordinator {
	if c.coord == nil || c.coordGen != c.reg.Generation() {
		c.coord = interact.NewCoordinator(c, c.in.TooltipMode,
			interact.WithEvents(c.events),
			interact.WithTooltip(c.in.Tooltip))
		c.coordGen = c.reg.Generation()
	}
	return c.coord
}

// Brush creates a smart-scroll brush of the given width over the first
// layer's data. Moving it sets the window and emits the Scroll event; the
// host redraws. A selection covering the whole track clears the window, so
// the full view is drawn exactly as before the brush was used.
func (c *Composer) Brush(width float64) (*interact.Brush, bool) {
	first, ok := c.reg.First()
	if !ok {
		return nil, false
	}
	ds, ok := first.(layer.DataSource)
	if !ok {
		return nil, false
	}
	decl, _ := axis.Primary(c.in.Axes)
	var b *interact.Brush
	b = interact.NewBrush(decl.Kind, ds.Data(), width, interact.OnScroll(func(start, end float64) {
		if b.Full() {
			c.ClearWindow()
		} else {
			c.SetWindow(start, end)
		}
		if c.events.Scroll != nil {
			c.events.Scroll(start, end)
		}
	}))
	return b, true
}

// Layers returns the registered layers.
func (c *Composer) Layers() []layer.Layer { return c.reg.Layers() }

// Primary returns the primary axis of the last draw.
func (c *Composer) Primary() *axis.Axis { return c.primary }

// Axis returns an axis of the last draw by name.
func (c *Composer) Axis(name string) (*axis.Axis, bool) {
	a, ok := c.axes[name]
	return a, ok
}

// Columns returns the hover columns of the last draw.
func (c *Composer) Columns() []interact.Column { return c.columns }

// Canvas returns the canvas size.
func (c *Composer) Canvas() (float64, float64) { return c.in.Width, c.in.Height }

// PlotOrigin returns the canvas position of the plot's top-left corner.
func (c *Composer) PlotOrigin() (float64, float64) { return c.originX, c.originY }

// Plot returns the plot size of the last draw.
func (c *Composer) Plot() (float64, float64) { return c.plotW, c.plotH }

// Scene returns the scene of the last draw, or nil before the first one.
func (c *Composer) Scene() *scene.Node { return c.root }

func (c *Composer) initLayers(layers []layer.Layer) {
	for _, l := range layers {
		if c.inited[l.ID()] {
			continue
		}
		if in, ok := l.(layer.Initializer); ok {
			in.Init(c.pal)
		}
		c.inited[l.ID()] = true
	}
}

func countNodes(root *scene.Node) int {
	n := 0
	root.Walk(func(*scene.Node) bool {
		n++
		return true
	})
	return n
}
