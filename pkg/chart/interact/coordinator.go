package interact

import (
	"fmt"
	"strconv"
	"time"

	"github.com/matzehuels/chartkit/pkg/chart/axis"
	"github.com/matzehuels/chartkit/pkg/chart/layer"
	"github.com/matzehuels/chartkit/pkg/chart/scale"
	"github.com/matzehuels/chartkit/pkg/scene"
)

// TooltipOffset is the gap between the pointer and a right-anchored
// tooltip.
const TooltipOffset = 15

// Source is a drawn chart as seen by the coordinator.
type Source interface {
	Layers() []layer.Layer
	Primary() *axis.Axis
	// Columns returns the hover columns of the last draw.
	Columns() []Column
	// Canvas returns the full canvas size.
	Canvas() (w, h float64)
	// PlotOrigin returns the canvas position of the plot's top-left corner.
	PlotOrigin() (x, y float64)
	// Scene returns the root of the last draw, or nil.
	Scene() *scene.Node
}

// Events are the notifications a chart emits to its host. Nil handlers
// are skipped.
type Events struct {
	// HiddenPositionChange reports the visibility of a layer's series after
	// a change.
	HiddenPositionChange func(layerID string, positions []layer.HiddenPosition)
	// OptionSelectionChange reports a toggled legend option.
	OptionSelectionChange func(layerID string, opt layer.LegendOption)
	// Scroll reports a brush selection in primary-axis domain values.
	Scroll func(start, end float64)
}

// Placement anchors a tooltip. Exactly one of Left and Right is set.
type Placement struct {
	Left  *float64 `json:"left,omitempty"`
	Right *float64 `json:"right,omitempty"`
	Top   float64  `json:"top"`
}

// Tooltip is the content and position of a hover tooltip.
type Tooltip struct {
	Title     string               `json:"title"`
	Column    int                  `json:"column"`
	Rows      [][]layer.TooltipRow `json:"rows"`
	Placement Placement            `json:"placement"`
}

// Coordinator routes pointer and legend input to a chart's layers.
type Coordinator struct {
	src     Source
	mode    Mode
	enabled bool
	events  Events

	tooltip     *Tooltip
	highlighted int
}

// CoordinatorOption configures a [Coordinator].
type CoordinatorOption func(*Coordinator)

// WithEvents sets the host event handlers.
func WithEvents(e Events) CoordinatorOption {
	return func(c *Coordinator) { c.events = e }
}

// WithTooltip enables or disables hover tooltips. They are on by default.
func WithTooltip(enabled bool) CoordinatorOption {
	return func(c *Coordinator) { c.enabled = enabled }
}

// NewCoordinator binds a coordinator to src and subscribes to the
// visibility changes of its layers.
func NewCoordinator(src Source, mode Mode, opts ...CoordinatorOption) *Coordinator {
	c := &Coordinator{src: src, mode: mode, enabled: true, highlighted: -1}
	for _, opt := range opts {
		opt(c)
	}
	for _, l := range src.Layers() {
		id := l.ID()
		l.OnVisibilityChange(func(hp []layer.HiddenPosition) {
			if c.events.HiddenPositionChange != nil {
				c.events.HiddenPositionChange(id, hp)
			}
		})
	}
	return c
}

// Events returns the host event handlers.
func (c *Coordinator) Events() Events { return c.events }

// Hover updates the tooltip for a pointer at canvas position (px, py).
// A pointer outside every column leaves the tooltip unchanged and returns
// false.
func (c *Coordinator) Hover(px, py float64) (*Tooltip, bool) {
	if !c.enabled {
		return nil, false
	}
	ox, _ := c.src.PlotOrigin()
	col, ok := Hit(c.src.Columns(), px-ox)
	if !ok {
		return c.tooltip, false
	}

	lk := layer.Lookup{Key: col.Key}
	if col.Label != "" {
		lk = layer.Lookup{Label: col.Label, ByLabel: true}
	}
	rows := make([][]layer.TooltipRow, 0, len(c.src.Layers()))
	for _, l := range c.src.Layers() {
		rows = append(rows, l.TooltipData(lk))
	}

	w, _ := c.src.Canvas()
	c.tooltip = &Tooltip{
		Title:     c.title(col),
		Column:    col.Index,
		Rows:      rows,
		Placement: Place(px, py, w),
	}
	c.highlight(col.Index)
	return c.tooltip, true
}

// Leave destroys the tooltip and clears the highlight line.
func (c *Coordinator) Leave() {
	c.tooltip = nil
	c.highlight(-1)
}

// Tooltip returns the current tooltip, or nil.
func (c *Coordinator) Tooltip() *Tooltip { return c.tooltip }

// Place anchors a tooltip on the half of a w-wide canvas the pointer is
// not in.
func Place(px, py, w float64) Placement {
	if w > 0 && px/w > 0.5 {
		r := w - px + TooltipOffset
		return Placement{Right: &r, Top: py}
	}
	l := px
	return Placement{Left: &l, Top: py}
}

func (c *Coordinator) title(col Column) string {
	if col.Label != "" {
		return col.Label
	}
	if p := c.src.Primary(); p != nil && p.Kind == scale.Temporal {
		return FormatTime(time.UnixMilli(int64(col.Key)).UTC())
	}
	return axis.FormatNumber(col.Key)
}

// FormatTime formats a tooltip timestamp as day.month.year, time and
// milliseconds.
func FormatTime(t time.Time) string {
	return fmt.Sprintf("%s .%d", t.Format("02.01.2006, 15:04:05"), t.Nanosecond()/int(time.Millisecond))
}

// highlight shows the line of column i in line mode and hides the
// previous one.
func (c *Coordinator) highlight(i int) {
	if c.mode != ModeLine || i == c.highlighted {
		return
	}
	root := c.src.Scene()
	if root == nil {
		return
	}
	if prev := root.FindID(LineID(c.highlighted)); prev != nil && c.highlighted >= 0 {
		prev.Hidden = true
		prev.Class = []string{ClassLine}
	}
	if next := root.FindID(LineID(i)); next != nil && i >= 0 {
		next.Hidden = false
		next.Class = []string{ClassLineHighlighted}
	}
	c.highlighted = i
}

// Highlighted returns the highlighted column index, or -1.
func (c *Coordinator) Highlighted() int { return c.highlighted }

// LegendEntry is the legend of one layer.
type LegendEntry struct {
	LayerID string           `json:"layerId"`
	Data    layer.LegendData `json:"data"`
}

// Legend returns the legend entries of every layer in registration order.
func (c *Coordinator) Legend() []LegendEntry {
	layers := c.src.Layers()
	out := make([]LegendEntry, len(layers))
	for i, l := range layers {
		out[i] = LegendEntry{LayerID: l.ID(), Data: l.LegendData()}
	}
	return out
}

// ToggleLegend applies a legend option selection: the option's series is
// hidden when selected is false. Only the owning layer is redrawn. It
// returns false when the layer or option does not exist.
func (c *Coordinator) ToggleLegend(layerID, optionID string, selected bool) bool {
	l := c.find(layerID)
	if l == nil {
		return false
	}
	pos, err := strconv.Atoi(optionID)
	if err != nil || pos < 0 {
		return false
	}
	opts := l.LegendData().Options
	if pos >= len(opts) {
		return false
	}

	l.SetHidden(pos, !selected)
	l.ReRender()

	if c.events.OptionSelectionChange != nil {
		opt := opts[pos]
		opt.Selected = selected
		c.events.OptionSelectionChange(layerID, opt)
	}
	return true
}

// ToggleLayer flips a single-series layer, such as a line, between active
// and inactive.
func (c *Coordinator) ToggleLayer(layerID string) bool {
	l := c.find(layerID)
	if l == nil {
		return false
	}
	l.SetHidden(0, !l.IsHidden(0))
	l.ReRender()
	return true
}

func (c *Coordinator) find(id string) layer.Layer {
	for _, l := range c.src.Layers() {
		if l.ID() == id {
			return l
		}
	}
	return nil
}
