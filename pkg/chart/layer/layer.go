package layer

import (
	"math"

	"github.com/matzehuels/chartkit/pkg/chart/axis"
	"github.com/matzehuels/chartkit/pkg/palette"
	"github.com/matzehuels/chartkit/pkg/render/theme"
	"github.com/matzehuels/chartkit/pkg/scene"
)

// Datum is one bin of a layer's data: a primary key, one value per
// series and an optional category label.
type Datum struct {
	Key    float64   `json:"key"`
	Values []float64 `json:"values"`
	Label  string    `json:"label,omitempty"`
}

// Value returns series i of the datum, or NaN when it is missing.
func (d Datum) Value(i int) float64 {
	if i < 0 || i >= len(d.Values) {
		return math.NaN()
	}
	return d.Values[i]
}

// Dataset is an ordered sequence of bins. Order defines drawing order.
type Dataset []Datum

// Keys returns the primary keys in order.
func (ds Dataset) Keys() []float64 {
	keys := make([]float64, len(ds))
	for i, d := range ds {
		keys[i] = d.Key
	}
	return keys
}

// Labels returns the distinct category labels in first-seen order.
func (ds Dataset) Labels() []string {
	seen := make(map[string]bool, len(ds))
	var out []string
	for _, d := range ds {
		if d.Label == "" || seen[d.Label] {
			continue
		}
		seen[d.Label] = true
		out = append(out, d.Label)
	}
	return out
}

// Channels returns the number of series, taken from the first bin.
func (ds Dataset) Channels() int {
	if len(ds) == 0 {
		return 0
	}
	return len(ds[0].Values)
}

// Find returns the bin matching l.
func (ds Dataset) Find(l Lookup) (Datum, bool) {
	for _, d := range ds {
		if (l.ByLabel && d.Label == l.Label) || (!l.ByLabel && d.Key == l.Key) {
			return d, true
		}
	}
	return Datum{}, false
}

// Lookup addresses a bin by primary key, or by label when the primary
// axis is categorical.
type Lookup struct {
	Key     float64
	Label   string
	ByLabel bool
}

// RowKind selects the tooltip and legend marker.
type RowKind string

// Row kinds.
const (
	RowLine       RowKind = "line"
	RowDashedLine RowKind = "dashed-line"
	RowBar        RowKind = "bar"
)

// TooltipRow is one line of a hover tooltip.
type TooltipRow struct {
	Value  float64 `json:"value"`
	Title  string  `json:"title"`
	Color  string  `json:"color"`
	Kind   RowKind `json:"type"`
	Hidden bool    `json:"hidden"`
}

// LegendOption is one selectable series in a legend entry.
type LegendOption struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Color    string `json:"color"`
	Selected bool   `json:"selected"`
}

// LegendData describes a layer's legend entry.
type LegendData struct {
	Title    string         `json:"title"`
	Color    string         `json:"color"`
	Kind     RowKind        `json:"type"`
	Inactive bool           `json:"inactive"`
	Options  []LegendOption `json:"options,omitempty"`
}

// HiddenPosition is the persisted visibility of one series.
type HiddenPosition struct {
	Position int  `json:"position"`
	IsHidden bool `json:"isHidden"`
}

// Context carries the resolved axes and plot geometry into Render.
type Context struct {
	Primary   *axis.Axis
	Secondary *axis.Axis
	Width     float64 // plot width in pixels
	Height    float64 // plot height in pixels
	Theme     *theme.Theme
}

// X returns the primary-axis pixel position of d: the band start for
// categorical axes, the mapped key otherwise.
func (c Context) X(d Datum) (float64, bool) {
	if b, ok := c.Primary.Band(); ok {
		return b.MapLabel(d.Label)
	}
	return c.Primary.Scale.Map(d.Key), true
}

// Y maps a value on the secondary axis.
func (c Context) Y(v float64) float64 {
	return c.Secondary.Scale.Map(v)
}

// Bandwidth returns the width of one bin among n: the band width for
// categorical axes, an equal share of the plot width otherwise.
func (c Context) Bandwidth(n int) float64 {
	if b, ok := c.Primary.Band(); ok {
		return b.Bandwidth()
	}
	if n == 0 {
		return 0
	}
	return c.Width / float64(n)
}

// Layer is the contract every chart layer implements.
type Layer interface {
	// ID returns the id assigned at registration.
	ID() string
	SetID(id string)
	// Kind names the layer type, e.g. "bars".
	Kind() string
	// SecondaryAxis names the axis the layer's values are plotted on.
	SecondaryAxis() string

	// Domain returns the layer's primary keys.
	Domain() []float64
	// Labels returns the layer's category labels in order.
	Labels() []string
	// Range returns the value extent on the secondary axis. ok is false
	// when the layer has no finite values.
	Range() (min, max float64, ok bool)

	TooltipData(l Lookup) []TooltipRow
	LegendData() LegendData

	// Render draws the layer into a new group under target.
	Render(target *scene.Node, ctx Context)
	// ReRender redraws the layer's group with the context of the last
	// Render, applying current visibility. It is a no-op before Render.
	ReRender()

	// SetHidden updates the visibility of one series and emits the
	// visibility list to the registered callback.
	SetHidden(series int, hidden bool)
	IsHidden(series int) bool
	Visibility() []HiddenPosition
	// OnVisibilityChange registers the visibility callback.
	OnVisibilityChange(fn func([]HiddenPosition))
}

// Initializer is implemented by layers that default their series names
// and colors from the chart palette.
type Initializer interface {
	Init(p *palette.Palette)
}

// Banded is implemented by layers that draw one band per primary key.
// A continuous primary axis is widened by one bin so the last band fits.
type Banded interface {
	Banded() bool
}

// Windowed is implemented by layers whose value extent can be limited to
// a primary-axis window, as set by a brush selection.
type Windowed interface {
	RangeWithin(lo, hi float64) (min, max float64, ok bool)
}

// DataSource is implemented by layers that expose their dataset.
type DataSource interface {
	Data() Dataset
	SetData(data Dataset)
}
