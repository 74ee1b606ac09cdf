package layer

import (
	"fmt"
	"math"
	"slices"
	"strconv"

	"github.com/matzehuels/chartkit/pkg/palette"
	"github.com/matzehuels/chartkit/pkg/scene"
)

// DefaultHeadroom is added above the tallest bar so value labels fit.
const DefaultHeadroom = 50

// Option configures the series metadata shared by every layer kind.
type Option func(*series)

// WithCaption sets the legend title.
func WithCaption(caption string) Option {
	return func(s *series) { s.caption = caption }
}

// WithNames sets series names. Missing names default to "Group-<i>".
func WithNames(names ...string) Option {
	return func(s *series) { s.names = append([]string(nil), names...) }
}

// WithColors sets series colors. Missing colors come from the palette.
func WithColors(colors ...string) Option {
	return func(s *series) { s.colors = append([]string(nil), colors...) }
}

// WithHidden restores persisted visibility.
func WithHidden(positions ...HiddenPosition) Option {
	return func(s *series) {
		for _, p := range positions {
			s.hidden[p.Position] = p.IsHidden
		}
	}
}

// series holds what every layer kind shares: identity, the bound axis,
// series metadata, visibility and the state of the last render.
type series struct {
	id       string
	axis     string
	caption  string
	names    []string
	colors   []string
	hidden   map[int]bool
	onChange func([]HiddenPosition)

	group *scene.Node
	ctx   Context
}

func newSeries(axis string, opts []Option) series {
	s := series{axis: axis, hidden: make(map[int]bool)}
	for _, opt := range opts {
		opt(&s)
	}
	return s
}

func (s *series) ID() string            { return s.id }
func (s *series) SetID(id string)       { s.id = id }
func (s *series) SecondaryAxis() string { return s.axis }

// init defaults names and colors for n series.
func (s *series) init(p *palette.Palette, n int) {
	for i := 0; i < n; i++ {
		if i >= len(s.names) {
			s.names = append(s.names, "")
		}
		if s.names[i] == "" {
			s.names[i] = fmt.Sprintf("Group-%d", i)
		}
		if i >= len(s.colors) {
			s.colors = append(s.colors, "")
		}
		if s.colors[i] == "" && p != nil {
			s.colors[i] = p.Next()
		}
	}
}

func (s *series) name(i int) string {
	if i < len(s.names) && s.names[i] != "" {
		return s.names[i]
	}
	return fmt.Sprintf("Group-%d", i)
}

func (s *series) color(i int) string {
	if i < len(s.colors) && s.colors[i] != "" {
		return s.colors[i]
	}
	return palette.Default[i%len(palette.Default)]
}

// Names returns the series names.
func (s *series) Names() []string { return slices.Clone(s.names) }

// Colors returns the series colors.
func (s *series) Colors() []string { return slices.Clone(s.colors) }

func (s *series) IsHidden(i int) bool { return s.hidden[i] }

func (s *series) SetHidden(i int, hidden bool) {
	s.hidden[i] = hidden
	if s.onChange != nil {
		s.onChange(s.Visibility())
	}
}

// Visibility returns the recorded visibility ordered by position.
func (s *series) Visibility() []HiddenPosition {
	out := make([]HiddenPosition, 0, len(s.hidden))
	for pos, h := range s.hidden {
		out = append(out, HiddenPosition{Position: pos, IsHidden: h})
	}
	slices.SortFunc(out, func(a, b HiddenPosition) int { return a.Position - b.Position })
	return out
}

func (s *series) OnVisibilityChange(fn func([]HiddenPosition)) { s.onChange = fn }

// begin records the render context and creates the layer group.
func (s *series) begin(target *scene.Node, ctx Context, kind string) *scene.Node {
	s.ctx = ctx
	s.group = target.Group("layer", "layer-"+kind)
	s.group.ID = s.id
	return s.group
}

// restart clears the layer group for a redraw. It returns false when the
// layer has not been rendered yet.
func (s *series) restart() bool {
	if s.group == nil {
		return false
	}
	s.group.Clear()
	return true
}

func (s *series) options(n int) []LegendOption {
	opts := make([]LegendOption, n)
	for i := range opts {
		opts[i] = LegendOption{
			ID:       strconv.Itoa(i),
			Title:    s.name(i),
			Color:    s.color(i),
			Selected: !s.hidden[i],
		}
	}
	return opts
}

func (s *series) rows(d Datum, kind RowKind) []TooltipRow {
	rows := make([]TooltipRow, len(d.Values))
	for i, v := range d.Values {
		rows[i] = TooltipRow{
			Value:  v,
			Title:  s.name(i),
			Color:  s.color(i),
			Kind:   kind,
			Hidden: s.hidden[i],
		}
	}
	return rows
}

func seriesClass(i int) string { return "class-" + strconv.Itoa(i) }

// extent returns the min and max of finite values produced by fn.
func extent(n int, fn func(i int) (lo, hi float64)) (float64, float64, bool) {
	min, max := math.Inf(1), math.Inf(-1)
	for i := 0; i < n; i++ {
		lo, hi := fn(i)
		if !math.IsNaN(lo) && !math.IsInf(lo, 0) {
			min = math.Min(min, lo)
		}
		if !math.IsNaN(hi) && !math.IsInf(hi, 0) {
			max = math.Max(max, hi)
		}
	}
	if math.IsInf(min, 0) || math.IsInf(max, 0) {
		return 0, 0, false
	}
	return min, max, true
}

func nanPair() (float64, float64) { return math.NaN(), math.NaN() }
