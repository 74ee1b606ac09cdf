package axis

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/matzehuels/chartkit/pkg/chart/scale"
	"github.com/matzehuels/chartkit/pkg/errors"
)

// Position is the side of the plot an axis is drawn on.
type Position string

// Axis positions.
const (
	Top    Position = "top"
	Bottom Position = "bottom"
	Left   Position = "left"
	Right  Position = "right"
)

// Horizontal reports whether the axis runs along the x direction.
func (p Position) Horizontal() bool { return p == Top || p == Bottom }

// ParsePosition resolves a position name.
func ParsePosition(s string) (Position, error) {
	switch p := Position(strings.ToLower(strings.TrimSpace(s))); p {
	case Top, Bottom, Left, Right:
		return p, nil
	}
	return "", errors.New(errors.ErrCodeInvalidAxis, "unknown axis position %q", s)
}

const (
	// PixelsPerTick is the canvas width reserved per tick when an axis
	// does not declare a tick count.
	PixelsPerTick = 80
	// Width is the horizontal space reserved by each stacked left axis.
	Width = 40

	tickSize   = 6
	tickMargin = 3
)

// Declaration is a host-supplied axis definition.
type Declaration struct {
	Name     string
	Kind     scale.Kind
	Position Position
	Min, Max *float64 // explicit bounds override the aggregated domain
	Ticks    int      // zero means DefaultTickCount
	Primary  bool
	Title    string
	Format   string // optional fmt verb for numeric labels, e.g. "%.1f%%"
	Grid     bool   // draw grid lines across the plot at every tick
}

// DefaultTickCount returns the tick count for an axis spanning extent
// pixels: one tick per PixelsPerTick, at least two.
func DefaultTickCount(extent float64) int {
	return max(2, int(math.Abs(extent)/PixelsPerTick))
}

// Validate checks a chart's axis declarations: names must be valid and
// unique, positions known, and exactly one axis primary.
func Validate(decls []Declaration) error {
	seen := make(map[string]bool, len(decls))
	primaries := 0
	for _, d := range decls {
		if err := errors.ValidateName(d.Name); err != nil {
			return errors.Wrap(errors.ErrCodeInvalidAxis, err, "axis name")
		}
		if seen[d.Name] {
			return errors.New(errors.ErrCodeInvalidAxis, "axis %q declared twice", d.Name)
		}
		seen[d.Name] = true
		if _, err := ParsePosition(string(d.Position)); err != nil {
			return err
		}
		if d.Min != nil && d.Max != nil && *d.Min > *d.Max {
			return errors.New(errors.ErrCodeInvalidAxis, "axis %q: min %v exceeds max %v", d.Name, *d.Min, *d.Max)
		}
		if d.Primary {
			primaries++
		}
	}
	if primaries != 1 {
		return errors.New(errors.ErrCodeInvalidAxis, "want exactly one primary axis, got %d", primaries)
	}
	return nil
}

// Primary returns the primary declaration, if any.
func Primary(decls []Declaration) (Declaration, bool) {
	for _, d := range decls {
		if d.Primary {
			return d, true
		}
	}
	return Declaration{}, false
}

// Tick is one labeled position on an axis.
type Tick struct {
	Value float64 // domain value (band index for categorical axes)
	Label string
	Pos   float64 // pixel position along the axis
}

// Axis is a declaration bound to a resolved scale for one draw pass.
type Axis struct {
	Declaration
	Scale scale.Scale
	Ticks []Tick
	// Offset shifts the axis away from the plot edge; stacked left axes
	// get Width per preceding left axis.
	Offset float64
}

// Build resolves ticks for decl over s. extent is the canvas length along
// the axis, used for the default tick count.
func Build(decl Declaration, s scale.Scale, extent float64) *Axis {
	a := &Axis{Declaration: decl, Scale: s}
	n := decl.Ticks
	if n <= 0 {
		n = DefaultTickCount(extent)
	}

	band, isBand := s.(*scale.Band)
	for _, v := range s.Ticks(n) {
		t := Tick{Value: v, Pos: s.Map(v)}
		switch {
		case isBand:
			t.Label = band.Label(int(v))
			t.Pos += band.Bandwidth() / 2
		case decl.Kind == scale.Temporal:
			t.Label = TimeFormat(time.UnixMilli(int64(v)).UTC())
		default:
			t.Label = a.FormatValue(v)
		}
		a.Ticks = append(a.Ticks, t)
	}
	return a
}

// FormatValue formats a numeric value using the declared format, or
// [FormatNumber] when none is set.
func (a *Axis) FormatValue(v float64) string {
	if a.Format != "" {
		return fmt.Sprintf(a.Format, v)
	}
	return FormatNumber(v)
}

// Band returns the axis scale as a band scale when it is categorical.
func (a *Axis) Band() (*scale.Band, bool) {
	b, ok := a.Scale.(*scale.Band)
	return b, ok
}

// FormatNumber renders v with up to six decimals and no trailing zeros.
func FormatNumber(v float64) string {
	r := math.Round(v*1e6) / 1e6
	if r == 0 {
		r = 0
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// TimeFormat formats t with the coarsest unit that still distinguishes it:
// a time with milliseconds shows them, a whole second shows seconds, and so
// on up to whole years.
func TimeFormat(t time.Time) string {
	switch {
	case !t.Truncate(time.Second).Equal(t):
		return t.Format(".000")
	case !t.Truncate(time.Minute).Equal(t):
		return t.Format(":05")
	case !t.Truncate(time.Hour).Equal(t):
		return t.Format("15:04")
	case !isDayStart(t):
		return t.Format("03 PM")
	case t.Day() != 1:
		if t.Weekday() != time.Sunday {
			return t.Format("02 Jan")
		}
		return t.Format("Jan 02")
	case t.Month() != time.January:
		return t.Format("January")
	}
	return t.Format("2006")
}

func isDayStart(t time.Time) bool {
	y, m, d := t.Date()
	return t.Equal(time.Date(y, m, d, 0, 0, 0, 0, t.Location()))
}
