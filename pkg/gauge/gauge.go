package gauge

import (
	"io"
	"math"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartkit/pkg/errors"
)

// Layout constants of the dial.
const (
	// DisplayAngle is half the dial span in units of π.
	DisplayAngle = 0.75
	// WorkAreaDeg is the working range of the pointer rotation.
	WorkAreaDeg = 180
	// AxisDeviation is the pointer rotation offset in degrees.
	AxisDeviation = 45

	pointerSpan = 0.15  // pointer arc length in units of π
	pointerMark = 0.008 // pointer tip length in units of π
	markSpan    = 0.015 // boundary mark length in radians
)

// ZeroOn selects the end of the dial that represents zero.
type ZeroOn string

// Zero references.
const (
	Left  ZeroOn = "left"
	Right ZeroOn = "right"
)

// ParseZeroOn parses "left" or "right". Empty selects [Left].
func ParseZeroOn(s string) (ZeroOn, error) {
	switch ZeroOn(s) {
	case "", Left:
		return Left, nil
	case Right:
		return Right, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "invalid zero reference %q (want left or right)", s)
}

// Bound is one configured zone: its cumulative upper value and color.
type Bound struct {
	Value float64 `toml:"value" json:"value"`
	Color string  `toml:"color" json:"color"`
}

// Dial is the input of one gauge.
type Dial struct {
	Name     string  `toml:"name" json:"name"`
	EngUnits string  `toml:"eng_units" json:"engUnits"`
	Fact     float64 `toml:"fact" json:"fact"`
	// Deviation is the fact minus the nearest threshold.
	Deviation float64 `toml:"deviation" json:"deviation"`
	ZeroOn    ZeroOn  `toml:"zero_on" json:"zeroOn"`
	Bounds    []Bound `toml:"bounds" json:"visualBoundCharts"`
}

// Segment is one zone of the dial with a relative size. Label holds the
// absolute bound, or the fact for the fact piece.
type Segment struct {
	Color    string  `json:"color"`
	Value    float64 `json:"value"`
	Label    float64 `json:"label"`
	IsActive bool    `json:"isActive,omitempty"`
	IsFact   bool    `json:"isFact,omitempty"`
}

// Arc is a segment laid out on the dial. Angles are in radians, clockwise
// from twelve o'clock.
type Arc struct {
	Segment
	Start float64 `json:"startAngle"`
	End   float64 `json:"endAngle"`
}

// Pointer is the derived needle position.
type Pointer struct {
	// Angle is the fact angle in radians.
	Angle float64 `json:"angle"`
	// Found is false when no angle could be derived for the fact.
	Found bool `json:"found"`
	// Start is the start of the pointer arc in units of π.
	Start float64 `json:"start"`
	// Rotate is the rotation applied to the pointer arc, in degrees.
	Rotate float64 `json:"rotate"`
}

// StartAngle returns the pointer arc start in radians.
func (p Pointer) StartAngle() float64 { return p.Start * math.Pi }

// EndAngle returns the pointer arc end in radians.
func (p Pointer) EndAngle() float64 { return p.extend(pointerSpan) }

func (p Pointer) extend(span float64) float64 {
	sign := 1.0
	if p.Start < 0 {
		sign = -1
	}
	return (math.Abs(p.Start) + span) * math.Pi * sign
}

// Geometry is the computed layout of a dial.
type Geometry struct {
	Dial Dial `json:"dial"`
	// Segments are the zones as relative sizes, in draw order.
	Segments []Segment `json:"segments"`
	// Arcs lays out Segments over the dial span.
	Arcs []Arc `json:"arcs"`
	// FactArcs lays out Segments with the active zone split at the fact.
	FactArcs []Arc    `json:"factArcs"`
	Pointer  Pointer `json:"pointer"`
}

// FactArc returns the arc of the fact piece.
func (g *Geometry) FactArc() (Arc, bool) {
	for _, a := range g.FactArcs {
		if a.IsFact {
			return a, true
		}
	}
	return Arc{}, false
}

// Option configures [Compute].
type Option func(*options)

type options struct {
	logger *log.Logger
}

// WithLogger sets the logger that receives pointer warnings.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// Compute lays out d.
func Compute(d Dial, opts ...Option) (*Geometry, error) {
	o := options{logger: log.New(io.Discard)}
	for _, opt := range opts {
		opt(&o)
	}

	if err := validate(&d); err != nil {
		return nil, err
	}

	segments := Segments(d.Bounds, d.Fact, d.Deviation)
	split := Split(segments, d.Fact, d.Deviation)
	if d.ZeroOn == Right {
		reverse(segments)
		reverse(split)
	}

	g := &Geometry{
		Dial:     d,
		Segments: segments,
		Arcs:     Layout(segments),
		FactArcs: Layout(split),
	}
	angle, found := factAngle(g)
	if !found {
		o.logger.Warn("pointer angle not found", "dial", d.Name, "fact", d.Fact, "deviation", d.Deviation)
	}
	g.Pointer = PointerAt(angle, d.ZeroOn)
	g.Pointer.Found = found
	return g, nil
}

func validate(d *Dial) error {
	zero, err := ParseZeroOn(string(d.ZeroOn))
	if err != nil {
		return err
	}
	d.ZeroOn = zero

	if len(d.Bounds) == 0 {
		return errors.New(errors.ErrCodeInvalidInput, "dial %q has no bounds", d.Name)
	}
	if !finite(d.Fact) || !finite(d.Deviation) {
		return errors.New(errors.ErrCodeInvalidData, "dial %q: fact and deviation must be finite", d.Name)
	}
	prev := math.Inf(-1)
	for i, b := range d.Bounds {
		if !finite(b.Value) {
			return errors.New(errors.ErrCodeInvalidData, "dial %q: bound %d is not finite", d.Name, i)
		}
		if b.Value < prev {
			return errors.New(errors.ErrCodeInvalidData, "dial %q: bound %d (%g) is below bound %d (%g)", d.Name, i, b.Value, i-1, prev)
		}
		prev = b.Value
	}
	return nil
}

// Segments converts cumulative bounds into relative segments and marks the
// first bound above fact active, when fact+deviation is positive.
func Segments(bounds []Bound, fact, deviation float64) []Segment {
	out := make([]Segment, len(bounds))
	prev, found := 0.0, false
	for i, b := range bounds {
		out[i] = Segment{Color: b.Color, Value: b.Value - prev, Label: b.Value}
		if !found && b.Value > fact && fact+deviation > 0 {
			out[i].IsActive = true
			found = true
		}
		prev = b.Value
	}
	return out
}

// Split replaces the active segment by a fact piece and a remainder whose
// sizes add up to the active segment's size.
func Split(segments []Segment, fact, deviation float64) []Segment {
	out := make([]Segment, 0, len(segments)+1)
	for _, s := range segments {
		if !s.IsActive {
			out = append(out, s)
			continue
		}
		lower := s.Label - s.Value
		var piece float64
		switch {
		case deviation > 0:
			piece = math.Min(deviation, s.Value)
		case deviation == 0:
			piece = fact - lower
		default:
			piece = math.Min(-deviation, s.Value)
		}
		piece = math.Max(0, math.Min(piece, s.Value))

		f := s
		f.Value, f.Label, f.IsFact = piece, fact, true
		rest := s
		rest.Value = s.Value - piece
		out = append(out, f, rest)
	}
	return out
}

// Layout distributes segments over [-DisplayAngle·π, DisplayAngle·π] in
// proportion to their sizes. Negative sizes count as zero.
func Layout(segments []Segment) []Arc {
	start, end := -DisplayAngle*math.Pi, DisplayAngle*math.Pi
	total := 0.0
	for _, s := range segments {
		total += math.Max(0, s.Value)
	}
	k := 0.0
	if total > 0 {
		k = (end - start) / total
	}

	arcs := make([]Arc, len(segments))
	a := start
	for i, s := range segments {
		next := a + math.Max(0, s.Value)*k
		arcs[i] = Arc{Segment: s, Start: a, End: next}
		a = next
	}
	return arcs
}

// factAngle returns the edge of the fact arc facing away from zero, or an
// extreme of the dial for readings outside the bounds.
func factAngle(g *Geometry) (float64, bool) {
	left := g.Dial.ZeroOn != Right
	if a, ok := g.FactArc(); ok {
		if left {
			return a.End, true
		}
		return a.Start, true
	}

	arcs := g.FactArcs
	if len(arcs) == 0 {
		return 0, false
	}
	first, last := arcs[0], arcs[len(arcs)-1]
	reading := g.Dial.Fact + g.Dial.Deviation
	switch {
	case reading > maxBound(g.Dial.Bounds):
		if left {
			return last.End, true
		}
		return first.Start, true
	case reading < 0:
		if left {
			return first.Start, true
		}
		return last.End, true
	}
	return 0, false
}

// PointerAt derives the pointer arc start and rotation for a fact angle.
func PointerAt(angle float64, zero ZeroOn) Pointer {
	deg := angle * WorkAreaDeg / math.Pi
	dl := float64(WorkAreaDeg - AxisDeviation)
	p := Pointer{Angle: angle}
	if zero != Right {
		dx := deg + dl
		if dx <= WorkAreaDeg {
			p.Start, p.Rotate = -DisplayAngle, dx
		} else {
			p.Start, p.Rotate = -DisplayAngle+(dx-WorkAreaDeg)/WorkAreaDeg, WorkAreaDeg
		}
		return p
	}
	dx := deg - dl
	if dx >= -WorkAreaDeg {
		p.Start, p.Rotate = DisplayAngle, dx
	} else {
		p.Start, p.Rotate = DisplayAngle+(dx+WorkAreaDeg)/WorkAreaDeg, -WorkAreaDeg
	}
	return p
}

func maxBound(bounds []Bound) float64 {
	m := math.Inf(-1)
	for _, b := range bounds {
		m = math.Max(m, b.Value)
	}
	return m
}

func reverse(s []Segment) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
