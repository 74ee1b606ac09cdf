package scale

import (
	"fmt"
	"math"
	"strings"
)

// Kind selects the scale family.
type Kind int

// Scale kinds.
const (
	Numeric Kind = iota
	Temporal
	Categorical
)

// String returns the kind name.
func (k Kind) String() string {
	switch k {
	case Numeric:
		return "numeric"
	case Temporal:
		return "temporal"
	case Categorical:
		return "categorical"
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind resolves a kind name. "number", "time" and "enum" are accepted
// as aliases.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "numeric", "number", "linear":
		return Numeric, nil
	case "temporal", "time":
		return Temporal, nil
	case "categorical", "category", "enum", "band":
		return Categorical, nil
	}
	return Numeric, fmt.Errorf("unknown scale kind %q", s)
}

// Scale maps domain values to pixels.
//
// Categorical scales take the band index as their domain value.
type Scale interface {
	Kind() Kind
	// Map converts a domain value to a pixel position.
	Map(v float64) float64
	// Invert converts a pixel position back to a domain value.
	Invert(px float64) float64
	// Range returns the pixel range as given to Build.
	Range() (lo, hi float64)
	// Domain returns the resolved (possibly nice-rounded) domain.
	Domain() (min, max float64)
	// Ticks returns at most n tick positions in domain units.
	Ticks(n int) []float64
	// Empty reports whether the scale was built from a degenerate domain.
	Empty() bool
}

// Domain is the input extent of a scale.
type Domain struct {
	Min, Max float64
	Labels   []string // categorical only
}

// Extent returns the domain spanning values, ignoring NaN and infinities.
// The result is degenerate when no finite value is present.
func Extent(values ...float64) Domain {
	d := Domain{Min: math.NaN(), Max: math.NaN()}
	for _, v := range values {
		d = d.Include(v)
	}
	return d
}

// Include widens the domain to contain v.
func (d Domain) Include(v float64) Domain {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return d
	}
	if math.IsNaN(d.Min) || v < d.Min {
		d.Min = v
	}
	if math.IsNaN(d.Max) || v > d.Max {
		d.Max = v
	}
	return d
}

// Union returns the smallest domain containing d and o.
func (d Domain) Union(o Domain) Domain {
	return d.Include(o.Min).Include(o.Max)
}

// Degenerate reports whether d cannot produce a proper continuous scale.
func (d Domain) Degenerate() bool {
	return math.IsNaN(d.Min) || math.IsNaN(d.Max) || d.Min >= d.Max
}

type options struct {
	nice  bool
	ticks int
}

// Option configures [Build].
type Option func(*options)

// WithNice toggles nice rounding of continuous domains. It is on by default.
func WithNice(nice bool) Option {
	return func(o *options) { o.nice = nice }
}

// WithTicks sets the tick count nice rounding aims for. Defaults to 10.
func WithTicks(n int) Option {
	return func(o *options) {
		if n > 0 {
			o.ticks = n
		}
	}
}

// Build resolves a scale of the given kind mapping d onto [lo, hi].
func Build(kind Kind, d Domain, lo, hi float64, opts ...Option) Scale {
	o := options{nice: true, ticks: 10}
	for _, opt := range opts {
		opt(&o)
	}

	switch kind {
	case Categorical:
		if len(d.Labels) == 0 {
			return &Collapsed{kind: kind, lo: lo, hi: hi}
		}
		return NewBand(d.Labels, lo, hi)
	case Temporal:
		if d.Degenerate() {
			return &Collapsed{kind: kind, lo: lo, hi: hi}
		}
		t := NewTime(d.Min, d.Max, lo, hi)
		if o.nice {
			t.Nice(o.ticks)
		}
		return t
	default:
		if d.Degenerate() {
			return &Collapsed{kind: Numeric, lo: lo, hi: hi}
		}
		l := NewLinear(d.Min, d.Max, lo, hi)
		if o.nice {
			l.Nice(o.ticks)
		}
		return l
	}
}

// Collapsed is the scale of a degenerate domain. It maps every value to the
// start of its range and produces no ticks.
type Collapsed struct {
	kind   Kind
	lo, hi float64
}

func (c *Collapsed) Kind() Kind                 { return c.kind }
func (c *Collapsed) Map(float64) float64        { return c.lo }
func (c *Collapsed) Invert(float64) float64     { return math.NaN() }
func (c *Collapsed) Range() (float64, float64)  { return c.lo, c.hi }
func (c *Collapsed) Domain() (float64, float64) { return math.NaN(), math.NaN() }
func (c *Collapsed) Ticks(int) []float64        { return nil }
func (c *Collapsed) Empty() bool                { return true }
