package scale

import (
	"math"

	"github.com/aclements/go-moremath/scale"
)

// Linear is a continuous numeric scale.
type Linear struct {
	s      scale.Linear
	lo, hi float64
}

// NewLinear creates a linear scale mapping [min, max] onto [lo, hi].
func NewLinear(min, max, lo, hi float64) *Linear {
	return &Linear{s: scale.Linear{Min: min, Max: max}, lo: lo, hi: hi}
}

func (l *Linear) Kind() Kind { return Numeric }

// Map converts v to a pixel position. Values outside the domain are
// extrapolated.
func (l *Linear) Map(v float64) float64 {
	return l.lo + l.s.Map(v)*(l.hi-l.lo)
}

// Invert converts a pixel position back to a domain value.
func (l *Linear) Invert(px float64) float64 {
	if l.hi == l.lo {
		return l.s.Min
	}
	return l.s.Unmap((px - l.lo) / (l.hi - l.lo))
}

func (l *Linear) Range() (float64, float64)  { return l.lo, l.hi }
func (l *Linear) Domain() (float64, float64) { return l.s.Min, l.s.Max }
func (l *Linear) Empty() bool                { return false }

// Ticks returns about n ticks inside the domain. Tick spacing is a power
// of ten; when that leaves fewer than three ticks the next finer level is
// used as long as it stays within 2n ticks.
func (l *Linear) Ticks(n int) []float64 {
	if n < 1 {
		return nil
	}
	major, minor := l.s.Ticks(scale.TickOptions{Max: n})
	if len(major) < 3 && len(minor) > len(major) && len(minor) <= 2*n {
		return minor
	}
	return major
}

// Nice expands the domain outward to the tick spacing chosen for n ticks.
// The domain never shrinks.
func (l *Linear) Nice(n int) {
	if n < 1 {
		return
	}
	min, max := l.s.Min, l.s.Max
	l.s.Nice(scale.TickOptions{Max: n})
	// Nice rounds with a relative slack of 1e-10, which can pull a bound
	// lying just short of a tick onto that tick.
	l.s.Min = math.Min(l.s.Min, min)
	l.s.Max = math.Max(l.s.Max, max)
}
