package scale

import (
	"math"
	"time"

	"github.com/aclements/go-moremath/scale"
)

// Time is a continuous scale over Unix milliseconds.
type Time struct {
	s      scale.Linear
	lo, hi float64
}

// NewTime creates a time scale mapping [min, max] (Unix ms) onto [lo, hi].
func NewTime(min, max, lo, hi float64) *Time {
	return &Time{s: scale.Linear{Min: min, Max: max}, lo: lo, hi: hi}
}

func (t *Time) Kind() Kind { return Temporal }

func (t *Time) Map(v float64) float64 {
	return t.lo + t.s.Map(v)*(t.hi-t.lo)
}

func (t *Time) Invert(px float64) float64 {
	if t.hi == t.lo {
		return t.s.Min
	}
	return t.s.Unmap((px - t.lo) / (t.hi - t.lo))
}

func (t *Time) Range() (float64, float64)  { return t.lo, t.hi }
func (t *Time) Domain() (float64, float64) { return t.s.Min, t.s.Max }
func (t *Time) Empty() bool                { return false }

// Ticks returns at most n ticks aligned to the finest calendar interval
// that fits.
func (t *Time) Ticks(n int) []float64 {
	iv, ok := chooseInterval(t.s.Min, t.s.Max, n)
	if !ok {
		return nil
	}
	return iv.ticks(t.s.Min, t.s.Max)
}

// Nice floors the minimum and ceils the maximum to the tick interval
// chosen for n ticks.
func (t *Time) Nice(n int) {
	iv, ok := chooseInterval(t.s.Min, t.s.Max, n)
	if !ok {
		return
	}
	t.s.Min = iv.floor(t.s.Min)
	t.s.Max = iv.ceil(t.s.Max)
}

// interval is a tick step. Fixed intervals step by a duration in ms;
// calendar intervals step by months.
type interval struct {
	ms     float64
	months int
}

const (
	msSecond = 1000.0
	msMinute = 60 * msSecond
	msHour   = 60 * msMinute
	msDay    = 24 * msHour
	msWeek   = 7 * msDay
	msMonth  = 30 * msDay
	msYear   = 365 * msDay
)

var intervals = []interval{
	{ms: 1}, {ms: 2}, {ms: 5}, {ms: 10}, {ms: 20}, {ms: 50},
	{ms: 100}, {ms: 200}, {ms: 500},
	{ms: msSecond}, {ms: 5 * msSecond}, {ms: 15 * msSecond}, {ms: 30 * msSecond},
	{ms: msMinute}, {ms: 5 * msMinute}, {ms: 15 * msMinute}, {ms: 30 * msMinute},
	{ms: msHour}, {ms: 3 * msHour}, {ms: 6 * msHour}, {ms: 12 * msHour},
	{ms: msDay}, {ms: 2 * msDay}, {ms: msWeek},
	{months: 1}, {months: 3},
	{months: 12}, {months: 24}, {months: 60}, {months: 120},
	{months: 240}, {months: 600}, {months: 1200},
}

func (iv interval) approx() float64 {
	if iv.months > 0 {
		return float64(iv.months) * msMonth
	}
	return iv.ms
}

func chooseInterval(min, max float64, n int) (interval, bool) {
	if n < 1 || !(max > min) {
		return interval{}, false
	}
	span := max - min
	for _, iv := range intervals {
		if span/iv.approx() <= float64(n) {
			return iv, true
		}
	}
	return intervals[len(intervals)-1], true
}

func (iv interval) floor(v float64) float64 {
	if iv.months == 0 {
		if iv.ms == msWeek {
			return floorWeek(v)
		}
		return math.Floor(v/iv.ms) * iv.ms
	}
	t := time.UnixMilli(int64(math.Floor(v))).UTC()
	m := (t.Year()*12 + int(t.Month()) - 1)
	m -= mod(m, iv.months)
	return float64(time.Date(m/12, time.Month(m%12+1), 1, 0, 0, 0, 0, time.UTC).UnixMilli())
}

func (iv interval) ceil(v float64) float64 {
	f := iv.floor(v)
	if f >= v {
		return f
	}
	return iv.next(f)
}

func (iv interval) next(v float64) float64 {
	if iv.months == 0 {
		return v + iv.ms
	}
	t := time.UnixMilli(int64(v)).UTC()
	return float64(t.AddDate(0, iv.months, 0).UnixMilli())
}

func (iv interval) ticks(min, max float64) []float64 {
	var out []float64
	for v := iv.ceil(min); v <= max; v = iv.next(v) {
		out = append(out, v)
	}
	return out
}

// floorWeek floors v to the preceding Sunday midnight UTC.
func floorWeek(v float64) float64 {
	day := math.Floor(v / msDay)
	// 1970-01-01 was a Thursday, four days after Sunday.
	return (day - float64(mod(int(day)+4, 7))) * msDay
}

func mod(a, b int) int {
	return ((a % b) + b) % b
}
