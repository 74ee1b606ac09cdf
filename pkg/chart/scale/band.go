package scale

import "math"

// Band is a categorical scale that divides its range into equal slots.
// Domain values are band indexes.
type Band struct {
	labels []string
	index  map[string]int
	lo, hi float64
}

// NewBand creates a band scale over labels. Duplicate labels keep their
// first position.
func NewBand(labels []string, lo, hi float64) *Band {
	b := &Band{index: make(map[string]int, len(labels)), lo: lo, hi: hi}
	for _, l := range labels {
		if _, ok := b.index[l]; ok {
			continue
		}
		b.index[l] = len(b.labels)
		b.labels = append(b.labels, l)
	}
	return b
}

func (b *Band) Kind() Kind { return Categorical }

// Bandwidth returns the width of one band. It is negative for inverted
// ranges.
func (b *Band) Bandwidth() float64 {
	if len(b.labels) == 0 {
		return 0
	}
	return (b.hi - b.lo) / float64(len(b.labels))
}

// Map returns the start of band i.
func (b *Band) Map(i float64) float64 {
	return b.lo + i*b.Bandwidth()
}

// Lookup returns the band index of label.
func (b *Band) Lookup(label string) (int, bool) {
	i, ok := b.index[label]
	return i, ok
}

// MapLabel returns the start of the band holding label.
func (b *Band) MapLabel(label string) (float64, bool) {
	i, ok := b.index[label]
	if !ok {
		return 0, false
	}
	return b.Map(float64(i)), true
}

// Invert returns the index of the band containing px, clamped to the
// valid band indexes.
func (b *Band) Invert(px float64) float64 {
	bw := b.Bandwidth()
	if bw == 0 {
		return math.NaN()
	}
	i := math.Floor((px - b.lo) / bw)
	return math.Max(0, math.Min(i, float64(len(b.labels)-1)))
}

// Labels returns the ordered band labels.
func (b *Band) Labels() []string { return b.labels }

// Label returns the label of band i, or "" when out of range.
func (b *Band) Label(i int) string {
	if i < 0 || i >= len(b.labels) {
		return ""
	}
	return b.labels[i]
}

func (b *Band) Range() (float64, float64) { return b.lo, b.hi }

func (b *Band) Domain() (float64, float64) {
	return 0, float64(len(b.labels) - 1)
}

// Ticks returns every band index; categorical axes label each band.
func (b *Band) Ticks(int) []float64 {
	ticks := make([]float64, len(b.labels))
	for i := range ticks {
		ticks[i] = float64(i)
	}
	return ticks
}

func (b *Band) Empty() bool { return len(b.labels) == 0 }
