package layer

// Segment is one series' slice of a stack: [Lower, Upper).
type Segment struct {
	Lower, Upper float64
}

// Height returns Upper - Lower.
func (s Segment) Height() float64 { return s.Upper - s.Lower }

// StackValues accumulates values into segments. Segment i spans
// [sum(values[:i]), sum(values[:i+1])]. Hidden series contribute zero
// height but keep their slot.
func StackValues(values []float64, hidden func(i int) bool) []Segment {
	out := make([]Segment, len(values))
	total := 0.0
	for i, v := range values {
		if hidden != nil && hidden(i) {
			v = 0
		}
		out[i] = Segment{Lower: total, Upper: total + v}
		total += v
	}
	return out
}

// NormalizeStack scales values so they sum to max. A zero sum leaves the
// values unscaled.
func NormalizeStack(values []float64, max float64) []float64 {
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	k := 1.0
	if sum != 0 {
		k = max / sum
	}
	out := make([]float64, len(values))
	for i, v := range values {
		out[i] = v * k
	}
	return out
}

// visible returns a copy of values with hidden series zeroed.
func visible(values []float64, hidden func(i int) bool) []float64 {
	out := make([]float64, len(values))
	for i, v := range values {
		if !hidden(i) {
			out[i] = v
		}
	}
	return out
}
