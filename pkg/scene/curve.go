package scene

import (
	"fmt"
	"math"
	"strings"
)

// Curve is an interpolation strategy between consecutive points.
type Curve int

// Supported curves.
const (
	CurveLinear   Curve = iota // straight segments
	CurveMonotone              // monotone cubic in x, no overshoot
	CurveStep                  // step-after: horizontal then vertical
)

var curveNames = map[Curve]string{
	CurveLinear:   "linear",
	CurveMonotone: "monotone",
	CurveStep:     "step",
}

// String returns the curve name.
func (c Curve) String() string {
	if s, ok := curveNames[c]; ok {
		return s
	}
	return fmt.Sprintf("Curve(%d)", int(c))
}

// ParseCurve resolves a curve by name. The empty string means linear.
func ParseCurve(name string) (Curve, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "linear":
		return CurveLinear, nil
	case "monotone", "monotonex", "monotone-x":
		return CurveMonotone, nil
	case "step", "stepafter", "step-after":
		return CurveStep, nil
	}
	return CurveLinear, fmt.Errorf("unknown curve %q (want linear, monotone or step)", name)
}

// Line returns path data through pts. Undefined points split the line.
func (c Curve) Line(pts []Point) string {
	var b PathBuilder
	for _, run := range runs(pts) {
		c.trace(&b, run, true)
	}
	return b.String()
}

// Area returns path data for the region between pts and the horizontal
// baseline y0. Undefined points split the area.
func (c Curve) Area(pts []Point, y0 float64) string {
	var b PathBuilder
	for _, run := range runs(pts) {
		c.trace(&b, run, true)
		last, first := run[len(run)-1], run[0]
		b.LineTo(last.X, y0).LineTo(first.X, y0).Close()
	}
	return b.String()
}

func (c Curve) trace(b *PathBuilder, pts []Point, move bool) {
	if move {
		b.MoveTo(pts[0].X, pts[0].Y)
	}
	switch c {
	case CurveStep:
		for i := 1; i < len(pts); i++ {
			b.LineTo(pts[i].X, pts[i-1].Y).LineTo(pts[i].X, pts[i].Y)
		}
	case CurveMonotone:
		if len(pts) < 3 {
			CurveLinear.trace(b, pts, false)
			return
		}
		m := monotoneTangents(pts)
		for i := 0; i+1 < len(pts); i++ {
			p0, p1 := pts[i], pts[i+1]
			dx := (p1.X - p0.X) / 3
			b.CubicTo(p0.X+dx, p0.Y+dx*m[i], p1.X-dx, p1.Y-dx*m[i+1], p1.X, p1.Y)
		}
	default:
		for i := 1; i < len(pts); i++ {
			b.LineTo(pts[i].X, pts[i].Y)
		}
	}
}

// runs splits pts into maximal sequences of defined points.
func runs(pts []Point) [][]Point {
	var out [][]Point
	start := -1
	for i, p := range pts {
		if p.Defined() {
			if start < 0 {
				start = i
			}
			continue
		}
		if start >= 0 {
			out = append(out, pts[start:i])
			start = -1
		}
	}
	if start >= 0 {
		out = append(out, pts[start:])
	}
	return out
}

// monotoneTangents computes Fritsch-Carlson style tangents (Steffen's
// method) that keep the interpolant monotone between data points.
func monotoneTangents(pts []Point) []float64 {
	n := len(pts)
	m := make([]float64, n)
	for i := 1; i < n-1; i++ {
		m[i] = slope3(pts[i-1], pts[i], pts[i+1])
	}
	m[0] = slope2(pts[0], pts[1], m[1])
	m[n-1] = slope2(pts[n-2], pts[n-1], m[n-2])
	return m
}

func slope3(p0, p1, p2 Point) float64 {
	h0, h1 := p1.X-p0.X, p2.X-p1.X
	if h0 == 0 || h1 == 0 {
		return 0
	}
	s0 := (p1.Y - p0.Y) / h0
	s1 := (p2.Y - p1.Y) / h1
	p := (s0*h1 + s1*h0) / (h0 + h1)
	return (sign(s0) + sign(s1)) * math.Min(math.Min(math.Abs(s0), math.Abs(s1)), 0.5*math.Abs(p))
}

func slope2(p0, p1 Point, t float64) float64 {
	h := p1.X - p0.X
	if h == 0 {
		return t
	}
	return (3*(p1.Y-p0.Y)/h - t) / 2
}

func sign(v float64) float64 {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}
