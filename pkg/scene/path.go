package scene

import (
	"math"
	"strconv"
	"strings"
)

// Point is a 2D coordinate in canvas space.
type Point struct {
	X, Y float64
}

// Defined reports whether both coordinates are finite numbers.
func (p Point) Defined() bool {
	return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
}

// PathBuilder accumulates SVG path data.
type PathBuilder struct {
	sb strings.Builder
}

// MoveTo starts a new subpath.
func (b *PathBuilder) MoveTo(x, y float64) *PathBuilder { return b.cmd('M', x, y) }

// LineTo draws a straight segment.
func (b *PathBuilder) LineTo(x, y float64) *PathBuilder { return b.cmd('L', x, y) }

// CubicTo draws a cubic Bézier segment.
func (b *PathBuilder) CubicTo(x1, y1, x2, y2, x, y float64) *PathBuilder {
	return b.cmd('C', x1, y1, x2, y2, x, y)
}

// ArcTo draws an elliptical arc segment.
func (b *PathBuilder) ArcTo(rx, ry float64, large, sweep bool, x, y float64) *PathBuilder {
	return b.cmd('A', rx, ry, 0, flag(large), flag(sweep), x, y)
}

// Close closes the current subpath.
func (b *PathBuilder) Close() *PathBuilder {
	b.sb.WriteByte('Z')
	return b
}

// Empty reports whether nothing has been written yet.
func (b *PathBuilder) Empty() bool { return b.sb.Len() == 0 }

// String returns the path data.
func (b *PathBuilder) String() string { return b.sb.String() }

func (b *PathBuilder) cmd(c byte, args ...float64) *PathBuilder {
	b.sb.WriteByte(c)
	for i, a := range args {
		if i > 0 {
			b.sb.WriteByte(',')
		}
		b.sb.WriteString(Num(a))
	}
	return b
}

func flag(v bool) float64 {
	if v {
		return 1
	}
	return 0
}

// Num formats v with at most three decimals and no trailing zeros.
func Num(v float64) string {
	r := math.Round(v*1000) / 1000
	if r == 0 {
		r = 0 // drop negative zero
	}
	return strconv.FormatFloat(r, 'f', -1, 64)
}

// Arc returns the path of an annular sector centered on (cx, cy).
//
// Angles are in radians, measured clockwise from twelve o'clock, so 0 points
// up and π/2 points right. An inner radius of zero yields a pie slice.
func Arc(cx, cy, inner, outer, start, end float64) string {
	if end < start {
		start, end = end, start
	}
	at := func(r, a float64) (float64, float64) {
		return cx + r*math.Sin(a), cy - r*math.Cos(a)
	}
	large := end-start > math.Pi

	var b PathBuilder
	if end-start >= 2*math.Pi-1e-9 {
		// Full ring: two half arcs per radius.
		mid := start + math.Pi
		x0, y0 := at(outer, start)
		x1, y1 := at(outer, mid)
		b.MoveTo(x0, y0).ArcTo(outer, outer, false, true, x1, y1).ArcTo(outer, outer, false, true, x0, y0)
		if inner > 0 {
			x0, y0 = at(inner, start)
			x1, y1 = at(inner, mid)
			b.MoveTo(x0, y0).ArcTo(inner, inner, false, false, x1, y1).ArcTo(inner, inner, false, false, x0, y0)
		}
		return b.Close().String()
	}

	x0, y0 := at(outer, start)
	x1, y1 := at(outer, end)
	b.MoveTo(x0, y0).ArcTo(outer, outer, large, true, x1, y1)
	if inner > 0 {
		x2, y2 := at(inner, end)
		x3, y3 := at(inner, start)
		b.LineTo(x2, y2).ArcTo(inner, inner, large, false, x3, y3)
	} else {
		b.LineTo(cx, cy)
	}
	return b.Close().String()
}
