// Package palette allocates series colors for a chart instance.
//
// A [Palette] hands out colors in order, wrapping around when it runs out.
// One palette is created per chart and shared by reference with every layer
// of that chart, so layers that do not declare colors get distinct ones.
// Allocation is not synchronized: a chart is drawn from a single goroutine.
//
// Color arithmetic (generated palettes, highlight shades) uses
// github.com/lucasb-eyer/go-colorful.
package palette

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
)

// Default is the palette used when a chart is created without one.
var Default = []string{
	"#4e79a7", "#f28e2b", "#e15759", "#76b7b2", "#59a14f",
	"#edc948", "#b07aa1", "#ff9da7", "#9c755f", "#bab0ac",
}

// Palette is a ring of colors with a monotonically increasing cursor.
type Palette struct {
	colors []string
	next   int
}

// New creates a palette over colors. An empty list falls back to [Default].
func New(colors ...string) *Palette {
	if len(colors) == 0 {
		colors = Default
	}
	return &Palette{colors: append([]string(nil), colors...), next: -1}
}

// Generate creates a palette of n evenly spaced hues in the HCL space.
func Generate(n int) *Palette {
	if n <= 0 {
		return New()
	}
	colors := make([]string, n)
	for i := range colors {
		h := 360 * float64(i) / float64(n)
		colors[i] = colorful.Hcl(h, 0.55, 0.62).Clamped().Hex()
	}
	return New(colors...)
}

// Next returns the next color. The first call returns the first color.
func (p *Palette) Next() string {
	p.next = (p.next + 1) % len(p.colors)
	return p.colors[p.next]
}

// At returns the color at index i modulo the palette length.
func (p *Palette) At(i int) string {
	n := len(p.colors)
	return p.colors[((i%n)+n)%n]
}

// Len returns the number of colors in the palette.
func (p *Palette) Len() int { return len(p.colors) }

// Reset rewinds the allocation cursor.
func (p *Palette) Reset() { p.next = -1 }

// Lighten blends color toward white by amount in [0,1]. Invalid colors are
// returned unchanged.
func Lighten(color string, amount float64) string {
	c, err := colorful.Hex(color)
	if err != nil {
		return color
	}
	white := colorful.Color{R: 1, G: 1, B: 1}
	return c.BlendLab(white, clamp01(amount)).Clamped().Hex()
}

// Darken blends color toward black by amount in [0,1].
func Darken(color string, amount float64) string {
	c, err := colorful.Hex(color)
	if err != nil {
		return color
	}
	black := colorful.Color{}
	return c.BlendLab(black, clamp01(amount)).Clamped().Hex()
}

// Contrast returns black or white, whichever reads better on color.
func Contrast(color string) string {
	c, err := colorful.Hex(color)
	if err != nil {
		return "#000000"
	}
	l, _, _ := c.Lab()
	if l > 0.6 {
		return "#000000"
	}
	return "#ffffff"
}

func clamp01(v float64) float64 {
	return math.Max(0, math.Min(1, v))
}
