package gauge

import (
	"math"
	"strconv"
	"strings"

	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/render/theme"
	"github.com/matzehuels/chartkit/pkg/scene"
)

// Padding is the gap between the dial and the canvas edge.
const Padding = 20

// Radius ratios relative to the dial radius.
const (
	bgOuter           = 0.8
	labelIn, labelOut = 0.84, 0.88
	pieIn, pieOut     = 0.64, 0.76
	markIn, markOut   = 0.62, 0.78
	pointIn, pointOut = 0.5, 0.6
	factSize, devSize = 0.26, 0.18
	unitsIn           = pieIn * 0.75
)

// Radius returns the dial radius for a w×h canvas.
func Radius(w, h float64) float64 {
	return math.Min(w, h)/2 - Padding
}

// Draw renders g into a new group under target, centered on a w×h canvas.
func Draw(target *scene.Node, g *Geometry, w, h float64, th *theme.Theme) (*scene.Node, error) {
	r := Radius(w, h)
	if r <= 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "canvas %gx%g is too small for a dial", w, h)
	}
	if th == nil {
		th = theme.Default()
	}
	left := g.Dial.ZeroOn != Right

	root := target.Group("gauge").Translate(w/2, h/2)
	root.Group("bg").Path(scene.Arc(0, 0, 0, r*bgOuter, 0, 2*math.Pi)).WithFill(th.DialBack)

	drawText(root, g.Dial, r, th)

	pie := root.Group("pie")
	for _, a := range g.Arcs {
		pie.Path(scene.Arc(0, 0, r*pieIn, r*pieOut, a.Start, a.End)).WithFill(a.Color).WithClass("blur")
	}

	fact := root.Group("pie2")
	for _, a := range g.FactArcs {
		p := fact.Path(scene.Arc(0, 0, r*pieIn, r*pieOut, a.Start, a.End)).WithFill(a.Color)
		if a.IsFact {
			p.WithClass("fact")
		} else {
			p.Hidden = true
		}
	}

	marks := root.Group("marks")
	labels := root.Group("labels")
	for _, a := range g.Arcs {
		ng := a.Start
		if left {
			ng = a.End
		}
		marks.Path(scene.Arc(0, 0, r*markIn, r*markOut, ng, ng+markSpan)).WithFill(a.Color).WithClass("mark")

		lr := r * (labelIn + labelOut) / 2
		t := labels.Text(lr*math.Sin(ng), -lr*math.Cos(ng), FormatValue(a.Label)).WithFill(th.TextColor).WithClass("label")
		t.Style.FontSize = th.FontSize
		t.Style.Anchor = "start"
		if ng < 0 {
			t.Style.Anchor = "end"
		}
	}

	drawPointer(root, g.Pointer, r, th)
	return root, nil
}

func drawText(root *scene.Node, d Dial, r float64, th *theme.Theme) {
	title := root.Text(0, -(r + 8), d.Name).WithFill(th.TextColor).WithClass("title")
	title.Style.Anchor = "middle"
	title.Style.FontSize = th.FontSize + 2

	// Units sit at the centroid of the bottom gap of the dial.
	units := root.Text(0, r*(unitsIn+pieOut)/2, d.EngUnits).WithFill(th.MutedText).WithClass("eng-units")
	units.Style.Anchor = "middle"
	units.Style.FontSize = th.FontSize

	fact := root.Text(0, 0, FormatValue(d.Fact)).WithFill(th.TextColor).WithClass("fact")
	fact.Style.Anchor = "middle"
	fact.Style.FontSize = r * factSize

	dev := root.Text(0, r*factSize, FormatDeviation(d.Deviation)).WithFill(DeviationColor(d.Deviation, th)).WithClass("deviation", DeviationClass(d.Deviation))
	dev.Style.Anchor = "middle"
	dev.Style.FontSize = r * devSize
}

func drawPointer(root *scene.Node, p Pointer, r float64, th *theme.Theme) {
	g := root.Group("pointer")
	arc := g.Path(scene.Arc(0, 0, r*pointIn, r*pointOut, p.StartAngle(), p.EndAngle())).WithFill(th.HighlightColor).WithClass("needle")
	arc.Transform.Rotate = p.Rotate

	tip := g.Path(scene.Arc(0, 0, r*pointIn, r*pointOut, p.StartAngle(), p.extend(pointerMark))).WithFill(th.TextColor).WithClass("mark")
	tip.Transform.Rotate = p.Rotate
}

// FormatValue formats a dial value without a trailing ".0".
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatDeviation formats v with one decimal, dropping a ".0" fraction.
func FormatDeviation(v float64) string {
	s := strconv.FormatFloat(v, 'f', 1, 64)
	return strings.TrimSuffix(s, ".0")
}

// DeviationClass names the sign of v: yellow, grey or green.
func DeviationClass(v float64) string {
	switch {
	case v < 0:
		return "yellow"
	case v == 0:
		return "grey"
	}
	return "green"
}

// DeviationColor returns the theme color for the sign of v.
func DeviationColor(v float64, th *theme.Theme) string {
	switch {
	case v < 0:
		return th.Negative
	case v == 0:
		return th.Zero
	}
	return th.Positive
}
