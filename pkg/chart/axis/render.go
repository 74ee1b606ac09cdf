package axis

import (
	"github.com/matzehuels/chartkit/pkg/render/theme"
	"github.com/matzehuels/chartkit/pkg/scene"
)

// Render draws the axis line, ticks and labels into target. The plot area
// spans (0,0)-(plotW,plotH) in target coordinates.
func (a *Axis) Render(target *scene.Node, plotW, plotH float64, th *theme.Theme) *scene.Node {
	g := target.Group("axis", "axis-"+string(a.Position))
	g.ID = "axis-" + a.Name
	g.SetData("axis", a.Name)

	lo, hi := a.Scale.Range()
	switch a.Position {
	case Bottom:
		g.Translate(0, plotH)
	case Left:
		g.Translate(-a.Offset, 0)
	case Right:
		g.Translate(plotW+a.Offset, 0)
	}

	if a.Position.Horizontal() {
		g.Line(lo, 0, hi, 0).WithStroke(th.AxisColor, 1)
	} else {
		g.Line(0, lo, 0, hi).WithStroke(th.AxisColor, 1)
	}

	dir := 1.0
	if a.Position == Top || a.Position == Left {
		dir = -1
	}
	for _, t := range a.Ticks {
		var label *scene.Node
		if a.Position.Horizontal() {
			g.Line(t.Pos, 0, t.Pos, dir*tickSize).WithStroke(th.AxisColor, 1)
			y := dir * (tickSize + tickMargin)
			label = g.Text(t.Pos, y, t.Label)
			label.Style.Anchor = "middle"
			if dir > 0 {
				label.Style.Baseline = "hanging"
			}
		} else {
			g.Line(0, t.Pos, dir*tickSize, t.Pos).WithStroke(th.AxisColor, 1)
			label = g.Text(dir*(tickSize+tickMargin), t.Pos, t.Label)
			label.Style.Baseline = "middle"
			if dir < 0 {
				label.Style.Anchor = "end"
			}
		}
		label.WithFill(th.TextColor).WithClass("tick-label")
		label.Style.FontSize = th.FontSize
	}

	if a.Title != "" {
		a.renderTitle(g, lo, hi, th)
	}
	return g
}

func (a *Axis) renderTitle(g *scene.Node, lo, hi float64, th *theme.Theme) {
	mid := (lo + hi) / 2
	var t *scene.Node
	switch a.Position {
	case Bottom:
		t = g.Text(mid, 2*(tickSize+tickMargin)+th.FontSize, a.Title)
	case Top:
		t = g.Text(mid, -2*(tickSize+tickMargin)-th.FontSize, a.Title)
	case Left:
		t = g.Text(0, 0, a.Title).Translate(-Width+th.FontSize, mid)
		t.Transform.Rotate = -90
	default:
		t = g.Text(0, 0, a.Title).Translate(Width-th.FontSize, mid)
		t.Transform.Rotate = 90
	}
	t.Style.Anchor = "middle"
	t.Style.FontSize = th.FontSize
	t.WithFill(th.MutedText).WithClass("axis-title")
}

// RenderGrid draws grid lines across the whole plot at every tick. Grid
// lines carry no labels.
func (a *Axis) RenderGrid(target *scene.Node, plotW, plotH float64, th *theme.Theme) *scene.Node {
	g := target.Group("grid", "grid-"+a.Name)
	for _, t := range a.Ticks {
		if a.Position.Horizontal() {
			g.Line(t.Pos, 0, t.Pos, plotH).WithStroke(th.GridColor, 1)
		} else {
			g.Line(0, t.Pos, plotW, t.Pos).WithStroke(th.GridColor, 1)
		}
	}
	return g
}
