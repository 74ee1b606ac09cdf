package layer

import (
	"math"

	"github.com/matzehuels/chartkit/pkg/scene"
)

// Area is a [Line] whose region down to zero is filled. The fill and line
// are clipped to the plot area.
type Area struct {
	Line

	// FillOpacity of the area below the line.
	FillOpacity float64
}

// NewArea creates an area layer.
func NewArea(secondaryAxis string, data Dataset, opts ...Option) *Area {
	l := NewLine(secondaryAxis, data, opts...)
	l.Marker = false
	return &Area{Line: *l, FillOpacity: 0.3}
}

func (a *Area) Kind() string { return "area" }

func (a *Area) Render(target *scene.Node, ctx Context) {
	a.draw(a.begin(target, ctx, a.Kind()))
}

func (a *Area) ReRender() {
	if a.restart() {
		a.draw(a.group)
	}
}

// ClipID returns the id of the layer's clip path.
func (a *Area) ClipID() string { return a.id + "-clip" }

func (a *Area) draw(g *scene.Node) {
	ctx := a.ctx
	g.Hidden = a.hidden[0]
	g.ClipRect(a.ClipID(), 0, 0, ctx.Width, ctx.Height)

	body := g.Group("area-body").WithClip(a.ClipID())
	pts := a.points()
	baseline := math.Max(0, math.Min(ctx.Height, ctx.Y(0)))
	fill := body.Path(a.Curve.Area(pts, baseline)).WithFill(a.color(0)).WithClass(seriesClass(0), "area")
	fill.Style.FillOpacity = a.FillOpacity
	a.stroke(body, pts)
}
