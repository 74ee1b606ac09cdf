package sink

import (
	"bytes"
	"fmt"
	"math"
	"slices"
	"strings"

	svg "github.com/ajstarks/svgo"

	"github.com/matzehuels/chartkit/pkg/scene"
)

const interactionCSS = `
    .data-column:hover { fill: rgba(0, 0, 0, 0.04); }
    .data-column-none { fill: transparent; }
    .layer path, .layer rect { transition: opacity 0.2s ease; }`

const interactionJS = `
    document.querySelectorAll('.data-column-none').forEach(col => {
      const line = document.getElementById('data-line-' + col.id);
      if (!line) return;
      col.addEventListener('mouseenter', () => line.style.display = 'inline');
      col.addEventListener('mouseleave', () => line.style.display = 'none');
    });`

// SVGOption configures [RenderSVG].
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	static bool
	css    string
}

// WithStatic omits the interaction stylesheet and script.
func WithStatic() SVGOption { return func(r *svgRenderer) { r.static = true } }

// WithCSS appends rules to the embedded stylesheet.
func WithCSS(css string) SVGOption { return func(r *svgRenderer) { r.css += "\n" + css } }

// RenderSVG writes the scene rooted at root as an SVG document. A nil
// root produces an empty document.
func RenderSVG(root *scene.Node, opts ...SVGOption) []byte {
	r := svgRenderer{}
	for _, opt := range opts {
		opt(&r)
	}
	if root == nil {
		root = scene.NewRoot(0, 0)
	}

	var buf bytes.Buffer
	canvas := svg.New(&buf)
	canvas.Start(px(root.W), px(root.H),
		fmt.Sprintf(`viewBox="0 0 %s %s"`, scene.Num(root.W), scene.Num(root.H)))
	for _, c := range root.Children {
		r.node(canvas, c)
	}
	if !r.static {
		canvas.Style("text/css", interactionCSS+r.css+"\n  ")
		canvas.Script("application/javascript", interactionJS+"\n  ")
	}
	canvas.End()
	return buf.Bytes()
}

func (r *svgRenderer) node(canvas *svg.SVG, n *scene.Node) {
	a := attributes(n)
	switch n.Kind {
	case scene.KindGroup:
		canvas.Group(a...)
		r.children(canvas, n)
		canvas.Gend()
	case scene.KindClipPath:
		canvas.ClipPath(a...)
		r.children(canvas, n)
		canvas.ClipEnd()
	case scene.KindTitle:
		canvas.Title(n.Content)
	default:
		// Leaf elements with titles are wrapped so the title stays attached.
		wrapped := len(n.Children) > 0
		if wrapped {
			canvas.Group()
		}
		leaf(canvas, n, a)
		if wrapped {
			r.children(canvas, n)
			canvas.Gend()
		}
	}
}

func (r *svgRenderer) children(canvas *svg.SVG, n *scene.Node) {
	for _, c := range n.Children {
		r.node(canvas, c)
	}
}

func leaf(canvas *svg.SVG, n *scene.Node, a []string) {
	switch n.Kind {
	case scene.KindRect:
		canvas.Rect(px(n.X), px(n.Y), px(math.Max(0, n.W)), px(math.Max(0, n.H)), a...)
	case scene.KindPath:
		canvas.Path(n.D, a...)
	case scene.KindText:
		canvas.Text(px(n.X), px(n.Y), n.Content, a...)
	case scene.KindLine:
		canvas.Line(px(n.X), px(n.Y), px(n.X2), px(n.Y2), a...)
	case scene.KindCircle:
		canvas.Circle(px(n.X), px(n.Y), px(n.R), a...)
	}
}

// attributes returns the SVG attributes of n as name="value" pairs.
func attributes(n *scene.Node) []string {
	var a []string
	add := func(name, value string) {
		if value != "" {
			a = append(a, name+`="`+escape(value)+`"`)
		}
	}
	num := func(name string, v float64) {
		if v != 0 {
			add(name, scene.Num(v))
		}
	}

	add("id", n.ID)
	add("class", strings.Join(n.Class, " "))

	s := n.Style
	add("fill", s.Fill)
	num("fill-opacity", s.FillOpacity)
	add("stroke", s.Stroke)
	num("stroke-width", s.StrokeWidth)
	add("stroke-dasharray", s.Dash)
	num("opacity", s.Opacity)
	num("font-size", s.FontSize)
	add("font-weight", s.FontWeight)
	add("text-anchor", s.Anchor)
	add("dominant-baseline", s.Baseline)

	add("transform", transform(n.Transform))
	if n.ClipPath != "" {
		add("clip-path", "url(#"+n.ClipPath+")")
	}
	if n.Hidden {
		add("display", "none")
	}

	keys := make([]string, 0, len(n.Data))
	for k := range n.Data {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	for _, k := range keys {
		add("data-"+k, n.Data[k])
	}
	return a
}

func transform(t scene.Transform) string {
	if t.IsZero() {
		return ""
	}
	var parts []string
	if t.TX != 0 || t.TY != 0 {
		parts = append(parts, fmt.Sprintf("translate(%s,%s)", scene.Num(t.TX), scene.Num(t.TY)))
	}
	if t.Rotate != 0 {
		parts = append(parts, fmt.Sprintf("rotate(%s)", scene.Num(t.Rotate)))
	}
	return strings.Join(parts, " ")
}

var attrEscaper = strings.NewReplacer(`&`, "&amp;", `<`, "&lt;", `>`, "&gt;", `"`, "&quot;")

func escape(s string) string { return attrEscaper.Replace(s) }

// px rounds a coordinate to whole pixels for the integer svgo API.
func px(v float64) int {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return int(math.Round(v))
}
