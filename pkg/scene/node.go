package scene

import (
	"slices"
	"strconv"
)

// Kind identifies the primitive a [Node] draws.
type Kind string

// Node kinds.
const (
	KindRoot     Kind = "svg"
	KindGroup    Kind = "g"
	KindRect     Kind = "rect"
	KindPath     Kind = "path"
	KindText     Kind = "text"
	KindLine     Kind = "line"
	KindCircle   Kind = "circle"
	KindClipPath Kind = "clipPath"
	KindTitle    Kind = "title"
)

// Style holds presentation attributes. Zero values are omitted by sinks.
type Style struct {
	Fill        string  `json:"fill,omitempty"`
	FillOpacity float64 `json:"fill_opacity,omitempty"`
	Stroke      string  `json:"stroke,omitempty"`
	StrokeWidth float64 `json:"stroke_width,omitempty"`
	Dash        string  `json:"dash,omitempty"`
	Opacity     float64 `json:"opacity,omitempty"`
	FontSize    float64 `json:"font_size,omitempty"`
	FontWeight  string  `json:"font_weight,omitempty"`
	Anchor      string  `json:"anchor,omitempty"`
	Baseline    string  `json:"baseline,omitempty"`
}

// Transform is a translation followed by a rotation in degrees.
type Transform struct {
	TX     float64 `json:"tx,omitempty"`
	TY     float64 `json:"ty,omitempty"`
	Rotate float64 `json:"rotate,omitempty"`
}

// IsZero reports whether t is the identity transform.
func (t Transform) IsZero() bool { return t == Transform{} }

// Node is one element of the scene tree.
//
// Geometry fields are interpreted per kind: rectangles use X, Y, W, H;
// lines run from (X, Y) to (X2, Y2); circles are centered on (X, Y) with
// radius R; text and title nodes carry Content, with text anchored at
// (X, Y). Root nodes use W and H as the canvas size.
type Node struct {
	Kind      Kind              `json:"kind"`
	ID        string            `json:"id,omitempty"`
	Class     []string          `json:"class,omitempty"`
	X         float64           `json:"x,omitempty"`
	Y         float64           `json:"y,omitempty"`
	W         float64           `json:"w,omitempty"`
	H         float64           `json:"h,omitempty"`
	X2        float64           `json:"x2,omitempty"`
	Y2        float64           `json:"y2,omitempty"`
	R         float64           `json:"r,omitempty"`
	D         string            `json:"d,omitempty"`
	Content   string            `json:"text,omitempty"`
	Style     Style             `json:"style,omitzero"`
	Transform Transform         `json:"transform,omitzero"`
	ClipPath  string            `json:"clip_path,omitempty"`
	Hidden    bool              `json:"hidden,omitempty"`
	Data      map[string]string `json:"data,omitempty"`
	Children  []*Node           `json:"children,omitempty"`
}

// NewRoot creates the root of a scene with the given canvas size.
func NewRoot(width, height float64) *Node {
	return &Node{Kind: KindRoot, W: width, H: height}
}

// Append adds children to n and returns n.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

func (n *Node) add(c *Node) *Node {
	n.Children = append(n.Children, c)
	return c
}

// Group appends a group with the given classes.
func (n *Node) Group(class ...string) *Node {
	return n.add(&Node{Kind: KindGroup, Class: class})
}

// Rect appends a rectangle.
func (n *Node) Rect(x, y, w, h float64) *Node {
	return n.add(&Node{Kind: KindRect, X: x, Y: y, W: w, H: h})
}

// Path appends a path with data d.
func (n *Node) Path(d string) *Node {
	return n.add(&Node{Kind: KindPath, D: d})
}

// Text appends a text element anchored at (x, y).
func (n *Node) Text(x, y float64, s string) *Node {
	return n.add(&Node{Kind: KindText, X: x, Y: y, Content: s})
}

// Line appends a straight line.
func (n *Node) Line(x1, y1, x2, y2 float64) *Node {
	return n.add(&Node{Kind: KindLine, X: x1, Y: y1, X2: x2, Y2: y2})
}

// Circle appends a circle.
func (n *Node) Circle(cx, cy, r float64) *Node {
	return n.add(&Node{Kind: KindCircle, X: cx, Y: cy, R: r})
}

// ClipRect appends a clip path holding a single rectangle and returns the
// clip path node. Reference it from other nodes with [Node.WithClip].
func (n *Node) ClipRect(id string, x, y, w, h float64) *Node {
	clip := n.add(&Node{Kind: KindClipPath, ID: id})
	clip.Rect(x, y, w, h)
	return clip
}

// Title appends a tooltip title element.
func (n *Node) Title(s string) *Node {
	return n.add(&Node{Kind: KindTitle, Content: s})
}

// WithID sets the node id.
func (n *Node) WithID(id string) *Node { n.ID = id; return n }

// WithClass adds classes to the node.
func (n *Node) WithClass(class ...string) *Node {
	for _, c := range class {
		if !n.HasClass(c) {
			n.Class = append(n.Class, c)
		}
	}
	return n
}

// WithFill sets the fill color.
func (n *Node) WithFill(color string) *Node { n.Style.Fill = color; return n }

// WithStroke sets the stroke color and width.
func (n *Node) WithStroke(color string, width float64) *Node {
	n.Style.Stroke = color
	n.Style.StrokeWidth = width
	return n
}

// WithStyle replaces the node style.
func (n *Node) WithStyle(s Style) *Node { n.Style = s; return n }

// Translate sets the node translation.
func (n *Node) Translate(x, y float64) *Node {
	n.Transform.TX, n.Transform.TY = x, y
	return n
}

// WithClip references a clip path by id.
func (n *Node) WithClip(id string) *Node { n.ClipPath = id; return n }

// SetData attaches a data attribute, rendered as data-<key> in SVG.
func (n *Node) SetData(key, value string) *Node {
	if n.Data == nil {
		n.Data = make(map[string]string)
	}
	n.Data[key] = value
	return n
}

// SetDataFloat attaches a numeric data attribute.
func (n *Node) SetDataFloat(key string, v float64) *Node {
	return n.SetData(key, strconv.FormatFloat(v, 'f', -1, 64))
}

// HasClass reports whether n carries class c.
func (n *Node) HasClass(c string) bool {
	return slices.Contains(n.Class, c)
}

// Clear removes every child of n.
func (n *Node) Clear() { n.Children = nil }

// Walk visits n and its descendants depth-first. Returning false from fn
// skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// Find returns every descendant (including n) carrying class c, in tree order.
func (n *Node) Find(c string) []*Node {
	var out []*Node
	n.Walk(func(x *Node) bool {
		if x.HasClass(c) {
			out = append(out, x)
		}
		return true
	})
	return out
}

// FindID returns the first node with the given id, or nil.
func (n *Node) FindID(id string) *Node {
	var found *Node
	n.Walk(func(x *Node) bool {
		if found != nil {
			return false
		}
		if x.ID == id {
			found = x
			return false
		}
		return true
	})
	return found
}

// Remove deletes every descendant carrying class c and returns how many
// were removed.
func (n *Node) Remove(c string) int {
	removed := 0
	kept := n.Children[:0]
	for _, child := range n.Children {
		if child.HasClass(c) {
			removed++
			continue
		}
		removed += child.Remove(c)
		kept = append(kept, child)
	}
	clear(n.Children[len(kept):])
	n.Children = kept
	return removed
}

// SetHidden hides or shows every node carrying class c.
func (n *Node) SetHidden(c string, hidden bool) int {
	nodes := n.Find(c)
	for _, x := range nodes {
		x.Hidden = hidden
	}
	return len(nodes)
}

// Count returns the number of nodes of kind k in the tree rooted at n.
func (n *Node) Count(k Kind) int {
	count := 0
	n.Walk(func(x *Node) bool {
		if x.Kind == k {
			count++
		}
		return true
	})
	return count
}
