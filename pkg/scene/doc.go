// Package scene is the retained 2D vector surface charts draw into.
//
// # Overview
//
// A scene is a tree of [Node] values: groups, rectangles, paths, text,
// lines, circles and clip paths. Chart code builds the tree once per draw
// pass and mutates it in place for interaction (hiding a series, replacing
// one layer's group). Sinks in pkg/render/sink serialize the finished tree
// to SVG or JSON.
//
// Nodes carry classes so related elements can be found and toggled
// together:
//
//	root := scene.NewRoot(800, 600)
//	g := root.Group("layer")
//	g.Rect(10, 20, 30, 40).WithClass("class-0").WithFill("#4e79a7")
//	root.SetHidden("class-0", true)
//
// # Paths and Curves
//
// [PathBuilder] writes SVG path data with compact number formatting.
// [Curve] strategies (linear, monotone, step) turn point sequences into
// path data for lines and filled areas; NaN coordinates split the path
// into separate runs. [Arc] produces annular sectors for dials.
package scene
