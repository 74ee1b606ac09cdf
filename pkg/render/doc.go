// Package render groups the output side of chartkit.
//
//   - [theme]: fonts and chrome colors shared by charts, gauges and sinks
//   - [sink]: scene serialization to SVG, JSON, PDF and PNG
//
// PDF and PNG are converted from SVG with the external rsvg-convert tool
// (from librsvg):
//
//	svg := sink.RenderSVG(root)
//	pdf, err := sink.ToPDF(svg)
//	png, err := sink.ToPNG(svg, 2.0) // 2x scale
//
// [theme]: github.com/matzehuels/chartkit/pkg/render/theme
// [sink]: github.com/matzehuels/chartkit/pkg/render/sink
package render
