// Package sink serializes a drawn scene to output formats.
//
// # Overview
//
// A "sink" turns the [scene.Node] tree produced by a chart or gauge draw
// pass into bytes. This package provides:
//
//   - SVG: the scene written with github.com/ajstarks/svgo, plus a small
//     stylesheet and script for hover columns and highlight lines
//   - JSON: the scene tree with legend and gauge geometry for external
//     renderers
//   - PDF and PNG: the SVG converted by rsvg-convert
//
// Basic usage:
//
//	root := composer.Draw(ctx)
//	svg := sink.RenderSVG(root)
//	doc, err := sink.RenderJSON(root, sink.WithJSONLegend(coord.Legend()))
//
// # Formats
//
// [ParseFormats] resolves a comma-separated list such as "svg,json" for
// the CLI and the dashboard pipeline; [Render] dispatches on a [Format].
//
// # PDF and PNG Output
//
// [ToPDF] and [ToPNG] require librsvg:
//   - macOS: brew install librsvg
//   - Linux: apt install librsvg2-bin
//
// [scene.Node]: github.com/matzehuels/chartkit/pkg/scene.Node
package sink
