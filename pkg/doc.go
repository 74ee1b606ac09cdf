// Package pkg provides the core libraries for chartkit interactive charts.
//
// # Overview
//
// chartkit composes layers of bars, stacked bars, lines and areas over
// shared axes, draws gauge dials, and writes the result as SVG with hover
// and legend interactions, as JSON scene exports, or as PDF and PNG. The
// pkg directory is organized into four areas:
//
//  1. Chart engine: [chart], [chart/scale], [chart/axis], [chart/layer],
//     [chart/interact] and [gauge]
//  2. Drawing: [scene], [palette], [render/theme] and [render/sink]
//  3. Infrastructure: [cache], [io], [observability], [errors] and
//     [buildinfo]
//  4. Orchestration: [pipeline] (load, data, render)
//
// # Architecture
//
// The typical data flow:
//
//	dashboard.toml + CSV/XLSX/JSON data
//	         ↓
//	    [pipeline] (decode, validate, import datasets)
//	         ↓
//	    [chart] composer (scales → axes → layers → interactions)
//	         ↓
//	    [scene] tree
//	         ↓
//	    [render/sink] SVG/JSON/PDF/PNG
//
// # Quick Start
//
//	reg := chart.NewRegistry("sales")
//	reg.Register(layer.NewBars("y", data, layer.WithNames("plan", "fact")))
//
//	in := chart.DefaultInput()
//	in.Axes = []axis.Declaration{
//	    {Name: "x", Position: axis.Bottom, Primary: true},
//	    {Name: "y", Position: axis.Left},
//	}
//	c := chart.New(in, reg, nil)
//	svg := sink.RenderSVG(c.Draw(ctx))
//
// Dashboards of several panels go through [pipeline.Runner], which adds
// caching and parallel rendering.
//
// [chart]: github.com/matzehuels/chartkit/pkg/chart
// [chart/scale]: github.com/matzehuels/chartkit/pkg/chart/scale
// [chart/axis]: github.com/matzehuels/chartkit/pkg/chart/axis
// [chart/layer]: github.com/matzehuels/chartkit/pkg/chart/layer
// [chart/interact]: github.com/matzehuels/chartkit/pkg/chart/interact
// [gauge]: github.com/matzehuels/chartkit/pkg/gauge
// [scene]: github.com/matzehuels/chartkit/pkg/scene
// [palette]: github.com/matzehuels/chartkit/pkg/palette
// [render/theme]: github.com/matzehuels/chartkit/pkg/render/theme
// [render/sink]: github.com/matzehuels/chartkit/pkg/render/sink
// [cache]: github.com/matzehuels/chartkit/pkg/cache
// [io]: github.com/matzehuels/chartkit/pkg/io
// [observability]: github.com/matzehuels/chartkit/pkg/observability
// [errors]: github.com/matzehuels/chartkit/pkg/errors
// [buildinfo]: github.com/matzehuels/chartkit/pkg/buildinfo
// [pipeline]: github.com/matzehuels/chartkit/pkg/pipeline
// [pipeline.Runner]: github.com/matzehuels/chartkit/pkg/pipeline#Runner
package pkg
