// Package layer defines the rendering contract between the chart composer
// and the data series drawn on it, plus the built-in layer kinds.
//
// # Overview
//
// A [Layer] contributes to the shared coordinate space (its primary-axis
// keys through Domain, its value extent through Range) and then draws
// itself into its own scene group against the scales the composer
// resolved. Layers own their series metadata and per-series visibility;
// the composer never reaches into either.
//
// Built-in kinds:
//
//   - [Bars]: one rectangle per series per bin, optional value labels and a
//     "dynamics" line through the bar tops.
//   - [StackedBars]: cumulative stacks; hidden series keep their slot but
//     contribute zero height (see [StackValues]).
//   - [FullStackedBars]: stacks normalized to the tallest bin (see
//     [NormalizeStack]).
//   - [Line] and [Area]: a single series through (key, value) points using
//     a [scene.Curve]; areas fill down to zero inside a clip path.
//
// # Visibility
//
// Visibility is a map from series index to hidden flag. [Layer.SetHidden]
// updates it and emits the full position/hidden list to the registered
// callback; [Layer.ReRender] then redraws the layer's own group with the
// scales of the last render, recomputing stack offsets so hidden series
// contribute nothing. Nodes of series i carry the class "class-i".
package layer
