// Package chart composes axes and data layers into a drawn chart.
//
// # Overview
//
// A [Composer] owns one chart instance: its [Input] (canvas size, margins,
// axis declarations), a [Registry] of layers and the palette layers take
// default colors from. [Composer.Draw] runs a full pass and returns the
// scene:
//
//	Idle -> ComputingScales -> ComputingAxes -> DrawingBackground ->
//	DrawingAxes -> DrawingLayers -> DrawingInteractionColumns -> Idle
//
// Every pass starts from an empty scene, so drawing twice with the same
// input yields the same tree. Data and size changes re-run the whole pass;
// legend toggles redraw only the affected layer through
// [interact.Coordinator].
//
// # Domains
//
// The primary axis spans the keys of every layer, or the labels of the
// first layer when it is categorical. Each secondary axis spans the ranges
// of the layers bound to it. Explicit Min and Max on a declaration win over
// the aggregated values. A brush window set with [Composer.SetWindow]
// narrows the primary domain, and layers implementing [layer.Windowed]
// then report only the values inside the window.
//
// # Errors
//
// Drawing never fails: invalid axis declarations, empty data and layers
// bound to unknown axes degrade to an empty or partial chart and are
// logged. Use [Composer.Validate] to surface declaration errors.
package chart
