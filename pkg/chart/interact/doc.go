// Package interact implements chart interaction: hover columns and
// tooltips, legend toggles, the legend flyout and the smart-scroll brush.
//
// # Overview
//
// Interaction works on a drawn chart. [Columns] splits the plot into one
// hit band per primary-axis bin; [RenderColumns] adds them to the scene as
// transparent rectangles. A [Coordinator] answers pointer input against a
// [Source] (implemented by the chart composer):
//
//   - [Coordinator.Hover] collects tooltip rows from every layer for the
//     bin under the pointer and places the tooltip on the half of the
//     canvas the pointer is not in.
//   - [Coordinator.ToggleLegend] flips one series and redraws only the
//     owning layer.
//
// [Flyout] models the legend option panel with its close debounce, and
// [Brush] the range selector that emits [Events.Scroll].
//
// Everything except the flyout timer runs on the caller's goroutine.
package interact
