// Package axis turns axis declarations and resolved scales into ticks,
// labels and drawn axis chrome.
//
// # Overview
//
// A chart declares its axes with [Declaration] values: a unique name, a
// scale kind, a side of the plot and optional explicit bounds. Exactly one
// axis is primary and carries the independent variable shared by every
// layer. [Validate] enforces those rules.
//
// Each draw pass the chart composer resolves a scale per axis and calls
// [Build], which picks the tick count (declared, or one tick per 80 pixels
// of canvas) and formats labels. Temporal axes use [TimeFormat], which
// chooses the coarsest calendar unit that still distinguishes a tick, so
// labels switch between milliseconds, clock times, days, months and years
// as the visible range changes.
package axis
