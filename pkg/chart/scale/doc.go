// Package scale maps data domains to pixel ranges.
//
// # Overview
//
// [Build] resolves a [Scale] for one of three kinds:
//
//   - [Numeric]: a linear scale backed by go-moremath's scale.Linear, with
//     "nice" rounding that only ever expands the data extent outward.
//   - [Temporal]: a linear scale over Unix milliseconds with calendar-aware
//     ticks (seconds, minutes, days, months, years).
//   - [Categorical]: a band scale dividing the range into equal slots, one
//     per label, in first-seen order.
//
// Degenerate domains (no data, a single point, NaN bounds) resolve to a
// [Collapsed] scale that maps every value to the start of its range. No
// scale operation panics on empty input, so charts with no data still draw
// their frame.
//
// Scales are cheap values rebuilt on every draw pass; they are never cached
// across canvas resizes.
package scale
