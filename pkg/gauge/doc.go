// Package gauge computes and draws dial gauges.
//
// # Overview
//
// A [Dial] is a single reading (the fact) shown against ordered bound
// zones. [Compute] turns the dial into a [Geometry]: bound values become
// relative segment sizes, the zone containing the fact is split so the
// fact has its own arc, every segment is laid out over a 270° span and
// the pointer angle is derived from the fact arc. [Draw] renders the
// geometry into a scene node.
//
//	g, err := gauge.Compute(gauge.Dial{
//	    Name:      "Pressure",
//	    EngUnits:  "bar",
//	    Fact:      70,
//	    Deviation: 5,
//	    Bounds:    []gauge.Bound{{Value: 50, Color: "#2e9e44"}, {Value: 100, Color: "#e15759"}},
//	})
//	if err != nil {
//	    return err
//	}
//	gauge.Draw(root, g, 300, 300, theme.Default())
//
// # Zero Reference
//
// [Dial.ZeroOn] selects which end of the span is zero. With [Right] the
// segments are laid out in reverse so the first bound sits at the right.
//
// # Out of Range Readings
//
// A fact beyond the configured bounds has no fact arc. The pointer is
// pinned to the far extreme when fact+deviation exceeds the largest bound,
// and to the zero extreme when it is negative. Any other miss is logged as
// a warning and the pointer stays at the neutral angle.
package gauge
