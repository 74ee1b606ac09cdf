package interact

import (
	"strconv"
	"strings"

	"github.com/matzehuels/chartkit/pkg/chart/axis"
	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/render/theme"
	"github.com/matzehuels/chartkit/pkg/scene"
)

// Mode selects how hover columns align with the data.
type Mode string

// Tooltip modes.
const (
	// ModeBars starts each column at the bin position.
	ModeBars Mode = "bars"
	// ModeLine centers each column on the bin position and highlights a
	// vertical line under the pointer.
	ModeLine Mode = "line"
)

// ParseMode resolves a tooltip mode name. Empty selects [ModeBars].
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "", ModeBars:
		return ModeBars, nil
	case ModeLine:
		return ModeLine, nil
	}
	return "", errors.New(errors.ErrCodeInvalidInput, "unknown tooltip mode %q (want bars or line)", s)
}

// Column is the hit band of one primary-axis bin, in plot coordinates.
type Column struct {
	Index int
	Key   float64
	Label string
	X, W  float64
	// Center is the bin position used for the highlight line.
	Center float64
}

// Contains reports whether px falls inside the column.
func (c Column) Contains(px float64) bool {
	return px >= c.X && px < c.X+c.W
}

// Columns builds one column per bin. The domain is the labels for a
// categorical primary axis and the keys otherwise; every column is
// plotW/len(domain) wide.
func Columns(primary *axis.Axis, keys []float64, labels []string, mode Mode, plotW float64) []Column {
	if primary == nil {
		return nil
	}
	band, isBand := primary.Band()
	n := len(keys)
	if isBand {
		n = len(labels)
	}
	if n == 0 {
		return nil
	}
	w := plotW / float64(n)

	cols := make([]Column, 0, n)
	for i := 0; i < n; i++ {
		c := Column{Index: i, W: w}
		if isBand {
			c.Label = labels[i]
			c.Key = float64(i)
			x, ok := band.MapLabel(labels[i])
			if !ok {
				continue
			}
			c.X = x
		} else {
			c.Key = keys[i]
			c.X = primary.Scale.Map(keys[i])
		}
		c.Center = c.X
		if mode == ModeLine {
			c.X -= w / 2
		}
		cols = append(cols, c)
	}
	return cols
}

// Hit returns the column containing px.
func Hit(cols []Column, px float64) (Column, bool) {
	for _, c := range cols {
		if c.Contains(px) {
			return c, true
		}
	}
	return Column{}, false
}

// Class names used by the column overlay.
const (
	ClassColumns         = "data-columns"
	ClassColumn          = "data-column"
	ClassColumnNone      = "data-column-none"
	ClassLine            = "data-line"
	ClassLineHighlighted = "data-line--highlighted"
)

// LineID returns the id of the highlight line of column i.
func LineID(i int) string { return "data-line-" + strconv.Itoa(i) }

// RenderColumns draws the transparent hit rectangles and the hidden
// highlight lines.
func RenderColumns(target *scene.Node, cols []Column, plotH float64, mode Mode, th *theme.Theme) *scene.Node {
	g := target.Group(ClassColumns)
	class := ClassColumn
	if mode == ModeLine {
		class = ClassColumnNone
	}
	for _, c := range cols {
		r := g.Rect(0, 0, c.W, plotH).Translate(c.X, 0).WithFill("transparent").WithClass(class).WithID(strconv.Itoa(c.Index))
		r.SetDataFloat("key", c.Key)
		if c.Label != "" {
			r.SetData("label", c.Label)
		}
	}
	for _, c := range cols {
		l := g.Line(c.Center, 0, c.Center, plotH).WithStroke(th.HighlightColor, 1).WithClass(ClassLine).WithID(LineID(c.Index))
		l.Style.Dash = "2,2"
		l.Hidden = true
	}
	return g
}
