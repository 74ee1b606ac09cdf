package layer

import (
	"math"
	"testing"

	"github.com/matzehuels/chartkit/pkg/chart/axis"
	"github.com/matzehuels/chartkit/pkg/chart/scale"
	"github.com/matzehuels/chartkit/pkg/palette"
	"github.com/matzehuels/chartkit/pkg/render/theme"
	"github.com/matzehuels/chartkit/pkg/scene"
)

const (
	plotW = 400.0
	plotH = 300.0
)

// numericContext builds a context with a linear primary axis over [x0, x1]
// and a linear secondary axis over [y0, y1].
func numericContext(x0, x1, y0, y1 float64) Context {
	px := axis.Build(axis.Declaration{Name: "x", Position: axis.Bottom, Primary: true},
		scale.NewLinear(x0, x1, 0, plotW), plotW)
	py := axis.Build(axis.Declaration{Name: "y", Position: axis.Left},
		scale.NewLinear(y0, y1, plotH, 0), plotH)
	return Context{Primary: px, Secondary: py, Width: plotW, Height: plotH, Theme: theme.Default()}
}

func bandContext(labels []string, y0, y1 float64) Context {
	ctx := numericContext(0, 1, y0, y1)
	ctx.Primary = axis.Build(axis.Declaration{Name: "x", Kind: scale.Categorical, Position: axis.Bottom, Primary: true},
		scale.NewBand(labels, 0, plotW), plotW)
	return ctx
}

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func seriesRects(root *scene.Node, i int) []*scene.Node {
	var out []*scene.Node
	for _, n := range root.Find(seriesClass(i)) {
		if n.HasClass("bar") {
			out = append(out, n)
		}
	}
	return out
}

func TestDatasetHelpers(t *testing.T) {
	ds := Dataset{
		{Key: 2, Values: []float64{1, 2}, Label: "b"},
		{Key: 1, Values: []float64{3, 4}, Label: "a"},
		{Key: 3, Values: []float64{5, 6}, Label: "b"},
	}
	if got := ds.Keys(); len(got) != 3 || got[0] != 2 {
		t.Errorf("Keys() = %v", got)
	}
	if got := ds.Labels(); len(got) != 2 || got[0] != "b" || got[1] != "a" {
		t.Errorf("Labels() = %v, want [b a]", got)
	}
	if ds.Channels() != 2 {
		t.Errorf("Channels() = %d, want 2", ds.Channels())
	}
	if d, ok := ds.Find(Lookup{Label: "a", ByLabel: true}); !ok || d.Key != 1 {
		t.Errorf("Find(label a) = %+v, %v", d, ok)
	}
	if d, ok := ds.Find(Lookup{Key: 3}); !ok || d.Label != "b" {
		t.Errorf("Find(key 3) = %+v, %v", d, ok)
	}
	if _, ok := ds.Find(Lookup{Key: 9}); ok {
		t.Error("Find(key 9) found a bin")
	}
	if !math.IsNaN(ds[0].Value(5)) {
		t.Error("Value(out of range) should be NaN")
	}
}

func TestStackValues(t *testing.T) {
	v := []float64{3, 5, 2, 7}
	segs := StackValues(v, nil)
	running := 0.0
	for i, s := range segs {
		if s.Lower != running || s.Upper != running+v[i] {
			t.Errorf("segment %d = %+v, want [%v, %v]", i, s, running, running+v[i])
		}
		running += v[i]
	}

	// Hiding series k lowers the total by exactly v[k] and leaves other
	// heights untouched.
	for k := range v {
		hidden := StackValues(v, func(i int) bool { return i == k })
		total := hidden[len(hidden)-1].Upper
		if !approx(total, running-v[k]) {
			t.Errorf("hide %d: total = %v, want %v", k, total, running-v[k])
		}
		for i, s := range hidden {
			want := v[i]
			if i == k {
				want = 0
			}
			if !approx(s.Height(), want) {
				t.Errorf("hide %d: segment %d height = %v, want %v", k, i, s.Height(), want)
			}
		}
	}
}

func TestNormalizeStack(t *testing.T) {
	tests := []struct {
		name   string
		values []float64
		max    float64
	}{
		{"scale up", []float64{1, 2, 1}, 10},
		{"scale down", []float64{30, 10}, 20},
		{"identity", []float64{5, 5}, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := NormalizeStack(tt.values, tt.max)
			if !approx(sum(got), tt.max) {
				t.Errorf("sum = %v, want %v", sum(got), tt.max)
			}
		})
	}

	zero := NormalizeStack([]float64{0, 0}, 10)
	if zero[0] != 0 || zero[1] != 0 {
		t.Errorf("zero sum = %v, want unscaled zeros", zero)
	}
}

func TestBarsHideSeries(t *testing.T) {
	data := Dataset{
		{Key: 0, Values: []float64{10, 20}},
		{Key: 1, Values: []float64{5, 25}},
	}
	var events [][]HiddenPosition
	b := NewBars("y", data)
	b.Init(palette.New())
	b.OnVisibilityChange(func(hp []HiddenPosition) { events = append(events, hp) })

	root := scene.NewRoot(500, 400)
	b.Render(root, numericContext(0, 2, 0, 50))

	before := seriesRects(root, 0)
	b.SetHidden(1, true)
	b.ReRender()

	for _, r := range seriesRects(root, 1) {
		if r.H != 0 || !r.Hidden {
			t.Errorf("hidden series rect height = %v hidden = %v, want 0 true", r.H, r.Hidden)
		}
	}
	after := seriesRects(root, 0)
	if len(after) != 2 || len(before) != 2 {
		t.Fatalf("series 0 rects = %d, want 2", len(after))
	}
	for i := range after {
		if after[i].H != before[i].H || after[i].Hidden {
			t.Errorf("series 0 rect %d changed: %+v -> %+v", i, before[i], after[i])
		}
	}

	legend := b.LegendData()
	if legend.Options[1].Selected {
		t.Error("LegendData().Options[1].Selected = true, want false")
	}
	if !legend.Options[0].Selected {
		t.Error("LegendData().Options[0].Selected = false, want true")
	}

	if len(events) != 1 || len(events[0]) != 1 || events[0][0] != (HiddenPosition{Position: 1, IsHidden: true}) {
		t.Errorf("visibility events = %v", events)
	}
}

func TestBarsGeometry(t *testing.T) {
	data := Dataset{
		{Key: 0, Values: []float64{10}, Label: "a"},
		{Key: 1, Values: []float64{40}, Label: "b"},
	}
	b := NewBars("y", data)
	b.ShowValues = true
	b.Dynamics = true
	root := scene.NewRoot(500, 400)
	b.Render(root, bandContext([]string{"a", "b"}, 0, 50))

	rects := seriesRects(root, 0)
	if len(rects) != 2 {
		t.Fatalf("rects = %d, want 2", len(rects))
	}
	// Band width 200: bars start a quarter in and are half as wide.
	if rects[0].X != 50 || rects[0].W != 100 {
		t.Errorf("rect x/w = %v/%v, want 50/100", rects[0].X, rects[0].W)
	}
	if !approx(rects[1].H, plotH*40/50) {
		t.Errorf("rect height = %v, want %v", rects[1].H, plotH*40/50)
	}
	if got := len(root.Find("bar-label")); got != 2 {
		t.Errorf("value labels = %d, want 2", got)
	}
	if got := len(root.Find("bar-cap")); got != 2 {
		t.Errorf("caps = %d, want 2", got)
	}
	if got := len(root.Find("dynamics")); got != 1 {
		t.Errorf("dynamics paths = %d, want 1", got)
	}
}

func TestBarsRangeAndTooltip(t *testing.T) {
	data := Dataset{
		{Key: 0, Values: []float64{10, 20}, Label: "a"},
		{Key: 1, Values: []float64{-5, 25}, Label: "b"},
	}
	b := NewBars("y", data, WithNames("Plan"), WithColors("#111111"))
	b.Init(palette.New("#999999"))

	min, max, ok := b.Range()
	if !ok || min != -5 || max != 25+DefaultHeadroom {
		t.Errorf("Range() = %v, %v, %v, want -5, %v", min, max, ok, 25+DefaultHeadroom)
	}

	rows := b.TooltipData(Lookup{Label: "b", ByLabel: true})
	if len(rows) != 2 {
		t.Fatalf("TooltipData() = %d rows, want 2", len(rows))
	}
	if rows[0].Title != "Plan" || rows[0].Color != "#111111" || rows[0].Kind != RowBar {
		t.Errorf("row 0 = %+v", rows[0])
	}
	if rows[1].Title != "Group-1" || rows[1].Color != "#999999" {
		t.Errorf("row 1 = %+v, want defaulted name and palette color", rows[1])
	}
	if b.TooltipData(Lookup{Key: 7}) != nil {
		t.Error("TooltipData(missing) should be nil")
	}

	empty := NewBars("y", nil)
	if _, _, ok := empty.Range(); ok {
		t.Error("empty Range() ok = true")
	}
}

func TestStackedBarsReRender(t *testing.T) {
	data := Dataset{
		{Key: 0, Values: []float64{10, 20, 5}},
		{Key: 1, Values: []float64{5, 5, 5}},
	}
	s := NewStackedBars("y", data)
	root := scene.NewRoot(500, 400)
	ctx := numericContext(0, 2, 0, 100)
	s.Render(root, ctx)

	top := func() float64 {
		segs := s.Stacks()[0]
		return segs[len(segs)-1].Upper
	}
	if top() != 35 {
		t.Fatalf("stack top = %v, want 35", top())
	}

	s.SetHidden(0, true)
	s.ReRender()
	if top() != 25 {
		t.Errorf("stack top after hiding = %v, want 25", top())
	}

	// The second series now starts at the bottom of the stack.
	rects := seriesRects(root, 1)
	if len(rects) != 2 {
		t.Fatalf("series 1 rects = %d, want 2", len(rects))
	}
	if want := ctx.Y(20); !approx(rects[0].Y, want) {
		t.Errorf("series 1 top = %v, want %v", rects[0].Y, want)
	}
	if want := ctx.Y(0) - ctx.Y(20); !approx(rects[0].H, want) {
		t.Errorf("series 1 height = %v, want %v", rects[0].H, want)
	}
	if got := len(root.Find("stack")); got != 2 {
		t.Errorf("stacks after ReRender = %d, want 2 (old ones cleared)", got)
	}

	min, max, _ := s.Range()
	if min != 5 || max != 25+DefaultHeadroom {
		t.Errorf("Range() = [%v, %v], want [5, %v]", min, max, 25+DefaultHeadroom)
	}
}

func TestFullStackedBars(t *testing.T) {
	data := Dataset{
		{Key: 0, Values: []float64{10, 30}},
		{Key: 1, Values: []float64{5, 5}},
		{Key: 2, Values: []float64{0, 0}},
	}
	f := NewFullStackedBars("y", data)
	stacks := f.Stacks()

	for i, segs := range stacks[:2] {
		if top := segs[len(segs)-1].Upper; !approx(top, 40) {
			t.Errorf("bin %d top = %v, want 40", i, top)
		}
	}
	if top := stacks[2][1].Upper; top != 0 {
		t.Errorf("zero bin top = %v, want 0", top)
	}
	if !approx(stacks[1][0].Height(), 20) {
		t.Errorf("bin 1 series 0 = %v, want 20", stacks[1][0].Height())
	}

	min, max, ok := f.Range()
	if !ok || min != 0 || !approx(max, 40) {
		t.Errorf("Range() = %v, %v, %v, want 0, 40", min, max, ok)
	}
	if f.Kind() != "full-stacked" {
		t.Errorf("Kind() = %q", f.Kind())
	}

	f.SetHidden(1, true)
	stacks = f.Stacks()
	for i, segs := range stacks[:2] {
		if top := segs[len(segs)-1].Upper; !approx(top, 40) {
			t.Errorf("after hiding, bin %d top = %v, want 40", i, top)
		}
		if h := segs[1].Height(); h != 0 {
			t.Errorf("after hiding, bin %d hidden segment = %v, want 0", i, h)
		}
	}
	if !approx(stacks[0][0].Height(), 40) {
		t.Errorf("after hiding, bin 0 series 0 = %v, want 40", stacks[0][0].Height())
	}
	if min, max, ok := f.Range(); !ok || min != 0 || !approx(max, 40) {
		t.Errorf("after hiding, Range() = %v, %v, %v, want 0, 40", min, max, ok)
	}
}

func TestLine(t *testing.T) {
	data := Dataset{
		{Key: 0, Values: []float64{1}},
		{Key: 1, Values: []float64{math.NaN()}},
		{Key: 2, Values: []float64{3}},
		{Key: 3, Values: []float64{9}},
	}
	l := NewLine("y", data, WithCaption("Load"))
	l.Init(palette.New("#abcdef"))

	min, max, ok := l.Range()
	if !ok || min != 1 || max != 9 {
		t.Errorf("Range() = %v, %v, %v, want 1, 9", min, max, ok)
	}
	if min, max, _ := l.RangeWithin(1.5, 2.5); min != 3 || max != 3 {
		t.Errorf("RangeWithin() = %v, %v, want 3, 3", min, max)
	}

	root := scene.NewRoot(500, 400)
	l.Render(root, numericContext(0, 3, 0, 10))
	if got := root.Count(scene.KindCircle); got != 1 {
		t.Errorf("markers = %d, want 1", got)
	}
	paths := root.Find("line")
	if len(paths) != 1 {
		t.Fatalf("line paths = %d, want 1", len(paths))
	}

	rows := l.TooltipData(Lookup{Key: 2})
	if len(rows) != 1 || rows[0].Value != 3 || rows[0].Title != "Load" || rows[0].Color != "#abcdef" {
		t.Errorf("TooltipData() = %+v", rows)
	}
	legend := l.LegendData()
	if len(legend.Options) != 0 || legend.Inactive {
		t.Errorf("LegendData() = %+v, want no options and active", legend)
	}
	l.SetHidden(0, true)
	if !l.LegendData().Inactive {
		t.Error("hidden line legend should be inactive")
	}
}

func TestAreaClip(t *testing.T) {
	data := Dataset{
		{Key: 0, Values: []float64{2}},
		{Key: 1, Values: []float64{4}},
	}
	a := NewArea("y", data)
	a.SetID("layer-area")
	a.Curve = scene.CurveMonotone

	root := scene.NewRoot(500, 400)
	a.Render(root, numericContext(0, 1, 0, 5))

	clip := root.FindID("layer-area-clip")
	if clip == nil || clip.Kind != scene.KindClipPath {
		t.Fatalf("clip path = %+v", clip)
	}
	if clip.Children[0].W != plotW || clip.Children[0].H != plotH {
		t.Errorf("clip rect = %+v, want plot size", clip.Children[0])
	}
	fills := root.Find("area")
	if len(fills) != 1 {
		t.Fatalf("area paths = %d, want 1", len(fills))
	}
	if a.Kind() != "area" {
		t.Errorf("Kind() = %q", a.Kind())
	}
	if root.Count(scene.KindCircle) != 0 {
		t.Error("area should not draw an end marker by default")
	}
}

func TestReRenderBeforeRender(t *testing.T) {
	layers := []Layer{
		NewBars("y", nil),
		NewStackedBars("y", nil),
		NewFullStackedBars("y", nil),
		NewLine("y", nil),
		NewArea("y", nil),
	}
	for _, l := range layers {
		l.ReRender() // must not panic
	}
}

func TestWithHidden(t *testing.T) {
	b := NewBars("y", nil, WithHidden(HiddenPosition{Position: 2, IsHidden: true}, HiddenPosition{Position: 0}))
	if !b.IsHidden(2) || b.IsHidden(0) {
		t.Error("WithHidden did not restore visibility")
	}
	vis := b.Visibility()
	if len(vis) != 2 || vis[0].Position != 0 || vis[1].Position != 2 {
		t.Errorf("Visibility() = %v, want ordered by position", vis)
	}
}
