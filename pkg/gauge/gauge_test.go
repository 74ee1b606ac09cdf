package gauge

import (
	"bytes"
	"math"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/render/theme"
	"github.com/matzehuels/chartkit/pkg/scene"
)

func near(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func twoZones() []Bound {
	return []Bound{{Value: 50, Color: "#00ff00"}, {Value: 100, Color: "#ff0000"}}
}

func TestComputeSplitsActiveZone(t *testing.T) {
	g, err := Compute(Dial{Name: "P", Fact: 70, Deviation: 5, Bounds: twoZones()})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}

	if g.Segments[0].IsActive || !g.Segments[1].IsActive {
		t.Fatalf("active flags = %v, %v, want zone 1 active", g.Segments[0].IsActive, g.Segments[1].IsActive)
	}
	want := []Segment{
		{Color: "#00ff00", Value: 50, Label: 50},
		{Color: "#ff0000", Value: 5, Label: 70, IsActive: true, IsFact: true},
		{Color: "#ff0000", Value: 45, Label: 100, IsActive: true},
	}
	if len(g.FactArcs) != len(want) {
		t.Fatalf("FactArcs = %d, want %d", len(g.FactArcs), len(want))
	}
	for i, a := range g.FactArcs {
		if a.Segment != want[i] {
			t.Errorf("FactArcs[%d] = %+v, want %+v", i, a.Segment, want[i])
		}
	}

	fa, ok := g.FactArc()
	if !ok {
		t.Fatal("no fact arc")
	}
	if want := -0.75*math.Pi + 1.5*math.Pi*0.55; !near(fa.End, want) || !near(g.Pointer.Angle, want) {
		t.Errorf("fact angle = %v (arc end %v), want %v", g.Pointer.Angle, fa.End, want)
	}
	if !g.Pointer.Found {
		t.Error("Pointer.Found = false")
	}
}

func TestSplitPreservesActiveSize(t *testing.T) {
	tests := []struct {
		name      string
		fact, dev float64
		piece     float64
	}{
		{"positive", 70, 5, 5},
		{"zero", 70, 0, 20},
		{"negative", 70, -8, 8},
		{"negative beyond zone", 70, -60, 50},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			segs := Segments(twoZones(), tt.fact, tt.dev)
			split := Split(segs, tt.fact, tt.dev)
			if len(split) != 3 {
				t.Fatalf("split = %+v", split)
			}
			if !split[1].IsFact || split[1].Value != tt.piece {
				t.Errorf("fact piece = %+v, want value %v", split[1], tt.piece)
			}
			if got := split[1].Value + split[2].Value; got != segs[1].Value {
				t.Errorf("pieces sum to %v, want %v", got, segs[1].Value)
			}
		})
	}
}

func TestLayoutSpan(t *testing.T) {
	arcs := Layout([]Segment{{Value: 1}, {Value: 2}, {Value: -4}, {Value: 1}})
	if !near(arcs[0].Start, -0.75*math.Pi) || !near(arcs[3].End, 0.75*math.Pi) {
		t.Errorf("span = [%v, %v]", arcs[0].Start, arcs[3].End)
	}
	if arcs[2].Start != arcs[2].End {
		t.Errorf("negative segment has width %v", arcs[2].End-arcs[2].Start)
	}
	if !near(arcs[1].End-arcs[1].Start, 0.75*math.Pi) {
		t.Errorf("segment 1 width = %v, want half the span", arcs[1].End-arcs[1].Start)
	}
}

func TestComputeZeroOnRight(t *testing.T) {
	g, err := Compute(Dial{Fact: 70, Deviation: 5, ZeroOn: Right, Bounds: twoZones()})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if g.Segments[0].Label != 100 {
		t.Errorf("first drawn segment = %+v, want the 100 bound", g.Segments[0])
	}
	fa, _ := g.FactArc()
	if !near(g.Pointer.Angle, fa.Start) {
		t.Errorf("angle = %v, want fact arc start %v", g.Pointer.Angle, fa.Start)
	}
}

func TestComputeOutOfRange(t *testing.T) {
	tests := []struct {
		name      string
		fact, dev float64
		zero      ZeroOn
		angle     float64
	}{
		{"above left", 120, 0, Left, 0.75 * math.Pi},
		{"above right", 120, 0, Right, -0.75 * math.Pi},
		{"below left", -10, -5, Left, -0.75 * math.Pi},
		{"below right", -10, -5, Right, 0.75 * math.Pi},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := Compute(Dial{Fact: tt.fact, Deviation: tt.dev, ZeroOn: tt.zero, Bounds: twoZones()})
			if err != nil {
				t.Fatalf("Compute: %v", err)
			}
			if _, ok := g.FactArc(); ok {
				t.Error("unexpected fact arc")
			}
			if !g.Pointer.Found || !near(g.Pointer.Angle, tt.angle) {
				t.Errorf("pointer = %+v, want angle %v", g.Pointer, tt.angle)
			}
		})
	}
}

func TestComputeAngleNotFoundWarns(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)
	g, err := Compute(Dial{Name: "edge", Fact: 100, Deviation: -5, Bounds: twoZones()}, WithLogger(logger))
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	if g.Pointer.Found || g.Pointer.Angle != 0 {
		t.Errorf("pointer = %+v, want not found at 0", g.Pointer)
	}
	if !strings.Contains(buf.String(), "pointer angle not found") {
		t.Errorf("log = %q, want a warning", buf.String())
	}
}

func TestPointerAt(t *testing.T) {
	tests := []struct {
		angle         float64
		zero          ZeroOn
		start, rotate float64
	}{
		{-0.75 * math.Pi, Left, -0.75, 0},
		{0, Left, -0.75, 135},
		{0.75 * math.Pi, Left, -0.25, 180},
		{0.75 * math.Pi, Right, 0.75, 0},
		{0, Right, 0.75, -135},
		{-0.75 * math.Pi, Right, 0.25, -180},
	}
	for _, tt := range tests {
		p := PointerAt(tt.angle, tt.zero)
		if !near(p.Start, tt.start) || !near(p.Rotate, tt.rotate) {
			t.Errorf("PointerAt(%v, %s) = %+v, want start %v rotate %v", tt.angle, tt.zero, p, tt.start, tt.rotate)
		}
	}
	if p := PointerAt(0, Left); !near(p.EndAngle(), -0.9*math.Pi) {
		t.Errorf("EndAngle() = %v, want -0.9π", p.EndAngle())
	}
}

func TestComputeValidation(t *testing.T) {
	tests := []struct {
		name string
		dial Dial
		code errors.Code
	}{
		{"no bounds", Dial{Fact: 1}, errors.ErrCodeInvalidInput},
		{"bad zero", Dial{ZeroOn: "top", Bounds: twoZones()}, errors.ErrCodeInvalidInput},
		{"decreasing", Dial{Bounds: []Bound{{Value: 10}, {Value: 5}}}, errors.ErrCodeInvalidData},
		{"nan fact", Dial{Fact: math.NaN(), Bounds: twoZones()}, errors.ErrCodeInvalidData},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Compute(tt.dial)
			if !errors.Is(err, tt.code) {
				t.Errorf("Compute() error = %v, want %s", err, tt.code)
			}
		})
	}
}

func TestDraw(t *testing.T) {
	g, err := Compute(Dial{Name: "Pressure", EngUnits: "bar", Fact: 70, Deviation: -1.5, Bounds: twoZones()})
	if err != nil {
		t.Fatalf("Compute: %v", err)
	}
	root := scene.NewRoot(300, 200)
	node, err := Draw(root, g, 300, 200, theme.Default())
	if err != nil {
		t.Fatalf("Draw: %v", err)
	}
	if node.Transform.TX != 150 || node.Transform.TY != 100 {
		t.Errorf("gauge centered at %v,%v", node.Transform.TX, node.Transform.TY)
	}

	dev := root.Find("deviation")
	if len(dev) != 1 || dev[0].Content != "-1.5" || !dev[0].HasClass("yellow") || dev[0].Style.Fill != theme.Default().Negative {
		t.Errorf("deviation = %+v", dev)
	}
	if got := len(root.Find("label")); got != 2 {
		t.Errorf("labels = %d, want 2", got)
	}
	if got := len(root.Find("blur")); got != 2 {
		t.Errorf("pie arcs = %d, want 2", got)
	}
	if fact := root.Find("fact"); len(fact) != 2 { // text and arc
		t.Errorf("fact nodes = %d, want 2", len(fact))
	}
	needle := root.Find("needle")
	if len(needle) != 1 || needle[0].Transform.Rotate != g.Pointer.Rotate {
		t.Errorf("needle = %+v", needle)
	}
	if title := root.Find("title"); len(title) != 1 || title[0].Content != "Pressure" || title[0].Y != -(Radius(300, 200)+8) {
		t.Errorf("title = %+v", title)
	}

	if _, err := Draw(root, g, 30, 30, nil); !errors.Is(err, errors.ErrCodeInvalidInput) {
		t.Errorf("Draw(tiny) error = %v", err)
	}
}

func TestFormatting(t *testing.T) {
	tests := []struct {
		fn   func(float64) string
		in   float64
		want string
	}{
		{FormatDeviation, 5, "5"},
		{FormatDeviation, 1.26, "1.3"},
		{FormatDeviation, -0.5, "-0.5"},
		{FormatValue, 70, "70"},
		{FormatValue, 12.5, "12.5"},
	}
	for _, tt := range tests {
		if got := tt.fn(tt.in); got != tt.want {
			t.Errorf("format(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
	if DeviationClass(0) != "grey" || DeviationClass(2) != "green" || DeviationClass(-2) != "yellow" {
		t.Error("DeviationClass sign mapping")
	}
}
