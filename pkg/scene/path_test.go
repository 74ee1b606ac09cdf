package scene

import (
	"math"
	"strings"
	"testing"
)

func TestNum(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1.5, "1.5"},
		{2.0001, "2"},
		{-0.0001, "0"},
		{12.3456, "12.346"},
	}
	for _, tt := range tests {
		if got := Num(tt.in); got != tt.want {
			t.Errorf("Num(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestPathBuilder(t *testing.T) {
	var b PathBuilder
	if !b.Empty() {
		t.Fatal("new builder not empty")
	}
	b.MoveTo(0, 0).LineTo(10, 5.5).Close()
	if got, want := b.String(), "M0,0L10,5.5Z"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestArc(t *testing.T) {
	// Quarter arc from 12 to 3 o'clock with radius 10.
	d := Arc(0, 0, 5, 10, 0, math.Pi/2)
	if !strings.HasPrefix(d, "M0,-10A10,10,0,0,1,10,0L5,0A5,5,0,0,0,0,-5Z") {
		t.Errorf("Arc() = %q", d)
	}

	pie := Arc(0, 0, 0, 10, 0, math.Pi)
	if !strings.Contains(pie, "L0,0") {
		t.Errorf("pie slice should return to the center: %q", pie)
	}

	// Reversed angles are normalized.
	if Arc(0, 0, 5, 10, math.Pi/2, 0) != d {
		t.Error("Arc with reversed angles differs")
	}
}

func TestCurveLinear(t *testing.T) {
	pts := []Point{{0, 0}, {10, 10}, {20, 5}}
	if got, want := CurveLinear.Line(pts), "M0,0L10,10L20,5"; got != want {
		t.Errorf("Line() = %q, want %q", got, want)
	}
}

func TestCurveStep(t *testing.T) {
	pts := []Point{{0, 0}, {10, 10}}
	if got, want := CurveStep.Line(pts), "M0,0L10,0L10,10"; got != want {
		t.Errorf("Line() = %q, want %q", got, want)
	}
}

func TestCurveMonotone(t *testing.T) {
	pts := []Point{{0, 0}, {10, 10}, {20, 10}, {30, 0}}
	d := CurveMonotone.Line(pts)
	if strings.Count(d, "C") != 3 {
		t.Errorf("Line() = %q, want 3 cubic segments", d)
	}

	// Two points degrade to a straight segment.
	if got, want := CurveMonotone.Line(pts[:2]), "M0,0L10,10"; got != want {
		t.Errorf("Line(2 points) = %q, want %q", got, want)
	}
}

func TestMonotoneTangentsFlatAtExtrema(t *testing.T) {
	pts := []Point{{0, 0}, {10, 10}, {20, 0}}
	m := monotoneTangents(pts)
	if m[1] != 0 {
		t.Errorf("tangent at local maximum = %v, want 0", m[1])
	}
}

func TestCurveSplitsOnNaN(t *testing.T) {
	pts := []Point{{0, 0}, {10, math.NaN()}, {20, 5}, {30, 5}}
	d := CurveLinear.Line(pts)
	if strings.Count(d, "M") != 2 {
		t.Errorf("Line() = %q, want 2 subpaths", d)
	}
}

func TestArea(t *testing.T) {
	pts := []Point{{0, 5}, {10, 2}}
	if got, want := CurveLinear.Area(pts, 20), "M0,5L10,2L10,20L0,20Z"; got != want {
		t.Errorf("Area() = %q, want %q", got, want)
	}
	if CurveLinear.Area(nil, 0) != "" {
		t.Error("Area(nil) should be empty")
	}
}

func TestParseCurve(t *testing.T) {
	tests := []struct {
		in      string
		want    Curve
		wantErr bool
	}{
		{"", CurveLinear, false},
		{"linear", CurveLinear, false},
		{"Monotone", CurveMonotone, false},
		{"step-after", CurveStep, false},
		{"basis", CurveLinear, true},
	}
	for _, tt := range tests {
		got, err := ParseCurve(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseCurve(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
		}
		if got != tt.want {
			t.Errorf("ParseCurve(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
