package scale

import (
	"math"
	"testing"
	"time"
)

func approx(a, b float64) bool { return math.Abs(a-b) < 1e-9 }

func TestExtent(t *testing.T) {
	d := Extent(3, math.NaN(), -2, 7, math.Inf(1))
	if d.Min != -2 || d.Max != 7 {
		t.Errorf("Extent() = [%v, %v], want [-2, 7]", d.Min, d.Max)
	}
	if d.Degenerate() {
		t.Error("Degenerate() = true, want false")
	}

	tests := []struct {
		name string
		d    Domain
	}{
		{"empty", Extent()},
		{"single point", Extent(4, 4)},
		{"all NaN", Extent(math.NaN())},
	}
	for _, tt := range tests {
		if !tt.d.Degenerate() {
			t.Errorf("%s: Degenerate() = false, want true", tt.name)
		}
	}
}

func TestBuildNumericNiceExpandsOutward(t *testing.T) {
	tests := []struct {
		values []float64
	}{
		{[]float64{3, 97}},
		{[]float64{0.12, 0.87}},
		{[]float64{-13, 41}},
		{[]float64{10, 20}},
		{[]float64{1e6, 1.9e6}},
	}
	for _, tt := range tests {
		d := Extent(tt.values...)
		s := Build(Numeric, d, 0, 100)
		min, max := s.Domain()
		if min > d.Min || max < d.Max {
			t.Errorf("nice domain [%v, %v] does not contain data [%v, %v]", min, max, d.Min, d.Max)
		}
	}
}

func TestBuildNumericNiceValues(t *testing.T) {
	s := Build(Numeric, Extent(3, 97), 0, 100)
	min, max := s.Domain()
	if min != 0 || max != 100 {
		t.Errorf("Domain() = [%v, %v], want [0, 100]", min, max)
	}

	raw := Build(Numeric, Extent(3, 97), 0, 100, WithNice(false))
	min, max = raw.Domain()
	if min != 3 || max != 97 {
		t.Errorf("Domain() without nice = [%v, %v], want [3, 97]", min, max)
	}
}

func TestLinearNiceNeverShrinks(t *testing.T) {
	tests := []struct {
		name             string
		min, max         float64
		wantMin, wantMax float64
	}{
		{"round outward", 3, 97, 0, 100},
		{"negative", -13, 41, -20, 50},
		{"max just past a tick", 3, 100 + 5e-9, 0, 100 + 5e-9},
		{"min just before a tick", -5e-9, 97, -5e-9, 100},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := NewLinear(tt.min, tt.max, 0, 100)
			l.Nice(10)
			min, max := l.Domain()
			if min > tt.min || max < tt.max {
				t.Errorf("Domain() = [%v, %v] does not contain [%v, %v]", min, max, tt.min, tt.max)
			}
			if !approx(min, tt.wantMin) || !approx(max, tt.wantMax) {
				t.Errorf("Domain() = [%v, %v], want [%v, %v]", min, max, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestLinearMapInvert(t *testing.T) {
	// Inverted pixel range, as used by vertical axes.
	s := NewLinear(0, 50, 200, 0)
	tests := []struct{ v, px float64 }{
		{0, 200},
		{25, 100},
		{50, 0},
		{75, -100},
	}
	for _, tt := range tests {
		if got := s.Map(tt.v); !approx(got, tt.px) {
			t.Errorf("Map(%v) = %v, want %v", tt.v, got, tt.px)
		}
		if got := s.Invert(tt.px); !approx(got, tt.v) {
			t.Errorf("Invert(%v) = %v, want %v", tt.px, got, tt.v)
		}
	}
}

func TestLinearTicks(t *testing.T) {
	s := NewLinear(0, 100, 0, 500)
	ticks := s.Ticks(5)
	if len(ticks) == 0 || len(ticks) > 5 {
		t.Fatalf("Ticks(5) = %v, want 1..5 ticks", ticks)
	}
	for _, v := range ticks {
		if v < 0 || v > 100 {
			t.Errorf("tick %v outside domain", v)
		}
	}
	if s.Ticks(0) != nil {
		t.Error("Ticks(0) should be nil")
	}
}

func TestDegenerateDomainsCollapse(t *testing.T) {
	for _, kind := range []Kind{Numeric, Temporal, Categorical} {
		s := Build(kind, Extent(), 0, 300)
		if !s.Empty() {
			t.Errorf("%v: Empty() = false, want true", kind)
		}
		if got := s.Map(42); got != 0 {
			t.Errorf("%v: Map() = %v, want range start 0", kind, got)
		}
		if s.Ticks(10) != nil {
			t.Errorf("%v: Ticks() = %v, want nil", kind, s.Ticks(10))
		}
		lo, hi := s.Range()
		if lo != 0 || hi != 300 {
			t.Errorf("%v: Range() = [%v, %v], want [0, 300]", kind, lo, hi)
		}
	}

	single := Build(Numeric, Extent(5, 5), 400, 0)
	if !single.Empty() || single.Map(5) != 400 {
		t.Error("single-point domain should collapse to the range start")
	}
}

func TestBand(t *testing.T) {
	b := NewBand([]string{"a", "b", "c", "b", "d"}, 0, 400)
	if got := len(b.Labels()); got != 4 {
		t.Fatalf("len(Labels()) = %d, want 4 (duplicates dropped)", got)
	}
	if bw := b.Bandwidth(); bw != 100 {
		t.Errorf("Bandwidth() = %v, want 100", bw)
	}
	if got := b.Map(2); got != 200 {
		t.Errorf("Map(2) = %v, want 200", got)
	}
	if got, ok := b.MapLabel("d"); !ok || got != 300 {
		t.Errorf("MapLabel(d) = %v, %v, want 300, true", got, ok)
	}
	if _, ok := b.Lookup("z"); ok {
		t.Error("Lookup(z) found a band")
	}

	tests := []struct{ px, want float64 }{
		{0, 0},
		{99.9, 0},
		{100, 1},
		{350, 3},
		{-20, 0},
		{1000, 3},
	}
	for _, tt := range tests {
		if got := b.Invert(tt.px); got != tt.want {
			t.Errorf("Invert(%v) = %v, want %v", tt.px, got, tt.want)
		}
	}
	if got := b.Label(1); got != "b" {
		t.Errorf("Label(1) = %q, want b", got)
	}
	if got := b.Label(9); got != "" {
		t.Errorf("Label(9) = %q, want empty", got)
	}
}

func TestBuildCategoricalUsesLabels(t *testing.T) {
	s := Build(Categorical, Domain{Labels: []string{"x", "y"}}, 0, 100)
	b, ok := s.(*Band)
	if !ok {
		t.Fatalf("Build(Categorical) = %T, want *Band", s)
	}
	if len(b.Ticks(3)) != 2 {
		t.Errorf("Ticks() = %v, want one per band", b.Ticks(3))
	}
}

func ms(t time.Time) float64 { return float64(t.UnixMilli()) }

func TestTimeTicksAndNice(t *testing.T) {
	start := time.Date(2024, 3, 1, 10, 7, 0, 0, time.UTC)
	end := start.Add(50 * time.Minute)

	s := Build(Temporal, Extent(ms(start), ms(end)), 0, 800, WithTicks(10)).(*Time)
	min, max := s.Domain()
	if min > ms(start) || max < ms(end) {
		t.Errorf("nice domain does not contain data")
	}
	if got := time.UnixMilli(int64(min)).UTC(); got.Minute()%5 != 0 || got.Second() != 0 {
		t.Errorf("nice min = %v, want aligned to 5 minutes", got)
	}

	ticks := s.Ticks(10)
	if len(ticks) < 2 || len(ticks) > 10 {
		t.Fatalf("Ticks(10) returned %d ticks", len(ticks))
	}
	step := ticks[1] - ticks[0]
	for i, v := range ticks {
		if i > 0 && ticks[i]-ticks[i-1] != step {
			t.Errorf("uneven tick spacing at %d", i)
		}
		if math.Mod(v, 5*msMinute) != 0 {
			t.Errorf("tick %v not aligned to 5 minutes", time.UnixMilli(int64(v)).UTC())
		}
	}
}

func TestTimeMonthlyTicks(t *testing.T) {
	start := time.Date(2023, 1, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2023, 12, 20, 0, 0, 0, 0, time.UTC)
	s := NewTime(ms(start), ms(end), 0, 1200)

	ticks := s.Ticks(12)
	if len(ticks) != 11 {
		t.Fatalf("Ticks(12) = %d ticks, want 11 (Feb..Dec)", len(ticks))
	}
	for _, v := range ticks {
		tm := time.UnixMilli(int64(v)).UTC()
		if tm.Day() != 1 || tm.Hour() != 0 {
			t.Errorf("tick %v not at a month start", tm)
		}
	}
}

func TestFloorWeek(t *testing.T) {
	// Wednesday 2024-05-15 floors to Sunday 2024-05-12.
	v := ms(time.Date(2024, 5, 15, 13, 0, 0, 0, time.UTC))
	got := time.UnixMilli(int64(floorWeek(v))).UTC()
	want := time.Date(2024, 5, 12, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("floorWeek() = %v, want %v", got, want)
	}
}

func TestParseKind(t *testing.T) {
	tests := []struct {
		in      string
		want    Kind
		wantErr bool
	}{
		{"number", Numeric, false},
		{"time", Temporal, false},
		{"enum", Categorical, false},
		{"categorical", Categorical, false},
		{"log", Numeric, true},
	}
	for _, tt := range tests {
		got, err := ParseKind(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParseKind(%q) = %v, %v", tt.in, got, err)
		}
	}
}
