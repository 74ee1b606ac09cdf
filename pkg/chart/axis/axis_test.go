package axis

import (
	"testing"
	"time"

	"github.com/matzehuels/chartkit/pkg/chart/scale"
	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/render/theme"
	"github.com/matzehuels/chartkit/pkg/scene"
)

func ptr(v float64) *float64 { return &v }

func TestDefaultTickCount(t *testing.T) {
	tests := []struct {
		extent float64
		want   int
	}{
		{800, 10},
		{799, 9},
		{100, 2},
		{0, 2},
		{-400, 5},
	}
	for _, tt := range tests {
		if got := DefaultTickCount(tt.extent); got != tt.want {
			t.Errorf("DefaultTickCount(%v) = %d, want %d", tt.extent, got, tt.want)
		}
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		decls   []Declaration
		wantErr bool
	}{
		{
			name: "valid",
			decls: []Declaration{
				{Name: "x", Position: Bottom, Primary: true},
				{Name: "y", Position: Left},
			},
		},
		{
			name:    "no primary",
			decls:   []Declaration{{Name: "x", Position: Bottom}},
			wantErr: true,
		},
		{
			name: "two primaries",
			decls: []Declaration{
				{Name: "x", Position: Bottom, Primary: true},
				{Name: "y", Position: Left, Primary: true},
			},
			wantErr: true,
		},
		{
			name: "duplicate name",
			decls: []Declaration{
				{Name: "x", Position: Bottom, Primary: true},
				{Name: "x", Position: Left},
			},
			wantErr: true,
		},
		{
			name:    "bad position",
			decls:   []Declaration{{Name: "x", Position: "middle", Primary: true}},
			wantErr: true,
		},
		{
			name:    "min above max",
			decls:   []Declaration{{Name: "x", Position: Bottom, Primary: true, Min: ptr(5), Max: ptr(1)}},
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.decls)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err != nil && !errors.Is(err, errors.ErrCodeInvalidAxis) {
				t.Errorf("Validate() code = %v, want %v", errors.GetCode(err), errors.ErrCodeInvalidAxis)
			}
		})
	}
}

func TestBuildNumeric(t *testing.T) {
	s := scale.NewLinear(0, 100, 400, 0)
	a := Build(Declaration{Name: "y", Kind: scale.Numeric, Position: Left}, s, 800)

	if len(a.Ticks) == 0 {
		t.Fatal("no ticks")
	}
	for _, tk := range a.Ticks {
		if tk.Pos != s.Map(tk.Value) {
			t.Errorf("tick %v at %v, want %v", tk.Value, tk.Pos, s.Map(tk.Value))
		}
		if tk.Label != FormatNumber(tk.Value) {
			t.Errorf("tick label %q, want %q", tk.Label, FormatNumber(tk.Value))
		}
	}
}

func TestBuildCategoricalCentersLabels(t *testing.T) {
	s := scale.NewBand([]string{"Q1", "Q2", "Q3", "Q4"}, 0, 400)
	a := Build(Declaration{Name: "x", Kind: scale.Categorical, Position: Bottom, Primary: true}, s, 400)

	if len(a.Ticks) != 4 {
		t.Fatalf("len(Ticks) = %d, want 4", len(a.Ticks))
	}
	if a.Ticks[0].Pos != 50 || a.Ticks[0].Label != "Q1" {
		t.Errorf("Ticks[0] = %+v, want Q1 at 50", a.Ticks[0])
	}
	if _, ok := a.Band(); !ok {
		t.Error("Band() = false for categorical axis")
	}
}

func TestBuildCustomFormat(t *testing.T) {
	s := scale.NewLinear(0, 1, 0, 100)
	a := Build(Declaration{Name: "pct", Position: Left, Ticks: 2, Format: "%.0f%%"}, s, 100)
	if got := a.FormatValue(0.5); got != "0%" && got != "1%" {
		t.Errorf("FormatValue() = %q", got)
	}
	for _, tk := range a.Ticks {
		if tk.Label[len(tk.Label)-1] != '%' {
			t.Errorf("label %q lacks custom suffix", tk.Label)
		}
	}
}

func TestBuildEmptyScale(t *testing.T) {
	s := scale.Build(scale.Numeric, scale.Extent(), 0, 300)
	a := Build(Declaration{Name: "y", Position: Left}, s, 300)
	if len(a.Ticks) != 0 {
		t.Errorf("Ticks = %v, want none for empty domain", a.Ticks)
	}
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1, "1"},
		{2.5, "2.5"},
		{100000, "100000"},
		{0.1 + 0.2, "0.3"},
		{-3, "-3"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.in); got != tt.want {
			t.Errorf("FormatNumber(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTimeFormat(t *testing.T) {
	utc := time.UTC
	tests := []struct {
		name string
		t    time.Time
		want string
	}{
		{"millisecond", time.Date(2024, 5, 12, 10, 30, 15, 250e6, utc), ".250"},
		{"second", time.Date(2024, 5, 12, 10, 30, 15, 0, utc), ":15"},
		{"minute", time.Date(2024, 5, 12, 10, 30, 0, 0, utc), "10:30"},
		{"hour", time.Date(2024, 5, 12, 15, 0, 0, 0, utc), "03 PM"},
		{"day", time.Date(2024, 5, 14, 0, 0, 0, 0, utc), "14 May"},
		{"week (sunday)", time.Date(2024, 5, 12, 0, 0, 0, 0, utc), "May 12"},
		{"month", time.Date(2024, 5, 1, 0, 0, 0, 0, utc), "May"},
		{"year", time.Date(2024, 1, 1, 0, 0, 0, 0, utc), "2024"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := TimeFormat(tt.t); got != tt.want {
				t.Errorf("TimeFormat(%v) = %q, want %q", tt.t, got, tt.want)
			}
		})
	}
}

func TestRender(t *testing.T) {
	th := theme.Default()
	root := scene.NewRoot(500, 400)

	s := scale.NewBand([]string{"a", "b"}, 0, 400)
	a := Build(Declaration{Name: "x", Kind: scale.Categorical, Position: Bottom, Title: "Category"}, s, 400)
	g := a.Render(root, 400, 300, th)

	if g.Transform.TY != 300 {
		t.Errorf("bottom axis translated to y=%v, want 300", g.Transform.TY)
	}
	if got := len(g.Find("tick-label")); got != 2 {
		t.Errorf("tick labels = %d, want 2", got)
	}
	if got := len(g.Find("axis-title")); got != 1 {
		t.Errorf("axis titles = %d, want 1", got)
	}

	left := Build(Declaration{Name: "y2", Position: Left}, scale.NewLinear(0, 10, 300, 0), 400)
	left.Offset = Width
	lg := left.Render(root, 400, 300, th)
	if lg.Transform.TX != -Width {
		t.Errorf("offset left axis at x=%v, want %v", lg.Transform.TX, -Width)
	}

	grid := left.RenderGrid(root, 400, 300, th)
	if got := grid.Count(scene.KindLine); got != len(left.Ticks) {
		t.Errorf("grid lines = %d, want %d", got, len(left.Ticks))
	}
	for _, l := range grid.Children {
		if l.X2 != 400 {
			t.Errorf("grid line ends at %v, want plot width 400", l.X2)
		}
	}
}
