package palette

import (
	"strings"
	"testing"
)

func TestNextWraps(t *testing.T) {
	p := New("#111111", "#222222", "#333333")

	want := []string{"#111111", "#222222", "#333333", "#111111", "#222222"}
	for i, w := range want {
		if got := p.Next(); got != w {
			t.Errorf("Next() #%d = %s, want %s", i, got, w)
		}
	}

	p.Reset()
	if got := p.Next(); got != "#111111" {
		t.Errorf("Next() after Reset = %s, want #111111", got)
	}
}

func TestNewDefault(t *testing.T) {
	p := New()
	if p.Len() != len(Default) {
		t.Fatalf("Len() = %d, want %d", p.Len(), len(Default))
	}
	if got := p.Next(); got != Default[0] {
		t.Errorf("Next() = %s, want %s", got, Default[0])
	}
}

func TestAt(t *testing.T) {
	p := New("#a00000", "#00a000")
	tests := []struct {
		i    int
		want string
	}{
		{0, "#a00000"},
		{1, "#00a000"},
		{2, "#a00000"},
		{-1, "#00a000"},
	}
	for _, tt := range tests {
		if got := p.At(tt.i); got != tt.want {
			t.Errorf("At(%d) = %s, want %s", tt.i, got, tt.want)
		}
	}
}

func TestGenerate(t *testing.T) {
	p := Generate(6)
	if p.Len() != 6 {
		t.Fatalf("Len() = %d, want 6", p.Len())
	}
	seen := map[string]bool{}
	for i := 0; i < 6; i++ {
		c := p.At(i)
		if !strings.HasPrefix(c, "#") || len(c) != 7 {
			t.Errorf("At(%d) = %q, want #rrggbb", i, c)
		}
		seen[c] = true
	}
	if len(seen) != 6 {
		t.Errorf("generated %d distinct colors, want 6", len(seen))
	}
}

func TestLightenDarken(t *testing.T) {
	if got := Lighten("#000000", 1); got != "#ffffff" {
		t.Errorf("Lighten(black, 1) = %s, want #ffffff", got)
	}
	if got := Darken("#ffffff", 1); got != "#000000" {
		t.Errorf("Darken(white, 1) = %s, want #000000", got)
	}
	if got := Lighten("#4e79a7", 0); got != "#4e79a7" {
		t.Errorf("Lighten(c, 0) = %s, want unchanged", got)
	}
	if got := Lighten("nope", 0.5); got != "nope" {
		t.Errorf("Lighten(invalid) = %s, want unchanged", got)
	}
}

func TestContrast(t *testing.T) {
	if got := Contrast("#ffffff"); got != "#000000" {
		t.Errorf("Contrast(white) = %s, want black", got)
	}
	if got := Contrast("#000000"); got != "#ffffff" {
		t.Errorf("Contrast(black) = %s, want white", got)
	}
}
