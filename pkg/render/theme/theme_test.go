package theme

import "testing"

func TestByName(t *testing.T) {
	if th := ByName(""); th == nil || th.Name != "light" {
		t.Errorf("ByName(\"\") = %v, want light", th)
	}
	if th := ByName("dark"); th == nil || th.Name != "dark" {
		t.Errorf("ByName(dark) = %v, want dark", th)
	}
	if th := ByName("neon"); th != nil {
		t.Errorf("ByName(neon) = %v, want nil", th)
	}
}

func TestMerge(t *testing.T) {
	base := Default()
	got := base.Merge(&Theme{GridColor: "#000000", FontSize: 14})

	if got.GridColor != "#000000" {
		t.Errorf("GridColor = %s, want #000000", got.GridColor)
	}
	if got.FontSize != 14 {
		t.Errorf("FontSize = %v, want 14", got.FontSize)
	}
	if got.TextColor != base.TextColor {
		t.Errorf("TextColor = %s, want unchanged %s", got.TextColor, base.TextColor)
	}
	if base.GridColor == "#000000" {
		t.Error("Merge modified the receiver")
	}
	if base.Merge(nil).Name != base.Name {
		t.Error("Merge(nil) should copy the receiver")
	}
}
