package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestFill(t *testing.T) {
	bi := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2024-03-05T14:07:09Z"},
		},
	}

	tests := []struct {
		name string
		in   Info
		want Info
	}{
		{"unset", Info{"dev", "none", "unknown"}, Info{"v0.3.1", "abc123", "2024-03-05T14:07:09Z"}},
		{"ldflags win", Info{"v1.0.0", "fff", "today"}, Info{"v1.0.0", "fff", "today"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := fill(tt.in, bi); got != tt.want {
				t.Errorf("fill() = %+v, want %+v", got, tt.want)
			}
		})
	}

	devel := &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}
	if got := fill(Info{"dev", "none", "unknown"}, devel); got.Version != "dev" {
		t.Errorf("(devel) should keep dev, got %q", got.Version)
	}
}

func TestTemplate(t *testing.T) {
	if !strings.HasPrefix(Template(), "{{.Name}} version ") {
		t.Errorf("Template() = %q", Template())
	}
	if !strings.Contains(String(), "commit: ") {
		t.Errorf("String() = %q", String())
	}
}
