// Package theme holds the visual settings shared by charts, gauges and the
// SVG sink.
package theme

// Theme defines fonts and colors for chart chrome. Series colors come from
// the chart's palette, not from the theme.
type Theme struct {
	Name       string  `toml:"name" json:"name"`
	FontFamily string  `toml:"font_family" json:"font_family"`
	FontSize   float64 `toml:"font_size" json:"font_size"`
	TextColor  string  `toml:"text_color" json:"text_color"`
	MutedText  string  `toml:"muted_text" json:"muted_text"`
	AxisColor  string  `toml:"axis_color" json:"axis_color"`
	GridColor  string  `toml:"grid_color" json:"grid_color"`
	Background string  `toml:"background" json:"background"`

	// ActiveBackground shades the populated part of the plot in line
	// tooltip mode.
	ActiveBackground string `toml:"active_background" json:"active_background"`
	CapColor         string `toml:"cap_color" json:"cap_color"`
	HighlightColor   string `toml:"highlight_color" json:"highlight_color"`

	// Gauge deviation colors by sign.
	Negative string `toml:"negative" json:"negative"`
	Zero     string `toml:"zero" json:"zero"`
	Positive string `toml:"positive" json:"positive"`
	DialBack string `toml:"dial_back" json:"dial_back"`
}

// Default returns the light theme.
func Default() *Theme {
	return &Theme{
		Name:             "light",
		FontFamily:       "Roboto, Helvetica, Arial, sans-serif",
		FontSize:         11,
		TextColor:        "#333333",
		MutedText:        "#888888",
		AxisColor:        "#888888",
		GridColor:        "#e6e6e6",
		Background:       "#ffffff",
		ActiveBackground: "#f7f9fc",
		CapColor:         "#ffffff",
		HighlightColor:   "#b0b0b0",
		Negative:         "#e6b800",
		Zero:             "#9e9e9e",
		Positive:         "#2e9e44",
		DialBack:         "#f0f0f0",
	}
}

// Dark returns a dark variant of [Default].
func Dark() *Theme {
	t := Default()
	t.Name = "dark"
	t.TextColor = "#e0e0e0"
	t.MutedText = "#9a9a9a"
	t.AxisColor = "#7a7a7a"
	t.GridColor = "#333a44"
	t.Background = "#1c2128"
	t.ActiveBackground = "#222933"
	t.CapColor = "#1c2128"
	t.HighlightColor = "#5c6370"
	t.DialBack = "#2a313b"
	return t
}

// ByName returns the named theme, or nil if unknown. The empty name is the
// default theme.
func ByName(name string) *Theme {
	switch name {
	case "", "light":
		return Default()
	case "dark":
		return Dark()
	}
	return nil
}

// Merge returns a copy of t with every non-zero field of o applied.
func (t *Theme) Merge(o *Theme) *Theme {
	out := *t
	if o == nil {
		return &out
	}
	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&out.FontFamily, o.FontFamily)
	set(&out.TextColor, o.TextColor)
	set(&out.MutedText, o.MutedText)
	set(&out.AxisColor, o.AxisColor)
	set(&out.GridColor, o.GridColor)
	set(&out.Background, o.Background)
	set(&out.ActiveBackground, o.ActiveBackground)
	set(&out.CapColor, o.CapColor)
	set(&out.HighlightColor, o.HighlightColor)
	set(&out.Negative, o.Negative)
	set(&out.Zero, o.Zero)
	set(&out.Positive, o.Positive)
	set(&out.DialBack, o.DialBack)
	if o.FontSize > 0 {
		out.FontSize = o.FontSize
	}
	return &out
}
