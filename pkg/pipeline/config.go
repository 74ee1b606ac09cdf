package pipeline

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/chart/axis"
	"github.com/matzehuels/chartkit/pkg/chart/interact"
	"github.com/matzehuels/chartkit/pkg/chart/scale"
	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/gauge"
	"github.com/matzehuels/chartkit/pkg/scene"
)

// Dashboard is a decoded dashboard file.
type Dashboard struct {
	Title   string   `toml:"title" json:"title,omitempty"`
	Theme   string   `toml:"theme" json:"theme,omitempty"`
	Palette []string `toml:"palette" json:"palette,omitempty"`
	Panels  []Panel  `toml:"panel" json:"panels"`

	// Dir is the directory data paths are resolved against.
	Dir string `toml:"-" json:"-"`
}

// Panel is one chart or gauge of a dashboard.
type Panel struct {
	Name        string  `toml:"name" json:"name"`
	Kind        string  `toml:"kind" json:"kind"`
	Width       float64 `toml:"width" json:"width,omitempty"`
	Height      float64 `toml:"height" json:"height,omitempty"`
	Tooltip     *bool   `toml:"tooltip" json:"tooltip,omitempty"`
	Legend      *bool   `toml:"legend" json:"legend,omitempty"`
	TooltipMode string  `toml:"tooltip_mode" json:"tooltip_mode,omitempty"`

	// Margins are top, right, bottom, left.
	Margins []float64 `toml:"margins" json:"margins,omitempty"`
	// Window is an initial [start, end] brush window over the primary
	// domain.
	Window []float64 `toml:"window" json:"window,omitempty"`

	Axes   []AxisConfig  `toml:"axis" json:"axes,omitempty"`
	Layers []LayerConfig `toml:"layer" json:"layers,omitempty"`
	Gauge  *gauge.Dial   `toml:"gauge" json:"gauge,omitempty"`
}

// AxisConfig declares one axis of a chart panel.
type AxisConfig struct {
	Name     string   `toml:"name" json:"name"`
	Kind     string   `toml:"kind" json:"kind,omitempty"`
	Position string   `toml:"position" json:"position"`
	Primary  bool     `toml:"primary" json:"primary,omitempty"`
	Grid     bool     `toml:"grid" json:"grid,omitempty"`
	Ticks    int      `toml:"ticks" json:"ticks,omitempty"`
	Min      *float64 `toml:"min" json:"min,omitempty"`
	Max      *float64 `toml:"max" json:"max,omitempty"`
	Title    string   `toml:"title" json:"title,omitempty"`
	Format   string   `toml:"format" json:"format,omitempty"`
}

// LayerConfig declares one layer of a chart panel.
type LayerConfig struct {
	Kind string `toml:"kind" json:"kind"`
	// Axis is the secondary axis the layer plots against.
	Axis string `toml:"axis" json:"axis"`
	// Data is a CSV, JSON or XLSX file relative to the dashboard.
	Data  string `toml:"data" json:"data"`
	Sheet string `toml:"sheet" json:"sheet,omitempty"`

	Caption string   `toml:"caption" json:"caption,omitempty"`
	Names   []string `toml:"names" json:"names,omitempty"`
	Colors  []string `toml:"colors" json:"colors,omitempty"`
	// Hidden lists series positions that start hidden.
	Hidden []int `toml:"hidden" json:"hidden,omitempty"`

	// Line and area settings.
	Curve  string `toml:"curve" json:"curve,omitempty"`
	Dashed bool   `toml:"dashed" json:"dashed,omitempty"`

	// Bar settings.
	ShowValues    bool   `toml:"show_values" json:"show_values,omitempty"`
	ValuePosition string `toml:"value_position" json:"value_position,omitempty"`
	Dynamics      *bool  `toml:"dynamics" json:"dynamics,omitempty"`
}

// Load reads and validates a dashboard file. Keys the decoder did not
// recognize are returned as warnings.
func Load(path string) (*Dashboard, []string, error) {
	if err := errors.ValidatePath(path); err != nil {
		return nil, nil, err
	}
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "dashboard %s", path)
		}
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "open dashboard")
	}
	defer f.Close()
	return Decode(f, filepath.Dir(path))
}

// Decode reads a dashboard from r. Data paths resolve against dir.
func Decode(r io.Reader, dir string) (*Dashboard, []string, error) {
	var d Dashboard
	md, err := toml.NewDecoder(r).Decode(&d)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "decode dashboard")
	}
	var warnings []string
	for _, key := range md.Undecoded() {
		warnings = append(warnings, fmt.Sprintf("unknown key %q", key.String()))
	}
	d.Dir = dir
	for i := range d.Panels {
		if d.Panels[i].Kind == "" {
			d.Panels[i].Kind = KindChart
		}
	}
	if err := d.Validate(); err != nil {
		return nil, warnings, err
	}
	return &d, warnings, nil
}

// Validate checks every panel and reports all problems at once.
func (d *Dashboard) Validate() error {
	var errs errors.MultiError
	if len(d.Panels) == 0 {
		errs.Add(errors.New(errors.ErrCodeInvalidConfig, "dashboard has no panels"))
	}
	if d.Theme != "" {
		errs.Add(ValidateTheme(d.Theme))
	}
	for _, c := range d.Palette {
		errs.Add(errors.ValidateColor(c))
	}
	seen := make(map[string]bool, len(d.Panels))
	for _, p := range d.Panels {
		if seen[p.Name] {
			errs.Add(errors.New(errors.ErrCodeInvalidConfig, "duplicate panel name %q", p.Name))
			continue
		}
		seen[p.Name] = true
		if err := p.Validate(); err != nil {
			errs.Add(annotate(err, "panel %q", p.Name))
		}
	}
	return errs.ErrOrNil()
}

// Validate checks one panel.
func (p *Panel) Validate() error {
	if err := errors.ValidateName(p.Name); err != nil {
		return err
	}
	if err := ValidatePanelKind(p.Kind); err != nil {
		return err
	}
	if p.Width < 0 || p.Height < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "size must not be negative")
	}
	if p.Kind == KindGauge {
		if p.Gauge == nil {
			return errors.New(errors.ErrCodeInvalidConfig, "gauge panel needs a [panel.gauge] table")
		}
		_, err := gauge.ParseZeroOn(string(p.Gauge.ZeroOn))
		return err
	}

	if _, err := p.Input(); err != nil {
		return err
	}
	if len(p.Window) != 0 && len(p.Window) != 2 {
		return errors.New(errors.ErrCodeInvalidConfig, "window needs [start, end]")
	}
	if len(p.Layers) == 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "chart panel has no layers")
	}
	for i, l := range p.Layers {
		if err := l.Validate(); err != nil {
			return annotate(err, "layer %d", i)
		}
	}
	return nil
}

// Validate checks one layer declaration.
func (l *LayerConfig) Validate() error {
	if err := ValidateLayerKind(l.Kind); err != nil {
		return err
	}
	if err := errors.ValidatePath(l.Data); err != nil {
		return err
	}
	if l.Axis == "" {
		return errors.New(errors.ErrCodeInvalidConfig, "layer needs a secondary axis")
	}
	for _, c := range l.Colors {
		if err := errors.ValidateColor(c); err != nil {
			return err
		}
	}
	if _, err := scene.ParseCurve(l.Curve); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidConfig, err, "curve")
	}
	switch l.ValuePosition {
	case "", "above", "below":
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "invalid value_position %q (want above or below)", l.ValuePosition)
	}
	return nil
}

// Declarations converts the axis tables of a chart panel.
func (p *Panel) Declarations() ([]axis.Declaration, error) {
	decls := make([]axis.Declaration, len(p.Axes))
	for i, a := range p.Axes {
		kind := scale.Numeric
		if a.Kind != "" {
			k, err := scale.ParseKind(a.Kind)
			if err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidAxis, err, "axis %q", a.Name)
			}
			kind = k
		}
		pos, err := axis.ParsePosition(a.Position)
		if err != nil {
			return nil, err
		}
		decls[i] = axis.Declaration{
			Name:     a.Name,
			Kind:     kind,
			Position: pos,
			Min:      a.Min,
			Max:      a.Max,
			Ticks:    a.Ticks,
			Primary:  a.Primary,
			Title:    a.Title,
			Format:   a.Format,
			Grid:     a.Grid,
		}
	}
	if err := axis.Validate(decls); err != nil {
		return nil, err
	}
	return decls, nil
}

// Input builds the chart input of a chart panel. Size is left to the
// caller.
func (p *Panel) Input() (chart.Input, error) {
	in := chart.DefaultInput()
	decls, err := p.Declarations()
	if err != nil {
		return in, err
	}
	in.Axes = decls
	if p.Tooltip != nil {
		in.Tooltip = *p.Tooltip
	}
	if p.Legend != nil {
		in.Legend = *p.Legend
	}
	mode, err := interact.ParseMode(p.TooltipMode)
	if err != nil {
		return in, errors.Wrap(errors.ErrCodeInvalidConfig, err, "tooltip_mode")
	}
	in.TooltipMode = mode
	switch len(p.Margins) {
	case 0:
	case 4:
		in.Margins = chart.Margins{Top: p.Margins[0], Right: p.Margins[1], Bottom: p.Margins[2], Left: p.Margins[3]}
	default:
		return in, errors.New(errors.ErrCodeInvalidConfig, "margins need [top, right, bottom, left]")
	}
	return in, nil
}

// DataPath resolves a layer's data file against the dashboard directory.
func (d *Dashboard) DataPath(l LayerConfig) string {
	if filepath.IsAbs(l.Data) || d.Dir == "" {
		return l.Data
	}
	return filepath.Join(d.Dir, l.Data)
}

// annotate wraps err with context, keeping its code.
func annotate(err error, format string, args ...any) error {
	code := errors.GetCode(err)
	if code == "" {
		code = errors.ErrCodeInternal
	}
	return errors.Wrap(code, err, format, args...)
}
