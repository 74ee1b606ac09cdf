// Package pipeline renders chartkit dashboards.
//
// A dashboard is a TOML file of panels. Each panel is either a chart (axes
// plus layers fed from CSV, JSON or XLSX data files) or a gauge dial. The
// pipeline is shared by every CLI command so loading, caching and output
// behave the same everywhere.
//
// # Stages
//
//  1. Load: decode and validate the dashboard ([Load])
//  2. Data: import each referenced data file, cached by content hash
//  3. Render: draw every panel and write it in the requested formats
//
// Panels are independent. [Runner.Execute] renders them concurrently, each
// with its own composer and palette.
//
// # Usage
//
//	dash, warnings, err := pipeline.Load("dashboard.toml")
//	if err != nil {
//	    return err
//	}
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, dash, pipeline.Options{
//	    Formats: []sink.Format{sink.FormatSVG},
//	})
//	svg := result.Panels[0].Artifacts[sink.FormatSVG]
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/chartkit/pkg/cache"
	"github.com/matzehuels/chartkit/pkg/chart/interact"
	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/render/sink"
	"github.com/matzehuels/chartkit/pkg/render/theme"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth is the default chart panel width in pixels.
	DefaultWidth = 800.0

	// DefaultHeight is the default chart panel height in pixels.
	DefaultHeight = 600.0

	// DefaultGaugeSize is the default width and height of a gauge panel.
	DefaultGaugeSize = 300.0

	// DefaultParallel is the number of panels rendered at once.
	DefaultParallel = 4
)

// Panel kinds.
const (
	KindChart = "chart"
	KindGauge = "gauge"
)

// Layer kinds.
const (
	LayerBars        = "bars"
	LayerStacked     = "stacked"
	LayerFullStacked = "full-stacked"
	LayerLine        = "line"
	LayerArea        = "area"
)

// ValidPanelKinds is the set of supported panel kinds.
var ValidPanelKinds = map[string]bool{
	KindChart: true,
	KindGauge: true,
}

// ValidLayerKinds is the set of supported layer kinds.
var ValidLayerKinds = map[string]bool{
	LayerBars:        true,
	LayerStacked:     true,
	LayerFullStacked: true,
	LayerLine:        true,
	LayerArea:        true,
}

// =============================================================================
// Options - Run Configuration
// =============================================================================

// Options configures one pipeline run. Zero values select defaults.
type Options struct {
	// Formats to write for every panel.
	Formats []sink.Format `json:"formats,omitempty"`

	// Width and Height override every panel's size when non-zero.
	Width  float64 `json:"width,omitempty"`
	Height float64 `json:"height,omitempty"`

	// Theme overrides the dashboard theme when set.
	Theme string `json:"theme,omitempty"`

	// Panels restricts the run to the named panels.
	Panels []string `json:"panels,omitempty"`

	Parallel int `json:"parallel,omitempty"`

	// Refresh skips cache reads; results are still written to the cache.
	Refresh bool `json:"refresh,omitempty"`

	DatasetTTL  time.Duration `json:"dataset_ttl,omitempty"`
	ArtifactTTL time.Duration `json:"artifact_ttl,omitempty"`

	Logger *log.Logger `json:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Panels in dashboard order.
	Panels []PanelResult

	Stats     Stats
	CacheInfo CacheInfo
}

// PanelResult is one rendered panel.
type PanelResult struct {
	Name string
	Kind string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[sink.Format][]byte

	// Legend is the legend state of a chart panel at render time. It is
	// empty when the artifacts came from the cache.
	Legend []interact.LegendEntry

	// CacheHit is true when every artifact came from the cache.
	CacheHit bool

	Duration time.Duration
}

// Stats contains run statistics.
type Stats struct {
	Panels     int
	Layers     int
	RenderTime time.Duration
}

// CacheInfo counts cache hits per entry kind.
type CacheInfo struct {
	DatasetHits  int
	ArtifactHits int
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidatePanelKind checks that a panel kind is valid.
func ValidatePanelKind(kind string) error {
	if !ValidPanelKinds[kind] {
		return errors.New(errors.ErrCodeInvalidConfig, "invalid panel kind: %q (must be one of: chart, gauge)", kind)
	}
	return nil
}

// ValidateLayerKind checks that a layer kind is valid.
func ValidateLayerKind(kind string) error {
	if !ValidLayerKinds[kind] {
		return errors.New(errors.ErrCodeInvalidConfig,
			"invalid layer kind: %q (must be one of: bars, stacked, full-stacked, line, area)", kind)
	}
	return nil
}

// ValidateTheme checks that a theme name is known.
func ValidateTheme(name string) error {
	if theme.ByName(name) == nil {
		return errors.New(errors.ErrCodeInvalidConfig, "unknown theme: %q (must be one of: light, dark)", name)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if len(o.Formats) == 0 {
		o.Formats = []sink.Format{sink.FormatSVG}
	}
	for _, f := range o.Formats {
		if _, err := sink.ParseFormats(string(f)); err != nil {
			return err
		}
	}
	if o.Width < 0 || o.Height < 0 {
		return errors.New(errors.ErrCodeInvalidInput, "size must not be negative")
	}
	if o.Theme != "" {
		if err := ValidateTheme(o.Theme); err != nil {
			return err
		}
	}
	if o.Parallel <= 0 {
		o.Parallel = DefaultParallel
	}
	if o.DatasetTTL == 0 {
		o.DatasetTTL = cache.TTLDataset
	}
	if o.ArtifactTTL == 0 {
		o.ArtifactTTL = cache.TTLArtifact
	}
	if o.Logger == nil {
		o.Logger = log.New(io.Discard)
	}
	o.validated = true
	return nil
}

// Size returns the canvas size of a panel: the run override, then the
// panel's own size, then the default for its kind.
func (o *Options) Size(p Panel) (w, h float64) {
	w, h = DefaultWidth, DefaultHeight
	if p.Kind == KindGauge {
		w, h = DefaultGaugeSize, DefaultGaugeSize
	}
	if p.Width > 0 {
		w = p.Width
	}
	if p.Height > 0 {
		h = p.Height
	}
	if o.Width > 0 {
		w = o.Width
	}
	if o.Height > 0 {
		h = o.Height
	}
	return w, h
}

// Selected reports whether the named panel is part of this run.
func (o *Options) Selected(name string) bool {
	return len(o.Panels) == 0 || slices.Contains(o.Panels, name)
}

// ArtifactKeyOpts returns cache key options for one rendered format.
func (o *Options) ArtifactKeyOpts(format sink.Format, w, h float64, themeName string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format: string(format),
		Width:  w,
		Height: h,
		Theme:  themeName,
	}
}
