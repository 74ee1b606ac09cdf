package pipeline

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/errgroup"

	"github.com/matzehuels/chartkit/pkg/cache"
	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/gauge"
	"github.com/matzehuels/chartkit/pkg/observability"
	"github.com/matzehuels/chartkit/pkg/palette"
	"github.com/matzehuels/chartkit/pkg/render/sink"
	"github.com/matzehuels/chartkit/pkg/render/theme"
	"github.com/matzehuels/chartkit/pkg/scene"
)

// Runner executes dashboards with caching.
//
// The Runner holds no per-run state. Multiple goroutines can use the same
// Runner with different dashboards and options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:  c,
		Keyer:  keyer,
		Logger: logger,
	}
}

// Load reads a dashboard and reports the load to the pipeline hooks.
// Unknown keys are logged as warnings.
func (r *Runner) Load(ctx context.Context, path string) (*Dashboard, error) {
	hooks := observability.Pipeline()
	hooks.OnLoadStart(ctx, path)
	start := time.Now()

	d, warnings, err := Load(path)
	for _, w := range warnings {
		r.Logger.Warn("dashboard", "path", path, "warning", w)
	}
	panels := 0
	if d != nil {
		panels = len(d.Panels)
	}
	hooks.OnLoadComplete(ctx, path, panels, time.Since(start), err)
	if err != nil {
		return nil, err
	}
	r.Logger.Info("loaded dashboard", "path", path, "panels", panels)
	return d, nil
}

// Execute renders every selected panel of d in every requested format.
// Panels render concurrently, up to opts.Parallel at a time. The first
// failing panel cancels the rest.
func (r *Runner) Execute(ctx context.Context, d *Dashboard, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, annotate(err, "invalid options")
	}
	if d == nil {
		return nil, errors.New(errors.ErrCodeInvalidInput, "no dashboard")
	}

	var panels []Panel
	for _, p := range d.Panels {
		if opts.Selected(p.Name) {
			panels = append(panels, p)
		}
	}
	if len(panels) == 0 {
		return nil, errors.New(errors.ErrCodeNotFound, "no panel matches %v", opts.Panels)
	}

	formats := make([]string, len(opts.Formats))
	for i, f := range opts.Formats {
		formats[i] = string(f)
	}
	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, formats)
	start := time.Now()

	results := make([]PanelResult, len(panels))
	stats := make([]panelStats, len(panels))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.Parallel)
	for i, p := range panels {
		i, p := i, p
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, st, err := r.observedPanel(gctx, d, p, opts)
			if err != nil {
				return annotate(err, "panel %q", p.Name)
			}
			results[i], stats[i] = res, st
			return nil
		})
	}
	err := g.Wait()
	hooks.OnRenderComplete(ctx, formats, time.Since(start), err)
	if err != nil {
		return nil, err
	}

	result := &Result{Panels: results}
	result.Stats.Panels = len(results)
	result.Stats.RenderTime = time.Since(start)
	for i, st := range stats {
		result.Stats.Layers += st.layers
		result.CacheInfo.DatasetHits += st.datasetHits
		if results[i].CacheHit {
			result.CacheInfo.ArtifactHits++
		}
	}

	r.Logger.Info("rendered dashboard",
		"panels", result.Stats.Panels,
		"formats", formats,
		"cached", result.CacheInfo.ArtifactHits,
		"duration", result.Stats.RenderTime)
	return result, nil
}

type panelStats struct {
	layers      int
	datasetHits int
}

// RenderPanel renders one panel of d. Datasets are imported first so the
// artifact key covers the data; a full artifact cache hit skips drawing.
func (r *Runner) RenderPanel(ctx context.Context, d *Dashboard, p Panel, opts Options) (PanelResult, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return PanelResult{}, err
	}
	res, _, err := r.observedPanel(ctx, d, p, opts)
	return res, err
}

func (r *Runner) observedPanel(ctx context.Context, d *Dashboard, p Panel, opts Options) (PanelResult, panelStats, error) {
	hooks := observability.Pipeline()
	hooks.OnPanelStart(ctx, p.Name, p.Kind)
	start := time.Now()
	res, st, err := r.renderPanel(ctx, d, p, opts)
	res.Duration = time.Since(start)
	hooks.OnPanelComplete(ctx, p.Name, p.Kind, res.Duration, err)
	if err == nil {
		opts.Logger.Debug("rendered panel",
			"panel", p.Name,
			"kind", p.Kind,
			"cached", res.CacheHit,
			"duration", res.Duration)
	}
	return res, st, err
}

func (r *Runner) renderPanel(ctx context.Context, d *Dashboard, p Panel, opts Options) (PanelResult, panelStats, error) {
	res := PanelResult{Name: p.Name, Kind: p.Kind}
	var st panelStats

	th, err := panelTheme(d, opts)
	if err != nil {
		return res, st, err
	}
	w, h := opts.Size(p)

	var data []dataset
	if p.Kind == KindChart {
		if data, err = r.loadPanelData(ctx, d, p, opts); err != nil {
			return res, st, err
		}
		st.layers = len(data)
		for _, ds := range data {
			if ds.hit {
				st.datasetHits++
			}
		}
	}

	hash, err := panelHash(d, p, data)
	if err != nil {
		return res, st, err
	}
	keys := make(map[sink.Format]string, len(opts.Formats))
	for _, f := range opts.Formats {
		keys[f] = r.Keyer.ArtifactKey(hash, opts.ArtifactKeyOpts(f, w, h, th.Name))
	}
	if !opts.Refresh {
		if artifacts, ok := r.cachedArtifacts(ctx, keys); ok {
			res.Artifacts, res.CacheHit = artifacts, true
			return res, st, nil
		}
	}

	var root *scene.Node
	var jsonOpts []sink.JSONOption
	switch p.Kind {
	case KindGauge:
		g, err := gauge.Compute(*p.Gauge, gauge.WithLogger(opts.Logger))
		if err != nil {
			return res, st, err
		}
		root = scene.NewRoot(w, h)
		if _, err := gauge.Draw(root, g, w, h, th); err != nil {
			return res, st, err
		}
		jsonOpts = append(jsonOpts, sink.WithJSONGauge(*g))
	default:
		c, err := buildChart(ctx, d, p, data, w, h, th, opts)
		if err != nil {
			return res, st, err
		}
		root = c.Scene()
		res.Legend = c.Interactions().Legend()
		jsonOpts = append(jsonOpts, sink.WithJSONLegend(res.Legend))
	}
	jsonOpts = append(jsonOpts, sink.WithJSONName(p.Name))

	res.Artifacts = make(map[sink.Format][]byte, len(opts.Formats))
	for _, f := range opts.Formats {
		if err := ctx.Err(); err != nil {
			return res, st, err
		}
		out, err := sink.Render(f, root, jsonOpts...)
		if err != nil {
			return res, st, err
		}
		res.Artifacts[f] = out
		if err := r.Cache.Set(ctx, keys[f], out, opts.ArtifactTTL); err != nil {
			opts.Logger.Warn("cache artifact", "panel", p.Name, "format", f, "error", err)
		}
	}
	return res, st, nil
}

// Compose loads the data of a chart panel and returns its drawn
// composer, for hosts that keep interacting with the chart.
func (r *Runner) Compose(ctx context.Context, d *Dashboard, p Panel, opts Options) (*chart.Composer, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if p.Kind != KindChart {
		return nil, errors.New(errors.ErrCodeInvalidInput, "panel %q is a %s, not a chart", p.Name, p.Kind)
	}
	th, err := panelTheme(d, opts)
	if err != nil {
		return nil, err
	}
	data, err := r.loadPanelData(ctx, d, p, opts)
	if err != nil {
		return nil, err
	}
	w, h := opts.Size(p)
	return buildChart(ctx, d, p, data, w, h, th, opts)
}

// Panel returns the named panel of d.
func (d *Dashboard) Panel(name string) (Panel, error) {
	for _, p := range d.Panels {
		if p.Name == name {
			return p, nil
		}
	}
	return Panel{}, errors.New(errors.ErrCodeNotFound, "no panel named %q", name)
}

func (r *Runner) loadPanelData(ctx context.Context, d *Dashboard, p Panel, opts Options) ([]dataset, error) {
	data := make([]dataset, 0, len(p.Layers))
	for _, lc := range p.Layers {
		ds, err := r.loadDataset(ctx, d.DataPath(lc), lc.Sheet, opts)
		if err != nil {
			return nil, err
		}
		data = append(data, ds)
	}
	return data, nil
}

// panelTheme resolves the run theme over the dashboard theme.
func panelTheme(d *Dashboard, opts Options) (*theme.Theme, error) {
	name := d.Theme
	if opts.Theme != "" {
		name = opts.Theme
	}
	th := theme.ByName(name)
	if th == nil {
		return nil, ValidateTheme(name)
	}
	return th, nil
}

// buildChart composes and draws a chart panel over its loaded datasets.
func buildChart(ctx context.Context, d *Dashboard, p Panel, data []dataset, w, h float64, th *theme.Theme, opts Options) (*chart.Composer, error) {
	in, err := p.Input()
	if err != nil {
		return nil, err
	}
	in.Width, in.Height = w, h

	reg := chart.NewRegistry(p.Name)
	for i, lc := range p.Layers {
		l, err := BuildLayer(lc, data[i].table)
		if err != nil {
			return nil, annotate(err, "layer %d", i)
		}
		reg.Register(l)
	}
	c := chart.New(in, reg, palette.New(d.Palette...),
		chart.WithLogger(opts.Logger),
		chart.WithTheme(th))
	if len(p.Window) == 2 {
		c.SetWindow(p.Window[0], p.Window[1])
	}
	c.Draw(ctx)
	return c, nil
}

// cachedArtifacts returns every keyed artifact, or false if any is missing.
func (r *Runner) cachedArtifacts(ctx context.Context, keys map[sink.Format]string) (map[sink.Format][]byte, bool) {
	artifacts := make(map[sink.Format][]byte, len(keys))
	for f, key := range keys {
		data, hit, err := r.Cache.Get(ctx, key)
		if err != nil || !hit {
			return nil, false
		}
		artifacts[f] = data
	}
	return artifacts, true
}

// panelHash hashes everything a panel's artifacts depend on: its
// declaration, the dashboard palette and the content of its data files.
func panelHash(d *Dashboard, p Panel, data []dataset) (string, error) {
	hashes := make([]string, len(data))
	for i, ds := range data {
		hashes[i] = ds.hash
	}
	b, err := json.Marshal(struct {
		Panel   Panel    `json:"panel"`
		Palette []string `json:"palette,omitempty"`
		Data    []string `json:"data,omitempty"`
	}{p, d.Palette, hashes})
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeInternal, err, "hash panel")
	}
	return cache.Hash(b), nil
}

// WriteArtifacts writes every artifact of result to dir as
// <panel><ext> and returns the written paths.
func WriteArtifacts(dir string, result *Result) ([]string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidPath, err, "create output directory")
	}
	var paths []string
	for _, p := range result.Panels {
		for _, f := range sink.Formats {
			data, ok := p.Artifacts[f]
			if !ok {
				continue
			}
			path := filepath.Join(dir, p.Name+f.Ext())
			if err := os.WriteFile(path, data, 0o644); err != nil {
				return paths, errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", path)
			}
			paths = append(paths, path)
		}
	}
	return paths, nil
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
