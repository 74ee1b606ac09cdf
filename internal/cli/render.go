package cli

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartkit/pkg/pipeline"
	"github.com/matzehuels/chartkit/pkg/render/sink"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output directory
	formats  string   // comma-separated output formats
	panels   []string // restrict to these panels
	width    float64  // override panel widths
	height   float64  // override panel heights
	theme    string   // override the dashboard theme
	parallel int      // panels rendered at once
	cache    cacheOpts
}

// renderCommand creates the render command.
func (c *CLI) renderCommand() *cobra.Command {
	opts := renderOpts{}

	cmd := &cobra.Command{
		Use:   "render <dashboard.toml>",
		Short: "Render every panel of a dashboard",
		Long: `Render every panel of a dashboard file to the output directory.

Each panel is written as <panel>.<format>. Data files are read relative to
the dashboard. Rendered panels are cached by their definition and data, so
unchanged panels are not drawn again.`,
		Example: `  chartkit render dashboard.toml
  chartkit render dashboard.toml -o out -f svg,json --panel sales
  chartkit render dashboard.toml --theme dark --width 1200`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runRender(cmd, args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "out", "o", ".", "output directory")
	cmd.Flags().StringVarP(&opts.formats, "format", "f", "svg", "output formats: svg, json, pdf, png (comma-separated)")
	cmd.Flags().StringSliceVar(&opts.panels, "panel", nil, "render only these panels")
	cmd.Flags().Float64Var(&opts.width, "width", 0, "override every panel's width")
	cmd.Flags().Float64Var(&opts.height, "height", 0, "override every panel's height")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "override the dashboard theme: light, dark")
	cmd.Flags().IntVar(&opts.parallel, "parallel", pipeline.DefaultParallel, "panels rendered at once")
	opts.cache.register(cmd)

	return cmd
}

func (c *CLI) runRender(cmd *cobra.Command, path string, opts renderOpts) error {
	ctx := cmd.Context()
	logger := loggerFromContext(ctx)

	formats, err := sink.ParseFormats(opts.formats)
	if err != nil {
		return err
	}
	runner, err := c.newRunner(ctx, opts.cache)
	if err != nil {
		return err
	}
	defer runner.Close()

	var spin *Spinner
	if logger.GetLevel() > log.DebugLevel {
		spin = newSpinnerWithContext(ctx, "Loading dashboard")
		spin.Start()
	}

	prog := newProgress(logger)
	dash, err := runner.Load(ctx, path)
	if err != nil {
		failSpinner(spin)
		return err
	}
	if spin != nil {
		spin.Update(fmt.Sprintf("Rendering %d panels", len(dash.Panels)))
	}

	result, err := runner.Execute(ctx, dash, pipeline.Options{
		Formats:     formats,
		Width:       opts.width,
		Height:      opts.height,
		Theme:       opts.theme,
		Panels:      opts.panels,
		Parallel:    opts.parallel,
		Refresh:     opts.cache.refresh,
		ArtifactTTL: opts.cache.ttl,
		Logger:      logger,
	})
	if err != nil {
		failSpinner(spin)
		return err
	}
	paths, err := pipeline.WriteArtifacts(opts.output, result)
	if err != nil {
		failSpinner(spin)
		return err
	}
	prog.done(fmt.Sprintf("Rendered %d panels", result.Stats.Panels))

	if spin != nil {
		spin.StopWithSuccess(fmt.Sprintf("Rendered %d panels", result.Stats.Panels))
	} else {
		printSuccess("Rendered %d panels", result.Stats.Panels)
	}
	for _, p := range result.Panels {
		printPanel(p)
	}
	for _, p := range paths {
		printFile(p)
	}
	if len(dash.Panels) > 0 {
		printNextStep("Explore a chart", fmt.Sprintf("%s explore %s --panel <name>", appName, path))
	}
	return nil
}

// failSpinner stops spin with a message naming the step that did not
// finish. A nil spinner is ignored.
func failSpinner(spin *Spinner) {
	if spin == nil {
		return
	}
	spin.StopWithError(spinnerFailure(spin))
}

// spinnerFailure describes why the spinner's current step ended early.
func spinnerFailure(spin *Spinner) string {
	if spin.Cancelled() {
		return spin.Message() + ": cancelled"
	}
	return spin.Message() + ": failed"
}
