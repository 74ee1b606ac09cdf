package cli

import (
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/gauge"
	"github.com/matzehuels/chartkit/pkg/pipeline"
	"github.com/matzehuels/chartkit/pkg/render/sink"
)

// gaugeOpts holds the command-line flags for the gauge command.
type gaugeOpts struct {
	output    string
	format    string
	name      string
	units     string
	fact      float64
	deviation float64
	bounds    string
	zeroOn    string
	size      float64
	theme     string
}

// gaugeCommand creates the gauge command, which renders one dial without a
// dashboard file.
func (c *CLI) gaugeCommand() *cobra.Command {
	opts := gaugeOpts{}

	cmd := &cobra.Command{
		Use:   "gauge",
		Short: "Render a single gauge dial",
		Long: `Render a single gauge dial from flags.

Bounds are cumulative zone limits with their colors, in ascending order.
The deviation is the fact minus the nearest threshold and is shown signed
under the fact.`,
		Example: `  chartkit gauge --fact 70 --deviation 5 --bounds 50:#2e9e44,100:#e6b800
  chartkit gauge --fact 12 --bounds 10:#ccc,20:#f00 --zero-on right -f json -o dial.json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGauge(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "out", "o", "", "output file (default gauge.<format>)")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "svg", "output format: svg, json, pdf, png")
	cmd.Flags().StringVar(&opts.name, "name", "", "dial title")
	cmd.Flags().StringVar(&opts.units, "units", "", "engineering units shown under the title")
	cmd.Flags().Float64Var(&opts.fact, "fact", 0, "current value")
	cmd.Flags().Float64Var(&opts.deviation, "deviation", 0, "fact minus the nearest threshold")
	cmd.Flags().StringVar(&opts.bounds, "bounds", "", "zones as value:color pairs, e.g. 50:#f00,100:#0f0")
	cmd.Flags().StringVar(&opts.zeroOn, "zero-on", "left", "end of the dial that represents zero: left, right")
	cmd.Flags().Float64Var(&opts.size, "size", pipeline.DefaultGaugeSize, "width and height in pixels")
	cmd.Flags().StringVar(&opts.theme, "theme", "", "theme: light, dark")
	cmd.MarkFlagRequired("fact")
	cmd.MarkFlagRequired("bounds")

	return cmd
}

func (c *CLI) runGauge(cmd *cobra.Command, opts gaugeOpts) error {
	ctx := cmd.Context()

	formats, err := sink.ParseFormats(opts.format)
	if err != nil {
		return err
	}
	if len(formats) != 1 {
		return errors.New(errors.ErrCodeInvalidFormat, "gauge writes one format at a time")
	}
	bounds, err := parseBounds(opts.bounds)
	if err != nil {
		return err
	}
	zero, err := gauge.ParseZeroOn(opts.zeroOn)
	if err != nil {
		return err
	}

	dash := &pipeline.Dashboard{
		Theme: opts.theme,
		Panels: []pipeline.Panel{{
			Name:   "gauge",
			Kind:   pipeline.KindGauge,
			Width:  opts.size,
			Height: opts.size,
			Gauge: &gauge.Dial{
				Name:      opts.name,
				EngUnits:  opts.units,
				Fact:      opts.fact,
				Deviation: opts.deviation,
				ZeroOn:    zero,
				Bounds:    bounds,
			},
		}},
	}
	if err := dash.Validate(); err != nil {
		return err
	}

	runner := pipeline.NewRunner(nil, nil, c.Logger)
	res, err := runner.RenderPanel(ctx, dash, dash.Panels[0], pipeline.Options{Formats: formats})
	if err != nil {
		return err
	}

	out := opts.output
	if out == "" {
		out = "gauge" + formats[0].Ext()
	}
	if err := os.WriteFile(out, res.Artifacts[formats[0]], 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", out)
	}
	printSuccess("Rendered gauge")
	printFile(out)
	return nil
}

// parseBounds parses "50:#f00,100:#0f0" into dial bounds.
func parseBounds(s string) ([]gauge.Bound, error) {
	var bounds []gauge.Bound
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		value, color, ok := strings.Cut(part, ":")
		if !ok {
			return nil, errors.New(errors.ErrCodeInvalidInput, "bound %q: want value:color", part)
		}
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "bound %q", part)
		}
		color = strings.TrimSpace(color)
		if err := errors.ValidateColor(color); err != nil {
			return nil, err
		}
		bounds = append(bounds, gauge.Bound{Value: v, Color: color})
	}
	if len(bounds) == 0 {
		return nil, errors.New(errors.ErrCodeInvalidInput, "at least one bound is required")
	}
	return bounds, nil
}
