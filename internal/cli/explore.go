package cli

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartkit/pkg/chart"
	"github.com/matzehuels/chartkit/pkg/errors"
	"github.com/matzehuels/chartkit/pkg/pipeline"
	"github.com/matzehuels/chartkit/pkg/render/sink"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// exploreCommand creates the explore command: an interactive legend for
// one chart panel.
func (c *CLI) exploreCommand() *cobra.Command {
	var panel, output string

	cmd := &cobra.Command{
		Use:   "explore <dashboard.toml>",
		Short: "Toggle legend options of a chart panel interactively",
		Long: `Open a chart panel of a dashboard in an interactive legend.

Space toggles the series under the cursor, as clicking a legend option
would. Enter writes the chart with the current visibility as SVG.`,
		Example: `  chartkit explore dashboard.toml --panel sales
  chartkit explore dashboard.toml --panel sales -o sales-plan-only.svg`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			runner := pipeline.NewRunner(nil, nil, loggerFromContext(ctx))
			dash, err := runner.Load(ctx, args[0])
			if err != nil {
				return err
			}
			if panel == "" {
				panel = firstChart(dash)
			}
			p, err := dash.Panel(panel)
			if err != nil {
				return err
			}
			composer, err := runner.Compose(ctx, dash, p, pipeline.Options{})
			if err != nil {
				return err
			}

			model := NewExploreModel(p.Name, composer)
			if len(model.items()) == 0 {
				printWarning("Panel %q has no series to toggle", p.Name)
				return nil
			}
			final, err := tea.NewProgram(model, tea.WithContext(ctx)).Run()
			if err != nil {
				return errors.Wrap(errors.ErrCodeInternal, err, "run explorer")
			}
			m, ok := final.(ExploreModel)
			if !ok || !m.Save {
				return nil
			}

			if output == "" {
				output = p.Name + sink.FormatSVG.Ext()
			}
			if err := os.WriteFile(output, sink.RenderSVG(composer.Scene()), 0o644); err != nil {
				return errors.Wrap(errors.ErrCodeInvalidPath, err, "write %s", output)
			}
			printSuccess("Saved %s", p.Name)
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVar(&panel, "panel", "", "chart panel to explore (default the first chart)")
	cmd.Flags().StringVarP(&output, "out", "o", "", "SVG file written on enter (default <panel>.svg)")

	return cmd
}

func firstChart(d *pipeline.Dashboard) string {
	for _, p := range d.Panels {
		if p.Kind == pipeline.KindChart {
			return p.Name
		}
	}
	return ""
}

// =============================================================================
// ExploreModel - Interactive legend
// =============================================================================

// legendItem is one toggleable row: a legend option, or a whole layer
// when the layer has no options.
type legendItem struct {
	layerID  string
	optionID string // empty for a whole layer
	layer    string
	title    string
	color    string
	selected bool
}

// ExploreModel is the bubbletea model for the interactive legend.
type ExploreModel struct {
	Panel    string
	Composer *chart.Composer
	Cursor   int
	// Save is set when the user confirmed with enter.
	Save bool
}

// NewExploreModel creates an explorer over a drawn composer.
func NewExploreModel(panel string, c *chart.Composer) ExploreModel {
	return ExploreModel{Panel: panel, Composer: c}
}

// items reads the current legend state.
func (m ExploreModel) items() []legendItem {
	var items []legendItem
	for i, e := range m.Composer.Interactions().Legend() {
		layerTitle := e.Data.Title
		if layerTitle == "" {
			layerTitle = "layer " + strconv.Itoa(i+1)
		}
		if len(e.Data.Options) == 0 {
			items = append(items, legendItem{
				layerID:  e.LayerID,
				layer:    layerTitle,
				title:    layerTitle,
				color:    e.Data.Color,
				selected: !e.Data.Inactive,
			})
			continue
		}
		for _, o := range e.Data.Options {
			items = append(items, legendItem{
				layerID:  e.LayerID,
				optionID: o.ID,
				layer:    layerTitle,
				title:    o.Title,
				color:    o.Color,
				selected: o.Selected,
			})
		}
	}
	return items
}

func (m ExploreModel) Init() tea.Cmd {
	return nil
}

func (m ExploreModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	items := m.items()
	switch key.String() {
	case "q", "ctrl+c", "esc":
		return m, tea.Quit
	case "up", "k":
		if m.Cursor > 0 {
			m.Cursor--
		}
	case "down", "j":
		if m.Cursor < len(items)-1 {
			m.Cursor++
		}
	case " ", "space", "x":
		if m.Cursor < len(items) {
			m.toggle(items[m.Cursor])
		}
	case "enter":
		m.Save = true
		return m, tea.Quit
	}
	return m, nil
}

func (m ExploreModel) toggle(it legendItem) {
	coord := m.Composer.Interactions()
	if it.optionID == "" {
		coord.ToggleLayer(it.layerID)
		return
	}
	coord.ToggleLegend(it.layerID, it.optionID, !it.selected)
}

func (m ExploreModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Legend: " + m.Panel))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  space toggle  ⏎ save svg  q quit"))
	b.WriteString("\n\n")

	items := m.items()
	lastLayer := ""
	for i, it := range items {
		if it.optionID != "" && it.layer != lastLayer {
			b.WriteString(listDimStyle.Render("  " + it.layer))
			b.WriteString("\n")
		}
		lastLayer = it.layer

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		check := "[ ]"
		if it.selected {
			check = "[x]"
		}
		swatch := lipgloss.NewStyle().Foreground(lipgloss.Color(it.color)).Render("■")
		line := fmt.Sprintf("%s%s %s %s", cursor, check, swatch, it.title)

		switch {
		case i == m.Cursor:
			b.WriteString(listSelectedStyle.Render(line))
		case !it.selected:
			b.WriteString(listDimStyle.Render(line))
		default:
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	hidden := 0
	for _, it := range items {
		if !it.selected {
			hidden++
		}
	}
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d] %d hidden", m.Cursor+1, len(items), hidden)))
	return b.String()
}
