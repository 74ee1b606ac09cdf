package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/chartkit/pkg/errors"
	pkgio "github.com/matzehuels/chartkit/pkg/io"
)

// convertCommand creates the convert command, which imports a data file
// and writes it in the JSON dataset format layers read.
func (c *CLI) convertCommand() *cobra.Command {
	var sheet, output string

	cmd := &cobra.Command{
		Use:   "convert <data-file>",
		Short: "Convert a CSV or XLSX file to a JSON dataset",
		Long: `Convert a CSV or XLSX file to a JSON dataset.

The first column holds the keys, an optional "label" column the category
labels, and every other column one series. Without --out the JSON is
written to stdout.`,
		Example: `  chartkit convert sales.csv -o sales.json
  chartkit convert report.xlsx --sheet Q3`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var opts []pkgio.ImportOption
			if sheet != "" {
				opts = append(opts, pkgio.WithSheet(sheet))
			}
			table, err := pkgio.Import(args[0], opts...)
			if err != nil {
				return err
			}
			loggerFromContext(cmd.Context()).Debug("imported", "file", args[0], "series", len(table.Names), "rows", len(table.Data))

			if output == "" {
				return pkgio.WriteJSON(table, cmd.OutOrStdout())
			}
			if err := errors.ValidatePath(output); err != nil {
				return err
			}
			if err := pkgio.ExportJSON(table, output); err != nil {
				return err
			}
			printSuccess("Converted %d rows", len(table.Data))
			printFile(output)
			return nil
		},
	}

	cmd.Flags().StringVar(&sheet, "sheet", "", "worksheet of an XLSX file (default the first)")
	cmd.Flags().StringVarP(&output, "out", "o", "", "output file (default stdout)")
	return cmd
}
