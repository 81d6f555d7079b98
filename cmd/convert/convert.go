// Package convert handles single statement conversion
package convert

import (
	"fmt"

	"fjacquet/dirf-parser/cmd/common"
	"fjacquet/dirf-parser/cmd/root"
	"fjacquet/dirf-parser/internal/models"

	"github.com/spf13/cobra"
)

// Format overrides export.format for this run.
var Format string

// Cmd represents the convert command
var Cmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert a DIRF PDF statement to XLSX or CSV",
	Long: `Convert one DIRF "Fontes Pagadoras" statement to a table.

The input is normally a PDF; a .txt file holding text already extracted
from a statement is parsed directly, and "-i -" reads a PDF from stdin.
Without -o the output is written next to the input with the extension of
the chosen format.

Example:
  dirf-parser convert -i informe.pdf -o informe.xlsx
  dirf-parser convert -i informe.pdf --format csv
  cat informe.pdf | dirf-parser convert -i - -o informe.xlsx`,
	RunE: convertFunc,
}

func init() {
	Cmd.Flags().StringVarP(&Format, "format", "f", "", "Output format: xlsx or csv (default from config)")
}

func convertFunc(cmd *cobra.Command, args []string) error {
	appContainer := root.GetContainer()
	if appContainer == nil {
		return fmt.Errorf("container not initialized")
	}
	logger := appContainer.GetLogger()

	exp, err := appContainer.GetExporter(Format)
	if err != nil {
		return err
	}

	input := root.SharedFlags.Input
	var table *models.ParsedTable
	if input == common.StdinInput {
		table, err = common.ProcessReader(appContainer.GetParser(), exp, cmd.InOrStdin(), root.SharedFlags.Output, logger)
	} else {
		table, err = common.ProcessFile(appContainer.GetParser(), exp,
			input, root.SharedFlags.Output, root.SharedFlags.Validate, logger)
	}
	if err != nil {
		return fmt.Errorf("error converting %s: %w", root.SharedFlags.Input, err)
	}

	output := common.OutputPath(input, root.SharedFlags.Output, exp)
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d records to %s\n", table.Len(), output)
	return nil
}
