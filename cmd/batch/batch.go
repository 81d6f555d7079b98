// Package batch handles batch processing of files
package batch

import (
	"context"
	"fmt"
	"path/filepath"

	"fjacquet/dirf-parser/cmd/root"

	"github.com/spf13/cobra"
)

var (
	// Format overrides export.format for this run.
	Format string
	// Merge also writes one table combining every converted statement.
	Merge bool
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Batch process DIRF statements from a directory",
	Long: `Batch process every PDF in an input directory and write one table per
statement to another directory.

Files are converted concurrently (batch.workers). A statement that fails,
for instance one with no recognizable records, is reported and skipped;
the others still complete. With --merge a combined table named after the
covered processing dates is written as well.

Example:
  dirf-parser batch -i statements/ -o tables/ --merge`,
	RunE: batchFunc,
}

func init() {
	Cmd.Flags().StringVarP(&Format, "format", "f", "", "Output format: xlsx or csv (default from config)")
	Cmd.Flags().BoolVar(&Merge, "merge", false, "Also write a merged table of all statements")

	// Override the usage text for the input/output flags in batch context
	Cmd.SetUsageTemplate(`Usage:{{if .Runnable}}
  {{.UseLine}}{{end}}{{if .HasExample}}

Examples:
{{.Example}}{{end}}{{if .HasAvailableLocalFlags}}

Flags:
{{.LocalFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}{{if .HasAvailableInheritedFlags}}

Global Flags (for batch, -i/-o refer to directories):
{{.InheritedFlags.FlagUsages | trimTrailingWhitespaces}}{{end}}
`)
}

func batchFunc(cmd *cobra.Command, args []string) error {
	inputDir := root.SharedFlags.Input
	outputDir := root.SharedFlags.Output
	if inputDir == "" || outputDir == "" {
		return fmt.Errorf("input and output directories must be specified")
	}

	appContainer := root.GetContainer()
	if appContainer == nil {
		return fmt.Errorf("container not initialized")
	}

	processor, err := appContainer.NewBatchProcessor(Format)
	if err != nil {
		return err
	}
	processor.SetMerge(Merge)

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	summary, err := processor.Run(ctx, inputDir, outputDir)
	if err != nil {
		return fmt.Errorf("error during batch conversion: %w", err)
	}

	out := cmd.OutOrStdout()
	for _, res := range summary.Files {
		if res.Err != nil {
			fmt.Fprintf(out, "FAILED  %s: %v\n", filepath.Base(res.Input), res.Err)
			continue
		}
		fmt.Fprintf(out, "OK      %s -> %s (%d records)\n", filepath.Base(res.Input), res.Output, res.Records)
	}
	if summary.MergedOutput != "" {
		fmt.Fprintf(out, "Merged  %s\n", summary.MergedOutput)
	}
	fmt.Fprintf(out, "Batch %s: %d processed, %d failed, %d records\n",
		summary.RunID, summary.Processed, summary.Failed, summary.Records)

	if summary.Processed == 0 {
		return fmt.Errorf("no statement could be converted")
	}
	return nil
}
