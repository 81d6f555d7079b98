package batch

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"fjacquet/dirf-parser/internal/export"
	"fjacquet/dirf-parser/internal/fileutils"
	"fjacquet/dirf-parser/internal/logging"
	"fjacquet/dirf-parser/internal/models"
	"fjacquet/dirf-parser/internal/parser"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// DefaultWorkers is used when a non-positive worker count is given.
const DefaultWorkers = 4

// MergedFilePrefix names the combined output written when merging.
const MergedFilePrefix = "dirf_merged"

// FileResult is the outcome of converting one input file.
type FileResult struct {
	Input   string
	Output  string
	Records int
	Err     error
}

// Summary reports a batch run.
type Summary struct {
	RunID     string
	Processed int
	Failed    int
	Records   int
	Files     []FileResult
	// MergedOutput is the combined file, empty unless merging was requested
	// and at least one file succeeded.
	MergedOutput string
	Duration     time.Duration
}

// Processor converts every PDF in a directory concurrently.
type Processor struct {
	parser     parser.FileParser
	exporter   export.Exporter
	aggregator *Aggregator
	logger     logging.Logger
	workers    int
	merge      bool
}

// NewProcessor creates a processor writing with exp. Files are parsed by p
// using at most workers goroutines.
func NewProcessor(p parser.FileParser, exp export.Exporter, logger logging.Logger, workers int) *Processor {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if workers < 1 {
		workers = DefaultWorkers
	}
	return &Processor{
		parser:     p,
		exporter:   exp,
		aggregator: NewAggregator(logger),
		logger:     logger,
		workers:    workers,
	}
}

// SetMerge toggles writing one combined table next to the per-file outputs.
func (p *Processor) SetMerge(merge bool) {
	p.merge = merge
}

// Run converts each *.pdf directly inside inputDir into outputDir.
// A file that fails, including one with no records, is counted and
// reported in the summary without stopping the others. The returned error
// is non-nil only when the directory cannot be listed, the context is
// cancelled, or the merged file cannot be written.
func (p *Processor) Run(ctx context.Context, inputDir, outputDir string) (*Summary, error) {
	start := time.Now()
	runID := uuid.NewString()
	logger := p.logger.WithFields(
		logging.Field{Key: logging.FieldRunID, Value: runID},
		logging.Field{Key: logging.FieldWorkers, Value: p.workers})

	files, err := fileutils.ListFilesWithExtension(inputDir, ".pdf")
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no PDF files found in %s", inputDir)
	}
	if err := fileutils.EnsureDirectoryExists(outputDir); err != nil {
		return nil, err
	}

	logger.Info("Starting batch conversion",
		logging.Field{Key: logging.FieldCount, Value: len(files)},
		logging.Field{Key: "input_dir", Value: inputDir},
		logging.Field{Key: "output_dir", Value: outputDir})

	results := make([]FileResult, len(files))
	tables := make([]*models.ParsedTable, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, file := range files {
		i, file := i, file
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			tables[i], results[i] = p.convert(logger, file, outputDir)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("batch run %s interrupted: %w", runID, err)
	}

	summary := &Summary{RunID: runID, Files: results}
	for _, res := range results {
		if res.Err != nil {
			summary.Failed++
			continue
		}
		summary.Processed++
		summary.Records += res.Records
	}

	if p.merge && summary.Processed > 0 {
		merged := p.aggregator.Aggregate(tables)
		name := p.aggregator.GenerateOutputFilename(MergedFilePrefix, p.aggregator.CalculateDateRange(merged), p.exporter.Extension())
		path := filepath.Join(outputDir, name)
		if err := export.WriteFile(p.exporter, merged, path); err != nil {
			return summary, err
		}
		summary.MergedOutput = path
		logger.Info("Wrote merged table",
			logging.Field{Key: logging.FieldOutputFile, Value: path},
			logging.Field{Key: logging.FieldCount, Value: merged.Len()})
	}

	summary.Duration = time.Since(start)
	logger.Info("Batch conversion finished",
		logging.Field{Key: "processed", Value: summary.Processed},
		logging.Field{Key: "failed", Value: summary.Failed},
		logging.Field{Key: logging.FieldCount, Value: summary.Records},
		logging.Field{Key: logging.FieldDuration, Value: summary.Duration.Milliseconds()})

	return summary, nil
}

func (p *Processor) convert(logger logging.Logger, file, outputDir string) (*models.ParsedTable, FileResult) {
	res := FileResult{Input: file}
	fileLogger := logger.WithField(logging.FieldInputFile, filepath.Base(file))

	table, err := p.parser.ParseFile(file)
	if err != nil {
		res.Err = err
		fileLogger.WithError(err).Warn("Skipping file")
		return nil, res
	}

	res.Output = fileutils.ReplaceExtension(file, outputDir, p.exporter.Extension())
	if err := export.WriteFile(p.exporter, table, res.Output); err != nil {
		res.Err = err
		fileLogger.WithError(err).Warn("Skipping file")
		return nil, res
	}

	res.Records = table.Len()
	fileLogger.Debug("Converted file",
		logging.Field{Key: logging.FieldOutputFile, Value: res.Output},
		logging.Field{Key: logging.FieldCount, Value: res.Records})
	return table, res
}
