// Package container provides dependency injection for the dirf-parser application.
// It centralizes the creation and wiring of the logger, the statement parser,
// the exporters and the batch processor.
package container

import (
	"fmt"

	"fjacquet/dirf-parser/internal/batch"
	"fjacquet/dirf-parser/internal/config"
	"fjacquet/dirf-parser/internal/dirfparser"
	"fjacquet/dirf-parser/internal/export"
	"fjacquet/dirf-parser/internal/logging"
	"fjacquet/dirf-parser/internal/parser"
)

// Container holds all application dependencies and provides methods to access them.
//
// Container is immutable after creation: fields are private and only reachable
// through getters.
type Container struct {
	logger    logging.Logger
	config    *config.Config
	extractor dirfparser.PDFExtractor
	parser    *dirfparser.Adapter
}

// Option customizes NewContainer, mostly for tests.
type Option func(*options)

type options struct {
	logger    logging.Logger
	extractor dirfparser.PDFExtractor
}

// WithLogger replaces the logger built from the configuration.
func WithLogger(logger logging.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithExtractor replaces the pdftotext extractor.
func WithExtractor(extractor dirfparser.PDFExtractor) Option {
	return func(o *options) { o.extractor = extractor }
}

// NewContainer creates and wires all application dependencies.
func NewContainer(cfg *config.Config, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("configuration cannot be nil")
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	var o options
	for _, opt := range opts {
		opt(&o)
	}

	logger := o.logger
	if logger == nil {
		logger = logging.NewLogrusAdapter(cfg.Log.Level, cfg.Log.Format)
	}

	extractor := o.extractor
	if extractor == nil {
		extractor = dirfparser.NewRealPDFExtractor(cfg.PDF.Command, cfg.PDF.Layout)
	}

	p := dirfparser.NewAdapter(logger, extractor, cfg.Validation.CheckTotals)

	logger.Debug("Container initialized",
		logging.Field{Key: "pdf_command", Value: cfg.PDF.Command},
		logging.Field{Key: logging.FieldFormat, Value: cfg.Export.Format},
		logging.Field{Key: "check_totals", Value: cfg.Validation.CheckTotals})

	return &Container{
		logger:    logger,
		config:    cfg,
		extractor: extractor,
		parser:    p,
	}, nil
}

// GetParser returns the statement parser.
func (c *Container) GetParser() parser.FullParser {
	return c.parser
}

// GetExporter returns the exporter for format, or for the configured
// format when format is empty.
func (c *Container) GetExporter(format string) (export.Exporter, error) {
	return export.New(format, c.config.Export)
}

// NewBatchProcessor returns a processor writing in format with the
// configured worker count.
func (c *Container) NewBatchProcessor(format string) (*batch.Processor, error) {
	exp, err := c.GetExporter(format)
	if err != nil {
		return nil, err
	}
	return batch.NewProcessor(c.parser, exp, c.logger, c.config.Batch.Workers), nil
}

// GetLogger returns the container's logger instance.
func (c *Container) GetLogger() logging.Logger {
	return c.logger
}

// GetConfig returns the container's configuration instance.
func (c *Container) GetConfig() *config.Config {
	return c.config
}

// Close performs cleanup of container resources.
func (c *Container) Close() error {
	c.logger.Debug("Container closed")
	return nil
}
