// Package export writes parsed withholding tables to tabular file formats.
package export

import (
	"fmt"
	"io"
	"os"
	"strings"

	"fjacquet/dirf-parser/internal/config"
	"fjacquet/dirf-parser/internal/fileutils"
	"fjacquet/dirf-parser/internal/models"
	"fjacquet/dirf-parser/internal/parsererror"

	"github.com/shopspring/decimal"
)

// Exporter serializes a parsed table.
type Exporter interface {
	Export(table *models.ParsedTable, w io.Writer) error
	// Extension is the file extension, dot included, of the produced format.
	Extension() string
}

// New returns the exporter for format, configured from cfg.
// An empty format falls back to cfg.Format.
func New(format string, cfg config.ExportConfig) (Exporter, error) {
	if format == "" {
		format = cfg.Format
	}
	switch strings.ToLower(format) {
	case config.FormatXLSX:
		return NewXLSXExporter(cfg.SheetName), nil
	case config.FormatCSV:
		delim := ','
		if r := []rune(cfg.CSVDelimiter); len(r) == 1 {
			delim = r[0]
		}
		return NewCSVExporter(delim, cfg.DateFormat), nil
	default:
		return nil, fmt.Errorf("unsupported export format: %s", format)
	}
}

// WriteFile exports table to path, creating parent directories as needed.
// The file is removed again when the export fails.
func WriteFile(exp Exporter, table *models.ParsedTable, path string) (err error) {
	format := strings.TrimPrefix(exp.Extension(), ".")

	file, err := fileutils.CreateFile(path)
	if err != nil {
		return &parsererror.ExportError{Format: format, Target: path, Err: err}
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil && err == nil {
			err = &parsererror.ExportError{Format: format, Target: path, Err: closeErr}
		}
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	if err := exp.Export(table, file); err != nil {
		return &parsererror.ExportError{Format: format, Target: path, Err: err}
	}
	return nil
}

func checkTable(table *models.ParsedTable) error {
	if table == nil {
		return fmt.Errorf("cannot export nil table")
	}
	return nil
}

func nullFloat(d decimal.NullDecimal) (float64, bool) {
	if !d.Valid {
		return 0, false
	}
	return d.Decimal.InexactFloat64(), true
}
