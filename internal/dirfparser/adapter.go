package dirfparser

import (
	"fmt"
	"io"
	"path/filepath"

	"fjacquet/dirf-parser/internal/logging"
	"fjacquet/dirf-parser/internal/models"
	"fjacquet/dirf-parser/internal/parser"
	"fjacquet/dirf-parser/internal/parsererror"
)

const parserName = "DIRF"

var _ parser.FullParser = (*Adapter)(nil)

// Adapter implements parser.FullParser for DIRF "Fontes Pagadoras" PDF statements.
type Adapter struct {
	parser.BaseParser
	extractor PDFExtractor
	scanner   *Scanner
}

// NewAdapter creates an Adapter. A nil extractor falls back to pdftotext.
func NewAdapter(logger logging.Logger, extractor PDFExtractor, checkTotals bool) *Adapter {
	if extractor == nil {
		extractor = NewRealPDFExtractor(DefaultPDFCommand, false)
	}
	base := parser.NewBaseParser(logger)
	return &Adapter{
		BaseParser: base,
		extractor:  extractor,
		scanner:    NewScanner(base.GetLogger(), checkTotals),
	}
}

// SetLogger replaces the logger of the adapter and of its scanner.
func (a *Adapter) SetLogger(logger logging.Logger) {
	a.BaseParser.SetLogger(logger)
	a.scanner.logger = a.GetLogger()
}

// Parse reads a PDF document from r and returns its table.
func (a *Adapter) Parse(r io.Reader) (*models.ParsedTable, error) {
	path, cleanup, err := spoolToTempFile(r)
	if err != nil {
		return nil, err
	}
	defer cleanup()

	return a.parsePDF("stdin", path)
}

// ParseFile extracts and parses the PDF document at path.
func (a *Adapter) ParseFile(path string) (*models.ParsedTable, error) {
	ok, err := hasPDFMagic(path)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: "PDF",
			Msg:            "file does not start with a PDF header",
		}
	}
	return a.parsePDF(filepath.Base(path), path)
}

// ParseText parses text that was already extracted from a statement.
func (a *Adapter) ParseText(source, text string) (*models.ParsedTable, error) {
	return a.ParseLines(source, SplitLines(text))
}

// ParseLines runs the scanner over lines and returns the resulting table.
// An empty result is reported as *parsererror.NoRecordsError.
func (a *Adapter) ParseLines(source string, lines []string) (*models.ParsedTable, error) {
	result := a.scanner.Scan(lines)

	a.GetLogger().Debug("Scanned statement lines",
		logging.Field{Key: logging.FieldFile, Value: source},
		logging.Field{Key: "lines", Value: result.Stats.Lines},
		logging.Field{Key: "headers", Value: result.Stats.Headers},
		logging.Field{Key: "combined_headers", Value: result.Stats.CombinedHeaders},
		logging.Field{Key: "code_lines", Value: result.Stats.CodeLines},
		logging.Field{Key: "orphan_code_lines", Value: result.Stats.OrphanCodeLines},
		logging.Field{Key: "skipped_lines", Value: result.Stats.SkippedLines})

	if len(result.Records) == 0 {
		a.GetLogger().Error("No withholding records found",
			logging.Field{Key: logging.FieldFile, Value: source},
			logging.Field{Key: "lines", Value: len(lines)})
		return nil, &parsererror.NoRecordsError{Source: source, LineCount: len(lines)}
	}

	table := &models.ParsedTable{
		Source:  source,
		Records: result.Records,
		Headers: result.Headers,
	}
	a.LogTableSummary(table)
	return table, nil
}

// ValidateFormat reports whether file is a PDF whose text can be extracted.
// It returns an error only when the file cannot be read.
func (a *Adapter) ValidateFormat(file string) (bool, error) {
	a.GetLogger().Info("Validating PDF format",
		logging.Field{Key: logging.FieldFile, Value: file})

	ok, err := hasPDFMagic(file)
	if err != nil {
		return false, err
	}
	if !ok {
		return false, nil
	}

	if _, err := a.extractor.ExtractText(file); err != nil {
		a.GetLogger().WithError(err).Error("PDF validation failed")
		return false, nil
	}
	return true, nil
}

func (a *Adapter) parsePDF(source, path string) (*models.ParsedTable, error) {
	a.GetLogger().Info("Parsing PDF file",
		logging.Field{Key: logging.FieldFile, Value: source})

	text, err := a.extractor.ExtractText(path)
	if err != nil {
		return nil, &parsererror.ParseError{
			Parser: parserName,
			Field:  "text extraction",
			Value:  source,
			Err:    err,
		}
	}
	if text == "" {
		a.GetLogger().Warn("PDF produced no text",
			logging.Field{Key: logging.FieldFile, Value: source})
	}

	table, err := a.ParseText(source, text)
	if err != nil {
		return nil, fmt.Errorf("error parsing %s: %w", source, err)
	}
	return table, nil
}
