package parser

import (
	"io"

	"fjacquet/dirf-parser/internal/logging"
	"fjacquet/dirf-parser/internal/models"
)

// Parser reads a source document and reconstructs its table.
// Implementations return *parsererror.NoRecordsError when nothing could be extracted.
type Parser interface {
	Parse(r io.Reader) (*models.ParsedTable, error)
}

// LineParser parses text lines that were already extracted from a document.
type LineParser interface {
	ParseLines(source string, lines []string) (*models.ParsedTable, error)
}

// FileParser parses a document from a path on disk.
type FileParser interface {
	ParseFile(path string) (*models.ParsedTable, error)
}

// Validator checks whether a file looks like something the parser can read.
type Validator interface {
	ValidateFormat(path string) (bool, error)
}

// LoggerConfigurable lets callers swap the parser's logger.
type LoggerConfigurable interface {
	SetLogger(logger logging.Logger)
}

// FullParser is the complete parser surface used by the commands and the batch processor.
type FullParser interface {
	Parser
	LineParser
	FileParser
	Validator
	LoggerConfigurable
}
