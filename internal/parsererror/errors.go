// Package parsererror defines the typed errors returned by the parsing and export pipeline.
package parsererror

import (
	"errors"
	"fmt"
)

// ErrNoRecords is returned when a document yields no payer/code combination at all.
var ErrNoRecords = errors.New("no records found, check input layout")

// ParseError represents an error during parsing
type ParseError struct {
	Parser string
	Field  string
	Value  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: failed to parse %s='%s': %v",
		e.Parser, e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// InvalidFormatError represents an error where the input file does not conform
// to the expected format.
type InvalidFormatError struct {
	FilePath             string
	ExpectedFormat       string
	ActualContentSnippet string
	Msg                  string
}

func (e *InvalidFormatError) Error() string {
	if e.ActualContentSnippet != "" {
		return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s. Content snippet: '%s'",
			e.FilePath, e.Msg, e.ExpectedFormat, e.ActualContentSnippet)
	}
	return fmt.Sprintf("invalid format in file '%s': %s. Expected: %s",
		e.FilePath, e.Msg, e.ExpectedFormat)
}

// NoRecordsError reports a document whose lines never formed a payer header followed
// by a code line. It matches ErrNoRecords through errors.Is.
type NoRecordsError struct {
	Source    string
	LineCount int
}

func (e *NoRecordsError) Error() string {
	if e.Source == "" {
		return fmt.Sprintf("%v (%d lines scanned)", ErrNoRecords, e.LineCount)
	}
	return fmt.Sprintf("%s: %v (%d lines scanned)", e.Source, ErrNoRecords, e.LineCount)
}

func (e *NoRecordsError) Unwrap() error {
	return ErrNoRecords
}

// ExportError represents a failure while serializing a parsed table.
type ExportError struct {
	Format string
	Target string
	Err    error
}

func (e *ExportError) Error() string {
	return fmt.Sprintf("export to %s failed for '%s': %v", e.Format, e.Target, e.Err)
}

func (e *ExportError) Unwrap() error {
	return e.Err
}
