// Package common contains shared functionality for command handlers
package common

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"fjacquet/dirf-parser/internal/dirfparser"
	"fjacquet/dirf-parser/internal/export"
	"fjacquet/dirf-parser/internal/fileutils"
	"fjacquet/dirf-parser/internal/logging"
	"fjacquet/dirf-parser/internal/models"
	"fjacquet/dirf-parser/internal/parser"
)

// ErrInvalidFormat is returned when --validate rejects the input.
var ErrInvalidFormat = errors.New("the file is not in a valid format")

// StdinInput is the input name that makes convert read the PDF from stdin.
const StdinInput = "-"

// OutputPath returns outputFile, or the input path with the exporter's
// extension when outputFile is empty.
func OutputPath(inputFile, outputFile string, exp export.Exporter) string {
	if outputFile != "" {
		return outputFile
	}
	return fileutils.ReplaceExtension(inputFile, "", exp.Extension())
}

// ProcessFile parses inputFile with p and writes the table to outputFile
// with exp. Files ending in .txt are treated as text already extracted from
// a statement and go straight to the line parser.
func ProcessFile(p parser.FullParser, exp export.Exporter, inputFile, outputFile string, validate bool, log logging.Logger) (*models.ParsedTable, error) {
	if inputFile == "" {
		return nil, fmt.Errorf("input file must be specified")
	}
	p.SetLogger(log)
	isText := strings.EqualFold(filepath.Ext(inputFile), ".txt")

	if validate && !isText {
		log.Info("Validating format...")
		valid, err := p.ValidateFormat(inputFile)
		if err != nil {
			return nil, fmt.Errorf("error validating file: %w", err)
		}
		if !valid {
			return nil, fmt.Errorf("%s: %w", inputFile, ErrInvalidFormat)
		}
		log.Info("Validation successful.")
	}

	var table *models.ParsedTable
	var err error
	if isText {
		table, err = parseTextFile(p, inputFile)
	} else {
		table, err = p.ParseFile(inputFile)
	}
	if err != nil {
		return nil, err
	}

	return writeTable(exp, table, inputFile, OutputPath(inputFile, outputFile, exp), log)
}

// ProcessReader parses a PDF statement read from r and writes the table to
// outputFile with exp.
func ProcessReader(p parser.FullParser, exp export.Exporter, r io.Reader, outputFile string, log logging.Logger) (*models.ParsedTable, error) {
	if outputFile == "" {
		return nil, fmt.Errorf("output file must be specified when reading from stdin")
	}
	p.SetLogger(log)

	table, err := p.Parse(r)
	if err != nil {
		return nil, err
	}
	return writeTable(exp, table, StdinInput, outputFile, log)
}

func writeTable(exp export.Exporter, table *models.ParsedTable, inputFile, outputFile string, log logging.Logger) (*models.ParsedTable, error) {
	if err := export.WriteFile(exp, table, outputFile); err != nil {
		return nil, err
	}

	log.Info("Conversion completed successfully!",
		logging.Field{Key: logging.FieldInputFile, Value: inputFile},
		logging.Field{Key: logging.FieldOutputFile, Value: outputFile},
		logging.Field{Key: logging.FieldCount, Value: table.Len()})
	return table, nil
}

func parseTextFile(p parser.LineParser, path string) (*models.ParsedTable, error) {
	f, err := os.Open(path) // #nosec G304 -- input path chosen by the user
	if err != nil {
		return nil, fmt.Errorf("error opening %s: %w", path, err)
	}
	defer func() {
		_ = f.Close()
	}()

	lines, err := dirfparser.ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("error reading %s: %w", path, err)
	}
	return p.ParseLines(filepath.Base(path), lines)
}
