// Package dirfparser reconstructs withholding records from the text of DIRF
// "Fontes Pagadoras" statements.
//
// A statement interleaves payer header lines
//
//	12.345.678/0001-99 ACME CORP LTDA 01/03/2023 1.000,00 100,00
//
// with code lines that break the payer's income down by income-type code
//
//	1708 900,00 90,00
//
// Each code line becomes one models.BreakdownRecord carrying the most recent header's
// tax ID, name and processing date. Lines of any other shape are ignored.
package dirfparser

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// pdfMagic is the signature every PDF file starts with.
const pdfMagic = "%PDF-"

// SplitLines splits extracted text into physical lines in order. Page breaks are
// handled as in ReadLines, so both return the same lines for the same text.
func SplitLines(text string) []string {
	if text == "" {
		return nil
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.TrimSuffix(text, "\n")

	var lines []string
	for _, line := range strings.Split(text, "\n") {
		lines = append(lines, pageLines(line)...)
	}
	return lines
}

// ReadLines reads already-extracted text, one line per entry.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		lines = append(lines, pageLines(sc.Text())...)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("error reading lines: %w", err)
	}
	return lines, nil
}

// pageLines strips the form feeds pdftotext writes at page boundaries. A form feed at
// either end of a line only marks the boundary; one inside a line separates two lines.
// A line made only of form feeds yields nothing, so the last line of a page is directly
// followed by the first line of the next.
func pageLines(line string) []string {
	if !strings.ContainsRune(line, '\f') {
		return []string{line}
	}
	line = strings.Trim(line, "\f")
	if line == "" {
		return nil
	}
	return strings.FieldsFunc(line, func(r rune) bool { return r == '\f' })
}

// hasPDFMagic reports whether the file at path starts with the PDF signature.
func hasPDFMagic(path string) (bool, error) {
	f, err := os.Open(path) // #nosec G304 -- CLI tool requires user-provided file paths
	if err != nil {
		return false, fmt.Errorf("error opening file: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	head := make([]byte, len(pdfMagic))
	if _, err := io.ReadFull(f, head); err != nil {
		return false, nil
	}
	return string(head) == pdfMagic, nil
}

// spoolToTempFile copies r into a temporary .pdf file and returns its path and a cleanup func.
func spoolToTempFile(r io.Reader) (string, func(), error) {
	tempFile, err := os.CreateTemp("", "dirf-*.pdf")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temporary PDF file: %w", err)
	}
	cleanup := func() {
		_ = os.Remove(tempFile.Name())
	}

	if _, err := io.Copy(tempFile, r); err != nil {
		_ = tempFile.Close()
		cleanup()
		return "", nil, fmt.Errorf("failed to write to temporary PDF file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to close temporary PDF file: %w", err)
	}
	return tempFile.Name(), cleanup, nil
}
