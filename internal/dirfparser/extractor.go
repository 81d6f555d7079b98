package dirfparser

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
	"sync"
)

// DefaultPDFCommand is the text extraction tool used when none is configured.
const DefaultPDFCommand = "pdftotext"

// PDFExtractor extracts the text of a PDF file, pages in document order.
// Implementations are injected so the parser can be tested without a PDF toolchain.
type PDFExtractor interface {
	ExtractText(pdfPath string) (string, error)
}

// RealPDFExtractor runs pdftotext (or a compatible command) and captures its output.
type RealPDFExtractor struct {
	// Command is the executable to run; DefaultPDFCommand when empty.
	Command string
	// Layout keeps the physical column layout (-layout). Off by default, which yields
	// the reading-order text the line grammar was designed against.
	Layout bool
}

// NewRealPDFExtractor creates a RealPDFExtractor.
func NewRealPDFExtractor(command string, layout bool) *RealPDFExtractor {
	return &RealPDFExtractor{Command: command, Layout: layout}
}

// ExtractText runs the extraction command and returns its standard output.
func (e *RealPDFExtractor) ExtractText(pdfPath string) (string, error) {
	command := e.Command
	if command == "" {
		command = DefaultPDFCommand
	}

	args := []string{"-enc", "UTF-8"}
	if e.Layout {
		args = append(args, "-layout")
	}
	args = append(args, pdfPath, "-")

	var stdout, stderr bytes.Buffer
	cmd := exec.Command(command, args...) // #nosec G204 -- command comes from local configuration
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			return "", fmt.Errorf("error running %s: %w: %s", command, err, msg)
		}
		return "", fmt.Errorf("error running %s: %w", command, err)
	}
	return stdout.String(), nil
}

// MockPDFExtractor returns predefined text instead of running a command.
type MockPDFExtractor struct {
	MockText string
	MockErr  error

	mu    sync.Mutex
	calls []string
}

// NewMockPDFExtractor creates a new MockPDFExtractor with the given mock data.
func NewMockPDFExtractor(mockText string, mockErr error) *MockPDFExtractor {
	return &MockPDFExtractor{
		MockText: mockText,
		MockErr:  mockErr,
	}
}

// ExtractText returns the predefined mock text or error.
func (e *MockPDFExtractor) ExtractText(pdfPath string) (string, error) {
	e.mu.Lock()
	e.calls = append(e.calls, pdfPath)
	e.mu.Unlock()
	if e.MockErr != nil {
		return "", e.MockErr
	}
	return e.MockText, nil
}

// Calls returns every path passed to ExtractText.
func (e *MockPDFExtractor) Calls() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.calls...)
}
