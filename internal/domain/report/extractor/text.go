// Package extractor turns source documents into the ordered, trimmed line
// sequence the report parser consumes. Extraction failures here are the only
// fatal errors in the pipeline; the parser itself never raises.
package extractor

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// Lines reads a source document and returns its text lines, trimmed of
// trailing whitespace. PDF files go through the PDF extractor; anything else
// is read as plain text.
func Lines(path string) ([]string, error) {
	if strings.EqualFold(filepath.Ext(path), ".pdf") {
		return PDFLines(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open report: %w", err)
	}
	defer f.Close()

	return ReadLines(f)
}

// ReadLines reads plain text from r into trimmed lines.
func ReadLines(r io.Reader) ([]string, error) {
	var lines []string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		lines = append(lines, strings.TrimRight(scanner.Text(), " \t\r"))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	return lines, nil
}
