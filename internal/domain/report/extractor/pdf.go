package extractor

import (
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// PDFLines extracts text lines from a PDF report. Row-based extraction
// preserves the positional layout the parser depends on; if it yields
// nothing, the whole-document plain text path is tried before giving up.
func PDFLines(path string) (lines []string, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("pdf extraction crashed: %v", r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}
	defer f.Close()

	if reader.NumPage() == 0 {
		return nil, fmt.Errorf("pdf has no pages")
	}

	lines = extractByRow(reader)
	if len(lines) > 0 {
		return lines, nil
	}

	lines, err = extractPlainText(reader)
	if err != nil {
		return nil, err
	}
	if len(lines) == 0 {
		return nil, fmt.Errorf("no text could be extracted; the pdf may be image-based or scanned")
	}
	return lines, nil
}

// extractByRow reconstructs lines from the per-row text content of each page.
func extractByRow(reader *pdf.Reader) []string {
	var lines []string
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		rows, err := page.GetTextByRow()
		if err != nil {
			continue
		}
		for _, row := range rows {
			parts := make([]string, 0, len(row.Content))
			for _, word := range row.Content {
				parts = append(parts, word.S)
			}
			line := strings.TrimSpace(strings.Join(parts, " "))
			if line != "" {
				lines = append(lines, line)
			}
		}
	}
	return lines
}

// extractPlainText is the whole-document fallback path.
func extractPlainText(reader *pdf.Reader) ([]string, error) {
	r, err := reader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("pdf plain text extraction failed: %w", err)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("pdf plain text read failed: %w", err)
	}

	var lines []string
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimRight(line, " \t\r")
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines, nil
}
