package parser

import (
	"regexp"
	"strings"

	"github.com/studioatlas/fee-tracker/internal/domain/report/phase"
)

// lineKind is the classifier's verdict for one raw line.
type lineKind int

const (
	kindIgnore lineKind = iota
	kindBoilerplate
	kindHeader
	kindDiscipline
	kindTotals
	kindInvoice
)

var (
	// "<seq> <2-digit-year> <LETTERS>-<digits> <code2> <title...>"
	// e.g. "1 25 BK-045 SD-01 Grand Hyatt Residences Mobilization Fee ..."
	headerPattern = regexp.MustCompile(`^\d+\s+(\d{2})\s+([A-Z]{1,6}-\d+)\s+(\S+)\s+(.+)$`)

	// Invoice/transmittal number: one letter from {I,T}, two digits, hyphen,
	// three digits, optional trailing letters or ampersand ("I25-001",
	// "T24-013A&B").
	invoiceTokenPattern = regexp.MustCompile(`^[IT]\d{2}-\d{3}[A-Za-z&]*$`)

	pageMarkerPattern = regexp.MustCompile(`(?i)^page\b`)
)

// headerMatch holds the captures of a project-header line.
type headerMatch struct {
	ProjectCode string // "<2-digit-year> <LETTERS>-<digits>"
	Fragment    string // everything after the code tokens
}

// matchHeader returns the header captures, or nil when the line is not a
// project header.
func matchHeader(line string) *headerMatch {
	m := headerPattern.FindStringSubmatch(line)
	if m == nil {
		return nil
	}
	return &headerMatch{
		ProjectCode: m[1] + " " + m[2],
		Fragment:    m[4],
	}
}

// containsInvoiceToken reports whether any whitespace token of the line is an
// invoice/transmittal number.
func containsInvoiceToken(line string) bool {
	for _, tok := range strings.Fields(line) {
		if invoiceTokenPattern.MatchString(tok) {
			return true
		}
	}
	return false
}

// isBoilerplate matches blank lines, page markers, and column-header rows.
// These dominate the corpus and are skipped without a diagnostic.
func isBoilerplate(line string) bool {
	if line == "" {
		return true
	}
	if pageMarkerPattern.MatchString(line) {
		return true
	}
	return strings.Contains(line, "Remark")
}

// classify decides what kind of line this is, evaluated in priority order.
// threshold is the totals-line cutoff: a line opening with a numeric token
// above it, carrying no invoice number, is a summary row, not an invoice.
func (e *Engine) classify(line string) lineKind {
	if isBoilerplate(line) {
		return kindBoilerplate
	}
	if matchHeader(line) != nil {
		return kindHeader
	}
	if phase.IsDisciplineMarker(line) {
		return kindDiscipline
	}
	if fields := strings.Fields(line); len(fields) > 0 &&
		isNumericToken(fields[0]) &&
		parseAmount(fields[0]).GreaterThan(e.cfg.TotalsThreshold) &&
		!containsInvoiceToken(line) {
		return kindTotals
	}
	if containsInvoiceToken(line) {
		return kindInvoice
	}
	return kindIgnore
}
