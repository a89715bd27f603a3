package parser

import (
	"github.com/shopspring/decimal"
)

// Payment status values derived for each invoice record.
const (
	StatusPaid        = "paid"
	StatusPartial     = "partial"
	StatusOutstanding = "outstanding"
)

// InvoiceRecord is one extracted invoice row. Field order matters: the csv
// tags define the export column contract consumed by spreadsheet-based audit,
// so fields must not be reordered or dropped.
type InvoiceRecord struct {
	ProjectCode   string          `csv:"project_code"`
	ProjectName   string          `csv:"project_name"`
	InvoiceNumber string          `csv:"invoice_number"`
	InvoiceDate   string          `csv:"invoice_date"`
	InvoiceAmount decimal.Decimal `csv:"invoice_amount"`
	PaymentDate   string          `csv:"payment_date"`
	PaymentAmount decimal.Decimal `csv:"payment_amount"`
	Phase         string          `csv:"phase"`
	Discipline    string          `csv:"discipline"`
	Notes         string          `csv:"notes"`
	Status        string          `csv:"status"`
}

// Diagnostic flags an extraction ambiguity on a specific line. Diagnostics
// never block record emission; a human reviewer consumes them before records
// are imported into financial systems.
type Diagnostic struct {
	Line   int    `csv:"line"`
	Text   string `csv:"text"`
	Reason string `csv:"reason"`
}

// ParseResult is everything one parse run produced. Ownership transfers
// entirely to the caller; the engine keeps no reference.
type ParseResult struct {
	Records     []InvoiceRecord
	Diagnostics []Diagnostic

	TotalLines   int
	InvoiceLines int
	SkippedLines int
}

// ParseContext is the mutable current-project state threaded through one
// parse run. It is created at parse start, owned exclusively by that run, and
// discarded at parse end.
type ParseContext struct {
	ProjectCode string
	ProjectName string
	Discipline  string
}
