// Package export serializes parse results for audit. The CSV column order is
// a compatibility contract for spreadsheet-based human review and must not be
// reordered or lose columns silently.
package export

import (
	"fmt"
	"io"

	"github.com/gocarina/gocsv"

	"github.com/studioatlas/fee-tracker/internal/domain/report/parser"
)

// Columns is the fixed invoice export header, in contract order. It is
// derived from the InvoiceRecord csv tags so the order lives in one place;
// the export tests pin it against this list.
var Columns = []string{
	"project_code",
	"project_name",
	"invoice_number",
	"invoice_date",
	"invoice_amount",
	"payment_date",
	"payment_amount",
	"phase",
	"discipline",
	"notes",
	"status",
}

// WriteRecordsCSV writes the invoice records as CSV, header included.
func WriteRecordsCSV(w io.Writer, records []parser.InvoiceRecord) error {
	if err := gocsv.Marshal(&records, w); err != nil {
		return fmt.Errorf("failed to write records csv: %w", err)
	}
	return nil
}

// WriteDiagnosticsCSV writes the diagnostics companion file.
func WriteDiagnosticsCSV(w io.Writer, diags []parser.Diagnostic) error {
	if err := gocsv.Marshal(&diags, w); err != nil {
		return fmt.Errorf("failed to write diagnostics csv: %w", err)
	}
	return nil
}
