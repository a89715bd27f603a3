package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/studioatlas/fee-tracker/internal/domain/report/parser"
)

const (
	recordsSheet     = "Invoices"
	diagnosticsSheet = "Diagnostics"
)

// WriteWorkbook writes an XLSX audit workbook: one sheet with the invoice
// records in contract column order, one with the diagnostics.
func WriteWorkbook(w io.Writer, result *parser.ParseResult) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := writeRecordsSheet(f, result.Records); err != nil {
		return err
	}
	if err := writeDiagnosticsSheet(f, result.Diagnostics); err != nil {
		return err
	}

	// The default sheet excelize creates is replaced by ours.
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return fmt.Errorf("failed to drop default sheet: %w", err)
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func writeRecordsSheet(f *excelize.File, records []parser.InvoiceRecord) error {
	if _, err := f.NewSheet(recordsSheet); err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", recordsSheet, err)
	}

	header := make([]any, len(Columns))
	for i, c := range Columns {
		header[i] = c
	}
	if err := setRow(f, recordsSheet, 1, header); err != nil {
		return err
	}

	for i, rec := range records {
		row := []any{
			rec.ProjectCode,
			rec.ProjectName,
			rec.InvoiceNumber,
			rec.InvoiceDate,
			rec.InvoiceAmount.InexactFloat64(),
			rec.PaymentDate,
			rec.PaymentAmount.InexactFloat64(),
			rec.Phase,
			rec.Discipline,
			rec.Notes,
			rec.Status,
		}
		if err := setRow(f, recordsSheet, i+2, row); err != nil {
			return err
		}
	}
	return nil
}

func writeDiagnosticsSheet(f *excelize.File, diags []parser.Diagnostic) error {
	if _, err := f.NewSheet(diagnosticsSheet); err != nil {
		return fmt.Errorf("failed to create %s sheet: %w", diagnosticsSheet, err)
	}

	if err := setRow(f, diagnosticsSheet, 1, []any{"line", "text", "reason"}); err != nil {
		return err
	}
	for i, d := range diags {
		if err := setRow(f, diagnosticsSheet, i+2, []any{d.Line, d.Text, d.Reason}); err != nil {
			return err
		}
	}
	return nil
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return fmt.Errorf("failed to compute cell name: %w", err)
	}
	if err := f.SetSheetRow(sheet, cell, &values); err != nil {
		return fmt.Errorf("failed to write row %d of %s: %w", row, sheet, err)
	}
	return nil
}
