package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/studioatlas/fee-tracker/internal/domain/report/parser"
)

func TestWriteWorkbook(t *testing.T) {
	result := &parser.ParseResult{
		Records: []parser.InvoiceRecord{sampleRecord()},
		Diagnostics: []parser.Diagnostic{
			{Line: 4, Text: "some line", Reason: "no amount found"},
		},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, result))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	t.Run("sheets", func(t *testing.T) {
		sheets := f.GetSheetList()
		assert.Contains(t, sheets, "Invoices")
		assert.Contains(t, sheets, "Diagnostics")
		assert.NotContains(t, sheets, "Sheet1")
	})

	t.Run("records header", func(t *testing.T) {
		rows, err := f.GetRows("Invoices")
		require.NoError(t, err)
		require.NotEmpty(t, rows)
		assert.Equal(t, Columns, rows[0])
	})

	t.Run("record cells", func(t *testing.T) {
		invoice, err := f.GetCellValue("Invoices", "C2")
		require.NoError(t, err)
		assert.Equal(t, "I25-001", invoice)

		amount, err := f.GetCellValue("Invoices", "E2")
		require.NoError(t, err)
		assert.Equal(t, "50000", amount)

		status, err := f.GetCellValue("Invoices", "K2")
		require.NoError(t, err)
		assert.Equal(t, parser.StatusPaid, status)
	})

	t.Run("diagnostic cells", func(t *testing.T) {
		reason, err := f.GetCellValue("Diagnostics", "C2")
		require.NoError(t, err)
		assert.Equal(t, "no amount found", reason)
	})
}

func TestWriteWorkbook_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteWorkbook(&buf, &parser.ParseResult{}))

	f, err := excelize.OpenReader(bytes.NewReader(buf.Bytes()))
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Invoices")
	require.NoError(t, err)
	require.Len(t, rows, 1, "header only")
	assert.Equal(t, Columns, rows[0])
}
