package parser

import (
	"fmt"
	"strings"
	"testing"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Test a full header line that also opens an invoice entry
func TestEngine_ParseHeaderWithInvoice(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	result := engine.Parse([]string{
		"1 25 BK-045 SD-01 Grand Hyatt Residences Mobilization Fee 50,000.00 I25-001 10% Aug 26.25 50,000.00 0.00 50,000.00 Sep 1.25",
	})

	require.Len(t, result.Records, 1)
	rec := result.Records[0]

	assert.Equal(t, "25 BK-045", rec.ProjectCode)
	assert.Equal(t, "Grand Hyatt Residences", rec.ProjectName)
	assert.Equal(t, "I25-001", rec.InvoiceNumber)
	assert.Equal(t, "2025-08-26", rec.InvoiceDate)
	assert.Equal(t, "2025-09-01", rec.PaymentDate)
	assert.Equal(t, "Mobilization Fee", rec.Phase)
	assert.Equal(t, "10%", rec.Notes)
	assert.Equal(t, StatusPaid, rec.Status)
	assert.True(t, rec.PaymentAmount.Equal(decimal.NewFromInt(50_000)))
	assert.True(t, rec.InvoiceAmount.Equal(decimal.NewFromInt(50_000)))
	assert.Equal(t, 1, result.InvoiceLines)
}

// Test that project and discipline context persists across lines
func TestEngine_ContextTracking(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	result := engine.Parse([]string{
		"2 24 HV-112 SD-02 Riverside Pavilion Total Fee",
		"Landscape Architectural",
		"Conceptual Design 18,500.00 I24-031 15-Nov-24 18,500.00 0.00 0.00",
		"Design Development 22,000.00 I24-015 15-Nov-24 22,000.00 0.00 0.00",
	})

	require.Len(t, result.Records, 2)

	t.Run("inherits project and discipline", func(t *testing.T) {
		for _, rec := range result.Records {
			assert.Equal(t, "24 HV-112", rec.ProjectCode)
			assert.Equal(t, "Riverside Pavilion", rec.ProjectName)
			assert.Equal(t, "Landscape Architectural", rec.Discipline)
		}
	})

	t.Run("phases classified per line", func(t *testing.T) {
		assert.Equal(t, "Conceptual Design", result.Records[0].Phase)
		assert.Equal(t, "Design Development", result.Records[1].Phase)
	})

	t.Run("outstanding rows derive status", func(t *testing.T) {
		rec := result.Records[1]
		assert.Equal(t, StatusOutstanding, rec.Status)
		assert.True(t, rec.InvoiceAmount.Equal(decimal.NewFromInt(22_000)))
		assert.True(t, rec.PaymentAmount.IsZero())
		assert.Empty(t, rec.PaymentDate)
	})
}

// Test that a new project header resets the discipline
func TestEngine_HeaderResetsDiscipline(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	result := engine.Parse([]string{
		"1 24 HV-112 SD-02 Riverside Pavilion",
		"Interior Design",
		"Conceptual Design 10,000.00 I24-040 15-Nov-24 10,000.00 0.00 0.00",
		"2 25 BK-045 SD-01 Grand Hyatt Residences",
		"Mobilization Fee 50,000.00 I25-001 Aug 26.25 50,000.00 0.00 0.00",
	})

	require.Len(t, result.Records, 2)
	assert.Equal(t, "Interior Design", result.Records[0].Discipline)
	assert.Empty(t, result.Records[1].Discipline)
	assert.Equal(t, "25 BK-045", result.Records[1].ProjectCode)
}

// Test skipping of totals, boilerplate and page markers
func TestEngine_SkippedLines(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	result := engine.Parse([]string{
		"",
		"Page 1 of 3",
		"Invoice Date Amount Remark",
		"125,430.00 Total Fee Summary",
	})

	assert.Empty(t, result.Records)
	assert.Empty(t, result.Diagnostics)
	assert.Equal(t, 4, result.TotalLines)
	assert.Equal(t, 4, result.SkippedLines)
	assert.Equal(t, 0, result.InvoiceLines)
}

// Test that a configurable threshold decides totals vs invoice-adjacent rows
func TestEngine_TotalsThreshold(t *testing.T) {
	cfg := DefaultConfig()
	cfg.TotalsThreshold = decimal.NewFromInt(20_000)
	engine := NewEngine(cfg)

	result := engine.Parse([]string{
		"25,000.00 Subtotal",
		"25,000.00 carried forward I25-009 Aug 26.25 25,000.00 0.00 0.00",
	})

	// the first line exceeds the threshold with no invoice number, the second
	// carries an invoice number and must survive
	require.Len(t, result.Records, 1)
	assert.Equal(t, "I25-009", result.Records[0].InvoiceNumber)
	assert.Equal(t, 1, result.SkippedLines)
}

// Test invoice lines arriving before any project header
func TestEngine_InvoiceBeforeHeader(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	result := engine.Parse([]string{
		"Conceptual Design 5,000.00 I25-002 Aug 1.25 5,000.00 0.00 0.00",
	})

	require.Len(t, result.Records, 1)
	rec := result.Records[0]
	assert.Empty(t, rec.ProjectCode)
	assert.Empty(t, rec.ProjectName)
	assert.Equal(t, "I25-002", rec.InvoiceNumber)

	require.NotEmpty(t, result.Diagnostics)
	assert.Equal(t, "invoice line before any project header", result.Diagnostics[0].Reason)
	assert.Equal(t, 0, result.Diagnostics[0].Line)
}

// Test that a malformed date degrades to a diagnostic, not a bad amount
func TestEngine_MalformedDateDiagnostic(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	result := engine.Parse([]string{
		"1 25 BK-045 SD-01 Grand Hyatt Residences",
		"Conceptual Design 15,000.00 I24-020 Aug 2025 15,000.00 0.00 0.00",
	})

	require.Len(t, result.Records, 1)
	rec := result.Records[0]

	assert.Empty(t, rec.InvoiceDate)
	assert.True(t, rec.InvoiceAmount.Equal(decimal.NewFromInt(15_000)),
		"year token must not be misread as an amount, got %s", rec.InvoiceAmount)
	assert.Equal(t, StatusOutstanding, rec.Status)

	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, `unparsed date: "Aug 2025"`, result.Diagnostics[0].Reason)
}

// Test the voided-invoice diagnostic for all-zero amount columns
func TestEngine_ZeroAmountsDiagnostic(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	result := engine.Parse([]string{
		"1 25 BK-045 SD-01 Grand Hyatt Residences",
		"Conceptual Design 0.00 I25-003 Aug 26.25 0.00 0.00 0.00",
	})

	require.Len(t, result.Records, 1)
	assert.Equal(t, StatusOutstanding, result.Records[0].Status)

	require.Len(t, result.Diagnostics, 1)
	assert.Equal(t, "zero outstanding and paid amounts; possible voided invoice", result.Diagnostics[0].Reason)
}

// Test partial payments
func TestEngine_PartialPayment(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	result := engine.Parse([]string{
		"1 25 BK-045 SD-01 Grand Hyatt Residences",
		"Design Development 40,000.00 I25-004 Aug 26.25 40,000.00 15,000.00 25,000.00 Sep 10.25",
	})

	require.Len(t, result.Records, 1)
	rec := result.Records[0]
	assert.Equal(t, StatusPartial, rec.Status)
	assert.True(t, rec.PaymentAmount.Equal(decimal.NewFromInt(25_000)))
	assert.True(t, rec.InvoiceAmount.Equal(decimal.NewFromInt(25_000)))
	assert.Equal(t, "2025-09-10", rec.PaymentDate)
}

// Test that parsing the same input twice yields identical results
func TestEngine_ParseIdempotent(t *testing.T) {
	engine := NewEngine(DefaultConfig())
	lines := []string{
		"1 25 BK-045 SD-01 Grand Hyatt Residences Mobilization Fee 50,000.00 I25-001 10% Aug 26.25 50,000.00 0.00 50,000.00 Sep 1.25",
		"Landscape Architectural",
		"Conceptual Design 18,500.00 I25-005 Sep 2.25 18,500.00 0.00 0.00",
	}

	first := engine.Parse(lines)
	second := engine.Parse(lines)

	assert.Equal(t, first, second)
}

// Test counters across a mixed report
func TestEngine_Counters(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	result := engine.Parse([]string{
		"Page 1",
		"1 25 BK-045 SD-01 Grand Hyatt Residences",
		"Mobilization Fee 50,000.00 I25-001 Aug 26.25 50,000.00 0.00 50,000.00",
		"Landscape Architectural",
		"125,430.00 Total Fee",
		"",
	})

	assert.Equal(t, 6, result.TotalLines)
	assert.Equal(t, 1, result.InvoiceLines)
	assert.Equal(t, 3, result.SkippedLines)
	assert.Len(t, result.Records, 1)
}

// Test transmittal numbers with suffixes
func TestEngine_TransmittalNumbers(t *testing.T) {
	engine := NewEngine(DefaultConfig())

	result := engine.Parse([]string{
		"1 24 HV-112 SD-02 Riverside Pavilion",
		"Construction Documents 30,000.00 T24-013A&B 15-Nov-24 30,000.00 0.00 30,000.00 20-Nov-24",
	})

	require.Len(t, result.Records, 1)
	rec := result.Records[0]
	assert.Equal(t, "T24-013A&B", rec.InvoiceNumber)
	assert.Equal(t, "Construction Documents", rec.Phase)
	assert.Equal(t, "2024-11-15", rec.InvoiceDate)
	assert.Equal(t, "2024-11-20", rec.PaymentDate)
	assert.Equal(t, StatusPaid, rec.Status)
}

// Test that every emitted record carries a valid status regardless of input
func TestEngine_StatusAlwaysValid(t *testing.T) {
	gofakeit.Seed(11)
	engine := NewEngine(DefaultConfig())

	valid := map[string]bool{StatusPaid: true, StatusPartial: true, StatusOutstanding: true}

	lines := make([]string, 0, 200)
	for i := 0; i < 100; i++ {
		lines = append(lines, fmt.Sprintf("%d 25 BK-%03d SD-01 %s", i+1, i+1, gofakeit.Company()))
		lines = append(lines, fmt.Sprintf("Conceptual Design %.2f I25-%03d Aug %d.25 %.2f 0.00 %.2f",
			gofakeit.Price(1_000, 90_000), i+1, gofakeit.Number(1, 28),
			gofakeit.Price(1_000, 90_000), gofakeit.Price(0, 90_000)))
	}

	result := engine.Parse(lines)
	require.NotEmpty(t, result.Records)
	for _, rec := range result.Records {
		assert.True(t, valid[rec.Status], "invalid status %q for %s", rec.Status, rec.InvoiceNumber)
		assert.False(t, rec.InvoiceAmount.IsNegative())
		assert.False(t, rec.PaymentAmount.IsNegative())
	}
}

func BenchmarkEngine_Parse(b *testing.B) {
	engine := NewEngine(DefaultConfig())
	lines := make([]string, 0, 300)
	for i := 0; i < 100; i++ {
		lines = append(lines,
			fmt.Sprintf("%d 25 BK-%03d SD-01 Project %d Mobilization Fee", i+1, i+1, i+1),
			"Landscape Architectural",
			fmt.Sprintf("Conceptual Design 18,500.00 I25-%03d Aug 26.25 18,500.00 0.00 18,500.00 Sep 1.25", i+1),
		)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		result := engine.Parse(lines)
		if len(result.Records) != 100 {
			b.Fatalf("expected 100 records, got %d", len(result.Records))
		}
	}
}

func BenchmarkEngine_ParseLongLine(b *testing.B) {
	engine := NewEngine(DefaultConfig())
	line := "1 25 BK-045 SD-01 " + strings.Repeat("Grand Hyatt Residences ", 10) +
		"Mobilization Fee 50,000.00 I25-001 10% Aug 26.25 50,000.00 0.00 50,000.00 Sep 1.25"

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		engine.Parse([]string{line})
	}
}
