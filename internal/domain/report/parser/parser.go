// Package parser implements the line-oriented financial status report engine.
// It classifies report lines, tracks project/discipline context across lines,
// extracts dates, amounts and phases from irregular positional layouts, and
// assembles per-invoice records with a derived payment status.
//
// The engine is a pure transformation: no I/O, no database access, one
// ParseContext per invocation. Malformed content never raises - it degrades
// into best-effort records plus Diagnostics for human review.
package parser

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/studioatlas/fee-tracker/internal/domain/report/phase"
)

// Config tunes the engine. The corpus variants that used to be separate
// parser implementations differ only in these knobs.
type Config struct {
	// TotalsThreshold separates summary rows from invoice rows: a line
	// opening with an amount above it (and carrying no invoice number) is a
	// totals line. Tuned to exceed any single invoice amount in the corpus.
	TotalsThreshold decimal.Decimal

	// DateFormats is the priority order for date recognition.
	DateFormats []DateFormat
}

// DefaultConfig returns the engine configuration matching the recurring
// report template family.
func DefaultConfig() Config {
	return Config{
		TotalsThreshold: decimal.NewFromInt(100_000),
		DateFormats:     defaultDateFormats,
	}
}

// Engine is the report parser. It is immutable after construction and safe
// for concurrent use; each Parse call owns its own ParseContext, so separate
// reports parallelize without synchronization.
type Engine struct {
	cfg    Config
	phases *phase.Classifier
}

// NewEngine creates an engine with the given configuration.
func NewEngine(cfg Config) *Engine {
	if len(cfg.DateFormats) == 0 {
		cfg.DateFormats = defaultDateFormats
	}
	if cfg.TotalsThreshold.IsZero() {
		cfg.TotalsThreshold = DefaultConfig().TotalsThreshold
	}
	return &Engine{
		cfg:    cfg,
		phases: phase.NewClassifier(),
	}
}

// Parse scans an ordered, already-materialized line sequence and returns the
// extracted invoice records plus diagnostics. Ownership of the result
// transfers entirely to the caller.
func (e *Engine) Parse(lines []string) *ParseResult {
	ctx := &ParseContext{}
	res := &ParseResult{
		Records:     make([]InvoiceRecord, 0, len(lines)/2),
		Diagnostics: make([]Diagnostic, 0),
	}

	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		res.TotalLines++

		switch e.classify(line) {
		case kindBoilerplate, kindIgnore, kindTotals:
			res.SkippedLines++

		case kindHeader:
			h := matchHeader(line)
			ctx.applyHeader(h)
			// A header line can simultaneously open an invoice entry. Re-scan
			// the remainder for the invoice pattern against the now-updated
			// context.
			if containsInvoiceToken(h.Fragment) {
				e.emit(h.Fragment, i, ctx, res)
			}

		case kindDiscipline:
			ctx.applyDiscipline(line)

		case kindInvoice:
			e.emit(line, i, ctx, res)
		}
	}

	return res
}

// emit runs the assembler on one invoice line and appends its outputs.
func (e *Engine) emit(line string, lineIdx int, ctx *ParseContext, res *ParseResult) {
	rec, diags := e.assemble(line, lineIdx, ctx)
	if rec.InvoiceNumber == "" {
		res.Diagnostics = append(res.Diagnostics, diags...)
		return
	}
	res.InvoiceLines++
	res.Records = append(res.Records, rec)
	res.Diagnostics = append(res.Diagnostics, diags...)
}
