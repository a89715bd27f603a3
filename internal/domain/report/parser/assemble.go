package parser

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// assemble extracts one InvoiceRecord from a classified invoice line using
// the current context. It never fails: missing sub-fields degrade to empty or
// zero values plus diagnostics.
func (e *Engine) assemble(line string, lineNum int, ctx *ParseContext) (InvoiceRecord, []Diagnostic) {
	var diags []Diagnostic
	diag := func(reason string) {
		diags = append(diags, Diagnostic{Line: lineNum, Text: line, Reason: reason})
	}

	tokens := strings.Fields(line)
	inv := -1
	for i, tok := range tokens {
		if invoiceTokenPattern.MatchString(tok) {
			inv = i
			break
		}
	}
	if inv < 0 {
		// Callers only dispatch here after classification; treat a miss as an
		// ignorable line rather than panicking on malformed input.
		diag("invoice number token vanished between classification and assembly")
		return InvoiceRecord{}, diags
	}

	rec := InvoiceRecord{
		ProjectCode:   ctx.ProjectCode,
		ProjectName:   ctx.ProjectName,
		InvoiceNumber: tokens[inv],
		Discipline:    ctx.Discipline,
		InvoiceAmount: decimal.Zero,
		PaymentAmount: decimal.Zero,
	}
	if ctx.ProjectCode == "" {
		diag("invoice line before any project header")
	}

	description := e.describeBefore(tokens[:inv], &diags, lineNum, line)
	rec.Phase = e.phases.Classify(description)

	outstanding, remaining, paid := e.consumeAfter(tokens[inv+1:], &rec, diag)

	rec.PaymentAmount = paid
	rec.Status = deriveStatus(outstanding, remaining, paid)
	if outstanding.IsZero() && remaining.IsZero() && paid.IsZero() {
		diag("zero outstanding and paid amounts; possible voided invoice")
	}

	switch {
	case paid.IsPositive():
		rec.InvoiceAmount = paid
	case outstanding.IsPositive():
		rec.InvoiceAmount = outstanding
	default:
		rec.InvoiceAmount = remaining
	}

	return rec, diags
}

// describeBefore derives the description from the before-segment. The last
// pure-numeric token is the candidate billed amount; it only locates the
// description boundary and is never stored. A 3-4 letter month abbreviation
// immediately before it denotes a billing month, not scope text, and is
// excluded too.
func (e *Engine) describeBefore(before []string, diags *[]Diagnostic, lineNum int, line string) string {
	amountIdx := -1
	for i := len(before) - 1; i >= 0; i-- {
		if isNumericToken(before[i]) {
			amountIdx = i
			break
		}
	}
	if amountIdx < 0 {
		*diags = append(*diags, Diagnostic{Line: lineNum, Text: line, Reason: "no amount found"})
		return strings.Join(before, " ")
	}

	end := amountIdx
	if end > 0 && isMonthAbbrev(before[end-1]) && len(before[end-1]) <= 4 {
		end--
	}
	return strings.Join(before[:end], " ")
}

// consumeAfter walks the after-segment: an optional leading percentage, the
// invoice date, up to three amounts in the order outstanding/remaining/paid,
// and the payment date.
func (e *Engine) consumeAfter(after []string, rec *InvoiceRecord, diag func(string)) (outstanding, remaining, paid decimal.Decimal) {
	outstanding, remaining, paid = decimal.Zero, decimal.Zero, decimal.Zero

	k := 0
	if k < len(after) && percentTokenPattern.MatchString(after[k]) {
		rec.Notes = after[k]
		k++
	}

	rec.InvoiceDate, k = e.consumeDate(after, k, diag)

	amounts := make([]decimal.Decimal, 0, 3)
	for k < len(after) && len(amounts) < 3 {
		tok := after[k]
		if looksLikeDate(tok) {
			break
		}
		if !isNumericToken(tok) {
			break
		}
		amounts = append(amounts, parseAmount(tok))
		k++
	}
	if len(amounts) > 0 {
		outstanding = amounts[0]
	}
	if len(amounts) > 1 {
		remaining = amounts[1]
	}
	if len(amounts) > 2 {
		paid = amounts[2]
	}

	if k < len(after) {
		date, consumed := parseDate(after[k:], e.cfg.DateFormats)
		if consumed == 0 {
			diag(fmt.Sprintf("unparsed date: %q", strings.Join(after[k:], " ")))
		}
		rec.PaymentDate = date
	}

	return outstanding, remaining, paid
}

// consumeDate parses the invoice date starting at after[k]. When the next
// tokens look like a date but do not parse, they are skipped with a
// diagnostic so they cannot be misread as amounts.
func (e *Engine) consumeDate(after []string, k int, diag func(string)) (string, int) {
	if k >= len(after) {
		return "", k
	}
	if date, consumed := parseDate(after[k:], e.cfg.DateFormats); consumed > 0 {
		return date, k + consumed
	}

	switch {
	case isMonthAbbrev(after[k]):
		window := after[k : k+1]
		if k+1 < len(after) && strings.ContainsAny(after[k+1], "0123456789") {
			window = after[k : k+2]
		}
		diag(fmt.Sprintf("unparsed date: %q", strings.Join(window, " ")))
		return "", k + len(window)
	case looksLikeDate(after[k]):
		diag(fmt.Sprintf("unparsed date: %q", after[k]))
		return "", k + 1
	}
	return "", k
}

// deriveStatus maps the three trailing amounts to a payment status. Fully
// paid rows in the corpus repeat the billed total in both the first and last
// columns with a zero middle column, so a paid amount equal to the leading
// amount counts as settled rather than partial.
func deriveStatus(outstanding, remaining, paid decimal.Decimal) string {
	switch {
	case paid.IsPositive() && remaining.IsZero() &&
		(outstanding.IsZero() || outstanding.Equal(paid)):
		return StatusPaid
	case paid.IsPositive():
		return StatusPartial
	default:
		return StatusOutstanding
	}
}
