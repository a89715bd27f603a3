package parser

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

// numericTokenPattern matches a pure amount token: digits with optional
// thousands separators and decimals ("50,000.00", "1234", "0.00").
var numericTokenPattern = regexp.MustCompile(`^\d{1,3}(?:,\d{3})*(?:\.\d+)?$|^\d+(?:\.\d+)?$`)

// percentTokenPattern matches the optional percentage note ("10%", "7.5%").
var percentTokenPattern = regexp.MustCompile(`^\d+(?:\.\d+)?%$`)

// isNumericToken reports whether tok is a pure amount token.
func isNumericToken(tok string) bool {
	return numericTokenPattern.MatchString(tok)
}

// parseAmount strips thousands separators and parses a decimal amount.
// Anything non-numeric or negative yields zero; it never fails.
func parseAmount(tok string) decimal.Decimal {
	tok = strings.ReplaceAll(strings.TrimSpace(tok), ",", "")
	d, err := decimal.NewFromString(tok)
	if err != nil || d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// looksLikeDate reports whether an after-segment token belongs to a date
// rather than an amount: it contains both a letter and a hyphen
// ("15-Nov-24").
func looksLikeDate(tok string) bool {
	if !strings.Contains(tok, "-") {
		return false
	}
	return strings.IndexFunc(tok, func(r rune) bool {
		return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
	}) >= 0
}
