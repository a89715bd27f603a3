package parser

import (
	"regexp"
	"strings"

	"github.com/studioatlas/fee-tracker/internal/domain/report/phase"
)

// Keywords that mark the end of the project title inside a header line.
// Header lines frequently run straight into phase or summary text
// ("... Grand Hyatt Residences Mobilization Fee 50,000.00 ..."), so the title
// is cut at the first occurrence of any of these.
var titleStopWords = []string{
	"Mobilization",
	"Conceptual",
	"Design",
	"Construction",
	"Total Fee",
}

var titleStopPatterns = []*regexp.Regexp{
	// "1st Installment", "3rd installment"
	regexp.MustCompile(`(?i)\b\d+(?:st|nd|rd|th)\s+installment\b`),
	// "6 month", "12 months"
	regexp.MustCompile(`(?i)\b\d+\s+months?\b`),
}

// applyHeader resets the context for a new project: code and truncated title
// are captured, the discipline is cleared.
func (ctx *ParseContext) applyHeader(h *headerMatch) {
	ctx.ProjectCode = h.ProjectCode
	ctx.ProjectName = truncateTitle(h.Fragment)
	ctx.Discipline = ""
}

// applyDiscipline sets the current discipline, which persists across
// subsequent invoice lines until the next marker or project header.
func (ctx *ParseContext) applyDiscipline(line string) {
	if d := phase.MatchDiscipline(line); d != "" {
		ctx.Discipline = d
	}
}

// truncateTitle strips trailing phase/duration/summary text that leaked into
// the header line, keeping only the project title.
func truncateTitle(fragment string) string {
	cut := len(fragment)
	upper := strings.ToUpper(fragment)
	for _, w := range titleStopWords {
		if i := strings.Index(upper, strings.ToUpper(w)); i >= 0 && i < cut {
			cut = i
		}
	}
	for _, p := range titleStopPatterns {
		if loc := p.FindStringIndex(fragment); loc != nil && loc[0] < cut {
			cut = loc[0]
		}
	}
	return strings.TrimSpace(fragment[:cut])
}
