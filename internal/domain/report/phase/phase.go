// Package phase maps free-text billing descriptions to canonical phase labels
// and recognizes the discipline markers that appear between invoice lines.
// Matching uses the Aho-Corasick algorithm so every keyword is checked in a
// single pass through the description, with priorities deciding ties.
package phase

import (
	"regexp"
	"strings"

	"github.com/cloudflare/ahocorasick"
)

// Canonical phase labels emitted by the classifier.
const (
	Mobilization            = "Mobilization Fee"
	ConceptualDesign        = "Conceptual Design"
	DesignDevelopment       = "Design Development"
	ConstructionDocuments   = "Construction Documents"
	ConstructionObservation = "Construction Observation"
	MonthlyInstallment      = "Monthly Installment"
	MonthlyFee              = "Monthly Fee"
	Unknown                 = "Unknown"
)

// keywordRule binds an uppercase keyword to a canonical label. Higher priority
// wins when a description contains more than one keyword ("Mobilization and
// Conceptual Design" classifies as Mobilization).
type keywordRule struct {
	Keyword  string
	Label    string
	Priority int
}

var defaultRules = []keywordRule{
	{"MOBILIZATION", Mobilization, 700},
	{"CONCEPTUAL", ConceptualDesign, 600},
	{"DESIGN DEVELOPMENT", DesignDevelopment, 500},
	{"CONSTRUCTION DOCUMENT", ConstructionDocuments, 400},
	{"CONSTRUCTION OBSERVATION", ConstructionObservation, 300},
}

var (
	// "1st Installment", "12th installment"
	ordinalInstallmentPattern = regexp.MustCompile(`(?i)\b\d+(?:st|nd|rd|th)\s+installment\b`)
	// "Aug 2025", "September 2024" - a billing month used as the whole scope text
	monthYearPattern = regexp.MustCompile(`(?i)\b(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)[a-z]*\.?\s+20\d{2}\b`)
)

// Classifier resolves descriptions to phase labels using a pre-built
// multi-pattern matcher. It is immutable after construction and safe for
// concurrent use.
type Classifier struct {
	matcher *ahocorasick.Matcher
	rules   []keywordRule
}

// NewClassifier builds the classifier from the default keyword table.
func NewClassifier() *Classifier {
	patterns := make([][]byte, len(defaultRules))
	for i, r := range defaultRules {
		patterns[i] = []byte(r.Keyword)
	}
	return &Classifier{
		matcher: ahocorasick.NewMatcher(patterns),
		rules:   defaultRules,
	}
}

// Classify maps a description to its canonical phase label. Keyword rules win
// over the installment and month-year patterns; an empty description yields
// Unknown and anything unrecognized falls back to the raw description.
func (c *Classifier) Classify(description string) string {
	description = strings.TrimSpace(description)
	if description == "" {
		return Unknown
	}

	normalized := strings.ToUpper(description)
	best := -1
	for _, idx := range c.matcher.Match([]byte(normalized)) {
		if idx < 0 || idx >= len(c.rules) {
			continue
		}
		if best == -1 || c.rules[idx].Priority > c.rules[best].Priority {
			best = idx
		}
	}
	if best >= 0 {
		return c.rules[best].Label
	}

	if ordinalInstallmentPattern.MatchString(description) {
		return MonthlyInstallment
	}
	if monthYearPattern.MatchString(description) {
		return MonthlyFee
	}

	return description
}

// IsCanonical reports whether label is one of the classifier's own labels, as
// opposed to a raw-description fallback.
func IsCanonical(label string) bool {
	switch label {
	case Mobilization, ConceptualDesign, DesignDevelopment,
		ConstructionDocuments, ConstructionObservation,
		MonthlyInstallment, MonthlyFee, Unknown:
		return true
	}
	return false
}
