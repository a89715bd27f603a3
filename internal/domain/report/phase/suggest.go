package phase

import (
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// canonicalLabels are the targets for fuzzy suggestions.
var canonicalLabels = []string{
	Mobilization,
	ConceptualDesign,
	DesignDevelopment,
	ConstructionDocuments,
	ConstructionObservation,
	MonthlyInstallment,
	MonthlyFee,
}

// suggestMaxDistance caps the Levenshtein distance accepted for a suggestion.
// Beyond this the description is genuinely free text, not a typo.
const suggestMaxDistance = 6

// Suggest returns the canonical label closest to a fallback description, for
// reviewers triaging records whose phase did not classify. Empty string when
// nothing is close enough.
func Suggest(description string) string {
	description = strings.ToLower(strings.TrimSpace(description))
	if description == "" {
		return ""
	}

	best := ""
	bestDist := suggestMaxDistance + 1
	for _, label := range canonicalLabels {
		d := fuzzy.LevenshteinDistance(description, strings.ToLower(label))
		if d < bestDist {
			bestDist = d
			best = label
		}
	}
	return best
}
