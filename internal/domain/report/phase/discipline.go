package phase

import (
	"regexp"
	"strings"
)

// Canonical discipline names. Order matters: candidates are checked
// longest-name-first because "Landscape Architectural" contains
// "Architectural" as a substring.
const (
	LandscapeArchitectural = "Landscape Architectural"
	InteriorDesign         = "Interior Design"
	Architectural          = "Architectural"
)

// disciplines is kept sorted by descending name length.
var disciplines = []string{
	LandscapeArchitectural,
	InteriorDesign,
	Architectural,
}

// "6 month Interior Design ..." style duration prefix
var durationPrefixPattern = regexp.MustCompile(`(?i)^\d+\s+months?\b`)

// MatchDiscipline returns the canonical discipline contained in s, checking
// longest names first. Empty string when none match.
func MatchDiscipline(s string) string {
	upper := strings.ToUpper(s)
	for _, d := range disciplines {
		if strings.Contains(upper, strings.ToUpper(d)) {
			return d
		}
	}
	return ""
}

// IsDisciplineMarker reports whether a trimmed line is a discipline marker: a
// standalone discipline name, or a duration-prefixed discipline phrase.
func IsDisciplineMarker(line string) bool {
	for _, d := range disciplines {
		if strings.EqualFold(line, d) {
			return true
		}
	}
	return durationPrefixPattern.MatchString(line) && MatchDiscipline(line) != ""
}
