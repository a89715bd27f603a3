package phase

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchDiscipline(t *testing.T) {
	tests := []struct {
		name string
		line string
		want string
	}{
		{"standalone", "Interior Design", InteriorDesign},
		{"case insensitive", "LANDSCAPE ARCHITECTURAL", LandscapeArchitectural},
		{"embedded", "6 month Architectural services", Architectural},
		{"longest name wins", "Landscape Architectural scope", LandscapeArchitectural},
		{"no match", "Structural Engineering", ""},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatchDiscipline(tt.line))
		})
	}
}

func TestIsDisciplineMarker(t *testing.T) {
	tests := []struct {
		name string
		line string
		want bool
	}{
		{"standalone name", "Landscape Architectural", true},
		{"standalone lowercase", "interior design", true},
		{"duration prefix", "6 month Interior Design contract", true},
		{"plural months", "12 months Architectural", true},
		{"duration without discipline", "6 month retainer", false},
		{"embedded without duration", "the Architectural drawings were issued", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsDisciplineMarker(tt.line))
		})
	}
}

func TestSuggest(t *testing.T) {
	t.Run("close misspelling", func(t *testing.T) {
		assert.Equal(t, Mobilization, Suggest("Mobilisation Fee"))
	})

	t.Run("truncated label", func(t *testing.T) {
		assert.Equal(t, ConceptualDesign, Suggest("Conceptual Dsgn"))
	})

	t.Run("free text too far", func(t *testing.T) {
		assert.Empty(t, Suggest("reimbursable travel expenses"))
	})

	t.Run("empty", func(t *testing.T) {
		assert.Empty(t, Suggest(""))
	})
}
