package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTruncateTitle(t *testing.T) {
	tests := []struct {
		name     string
		fragment string
		want     string
	}{
		{"phase keyword", "Grand Hyatt Residences Mobilization Fee 50,000.00", "Grand Hyatt Residences"},
		{"total fee", "Riverside Pavilion Total Fee 125,430.00", "Riverside Pavilion"},
		{"installment", "Seaside Villa 3rd Installment", "Seaside Villa"},
		{"duration", "Marina Tower 12 months Interior fitout", "Marina Tower"},
		{"earliest stop wins", "Plaza Conceptual Design Development", "Plaza"},
		{"no stop word", "Hilltop Observatory", "Hilltop Observatory"},
		{"empty", "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, truncateTitle(tt.fragment))
		})
	}
}

func TestParseContext_ApplyHeader(t *testing.T) {
	ctx := &ParseContext{Discipline: "Interior Design"}

	ctx.applyHeader(&headerMatch{
		ProjectCode: "25 BK-045",
		Fragment:    "Grand Hyatt Residences Mobilization Fee",
	})

	assert.Equal(t, "25 BK-045", ctx.ProjectCode)
	assert.Equal(t, "Grand Hyatt Residences", ctx.ProjectName)
	assert.Empty(t, ctx.Discipline, "new project must clear the inherited discipline")
}

func TestParseContext_ApplyDiscipline(t *testing.T) {
	ctx := &ParseContext{}

	ctx.applyDiscipline("Landscape Architectural")
	assert.Equal(t, "Landscape Architectural", ctx.Discipline)

	// a line with no recognizable discipline leaves the context untouched
	ctx.applyDiscipline("some unrelated text")
	assert.Equal(t, "Landscape Architectural", ctx.Discipline)
}
