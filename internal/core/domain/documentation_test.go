package domain_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/taskscript/internal/core/domain"
)

func TestParseSummary_Malformed(t *testing.T) {
	tests := []struct {
		name string
		doc  string
	}{
		{"Unclosed", "<summary>Builds"},
		{"Mismatched", "<summary>Builds</remarks>"},
		{"AnalyzerMarker", "<!-- Badly formed XML comment ignored for member \"M:Script.Build\" -->"},
		{"BadEntity", "<summary>a & b</summary>"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := domain.ParseSummary(strPtr(tt.doc))
			require.ErrorIs(t, err, domain.ErrInvalidDocumentation)
		})
	}
}

func TestParseSummary_FirstSummaryWins(t *testing.T) {
	summary, err := domain.ParseSummary(strPtr("<summary>One</summary><summary>Two</summary>"))
	require.NoError(t, err)
	assert.Equal(t, "One", summary)
}

func TestParseSummary_PlainText(t *testing.T) {
	summary, err := domain.ParseSummary(strPtr("just text"))
	require.NoError(t, err)
	assert.Empty(t, summary)
}
