package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocument_DisplayTitle(t *testing.T) {
	assert.Equal(t, "Auth guide", Document{ID: "1", Title: "Auth guide"}.DisplayTitle())
	assert.Equal(t, "doc-7", Document{ID: "doc-7"}.DisplayTitle())
}

func TestCandidatesFromHits(t *testing.T) {
	hits := []Hit{
		{Document: Document{ID: "a", Title: "Auth", URL: "/docs/auth", Description: "<em>auth</em>"}, Position: 1, FieldCount: 4},
		{Document: Document{ID: "b", URL: "/docs/b"}, Position: 2},
	}

	got := CandidatesFromHits(hits)

	require.Len(t, got, 2)
	assert.Equal(t, Candidate{
		ID:          "a",
		Kind:        CandidateDocument,
		DisplayText: "Auth",
		TargetURL:   "/docs/auth",
		Match:       MatchMetadata{Position: 1, FieldCount: 4, Description: "<em>auth</em>"},
	}, got[0])
	assert.Equal(t, "b", got[1].DisplayText)
}

func TestCandidatesFromHits_Empty(t *testing.T) {
	got := CandidatesFromHits(nil)

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCandidatesFromSuggestions_SkipsEmpty(t *testing.T) {
	got := CandidatesFromSuggestions([]Suggestion{{Text: "authentication"}, {Text: ""}, {Text: "authorization"}})

	require.Len(t, got, 2)
	assert.Equal(t, CandidateSuggestion, got[0].Kind)
	assert.Equal(t, "authentication", got[0].DisplayText)
	assert.Empty(t, got[0].TargetURL)
	assert.Equal(t, "authorization", got[1].DisplayText)
	assert.NotEqual(t, got[0].ID, got[1].ID)
}

func TestCandidateKind_String(t *testing.T) {
	assert.Equal(t, "document", CandidateDocument.String())
	assert.Equal(t, "suggestion", CandidateSuggestion.String())
	assert.Equal(t, "unknown", CandidateKind(42).String())
}

func TestDefaultSortOptions(t *testing.T) {
	opts := DefaultSortOptions()

	require.Len(t, opts, 3)
	assert.Equal(t, "score", opts[0].ID)
	assert.True(t, opts[0].Selected)
	assert.Equal(t, "titledesc", opts[1].ID)
	assert.Equal(t, "titleasc", opts[2].ID)
}

func TestDefaultPaging(t *testing.T) {
	p := DefaultPaging()

	assert.Equal(t, 1, p.PageCount)
	assert.Equal(t, 1, p.CurrentPage)
	assert.Equal(t, 10, p.Rows)
	assert.Nil(t, p.NextPage)
}
