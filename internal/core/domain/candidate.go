package domain

import "strconv"

// CandidateKind distinguishes suggestion strings from concrete documents.
type CandidateKind int

const (
	// CandidateDocument is a concrete document with a target URL.
	CandidateDocument CandidateKind = iota
	// CandidateSuggestion is a query suggestion that may need resolving to a document.
	CandidateSuggestion
)

// String returns the string representation of the kind.
func (k CandidateKind) String() string {
	switch k {
	case CandidateDocument:
		return "document"
	case CandidateSuggestion:
		return "suggestion"
	default:
		return "unknown"
	}
}

// MatchMetadata carries backend details about why a candidate matched.
type MatchMetadata struct {
	Position    int
	FieldCount  int
	Description string
}

// Candidate is one item of the live dropdown.
// Candidates are immutable once received and replaced wholesale on each fetch.
type Candidate struct {
	ID          string
	Kind        CandidateKind
	DisplayText string
	TargetURL   string
	Match       MatchMetadata
}

// CandidatesFromHits converts backend documents to candidates.
func CandidatesFromHits(hits []Hit) []Candidate {
	out := make([]Candidate, 0, len(hits))
	for _, h := range hits {
		out = append(out, Candidate{
			ID:          h.Document.ID,
			Kind:        CandidateDocument,
			DisplayText: h.Document.DisplayTitle(),
			TargetURL:   h.Document.URL,
			Match: MatchMetadata{
				Position:    h.Position,
				FieldCount:  h.FieldCount,
				Description: h.Document.Description,
			},
		})
	}
	return out
}

// CandidatesFromSuggestions converts suggestion strings to candidates.
// Empty suggestions are skipped.
func CandidatesFromSuggestions(suggestions []Suggestion) []Candidate {
	out := make([]Candidate, 0, len(suggestions))
	for i, s := range suggestions {
		if s.Text == "" {
			continue
		}
		out = append(out, Candidate{
			ID:          "suggest-" + strconv.Itoa(i),
			Kind:        CandidateSuggestion,
			DisplayText: s.Text,
		})
	}
	return out
}
