package domain

// Document is a document as returned by the search backend.
type Document struct {
	// ID is the backend identifier.
	ID string `json:"id"`

	// Title is the human-readable title.
	Title string `json:"title"`

	// URL is the target the user lands on when selecting the document.
	URL string `json:"url"`

	// Description is an excerpt, possibly containing HTML markup.
	Description string `json:"description,omitempty"`
}

// Hit is one entry of the backend's documents array.
type Hit struct {
	// Document is the matched document.
	Document Document `json:"document"`

	// Position is the rank reported by the backend.
	Position int `json:"position"`

	// FieldCount is the number of fields returned for the document.
	FieldCount int `json:"fieldCount"`
}

// DisplayTitle returns the title, falling back to the ID when the title is empty.
func (d Document) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return d.ID
}

// Suggestion is one entry of the suggestion endpoint's top-level array.
type Suggestion struct {
	Text string `json:"suggest"`
}
