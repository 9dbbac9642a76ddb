package domain

// ResultPage is the full faceted result set for one results-page request.
type ResultPage struct {
	// Documents are the hits for the current page, in backend order.
	Documents []Hit `json:"documents"`

	// Facets are the filter dimensions with their countable values.
	Facets []Facet `json:"facets"`

	// Paging describes the page window.
	Paging Paging `json:"paging"`

	// SortOptions lists the available orderings.
	SortOptions []SortOption `json:"sort"`

	// Total is the total number of matching documents.
	Total int `json:"total"`
}

// Facet is a named, enumerable filter dimension.
type Facet struct {
	ID         string       `json:"id"`
	Name       string       `json:"name"`
	FilterName string       `json:"filterName"`
	Values     []FacetValue `json:"values"`
}

// FacetValue is one countable value of a facet.
type FacetValue struct {
	Value string `json:"value"`

	// Filter is the backend's key=value filter string, e.g. "f.lang=en".
	Filter string `json:"filter"`

	Count int `json:"count"`
}

// PageRef points at a page number.
type PageRef struct {
	Number int `json:"number"`
}

// Paging describes the backend-reported page window.
type Paging struct {
	PageCount    int      `json:"pageCount"`
	CurrentPage  int      `json:"currentPage"`
	FirstPage    PageRef  `json:"firstPage"`
	LastPage     PageRef  `json:"lastPage"`
	NextPage     *PageRef `json:"nextPage,omitempty"`
	PreviousPage *PageRef `json:"previousPage,omitempty"`
	Rows         int      `json:"rows"`
}

// DefaultPaging is used when the backend omits paging fields.
func DefaultPaging() Paging {
	return Paging{
		PageCount:   1,
		CurrentPage: 1,
		FirstPage:   PageRef{Number: 1},
		LastPage:    PageRef{Number: 1},
		Rows:        10,
	}
}

// SortOption is one available ordering of the result set.
type SortOption struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Selected bool   `json:"selected"`
}

// DefaultSortOptions is offered when the backend does not report any.
func DefaultSortOptions() []SortOption {
	return []SortOption{
		{ID: "score", Name: "Relevance", Selected: true},
		{ID: "titledesc", Name: "Title Z-A"},
		{ID: "titleasc", Name: "Title A-Z"},
	}
}

// EmptyResultPage is the degraded state shown when a results-page fetch fails.
func EmptyResultPage() *ResultPage {
	return &ResultPage{Paging: DefaultPaging()}
}

// ResolutionKind says where a resolved submission should go.
type ResolutionKind int

const (
	// ResolveToDocument redirects to a concrete document URL.
	ResolveToDocument ResolutionKind = iota
	// ResolveToResultsPage navigates to the faceted results page.
	ResolveToResultsPage
)

// Resolution is the outcome of resolving a suggestion to a destination.
type Resolution struct {
	Kind  ResolutionKind
	URL   string
	Query string
}
