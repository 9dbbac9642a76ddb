package web

import (
	"html/template"
	"net/url"
	"strings"

	"github.com/custodia-labs/qsc-search/internal/core/domain"
	"github.com/custodia-labs/qsc-search/internal/core/faceted"
	"github.com/custodia-labs/qsc-search/internal/excerpt"
	"github.com/custodia-labs/qsc-search/internal/highlight"
)

// paramExpand names a facet to show expanded. It is not part of the page
// state, so any navigation collapses facets again.
const paramExpand = "expand"

type pageData struct {
	Query    string
	Summary  string
	Searched bool
	Failed   bool

	Documents  []documentView
	Facets     []facetView
	Sorts      []sortView
	Pagination paginationView

	Widget widgetConfig
}

type documentView struct {
	Title   template.HTML
	URL     string
	Excerpt string
}

type facetView struct {
	Name        string
	Values      []facetValueView
	ToggleLabel string
	ToggleHref  string
}

type facetValueView struct {
	Label    string
	Count    int
	Selected bool
	Href     string
}

type sortView struct {
	Name     string
	Selected bool
	Href     string
}

type paginationView struct {
	Show         bool
	Label        string
	HasPrevious  bool
	HasNext      bool
	PreviousHref string
	NextHref     string
}

// widgetConfig is handed to the in-page search-as-you-type script.
type widgetConfig struct {
	MinQueryLength int
	DebounceMillis int64
	BlurMillis     int64
}

func newWidgetConfig(w domain.WidgetSettings) widgetConfig {
	return widgetConfig{
		MinQueryLength: w.MinQueryLength,
		DebounceMillis: w.Debounce.Milliseconds(),
		BlurMillis:     w.BlurGrace.Milliseconds(),
	}
}

// buildPage turns a committed page into template data. expanded lists the
// facets the current request asked to show in full.
func buildPage(page *faceted.Page, expanded []string) pageData {
	st := page.State()
	base := &url.URL{Path: "/search"}

	data := pageData{
		Query:    st.Query,
		Summary:  page.Summary(),
		Searched: st.Query != "",
		Failed:   page.Failed(),
	}
	if !data.Searched || page.Result() == nil {
		return data
	}

	for _, hit := range page.Result().Documents {
		data.Documents = append(data.Documents, documentView{
			Title:   highlightHTML(st.Query, hit.Document.DisplayTitle()),
			URL:     hit.Document.URL,
			Excerpt: excerpt.Summarize(hit.Document.Description, excerpt.DefaultLength),
		})
	}

	for _, f := range page.Facets() {
		fv := facetView{Name: f.Name, ToggleLabel: f.ToggleLabel}
		for _, v := range f.Values {
			fv.Values = append(fv.Values, facetValueView{
				Label:    v.Value,
				Count:    v.Count,
				Selected: v.Selected,
				Href:     v.Toggle.URL(base).String(),
			})
		}
		if f.ToggleLabel != "" {
			fv.ToggleHref = expandHref(st.URL(base), expanded, f.ID, !f.Expanded)
		}
		data.Facets = append(data.Facets, fv)
	}

	for _, so := range page.Sorts() {
		data.Sorts = append(data.Sorts, sortView{
			Name:     so.Name,
			Selected: so.Selected,
			Href:     so.Next.URL(base).String(),
		})
	}

	p := page.Pagination()
	data.Pagination = paginationView{
		Show:         p.Show,
		Label:        p.Label,
		HasPrevious:  p.HasPrevious,
		HasNext:      p.HasNext,
		PreviousHref: p.Previous.URL(base).String(),
		NextHref:     p.Next.URL(base).String(),
	}
	return data
}

// expandHref links to the current location with facetID added to or removed
// from the expanded set.
func expandHref(loc *url.URL, expanded []string, facetID string, on bool) string {
	q := loc.Query()
	q.Del(paramExpand)
	for _, id := range expanded {
		if id != facetID {
			q.Add(paramExpand, id)
		}
	}
	if on {
		q.Add(paramExpand, facetID)
	}
	// Keep the state's own encoding order and append the expansion.
	u := *loc
	extra := url.Values{paramExpand: q[paramExpand]}
	if enc := extra.Encode(); enc != "" {
		u.RawQuery = loc.RawQuery + "&" + enc
	}
	return u.String()
}

// highlightHTML escapes text and wraps the query matches in <strong>.
func highlightHTML(query, text string) template.HTML {
	return highlightPolicyHTML(domain.HighlightMultiTerm, query, text)
}

func highlightPolicyHTML(policy domain.HighlightPolicy, query, text string) template.HTML {
	var b strings.Builder
	for _, seg := range highlight.Apply(policy, query, text) {
		escaped := template.HTMLEscapeString(seg.Text)
		if seg.Matched {
			b.WriteString(`<strong class="highlight">`)
			b.WriteString(escaped)
			b.WriteString(`</strong>`)
		} else {
			b.WriteString(escaped)
		}
	}
	return template.HTML(b.String()) //nolint:gosec // every segment is escaped above
}
