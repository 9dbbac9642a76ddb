package faceted

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
)

// URL parameter names.
const (
	ParamQuery   = "query"
	ParamPage    = "page"
	ParamSort    = "sort"
	FilterPrefix = "f."
)

// Filter is one active facet value.
type Filter struct {
	Key   string
	Value string
}

// State is the results page state carried in the URL.
type State struct {
	Query   string
	Page    int
	Sort    string
	Filters []Filter
}

// Parse reads a State from a raw URL query string. Filters keep their URL
// order and multiplicity. For query, page and sort the first occurrence
// wins. A missing, malformed or non-positive page becomes 1. Unknown
// parameters are ignored.
func Parse(rawQuery string) State {
	st := State{Page: 1}
	seen := make(map[string]bool, 3)
	for _, part := range strings.Split(rawQuery, "&") {
		if part == "" {
			continue
		}
		rawKey, rawValue, _ := strings.Cut(part, "=")
		key, err := url.QueryUnescape(rawKey)
		if err != nil {
			continue
		}
		value, err := url.QueryUnescape(rawValue)
		if err != nil {
			continue
		}

		switch {
		case key == ParamQuery || key == ParamPage || key == ParamSort:
			if seen[key] {
				continue
			}
			seen[key] = true
			switch key {
			case ParamQuery:
				st.Query = value
			case ParamPage:
				if n, err := strconv.Atoi(value); err == nil && n >= 1 {
					st.Page = n
				}
			case ParamSort:
				st.Sort = value
			}
		case strings.HasPrefix(key, FilterPrefix) && len(key) > len(FilterPrefix):
			st.Filters = append(st.Filters, Filter{Key: key[len(FilterPrefix):], Value: value})
		}
	}
	return st
}

// Encode serialises the state as a URL query string: query, page, sort (when
// set), then filters in order.
func (s State) Encode() string {
	parts := make([]string, 0, 3+len(s.Filters))
	if s.Query != "" {
		parts = append(parts, ParamQuery+"="+url.QueryEscape(s.Query))
	}
	page := s.Page
	if page < 1 {
		page = 1
	}
	parts = append(parts, ParamPage+"="+strconv.Itoa(page))
	if s.Sort != "" {
		parts = append(parts, ParamSort+"="+url.QueryEscape(s.Sort))
	}
	for _, f := range s.Filters {
		parts = append(parts, url.QueryEscape(FilterPrefix+f.Key)+"="+url.QueryEscape(f.Value))
	}
	return strings.Join(parts, "&")
}

// URL returns base with its query replaced by the encoded state.
func (s State) URL(base *url.URL) *url.URL {
	u := url.URL{Path: "/search"}
	if base != nil {
		u = *base
	}
	u.RawQuery = s.Encode()
	u.Fragment = ""
	return &u
}

// Equal compares states; filters are compared as a multiset.
func (s State) Equal(o State) bool {
	if s.Query != o.Query || s.Page != o.Page || s.Sort != o.Sort || len(s.Filters) != len(o.Filters) {
		return false
	}
	a := sortedFilters(s.Filters)
	b := sortedFilters(o.Filters)
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func sortedFilters(in []Filter) []Filter {
	out := append([]Filter(nil), in...)
	sort.Slice(out, func(i, j int) bool {
		if out[i].Key != out[j].Key {
			return out[i].Key < out[j].Key
		}
		return out[i].Value < out[j].Value
	})
	return out
}

// HasFilter reports whether key=value is active.
func (s State) HasFilter(f Filter) bool {
	for _, have := range s.Filters {
		if have == f {
			return true
		}
	}
	return false
}

// FilterValues returns the active values for key, in order.
func (s State) FilterValues(key string) []string {
	var out []string
	for _, f := range s.Filters {
		if f.Key == key {
			out = append(out, f.Value)
		}
	}
	return out
}

// ToggleFilter flips one filter value and resets to page 1.
// Other filters, including other values of the same key, are preserved.
func (s State) ToggleFilter(f Filter) State {
	return s.SetFilter(f, !s.HasFilter(f))
}

// SetFilter adds (without duplicating) or removes one filter value and
// resets to page 1.
func (s State) SetFilter(f Filter, on bool) State {
	next := s.clone()
	if on {
		next = next.withFilter(f)
	} else {
		kept := next.Filters[:0]
		for _, have := range next.Filters {
			if have != f {
				kept = append(kept, have)
			}
		}
		next.Filters = kept
	}
	next.Page = 1
	return next
}

// WithSort sets the sort order (empty clears it) and resets to page 1.
func (s State) WithSort(id string) State {
	next := s.clone()
	next.Sort = id
	next.Page = 1
	return next
}

// WithPage moves to page n, preserving everything else.
func (s State) WithPage(n int) State {
	next := s.clone()
	if n < 1 {
		n = 1
	}
	next.Page = n
	return next
}

// WithQuery starts a new search: filters and sort are kept, page resets to 1.
func (s State) WithQuery(q string) State {
	next := s.clone()
	next.Query = q
	next.Page = 1
	return next
}

// BackendParams builds the backend request: q, page, the extra parameters,
// sort when set, and one key=value per filter.
func (s State) BackendParams(extra url.Values) url.Values {
	params := url.Values{}
	for k, vs := range extra {
		for _, v := range vs {
			params.Add(k, v)
		}
	}
	params.Set("q", s.Query)
	page := s.Page
	if page < 1 {
		page = 1
	}
	params.Set(ParamPage, strconv.Itoa(page))
	if s.Sort != "" {
		params.Set(ParamSort, s.Sort)
	}
	for _, f := range s.Filters {
		params.Add(f.Key, f.Value)
	}
	return params
}

func (s State) withFilter(f Filter) State {
	if s.HasFilter(f) {
		return s
	}
	s.Filters = append(s.Filters, f)
	return s
}

func (s State) clone() State {
	next := s
	next.Filters = append([]Filter(nil), s.Filters...)
	return next
}
