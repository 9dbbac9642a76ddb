package faceted

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/custodia-labs/qsc-search/internal/core/domain"
)

// FacetValueView is one renderable facet value.
type FacetValueView struct {
	Value    string
	Count    int
	Filter   Filter
	Selected bool
	// Toggle is the state after clicking this value's checkbox.
	Toggle State
}

// FacetView is one renderable facet.
type FacetView struct {
	ID       string
	Name     string
	Values   []FacetValueView
	Expanded bool
	// HasMore reports that some unselected values are beyond the limit.
	HasMore bool
	// Hidden is the number of values not shown while collapsed.
	Hidden int
	// ToggleLabel is "Show N more" or "Show less"; empty without a control.
	ToggleLabel string
}

// FilterFromFacetValue derives the filter pair for a facet value. The backend's
// filter string ("f.lang=en") wins; otherwise the facet's filterName (or ID)
// and the value are used. The "f." prefix is always stripped from the key.
func FilterFromFacetValue(facet domain.Facet, value domain.FacetValue) Filter {
	if value.Filter != "" {
		rawKey, rawValue, ok := strings.Cut(value.Filter, "=")
		if ok {
			key, kerr := url.QueryUnescape(rawKey)
			val, verr := url.QueryUnescape(rawValue)
			if kerr == nil && verr == nil && key != "" {
				return Filter{Key: strings.TrimPrefix(key, FilterPrefix), Value: val}
			}
		}
	}
	key := facet.FilterName
	if key == "" {
		key = facet.ID
	}
	return Filter{Key: strings.TrimPrefix(key, FilterPrefix), Value: value.Value}
}

// Facets builds the facet views. Selected values come first, then up to
// limit-minus-selected unselected values unless the facet is expanded.
// Selected values are always shown, including ones the backend did not
// return in this result set.
func Facets(result *domain.ResultPage, state State, expanded map[string]bool, limit int) []FacetView {
	if result == nil {
		return nil
	}
	if limit < 0 {
		limit = 0
	}

	views := make([]FacetView, 0, len(result.Facets))
	for _, facet := range result.Facets {
		var selected, unselected []FacetValueView
		seen := make(map[Filter]bool)
		facetKey := ""

		for _, v := range facet.Values {
			f := FilterFromFacetValue(facet, v)
			facetKey = f.Key
			seen[f] = true
			view := FacetValueView{
				Value:    v.Value,
				Count:    v.Count,
				Filter:   f,
				Selected: state.HasFilter(f),
				Toggle:   state.ToggleFilter(f),
			}
			if view.Selected {
				selected = append(selected, view)
			} else {
				unselected = append(unselected, view)
			}
		}

		if facetKey == "" {
			facetKey = FilterFromFacetValue(facet, domain.FacetValue{}).Key
		}
		for _, f := range state.Filters {
			if f.Key == facetKey && !seen[f] {
				selected = append(selected, FacetValueView{
					Value:    f.Value,
					Filter:   f,
					Selected: true,
					Toggle:   state.ToggleFilter(f),
				})
			}
		}

		view := FacetView{
			ID:       facet.ID,
			Name:     facet.Name,
			Expanded: expanded[facet.ID],
		}
		if view.Name == "" {
			view.Name = facet.ID
		}

		room := limit - len(selected)
		if room < 0 {
			room = 0
		}
		view.Values = append(view.Values, selected...)
		if view.Expanded || len(unselected) <= room {
			view.Values = append(view.Values, unselected...)
		} else {
			view.Values = append(view.Values, unselected[:room]...)
			view.Hidden = len(unselected) - room
		}
		view.HasMore = len(unselected) > room

		switch {
		case view.HasMore && view.Expanded:
			view.ToggleLabel = "Show less"
		case view.HasMore:
			view.ToggleLabel = "Show " + strconv.Itoa(view.Hidden) + " more"
		}

		views = append(views, view)
	}
	return views
}

// SortView is one renderable sort option.
type SortView struct {
	ID       string
	Name     string
	Selected bool
	// Next is the state after choosing this option.
	Next State
}

// Sorts builds the sort views. The backend's options are used when present,
// the defaults otherwise. The URL's sort wins over the backend's selected flag.
func Sorts(result *domain.ResultPage, state State) []SortView {
	var options []domain.SortOption
	if result != nil {
		options = result.SortOptions
	}
	if len(options) == 0 {
		options = domain.DefaultSortOptions()
	}

	views := make([]SortView, 0, len(options))
	for _, opt := range options {
		selected := opt.Selected
		if state.Sort != "" {
			selected = opt.ID == state.Sort
		}
		views = append(views, SortView{
			ID:       opt.ID,
			Name:     opt.Name,
			Selected: selected,
			Next:     state.WithSort(opt.ID),
		})
	}
	return views
}
