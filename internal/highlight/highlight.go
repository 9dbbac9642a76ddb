// Package highlight marks the parts of a candidate's text that match a query.
//
// Highlighting never changes character content: concatenating the Text of the
// returned segments always yields the input text.
package highlight

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/custodia-labs/qsc-search/internal/core/domain"
)

// Segment is a contiguous run of text that either matched the query or not.
type Segment struct {
	Text    string
	Matched bool
}

// Apply splits text into segments according to policy.
// An empty or whitespace-only query yields a single unmatched segment.
func Apply(policy domain.HighlightPolicy, query, text string) []Segment {
	if policy == domain.HighlightPrefix {
		return PrefixOnly(query, text)
	}
	return MultiTerm(query, text)
}

// MultiTerm marks every non-overlapping, case-insensitive occurrence of any
// whitespace-separated query term. Terms are matched literally.
func MultiTerm(query, text string) []Segment {
	re := termPattern(query)
	if re == nil || text == "" {
		return plain(text)
	}

	matches := re.FindAllStringIndex(text, -1)
	if len(matches) == 0 {
		return plain(text)
	}

	segments := make([]Segment, 0, 2*len(matches)+1)
	last := 0
	for _, m := range matches {
		if m[0] > last {
			segments = append(segments, Segment{Text: text[last:m[0]]})
		}
		segments = append(segments, Segment{Text: text[m[0]:m[1]], Matched: true})
		last = m[1]
	}
	if last < len(text) {
		segments = append(segments, Segment{Text: text[last:]})
	}
	return segments
}

// termPattern builds a case-insensitive alternation of the query terms.
// Longer terms come first so "oauth oa" marks "oauth" whole.
func termPattern(query string) *regexp.Regexp {
	terms := strings.Fields(query)
	if len(terms) == 0 {
		return nil
	}
	sortByLengthDesc(terms)

	quoted := make([]string, len(terms))
	for i, term := range terms {
		quoted[i] = regexp.QuoteMeta(term)
	}
	return regexp.MustCompile("(?i)(?:" + strings.Join(quoted, "|") + ")")
}

func sortByLengthDesc(terms []string) {
	for i := 1; i < len(terms); i++ {
		for j := i; j > 0 && len(terms[j]) > len(terms[j-1]); j-- {
			terms[j], terms[j-1] = terms[j-1], terms[j]
		}
	}
}

// PrefixOnly emphasises the completion: when text case-insensitively starts
// with the whole query, the typed prefix is unmatched and the remainder is
// matched. Otherwise text is returned unmatched.
func PrefixOnly(query, text string) []Segment {
	query = strings.TrimSpace(query)
	if query == "" {
		return plain(text)
	}

	n := prefixLen(text, query)
	if n < 0 {
		return plain(text)
	}

	segments := []Segment{{Text: text[:n]}}
	if n < len(text) {
		segments = append(segments, Segment{Text: text[n:], Matched: true})
	}
	return segments
}

// prefixLen returns the byte length of the prefix of text that case-insensitively
// equals query, or -1. Case folding may change byte widths, so the comparison
// walks runes rather than slicing text at len(query).
func prefixLen(text, query string) int {
	ti := 0
	for _, qr := range query {
		if ti >= len(text) {
			return -1
		}
		tr, size := utf8.DecodeRuneInString(text[ti:])
		if !equalFold(tr, qr) {
			return -1
		}
		ti += size
	}
	return ti
}

func equalFold(a, b rune) bool {
	return strings.EqualFold(string(a), string(b))
}

func plain(text string) []Segment {
	return []Segment{{Text: text}}
}

// Render concatenates segments, passing matched text through wrap.
func Render(segments []Segment, wrap func(string) string) string {
	var b strings.Builder
	for _, s := range segments {
		if s.Matched {
			b.WriteString(wrap(s.Text))
		} else {
			b.WriteString(s.Text)
		}
	}
	return b.String()
}

// Text concatenates the raw segment texts.
func Text(segments []Segment) string {
	return Render(segments, func(s string) string { return s })
}
