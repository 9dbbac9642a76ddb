// Package excerpt turns backend descriptions, which may carry HTML markup,
// into short plain-text excerpts for terminal and JSON output.
package excerpt

import (
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
)

// DefaultLength is the excerpt length in runes used by the CLI and TUI.
const DefaultLength = 160

// PlainText strips markup from s and collapses whitespace.
// Script and style content is dropped. Input without markup is returned
// with whitespace collapsed.
func PlainText(s string) string {
	if !strings.ContainsAny(s, "<&") {
		return collapse(s)
	}
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return collapse(s)
	}
	doc.Find("script, style, noscript").Remove()
	return collapse(doc.Text())
}

// Summarize returns at most maxRunes runes of the plain text of s, cut at a
// word boundary where possible and suffixed with an ellipsis when shortened.
func Summarize(s string, maxRunes int) string {
	text := PlainText(s)
	if maxRunes <= 0 || utf8.RuneCountInString(text) <= maxRunes {
		return text
	}

	runes := []rune(text)
	cut := string(runes[:maxRunes])
	if i := strings.LastIndex(cut, " "); i > len(cut)/2 {
		cut = cut[:i]
	}
	return strings.TrimRight(cut, " ,.;:") + "…"
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
