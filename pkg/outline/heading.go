package outline

import (
	"strings"
)

// ContentsMarker is the first line of every outline.
const ContentsMarker = "## Contents"

const editMarker = "[edit]"

// skipSet holds heading labels that belong to the site chrome, not the article.
// Matching is exact and case-sensitive.
var skipSet = map[string]struct{}{
	"Contents":        {},
	"Navigation menu": {},
	"Personal tools":  {},
	"Namespaces":      {},
	"Views":           {},
	"Search":          {},
	"Tools":           {},
	"Languages":       {},
}

// Heading is one outline entry.
type Heading struct {
	Level int    `json:"level"` // 1..6
	Text  string `json:"text"`
}

// Markdown renders the heading as an ATX line, e.g. "## History".
func (h Heading) Markdown() string {
	return strings.Repeat("#", h.Level) + " " + h.Text
}

// Document is an extracted outline: an optional title followed by the
// content headings in document order.
type Document struct {
	Title    *Heading
	Headings []Heading
}

// Markdown renders the document. Every heading line, including the
// contents marker, is followed by a blank line.
func (d Document) Markdown() string {
	lines := make([]string, 0, 2*(len(d.Headings)+2))
	lines = append(lines, ContentsMarker, "")
	if d.Title != nil {
		lines = append(lines, d.Title.Markdown(), "")
	}
	for _, h := range d.Headings {
		lines = append(lines, h.Markdown(), "")
	}
	return strings.Join(lines, "\n")
}

// All returns the title (if any) followed by the content headings.
func (d Document) All() []Heading {
	all := make([]Heading, 0, len(d.Headings)+1)
	if d.Title != nil {
		all = append(all, *d.Title)
	}
	return append(all, d.Headings...)
}

// CleanText trims s and removes every "[edit]" marker.
func CleanText(s string) string {
	s = strings.TrimSpace(s)
	return strings.TrimSpace(strings.ReplaceAll(s, editMarker, ""))
}

// Skipped reports whether a cleaned heading text is excluded from outlines.
func Skipped(text string) bool {
	if text == "" {
		return true
	}
	_, ok := skipSet[text]
	return ok
}

// levelFromTag returns 1..6 for h1..h6 and 0 for any other tag name.
func levelFromTag(tag string) int {
	if len(tag) != 2 || (tag[0] != 'h' && tag[0] != 'H') {
		return 0
	}
	if tag[1] < '1' || tag[1] > '6' {
		return 0
	}
	return int(tag[1] - '0')
}
