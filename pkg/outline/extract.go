// Package outline turns the heading structure of a Wikipedia article into a
// Markdown outline.
//
// Extraction works on any document tree that can answer three questions:
// where the article body is, which headings it contains in document order,
// and what the page title is. Two trees are provided, one backed by goquery
// and one walking golang.org/x/net/html nodes directly.
package outline

import (
	"fmt"
	"io"
	"strings"

	"github.com/Sriram-PR/country-outline/pkg/utils"
)

const (
	contentID = "mw-content-text"
	titleID   = "firstHeading"
)

// Node is a heading element of a parsed document.
type Node interface {
	// HeadingLevel is 1..6 for h1..h6.
	HeadingLevel() int
	// Text is the visible text of the element and its descendants.
	Text() string
}

// Scope is the article body of a parsed document.
type Scope interface {
	// Headings returns every h1..h6 inside the scope in document order.
	Headings() []Node
}

// Tree is a parsed article page.
type Tree interface {
	// Content returns the article body (div#mw-content-text).
	Content() (Scope, bool)
	// Title returns the page title element (h1#firstHeading) anywhere in the page.
	Title() (Node, bool)
}

// Parse reads markup with the named parser ("goquery" or "html").
func Parse(r io.Reader, parser string) (Tree, error) {
	switch parser {
	case "", "goquery":
		return NewGoqueryTree(r)
	case "html":
		return NewHTMLTree(r)
	default:
		return nil, fmt.Errorf("%w: unknown HTML parser %q", utils.ErrParsing, parser)
	}
}

// Extract builds the outline document for a parsed page.
// It returns utils.ErrContentNotFound when the page has no article body.
func Extract(tree Tree) (Document, error) {
	content, ok := tree.Content()
	if !ok {
		return Document{}, utils.ErrContentNotFound
	}

	var doc Document
	if title, ok := tree.Title(); ok {
		doc.Title = &Heading{Level: 1, Text: strings.TrimSpace(title.Text())}
	}

	for _, node := range content.Headings() {
		level := node.HeadingLevel()
		if level < 1 || level > 6 {
			continue
		}
		text := CleanText(node.Text())
		if Skipped(text) {
			continue
		}
		doc.Headings = append(doc.Headings, Heading{Level: level, Text: text})
	}
	return doc, nil
}

// ExtractMarkdown parses markup and renders its outline in one step.
func ExtractMarkdown(r io.Reader, parser string) (string, error) {
	tree, err := Parse(r, parser)
	if err != nil {
		return "", err
	}
	doc, err := Extract(tree)
	if err != nil {
		return "", err
	}
	return doc.Markdown(), nil
}
