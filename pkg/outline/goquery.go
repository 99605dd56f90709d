package outline

import (
	"fmt"
	"io"

	"github.com/PuerkitoBio/goquery"

	"github.com/Sriram-PR/country-outline/pkg/utils"
)

const (
	headingSelector = "h1, h2, h3, h4, h5, h6"
	hiddenSelector  = "script, style, template"
)

// GoqueryTree is a Tree backed by a goquery document.
type GoqueryTree struct {
	doc *goquery.Document
}

// NewGoqueryTree parses markup into a GoqueryTree.
func NewGoqueryTree(r io.Reader) (*GoqueryTree, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("%w: HTML: %v", utils.ErrParsing, err)
	}
	return &GoqueryTree{doc: doc}, nil
}

func (t *GoqueryTree) Content() (Scope, bool) {
	sel := t.doc.Find("div#" + contentID).First()
	if sel.Length() == 0 {
		return nil, false
	}
	return goqueryScope{sel: sel}, true
}

func (t *GoqueryTree) Title() (Node, bool) {
	sel := t.doc.Find("h1#" + titleID).First()
	if sel.Length() == 0 {
		return nil, false
	}
	return goqueryNode{sel: sel}, true
}

type goqueryScope struct {
	sel *goquery.Selection
}

// Headings relies on cascadia matching selector groups in a single
// pre-order walk, so mixed levels keep their document order.
func (s goqueryScope) Headings() []Node {
	found := s.sel.Find(headingSelector)
	nodes := make([]Node, 0, found.Length())
	found.Each(func(_ int, h *goquery.Selection) {
		nodes = append(nodes, goqueryNode{sel: h})
	})
	return nodes
}

type goqueryNode struct {
	sel *goquery.Selection
}

func (n goqueryNode) HeadingLevel() int {
	return levelFromTag(goquery.NodeName(n.sel))
}

func (n goqueryNode) Text() string {
	if n.sel.Find(hiddenSelector).Length() == 0 {
		return n.sel.Text()
	}
	// Clone so the shared document keeps its hidden nodes.
	clone := n.sel.Clone()
	clone.Find(hiddenSelector).Remove()
	return clone.Text()
}
