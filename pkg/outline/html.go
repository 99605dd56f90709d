package outline

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"

	"github.com/Sriram-PR/country-outline/pkg/utils"
)

// HTMLTree is a Tree that walks golang.org/x/net/html nodes directly.
type HTMLTree struct {
	root *html.Node
}

// NewHTMLTree parses markup into an HTMLTree.
func NewHTMLTree(r io.Reader) (*HTMLTree, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("%w: HTML: %v", utils.ErrParsing, err)
	}
	return &HTMLTree{root: root}, nil
}

func (t *HTMLTree) Content() (Scope, bool) {
	n := findElement(t.root, "div", contentID)
	if n == nil {
		return nil, false
	}
	return htmlScope{root: n}, true
}

func (t *HTMLTree) Title() (Node, bool) {
	n := findElement(t.root, "h1", titleID)
	if n == nil {
		return nil, false
	}
	return htmlNode{n: n}, true
}

type htmlScope struct {
	root *html.Node
}

func (s htmlScope) Headings() []Node {
	var nodes []Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && levelFromTag(c.Data) > 0 {
				nodes = append(nodes, htmlNode{n: c})
			}
			walk(c)
		}
	}
	walk(s.root)
	return nodes
}

type htmlNode struct {
	n *html.Node
}

func (h htmlNode) HeadingLevel() int { return levelFromTag(h.n.Data) }

func (h htmlNode) Text() string { return textContent(h.n) }

// findElement returns the first element in pre-order with the given tag and id.
func findElement(n *html.Node, tag, id string) *html.Node {
	if n.Type == html.ElementNode && n.Data == tag && attr(n, "id") == id {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := findElement(c, tag, id); found != nil {
			return found
		}
	}
	return nil
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

// textContent concatenates descendant text nodes, skipping script, style
// and template contents.
func textContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch n.Type {
		case html.TextNode:
			sb.WriteString(n.Data)
			return
		case html.ElementNode:
			if n.Data == "script" || n.Data == "style" || n.Data == "template" {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
