package svgnorm

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// parseFixture parses an SVG fragment and returns the svg root node.
func parseFixture(t *testing.T, fragment string) *html.Node {
	t.Helper()

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(fragment))
	if err != nil {
		t.Fatalf("parsing fixture: %v", err)
	}
	sel := doc.Find("svg").First()
	if sel.Length() == 0 {
		t.Fatalf("fixture has no svg root: %q", fragment)
	}
	return sel.Get(0)
}

// firstElement returns the first descendant with the given tag name.
func firstElement(t *testing.T, root *html.Node, tag string) *html.Node {
	t.Helper()

	nodes := findAll(root, func(n *html.Node) bool { return isElement(n, tag) })
	if len(nodes) == 0 {
		t.Fatalf("no <%s> element in fixture", tag)
	}
	return nodes[0]
}

// allElements returns every descendant with the given tag name.
func allElements(root *html.Node, tag string) []*html.Node {
	return findAll(root, func(n *html.Node) bool { return isElement(n, tag) })
}
