package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// ParseFragment parses markup as the inner content of context and returns
// the detached top-level nodes.
//
// context decides the parsing mode (rows inside a <table> parse differently
// from rows inside a <div>). Non-element contexts, such as a document or a
// nil node, parse as <body> content.
func ParseFragment(markup string, context *html.Node) ([]*html.Node, error) {
	ctx := fragmentContext(context)
	nodes, err := html.ParseFragment(strings.NewReader(markup), ctx)
	if err != nil {
		return nil, fmt.Errorf("dom: parse fragment: %w", err)
	}
	return nodes, nil
}

// SpliceFragment parses markup and moves every top-level node into target.
// It returns the number of nodes moved.
func SpliceFragment(markup string, target *html.Node) (int, error) {
	if target == nil {
		return 0, fmt.Errorf("dom: splice into nil node")
	}
	nodes, err := ParseFragment(markup, target)
	if err != nil {
		return 0, err
	}
	for _, n := range nodes {
		target.AppendChild(n)
	}
	return len(nodes), nil
}

func fragmentContext(n *html.Node) *html.Node {
	if n != nil && n.Type == html.ElementNode && n.DataAtom == atom.Lookup([]byte(n.Data)) {
		return n
	}
	return &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
}
