// Package dom provides the visual-tree helpers sparkle units are built on.
//
// The visual tree is the golang.org/x/net/html node tree. Helpers here give it
// browser-like move semantics: appending a node that already has a parent
// moves it instead of panicking, and detaching is idempotent.
package dom

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// CreateElement returns a new detached element with the given attributes.
// Tag names are case-insensitive. Attributes are applied in key order so the
// rendered markup is deterministic.
func CreateElement(tag string, attrs map[string]string) *html.Node {
	tag = strings.ToLower(strings.TrimSpace(tag))
	if tag == "" {
		tag = "div"
	}
	n := &html.Node{
		Type:     html.ElementNode,
		Data:     tag,
		DataAtom: atom.Lookup([]byte(tag)),
	}
	for _, key := range slices.Sorted(maps.Keys(attrs)) {
		SetAttr(n, key, attrs[key])
	}
	return n
}

// CreateText returns a detached text node.
func CreateText(text string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: text}
}

// Attr returns the value of the attribute key on n.
func Attr(n *html.Node, key string) (string, bool) {
	if n == nil {
		return "", false
	}
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets the attribute key on n, replacing an existing value.
func SetAttr(n *html.Node, key, val string) {
	key = strings.ToLower(key)
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// RemoveAttr deletes the attribute key from n.
func RemoveAttr(n *html.Node, key string) {
	n.Attr = slices.DeleteFunc(n.Attr, func(a html.Attribute) bool {
		return a.Namespace == "" && a.Key == key
	})
}

// HasAttr reports whether n carries the attribute key.
func HasAttr(n *html.Node, key string) bool {
	_, ok := Attr(n, key)
	return ok
}

// Append attaches child as the last child of parent. A child that is
// attached elsewhere is moved.
func Append(parent, child *html.Node) error {
	if parent == nil || child == nil {
		return fmt.Errorf("dom: append with nil node")
	}
	for p := parent; p != nil; p = p.Parent {
		if p == child {
			return fmt.Errorf("dom: cannot append <%s> inside itself", child.Data)
		}
	}
	Detach(child)
	parent.AppendChild(child)
	return nil
}

// Detach removes n from its parent. It reports whether n had a parent.
func Detach(n *html.Node) bool {
	if n == nil || n.Parent == nil {
		return false
	}
	n.Parent.RemoveChild(n)
	return true
}

// DetachFrom removes n from parent only if parent is its current parent.
// It reports whether the node was detached.
func DetachFrom(parent, n *html.Node) bool {
	if n == nil || parent == nil || n.Parent != parent {
		return false
	}
	parent.RemoveChild(n)
	return true
}

// Elements returns the element children of n in document order.
func Elements(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := range n.ChildNodes() {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

// TextContent returns the concatenated text of n and its descendants.
func TextContent(n *html.Node) string {
	if n.Type == html.TextNode {
		return n.Data
	}
	var sb strings.Builder
	for d := range n.Descendants() {
		if d.Type == html.TextNode {
			sb.WriteString(d.Data)
		}
	}
	return sb.String()
}

// SetTextContent replaces the children of n with a single text node.
func SetTextContent(n *html.Node, text string) {
	for c := n.FirstChild; c != nil; c = n.FirstChild {
		n.RemoveChild(c)
	}
	if text != "" {
		n.AppendChild(CreateText(text))
	}
}

// Render serializes n and its descendants.
func Render(n *html.Node) string {
	var sb strings.Builder
	if err := html.Render(&sb, n); err != nil {
		return ""
	}
	return sb.String()
}

// RenderChildren serializes the children of n, like innerHTML.
func RenderChildren(n *html.Node) string {
	var sb strings.Builder
	for c := range n.ChildNodes() {
		if err := html.Render(&sb, c); err != nil {
			return sb.String()
		}
	}
	return sb.String()
}
