// Package form converts between form-like visual nodes and key-value maps.
//
// ToObject reads the named fields under a node the way a browser collects
// form data; Fill writes a map back into those fields. Both are pure
// functions of the tree.
package form

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/go-drift/sparkle/pkg/dom"
)

// field is a named form control.
type field struct {
	node *html.Node
	name string
	kind string
}

// kinds other than input types
const (
	kindTextarea = "textarea"
	kindSelect   = "select"
)

func fields(root *html.Node) []field {
	var out []field
	if root == nil {
		return out
	}
	for n := range root.Descendants() {
		if n.Type != html.ElementNode {
			continue
		}
		name, ok := dom.Attr(n, "name")
		if !ok || name == "" {
			continue
		}
		switch n.DataAtom {
		case atom.Input:
			kind, _ := dom.Attr(n, "type")
			kind = strings.ToLower(strings.TrimSpace(kind))
			if kind == "" {
				kind = "text"
			}
			out = append(out, field{node: n, name: name, kind: kind})
		case atom.Textarea:
			out = append(out, field{node: n, name: name, kind: kindTextarea})
		case atom.Select:
			out = append(out, field{node: n, name: name, kind: kindSelect})
		}
	}
	return out
}

// ignored input types never contribute data.
func ignored(kind string) bool {
	switch kind {
	case "submit", "button", "reset", "image", "file":
		return true
	}
	return false
}

// ToObject collects the values of the named, enabled fields under root.
//
// A lone checkbox yields a bool. Checkboxes sharing a name yield a []any of
// the checked values. A radio group yields the checked value and is absent
// when nothing is checked. A multiple select yields a []any. For other
// fields the last one with a given name wins.
func ToObject(root *html.Node) map[string]any {
	all := fields(root)
	checkboxes := make(map[string]int)
	for _, f := range all {
		if f.kind == "checkbox" {
			checkboxes[f.name]++
		}
	}

	data := make(map[string]any)
	for _, f := range all {
		if ignored(f.kind) || dom.HasAttr(f.node, "disabled") {
			continue
		}
		switch f.kind {
		case "checkbox":
			checked := dom.HasAttr(f.node, "checked")
			if checkboxes[f.name] == 1 {
				data[f.name] = checked
				continue
			}
			values, _ := data[f.name].([]any)
			if values == nil {
				values = []any{}
			}
			if checked {
				values = append(values, checkboxValue(f.node))
			}
			data[f.name] = values
		case "radio":
			if dom.HasAttr(f.node, "checked") {
				data[f.name] = checkboxValue(f.node)
			}
		case kindTextarea:
			data[f.name] = dom.TextContent(f.node)
		case kindSelect:
			data[f.name] = selectValue(f.node)
		default:
			value, _ := dom.Attr(f.node, "value")
			data[f.name] = value
		}
	}
	return data
}

func checkboxValue(n *html.Node) string {
	if v, ok := dom.Attr(n, "value"); ok {
		return v
	}
	return "on"
}

func options(sel *html.Node) []*html.Node {
	var out []*html.Node
	for n := range sel.Descendants() {
		if n.Type == html.ElementNode && n.DataAtom == atom.Option {
			out = append(out, n)
		}
	}
	return out
}

func optionValue(n *html.Node) string {
	if v, ok := dom.Attr(n, "value"); ok {
		return v
	}
	return strings.TrimSpace(dom.TextContent(n))
}

func selectValue(sel *html.Node) any {
	opts := options(sel)
	if dom.HasAttr(sel, "multiple") {
		values := []any{}
		for _, o := range opts {
			if dom.HasAttr(o, "selected") {
				values = append(values, optionValue(o))
			}
		}
		return values
	}
	for _, o := range opts {
		if dom.HasAttr(o, "selected") {
			return optionValue(o)
		}
	}
	if len(opts) > 0 {
		return optionValue(opts[0])
	}
	return ""
}

// Fill writes data into the named fields under root. Keys without a field
// are ignored, and fields without a key are left unchanged.
//
// Checkboxes follow the value's type: a bool sets the checked state, a
// slice checks the box when it contains the box's value, and any other
// value checks it on equality. A nil value clears text fields.
func Fill(root *html.Node, data map[string]any) {
	for _, f := range fields(root) {
		v, ok := data[f.name]
		if !ok {
			continue
		}
		switch f.kind {
		case "checkbox":
			setFlag(f.node, "checked", checkboxState(checkboxValue(f.node), v))
		case "radio":
			setFlag(f.node, "checked", v != nil && checkboxValue(f.node) == scalar(v))
		case kindTextarea:
			dom.SetTextContent(f.node, scalar(v))
		case kindSelect:
			fillSelect(f.node, v)
		default:
			if ignored(f.kind) {
				continue
			}
			dom.SetAttr(f.node, "value", scalar(v))
		}
	}
}

func checkboxState(value string, v any) bool {
	switch x := v.(type) {
	case bool:
		return x
	case nil:
		return false
	}
	if values, ok := textList(v); ok {
		return slices.Contains(values, value)
	}
	return value == scalar(v)
}

func fillSelect(sel *html.Node, v any) {
	values, isList := textList(v)
	if !isList {
		values = []string{scalar(v)}
	}
	multiple := dom.HasAttr(sel, "multiple")
	matched := false
	for _, o := range options(sel) {
		on := slices.Contains(values, optionValue(o)) && (multiple || !matched)
		matched = matched || on
		setFlag(o, "selected", on)
	}
}

// scalar renders a value the way it appears in a text field.
func scalar(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}

// textList converts list values to their text form.
func textList(v any) ([]string, bool) {
	switch x := v.(type) {
	case []string:
		return x, true
	case []any:
		out := make([]string, len(x))
		for i, item := range x {
			out[i] = scalar(item)
		}
		return out, true
	}
	return nil, false
}

func setFlag(n *html.Node, key string, on bool) {
	if on {
		dom.SetAttr(n, key, "")
		return
	}
	dom.RemoveAttr(n, key)
}
