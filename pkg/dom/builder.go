package dom

import (
	"fmt"

	"golang.org/x/net/html"
)

// AttributesBuilder remembers attributes to set on an element.
// Attributes keep the order in which they were first set.
type AttributesBuilder struct {
	keys   []string
	values map[string]string
}

// NewAttributesBuilder returns an empty AttributesBuilder.
func NewAttributesBuilder() *AttributesBuilder {
	return &AttributesBuilder{values: make(map[string]string)}
}

// Set remembers an attribute. Non-string values are formatted with fmt.
func (b *AttributesBuilder) Set(key string, value any) *AttributesBuilder {
	if _, ok := b.values[key]; !ok {
		b.keys = append(b.keys, key)
	}
	switch v := value.(type) {
	case string:
		b.values[key] = v
	default:
		b.values[key] = fmt.Sprint(v)
	}
	return b
}

// Delete forgets an attribute.
func (b *AttributesBuilder) Delete(key string) *AttributesBuilder {
	if _, ok := b.values[key]; !ok {
		return b
	}
	delete(b.values, key)
	for i, k := range b.keys {
		if k == key {
			b.keys = append(b.keys[:i], b.keys[i+1:]...)
			break
		}
	}
	return b
}

// Build sets every remembered attribute on n and returns n.
func (b *AttributesBuilder) Build(n *html.Node) *html.Node {
	for _, k := range b.keys {
		SetAttr(n, k, b.values[k])
	}
	return n
}

// ElementBuilder describes one element: its tag, attributes, text and
// child elements.
type ElementBuilder struct {
	tag        string
	attributes *AttributesBuilder
	text       string
	children   []*ElementBuilder
}

// NewElementBuilder returns a builder for tag. An empty tag builds a <div>.
func NewElementBuilder(tag string) *ElementBuilder {
	if tag == "" {
		tag = "div"
	}
	return &ElementBuilder{tag: tag, attributes: NewAttributesBuilder()}
}

// Attributes returns the attributes builder of the element.
func (b *ElementBuilder) Attributes() *AttributesBuilder {
	return b.attributes
}

// Attr is shorthand for b.Attributes().Set(key, value); it returns b.
func (b *ElementBuilder) Attr(key string, value any) *ElementBuilder {
	b.attributes.Set(key, value)
	return b
}

// Text sets the text content placed before any child element.
func (b *ElementBuilder) Text(text string) *ElementBuilder {
	b.text = text
	return b
}

// Element adds a child element and returns its builder.
func (b *ElementBuilder) Element(tag string) *ElementBuilder {
	child := NewElementBuilder(tag)
	b.children = append(b.children, child)
	return child
}

// Build creates the element tree.
func (b *ElementBuilder) Build() *html.Node {
	n := b.attributes.Build(CreateElement(b.tag, nil))
	if b.text != "" {
		n.AppendChild(CreateText(b.text))
	}
	for _, child := range b.children {
		n.AppendChild(child.Build())
	}
	return n
}

// Builder describes a sequence of sibling element trees.
type Builder struct {
	builders []*ElementBuilder
}

// Element adds a top-level element and returns its builder.
func (b *Builder) Element(tag string) *ElementBuilder {
	eb := NewElementBuilder(tag)
	b.builders = append(b.builders, eb)
	return eb
}

// Build creates every top-level element in declaration order.
func (b *Builder) Build() []*html.Node {
	out := make([]*html.Node, 0, len(b.builders))
	for _, eb := range b.builders {
		out = append(out, eb.Build())
	}
	return out
}
