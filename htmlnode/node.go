// Package htmlnode holds the tree of HTML elements produced by the markdown
// converter and serializes it to a string.
package htmlnode

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
)

type Kind uint8

const (
	KindLeaf Kind = iota
	KindParent
)

func (k Kind) String() string {
	switch k {
	case KindLeaf:
		return "leaf"
	case KindParent:
		return "parent"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

type Attr struct {
	Key   string
	Value string
}

// Attrs render in the order they were added.
type Attrs []Attr

func (a Attrs) String() string {
	var b strings.Builder
	a.write(&b)
	return b.String()
}

func (a Attrs) write(b *strings.Builder) {
	for _, attr := range a {
		b.WriteByte(' ')
		b.WriteString(attr.Key)
		b.WriteString(`="`)
		b.WriteString(attr.Value)
		b.WriteByte('"')
	}
}

// Node is either a leaf carrying text or a parent owning an ordered list of
// children. An empty Tag on a leaf means the value is emitted without a
// surrounding element. The zero Node is a leaf without a value and does not
// serialize.
type Node struct {
	Kind Kind
	Tag  string
	// Value is only emitted for leaves built with Text or Leaf. A literal
	// Node{Kind: KindLeaf, Value: "x"} has no value and does not serialize.
	Value    string
	Children []Node
	Attrs    Attrs

	hasValue bool
}

// Text returns an untagged leaf.
func Text(value string) Node {
	return Node{Kind: KindLeaf, Value: value, hasValue: true}
}

func Leaf(tag, value string, attrs ...Attr) Node {
	n := Text(value)
	n.Tag = tag
	if len(attrs) > 0 {
		n.Attrs = attrs
	}
	return n
}

// Parent returns a node owning children. A nil children slice is not the same
// as an empty one: the former fails to serialize.
func Parent(tag string, children []Node, attrs ...Attr) Node {
	n := Node{Kind: KindParent, Tag: tag, Children: children}
	if len(attrs) > 0 {
		n.Attrs = attrs
	}
	return n
}

// HasValue reports whether a leaf was given a value, even an empty one.
func (n Node) HasValue() bool {
	return n.hasValue
}

func (n Node) HTML() (string, error) {
	var b strings.Builder
	if err := n.write(&b); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (n Node) write(b *strings.Builder) error {
	switch n.Kind {
	case KindLeaf:
		if !n.hasValue {
			return &StructuralError{Reason: "leaf node has no value"}
		}
		if n.Tag == "" {
			b.WriteString(n.Value)
			return nil
		}
		openTag(b, n.Tag, n.Attrs)
		b.WriteString(n.Value)
		closeTag(b, n.Tag)
		return nil

	case KindParent:
		if n.Tag == "" {
			return &StructuralError{Reason: "parent node has no tag"}
		}
		if n.Children == nil {
			return &StructuralError{Reason: fmt.Sprintf("parent node <%s> has no children", n.Tag)}
		}
		openTag(b, n.Tag, n.Attrs)
		for i, c := range n.Children {
			if err := c.write(b); err != nil {
				return errors.Wrapf(err, "<%s> child %d", n.Tag, i)
			}
		}
		closeTag(b, n.Tag)
		return nil
	}
	return &StructuralError{Reason: "unknown node " + n.Kind.String()}
}

func openTag(b *strings.Builder, tag string, attrs Attrs) {
	b.WriteByte('<')
	b.WriteString(tag)
	attrs.write(b)
	b.WriteByte('>')
}

func closeTag(b *strings.Builder, tag string) {
	b.WriteString("</")
	b.WriteString(tag)
	b.WriteByte('>')
}

func (n Node) String() string {
	switch n.Kind {
	case KindLeaf:
		return fmt.Sprintf("Leaf(%q, %q, [%s])", n.Tag, n.Value, strings.TrimSpace(n.Attrs.String()))
	case KindParent:
		parts := make([]string, len(n.Children))
		for i, c := range n.Children {
			parts[i] = c.String()
		}
		return fmt.Sprintf("Parent(%q, [%s], [%s])", n.Tag, strings.Join(parts, ", "), strings.TrimSpace(n.Attrs.String()))
	}
	return n.Kind.String()
}

// StructuralError reports a node that cannot be serialized. It points to a
// bug in whatever built the tree.
type StructuralError struct {
	Reason string
}

func (e *StructuralError) Error() string {
	return "invalid html node: " + e.Reason
}
