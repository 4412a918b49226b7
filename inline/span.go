// Package inline splits a run of markdown text into typed spans and maps
// those spans to html leaves.
package inline

import (
	"fmt"

	"github.com/hhhapz/mdsite/htmlnode"
)

type Kind uint8

const (
	Plain Kind = iota
	Bold
	Italic
	Code
	Link
	Image
)

func (k Kind) String() string {
	switch k {
	case Plain:
		return "plain"
	case Bold:
		return "bold"
	case Italic:
		return "italic"
	case Code:
		return "code"
	case Link:
		return "link"
	case Image:
		return "image"
	}
	return fmt.Sprintf("kind(%d)", uint8(k))
}

// Span is a piece of inline text. URL is only set for links and images.
type Span struct {
	Content string
	Kind    Kind
	URL     string
}

func (s Span) String() string {
	if s.URL != "" {
		return fmt.Sprintf("%s(%q, %s)", s.Kind, s.Content, s.URL)
	}
	return fmt.Sprintf("%s(%q)", s.Kind, s.Content)
}

// ToHTML maps a span to the leaf that renders it.
func ToHTML(s Span) (htmlnode.Node, error) {
	switch s.Kind {
	case Plain:
		return htmlnode.Text(s.Content), nil
	case Bold:
		return htmlnode.Leaf("b", s.Content), nil
	case Italic:
		return htmlnode.Leaf("i", s.Content), nil
	case Code:
		return htmlnode.Leaf("code", s.Content), nil
	case Link:
		return htmlnode.Leaf("a", s.Content, htmlnode.Attr{Key: "href", Value: s.URL}), nil
	case Image:
		return htmlnode.Leaf("img", "",
			htmlnode.Attr{Key: "src", Value: s.URL},
			htmlnode.Attr{Key: "alt", Value: s.Content},
		), nil
	}
	return htmlnode.Node{}, &htmlnode.StructuralError{Reason: "unknown span " + s.Kind.String()}
}

// Nodes resolves text and maps every span to a leaf. The result is never nil,
// so it can be used directly as the children of a parent node.
func Nodes(text string) ([]htmlnode.Node, error) {
	spans, err := Resolve(text)
	if err != nil {
		return nil, err
	}

	nodes := make([]htmlnode.Node, 0, len(spans))
	for _, s := range spans {
		n, err := ToHTML(s)
		if err != nil {
			return nil, err
		}
		nodes = append(nodes, n)
	}
	return nodes, nil
}
