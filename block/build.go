package block

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/pkg/errors"

	"github.com/hhhapz/mdsite/htmlnode"
	"github.com/hhhapz/mdsite/inline"
)

// ToHTML classifies block and builds its subtree.
func ToHTML(block string) (htmlnode.Node, error) {
	t := Classify(block)

	var (
		node htmlnode.Node
		err  error
	)
	switch t {
	case Paragraph:
		node, err = wrap("p", paragraphText(block))
	case Heading:
		level := HeadingLevel(block)
		node, err = wrap("h"+strconv.Itoa(level), block[level+1:])
	case Code:
		node = codeNode(block)
	case Quote:
		node, err = wrap("blockquote", quoteText(block))
	case UnorderedList:
		node, err = list("ul", unorderedItems(block))
	case OrderedList:
		node, err = list("ol", orderedItems(block))
	default:
		return htmlnode.Node{}, &htmlnode.StructuralError{Reason: "unknown block " + t.String()}
	}
	if err != nil {
		return htmlnode.Node{}, errors.Wrapf(err, "%s block", t)
	}
	return node, nil
}

// Inline returns the pieces of text in block that go through inline
// resolution: one per list item, none for code.
func Inline(block string) []string {
	switch t := Classify(block); t {
	case Paragraph:
		return []string{paragraphText(block)}
	case Heading:
		return []string{block[HeadingLevel(block)+1:]}
	case Quote:
		return []string{quoteText(block)}
	case UnorderedList:
		return unorderedItems(block)
	case OrderedList:
		return orderedItems(block)
	}
	return nil
}

func wrap(tag, text string) (htmlnode.Node, error) {
	children, err := inline.Nodes(text)
	if err != nil {
		return htmlnode.Node{}, err
	}
	return htmlnode.Parent(tag, children), nil
}

func list(tag string, items []string) (htmlnode.Node, error) {
	children := make([]htmlnode.Node, 0, len(items))
	for i, item := range items {
		li, err := wrap("li", item)
		if err != nil {
			return htmlnode.Node{}, errors.Wrapf(err, "item %d", i+1)
		}
		children = append(children, li)
	}
	return htmlnode.Parent(tag, children), nil
}

func paragraphText(block string) string {
	return strings.Join(strings.Split(block, "\n"), " ")
}

// codeNode drops the fence lines and keeps the rest verbatim.
func codeNode(block string) htmlnode.Node {
	var text string
	if lines := strings.Split(block, "\n"); len(lines) > 2 {
		text = strings.Join(lines[1:len(lines)-1], "\n")
	}
	if text != "" {
		text += "\n"
	}
	code := htmlnode.Parent("code", []htmlnode.Node{htmlnode.Text(text)})
	return htmlnode.Parent("pre", []htmlnode.Node{code})
}

func quoteText(block string) string {
	lines := strings.Split(block, "\n")
	for i, l := range lines {
		if strings.HasPrefix(l, ">") {
			lines[i] = strings.TrimLeftFunc(l[1:], unicode.IsSpace)
		}
	}
	return strings.Join(lines, " ")
}

func unorderedItems(block string) []string {
	lines := strings.Split(block, "\n")
	for i, l := range lines {
		lines[i] = l[len("- "):]
	}
	return lines
}

func orderedItems(block string) []string {
	lines := strings.Split(block, "\n")
	for i, l := range lines {
		lines[i] = l[len(orderedPrefix(i)):]
	}
	return lines
}
