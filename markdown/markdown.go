// Package markdown converts a whole markdown document to an html tree and
// extracts its title.
package markdown

import (
	"strings"

	"github.com/pkg/errors"

	"github.com/hhhapz/mdsite/block"
	"github.com/hhhapz/mdsite/htmlnode"
)

// Convert builds a div holding one subtree per block, in document order. A
// blank document yields a div with no children.
func Convert(doc string) (htmlnode.Node, error) {
	blocks := block.Split(doc)

	children := make([]htmlnode.Node, 0, len(blocks))
	for i, b := range blocks {
		node, err := block.ToHTML(b)
		if err != nil {
			return htmlnode.Node{}, errors.Wrapf(err, "block %d", i+1)
		}
		children = append(children, node)
	}
	return htmlnode.Parent("div", children), nil
}

// Render is Convert followed by serialization.
func Render(doc string) (string, error) {
	node, err := Convert(doc)
	if err != nil {
		return "", err
	}
	return node.HTML()
}

// ExtractTitle returns the trimmed text of the first line starting with "# ".
func ExtractTitle(doc string) (string, error) {
	for _, line := range strings.Split(doc, "\n") {
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(line[2:]), nil
		}
	}
	return "", &NotFoundError{}
}

// ErrNoTitle matches any *NotFoundError under errors.Is.
var ErrNoTitle = errors.New("no title")

// NotFoundError is returned by ExtractTitle when the document has no h1 line.
type NotFoundError struct{}

func (*NotFoundError) Error() string {
	return "no h1 heading found in markdown"
}

func (*NotFoundError) Is(target error) bool {
	return target == ErrNoTitle
}
