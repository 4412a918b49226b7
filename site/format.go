package site

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"golang.org/x/net/html"
)

var voidElements = map[string]bool{
	"area": true, "base": true, "br": true, "col": true, "embed": true,
	"hr": true, "img": true, "input": true, "link": true, "meta": true,
	"source": true, "track": true, "wbr": true,
}

// Elements whose contents are written exactly as parsed.
var preserved = map[string]bool{
	"pre": true, "textarea": true, "script": true, "style": true,
}

var (
	textEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;")
	attrEscaper = strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
)

// Prettify parses page and writes it back with every tag and text run on its
// own line, indented one space per level. Text is trimmed except inside
// preserved elements such as pre.
func Prettify(page string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(page))
	if err != nil {
		return "", errors.Wrap(err, "could not parse page")
	}

	var b strings.Builder
	for _, root := range doc.Nodes {
		for n := root.FirstChild; n != nil; n = n.NextSibling {
			if err := prettyNode(&b, n, 0); err != nil {
				return "", err
			}
		}
	}
	return b.String(), nil
}

func prettyNode(b *strings.Builder, n *html.Node, depth int) error {
	indent := strings.Repeat(" ", depth)

	switch n.Type {
	case html.DoctypeNode:
		b.WriteString("<!DOCTYPE " + n.Data + ">\n")

	case html.CommentNode:
		b.WriteString(indent + "<!--" + n.Data + "-->\n")

	case html.TextNode:
		if text := strings.TrimSpace(n.Data); text != "" {
			b.WriteString(indent + textEscaper.Replace(text) + "\n")
		}

	case html.ElementNode:
		b.WriteString(indent)
		if preserved[n.Data] {
			if err := html.Render(b, n); err != nil {
				return errors.Wrapf(err, "could not render <%s>", n.Data)
			}
			b.WriteByte('\n')
			return nil
		}

		startTag(b, n)
		if voidElements[n.Data] {
			return nil
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if err := prettyNode(b, c, depth+1); err != nil {
				return err
			}
		}
		b.WriteString(indent + "</" + n.Data + ">\n")
	}
	return nil
}

func startTag(b *strings.Builder, n *html.Node) {
	b.WriteByte('<')
	b.WriteString(n.Data)
	for _, a := range n.Attr {
		b.WriteByte(' ')
		if a.Namespace != "" {
			b.WriteString(a.Namespace + ":")
		}
		b.WriteString(a.Key + `="` + attrEscaper.Replace(a.Val) + `"`)
	}
	if voidElements[n.Data] {
		b.WriteString("/>\n")
		return
	}
	b.WriteString(">\n")
}
