package markdown

import (
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hhhapz/mdsite/htmlnode"
	"github.com/hhhapz/mdsite/inline"
)

func TestRender(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{
			name: "heading and paragraph",
			doc:  "# Title\n\nSome **bold** text",
			want: "<div><h1>Title</h1><p>Some <b>bold</b> text</p></div>",
		},
		{
			name: "code block",
			doc:  "```\nline one\nline two\n```",
			want: "<div><pre><code>line one\nline two\n</code></pre></div>",
		},
		{
			name: "unordered list",
			doc:  "- a\n- b",
			want: "<div><ul><li>a</li><li>b</li></ul></div>",
		},
		{
			name: "paragraphs",
			doc: `
This is **bolded** paragraph
text in a p
tag here

This is another paragraph with _italic_ text and ` + "`code`" + ` here
`,
			want: "<div><p>This is <b>bolded</b> paragraph text in a p tag here</p>" +
				"<p>This is another paragraph with <i>italic</i> text and <code>code</code> here</p></div>",
		},
		{
			name: "headings",
			doc:  "# One\n\n## Two\n\n### Three",
			want: "<div><h1>One</h1><h2>Two</h2><h3>Three</h3></div>",
		},
		{
			name: "ordered list",
			doc:  "1. **Bold** first\n2. _Italic_ second",
			want: "<div><ol><li><b>Bold</b> first</li><li><i>Italic</i> second</li></ol></div>",
		},
		{
			name: "quote",
			doc:  ">This is a quote\n>with multiple lines",
			want: "<div><blockquote>This is a quote with multiple lines</blockquote></div>",
		},
		{
			name: "mixed",
			doc: "# Title\n\nA paragraph.\n\n- one\n- two\n\n>A quote\n\n```\nsome code\n```\n",
			want: "<div><h1>Title</h1><p>A paragraph.</p><ul><li>one</li><li>two</li></ul>" +
				"<blockquote>A quote</blockquote><pre><code>some code\n</code></pre></div>",
		},
		{
			name: "links and images",
			doc:  "Read [the blog](https://go.dev/blog) and see ![gopher](https://go.dev/images/gopher.png)",
			want: `<div><p>Read <a href="https://go.dev/blog">the blog</a> and see ` +
				`<img src="https://go.dev/images/gopher.png" alt="gopher"></img></p></div>`,
		},
		{name: "empty", doc: "", want: "<div></div>"},
		{name: "blank", doc: "\n\n   \n\n", want: "<div></div>"},
		{name: "seven hashes", doc: "####### not a heading", want: "<div><p>####### not a heading</p></div>"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Render(c.doc)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestConvert_EmptyDocument(t *testing.T) {
	node, err := Convert("")
	require.NoError(t, err)
	assert.Equal(t, htmlnode.KindParent, node.Kind)
	assert.Equal(t, "div", node.Tag)
	assert.NotNil(t, node.Children)
	assert.Empty(t, node.Children)
}

func TestConvert_Deterministic(t *testing.T) {
	doc := "# Doc\n\n" +
		"A [link](https://a.example) and ![img](https://b.example/i.png)\n\n" +
		"1. one\n2. two\n\n" +
		"- x\n- y\n\n" +
		"> quoted _text_\n\n" +
		"```\nraw **text**\n```"

	first, err := Render(doc)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := Render(doc)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestConvert_DelimiterError(t *testing.T) {
	_, err := Convert("# Fine\n\na **b")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "block 2")

	var derr *inline.DelimiterError
	require.True(t, errors.As(err, &derr))
	assert.Equal(t, "**", derr.Delimiter)
	assert.IsType(t, &inline.DelimiterError{}, errors.Cause(err))
}

func TestConvert_Structure(t *testing.T) {
	doc := `# Gophers

Gophers are **small** burrowing rodents.

- They dig
- They eat [roots](https://en.wikipedia.org/wiki/Root)

1. Find a hole
2. Wait

> Quoted from the field guide`

	html, err := Render(doc)
	require.NoError(t, err)

	page, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	require.NoError(t, err)

	assert.Equal(t, "Gophers", page.Find("div > h1").Text())
	assert.Equal(t, "small", page.Find("div > p > b").Text())
	assert.Equal(t, 2, page.Find("ul > li").Length())
	assert.Equal(t, 2, page.Find("ol > li").Length())
	href, ok := page.Find("ul a").Attr("href")
	assert.True(t, ok)
	assert.Equal(t, "https://en.wikipedia.org/wiki/Root", href)
	assert.Equal(t, "Quoted from the field guide", page.Find("blockquote").Text())
}

func TestExtractTitle(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want string
	}{
		{name: "simple", doc: "# Hello", want: "Hello"},
		{name: "whitespace", doc: "#   Hello World   ", want: "Hello World"},
		{name: "with content", doc: "# My Title\n\nSome text.\n\n## Sub\n\nMore.", want: "My Title"},
		{name: "not first", doc: "Intro text\n\n# The Real Title\n\nMore.", want: "The Real Title"},
		{name: "after h2", doc: "## sub\n# Real", want: "Real"},
		{name: "first of many", doc: "# One\n# Two", want: "One"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := ExtractTitle(c.doc)
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestExtractTitle_NotFound(t *testing.T) {
	cases := []string{
		"no heading here",
		"",
		"## only h2",
		"## Not an h1\n\nSome content\n\n### Also not h1",
		"#missing space",
		" # indented",
	}

	for _, doc := range cases {
		t.Run(doc, func(t *testing.T) {
			_, err := ExtractTitle(doc)
			require.Error(t, err)

			var nerr *NotFoundError
			assert.True(t, errors.As(err, &nerr))
			assert.ErrorIs(t, err, ErrNoTitle)
		})
	}
}
