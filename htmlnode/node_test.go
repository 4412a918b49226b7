package htmlnode

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAttrs_String(t *testing.T) {
	cases := []struct {
		name  string
		attrs Attrs
		want  string
	}{
		{name: "nil", attrs: nil, want: ""},
		{name: "single", attrs: Attrs{{"href", "https://go.dev"}}, want: ` href="https://go.dev"`},
		{
			name:  "insertion order",
			attrs: Attrs{{"src", "a.png"}, {"alt", "pic"}, {"class", "wide"}},
			want:  ` src="a.png" alt="pic" class="wide"`,
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, c.attrs.String())
		})
	}
}

func TestNode_HTML(t *testing.T) {
	cases := []struct {
		name string
		node Node
		want string
	}{
		{name: "raw text", node: Text("Hello, world!"), want: "Hello, world!"},
		{name: "raw text is not escaped", node: Text("a < b & c"), want: "a < b & c"},
		{name: "empty raw text", node: Text(""), want: ""},
		{name: "tagged leaf", node: Leaf("p", "This is a paragraph"), want: "<p>This is a paragraph</p>"},
		{
			name: "leaf with attributes",
			node: Leaf("a", "Click me!", Attr{"href", "https://www.google.com"}),
			want: `<a href="https://www.google.com">Click me!</a>`,
		},
		{
			name: "empty valued leaf",
			node: Leaf("img", "", Attr{"src", "u"}, Attr{"alt", "x"}),
			want: `<img src="u" alt="x"></img>`,
		},
		{
			name: "parent",
			node: Parent("p", []Node{
				Leaf("b", "Bold text"),
				Text("Normal text"),
				Leaf("i", "italic text"),
				Text("Normal text"),
			}),
			want: "<p><b>Bold text</b>Normal text<i>italic text</i>Normal text</p>",
		},
		{
			name: "nested parents",
			node: Parent("div", []Node{Parent("span", []Node{Leaf("b", "grandchild")})}),
			want: "<div><span><b>grandchild</b></span></div>",
		},
		{
			name: "parent with attributes",
			node: Parent("div", []Node{Text("x")}, Attr{"class", "a"}, Attr{"id", "b"}),
			want: `<div class="a" id="b">x</div>`,
		},
		{name: "empty children", node: Parent("div", []Node{}), want: "<div></div>"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := c.node.HTML()
			require.NoError(t, err)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestNode_HTMLStructuralErrors(t *testing.T) {
	cases := []struct {
		name string
		node Node
	}{
		{name: "zero node", node: Node{}},
		{name: "leaf without value", node: Node{Kind: KindLeaf, Tag: "p"}},
		{name: "leaf literal with value", node: Node{Kind: KindLeaf, Tag: "b", Value: "x"}},
		{name: "parent without tag", node: Parent("", []Node{Text("x")})},
		{name: "parent without children", node: Parent("div", nil)},
		{name: "invalid grandchild", node: Parent("div", []Node{Parent("p", []Node{Text("ok"), {}})})},
		{name: "unknown kind", node: Node{Kind: Kind(7), Tag: "div"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			out, err := c.node.HTML()
			require.Error(t, err)
			assert.Empty(t, out)

			var serr *StructuralError
			assert.True(t, errors.As(err, &serr), "expected StructuralError, got %T", err)
		})
	}
}

func TestNode_EmptyVersusAbsent(t *testing.T) {
	assert.True(t, Text("").HasValue())
	assert.False(t, Node{}.HasValue())

	_, err := Parent("ul", []Node{}).HTML()
	assert.NoError(t, err)
	_, err = Parent("ul", nil).HTML()
	assert.Error(t, err)
}

func TestNode_Equality(t *testing.T) {
	assert.Equal(t, Leaf("a", "x", Attr{"href", "u"}), Leaf("a", "x", Attr{"href", "u"}))
	assert.NotEqual(t, Leaf("a", "x", Attr{"href", "u"}), Leaf("a", "x", Attr{"href", "v"}))
	assert.NotEqual(t, Text(""), Node{})
}

func TestNode_String(t *testing.T) {
	n := Parent("p", []Node{Leaf("a", "x", Attr{"href", "u"}), Text("y")})
	assert.Equal(t, `Parent("p", [Leaf("a", "x", [href="u"]), Leaf("", "y", [])], [])`, n.String())
}
