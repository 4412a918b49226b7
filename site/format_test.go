package site

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettify(t *testing.T) {
	got, err := Prettify("<p>Some <b>bold</b> text</p>")
	require.NoError(t, err)
	assert.Equal(t, `<html>
 <head>
 </head>
 <body>
  <p>
   Some
   <b>
    bold
   </b>
   text
  </p>
 </body>
</html>
`, got)
}

func TestPrettify_Elements(t *testing.T) {
	cases := []struct {
		name string
		page string
		want string
	}{
		{name: "doctype", page: "<!DOCTYPE html><html><body></body></html>", want: "<!DOCTYPE html>\n<html>\n"},
		{name: "void element", page: `<p><img src="u" alt="x"></img></p>`, want: `   <img src="u" alt="x"/>` + "\n"},
		{name: "pre kept verbatim", page: "<pre><code>a\n  b **c**\n</code></pre>", want: "  <pre><code>a\n  b **c**\n</code></pre>\n"},
		{name: "text escaped", page: "<p>a &amp; b &lt; c</p>", want: "   a &amp; b &lt; c\n"},
		{name: "attribute escaped", page: `<a href="/?a=1&amp;b=&quot;2&quot;">x</a>`, want: `<a href="/?a=1&amp;b=&quot;2&quot;">`},
		{name: "comment", page: "<body><!-- note --></body>", want: "  <!-- note -->\n"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Prettify(c.page)
			require.NoError(t, err)
			assert.Contains(t, got, c.want)
		})
	}
}

func TestPrettify_WhitespaceOnlyTextDropped(t *testing.T) {
	got, err := Prettify("<div>\n   \n<p>x</p>\n</div>")
	require.NoError(t, err)
	assert.Equal(t, "<html>\n <head>\n </head>\n <body>\n  <div>\n   <p>\n    x\n   </p>\n  </div>\n </body>\n</html>\n", got)
}
