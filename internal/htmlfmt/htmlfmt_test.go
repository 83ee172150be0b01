package htmlfmt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrettySimpleElement(t *testing.T) {
	out, err := Pretty("<div>hello</div>")
	require.NoError(t, err)
	assert.Equal(t, "<div>hello</div>\n", out)
}

func TestPrettyNestedMarkup(t *testing.T) {
	out, err := Pretty(`<div class="teaser"><h2>Title</h2><p>Body</p></div>`)
	require.NoError(t, err)

	expected := "<div class=\"teaser\">\n" +
		"  <h2>Title</h2>\n" +
		"  <p>Body</p>\n" +
		"</div>\n"
	assert.Equal(t, expected, out)
}

func TestPrettyNormalizesInterTagWhitespace(t *testing.T) {
	out, err := Pretty("<ul>   <li>one</li>\n\n   <li>two</li>  </ul>")
	require.NoError(t, err)

	expected := "<ul>\n  <li>one</li>\n  <li>two</li>\n</ul>\n"
	assert.Equal(t, expected, out)
}

func TestPrettyVoidElements(t *testing.T) {
	out, err := Pretty(`<div><img src="a.png"><br></div>`)
	require.NoError(t, err)

	expected := "<div>\n  <img src=\"a.png\">\n  <br>\n</div>\n"
	assert.Equal(t, expected, out)
}

func TestPrettyPreservesRawText(t *testing.T) {
	out, err := Pretty("<script>var a = 1 < 2;</script>")
	require.NoError(t, err)
	assert.Contains(t, out, "var a = 1 < 2;")
}

func TestPrettyComment(t *testing.T) {
	out, err := Pretty("<!-- note --><div>x</div>")
	require.NoError(t, err)
	assert.Equal(t, "<!-- note -->\n<div>x</div>\n", out)
}

func TestPrettyBareText(t *testing.T) {
	out, err := Pretty("  plain text  ")
	require.NoError(t, err)
	assert.Equal(t, "plain text\n", out)
}

func TestPrettyEmptyInput(t *testing.T) {
	out, err := Pretty("")
	require.NoError(t, err)
	assert.Equal(t, "", out)
}

func TestPrettyIsIdempotent(t *testing.T) {
	once, err := Pretty(`<div><span>a</span><span>b</span></div>`)
	require.NoError(t, err)
	twice, err := Pretty(once)
	require.NoError(t, err)
	assert.Equal(t, once, twice)
}
