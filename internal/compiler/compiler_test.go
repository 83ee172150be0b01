package compiler

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGoTemplateCompiler(t *testing.T) {
	c := &GoTemplateCompiler{}

	tpl, err := c.Compile(`<h1>{{.Title}}</h1>`, "example.hbs")
	require.NoError(t, err)

	out, err := tpl.Render(map[string]string{"Title": "Hello"})
	require.NoError(t, err)
	assert.Equal(t, "<h1>Hello</h1>", out)
}

func TestGoTemplateCompilerStaticMarkup(t *testing.T) {
	c := &GoTemplateCompiler{}

	tpl, err := c.Compile("<button>Click</button>", "example.hbs")
	require.NoError(t, err)

	out, err := tpl.Render(nil)
	require.NoError(t, err)
	assert.Equal(t, "<button>Click</button>", out)
}

func TestGoTemplateCompilerParseError(t *testing.T) {
	c := &GoTemplateCompiler{}

	_, err := c.Compile("{{unterminated", "example.hbs")
	assert.Error(t, err)
}

func TestStaticCompiler(t *testing.T) {
	tpl, err := StaticCompiler{}.Compile("{{not a directive}}", "example.html")
	require.NoError(t, err)

	out, err := tpl.Render(nil)
	require.NoError(t, err)
	assert.Equal(t, "{{not a directive}}", out)
}

func TestCompileFuncAdapter(t *testing.T) {
	upper := CompileFunc(func(source, _ string) (Template, error) {
		return RenderFunc(func(any) (string, error) {
			return strings.ToUpper(source), nil
		}), nil
	})

	tpl, err := upper.Compile("<div>a</div>", "x.hbs")
	require.NoError(t, err)
	out, err := tpl.Render(nil)
	require.NoError(t, err)
	assert.Equal(t, "<DIV>A</DIV>", out)
}

func TestByName(t *testing.T) {
	for _, name := range []string{"", "go-template", "static"} {
		c, err := ByName(name)
		require.NoError(t, err)
		assert.NotNil(t, c)
	}

	_, err := ByName("handlebars")
	assert.Error(t, err)
}
