package markdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeepsLineBreaks(t *testing.T) {
	out, err := NewParser().Parse([]byte("Buy bread\nCall pharmacy\n\n- [x] pills"))
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, "Buy bread<br>")
	assert.Contains(t, html, `type="checkbox"`)
}

func TestParseEscapesRawHTML(t *testing.T) {
	out, err := NewParser().Parse([]byte("<script>alert(1)</script>"))
	require.NoError(t, err)
	assert.NotContains(t, string(out), "<script>")
}

func TestParseDocument(t *testing.T) {
	src := "---\ntitle: \"Care report - Maria\"\nelder: \"Maria\"\ndate: \"2024-05-01\"\n---\n\n# Hello\n"

	out, meta, err := NewParser().ParseDocument([]byte(src))
	require.NoError(t, err)
	assert.Equal(t, Meta{Title: "Care report - Maria", Elder: "Maria", Date: "2024-05-01"}, meta)
	assert.Contains(t, string(out), `<h1 id="hello">Hello</h1>`)
	assert.NotContains(t, string(out), "title:")
}

func TestParseDocumentWithoutFrontMatter(t *testing.T) {
	_, meta, err := NewParser().ParseDocument([]byte("just text"))
	require.NoError(t, err)
	assert.Equal(t, Meta{}, meta)
}
