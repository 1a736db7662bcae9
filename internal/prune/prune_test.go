package prune

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func render(t *testing.T, n *html.Node) string {
	t.Helper()
	var sb strings.Builder
	require.NoError(t, html.Render(&sb, n))
	return sb.String()
}

func TestPrune_RemovesScriptAndChrome(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<html><body><main><script>x()</script><nav>Home</nav><h1>T</h1></main></body></html>`))
	require.NoError(t, err)

	Prune(doc, false)

	out := render(t, doc)
	assert.NotContains(t, out, "<script")
	assert.NotContains(t, out, "<nav")
	assert.Contains(t, out, "<h1>T</h1>")
}

func TestPrune_RemovesSVGIcon(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<html><body><main><p><svg></svg>Text</p></main></body></html>`))
	require.NoError(t, err)

	Prune(doc, false)

	out := render(t, doc)
	assert.NotContains(t, out, "<svg")
	assert.Contains(t, out, "Text")
}

func TestPrune_RemovesShortIconTag(t *testing.T) {
	doc, err := html.Parse(strings.NewReader(`<html><body><main><p><i class="fa-check"></i> Done</p></main></body></html>`))
	require.NoError(t, err)

	Prune(doc, false)

	out := render(t, doc)
	assert.NotContains(t, out, "<i")
	assert.Contains(t, out, "Done")
}
