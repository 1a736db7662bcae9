package pipeline

import (
	"testing"

	"github.com/hr95savage/semantic-blocks/internal/config"
	"github.com/hr95savage/semantic-blocks/internal/document"
	"github.com/hr95savage/semantic-blocks/internal/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_Minimal(t *testing.T) {
	html := `<html><body><main><h1>Hi</h1><p>Hello world.</p></main></body></html>`
	cfg, err := config.WithDefault().Build()
	require.NoError(t, err)

	doc := Extract(html, "https://example.com/", cfg, metadata.NewRecorder())

	require.Len(t, doc.Blocks, 2)
	assert.Equal(t, document.Heading{Level: 1, Text: "Hi"}, doc.Blocks[0])
	assert.Equal(t, document.Paragraph{Text: "Hello world."}, doc.Blocks[1])
	assert.Equal(t, document.ValidationPass, doc.Validation.Status)
	assert.Equal(t, 1, doc.Validation.H1Count)
}

func TestExtract_ChromeStripped(t *testing.T) {
	html := `<html><body>
		<header><nav><a href="/">Home</a></nav></header>
		<main><h1>Welcome</h1><p>Core content here.</p></main>
		<footer>Copyright 2024</footer>
	</body></html>`
	cfg, err := config.WithDefault().Build()
	require.NoError(t, err)

	doc := Extract(html, "https://example.com/", cfg, metadata.NewRecorder())

	require.Len(t, doc.Blocks, 2)
	assert.Equal(t, document.Heading{Level: 1, Text: "Welcome"}, doc.Blocks[0])
}

func TestExtract_MissingMainContentStillReturnsDocument(t *testing.T) {
	cfg, err := config.WithDefault().Build()
	require.NoError(t, err)

	doc := Extract("", "https://example.com/", cfg, metadata.NewRecorder())

	assert.Equal(t, document.ValidationWarn, doc.Validation.Status)
	assert.Empty(t, doc.Blocks)
}

func TestExtract_CounterRewriteProducesTable(t *testing.T) {
	html := `<html><body><main><h1>Stats</h1><div>
		<div><span class="counter-number">500+</span><span class="counter-title">Clients</span></div>
		<div><span class="counter-number">10</span><span class="counter-title">Years</span></div>
		<div><span class="counter-number">99%</span><span class="counter-title">Uptime</span></div>
	</div></main></body></html>`
	cfg, err := config.WithDefault().Build()
	require.NoError(t, err)

	doc := Extract(html, "https://example.com/", cfg, metadata.NewRecorder())

	var sawTable bool
	for _, b := range doc.Blocks {
		if tbl, ok := b.(document.Table); ok {
			sawTable = true
			assert.Len(t, tbl.Rows, 3)
		}
	}
	assert.True(t, sawTable)
}

func TestExtract_PseudoTabset(t *testing.T) {
	html := `<html><body><main><h1>T</h1>
		<div><a href="#a">A</a><a href="#b">B</a></div>
		<section id="a"><p>alpha</p></section>
		<section id="b"><p>beta</p></section>
	</main></body></html>`
	cfg, err := config.WithDefault().Build()
	require.NoError(t, err)

	doc := Extract(html, "https://example.com/", cfg, metadata.NewRecorder())

	require.Len(t, doc.Blocks, 2)
	ts, ok := doc.Blocks[1].(document.Tabset)
	require.True(t, ok)
	require.Len(t, ts.Tabs, 2)
	assert.Equal(t, "A", ts.Tabs[0].Title)
	assert.Equal(t, "B", ts.Tabs[1].Title)
}
