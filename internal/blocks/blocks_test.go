package blocks

import (
	"strings"
	"testing"

	"github.com/hr95savage/semantic-blocks/internal/document"
	"github.com/hr95savage/semantic-blocks/internal/htmldom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parseMain(t *testing.T, fragment string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader("<html><body>" + fragment + "</body></html>"))
	require.NoError(t, err)

	var main *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "main" {
			main = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
			if main != nil {
				return
			}
		}
	}
	walk(doc)
	require.NotNil(t, main)
	return main
}

func TestWalker_HeadingAndParagraph(t *testing.T) {
	main := parseMain(t, `<main><h1>Welcome</h1><p>This is a paragraph of body text.</p></main>`)

	w := NewWalker(htmldom.BuildIDIndex(main), main, "https://example.com", false, false, false)
	got := w.Extract()

	require.Len(t, got, 2)
	assert.Equal(t, document.Heading{Level: 1, Text: "Welcome"}, got[0])
	assert.Equal(t, document.Paragraph{Text: "This is a paragraph of body text."}, got[1])
}

func TestWalker_DetailsProducesFAQ(t *testing.T) {
	main := parseMain(t, `<main><details><summary>What is this?</summary><p>It is a test.</p></details></main>`)

	w := NewWalker(htmldom.BuildIDIndex(main), main, "", false, false, false)
	got := w.Extract()

	require.Len(t, got, 1)
	faq, ok := got[0].(document.FAQ)
	require.True(t, ok)
	assert.Equal(t, "What is this?", faq.Question)
	require.Len(t, faq.AnswerBlocks, 1)
	assert.Equal(t, document.Paragraph{Text: "It is a test."}, faq.AnswerBlocks[0])
}

func TestWalker_DetailsProducesAccordion(t *testing.T) {
	main := parseMain(t, `<main><details><summary>Our history</summary><p>Founded in 2001.</p></details></main>`)

	w := NewWalker(htmldom.BuildIDIndex(main), main, "", false, false, false)
	got := w.Extract()

	require.Len(t, got, 1)
	acc, ok := got[0].(document.Accordion)
	require.True(t, ok)
	assert.Equal(t, "Our history", acc.Title)
}

func TestWalker_CTAWithFragmentGetsRouterRole(t *testing.T) {
	main := parseMain(t, `<main><h1>T</h1><a href="#pricing" class="button">See pricing</a></main>`)

	w := NewWalker(htmldom.BuildIDIndex(main), main, "https://example.com/page", false, false, false)
	got := w.Extract()

	require.Len(t, got, 2)
	cta, ok := got[1].(document.CTA)
	require.True(t, ok)
	assert.Equal(t, "#pricing", cta.Href)
	require.NotNil(t, cta.Meta)
	assert.Equal(t, document.RoleRouter, cta.Meta.Role)
}

func TestWalker_PseudoTabset(t *testing.T) {
	main := parseMain(t, `<main><h1>T</h1>
		<div><a href="#alpha">Alpha</a><a href="#beta">Beta</a></div>
		<section id="alpha"><p>alpha content.</p></section>
		<section id="beta"><p>beta content.</p></section>
	</main>`)

	w := NewWalker(htmldom.BuildIDIndex(main), main, "", false, false, false)
	got := w.Extract()

	require.Len(t, got, 2)
	ts, ok := got[1].(document.Tabset)
	require.True(t, ok)
	require.Len(t, ts.Tabs, 2)
	assert.Equal(t, "Alpha", ts.Tabs[0].Title)
	assert.Equal(t, "Beta", ts.Tabs[1].Title)
	assert.Equal(t, document.Paragraph{Text: "alpha content."}, ts.Tabs[0].ContentBlocks[0])
}

func TestWalker_AriaTablist(t *testing.T) {
	main := parseMain(t, `<main>
		<div role="tablist">
			<button role="tab" aria-controls="panel-a">One</button>
			<button role="tab" aria-controls="panel-b">Two</button>
		</div>
		<div id="panel-a" role="tabpanel"><p>panel one text.</p></div>
		<div id="panel-b" role="tabpanel"><p>panel two text.</p></div>
	</main>`)

	w := NewWalker(htmldom.BuildIDIndex(main), main, "", false, false, false)
	got := w.Extract()

	require.Len(t, got, 1)
	ts, ok := got[0].(document.Tabset)
	require.True(t, ok)
	require.Len(t, ts.Tabs, 2)
	assert.Equal(t, "One", ts.Tabs[0].Title)
	assert.Equal(t, document.Paragraph{Text: "panel one text."}, ts.Tabs[0].ContentBlocks[0])
}

func TestWalker_ListRequiresAtLeastTwoItems(t *testing.T) {
	main := parseMain(t, `<main><ul><li>Only one</li></ul></main>`)

	w := NewWalker(htmldom.BuildIDIndex(main), main, "", false, false, false)
	got := w.Extract()

	assert.Empty(t, got)
}

func TestWalker_TableExtraction(t *testing.T) {
	main := parseMain(t, `<main><table><tr><th>Name</th><th>Value</th></tr><tr><td>A</td><td>1</td></tr></table></main>`)

	w := NewWalker(htmldom.BuildIDIndex(main), main, "", false, false, false)
	got := w.Extract()

	require.Len(t, got, 1)
	tbl, ok := got[0].(document.Table)
	require.True(t, ok)
	assert.Equal(t, [][]string{{"Name", "Value"}, {"A", "1"}}, tbl.Rows)
}
