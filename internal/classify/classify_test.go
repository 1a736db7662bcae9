package classify

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func parseFragment(t *testing.T, fragment string) *html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader("<html><body>" + fragment + "</body></html>"))
	require.NoError(t, err)
	var body *html.Node
	var find func(*html.Node)
	find = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "body" {
			body = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			find(c)
		}
	}
	find(doc)
	return body.FirstChild
}

func TestIsVisuallyHidden_SrOnlyClass(t *testing.T) {
	n := parseFragment(t, `<span class="sr-only">skip to content</span>`)
	assert.True(t, IsVisuallyHidden(n, false))
}

func TestIsVisuallyHidden_BreakpointClassKeptByDefault(t *testing.T) {
	n := parseFragment(t, `<div class="elementor-hidden-mobile">Desktop only text here</div>`)
	assert.False(t, IsVisuallyHidden(n, false))
	assert.True(t, IsVisuallyHidden(n, true))
}

func TestIsVisuallyHidden_InlineDisplayNone(t *testing.T) {
	n := parseFragment(t, `<div style="display:none">x</div>`)
	assert.True(t, IsVisuallyHidden(n, false))
}

func TestIsNavContainer(t *testing.T) {
	assert.True(t, IsNavContainer(parseFragment(t, `<nav></nav>`)))
	assert.True(t, IsNavContainer(parseFragment(t, `<div role="navigation"></div>`)))
	assert.True(t, IsNavContainer(parseFragment(t, `<div class="main-navbar"></div>`)))
	assert.False(t, IsNavContainer(parseFragment(t, `<div class="content"></div>`)))
}

func TestIsButtonLike_AnchorWithButtonClass(t *testing.T) {
	n := parseFragment(t, `<a class="btn" href="#quote">Get quote</a>`)
	assert.True(t, IsButtonLike(n, false))
}

func TestIsButtonLike_RejectsLongSentence(t *testing.T) {
	n := parseFragment(t, `<a class="btn" href="/x">This is way too long a sentence to ever be considered a button by the heuristic.</a>`)
	assert.False(t, IsButtonLike(n, false))
}

func TestIsButtonLike_RejectsAPIEndpoint(t *testing.T) {
	n := parseFragment(t, `<a role="button" href="https://trustindex.io/api/reviews">Reviews</a>`)
	assert.False(t, IsButtonLike(n, false))
}

func TestIsNavigationLink_InsideList(t *testing.T) {
	n := parseFragment(t, `<ul><li><a href="/page">Read more</a></li></ul>`)
	link := n.FirstChild.FirstChild
	assert.True(t, IsNavigationLink(link))
}

func TestIsBlogPostPage(t *testing.T) {
	assert.True(t, IsBlogPostPage("https://example.com/2024/05/01/my-post"))
	assert.True(t, IsBlogPostPage("https://example.com/blog/hello"))
	assert.False(t, IsBlogPostPage("https://example.com/services"))
}
