package contentselect

import (
	"bytes"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/hr95savage/semantic-blocks/internal/classify"
	"golang.org/x/net/html"
)

/*
Responsibilities
- Locate the main-content root for a parsed document (§4.1)

Algorithm
- <main> or [role="main"] first
- Known-framework / custom selectors next (escape hatch, config-driven)
- Otherwise, text-density scoring across non-chrome div|section|article|main
  descendants of <body>, biased 1.2x for article|section|div
- Prefer an ancestor that contains a globally-eligible H1 if the winning
  candidate does not already contain one
- Fall back to <body>
*/

var chromeTags = map[string]bool{"header": true, "nav": true, "footer": true, "aside": true}
var chromeRoles = map[string]bool{"banner": true, "navigation": true, "contentinfo": true, "complementary": true}

// Select returns the element whose subtree should be extracted.
func Select(doc *html.Node, customSelectors []string, dropBreakpointHidden bool) *html.Node {
	gq := goquery.NewDocumentFromNode(doc)

	if main := gq.Find("main").First(); main.Length() > 0 {
		return main.Nodes[0]
	}
	if roleMain := gq.Find(`[role="main"]`).First(); roleMain.Length() > 0 {
		return roleMain.Nodes[0]
	}

	for _, sel := range mergedKnownSelectors(customSelectors) {
		if found := gq.Find(sel).First(); found.Length() > 0 {
			return found.Nodes[0]
		}
	}

	body := gq.Find("body").First()
	if body.Length() == 0 {
		return doc
	}
	bodyNode := body.Nodes[0]

	candidates := collectCandidates(bodyNode)
	if len(candidates) == 0 {
		return bodyNode
	}

	var best *html.Node
	var bestScore float64
	for _, c := range candidates {
		score := score(c, dropBreakpointHidden)
		if best == nil || score > bestScore {
			best = c
			bestScore = score
		}
	}
	if best == nil {
		return bodyNode
	}

	if h1 := findEligibleH1(bodyNode, dropBreakpointHidden); h1 != nil && !containsNode(best, h1) {
		for anc := best.Parent; anc != nil; anc = anc.Parent {
			if isChrome(anc) {
				break
			}
			if containsNode(anc, h1) {
				best = anc
				break
			}
		}
	}

	return best
}

// collectCandidates gathers div|section|article|main descendants of body
// that are not nested inside a chrome ancestor.
func collectCandidates(body *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(n *html.Node, insideChrome bool)
	walk = func(n *html.Node, insideChrome bool) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			nowChrome := insideChrome || isChrome(c)
			if !nowChrome {
				switch c.Data {
				case "div", "section", "article", "main":
					out = append(out, c)
				}
			}
			walk(c, nowChrome)
		}
	}
	walk(body, false)
	return out
}

func isChrome(n *html.Node) bool {
	if n == nil || n.Type != html.ElementNode {
		return false
	}
	if chromeTags[n.Data] {
		return true
	}
	return chromeRoles[attrVal(n, "role")]
}

// score computes len(visible_text)/len(serialized_html), biased 1.2x for
// article|section|div. Hidden elements contribute no text.
func score(n *html.Node, dropBreakpointHidden bool) float64 {
	serialized := serializedLen(n)
	if serialized == 0 {
		return 0
	}
	text := visibleTextLen(n, dropBreakpointHidden)
	s := float64(text) / float64(serialized)
	switch n.Data {
	case "article", "section", "div":
		s *= 1.2
	}
	return s
}

func serializedLen(n *html.Node) int {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return 0
	}
	return buf.Len()
}

func visibleTextLen(n *html.Node, dropBreakpointHidden bool) int {
	if n.Type == html.ElementNode && classify.IsVisuallyHidden(n, dropBreakpointHidden) {
		return 0
	}
	total := 0
	if n.Type == html.TextNode {
		total += len(strings.TrimSpace(n.Data))
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		total += visibleTextLen(c, dropBreakpointHidden)
	}
	return total
}

// findEligibleH1 returns the first non-chrome, non-hidden H1 under body.
func findEligibleH1(body *html.Node, dropBreakpointHidden bool) *html.Node {
	var found *html.Node
	var walk func(n *html.Node, insideChrome bool)
	walk = func(n *html.Node, insideChrome bool) {
		if found != nil {
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type != html.ElementNode {
				continue
			}
			nowChrome := insideChrome || isChrome(c)
			if !nowChrome && c.Data == "h1" && !classify.IsVisuallyHidden(c, dropBreakpointHidden) {
				found = c
				return
			}
			walk(c, nowChrome)
			if found != nil {
				return
			}
		}
	}
	walk(body, false)
	return found
}

func containsNode(ancestor, target *html.Node) bool {
	for n := target; n != nil; n = n.Parent {
		if n == ancestor {
			return true
		}
	}
	return false
}

func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
