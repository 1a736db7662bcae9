// Package cardgrid detects repeating card-shaped children (feature grids,
// team grids, pricing cards) and collapses them into a compact block
// sequence instead of dozens of near-duplicate heading/paragraph pairs (§4.7).
package cardgrid

import (
	"strings"

	"github.com/agnivade/levenshtein"
	"github.com/hr95savage/semantic-blocks/internal/classify"
	"github.com/hr95savage/semantic-blocks/internal/document"
	"golang.org/x/net/html"
)

var containerTags = map[string]bool{"div": true, "section": true, "article": true, "ul": true}

var disqualifyingClassHints = []string{"marquee", "ticker", "loop"}
var qualifyingClassHints = []string{"carousel", "swiper", "grid", "cards", "elementor-carousel", "elementor-widget-n-carousel"}

var headingTags = map[string]int{"h2": 2, "h3": 3, "h4": 4}
var titleClassHints = []string{"title", "card-title", "heading"}

// Detect reports whether elem is a repeating card grid and, if so, returns
// the blocks that should replace its whole subtree.
func Detect(elem *html.Node) ([]document.Block, bool) {
	if elem.Type != html.ElementNode || !containerTags[elem.Data] {
		return nil, false
	}
	if hasDescendantForm(elem) {
		return nil, false
	}

	class := classAttr(elem)
	if containsAny(class, disqualifyingClassHints) {
		return nil, false
	}

	qualifiesByClass := containsAny(class, qualifyingClassHints)
	if !qualifiesByClass && len(uniqueH4Texts(elem)) < 6 {
		return nil, false
	}

	type card struct {
		container *html.Node
		title     *html.Node
		titleText string
	}

	var cards []card
	for _, c := range visibleElementChildren(elem) {
		title := findTitleElement(c)
		if title == nil {
			continue
		}
		text := collapseWhitespace(text(title))
		if text == "" {
			continue
		}
		cards = append(cards, card{container: c, title: title, titleText: text})
	}
	if len(cards) < 6 {
		return nil, false
	}

	structKeyCounts := map[string]int{}
	for _, c := range cards {
		structKeyCounts[structuralKey(c.container)]++
	}
	best := 0
	for _, n := range structKeyCounts {
		if n > best {
			best = n
		}
	}
	if best < 6 {
		return nil, false
	}

	checkCount := len(cards)
	if checkCount > 8 {
		checkCount = 8
	}
	var checked []string
	for i := 0; i < checkCount; i++ {
		if isNearDuplicateTitle(cards[i].titleText, checked) {
			return nil, false
		}
		checked = append(checked, cards[i].titleText)
	}

	var blocks []document.Block
	described := 0
	for _, c := range cards {
		level := 3
		if lvl, ok := headingTags[c.title.Data]; ok {
			level = lvl
		}
		blocks = append(blocks, document.Heading{Level: level, Text: c.titleText})
		if desc := findCardDescription(c.container, c.title); desc != "" {
			blocks = append(blocks, document.Paragraph{Text: desc})
			described++
		}
	}

	if float64(described) < 0.6*float64(len(cards)) {
		var titles []string
		seen := map[string]bool{}
		for _, c := range cards {
			if !seen[c.titleText] {
				titles = append(titles, c.titleText)
				seen[c.titleText] = true
			}
		}
		if len(titles) < 6 {
			return nil, false
		}
		return []document.Block{document.List{Ordered: false, Items: titles}}, true
	}

	return blocks, true
}

// findTitleElement looks for h2|h3|h4, then role=heading, then a class hint.
func findTitleElement(card *html.Node) *html.Node {
	for _, tag := range []string{"h2", "h3", "h4"} {
		if found := findFirst(card, func(n *html.Node) bool { return n.Data == tag }); found != nil {
			return found
		}
	}
	if found := findFirst(card, func(n *html.Node) bool { return attrVal(n, "role") == "heading" }); found != nil {
		return found
	}
	return findFirst(card, func(n *html.Node) bool { return containsAny(classAttr(n), titleClassHints) })
}

// findCardDescription looks for a following sibling of the title (or a direct
// child of the card) that is a paragraph or descriptive div with at least 20
// characters of text.
func findCardDescription(card, title *html.Node) string {
	for sib := title.NextSibling; sib != nil; sib = sib.NextSibling {
		if sib.Type != html.ElementNode {
			continue
		}
		if sib.Data == "p" || sib.Data == "div" {
			t := collapseWhitespace(text(sib))
			if len([]rune(t)) >= 20 {
				return t
			}
		}
	}
	for _, c := range elementChildren(card) {
		if c == title {
			continue
		}
		if c.Data != "p" && c.Data != "div" {
			continue
		}
		t := collapseWhitespace(text(c))
		if len([]rune(t)) >= 20 {
			return t
		}
	}
	return ""
}

// isNearDuplicateTitle reports whether title is within 10% edit distance of
// any already-seen title. The threshold is deliberately tight: two distinct
// numbered titles ("Feature 1", "Feature 2") must never collide, but
// boilerplate repeated verbatim across cards ("Read More", "Learn More ›")
// still collides even when case or a trailing glyph differs.
func isNearDuplicateTitle(title string, seen []string) bool {
	lower := strings.ToLower(title)
	for _, s := range seen {
		other := strings.ToLower(s)
		maxLen := len([]rune(lower))
		if l := len([]rune(other)); l > maxLen {
			maxLen = l
		}
		if maxLen == 0 {
			continue
		}
		threshold := maxLen / 10
		if levenshtein.ComputeDistance(lower, other) <= threshold {
			return true
		}
	}
	return false
}

func structuralKey(n *html.Node) string {
	fields := strings.Fields(classAttr(n))
	if len(fields) > 2 {
		fields = fields[:2]
	}
	return n.Data + "|" + strings.Join(fields, " ")
}

func uniqueH4Texts(root *html.Node) map[string]bool {
	out := map[string]bool{}
	for _, h := range findAll(root, "h4") {
		t := collapseWhitespace(text(h))
		if t != "" {
			out[t] = true
		}
	}
	return out
}

func hasDescendantForm(n *html.Node) bool {
	return findFirst(n, func(c *html.Node) bool { return c.Data == "form" }) != nil
}

func visibleElementChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && !classify.IsVisuallyHidden(c, false) {
			out = append(out, c)
		}
	}
	return out
}

func elementChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}

func findFirst(root *html.Node, pred func(*html.Node) bool) *html.Node {
	if root.Type == html.ElementNode && pred(root) {
		return root
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if found := findFirst(c, pred); found != nil {
			return found
		}
	}
	return nil
}

func findAll(root *html.Node, tag string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func containsAny(s string, substrs []string) bool {
	for _, sub := range substrs {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

func text(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(node *html.Node) {
		if node.Type == html.TextNode {
			sb.WriteString(node.Data)
		}
		for c := node.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}

func classAttr(n *html.Node) string {
	return strings.ToLower(attrVal(n, "class"))
}

func attrVal(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}
