package blocks

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/hr95savage/semantic-blocks/internal/document"
	"github.com/hr95savage/semantic-blocks/pkg/urlutil"
	"golang.org/x/net/html"
)

var headingTags = map[string]int{
	"h1": 1, "h2": 2, "h3": 3, "h4": 4, "h5": 5, "h6": 6,
}

var textContainerTags = map[string]bool{
	"p": true, "li": true, "td": true, "th": true, "summary": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
}

var altTextLikePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^image of`),
	regexp.MustCompile(`(?i)^picture of`),
	regexp.MustCompile(`(?i)^photo of`),
	regexp.MustCompile(`(?i)^illustration of`),
	regexp.MustCompile(`(?i)^graphic showing`),
	regexp.MustCompile(`(?i)^icon for`),
	regexp.MustCompile(`(?i)^logo for`),
	regexp.MustCompile(`(?i)^trusted.*in.*area$`),
	regexp.MustCompile(`(?i)^click to`),
	regexp.MustCompile(`(?i)^link to`),
}

var sentenceEndingPunct = regexp.MustCompile(`[.!?]`)
var anyDigit = regexp.MustCompile(`\d`)

var textEditorClassPattern = regexp.MustCompile(`elementor-text-editor|wp-block-paragraph|text-editor`)

// isHeadingLike reports whether elem is a heading tag or role=heading.
func isHeadingLike(elem *html.Node) (level int, ok bool) {
	if lvl, found := headingTags[elem.Data]; found {
		return lvl, true
	}
	if attrVal(elem, "role") == "heading" {
		lvl := 2
		if al := attrVal(elem, "aria-level"); al != "" {
			if n, err := strconv.Atoi(al); err == nil {
				lvl = n
			}
		}
		if lvl < 1 {
			lvl = 1
		}
		if lvl > 6 {
			lvl = 6
		}
		return lvl, true
	}
	return 0, false
}

func extractHeading(elem *html.Node) (document.Block, bool) {
	level, ok := isHeadingLike(elem)
	if !ok {
		return nil, false
	}
	text := collapseWhitespace(visibleText(elem))
	if text == "" {
		return nil, false
	}
	return document.Heading{Level: level, Text: text}, true
}

// qualifiesAsParagraph applies the §4.5 paragraph filters.
func qualifiesAsParagraph(text string) bool {
	text = collapseWhitespace(text)
	if len([]rune(text)) < 3 {
		return false
	}
	for _, pat := range altTextLikePatterns {
		if pat.MatchString(text) {
			return false
		}
	}
	if len([]rune(text)) < 15 && !sentenceEndingPunct.MatchString(text) && !anyDigit.MatchString(text) {
		return false
	}
	return true
}

func createParagraph(text string) (document.Block, bool) {
	collapsed := collapseWhitespace(text)
	if !qualifiesAsParagraph(collapsed) {
		return nil, false
	}
	return document.Paragraph{Text: collapsed}, true
}

func isTextEditorDiv(elem *html.Node) bool {
	if elem.Data != "div" {
		return false
	}
	return textEditorClassPattern.MatchString(classAttr(elem))
}

func isIconListContainer(elem *html.Node) bool {
	return strings.Contains(classAttr(elem), "elementor-icon-list-items")
}

func extractList(elem *html.Node) (document.Block, bool) {
	ordered := elem.Data == "ol"

	var items []string
	if isIconListContainer(elem) {
		for _, li := range elementChildren(elem) {
			textNode := findByClass(li, "elementor-icon-list-text")
			if textNode == nil {
				textNode = li
			}
			text := collapseWhitespace(visibleText(textNode))
			if text != "" {
				items = append(items, text)
			}
		}
	} else {
		for _, child := range elementChildren(elem) {
			if child.Data != "li" {
				continue
			}
			iconItems := findByClass(child, "elementor-icon-list-items")
			var text string
			if iconItems != nil {
				text = collapseWhitespace(visibleText(iconItems))
			} else {
				text = collapseWhitespace(visibleText(child))
			}
			if text != "" {
				items = append(items, text)
			}
		}
	}

	if len(items) < 2 {
		return nil, false
	}
	return document.List{Ordered: ordered, Items: items}, true
}

func extractTable(elem *html.Node) (document.Block, bool) {
	var rows [][]string
	for _, tr := range findAll(elem, "tr") {
		var cells []string
		for _, cell := range elementChildren(tr) {
			if cell.Data != "td" && cell.Data != "th" {
				continue
			}
			cells = append(cells, collapseWhitespace(visibleText(cell)))
		}
		if len(cells) > 0 {
			rows = append(rows, cells)
		}
	}
	if len(rows) == 0 {
		return nil, false
	}
	return document.Table{Rows: rows}, true
}

// extractCTA builds a CTA block for an element the caller has already
// confirmed is button-like.
func extractCTA(elem *html.Node, canonicalURL string) (document.Block, bool) {
	text := collapseWhitespace(visibleText(elem))
	if text == "" {
		return nil, false
	}

	href := attrVal(elem, "href")
	if href == "" {
		return document.CTA{Text: text}, true
	}
	trimmed := strings.TrimSpace(href)
	if trimmed == "#" || strings.HasPrefix(strings.ToLower(trimmed), "javascript:") {
		return nil, false
	}

	if strings.HasPrefix(trimmed, "#") {
		return document.CTA{Text: text, Href: trimmed, Meta: &document.Meta{Role: document.RoleRouter}}, true
	}

	resolved := urlutil.ResolveHref(canonicalURL, trimmed)
	return document.CTA{Text: text, Href: resolved}, true
}

func collapseWhitespace(s string) string {
	fields := strings.Fields(s)
	return strings.Join(fields, " ")
}

func visibleText(n *html.Node) string {
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

func elementChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
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

func findByClass(root *html.Node, classSubstr string) *html.Node {
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && strings.Contains(classAttr(n), classSubstr) {
			found = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
			if found != nil {
				return
			}
		}
	}
	walk(root)
	return found
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
