package classify

import (
	"strings"

	"golang.org/x/net/html"
)

/*
Responsibilities
- Decide whether a node (or its ancestry) is visually hidden
- Respect the breakpoint-hidden carve-out: elementor-hidden-mobile/tablet/desktop
  are viewport-specific, not globally hidden, unless config says otherwise

Only global signals count as hidden: aria-hidden on a non-content node,
inline display:none/visibility:hidden, or a known screen-reader-only class.
*/

// hiddenClassPatterns are known screen-reader-only class substrings.
var hiddenClassPatterns = []string{
	"sr-only", "screen-reader-text", "visually-hidden", "hidden",
	"elementor-screen-only", "visuallyhidden", "sr-only-text",
	"a11y-hidden", "skip-link", "screen-reader",
}

var contentTags = map[string]bool{
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"p": true, "li": true, "table": true,
}

// IsVisuallyHidden reports whether elem is hidden, per §4.2: ancestors are
// walked too since children inherit their parent's visibility.
func IsVisuallyHidden(elem *html.Node, dropBreakpointHidden bool) bool {
	for n := elem; n != nil; n = n.Parent {
		if n.Type != html.ElementNode {
			continue
		}
		if isNonContentAriaHidden(n) {
			return true
		}
		if styleHidden(n) {
			return true
		}

		classStr := classAttr(n)
		breakpoint := hasBreakpointClass(classStr)
		if breakpoint {
			if dropBreakpointHidden {
				return true
			}
			// keep breakpoint-hidden content; skip class-based checks for this node
			continue
		}
		if matchesHiddenClass(classStr) {
			return true
		}
	}
	return false
}

func styleHidden(n *html.Node) bool {
	style := strings.ToLower(attrVal(n, "style"))
	if style == "" {
		return false
	}
	return strings.Contains(style, "display:none") || strings.Contains(style, "display: none") ||
		strings.Contains(style, "visibility:hidden") || strings.Contains(style, "visibility: hidden")
}

func isNonContentAriaHidden(n *html.Node) bool {
	if attrVal(n, "aria-hidden") != "true" {
		return false
	}
	if hasDescendantContentTag(n) {
		return false
	}
	return len(strings.TrimSpace(visibleText(n))) < 10
}

func hasDescendantContentTag(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && contentTags[c.Data] {
			return true
		}
		if hasDescendantContentTag(c) {
			return true
		}
	}
	return false
}

func hasBreakpointClass(classStr string) bool {
	return strings.Contains(classStr, "elementor-hidden-mobile") ||
		strings.Contains(classStr, "elementor-hidden-tablet") ||
		strings.Contains(classStr, "elementor-hidden-desktop") ||
		strings.Contains(classStr, "elementor-hidden-")
}

func matchesHiddenClass(classStr string) bool {
	for _, pattern := range hiddenClassPatterns {
		if strings.Contains(classStr, pattern) {
			return true
		}
	}
	return false
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

// visibleText returns the concatenated text content of n's subtree.
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
