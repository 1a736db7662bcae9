package prune

import (
	"regexp"
	"strings"

	"github.com/hr95savage/semantic-blocks/internal/classify"
	"golang.org/x/net/html"
)

/*
Responsibilities
- Remove non-content subtrees from the main-content tree (§4.3)
- Surgically remove icon nodes while preserving their parents' remaining text

Removal is a top-down sweep that takes out the outermost matching node
without descending into it: decompose script/style/form-control/chrome/
hidden subtrees first, then run icon removal as a second pass so icon
detection sees the already-pruned tree.
*/

var removableTags = map[string]bool{
	"script": true, "style": true, "noscript": true, "meta": true, "link": true,
	"img": true, "picture": true, "source": true,
	"form": true, "input": true, "textarea": true, "select": true, "label": true, "option": true,
}

var chromeTags = map[string]bool{"header": true, "nav": true, "footer": true, "aside": true}
var chromeRoles = map[string]bool{"banner": true, "navigation": true, "contentinfo": true, "complementary": true}

var iconClassPattern = regexp.MustCompile(`(?i)icon|fa-`)
var elementorIconListIconPattern = regexp.MustCompile(`elementor-icon-list-icon`)
var elementorIconPattern = regexp.MustCompile(`^elementor-icon$`)

// Prune mutates root in place, decomposing chrome, script/style/form-control
// and hidden subtrees, then surgically removing icon nodes.
func Prune(root *html.Node, dropBreakpointHidden bool) {
	removeUnwanted(root, dropBreakpointHidden)
	removeIcons(root)
}

func removeUnwanted(root *html.Node, dropBreakpointHidden bool) {
	var toRemove []*html.Node
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && shouldRemove(c, dropBreakpointHidden) {
				toRemove = append(toRemove, c)
				continue
			}
			collect(c)
		}
	}
	collect(root)
	for _, n := range toRemove {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
}

func shouldRemove(n *html.Node, dropBreakpointHidden bool) bool {
	if removableTags[n.Data] {
		return true
	}
	if chromeTags[n.Data] {
		return true
	}
	if chromeRoles[attrVal(n, "role")] {
		return true
	}
	return classify.IsVisuallyHidden(n, dropBreakpointHidden)
}

// removeIcons decomposes svg nodes and icon-like <i>/elementor icon wrappers.
func removeIcons(root *html.Node) {
	var toRemove []*html.Node
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && isIconNode(c) {
				toRemove = append(toRemove, c)
				continue
			}
			collect(c)
		}
	}
	collect(root)
	for _, n := range toRemove {
		if n.Parent != nil {
			n.Parent.RemoveChild(n)
		}
	}
}

func isIconNode(n *html.Node) bool {
	if n.Data == "svg" {
		return true
	}

	class := classAttr(n)
	text := strings.TrimSpace(textContent(n))

	if n.Data == "i" {
		if iconClassPattern.MatchString(class) || len(text) < 3 {
			return true
		}
	}

	if elementorIconListIconPattern.MatchString(class) || elementorIconPattern.MatchString(class) {
		if hasDescendantSVG(n) || len(text) < 10 {
			return true
		}
	}

	return false
}

func hasDescendantSVG(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && c.Data == "svg" {
			return true
		}
		if hasDescendantSVG(c) {
			return true
		}
	}
	return false
}

func textContent(n *html.Node) string {
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
