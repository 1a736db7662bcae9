package counter

import (
	"bytes"
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

/*
Responsibilities
- Find number+label widgets (stat counters) and rewrite them in-place as
  semantic <table> nodes, before the block walker ever sees them (§4.4)

A container qualifies with 3-20 element children, or more when it carries
an elementor-widget-counter hint. Each child is matched against five
increasingly loose (value, label) patterns; ≥3 matches rewrite the
container; fewer leave it untouched for the block walker to handle as
ordinary content.
*/

var (
	valuePrefixPattern  = regexp.MustCompile(`^[\d,.]+\s*\+?`)
	valueWholePattern   = regexp.MustCompile(`^[\d,.]+\s*\+?$`)
	valueLabelPattern   = regexp.MustCompile(`^([\d,.]+\s*\+?)\s+(.+)$`)
	counterNumberClass  = regexp.MustCompile(`(?i)counter-number|elementor-counter-number`)
	counterTitleClass   = regexp.MustCompile(`(?i)counter-title|elementor-counter-title`)
	genericNumberClass  = regexp.MustCompile(`(?i)number|count|value|stat`)
	genericLabelClass   = regexp.MustCompile(`(?i)title|label|name|text`)
	elementorCounterHint = regexp.MustCompile(`elementor-widget-counter`)
)

type pair struct {
	value string
	label string
}

// DetectAndRewrite scans every div|section|article descendant of root and
// rewrites qualifying counter containers into <table> nodes, recursing into
// surviving children afterward.
func DetectAndRewrite(root *html.Node) {
	var containers []*html.Node
	var collect func(*html.Node)
	collect = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode {
				switch c.Data {
				case "div", "section", "article":
					containers = append(containers, c)
				}
			}
			collect(c)
		}
	}
	collect(root)

	for _, container := range containers {
		attached := false
		for p := container.Parent; p != nil; p = p.Parent {
			if p == root {
				attached = true
				break
			}
		}
		if !attached {
			continue // already rewritten/removed by an ancestor pass
		}
		rewriteIfCounter(container)
	}
}

func rewriteIfCounter(container *html.Node) {
	children := elementChildren(container)
	if !qualifies(container, children) {
		return
	}

	var pairs []pair
	for _, child := range children {
		if p, ok := extractPair(child); ok {
			pairs = append(pairs, p)
		}
	}

	if len(pairs) < 3 {
		return
	}
	if isRatingWidget(pairs) {
		return
	}

	table := buildTable(pairs)
	container.Parent.InsertBefore(table, container)
	container.Parent.RemoveChild(container)
}

func qualifies(container *html.Node, children []*html.Node) bool {
	n := len(children)
	if n >= 3 && n <= 20 {
		return true
	}
	var buf bytes.Buffer
	if err := html.Render(&buf, container); err == nil && buf.Len() > 1000 {
		return elementorCounterHint.MatchString(classAttr(container)) || hasElementorCounterDescendant(container)
	}
	return false
}

func hasElementorCounterDescendant(n *html.Node) bool {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode && elementorCounterHint.MatchString(classAttr(c)) {
			return true
		}
		if hasElementorCounterDescendant(c) {
			return true
		}
	}
	return false
}

// extractPair tries the five patterns from §4.4 in order.
func extractPair(child *html.Node) (pair, bool) {
	// Pattern 1: counter-number / counter-title classes
	if numEl := findByClass(child, counterNumberClass); numEl != nil {
		if labEl := findByClass(child, counterTitleClass); labEl != nil {
			value := strings.TrimSpace(text(numEl))
			label := strings.TrimSpace(text(labEl))
			if valuePrefixPattern.MatchString(value) && len(label) < 40 {
				return pair{value, label}, true
			}
		}
	}

	// Pattern 2: generic number/count/value/stat + title/label/name/text
	if numEl := findByClass(child, genericNumberClass); numEl != nil {
		if labEl := findByClass(child, genericLabelClass); labEl != nil {
			value := strings.TrimSpace(text(numEl))
			label := strings.TrimSpace(text(labEl))
			if valuePrefixPattern.MatchString(value) && len(label) < 40 {
				return pair{value, label}, true
			}
		}
	}

	childText := strings.TrimSpace(text(child))

	// Pattern 3: whole-text "123+ Label"
	if m := valueLabelPattern.FindStringSubmatch(childText); m != nil && len(m[2]) < 40 {
		return pair{strings.TrimSpace(m[1]), strings.TrimSpace(m[2])}, true
	}

	// Pattern 4: child is pure numeric token, pair with a non-numeric sibling
	if valueWholePattern.MatchString(childText) {
		for sib := child.NextSibling; sib != nil; sib = sib.NextSibling {
			if sib.Type != html.ElementNode {
				continue
			}
			sibText := strings.TrimSpace(text(sib))
			if sibText != "" && len(sibText) < 40 && !valuePrefixPattern.MatchString(sibText) {
				return pair{childText, sibText}, true
			}
		}
		for sib := child.PrevSibling; sib != nil; sib = sib.PrevSibling {
			if sib.Type != html.ElementNode {
				continue
			}
			sibText := strings.TrimSpace(text(sib))
			if sibText != "" && len(sibText) < 40 && !valuePrefixPattern.MatchString(sibText) {
				return pair{childText, sibText}, true
			}
		}
		if child.Parent != nil {
			for _, other := range elementChildren(child.Parent) {
				if other == child {
					continue
				}
				otherText := strings.TrimSpace(text(other))
				if otherText != "" && len(otherText) < 40 && !valuePrefixPattern.MatchString(otherText) {
					return pair{childText, otherText}, true
				}
			}
		}
	}

	// Pattern 5: child is a short non-numeric label; a sibling is pure numeric
	if childText != "" && len(childText) < 40 && !valuePrefixPattern.MatchString(childText) {
		for sib := child.NextSibling; sib != nil; sib = sib.NextSibling {
			if sib.Type != html.ElementNode {
				continue
			}
			sibText := strings.TrimSpace(text(sib))
			if valueWholePattern.MatchString(sibText) {
				return pair{sibText, childText}, true
			}
		}
		for sib := child.PrevSibling; sib != nil; sib = sib.PrevSibling {
			if sib.Type != html.ElementNode {
				continue
			}
			sibText := strings.TrimSpace(text(sib))
			if valueWholePattern.MatchString(sibText) {
				return pair{sibText, childText}, true
			}
		}
	}

	return pair{}, false
}

// isRatingWidget excludes single-value rating widgets: all labels contain
// "rating" and every value is identical.
func isRatingWidget(pairs []pair) bool {
	allRating := true
	uniqueValues := map[string]bool{}
	for _, p := range pairs {
		if !strings.Contains(strings.ToLower(p.label), "rating") {
			allRating = false
		}
		uniqueValues[p.value] = true
	}
	return allRating && len(uniqueValues) == 1
}

func buildTable(pairs []pair) *html.Node {
	table := &html.Node{Type: html.ElementNode, Data: "table", DataAtom: 0}
	tbody := &html.Node{Type: html.ElementNode, Data: "tbody"}
	table.AppendChild(tbody)
	for _, p := range pairs {
		tr := &html.Node{Type: html.ElementNode, Data: "tr"}
		tbody.AppendChild(tr)
		tr.AppendChild(tdWithText(p.value))
		tr.AppendChild(tdWithText(p.label))
	}
	return table
}

func tdWithText(s string) *html.Node {
	td := &html.Node{Type: html.ElementNode, Data: "td"}
	td.AppendChild(&html.Node{Type: html.TextNode, Data: s})
	return td
}

func findByClass(root *html.Node, pattern *regexp.Regexp) *html.Node {
	var found *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if found != nil {
			return
		}
		if n.Type == html.ElementNode && pattern.MatchString(classAttr(n)) {
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

func elementChildren(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
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
	for _, a := range n.Attr {
		if a.Key == "class" {
			return a.Val
		}
	}
	return ""
}
