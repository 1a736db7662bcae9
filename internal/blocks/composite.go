package blocks

import (
	"sort"
	"strings"

	"github.com/hr95savage/semantic-blocks/internal/classify"
	"github.com/hr95savage/semantic-blocks/internal/document"
	"golang.org/x/net/html"
)

var faqQuestionWords = []string{
	"what", "who", "where", "when", "why", "how",
	"can", "do", "does", "is", "are", "will", "would",
}

const insufficientEvidenceText = "Insufficient evidence: answer container not found in DOM"

func looksLikeFAQQuestion(title string) bool {
	t := strings.TrimSpace(title)
	if t == "" {
		return false
	}
	if strings.HasSuffix(t, "?") {
		return true
	}
	lower := strings.ToLower(t)
	for _, w := range faqQuestionWords {
		if lower == w || strings.HasPrefix(lower, w+" ") {
			return true
		}
	}
	return false
}

func isAriaDisclosure(elem *html.Node) bool {
	if attrVal(elem, "aria-expanded") != "" {
		return true
	}
	return attrVal(elem, "aria-controls") != "" && attrVal(elem, "role") != "tab"
}

func isAriaTablist(elem *html.Node) bool {
	return attrVal(elem, "role") == "tablist"
}

// extractDetails handles a <details> element: title from <summary>, content
// from recursive extraction of the remaining children (§4.6).
func (w *Walker) extractDetails(elem *html.Node, ctx Context) (document.Block, bool) {
	var summaryNode *html.Node
	for _, c := range elementChildren(elem) {
		if c.Data == "summary" {
			summaryNode = c
			break
		}
	}
	title := ""
	if summaryNode != nil {
		title = collapseWhitespace(visibleText(summaryNode))
	}

	var content []document.Block
	for _, c := range elementChildren(elem) {
		if c == summaryNode {
			continue
		}
		if classify.IsButtonLike(c, w.dropBreakpointHidden) {
			if block, ok := extractCTA(c, w.canonicalURL); ok {
				content = append(content, block)
			}
			continue
		}
		content = append(content, w.Walk(c, ctx)...)
	}
	if len(content) == 0 {
		content = []document.Block{document.Paragraph{Text: insufficientEvidenceText}}
	}

	if looksLikeFAQQuestion(title) {
		return document.FAQ{Question: title, AnswerBlocks: content}, true
	}
	return document.Accordion{Title: title, ContentBlocks: content}, true
}

// extractDisclosure handles an aria-expanded/aria-controls toggle whose
// panel is resolved via the id index, an Elementor sibling convention, or a
// following-sibling heuristic (§4.6).
func (w *Walker) extractDisclosure(elem *html.Node, ctx Context) (document.Block, bool) {
	title := collapseWhitespace(visibleText(elem))

	var panel *html.Node
	if id := attrVal(elem, "aria-controls"); id != "" {
		panel = w.idIndex[id]
	}
	if panel == nil && elem.Parent != nil {
		for _, sib := range elementChildren(elem.Parent) {
			if sib == elem {
				continue
			}
			if strings.Contains(classAttr(sib), "elementor-accordion-content") {
				panel = sib
				break
			}
		}
	}
	if panel == nil {
		for sib := elem.NextSibling; sib != nil; sib = sib.NextSibling {
			if sib.Type != html.ElementNode {
				continue
			}
			if looksLikePanel(sib) {
				panel = sib
			}
			break
		}
	}

	var content []document.Block
	if panel != nil {
		content = w.walkChildren(panel, ctx)
	}
	if len(content) == 0 {
		content = []document.Block{document.Paragraph{Text: insufficientEvidenceText}}
	}

	if looksLikeFAQQuestion(title) {
		return document.FAQ{Question: title, AnswerBlocks: content}, true
	}
	return document.Accordion{Title: title, ContentBlocks: content}, true
}

func looksLikePanel(n *html.Node) bool {
	if attrVal(n, "role") == "region" {
		return true
	}
	class := classAttr(n)
	if strings.Contains(class, "panel") || strings.Contains(class, "content") || strings.Contains(class, "answer") {
		return true
	}
	switch n.Data {
	case "div", "section", "article":
		return true
	}
	return false
}

// extractAriaTabset handles role="tablist": tabs come from role="tab"
// descendants (or class-based fallback), panels are resolved by
// aria-controls/data-target/data-tab, then aria-labelledby, then position
// among role="tabpanel" elements in the main-content subtree (§4.6).
func (w *Walker) extractAriaTabset(elem *html.Node) (document.Block, bool) {
	tabs := findAllByRole(elem, "tab")
	if len(tabs) == 0 {
		for _, c := range elementChildren(elem) {
			if strings.Contains(classAttr(c), "tab") {
				tabs = append(tabs, c)
			}
		}
	}
	if len(tabs) < 2 {
		return nil, false
	}

	var allPanels []*html.Node
	if w.mainContentRoot != nil {
		allPanels = findAllByRole(w.mainContentRoot, "tabpanel")
	}

	var result []document.Tab
	for i, tab := range tabs {
		title := collapseWhitespace(visibleText(tab))
		panel := w.resolveTabPanel(tab, allPanels, i)

		var content []document.Block
		if panel != nil {
			content = w.extractPanelBlocks(panel, Context{})
			w.markConsumed(panel)
		}
		result = append(result, document.Tab{Title: title, ContentBlocks: content})
	}
	if len(result) < 2 {
		return nil, false
	}
	return document.Tabset{Tabs: result}, true
}

func (w *Walker) resolveTabPanel(tab *html.Node, allPanels []*html.Node, index int) *html.Node {
	for _, key := range []string{"aria-controls", "data-target", "data-tab"} {
		if raw := attrVal(tab, key); raw != "" {
			id := strings.TrimPrefix(raw, "#")
			if target, ok := w.idIndex[id]; ok {
				return target
			}
		}
	}
	if tabID := attrVal(tab, "id"); tabID != "" {
		for _, p := range allPanels {
			if attrVal(p, "aria-labelledby") == tabID {
				return p
			}
		}
	}
	if index >= 0 && index < len(allPanels) {
		return allPanels[index]
	}
	return nil
}

type pseudoAnchor struct {
	node   *html.Node
	text   string
	target *html.Node
}

var pseudoTabsetContainerTags = map[string]bool{
	"div": true, "section": true, "article": true, "nav": true, "ul": true, "ol": true, "p": true,
}

// detectPseudoTabset finds an anchor cluster whose href targets live inside
// the main-content id index, and resolves the shared container (§4.6). The
// caller only emits a tabset when the returned container equals the element
// currently being walked.
func detectPseudoTabset(elem *html.Node, idIndex map[string]*html.Node) (container *html.Node, anchors []pseudoAnchor, ok bool) {
	if !pseudoTabsetContainerTags[elem.Data] {
		return nil, nil, false
	}

	candidates := anchorsWithIndexedTargets(elementChildren(elem), idIndex)
	if len(candidates) < 2 {
		candidates = anchorsWithIndexedTargets(findAll(elem, "a"), idIndex)
	}
	if len(candidates) < 2 || len(candidates) > 8 {
		return nil, nil, false
	}

	targets := map[string]bool{}
	for _, a := range candidates {
		targets[strings.TrimPrefix(attrVal(a, "href"), "#")] = true
	}
	if len(targets) < 2 {
		return nil, nil, false
	}

	chosen := largestGroupByKey(candidates, func(a *html.Node) *html.Node { return a.Parent })
	if len(chosen) < 2 {
		chosen = largestGroupByKey(candidates, func(a *html.Node) *html.Node {
			if a.Parent == nil {
				return nil
			}
			return a.Parent.Parent
		})
	}
	if len(chosen) < 2 {
		return nil, nil, false
	}

	lca := findLowestCommonAncestor(chosen, 5)
	if lca == nil {
		if containsAll(elem, chosen) {
			lca = elem
		} else {
			return nil, nil, false
		}
	}

	var result []pseudoAnchor
	for _, a := range chosen {
		id := strings.TrimPrefix(attrVal(a, "href"), "#")
		result = append(result, pseudoAnchor{
			node:   a,
			text:   collapseWhitespace(visibleText(a)),
			target: idIndex[id],
		})
	}
	sortByDocumentOrder(result, lca)

	return lca, result, true
}

func anchorsWithIndexedTargets(nodes []*html.Node, idIndex map[string]*html.Node) []*html.Node {
	var out []*html.Node
	for _, n := range nodes {
		if n.Data != "a" {
			continue
		}
		href := attrVal(n, "href")
		if !strings.HasPrefix(href, "#") {
			continue
		}
		id := strings.TrimPrefix(href, "#")
		if id == "" {
			continue
		}
		if _, exists := idIndex[id]; exists {
			out = append(out, n)
		}
	}
	return out
}

func largestGroupByKey(nodes []*html.Node, keyOf func(*html.Node) *html.Node) []*html.Node {
	groups := map[*html.Node][]*html.Node{}
	for _, n := range nodes {
		k := keyOf(n)
		if k == nil {
			continue
		}
		groups[k] = append(groups[k], n)
	}
	var best []*html.Node
	for _, g := range groups {
		if len(g) >= 2 && len(g) > len(best) {
			best = g
		}
	}
	return best
}

func findLowestCommonAncestor(nodes []*html.Node, maxLevels int) *html.Node {
	if len(nodes) == 0 || nodes[0].Parent == nil {
		return nil
	}
	anc := nodes[0].Parent
	for i := 0; i < maxLevels && anc != nil; i++ {
		if containsAll(anc, nodes) {
			return anc
		}
		anc = anc.Parent
	}
	return nil
}

func containsNode(ancestor, n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p == ancestor {
			return true
		}
	}
	return false
}

func containsAll(ancestor *html.Node, nodes []*html.Node) bool {
	for _, n := range nodes {
		if !containsNode(ancestor, n) {
			return false
		}
	}
	return true
}

func sortByDocumentOrder(anchors []pseudoAnchor, root *html.Node) {
	order := map[*html.Node]int{}
	i := 0
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			if _, exists := order[n]; !exists {
				order[n] = i
				i++
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	sort.SliceStable(anchors, func(i, j int) bool {
		return order[anchors[i].node] < order[anchors[j].node]
	})
}

// buildPseudoTabset extracts each anchor's target panel in isolation, drops
// any content block whose text duplicates the anchor's own title, and marks
// each panel consumed so the top-level walk skips it afterward (§4.6).
func (w *Walker) buildPseudoTabset(anchors []pseudoAnchor) (document.Block, bool) {
	var tabs []document.Tab
	for _, a := range anchors {
		if a.target == nil {
			continue
		}
		content := w.extractPanelBlocks(a.target, Context{})
		filtered := content[:0:0]
		for _, b := range content {
			if blockTextEquals(b, a.text) {
				continue
			}
			filtered = append(filtered, b)
		}
		tabs = append(tabs, document.Tab{Title: a.text, ContentBlocks: filtered})
		w.markConsumed(a.target)
	}
	if len(tabs) < 2 {
		return nil, false
	}
	return document.Tabset{Tabs: tabs}, true
}

func blockTextEquals(b document.Block, text string) bool {
	switch v := b.(type) {
	case document.Heading:
		return v.Text == text
	case document.Paragraph:
		return v.Text == text
	}
	return false
}

func findAllByRole(root *html.Node, role string) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && attrVal(n, "role") == role {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}
