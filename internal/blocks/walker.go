// Package blocks implements the recursive block extractor: the single walk
// that turns a pruned main-content subtree into a flat, reading-order
// sequence of semantic blocks (§4.5).
package blocks

import (
	"github.com/hr95savage/semantic-blocks/internal/cardgrid"
	"github.com/hr95savage/semantic-blocks/internal/classify"
	"github.com/hr95savage/semantic-blocks/internal/document"
	"golang.org/x/net/html"
)

// Walker holds the state threaded across the whole walk: the id index used
// to resolve aria-controls/href-fragment targets, the set of panel nodes
// already consumed by a composite, and the handful of config flags that
// bear on block extraction.
type Walker struct {
	idIndex              map[string]*html.Node
	mainContentRoot       *html.Node
	canonicalURL          string
	dropBreakpointHidden  bool
	dropBlogFeeds         bool
	isBlogPostPage        bool
	consumed              map[*html.Node]bool
}

// NewWalker builds a Walker scoped to a single document extraction.
func NewWalker(idIndex map[string]*html.Node, mainContentRoot *html.Node, canonicalURL string, dropBreakpointHidden, dropBlogFeeds, isBlogPostPage bool) *Walker {
	return &Walker{
		idIndex:              idIndex,
		mainContentRoot:      mainContentRoot,
		canonicalURL:         canonicalURL,
		dropBreakpointHidden: dropBreakpointHidden,
		dropBlogFeeds:        dropBlogFeeds,
		isBlogPostPage:       isBlogPostPage,
		consumed:             map[*html.Node]bool{},
	}
}

// Extract walks mainContentRoot's children and returns the flattened block
// sequence in reading order.
func (w *Walker) Extract() []document.Block {
	return w.walkChildren(w.mainContentRoot, Context{})
}

// walkChildren iterates parent's children per the §4.5 step-7 rule: bare
// text nodes only contribute a paragraph when parent is a known text
// container, button-like elements emit a CTA and are not recursed into, and
// everything else is walked. This is also the entry point for a
// mainContentRoot's own children, so a top-level CTA is never missed.
func (w *Walker) walkChildren(parent *html.Node, ctx Context) []document.Block {
	childCtx := ctx.child(classify.IsNavContainer(parent))

	var out []document.Block
	for c := parent.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			if textContainerTags[parent.Data] {
				if block, ok := createParagraph(c.Data); ok {
					out = append(out, block)
				}
			}
		case html.ElementNode:
			if classify.IsButtonLike(c, w.dropBreakpointHidden) {
				if block, ok := extractCTA(c, w.canonicalURL); ok {
					out = append(out, block)
				}
				continue
			}
			out = append(out, w.Walk(c, childCtx)...)
		}
	}
	return out
}

// Walk processes a single node per the §4.5 dispatch order and returns the
// blocks it produced (zero, one, or several for composites/card grids).
func (w *Walker) Walk(elem *html.Node, ctx Context) []document.Block {
	if elem.Type != html.ElementNode {
		return nil
	}
	// 1. consumed-panel skip
	if w.isInConsumedPanel(elem) {
		return nil
	}
	// 2. hidden skip
	if classify.IsVisuallyHidden(elem, w.dropBreakpointHidden) {
		return nil
	}
	// 3. blog-feed skip on non-blog pages
	if w.dropBlogFeeds && !w.isBlogPostPage && classify.IsBlogFeedSection(elem) {
		return nil
	}

	// 4. interactive composites, in order: pseudo-tabset, ARIA tablist,
	// <details>, ARIA disclosure.
	if container, anchors, ok := detectPseudoTabset(elem, w.idIndex); ok && container == elem {
		if block, ok := w.buildPseudoTabset(anchors); ok {
			return []document.Block{block}
		}
	}
	if isAriaTablist(elem) {
		if block, ok := w.extractAriaTabset(elem); ok {
			return []document.Block{block}
		}
	}
	if elem.Data == "details" {
		if block, ok := w.extractDetails(elem, ctx); ok {
			return []document.Block{block}
		}
	}
	if isAriaDisclosure(elem) {
		if block, ok := w.extractDisclosure(elem, ctx); ok {
			return []document.Block{block}
		}
	}

	// 5. own block containers: emit and do not recurse.
	if block, ok := extractHeading(elem); ok {
		return []document.Block{block}
	}
	if elem.Data == "p" || isTextEditorDiv(elem) {
		if block, ok := createParagraph(visibleText(elem)); ok {
			return []document.Block{block}
		}
		return nil
	}
	if elem.Data == "ul" || elem.Data == "ol" {
		if block, ok := extractList(elem); ok {
			return []document.Block{block}
		}
		return nil
	}
	if elem.Data == "table" {
		if block, ok := extractTable(elem); ok {
			return []document.Block{block}
		}
		return nil
	}

	// 6. card-grid candidate
	if !ctx.InTabPanel && !ctx.InNav {
		if cgBlocks, ok := cardgrid.Detect(elem); ok {
			return cgBlocks
		}
	}

	// 7. iterate children
	return w.walkChildren(elem, ctx)
}

// extractPanelBlocks extracts a composite's panel with a fresh, isolated
// consumed-panel set (so intra-panel composites can themselves consume
// nodes without touching the outer walk's bookkeeping) and in_tab_panel=true.
func (w *Walker) extractPanelBlocks(panel *html.Node, ctx Context) []document.Block {
	saved := w.consumed
	w.consumed = map[*html.Node]bool{}
	defer func() { w.consumed = saved }()

	panelCtx := ctx
	panelCtx.InTabPanel = true
	return w.walkChildren(panel, panelCtx)
}

func (w *Walker) markConsumed(n *html.Node) {
	w.consumed[n] = true
}

func (w *Walker) isInConsumedPanel(elem *html.Node) bool {
	for n := elem; n != nil; n = n.Parent {
		if w.consumed[n] {
			return true
		}
	}
	return false
}
