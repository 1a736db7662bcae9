package htmldom

import (
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/hr95savage/semantic-blocks/internal/metadata"
	"golang.org/x/net/html"
)

/*
Responsibilities
- Wrap golang.org/x/net/html into a mutable element tree
- Extract page-level source metadata before any pruning runs
- Build the id->element lookup table scoped to a subtree

golang.org/x/net/html is lenient: it always produces a tree, even from
fragments or malformed markup, so Parse itself never fails here. A
*ParseError is only ever recorded for observability; the core still returns
a tree.
*/

type Parser struct {
	metadataSink metadata.MetadataSink
}

func NewParser(metadataSink metadata.MetadataSink) Parser {
	return Parser{metadataSink: metadataSink}
}

// Parse parses htmlStr into a document tree and extracts the source
// metadata from its head, before any mutation happens to the tree.
func (p Parser) Parse(htmlStr string) ParseResult {
	doc, err := html.Parse(strings.NewReader(htmlStr))
	if err != nil {
		// html.Parse only returns an error on a reader failure, which a
		// strings.Reader never produces; record it anyway and fall back
		// to an empty tree rather than panic.
		p.metadataSink.RecordError(
			time.Now(),
			"htmldom",
			"Parser.Parse",
			mapParseErrorToMetadataCause(&ParseError{Message: err.Error(), Cause: ErrCauseNotHTML}),
			err.Error(),
			nil,
		)
		doc, _ = html.Parse(strings.NewReader(""))
	}

	return ParseResult{
		DocumentRoot: doc,
		Source:       extractSourceMetadata(doc),
	}
}

// extractSourceMetadata pulls title, canonical link and meta description
// from the document head, before pruning starts.
func extractSourceMetadata(doc *html.Node) Source {
	gq := goquery.NewDocumentFromNode(doc)

	var src Source
	if title := gq.Find("title").First(); title.Length() > 0 {
		src.Title = strings.TrimSpace(title.Text())
	}

	if canonical, ok := gq.Find(`link[rel="canonical"]`).First().Attr("href"); ok {
		src.Canonical = canonical
	} else if ogURL, ok := gq.Find(`meta[property="og:url"]`).First().Attr("content"); ok {
		src.Canonical = ogURL
	}

	if desc, ok := gq.Find(`meta[name="description"]`).First().Attr("content"); ok {
		src.MetaDescription = desc
	} else if ogDesc, ok := gq.Find(`meta[property="og:description"]`).First().Attr("content"); ok {
		src.MetaDescription = ogDesc
	}

	return src
}

// BuildIDIndex indexes every descendant of root carrying an id attribute.
// The index is only valid for the lifetime of root's tree.
func BuildIDIndex(root *html.Node) IDIndex {
	idx := make(IDIndex)
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, a := range n.Attr {
				if a.Key == "id" && a.Val != "" {
					if _, exists := idx[a.Val]; !exists {
						idx[a.Val] = n
					}
					break
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return idx
}

// CloneSubtree deep-clones node and its descendants so downstream passes can
// mutate it in place without disturbing the source tree it was found in.
func CloneSubtree(node *html.Node) *html.Node {
	if node == nil {
		return nil
	}
	clone := &html.Node{
		Type:      node.Type,
		DataAtom:  node.DataAtom,
		Data:      node.Data,
		Namespace: node.Namespace,
	}
	if len(node.Attr) > 0 {
		clone.Attr = make([]html.Attribute, len(node.Attr))
		copy(clone.Attr, node.Attr)
	}
	for c := node.FirstChild; c != nil; c = c.NextSibling {
		clone.AppendChild(CloneSubtree(c))
	}
	return clone
}
