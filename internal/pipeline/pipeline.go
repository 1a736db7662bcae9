// Package pipeline wires the extraction stages into the single pure
// Extract function the rest of the module calls (§5).
package pipeline

import (
	"time"

	"github.com/hr95savage/semantic-blocks/internal/blocks"
	"github.com/hr95savage/semantic-blocks/internal/classify"
	"github.com/hr95savage/semantic-blocks/internal/config"
	"github.com/hr95savage/semantic-blocks/internal/contentselect"
	"github.com/hr95savage/semantic-blocks/internal/counter"
	"github.com/hr95savage/semantic-blocks/internal/document"
	"github.com/hr95savage/semantic-blocks/internal/htmldom"
	"github.com/hr95savage/semantic-blocks/internal/metadata"
	"github.com/hr95savage/semantic-blocks/internal/postprocess"
	"github.com/hr95savage/semantic-blocks/internal/prune"
	"github.com/hr95savage/semantic-blocks/internal/validate"
	"github.com/hr95savage/semantic-blocks/pkg/hashutil"
	"golang.org/x/net/html"
)

// selection is the shared output of parsing, main-content selection and
// tree mutation (prune + counter rewrite) that both Extract and
// ExtractWithPreview build on.
type selection struct {
	mainRoot *html.Node
	source   htmldom.Source
}

func selectAndPrune(htmlStr string, cfg config.Config, sink metadata.MetadataSink) selection {
	parser := htmldom.NewParser(sink)
	parsed := parser.Parse(htmlStr)

	mainRoot := contentselect.Select(parsed.DocumentRoot, cfg.CustomDocSelectors(), cfg.DropBreakpointHidden())
	prune.Prune(mainRoot, cfg.DropBreakpointHidden())
	counter.DetectAndRewrite(mainRoot)

	return selection{mainRoot: mainRoot, source: parsed.Source}
}

func extractFromSelection(sel selection, htmlStr, sourceURL string, cfg config.Config, sink metadata.MetadataSink) document.Document {
	start := time.Now()

	idIndex := htmldom.BuildIDIndex(sel.mainRoot)
	isBlogPostPage := classify.IsBlogPostPage(sourceURL)

	canonicalURL := sel.source.Canonical
	if canonicalURL == "" {
		canonicalURL = sourceURL
	}

	walker := blocks.NewWalker(idIndex, sel.mainRoot, canonicalURL, cfg.DropBreakpointHidden(), cfg.DropBlogFeedsOnNonBlogPages(), isBlogPostPage)
	out := walker.Extract()

	out = postprocess.AnnotateEyebrows(out, cfg.EyebrowMode())
	if cfg.DropBlogFeedsOnNonBlogPages() && !isBlogPostPage {
		out = postprocess.RemoveBlogFeedRuns(out)
	}
	out = postprocess.GridFallback(out)
	out = postprocess.Dedupe(out)

	out, validation := validate.Validate(out)

	doc := document.Document{
		Source: document.Source{
			URL:             sourceURL,
			Title:           sel.source.Title,
			Canonical:       canonicalURL,
			MetaDescription: sel.source.MetaDescription,
		},
		Blocks:     out,
		Validation: validation,
	}

	contentHash, err := hashutil.HashBytes([]byte(htmlStr), hashutil.HashAlgoSHA256)
	if err != nil {
		contentHash = ""
	}
	sink.RecordExtraction(metadata.NewExtractionEvent(
		sourceURL, time.Since(start), len(doc.Blocks), validation.H1Count, string(validation.Status), contentHash,
	))

	return doc
}

// Extract turns rendered HTML into a Document. sourceURL is the page's own
// URL (used for blog-post classification and as the fallback canonical URL
// when the page declares none; relative CTA hrefs are resolved against that
// canonical URL); it is never fetched, only used as a string (§5, §9 "pure
// function" design note).
func Extract(htmlStr, sourceURL string, cfg config.Config, sink metadata.MetadataSink) document.Document {
	sel := selectAndPrune(htmlStr, cfg, sink)
	return extractFromSelection(sel, htmlStr, sourceURL, cfg, sink)
}

// ExtractWithPreview runs the same stages as Extract and additionally
// returns the pruned main-content subtree, for callers that want a Markdown
// preview (internal/preview) alongside the JSON document. The preview
// rendering itself is never part of Extract's pure contract.
func ExtractWithPreview(htmlStr, sourceURL string, cfg config.Config, sink metadata.MetadataSink) (document.Document, *html.Node) {
	sel := selectAndPrune(htmlStr, cfg, sink)
	doc := extractFromSelection(sel, htmlStr, sourceURL, cfg, sink)
	return doc, sel.mainRoot
}
