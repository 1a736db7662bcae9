package contentselect

// knownDocSelectors are framework-specific content-container selectors,
// always tried as an escape-hatch layer before the text-density scoring
// pass; custom_doc_selectors (§6) are appended after them. Frameworks are
// tried in frameworkOrder, generic first.
var knownDocSelectors = map[string][]string{
	"generic": {
		".content", ".doc-content", ".markdown-body", "#docs-content",
		".rst-content", ".theme-doc-markdown", ".md-content",
	},
	"docusaurus": {".theme-doc-markdown", ".docMainContainer"},
	"gitbook":    {".book-body", ".markdown-section"},
	"mkdocs":     {".md-content", ".md-main__inner"},
	"sphinx":     {".rst-content", ".document"},
	"vuepress":   {".theme-default-content", ".content__default"},
}

var frameworkOrder = []string{"generic", "docusaurus", "sphinx", "mkdocs", "gitbook", "vuepress"}

// mergedKnownSelectors returns the flattened, prioritized default selector
// list merged with custom selectors, deduplicated.
func mergedKnownSelectors(custom []string) []string {
	seen := make(map[string]bool)
	var out []string
	add := func(sel string) {
		if !seen[sel] {
			seen[sel] = true
			out = append(out, sel)
		}
	}
	for _, fw := range frameworkOrder {
		for _, sel := range knownDocSelectors[fw] {
			add(sel)
		}
	}
	for _, sel := range custom {
		add(sel)
	}
	return out
}
