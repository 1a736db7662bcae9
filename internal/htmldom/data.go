package htmldom

import "golang.org/x/net/html"

// ParseResult holds the parsed tree plus the metadata pulled from it before
// any pruning pass runs.
type ParseResult struct {
	DocumentRoot *html.Node
	Source       Source
}

// Source mirrors document.Source field-for-field; it is extracted straight
// from the parsed tree, not from the caller, except for URL which the
// caller supplies (the core never fetches).
type Source struct {
	Title           string
	Canonical       string
	MetaDescription string
}

// IDIndex is a lookup table from element id attribute to node, scoped to a
// single subtree (main-content). Its lifetime is bounded by that subtree.
type IDIndex map[string]*html.Node
