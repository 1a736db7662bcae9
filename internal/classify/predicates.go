package classify

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/net/html"
)

// buttonClassPatterns identify explicit button styling on an <a>.
var buttonClassPatterns = []string{
	"button", "btn", "elementor-button", "wp-block-button__link",
	"wp-element-button", "cta", "call-to-action",
}

var navClassPatterns = []string{"nav", "navigation", "menu", "link-list", "location", "city", "blog-link"}

var (
	navTextPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)^read more`),
		regexp.MustCompile(`(?i)^read full`),
		regexp.MustCompile(`^\d{1,2}[/-]\d{1,2}[/-]\d{2,4}`),
		regexp.MustCompile(`(?i)^page \d+`),
		regexp.MustCompile(`(?i)^next`),
		regexp.MustCompile(`(?i)^previous`),
		regexp.MustCompile(`(?i)^prev`),
	}
	locationPattern   = regexp.MustCompile(`^[A-Z][a-z]+(?: [A-Z][a-z]+)?,\s*(?:[A-Z]{2}|[A-Z][a-z]+)$`)
	apiEndpointPats   = []*regexp.Regexp{regexp.MustCompile(`trustindex\.io/api/`), regexp.MustCompile(`/api/`), regexp.MustCompile(`api\.`)}
	contactHrefPats   = []string{"/contact", "/quote", "tel:", "mailto:"}
	sentenceMidPunct  = regexp.MustCompile(`[.!?].+[.!?]`)
	blogURLPatterns   = []*regexp.Regexp{regexp.MustCompile(`/\d{4}/\d{2}/\d{2}/`), regexp.MustCompile(`/blog/`), regexp.MustCompile(`/posts/`)}
	blogLinkHrefPats  = []string{"/blog/", "/post/", "/article/", "/news/"}
	blogLinkYearPat   = regexp.MustCompile(`/\d{4}/`)
	blogHeadingWords  = []string{"blog", "latest posts", "news", "recent posts", "articles"}
	monthDatePattern  = regexp.MustCompile(`(?i)\b(january|february|march|april|may|june|july|august|september|october|november|december)\s+\d{1,2},?\s+\d{4}\b`)
	isoDatePattern    = regexp.MustCompile(`\d{4}[/-]\d{1,2}[/-]\d{1,2}`)
)

// IsBlogPostPage reports whether sourceURL looks like an individual blog
// post (as opposed to a landing/marketing page that might merely embed a
// blog feed widget).
func IsBlogPostPage(sourceURL string) bool {
	lower := strings.ToLower(sourceURL)
	for _, p := range blogURLPatterns {
		if p.MatchString(lower) {
			return true
		}
	}
	return false
}

// IsNavContainer reports whether elem is a navigation landmark: <nav>,
// role="navigation", or a class matching nav-/navbar/menu-/navigation.
func IsNavContainer(elem *html.Node) bool {
	if elem.Type != html.ElementNode {
		return false
	}
	if elem.Data == "nav" {
		return true
	}
	if attrVal(elem, "role") == "navigation" {
		return true
	}
	class := classAttr(elem)
	for _, pat := range []string{"nav-", "navbar", "menu-", "navigation"} {
		if strings.Contains(class, pat) {
			return true
		}
	}
	return false
}

// IsBlogFeedSection reports whether elem looks like a blog feed/listing
// widget: needs ≥2 of 4 weak indicators (heading keywords, repeated dates,
// repeated blog-style links, repeating card structure).
func IsBlogFeedSection(elem *html.Node) bool {
	if elem.Type != html.ElementNode {
		return false
	}
	switch elem.Data {
	case "div", "section", "article":
	default:
		return false
	}

	indicators := 0

	if headingHasBlogKeyword(elem) {
		indicators++
	}

	children := elementChildren(elem)

	dateCount := 0
	for i, c := range children {
		if i >= 10 {
			break
		}
		text := visibleText(c)
		if monthDatePattern.MatchString(text) || isoDatePattern.MatchString(text) {
			dateCount++
		}
	}
	if dateCount >= 2 {
		indicators++
	}

	blogLinkCount := 0
	links := findAll(elem, "a")
	for i, link := range links {
		if i >= 10 {
			break
		}
		href := strings.ToLower(attrVal(link, "href"))
		matched := blogLinkYearPat.MatchString(href)
		if !matched {
			for _, pat := range blogLinkHrefPats {
				if strings.Contains(href, pat) {
					matched = true
					break
				}
			}
		}
		if matched {
			blogLinkCount++
		}
	}
	if blogLinkCount >= 2 {
		indicators++
	}

	if len(children) >= 3 {
		sample := children
		if len(sample) > 5 {
			sample = sample[:5]
		}
		tagSet := map[string]bool{}
		for _, c := range sample {
			tagSet[c.Data] = true
		}
		if len(tagSet) == 1 {
			classSet := map[string]bool{}
			for _, c := range sample {
				classSet[sortedClassKey(c)] = true
			}
			if len(classSet) <= 2 {
				indicators++
			}
		}
	}

	return indicators >= 2
}

func headingHasBlogKeyword(elem *html.Node) bool {
	for _, h := range findAll(elem, "h1", "h2", "h3", "h4", "h5", "h6") {
		text := strings.ToLower(visibleText(h))
		for _, kw := range blogHeadingWords {
			if strings.Contains(text, kw) {
				return true
			}
		}
	}
	return false
}

func sortedClassKey(n *html.Node) string {
	fields := strings.Fields(classAttr(n))
	sort.Strings(fields)
	return strings.Join(fields, " ")
}

// IsNavigationLink reports whether an <a> is a navigation link rather than
// a CTA candidate (§4.5).
func IsNavigationLink(elem *html.Node) bool {
	if elem.Type != html.ElementNode || elem.Data != "a" {
		return false
	}

	for p := elem.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && (p.Data == "ul" || p.Data == "ol") {
			parentClass := classAttr(p)
			if strings.Contains(parentClass, "button") || strings.Contains(parentClass, "btn-group") {
				return false
			}
			return true
		}
	}

	text := strings.TrimSpace(visibleText(elem))
	for _, pat := range navTextPatterns {
		if pat.MatchString(strings.ToLower(text)) {
			return true
		}
	}
	if locationPattern.MatchString(text) {
		return true
	}

	if elem.Parent != nil {
		var siblings []*html.Node
		for c := elem.Parent.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.Data == "a" {
				siblings = append(siblings, c)
			}
		}
		if len(siblings) > 3 {
			similar := 0
			for _, sib := range siblings {
				sibText := strings.TrimSpace(visibleText(sib))
				if locationPattern.MatchString(sibText) {
					similar++
				} else if len(sibText) > 0 && absInt(len(sibText)-len(text)) < 5 {
					similar++
				}
			}
			if similar >= 3 {
				return true
			}
		}
	}

	class := classAttr(elem)
	for _, nc := range navClassPatterns {
		if strings.Contains(class, nc) {
			return true
		}
	}
	return false
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// IsButtonLike reports whether elem qualifies as a CTA control (§4.5).
// dropBreakpointHidden is forwarded to the visibility check.
func IsButtonLike(elem *html.Node, dropBreakpointHidden bool) bool {
	if elem.Type != html.ElementNode {
		return false
	}
	if IsVisuallyHidden(elem, dropBreakpointHidden) {
		return false
	}

	insideForm := false
	for p := elem.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.Data == "form" {
			insideForm = true
			break
		}
	}

	if insideForm {
		switch elem.Data {
		case "a":
			href := strings.ToLower(attrVal(elem, "href"))
			if !hrefMatchesAny(href, contactHrefPats) {
				return false
			}
		case "button":
			btnType := strings.ToLower(attrVal(elem, "type"))
			if btnType == "submit" || btnType == "reset" {
				return false
			}
		default:
			return false
		}
	}

	if elem.Data == "a" {
		href := strings.ToLower(attrVal(elem, "href"))
		if href != "" && matchesAPIEndpoint(href) {
			return false
		}
	}

	if elem.Data == "button" {
		btnType := strings.ToLower(attrVal(elem, "type"))
		return btnType != "submit" && btnType != "reset"
	}

	if attrVal(elem, "role") == "button" {
		if elem.Data == "a" {
			href := strings.ToLower(attrVal(elem, "href"))
			if href != "" && matchesAPIEndpoint(href) {
				return false
			}
		}
		return true
	}

	if elem.Data == "a" {
		if IsNavigationLink(elem) {
			return false
		}
		text := strings.TrimSpace(visibleText(elem))
		if len(text) > 60 {
			return false
		}
		if sentenceMidPunct.MatchString(text) {
			return false
		}
		if len(findAll(elem, "p")) > 0 || len(findAll(elem, "h1", "h2", "h3", "h4", "h5", "h6")) > 0 {
			return false
		}

		class := classAttr(elem)
		hasButtonClass := false
		for _, pat := range buttonClassPatterns {
			if strings.Contains(class, pat) {
				hasButtonClass = true
				break
			}
		}
		hasActionAttr := attrVal(elem, "data-action") != "" || attrVal(elem, "data-cta") != ""
		return hasButtonClass || hasActionAttr
	}

	return false
}

func matchesAPIEndpoint(href string) bool {
	for _, p := range apiEndpointPats {
		if p.MatchString(href) {
			return true
		}
	}
	return false
}

func hrefMatchesAny(href string, patterns []string) bool {
	for _, p := range patterns {
		if strings.Contains(href, p) {
			return true
		}
	}
	return false
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

func findAll(root *html.Node, tags ...string) []*html.Node {
	want := map[string]bool{}
	for _, t := range tags {
		want[t] = true
	}
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && want[n.Data] {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}
