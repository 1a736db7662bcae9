package postprocess

import (
	"strings"

	"github.com/hr95savage/semantic-blocks/internal/document"
)

func containsBlogKeyword(text string) bool {
	lower := strings.ToLower(text)
	return strings.Contains(lower, "blog") || strings.Contains(lower, "posts")
}

// RemoveBlogFeedRuns drops an H2-delimited run that starts with an H2
// containing "blog"/"posts" and continues until the next H2 that does not
// (§4.8). Only called on non-blog-post pages.
func RemoveBlogFeedRuns(blocks []document.Block) []document.Block {
	var out []document.Block
	inRun := false
	for _, b := range blocks {
		if h, ok := b.(document.Heading); ok && h.Level == 2 {
			if containsBlogKeyword(h.Text) {
				inRun = true
				continue
			}
			if inRun {
				inRun = false
			}
		}
		if inRun {
			continue
		}
		out = append(out, b)
	}
	return out
}
