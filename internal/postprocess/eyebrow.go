package postprocess

import (
	"strings"
	"unicode"

	"github.com/hr95savage/semantic-blocks/internal/config"
	"github.com/hr95savage/semantic-blocks/internal/document"
)

var sentencePunct = []rune{'.', '!', '?'}

func hasLetter(s string) bool {
	for _, r := range s {
		if unicode.IsLetter(r) {
			return true
		}
	}
	return false
}

func hasSentencePunct(s string) bool {
	for _, p := range sentencePunct {
		if strings.ContainsRune(s, p) {
			return true
		}
	}
	return false
}

func looksLikeEyebrowText(text string) bool {
	if len([]rune(text)) >= 40 {
		return false
	}
	if !hasLetter(text) {
		return false
	}
	return !hasSentencePunct(text)
}

func isBreakingKind(b document.Block) bool {
	switch b.(type) {
	case document.List, document.Table, document.FAQ, document.Accordion:
		return true
	}
	return false
}

func isHeadingLevel(b document.Block, levels ...int) bool {
	h, ok := b.(document.Heading)
	if !ok {
		return false
	}
	for _, l := range levels {
		if h.Level == l {
			return true
		}
	}
	return false
}

// AnnotateEyebrows runs the two coercion passes and the paragraph-eyebrow
// pass described in §4.8. mode==keep is a no-op.
func AnnotateEyebrows(blocks []document.Block, mode config.EyebrowMode) []document.Block {
	if mode == config.EyebrowKeep {
		return blocks
	}

	out := coerceH5H6(blocks, mode, func(i int, blocks []document.Block) bool {
		return i+1 >= len(blocks) || !isKind[document.Paragraph](blocks[i+1])
	})
	out = annotateEyebrowParagraphs(out, mode)
	out = coerceH5H6(out, mode, func(i int, blocks []document.Block) bool {
		return i+1 < len(blocks) && isHeadingLevel(blocks[i+1], 2, 3)
	})
	return out
}

func isKind[T any](b document.Block) bool {
	_, ok := b.(T)
	return ok
}

func coerceH5H6(blocks []document.Block, mode config.EyebrowMode, eligible func(i int, blocks []document.Block) bool) []document.Block {
	var out []document.Block
	for i, b := range blocks {
		h, ok := b.(document.Heading)
		if !ok || (h.Level != 5 && h.Level != 6) {
			out = append(out, b)
			continue
		}
		if !looksLikeEyebrowText(h.Text) || !eligible(i, blocks) {
			out = append(out, b)
			continue
		}
		if mode == config.EyebrowDrop {
			continue
		}
		out = append(out, document.Paragraph{Text: h.Text, Meta: &document.Meta{Role: document.RoleEyebrow}})
	}
	return out
}

func annotateEyebrowParagraphs(blocks []document.Block, mode config.EyebrowMode) []document.Block {
	var out []document.Block
	for i, b := range blocks {
		p, ok := b.(document.Paragraph)
		if !ok || !looksLikeEyebrowText(p.Text) {
			out = append(out, b)
			continue
		}
		if i+1 >= len(blocks) || !isHeadingLevel(blocks[i+1], 2, 3) {
			out = append(out, b)
			continue
		}
		recentlyBroken := false
		for back := 1; back <= 2; back++ {
			if i-back < 0 {
				break
			}
			if isBreakingKind(blocks[i-back]) {
				recentlyBroken = true
				break
			}
		}
		if recentlyBroken {
			out = append(out, b)
			continue
		}
		if mode == config.EyebrowDrop {
			continue
		}
		out = append(out, document.Paragraph{Text: p.Text, Meta: &document.Meta{Role: document.RoleEyebrow}})
	}
	return out
}
