package postprocess

import "github.com/hr95savage/semantic-blocks/internal/document"

// GridFallback scans each H2-bounded section for ≥6 unique H4 headings
// (ignoring any nested inside composites, which never appear in the flat
// top-level slice) and collapses them into a single bullet list inserted at
// the first H4's position (§4.7).
func GridFallback(blocks []document.Block) []document.Block {
	var out []document.Block
	i := 0
	for i < len(blocks) {
		j := i + 1
		for j < len(blocks) {
			if h, ok := blocks[j].(document.Heading); ok && h.Level == 2 {
				break
			}
			j++
		}
		out = append(out, gridFallbackSection(blocks[i:j])...)
		i = j
	}
	return out
}

func gridFallbackSection(blocks []document.Block) []document.Block {
	type h4info struct {
		idx  int
		text string
	}
	var h4s []h4info
	for i, b := range blocks {
		if h, ok := b.(document.Heading); ok && h.Level == 4 {
			h4s = append(h4s, h4info{i, h.Text})
		}
	}

	uniq := map[string]bool{}
	for _, h := range h4s {
		uniq[h.text] = true
	}
	if len(uniq) < 6 {
		return blocks
	}

	toRemove := map[int]bool{}
	var titles []string
	seen := map[string]bool{}
	for _, h := range h4s {
		toRemove[h.idx] = true
		if h.idx+1 < len(blocks) {
			if _, ok := blocks[h.idx+1].(document.Paragraph); ok {
				toRemove[h.idx+1] = true
			}
		}
		if !seen[h.text] {
			titles = append(titles, h.text)
			seen[h.text] = true
		}
	}

	firstIdx := h4s[0].idx
	var out []document.Block
	for i, b := range blocks {
		if i == firstIdx {
			out = append(out, document.List{Ordered: false, Items: titles})
		}
		if toRemove[i] {
			continue
		}
		out = append(out, b)
	}
	return out
}
