package postprocess

import (
	"crypto/md5"
	"encoding/hex"
	"strconv"
	"strings"

	"github.com/hr95savage/semantic-blocks/internal/document"
)

const dedupeWindowSize = 30

// Dedupe removes any block whose normalized fingerprint repeats within a
// 30-block sliding window, per variant (§4.8). Tabset tab content is
// deduplicated recursively first.
func Dedupe(blocks []document.Block) []document.Block {
	normalized := make([]document.Block, len(blocks))
	copy(normalized, blocks)
	for i, b := range normalized {
		if ts, ok := b.(document.Tabset); ok {
			tabs := make([]document.Tab, len(ts.Tabs))
			for ti, tab := range ts.Tabs {
				tabs[ti] = document.Tab{Title: tab.Title, ContentBlocks: Dedupe(tab.ContentBlocks)}
			}
			normalized[i] = document.Tabset{Tabs: tabs, Meta: ts.Meta}
		}
	}

	var out []document.Block
	var window []string
	for _, b := range normalized {
		fp := fingerprint(b)
		dup := false
		for _, w := range window {
			if w == fp {
				dup = true
				break
			}
		}
		if dup {
			continue
		}
		out = append(out, b)
		window = append(window, fp)
		if len(window) > dedupeWindowSize {
			window = window[1:]
		}
	}
	return out
}

func fingerprint(b document.Block) string {
	switch v := b.(type) {
	case document.Heading:
		return "heading|" + strconv.Itoa(v.Level) + "|" + v.Text
	case document.Paragraph:
		return "paragraph|" + v.Text
	case document.List:
		return "list|" + strconv.FormatBool(v.Ordered) + "|" + strings.Join(v.Items, "\x1f")
	case document.CTA:
		return "cta|" + v.Text + "|" + v.Href
	case document.Table:
		var sb strings.Builder
		for _, row := range v.Rows {
			sb.WriteString(strings.Join(row, "\x1f"))
			sb.WriteByte('\x1e')
		}
		return "table|" + sb.String()
	case document.FAQ:
		return "faq|" + v.Question + "|" + shortMD5(flattenText(v.AnswerBlocks))
	case document.Accordion:
		return "accordion|" + v.Title + "|" + shortMD5(flattenText(v.ContentBlocks))
	case document.Tabset:
		titles := make([]string, len(v.Tabs))
		for i, t := range v.Tabs {
			titles[i] = t.Title
		}
		return "tabset|" + strings.Join(titles, "|")
	default:
		return ""
	}
}

// flattenText concatenates the recursive text content of blocks, for the
// FAQ/accordion MD5(8) fingerprint component.
func flattenText(blocks []document.Block) string {
	var sb strings.Builder
	for _, b := range blocks {
		switch v := b.(type) {
		case document.Heading:
			sb.WriteString(v.Text)
		case document.Paragraph:
			sb.WriteString(v.Text)
		case document.List:
			sb.WriteString(strings.Join(v.Items, " "))
		case document.CTA:
			sb.WriteString(v.Text)
		case document.Table:
			for _, row := range v.Rows {
				sb.WriteString(strings.Join(row, " "))
			}
		case document.FAQ:
			sb.WriteString(v.Question)
			sb.WriteString(flattenText(v.AnswerBlocks))
		case document.Accordion:
			sb.WriteString(v.Title)
			sb.WriteString(flattenText(v.ContentBlocks))
		case document.Tabset:
			for _, tab := range v.Tabs {
				sb.WriteString(tab.Title)
				sb.WriteString(flattenText(tab.ContentBlocks))
			}
		}
	}
	return sb.String()
}

// shortMD5 uses MD5 because the spec names it explicitly as the
// fingerprint algorithm for FAQ/accordion dedupe keys; it's a content
// fingerprint, not a security boundary, so stdlib crypto/md5 is fine even
// though pkg/hashutil only wires sha256/blake3 for stored-content hashing.
func shortMD5(s string) string {
	sum := md5.Sum([]byte(s))
	return hex.EncodeToString(sum[:])[:8]
}
