package postprocess

import (
	"testing"

	"github.com/hr95savage/semantic-blocks/internal/config"
	"github.com/hr95savage/semantic-blocks/internal/document"
	"github.com/stretchr/testify/assert"
)

func TestAnnotateEyebrows_MarksShortLabelBeforeH2(t *testing.T) {
	blocks := []document.Block{
		document.Paragraph{Text: "NEW FOR 2024"},
		document.Heading{Level: 2, Text: "Our Services"},
	}
	out := AnnotateEyebrows(blocks, config.EyebrowAnnotate)

	require := assert.New(t)
	p, ok := out[0].(document.Paragraph)
	require.True(ok)
	require.NotNil(p.Meta)
	require.Equal(document.RoleEyebrow, p.Meta.Role)
}

func TestAnnotateEyebrows_DropMode(t *testing.T) {
	blocks := []document.Block{
		document.Paragraph{Text: "NEW FOR 2024"},
		document.Heading{Level: 2, Text: "Our Services"},
	}
	out := AnnotateEyebrows(blocks, config.EyebrowDrop)
	assert.Len(t, out, 1)
	assert.Equal(t, document.Heading{Level: 2, Text: "Our Services"}, out[0])
}

func TestAnnotateEyebrows_KeepMode(t *testing.T) {
	blocks := []document.Block{
		document.Paragraph{Text: "NEW FOR 2024"},
		document.Heading{Level: 2, Text: "Our Services"},
	}
	out := AnnotateEyebrows(blocks, config.EyebrowKeep)
	assert.Equal(t, blocks, out)
}

func TestAnnotateEyebrows_LongParagraphNotEyebrow(t *testing.T) {
	blocks := []document.Block{
		document.Paragraph{Text: "This paragraph is long enough that it should never be treated as an eyebrow label."},
		document.Heading{Level: 2, Text: "Our Services"},
	}
	out := AnnotateEyebrows(blocks, config.EyebrowAnnotate)
	p, ok := out[0].(document.Paragraph)
	assert.True(t, ok)
	assert.Nil(t, p.Meta)
}

func TestAnnotateEyebrows_CoercesH6BeforeH2(t *testing.T) {
	blocks := []document.Block{
		document.Heading{Level: 6, Text: "Featured"},
		document.Heading{Level: 2, Text: "Our Work"},
	}
	out := AnnotateEyebrows(blocks, config.EyebrowAnnotate)
	p, ok := out[0].(document.Paragraph)
	assert.True(t, ok)
	assert.Equal(t, "Featured", p.Text)
	assert.Equal(t, document.RoleEyebrow, p.Meta.Role)
}

func TestRemoveBlogFeedRuns(t *testing.T) {
	blocks := []document.Block{
		document.Heading{Level: 1, Text: "Home"},
		document.Heading{Level: 2, Text: "Latest Blog Posts"},
		document.Paragraph{Text: "Post one teaser"},
		document.Paragraph{Text: "Post two teaser"},
		document.Heading{Level: 2, Text: "Contact Us"},
		document.Paragraph{Text: "Reach out any time."},
	}
	out := RemoveBlogFeedRuns(blocks)
	assert.Equal(t, []document.Block{
		document.Heading{Level: 1, Text: "Home"},
		document.Heading{Level: 2, Text: "Contact Us"},
		document.Paragraph{Text: "Reach out any time."},
	}, out)
}

func TestGridFallback_CollapsesSixPlusH4s(t *testing.T) {
	var blocks []document.Block
	blocks = append(blocks, document.Heading{Level: 2, Text: "Features"})
	titles := []string{"One", "Two", "Three", "Four", "Five", "Six"}
	for _, title := range titles {
		blocks = append(blocks, document.Heading{Level: 4, Text: title})
		blocks = append(blocks, document.Paragraph{Text: title + " description text here."})
	}
	out := GridFallback(blocks)

	require := assert.New(t)
	require.Len(out, 2)
	require.Equal(document.Heading{Level: 2, Text: "Features"}, out[0])
	list, ok := out[1].(document.List)
	require.True(ok)
	require.Equal(titles, list.Items)
}

func TestGridFallback_LeavesFewerThanSixAlone(t *testing.T) {
	blocks := []document.Block{
		document.Heading{Level: 2, Text: "Features"},
		document.Heading{Level: 4, Text: "One"},
		document.Heading{Level: 4, Text: "Two"},
	}
	out := GridFallback(blocks)
	assert.Equal(t, blocks, out)
}

func TestDedupe_DropsRepeatedParagraphWithinWindow(t *testing.T) {
	blocks := []document.Block{
		document.Paragraph{Text: "Same text"},
		document.Heading{Level: 2, Text: "Unrelated"},
		document.Paragraph{Text: "Same text"},
	}
	out := Dedupe(blocks)
	assert.Len(t, out, 2)
}

func TestDedupe_FAQFingerprintIncludesAnswerContent(t *testing.T) {
	blocks := []document.Block{
		document.FAQ{Question: "What is it?", AnswerBlocks: []document.Block{document.Paragraph{Text: "It is A."}}},
		document.FAQ{Question: "What is it?", AnswerBlocks: []document.Block{document.Paragraph{Text: "It is B."}}},
	}
	out := Dedupe(blocks)
	assert.Len(t, out, 2, "different answer content should not collide")
}
