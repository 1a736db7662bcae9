package validate

import (
	"testing"

	"github.com/hr95savage/semantic-blocks/internal/document"
	"github.com/stretchr/testify/assert"
)

func TestValidate_SingleH1Passes(t *testing.T) {
	blocks := []document.Block{document.Heading{Level: 1, Text: "Hi"}, document.Paragraph{Text: "Hello world."}}
	out, v := Validate(blocks)
	assert.Equal(t, blocks, out)
	assert.Equal(t, document.ValidationPass, v.Status)
	assert.Equal(t, 1, v.H1Count)
	assert.Empty(t, v.Messages)
}

func TestValidate_NoH1Warns(t *testing.T) {
	blocks := []document.Block{document.Paragraph{Text: "No heading here."}}
	out, v := Validate(blocks)
	assert.Equal(t, blocks, out)
	assert.Equal(t, document.ValidationWarn, v.Status)
	assert.Equal(t, 0, v.H1Count)
	assert.Contains(t, v.Messages, "No H1 found in extracted blocks.")
}

func TestValidate_MultipleH1sKeepsFirst(t *testing.T) {
	blocks := []document.Block{
		document.Heading{Level: 1, Text: "First"},
		document.Paragraph{Text: "middle"},
		document.Heading{Level: 1, Text: "Second"},
	}
	out, v := Validate(blocks)
	assert.Equal(t, document.ValidationWarn, v.Status)
	assert.Equal(t, 2, v.H1Count)
	assert.Contains(t, v.Messages, "Multiple H1 headings found (2). Kept the first.")
	assert.Len(t, out, 2)
	assert.Equal(t, document.Heading{Level: 1, Text: "First"}, out[0])
}
