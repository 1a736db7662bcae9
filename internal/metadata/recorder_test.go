package metadata

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRecorder_RecordError(t *testing.T) {
	r := NewRecorder()
	r.RecordError(time.Now(), "blocks", "Extract", CauseContentInvalid, "no main content", []Attribute{
		NewAttr(AttrField, "content"),
	})

	errs := r.Errors()
	assert.Len(t, errs, 1)
	assert.Equal(t, "blocks", errs[0].packageName)
	assert.Equal(t, CauseContentInvalid, errs[0].cause)
}

func TestRecorder_RecordExtraction(t *testing.T) {
	r := NewRecorder()
	r.RecordExtraction(NewExtractionEvent("https://example.com", 5*time.Millisecond, 3, 1, "pass", "deadbeef"))

	events := r.Extractions()
	assert.Len(t, events, 1)
	assert.Equal(t, 3, events[0].BlockCount())
	assert.Equal(t, "pass", events[0].Status())
}
