package metadata

import "time"

/*
Metadata Collected
- Extraction timestamps
- Block and H1 counts
- Content hashes
- Validation status

Logging Goals
- Debuggable extraction behavior
- Post-run auditability
- Failure diagnostics

Structured logging is preferred.

Allowed:
- Primitive values
- Timestamps
- URLs (as values, not objects with behavior)
- Hashes
- Status codes
- Durations
- Identifiers
*/

// MetadataSink is implemented by anything that can durably record pipeline
// observability events. It is injected into every stage that can fail or
// that produces a terminal result, the same way the teacher threads its
// MetadataSink into extractor/sanitizer/fetcher.
type MetadataSink interface {
	RecordError(observedAt time.Time, packageName, action string, cause ErrorCause, errorString string, attrs []Attribute)
	RecordExtraction(event ExtractionEvent)
}

// Compile-time interface check
var _ MetadataSink = (*Recorder)(nil)

// Recorder is the in-process MetadataSink implementation. It is deliberately
// simple: it appends to in-memory slices rather than shipping to an external
// system, since shipping telemetry is out of this module's core scope.
type Recorder struct {
	errors      []ErrorRecord
	extractions []ExtractionEvent
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) RecordError(observedAt time.Time, packageName, action string, cause ErrorCause, errorString string, attrs []Attribute) {
	r.errors = append(r.errors, ErrorRecord{
		packageName: packageName,
		action:      action,
		cause:       cause,
		errorString: errorString,
		observedAt:  observedAt,
		attrs:       attrs,
	})
}

func (r *Recorder) RecordExtraction(event ExtractionEvent) {
	r.extractions = append(r.extractions, event)
}

func (r *Recorder) Errors() []ErrorRecord {
	out := make([]ErrorRecord, len(r.errors))
	copy(out, r.errors)
	return out
}

func (r *Recorder) Extractions() []ExtractionEvent {
	out := make([]ExtractionEvent, len(r.extractions))
	copy(out, r.extractions)
	return out
}

// NewExtractionEvent constructs an ExtractionEvent; contentHash is expected
// to come from pkg/hashutil so extraction runs can be compared for
// idempotence post hoc.
func NewExtractionEvent(sourceURL string, duration time.Duration, blockCount, h1Count int, status, contentHash string) ExtractionEvent {
	return ExtractionEvent{
		sourceURL:   sourceURL,
		duration:    duration,
		blockCount:  blockCount,
		h1Count:     h1Count,
		status:      status,
		contentHash: contentHash,
	}
}

func (e ExtractionEvent) SourceURL() string      { return e.sourceURL }
func (e ExtractionEvent) Duration() time.Duration { return e.duration }
func (e ExtractionEvent) BlockCount() int        { return e.blockCount }
func (e ExtractionEvent) H1Count() int           { return e.h1Count }
func (e ExtractionEvent) Status() string         { return e.status }
func (e ExtractionEvent) ContentHash() string    { return e.contentHash }
