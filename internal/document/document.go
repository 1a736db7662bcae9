package document

import (
	"bytes"
	"encoding/json"
)

// ValidationStatus is either "pass" or "warn" (§3).
type ValidationStatus string

const (
	ValidationPass ValidationStatus = "pass"
	ValidationWarn ValidationStatus = "warn"
)

// Source carries the page-level metadata extracted before pruning begins.
type Source struct {
	URL             string `json:"url"`
	Title           string `json:"title"`
	Canonical       string `json:"canonical"`
	MetaDescription string `json:"meta_description"`
}

// Validation reports the H1-count invariant and any warnings recorded during
// the walk (§7: MissingH1 produces a warn status with a message).
type Validation struct {
	Status   ValidationStatus `json:"status"`
	H1Count  int              `json:"h1_count"`
	Messages []string         `json:"messages"`
}

// Document is the top-level output of extraction (§3).
type Document struct {
	Source     Source     `json:"source"`
	Blocks     []Block    `json:"blocks"`
	Validation Validation `json:"validation"`
}

// MarshalPretty renders the document as 2-space-indented JSON with non-ASCII
// characters preserved unescaped, matching §6. encoding/json never escapes
// non-ASCII text such as "é"; its default SetEscapeHTML(true) would turn
// "<", ">" and "&" into <-style escapes, so that is disabled here since
// the contract requires literal UTF-8 output.
func (d Document) MarshalPretty() ([]byte, error) {
	if d.Blocks == nil {
		d.Blocks = []Block{}
	}
	if d.Validation.Messages == nil {
		d.Validation.Messages = []string{}
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(d); err != nil {
		return nil, err
	}

	// json.Encoder.Encode appends a trailing newline; keep it, it is the
	// conventional terminator for a pretty-printed JSON file written by a CLI.
	return buf.Bytes(), nil
}
