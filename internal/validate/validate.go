// Package validate enforces the single output-level invariant the walker
// cannot enforce by construction: at most one level-1 heading (§4.9, §7).
package validate

import (
	"fmt"

	"github.com/hr95savage/semantic-blocks/internal/document"
)

// Validate counts top-level H1 headings, drops every H1 after the first,
// and reports a warn status with an explanatory message when the count is
// not exactly one.
func Validate(blocks []document.Block) ([]document.Block, document.Validation) {
	count := 0
	kept := false
	out := make([]document.Block, 0, len(blocks))
	for _, b := range blocks {
		if h, ok := b.(document.Heading); ok && h.Level == 1 {
			count++
			if kept {
				continue
			}
			kept = true
		}
		out = append(out, b)
	}

	status := document.ValidationPass
	var messages []string
	switch {
	case count == 0:
		status = document.ValidationWarn
		messages = append(messages, "No H1 found in extracted blocks.")
	case count > 1:
		status = document.ValidationWarn
		messages = append(messages, fmt.Sprintf("Multiple H1 headings found (%d). Kept the first.", count))
	}

	return out, document.Validation{Status: status, H1Count: count, Messages: messages}
}
