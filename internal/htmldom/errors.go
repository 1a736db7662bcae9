package htmldom

import (
	"fmt"

	"github.com/hr95savage/semantic-blocks/internal/metadata"
	"github.com/hr95savage/semantic-blocks/pkg/failure"
)

type ParseErrorCause string

const (
	ErrCauseNotHTML ParseErrorCause = "not html"
)

type ParseError struct {
	Message string
	Cause   ParseErrorCause
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse error: %s: %s", e.Cause, e.Message)
}

func (e *ParseError) Severity() failure.Severity {
	return failure.SeverityFatal
}

// mapParseErrorToMetadataCause is observational only and MUST NOT be used to
// derive control-flow decisions.
func mapParseErrorToMetadataCause(err *ParseError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseNotHTML:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
