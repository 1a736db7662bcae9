package collab

import (
	"fmt"

	"github.com/hr95savage/semantic-blocks/internal/metadata"
	"github.com/hr95savage/semantic-blocks/pkg/failure"
)

type CollabErrorCause string

const (
	ErrCauseQueueFull      CollabErrorCause = "queue full"
	ErrCauseObjectNotFound CollabErrorCause = "object not found"
	ErrCausePackagingFail  CollabErrorCause = "packaging failed"
	ErrCauseSigningFail    CollabErrorCause = "signing failed"
)

type CollabError struct {
	Message   string
	Retryable bool
	Cause     CollabErrorCause
}

func (e *CollabError) Error() string {
	return fmt.Sprintf("collab error: %s: %s", e.Cause, e.Message)
}

func (e *CollabError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func (e *CollabError) IsRetryable() bool {
	return e.Retryable
}

// mapCollabErrorToMetadataCause is observational only; it must never drive
// retry/abort decisions (that is pkg/retry's and the caller's job, driven by
// CollabError.Retryable).
func mapCollabErrorToMetadataCause(err *CollabError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseQueueFull:
		return metadata.CauseNetworkFailure
	case ErrCauseObjectNotFound:
		return metadata.CauseContentInvalid
	case ErrCausePackagingFail, ErrCauseSigningFail:
		return metadata.CauseStorageFailure
	default:
		return metadata.CauseUnknown
	}
}
