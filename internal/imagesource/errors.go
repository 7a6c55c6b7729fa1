package imagesource

import (
	"fmt"

	"github.com/rohmanhakim/article-prep/internal/metadata"
	"github.com/rohmanhakim/article-prep/pkg/failure"
)

type SourceErrorCause string

const (
	ErrCauseReadFailure      SourceErrorCause = "manifest unreadable"
	ErrCauseDecodeFailure    SourceErrorCause = "manifest undecodable"
	ErrCauseInvalidRecord    SourceErrorCause = "invalid image record"
	ErrCauseUnsupportedType  SourceErrorCause = "unsupported manifest format"
	ErrCauseInterrupted      SourceErrorCause = "acquisition interrupted"
	ErrCauseNetworkFailure   SourceErrorCause = "network issues"
	ErrCauseRequest5xx       SourceErrorCause = "5xx"
	ErrCauseRequestTooMany   SourceErrorCause = "too many requests"
	ErrCauseRequestRejected  SourceErrorCause = "request rejected"
	ErrCauseRetriesExhausted SourceErrorCause = "retries exhausted"
)

type SourceError struct {
	Message   string
	Retryable bool
	Cause     SourceErrorCause
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("imagesource error: %s: %s", e.Cause, e.Message)
}

// Severity is recoverable for interrupted loads even when they are not
// retried: the records read before the interruption are still usable.
func (e *SourceError) Severity() failure.Severity {
	if e.Retryable || e.Cause == ErrCauseInterrupted {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// IsRetryable returns whether this error is retryable
func (e *SourceError) IsRetryable() bool {
	return e.Retryable
}

// mapSourceErrorToMetadataCause maps imagesource-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapSourceErrorToMetadataCause(err *SourceError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseReadFailure, ErrCauseInterrupted, ErrCauseNetworkFailure,
		ErrCauseRequest5xx, ErrCauseRequestTooMany, ErrCauseRequestRejected,
		ErrCauseRetriesExhausted:
		return metadata.CauseSourceFailure
	case ErrCauseDecodeFailure, ErrCauseInvalidRecord, ErrCauseUnsupportedType:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
