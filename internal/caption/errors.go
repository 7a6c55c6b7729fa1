package caption

import (
	"fmt"

	"github.com/rohmanhakim/article-prep/internal/metadata"
	"github.com/rohmanhakim/article-prep/pkg/failure"
)

type CaptionErrorCause string

const (
	// ErrCauseInvalidPattern indicates a caption produced a pattern the regexp
	// engine rejected, such as one holding invalid UTF-8. The image falls back
	// to being prepended.
	ErrCauseInvalidPattern CaptionErrorCause = "invalid pattern"
)

type CaptionError struct {
	Message   string
	Retryable bool
	Cause     CaptionErrorCause
	Pattern   string
}

func (e *CaptionError) Error() string {
	return fmt.Sprintf("caption error: %s: %s", e.Cause, e.Message)
}

func (e *CaptionError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapCaptionErrorToMetadataCause maps caption-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapCaptionErrorToMetadataCause(err *CaptionError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseInvalidPattern:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
