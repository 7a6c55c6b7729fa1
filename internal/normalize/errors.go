package normalize

import (
	"fmt"

	"github.com/rohmanhakim/article-prep/internal/metadata"
	"github.com/rohmanhakim/article-prep/pkg/failure"
)

type NormalizationErrorCause string

const (
	// ErrCauseUnparseableInput indicates the HTML tokenizer could not read the document.
	// This is the only failure the normalizer reports; absent matches are no-ops.
	ErrCauseUnparseableInput NormalizationErrorCause = "unparseable input"

	// ErrCauseRenderFailure indicates a rewritten tree could not be serialized back to markup.
	ErrCauseRenderFailure NormalizationErrorCause = "render failure"
)

type NormalizationError struct {
	Message   string
	Retryable bool
	Cause     NormalizationErrorCause
	Pass      string
}

func (e *NormalizationError) Error() string {
	if e.Pass != "" {
		return fmt.Sprintf("normalization error: %s in %s: %s", e.Cause, e.Pass, e.Message)
	}
	return fmt.Sprintf("normalization error: %s: %s", e.Cause, e.Message)
}

func (e *NormalizationError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

// mapNormalizationErrorToMetadataCause maps normalize-local error semantics
// to the canonical metadata.ErrorCause table.
//
// This mapping is observational only and MUST NOT be used
// to derive control-flow decisions.
func mapNormalizationErrorToMetadataCause(err *NormalizationError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseUnparseableInput:
		return metadata.CauseContentInvalid
	case ErrCauseRenderFailure:
		return metadata.CauseInvariantViolation
	default:
		return metadata.CauseUnknown
	}
}
