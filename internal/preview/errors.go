package preview

import (
	"fmt"

	"github.com/rohmanhakim/article-prep/internal/metadata"
	"github.com/rohmanhakim/article-prep/pkg/failure"
)

type PreviewErrorCause string

const (
	ErrCauseParseFailure      PreviewErrorCause = "parse failed"
	ErrCauseConversionFailure PreviewErrorCause = "conversion failed"
)

type PreviewError struct {
	Message   string
	Retryable bool
	Cause     PreviewErrorCause
}

func (e *PreviewError) Error() string {
	return fmt.Sprintf("preview error: %s: %s", e.Cause, e.Message)
}

func (e *PreviewError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func mapPreviewErrorToMetadataCause(err *PreviewError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseParseFailure, ErrCauseConversionFailure:
		return metadata.CauseContentInvalid
	default:
		return metadata.CauseUnknown
	}
}
