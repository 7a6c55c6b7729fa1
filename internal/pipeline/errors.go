package pipeline

import (
	"fmt"

	"github.com/rohmanhakim/article-prep/internal/metadata"
	"github.com/rohmanhakim/article-prep/pkg/failure"
)

type PipelineErrorCause string

const (
	ErrCauseMissingSource PipelineErrorCause = "no image source"
)

type PipelineError struct {
	Message   string
	Retryable bool
	Cause     PipelineErrorCause
}

func (e *PipelineError) Error() string {
	return fmt.Sprintf("pipeline error: %s: %s", e.Cause, e.Message)
}

func (e *PipelineError) Severity() failure.Severity {
	if e.Retryable {
		return failure.SeverityRecoverable
	}
	return failure.SeverityFatal
}

func mapPipelineErrorToMetadataCause(err *PipelineError) metadata.ErrorCause {
	switch err.Cause {
	case ErrCauseMissingSource:
		return metadata.CauseInvariantViolation
	default:
		return metadata.CauseUnknown
	}
}
