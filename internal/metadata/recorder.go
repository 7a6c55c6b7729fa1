package metadata

import (
	"time"

	"go.uber.org/zap"
)

/*
Metadata Collected
- Per-pass normalization events
- Written artifacts and their hashes
- Failures, classified by ErrorCause
- Final run summary

Logging Goals
- Debuggable normalization behavior
- Post-run auditability
- Failure diagnostics

Metadata is write-only.
No component may read metadata to influence normalization or matching.
*/

/*
Recorder captures structured run events and forwards them to a zap logger.
It must not:
- perform I/O decisions
- affect control flow
Events are recorded synchronously in the order they are received.
*/
type Recorder struct {
	runId  string
	logger *zap.Logger
}

func NewRecorder(runId string, logger *zap.Logger) Recorder {
	if logger == nil {
		logger = zap.NewNop()
	}
	return Recorder{
		runId:  runId,
		logger: logger.With(zap.String("run_id", runId)),
	}
}

func (r *Recorder) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	errorString string,
	attrs []Attribute,
) {
	fields := []zap.Field{
		zap.Time("observed_at", observedAt),
		zap.String("package", packageName),
		zap.String("action", action),
		zap.Stringer("cause", cause),
		zap.String("error", errorString),
	}
	r.logger.Error("pipeline error", append(fields, attrFields(attrs)...)...)
}

func (r *Recorder) RecordPass(pass string, changed bool, duration time.Duration) {
	event := PassEvent{
		pass:     pass,
		changed:  changed,
		duration: duration,
	}
	r.logger.Debug("normalization pass",
		zap.String("pass", event.pass),
		zap.Bool("changed", event.changed),
		zap.Duration("duration", event.duration),
	)
}

func (r *Recorder) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {
	fields := []zap.Field{
		zap.String("kind", string(kind)),
		zap.String("path", path),
	}
	r.logger.Info("artifact written", append(fields, attrFields(attrs)...)...)
}

/*
RecordRunStats records a terminal, derived summary of a completed run.

Contract:
  - MUST be called exactly once per run.
  - MUST be called only after the final document has been produced.
  - Recorded stats MUST NOT influence control flow.
*/
func (r *Recorder) RecordRunStats(
	totalImages int,
	matchedImages int,
	prependedImages int,
	totalErrors int,
	duration time.Duration,
) {
	stats := runStats{
		totalImages:     totalImages,
		matchedImages:   matchedImages,
		prependedImages: prependedImages,
		totalErrors:     totalErrors,
		durationMs:      duration.Milliseconds(),
	}

	r.logger.Info("run finished",
		zap.Int("images", stats.totalImages),
		zap.Int("matched", stats.matchedImages),
		zap.Int("prepended", stats.prependedImages),
		zap.Int("errors", stats.totalErrors),
		zap.Int64("duration_ms", stats.durationMs),
	)
}

func attrFields(attrs []Attribute) []zap.Field {
	fields := make([]zap.Field, 0, len(attrs))
	for _, attr := range attrs {
		fields = append(fields, zap.String(string(attr.Key), attr.Value))
	}
	return fields
}

type MetadataSink interface {
	RecordError(
		observedAt time.Time,
		packageName string,
		action string,
		cause ErrorCause,
		details string,
		attrs []Attribute,
	)
	RecordPass(pass string, changed bool, duration time.Duration)
	RecordArtifact(kind ArtifactKind, path string, attrs []Attribute)
}

type RunFinalizer interface {
	RecordRunStats(
		totalImages int,
		matchedImages int,
		prependedImages int,
		totalErrors int,
		duration time.Duration,
	)
}

// NoopSink implements MetadataSink and RunFinalizer but does nothing.
// Callers decide whether to inject a Recorder or a NoopSink.
type NoopSink struct{}

func (n *NoopSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause ErrorCause,
	errorString string,
	attrs []Attribute,
) {
}

func (n *NoopSink) RecordPass(pass string, changed bool, duration time.Duration) {}

func (n *NoopSink) RecordArtifact(kind ArtifactKind, path string, attrs []Attribute) {}

func (n *NoopSink) RecordRunStats(
	totalImages int,
	matchedImages int,
	prependedImages int,
	totalErrors int,
	duration time.Duration,
) {
}
