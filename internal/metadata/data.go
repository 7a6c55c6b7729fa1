package metadata

import (
	"time"
)

type PassEvent struct {
	pass     string
	changed  bool
	duration time.Duration
}

/*
runStats
  - Represents a terminal, derived summary of a completed run
  - Contains only aggregate counts and durations
  - Is computed by the pipeline after the document has been produced
  - Is recorded exactly once
  - Must not influence normalization or caption matching
*/
type runStats struct {
	totalImages     int
	matchedImages   int
	prependedImages int
	totalErrors     int
	durationMs      int64
}

type ArtifactKind string

const (
	ArtifactHTML        ArtifactKind = "html"
	ArtifactMarkdown    ArtifactKind = "markdown"
	ArtifactPreviewHTML ArtifactKind = "preview-html"
)

/*
	ErrorCause is a closed, canonical classification used exclusively for
	observability (logging, reporting).

	Rules:
	 - ErrorCause MUST NOT influence control flow.
	 - ErrorCause values MUST have stable, package-agnostic semantics.
	 - Pipeline packages MAY map their local errors to ErrorCause,
	   but MUST NOT invent new meanings.

If a failure does not clearly match a defined cause, CauseUnknown MUST be used.
*/
type ErrorCause int

/*
Canonical ErrorCause Table

# CauseUnknown

Meaning:
  - The failure does not map cleanly to any known category.

# CauseSourceFailure

Meaning:
  - Image records could not be acquired from their source.

Examples:
  - Manifest file missing or unreadable
  - Acquisition interrupted by cancellation

# CauseContentInvalid

Meaning:
  - Content was received but could not be processed meaningfully.

Examples:
  - Document the HTML tokenizer rejects
  - Manifest that does not decode into image records

# CauseStorageFailure

Meaning:
  - Failure while persisting results.

Examples:
  - Disk full
  - Write permission errors

# CauseInvariantViolation

Meaning:
  - A system-level invariant was violated.

Examples:
  - Unsupported hash algorithm reaching the storage sink
*/
const (
	CauseUnknown ErrorCause = iota
	CauseSourceFailure
	CauseContentInvalid
	CauseStorageFailure
	CauseInvariantViolation
)

func (c ErrorCause) String() string {
	switch c {
	case CauseSourceFailure:
		return "source_failure"
	case CauseContentInvalid:
		return "content_invalid"
	case CauseStorageFailure:
		return "storage_failure"
	case CauseInvariantViolation:
		return "invariant_violation"
	default:
		return "unknown"
	}
}

type Attribute struct {
	Key   AttributeKey
	Value string
}

func NewAttr(key AttributeKey, val string) Attribute {
	return Attribute{
		Key:   key,
		Value: val,
	}
}

type AttributeKey string

const (
	AttrPath      AttributeKey = "path"
	AttrField     AttributeKey = "field"
	AttrPass      AttributeKey = "pass"
	AttrImageID   AttributeKey = "image_id"
	AttrPattern   AttributeKey = "pattern"
	AttrWritePath AttributeKey = "write_path"
	AttrHash      AttributeKey = "hash"
	AttrURL       AttributeKey = "url"
)
