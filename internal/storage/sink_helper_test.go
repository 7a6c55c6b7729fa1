package storage_test

import (
	"time"

	"github.com/rohmanhakim/article-prep/internal/metadata"
)

// metadataSinkMock is a mock for metadata.MetadataSink
type metadataSinkMock struct {
	recordErrorCalled  bool
	recordErrorCount   int
	recordErrorPackage string
	recordErrorAction  string
	recordErrorCause   metadata.ErrorCause
	recordErrorAttrs   []metadata.Attribute
	recordedArtifacts  []recordedArtifact
}

type recordedArtifact struct {
	kind  metadata.ArtifactKind
	path  string
	attrs []metadata.Attribute
}

func (m *metadataSinkMock) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	details string,
	attrs []metadata.Attribute,
) {
	m.recordErrorCalled = true
	m.recordErrorPackage = packageName
	m.recordErrorAction = action
	m.recordErrorCause = cause
	m.recordErrorAttrs = attrs
	m.recordErrorCount++
}

func (m *metadataSinkMock) RecordPass(pass string, changed bool, duration time.Duration) {}

func (m *metadataSinkMock) RecordArtifact(kind metadata.ArtifactKind, path string, attrs []metadata.Attribute) {
	m.recordedArtifacts = append(m.recordedArtifacts, recordedArtifact{kind: kind, path: path, attrs: attrs})
}
