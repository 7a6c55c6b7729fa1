package caption_test

import (
	"time"

	"github.com/rohmanhakim/article-prep/internal/caption"
	"github.com/rohmanhakim/article-prep/internal/metadata"
)

// mockMetadataSink is a test double for metadata.MetadataSink
type mockMetadataSink struct {
	errors []recordedError
}

type recordedError struct {
	packageName string
	action      string
	cause       metadata.ErrorCause
	details     string
	attrs       []metadata.Attribute
}

func (m *mockMetadataSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	details string,
	attrs []metadata.Attribute,
) {
	m.errors = append(m.errors, recordedError{
		packageName: packageName,
		action:      action,
		cause:       cause,
		details:     details,
		attrs:       attrs,
	})
}

func (m *mockMetadataSink) RecordPass(pass string, changed bool, duration time.Duration) {}

func (m *mockMetadataSink) RecordArtifact(kind metadata.ArtifactKind, path string, attrs []metadata.Attribute) {
}

func catRecord() caption.ImageRecord {
	return caption.ImageRecord{
		ID:      "42",
		Width:   800,
		Height:  600,
		Name:    "cat-on-mat",
		Caption: "cat sits on",
		URL:     "https://cdn.example/cat.jpg",
	}
}

func dogRecord() caption.ImageRecord {
	return caption.ImageRecord{
		ID:      "43",
		Width:   640,
		Height:  480,
		Name:    "dog",
		Caption: "dog runs fast",
		URL:     "https://cdn.example/dog.jpg",
	}
}
