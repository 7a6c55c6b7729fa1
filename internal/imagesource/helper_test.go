package imagesource_test

import (
	"time"

	"github.com/rohmanhakim/article-prep/internal/caption"
	"github.com/rohmanhakim/article-prep/internal/metadata"
	"github.com/rohmanhakim/article-prep/pkg/retry"
	"github.com/rohmanhakim/article-prep/pkg/timeutil"
)

// mockMetadataSink is a test double for metadata.MetadataSink
type mockMetadataSink struct {
	errors []recordedError
}

type recordedError struct {
	packageName string
	action      string
	cause       metadata.ErrorCause
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
		attrs:       attrs,
	})
}

func (m *mockMetadataSink) RecordPass(pass string, changed bool, duration time.Duration) {}

func (m *mockMetadataSink) RecordArtifact(kind metadata.ArtifactKind, path string, attrs []metadata.Attribute) {
}

func fixtureRecords() []caption.ImageRecord {
	return []caption.ImageRecord{
		{
			ID:      "1042",
			Width:   1200,
			Height:  800,
			Name:    "starry-night",
			Caption: "The Starry Night, 1889",
			URL:     "https://cdn.example/starry-night.jpg",
		},
		{
			ID:     "1043",
			Width:  640,
			Height: 480,
			Name:   "water-lilies",
			URL:    "https://cdn.example/water-lilies.jpg",
		},
		{
			ID:      "1044",
			Width:   900,
			Height:  1200,
			Name:    "self-portrait",
			Caption: "Self-Portrait with Bandaged Ear",
			URL:     "https://cdn.example/self-portrait.jpg",
		},
	}
}

func fastRetry(attempts int) retry.RetryParam {
	return retry.NewRetryParam(0, 1, attempts, timeutil.NewBackoffParam(time.Millisecond, 1.0, time.Millisecond))
}
