package pipeline_test

import (
	"context"
	"testing"
	"time"

	"github.com/rohmanhakim/article-prep/internal/caption"
	"github.com/rohmanhakim/article-prep/internal/config"
	"github.com/rohmanhakim/article-prep/internal/metadata"
	"github.com/rohmanhakim/article-prep/internal/storage"
	"github.com/rohmanhakim/article-prep/pkg/failure"
	"github.com/rohmanhakim/article-prep/pkg/hashutil"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type storageMock struct {
	mock.Mock
}

func (s *storageMock) Write(
	outputDir string,
	doc storage.Document,
	hashAlgo hashutil.HashAlgo,
) (storage.WriteResult, failure.ClassifiedError) {
	args := s.Called(outputDir, doc, hashAlgo)
	res := args.Get(0).(storage.WriteResult)
	var err failure.ClassifiedError
	if args.Get(1) != nil {
		err = args.Get(1).(failure.ClassifiedError)
	}
	return res, err
}

type sourceMock struct {
	mock.Mock
}

func (s *sourceMock) Load(ctx context.Context, limit int) ([]caption.ImageRecord, failure.ClassifiedError) {
	args := s.Called(ctx, limit)
	var records []caption.ImageRecord
	if args.Get(0) != nil {
		records = args.Get(0).([]caption.ImageRecord)
	}
	var err failure.ClassifiedError
	if args.Get(1) != nil {
		err = args.Get(1).(failure.ClassifiedError)
	}
	return records, err
}

// mockFinalizer captures the final run statistics
type mockFinalizer struct {
	calls         int
	recordedStats *capturedStats
}

type capturedStats struct {
	totalImages     int
	matchedImages   int
	prependedImages int
	totalErrors     int
	duration        time.Duration
}

func (m *mockFinalizer) RecordRunStats(
	totalImages int,
	matchedImages int,
	prependedImages int,
	totalErrors int,
	duration time.Duration,
) {
	m.calls++
	m.recordedStats = &capturedStats{
		totalImages:     totalImages,
		matchedImages:   matchedImages,
		prependedImages: prependedImages,
		totalErrors:     totalErrors,
		duration:        duration,
	}
}

// errorRecordingSink counts errors and passes
type errorRecordingSink struct {
	metadata.NoopSink
	errorCount int
	causes     []metadata.ErrorCause
	passes     []string
}

func (e *errorRecordingSink) RecordError(
	observedAt time.Time,
	packageName string,
	action string,
	cause metadata.ErrorCause,
	details string,
	attrs []metadata.Attribute,
) {
	e.errorCount++
	e.causes = append(e.causes, cause)
}

func (e *errorRecordingSink) RecordPass(pass string, changed bool, duration time.Duration) {
	e.passes = append(e.passes, pass)
}

// stubError is a classified error with a fixed severity
type stubError struct {
	severity failure.Severity
}

func (s *stubError) Error() string {
	return "stub error"
}

func (s *stubError) Severity() failure.Severity {
	return s.severity
}

func testConfig(t *testing.T, preview bool) config.Config {
	t.Helper()
	cfg, err := config.WithDefault(config.DefaultBaseDomain).
		WithOutputDir("out").
		WithImageLimit(2).
		WithPreviewMarkdown(preview).
		Build()
	require.NoError(t, err)
	return cfg
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

const article = `<h2>Overview</h2><p>A cat <span style="font-weight: 400">sits</span> on a mat.&nbsp;Done.</p>` +
	`<p><a href="https://elsewhere.example/">more</a></p>`
