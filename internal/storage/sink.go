package storage

import (
	"errors"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rohmanhakim/article-prep/internal/metadata"
	"github.com/rohmanhakim/article-prep/pkg/failure"
	"github.com/rohmanhakim/article-prep/pkg/fileutil"
	"github.com/rohmanhakim/article-prep/pkg/hashutil"
)

/*
Responsibilities
- Persist the processed article
- Persist the Markdown preview and its rendered HTML next to it
- Ensure deterministic filenames

Output Characteristics
- Files are named after the first 12 hex characters of the HTML content hash
- Idempotent writes
- Overwrite-safe reruns
*/

const hashPrefixLen = 12

type Sink interface {
	Write(
		outputDir string,
		doc Document,
		hashAlgo hashutil.HashAlgo,
	) (WriteResult, failure.ClassifiedError)
}

type LocalSink struct {
	metadataSink metadata.MetadataSink
	dryRun       bool
}

func NewLocalSink(
	metadataSink metadata.MetadataSink,
	dryRun bool,
) LocalSink {
	return LocalSink{
		metadataSink: metadataSink,
		dryRun:       dryRun,
	}
}

func (s *LocalSink) Write(
	outputDir string,
	doc Document,
	hashAlgo hashutil.HashAlgo,
) (WriteResult, failure.ClassifiedError) {
	writeResult, err := write(outputDir, doc, hashAlgo, s.dryRun)
	if err != nil {
		s.metadataSink.RecordError(
			time.Now(),
			"storage",
			"LocalSink.Write",
			mapStorageErrorToMetadataCause(err),
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrWritePath, err.Path),
			},
		)
		return WriteResult{}, err
	}
	if !writeResult.Written() {
		return writeResult, nil
	}

	s.metadataSink.RecordArtifact(
		metadata.ArtifactHTML,
		writeResult.HTMLPath(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrHash, writeResult.ContentHash()),
		},
	)
	if writeResult.MarkdownPath() != "" {
		s.metadataSink.RecordArtifact(
			metadata.ArtifactMarkdown,
			writeResult.MarkdownPath(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrHash, writeResult.ContentHash()),
			},
		)
	}
	if writeResult.PreviewHTMLPath() != "" {
		s.metadataSink.RecordArtifact(
			metadata.ArtifactPreviewHTML,
			writeResult.PreviewHTMLPath(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrHash, writeResult.ContentHash()),
			},
		)
	}
	return writeResult, nil
}

func write(
	outputDir string,
	doc Document,
	hashAlgo hashutil.HashAlgo,
	dryRun bool,
) (WriteResult, *StorageError) {
	contentHash, err := hashutil.ShortHash([]byte(doc.HTML()), hashAlgo, hashPrefixLen)
	if err != nil {
		return WriteResult{}, &StorageError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseHashComputationFailed,
		}
	}

	htmlPath := filepath.Join(outputDir, contentHash+".html")
	markdownPath := ""
	if len(doc.Markdown()) > 0 {
		markdownPath = filepath.Join(outputDir, contentHash+".md")
	}
	previewHTMLPath := ""
	if len(doc.PreviewHTML()) > 0 {
		previewHTMLPath = filepath.Join(outputDir, contentHash+".preview.html")
	}

	if dryRun {
		return NewWriteResult(contentHash, htmlPath, markdownPath, previewHTMLPath, false), nil
	}

	if err := fileutil.EnsureDir(outputDir); err != nil {
		return WriteResult{}, &StorageError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCausePathError,
			Path:      outputDir,
		}
	}

	if serr := writeFile(htmlPath, []byte(doc.HTML())); serr != nil {
		return WriteResult{}, serr
	}
	if markdownPath != "" {
		if serr := writeFile(markdownPath, doc.Markdown()); serr != nil {
			return WriteResult{}, serr
		}
	}
	if previewHTMLPath != "" {
		if serr := writeFile(previewHTMLPath, doc.PreviewHTML()); serr != nil {
			return WriteResult{}, serr
		}
	}

	return NewWriteResult(contentHash, htmlPath, markdownPath, previewHTMLPath, true), nil
}

func writeFile(path string, data []byte) *StorageError {
	err := fileutil.WriteFileAtomic(path, data)
	if err == nil {
		return nil
	}
	cause := ErrCauseWriteFailure
	retryable := false
	if errors.Is(err, syscall.ENOSPC) {
		cause = ErrCauseDiskFull
		retryable = true
	}
	return &StorageError{
		Message:   err.Error(),
		Retryable: retryable,
		Cause:     cause,
		Path:      path,
	}
}
