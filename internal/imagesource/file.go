package imagesource

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/rohmanhakim/article-prep/internal/caption"
	"github.com/rohmanhakim/article-prep/internal/metadata"
	"github.com/rohmanhakim/article-prep/pkg/failure"
)

// FileSource reads records from a JSON or YAML manifest on disk. The format
// follows the file extension.
type FileSource struct {
	metadataSink metadata.MetadataSink
	path         string
}

func NewFileSource(metadataSink metadata.MetadataSink, path string) FileSource {
	return FileSource{
		metadataSink: metadataSink,
		path:         path,
	}
}

func (f *FileSource) Load(ctx context.Context, limit int) ([]caption.ImageRecord, failure.ClassifiedError) {
	records, err := f.load(ctx, limit)
	if err != nil {
		recordSourceError(f.metadataSink, "FileSource.Load", metadata.NewAttr(metadata.AttrPath, f.path), err)
		return records, err
	}
	return records, nil
}

func (f *FileSource) load(ctx context.Context, limit int) ([]caption.ImageRecord, *SourceError) {
	if err := ctx.Err(); err != nil {
		return nil, &SourceError{Message: err.Error(), Retryable: true, Cause: ErrCauseInterrupted}
	}

	format, ok := FormatFromPath(f.path)
	if !ok {
		return nil, &SourceError{
			Message: fmt.Sprintf("cannot tell the format of %s", f.path),
			Cause:   ErrCauseUnsupportedType,
		}
	}

	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, &SourceError{
			Message:   err.Error(),
			Retryable: !errors.Is(err, os.ErrNotExist),
			Cause:     ErrCauseReadFailure,
		}
	}

	records, serr := DecodeManifest(data, format)
	if serr != nil {
		return nil, serr
	}
	return take(ctx, records, limit)
}

// StaticSource serves records already held in memory.
type StaticSource struct {
	records []caption.ImageRecord
}

func NewStaticSource(records []caption.ImageRecord) StaticSource {
	return StaticSource{records: records}
}

func (s *StaticSource) Load(ctx context.Context, limit int) ([]caption.ImageRecord, failure.ClassifiedError) {
	records, err := take(ctx, s.records, limit)
	if err != nil {
		return records, err
	}
	return records, nil
}

func recordSourceError(sink metadata.MetadataSink, action string, location metadata.Attribute, err *SourceError) {
	sink.RecordError(
		time.Now(),
		"imagesource",
		action,
		mapSourceErrorToMetadataCause(err),
		err.Error(),
		[]metadata.Attribute{location},
	)
}
