package imagesource

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/rohmanhakim/article-prep/internal/caption"
	"github.com/rohmanhakim/article-prep/pkg/fileutil"
	"github.com/rohmanhakim/article-prep/pkg/yamlutil"
)

// FormatFromPath picks the manifest format from a file name or URL path.
func FormatFromPath(path string) (Format, bool) {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	switch fileutil.FileExtension(path) {
	case "json":
		return FormatJSON, true
	case "yaml", "yml":
		return FormatYAML, true
	default:
		return "", false
	}
}

// FormatFromContentType picks the manifest format from an HTTP media type.
func FormatFromContentType(contentType string) (Format, bool) {
	ct := strings.ToLower(contentType)
	switch {
	case strings.Contains(ct, "json"):
		return FormatJSON, true
	case strings.Contains(ct, "yaml"):
		return FormatYAML, true
	default:
		return "", false
	}
}

// DecodeManifest parses a manifest and validates every record.
func DecodeManifest(data []byte, format Format) ([]caption.ImageRecord, *SourceError) {
	var m manifest
	switch format {
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&m); err != nil {
			return nil, &SourceError{Message: err.Error(), Cause: ErrCauseDecodeFailure}
		}
	case FormatYAML:
		if err := yamlutil.DecodeStrict(data, &m); err != nil {
			return nil, &SourceError{Message: err.Error(), Cause: ErrCauseDecodeFailure}
		}
	default:
		return nil, &SourceError{
			Message: fmt.Sprintf("format %q", format),
			Cause:   ErrCauseUnsupportedType,
		}
	}

	for i, record := range m.Images {
		if err := validateRecord(record); err != nil {
			return nil, &SourceError{
				Message: fmt.Sprintf("images[%d]: %v", i, err),
				Cause:   ErrCauseInvalidRecord,
			}
		}
	}
	return m.Images, nil
}

func validateRecord(record caption.ImageRecord) error {
	switch {
	case strings.TrimSpace(record.ID) == "":
		return fmt.Errorf("missing id")
	case strings.TrimSpace(record.URL) == "":
		return fmt.Errorf("missing url")
	case record.Width <= 0 || record.Height <= 0:
		return fmt.Errorf("dimensions must be positive, got %dx%d", record.Width, record.Height)
	}
	return nil
}

// take copies at most limit records, stopping early when ctx is done. The
// records copied before the interruption are returned with the error.
func take(ctx context.Context, records []caption.ImageRecord, limit int) ([]caption.ImageRecord, *SourceError) {
	n := len(records)
	if limit > 0 && limit < n {
		n = limit
	}
	out := make([]caption.ImageRecord, 0, n)
	for _, record := range records[:n] {
		if err := ctx.Err(); err != nil {
			return out, &SourceError{
				Message:   fmt.Sprintf("after %d of %d records: %v", len(out), n, err),
				Retryable: true,
				Cause:     ErrCauseInterrupted,
			}
		}
		out = append(out, record)
	}
	return out, nil
}
