package imagesource

import (
	"context"

	"github.com/rohmanhakim/article-prep/internal/caption"
	"github.com/rohmanhakim/article-prep/pkg/failure"
)

// Source yields image records in their media-library order.
//
// Load returns at most limit records; a limit of zero means no limit. A
// source may return fewer records than requested. When acquisition is
// interrupted, Load returns the records read so far together with an error,
// and callers may go on with the partial list.
type Source interface {
	Load(ctx context.Context, limit int) ([]caption.ImageRecord, failure.ClassifiedError)
}

// Format names the encoding of a manifest.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// manifest is the document layout shared by JSON and YAML manifests.
//
//	images:
//	  - id: "1042"
//	    width: 1200
//	    height: 800
//	    name: starry-night
//	    caption: The Starry Night, 1889
//	    url: https://cdn.example/starry-night.jpg
type manifest struct {
	Images []caption.ImageRecord `json:"images" yaml:"images"`
}
