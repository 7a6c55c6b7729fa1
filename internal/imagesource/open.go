package imagesource

import (
	"net/http"

	"github.com/rohmanhakim/article-prep/internal/metadata"
	"github.com/rohmanhakim/article-prep/pkg/retry"
	"github.com/rohmanhakim/article-prep/pkg/urlutil"
)

// RemoteOptions configures the HTTP side of Open.
type RemoteOptions struct {
	HTTPClient *http.Client
	UserAgent  string
	RetryParam retry.RetryParam
}

// Open returns a RemoteSource for http(s) locations and a FileSource for
// everything else.
func Open(metadataSink metadata.MetadataSink, location string, opts RemoteOptions) Source {
	if urlutil.IsHTTP(location) {
		src := NewRemoteSource(metadataSink, opts.HTTPClient, location, opts.UserAgent, opts.RetryParam)
		return &src
	}
	src := NewFileSource(metadataSink, location)
	return &src
}
