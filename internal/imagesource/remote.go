package imagesource

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rohmanhakim/article-prep/internal/caption"
	"github.com/rohmanhakim/article-prep/internal/metadata"
	"github.com/rohmanhakim/article-prep/pkg/failure"
	"github.com/rohmanhakim/article-prep/pkg/retry"
)

// maxManifestBytes bounds the body read from a remote manifest.
const maxManifestBytes = 4 << 20

// RemoteSource downloads a manifest over HTTP. Transport errors, 5xx and 429
// responses are retried with backoff; other failures are returned at once.
// The format follows the response media type, then the URL path.
type RemoteSource struct {
	metadataSink metadata.MetadataSink
	httpClient   *http.Client
	manifestURL  string
	userAgent    string
	retryParam   retry.RetryParam
}

func NewRemoteSource(
	metadataSink metadata.MetadataSink,
	httpClient *http.Client,
	manifestURL string,
	userAgent string,
	retryParam retry.RetryParam,
) RemoteSource {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}
	return RemoteSource{
		metadataSink: metadataSink,
		httpClient:   httpClient,
		manifestURL:  manifestURL,
		userAgent:    userAgent,
		retryParam:   retryParam,
	}
}

func (r *RemoteSource) Load(ctx context.Context, limit int) ([]caption.ImageRecord, failure.ClassifiedError) {
	records, err := r.load(ctx, limit)
	if err != nil {
		recordSourceError(r.metadataSink, "RemoteSource.Load", metadata.NewAttr(metadata.AttrURL, r.manifestURL), err)
		return records, err
	}
	return records, nil
}

func (r *RemoteSource) load(ctx context.Context, limit int) ([]caption.ImageRecord, *SourceError) {
	records, err := retry.Retry(ctx, r.retryParam, func() ([]caption.ImageRecord, failure.ClassifiedError) {
		records, err := r.fetchOnce(ctx)
		if err != nil {
			return nil, err
		}
		return records, nil
	})
	if err != nil {
		var retryErr *retry.RetryError
		if errors.As(err, &retryErr) {
			if retryErr.Cause == retry.ErrInterrupted {
				return nil, &SourceError{Message: retryErr.Error(), Retryable: true, Cause: ErrCauseInterrupted}
			}
			return nil, &SourceError{Message: retryErr.Error(), Retryable: true, Cause: ErrCauseRetriesExhausted}
		}
		var sourceErr *SourceError
		if errors.As(err, &sourceErr) {
			return nil, sourceErr
		}
		return nil, &SourceError{Message: err.Error(), Cause: ErrCauseNetworkFailure}
	}
	return take(ctx, records, limit)
}

func (r *RemoteSource) fetchOnce(ctx context.Context) ([]caption.ImageRecord, *SourceError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, r.manifestURL, nil)
	if err != nil {
		return nil, &SourceError{
			Message: fmt.Sprintf("failed to create request: %v", err),
			Cause:   ErrCauseNetworkFailure,
		}
	}
	if r.userAgent != "" {
		req.Header.Set("User-Agent", r.userAgent)
	}
	req.Header.Set("Accept", "application/json, application/yaml;q=0.9, */*;q=0.1")

	resp, err := r.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, &SourceError{Message: err.Error(), Cause: ErrCauseInterrupted}
		}
		return nil, &SourceError{
			Message:   fmt.Sprintf("request failed: %v", err),
			Retryable: true,
			Cause:     ErrCauseNetworkFailure,
		}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 500:
		return nil, &SourceError{
			Message:   fmt.Sprintf("server error: %d", resp.StatusCode),
			Retryable: true,
			Cause:     ErrCauseRequest5xx,
		}
	case resp.StatusCode == http.StatusTooManyRequests:
		return nil, &SourceError{
			Message:   "rate limited (429)",
			Retryable: true,
			Cause:     ErrCauseRequestTooMany,
		}
	case resp.StatusCode >= 300:
		return nil, &SourceError{
			Message: fmt.Sprintf("unexpected status: %d", resp.StatusCode),
			Cause:   ErrCauseRequestRejected,
		}
	}

	format, ok := FormatFromContentType(resp.Header.Get("Content-Type"))
	if !ok {
		format, ok = FormatFromPath(req.URL.Path)
	}
	if !ok {
		return nil, &SourceError{
			Message: fmt.Sprintf("content type %q", resp.Header.Get("Content-Type")),
			Cause:   ErrCauseUnsupportedType,
		}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxManifestBytes))
	if err != nil {
		return nil, &SourceError{
			Message:   fmt.Sprintf("failed to read response body: %v", err),
			Retryable: true,
			Cause:     ErrCauseReadFailure,
		}
	}

	return DecodeManifest(body, format)
}
