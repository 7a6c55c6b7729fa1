/*
Responsibilities
- Unwrap inert editor spans
- Mark links that leave the site
- Enforce emphasis on h2/h3 headings
- Flatten heading-only lists into numbered headings
- Keep non-breaking spaces in their canonical closed form

Every rule is a pure function of the document. The rules run once, front to
back, in the order returned by Passes.
*/
package normalize

import (
	"errors"
	"time"

	"github.com/rohmanhakim/article-prep/internal/metadata"
	"github.com/rohmanhakim/article-prep/pkg/failure"
)

type Normalizer struct {
	metadataSink metadata.MetadataSink
}

func NewNormalizer(metadataSink metadata.MetadataSink) Normalizer {
	return Normalizer{
		metadataSink: metadataSink,
	}
}

// Normalize runs every pass over document and records one event per pass.
// On failure the pass that failed is recorded and nothing is returned.
func (n *Normalizer) Normalize(
	document string,
	baseDomain string,
) (string, failure.ClassifiedError) {
	for _, pass := range Passes(baseDomain) {
		start := time.Now()
		next, err := pass.Apply(document)
		if err != nil {
			var normalizationError *NormalizationError
			if !errors.As(err, &normalizationError) {
				normalizationError = &NormalizationError{
					Message: err.Error(),
					Cause:   ErrCauseUnparseableInput,
					Pass:    pass.Name,
				}
			}
			n.metadataSink.RecordError(
				time.Now(),
				"normalize",
				"Normalizer.Normalize",
				mapNormalizationErrorToMetadataCause(normalizationError),
				err.Error(),
				[]metadata.Attribute{
					metadata.NewAttr(metadata.AttrPass, pass.Name),
				},
			)
			return "", normalizationError
		}
		n.metadataSink.RecordPass(pass.Name, next != document, time.Since(start))
		document = next
	}
	return document, nil
}

// Normalize applies every pass to document without recording metadata.
func Normalize(document string, baseDomain string) (string, error) {
	for _, pass := range Passes(baseDomain) {
		next, err := pass.Apply(document)
		if err != nil {
			return "", err
		}
		document = next
	}
	return document, nil
}
