package pipeline

import (
	"context"
	"time"

	"github.com/rohmanhakim/article-prep/internal/caption"
	"github.com/rohmanhakim/article-prep/internal/config"
	"github.com/rohmanhakim/article-prep/internal/imagesource"
	"github.com/rohmanhakim/article-prep/internal/metadata"
	"github.com/rohmanhakim/article-prep/internal/normalize"
	"github.com/rohmanhakim/article-prep/internal/preview"
	"github.com/rohmanhakim/article-prep/internal/storage"
	"github.com/rohmanhakim/article-prep/pkg/failure"
)

/*
 Pipeline is the sole control-flow authority of a run.

 Stages may detect and classify failure, but only the pipeline decides
 whether a run continues or stops:
 - a fatal error from any stage stops the run and is returned
 - a recoverable error is counted and the run continues with what it has

 Stage order is fixed and never loops back:
	normalize -> acquire images -> merge captions -> close line breaks
	-> markdown preview (optional) -> storage

 Metadata emission is observational only and MUST NOT influence
 control flow.
*/

type Pipeline struct {
	metadataSink metadata.MetadataSink
	runFinalizer metadata.RunFinalizer
	normalizer   normalize.Normalizer
	merger       caption.Merger
	storageSink  storage.Sink
}

func NewPipeline(
	metadataSink metadata.MetadataSink,
	runFinalizer metadata.RunFinalizer,
	storageSink storage.Sink,
) Pipeline {
	return Pipeline{
		metadataSink: metadataSink,
		runFinalizer: runFinalizer,
		normalizer:   normalize.NewNormalizer(metadataSink),
		merger:       caption.NewMerger(metadataSink),
		storageSink:  storageSink,
	}
}

// Execute runs the stages selected by mode over document. source may be nil
// when mode does not merge.
func (p *Pipeline) Execute(
	ctx context.Context,
	cfg config.Config,
	mode Mode,
	document string,
	source imagesource.Source,
) (Execution, error) {
	start := time.Now()

	var (
		execution   Execution
		totalErrors int
	)

	// Stats are recorded exactly once, whatever the outcome.
	defer func() {
		p.runFinalizer.RecordRunStats(
			execution.TotalImages,
			execution.Matched,
			execution.Prepended,
			totalErrors,
			time.Since(start),
		)
	}()

	// 1. Structural normalization
	if mode.normalizes() {
		normalized, err := p.normalizer.Normalize(document, cfg.BaseDomain())
		if err != nil {
			totalErrors++
			return Execution{}, err
		}
		document = normalized
	}

	if mode.merges() {
		if source == nil {
			err := &PipelineError{
				Message: mode.String() + " needs image records",
				Cause:   ErrCauseMissingSource,
			}
			p.metadataSink.RecordError(
				time.Now(),
				"pipeline",
				"Pipeline.Execute",
				mapPipelineErrorToMetadataCause(err),
				err.Error(),
				[]metadata.Attribute{},
			)
			totalErrors++
			return Execution{}, err
		}

		// 2. Acquire image records
		records, err := source.Load(ctx, cfg.ImageLimit())
		if err != nil {
			totalErrors++
			if failure.IsFatal(err) {
				return Execution{}, err
			}
			// recoverable → already recorded → merge what was read
			execution.ImagesIncomplete = true
		}
		execution.TotalImages = len(records)

		// 3. Caption merge
		result := p.merger.Merge(document, records)
		execution.Patterns = result.Patterns
		execution.Matched = result.Matched
		execution.Prepended = result.Prepended

		// 4. The merge may reintroduce open line breaks through captions.
		document = normalize.CloseLineBreaks(result.Document)
	}

	execution.Document = document

	headings, err := normalize.ExtractHeadings(document, 2)
	if err == nil {
		execution.Headings = headings
	}

	// 5. Markdown preview
	if cfg.PreviewMarkdown() {
		renderer := preview.NewRenderer(p.metadataSink, cfg.BaseDomain())
		rendered, err := renderer.Render(document)
		if err != nil {
			totalErrors++
			if failure.IsFatal(err) {
				return Execution{}, err
			}
		} else {
			execution.PreviewMarkdown = rendered.GetMarkdownContent()
			execution.PreviewHTML = rendered.HTML()
			execution.Links = rendered.CountLinks()
		}
	}

	// 6. Write artifacts
	writeResult, werr := p.storageSink.Write(
		cfg.OutputDir(),
		storage.NewDocument(document, execution.PreviewMarkdown, execution.PreviewHTML),
		cfg.HashAlgo(),
	)
	if werr != nil {
		totalErrors++
		return Execution{}, werr
	}
	execution.WriteResult = writeResult

	return execution, nil
}
