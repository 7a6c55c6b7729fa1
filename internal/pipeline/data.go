package pipeline

import (
	"github.com/rohmanhakim/article-prep/internal/normalize"
	"github.com/rohmanhakim/article-prep/internal/preview"
	"github.com/rohmanhakim/article-prep/internal/storage"
)

// Mode selects which stages a run executes.
type Mode int

const (
	// ModeProcess normalizes the document and merges image captions into it.
	ModeProcess Mode = iota
	// ModeNormalize only runs the structural normalizer.
	ModeNormalize
	// ModeMerge only merges image captions into an already normalized document.
	ModeMerge
)

func (m Mode) String() string {
	switch m {
	case ModeNormalize:
		return "normalize"
	case ModeMerge:
		return "merge"
	default:
		return "process"
	}
}

func (m Mode) normalizes() bool {
	return m == ModeProcess || m == ModeNormalize
}

func (m Mode) merges() bool {
	return m == ModeProcess || m == ModeMerge
}

type Execution struct {
	Document string
	// Headings holds the h2 titles of the final document.
	Headings []normalize.Heading
	Patterns []string

	TotalImages int
	Matched     int
	Prepended   int
	// ImagesIncomplete is set when acquisition stopped before every
	// requested record was read. The merge still ran with what was read.
	ImagesIncomplete bool

	PreviewMarkdown []byte
	// PreviewHTML is the Markdown preview rendered back to HTML.
	PreviewHTML []byte
	Links       preview.LinkCounts
	WriteResult storage.WriteResult
}
