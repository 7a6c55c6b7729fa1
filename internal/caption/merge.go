/*
Responsibilities
- Render caption markup for every image record
- Place each markup where the document mentions its caption
- Prepend the images that could not be placed

Matching is tolerant: each caption word may be followed by one inline tag in
the document. Only the leftmost match is replaced. An image is never dropped;
when its caption is empty or not found it is prepended to the document.

The replaced span ends at the last caption word. A tag matched after that word
stays in the document, which keeps a wrapper such as the enclosing </p>
balanced. Tags inside the span are replaced with it, so a wrapper that opens
before a caption word and closes after the last one loses its opening tag and
leaves the closing tag stranded: "cat <em>sits on</em>" becomes the markup
followed by "</em>".
*/
package caption

import (
	"strings"
	"time"

	"github.com/rohmanhakim/article-prep/internal/metadata"
)

// placeholderBase is the first code point used to stand in for inserted
// markup while later patterns run. Plane 15 private-use characters never
// appear in captions, and no pattern can match across them.
const placeholderBase = 0xF0000

// uncaptionedSeparator follows every prepended markup.
const uncaptionedSeparator = "\n\n"

type Merger struct {
	metadataSink metadata.MetadataSink
}

func NewMerger(metadataSink metadata.MetadataSink) Merger {
	return Merger{
		metadataSink: metadataSink,
	}
}

// Merge renders markup for records and merges it into document. Pattern
// failures are recorded and degrade to prepending.
func (m *Merger) Merge(document string, records []ImageRecord) Result {
	return insert(document, GenerateMarkups(records), func(err *CaptionError) {
		m.metadataSink.RecordError(
			time.Now(),
			"caption",
			"Merger.Merge",
			mapCaptionErrorToMetadataCause(err),
			err.Error(),
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrPattern, err.Pattern),
			},
		)
	})
}

// Merge renders markup for records, merges it into document and returns the
// new document with the patterns it attempted.
func Merge(document string, records []ImageRecord) (string, []string) {
	result := Insert(document, GenerateMarkups(records))
	return result.Document, result.Patterns
}

// Insert merges ready-made caption markups into document in the given order.
func Insert(document string, markups []string) Result {
	return insert(document, markups, nil)
}

func insert(document string, markups []string, onError func(*CaptionError)) Result {
	var (
		result      Result
		placed      []string
		uncaptioned []string
	)

	for _, markup := range markups {
		text, ok := DescriptiveText(markup)
		if !ok {
			uncaptioned = append(uncaptioned, markup)
			continue
		}

		pattern := BuildPattern(text)
		result.Patterns = append(result.Patterns, pattern)

		re, err := compilePattern(pattern)
		if err != nil {
			if onError != nil {
				onError(&CaptionError{
					Message:   err.Error(),
					Retryable: false,
					Cause:     ErrCauseInvalidPattern,
					Pattern:   pattern,
				})
			}
			uncaptioned = append(uncaptioned, markup)
			continue
		}

		loc := re.FindStringSubmatchIndex(document)
		if loc == nil {
			uncaptioned = append(uncaptioned, markup)
			continue
		}

		start, end := loc[0], loc[1]
		// A tag after the last word belongs to the surrounding markup, not
		// to the caption text. Leave it in place.
		if last := len(loc) - 2; last >= 2 && loc[last] >= 0 {
			end = loc[last]
		}

		token := placeholder(len(placed))
		placed = append(placed, markup)
		document = document[:start] + token + document[end:]
		result.Matched++
	}

	document = expandPlaceholders(document, placed)

	prefix, count := prependBlock(uncaptioned)
	result.Document = prefix + document
	result.Prepended = count
	return result
}

func placeholder(index int) string {
	return string(rune(placeholderBase + index))
}

func expandPlaceholders(document string, placed []string) string {
	if len(placed) == 0 {
		return document
	}
	pairs := make([]string, 0, 2*len(placed))
	for i, markup := range placed {
		pairs = append(pairs, placeholder(i), markup)
	}
	return strings.NewReplacer(pairs...).Replace(document)
}

// prependBlock deduplicates markups by exact string, keeping the first
// occurrence, and joins them so the document begins with them in that order.
func prependBlock(markups []string) (string, int) {
	seen := make(map[string]struct{}, len(markups))
	var b strings.Builder
	count := 0
	for _, markup := range markups {
		if _, ok := seen[markup]; ok {
			continue
		}
		seen[markup] = struct{}{}
		b.WriteString(markup)
		b.WriteString(uncaptionedSeparator)
		count++
	}
	return b.String(), count
}
