package normalize

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// ExtractHeadings returns the headings of the given level (1-6) in document
// order. Headings without text are skipped.
func ExtractHeadings(document string, level int) ([]Heading, error) {
	if level < 1 || level > 6 {
		return nil, fmt.Errorf("heading level out of range: %d", level)
	}

	root, _, err := parseDocument(document)
	if err != nil {
		return nil, &NormalizationError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseUnparseableInput,
		}
	}

	var headings []Heading
	tag := fmt.Sprintf("h%d", level)
	goquery.NewDocumentFromNode(root).Find(tag).Each(func(_ int, s *goquery.Selection) {
		text := strings.Join(strings.Fields(s.Text()), " ")
		if text == "" {
			return
		}
		headings = append(headings, Heading{Level: level, Text: text})
	})
	return headings, nil
}
