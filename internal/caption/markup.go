package caption

import (
	"fmt"
	"html"
	"strings"
)

const markupTemplate = `[caption id="attachment_%s" align="aligncenter" width="%d"]` +
	`<img class="size-full wp-image-%s" src="%s" alt="%s" width="%d" height="%d" /> ` +
	`%s[/caption]`

// GenerateMarkup renders the caption shortcode for record. Hyphens in the
// image name become spaces in the alt text.
func GenerateMarkup(record ImageRecord) string {
	alt := strings.ReplaceAll(record.Name, "-", " ")
	return fmt.Sprintf(markupTemplate,
		record.ID,
		record.Width,
		record.ID,
		html.EscapeString(record.URL),
		html.EscapeString(alt),
		record.Width,
		record.Height,
		strings.TrimSpace(record.Caption),
	)
}

// GenerateMarkups renders one markup per record, keeping record order.
func GenerateMarkups(records []ImageRecord) []string {
	markups := make([]string, 0, len(records))
	for _, record := range records {
		markups = append(markups, GenerateMarkup(record))
	}
	return markups
}
