package normalize

import (
	"regexp"
	"strings"
)

// lineBreakTag is the open form of a non-breaking space. It is spelled the
// way the HTML renderer spells a <br>, so a tree pass leaves it unchanged.
const lineBreakTag = "<br/>"

var lineBreakRe = regexp.MustCompile(`(?i)<br\s*/?>`)

// OpenLineBreaks replaces every literal &nbsp; entity in text with a
// line-break tag. Rules that follow reason about line breaks, not space
// entities. Entities inside tags (attribute values) are left alone, since a
// tag there would be escaped by the next tree pass and never come back.
func OpenLineBreaks(document string) (string, error) {
	if !strings.Contains(document, nbspEntity) {
		return document, nil
	}

	var b strings.Builder
	b.Grow(len(document))
	inTag := false
	for i := 0; i < len(document); {
		c := document[i]
		switch {
		case c == '<':
			inTag = true
		case c == '>':
			inTag = false
		case !inTag && strings.HasPrefix(document[i:], nbspEntity):
			b.WriteString(lineBreakTag)
			i += len(nbspEntity)
			continue
		}
		b.WriteByte(c)
		i++
	}
	return b.String(), nil
}

// CloseLineBreaks is the inverse of OpenLineBreaks: every <br>, <br/> or
// <br /> in any letter case becomes &nbsp; again. The closed form is the
// canonical stored form.
func CloseLineBreaks(document string) string {
	return lineBreakRe.ReplaceAllLiteralString(document, nbspEntity)
}
