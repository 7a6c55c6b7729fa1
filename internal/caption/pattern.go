package caption

import (
	"regexp"
	"strings"
)

// wordTagGap lets a single markup tag, with the whitespace around it, follow
// a caption word in the document.
const wordTagGap = `(` + wordSeparator + `<[^>]+>` + wordSeparator + `)?`

// wordSeparator matches any whitespace run, including the no-break spaces
// an editor leaves between words. Words are split with strings.Fields, which
// treats those as whitespace too.
const wordSeparator = `[\s\p{Zs}]*`

const patternFlags = `(?is)`

var descriptionRe = regexp.MustCompile(`(?s)<img[^>]*>(.*?)\[/caption\]`)

// DescriptiveText returns the caption text of markup: whatever follows the
// image tag up to the closing shortcode, trimmed. It reports false when the
// markup has no image tag, no closing shortcode or no text between them.
func DescriptiveText(markup string) (string, bool) {
	m := descriptionRe.FindStringSubmatch(markup)
	if m == nil {
		return "", false
	}
	text := strings.TrimSpace(m[1])
	return text, text != ""
}

// BuildPattern turns descriptive text into a match pattern. Every word must
// appear in order and may be followed by one markup tag, so the pattern still
// matches after the editor wraps some words in inline tags.
func BuildPattern(text string) string {
	words := strings.Fields(text)
	parts := make([]string, 0, len(words))
	for _, word := range words {
		parts = append(parts, regexp.QuoteMeta(word)+wordTagGap)
	}
	return strings.Join(parts, wordSeparator)
}

// compilePattern compiles pattern case-insensitively with dot matching
// newlines.
func compilePattern(pattern string) (*regexp.Regexp, error) {
	return regexp.Compile(patternFlags + pattern)
}
