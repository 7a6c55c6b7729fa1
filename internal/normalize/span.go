package normalize

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// inertStyle is the only span style the editor emits without meaning anything.
const inertStyle = "font-weight:400"

// UnwrapInertSpans replaces every <span style="font-weight: 400;"> with its
// own content and drops such spans when they are empty. The style may be
// written with any spacing, quoting or letter case. Spans carrying any other
// style or any other attribute are left alone.
func UnwrapInertSpans(document string) (string, error) {
	return transform(PassSpanUnwrap, document, func(root *html.Node) {
		goquery.NewDocumentFromNode(root).Find("span[style]").Each(func(_ int, s *goquery.Selection) {
			node := s.Get(0)
			if isInertSpan(node) {
				unwrapNode(node)
			}
		})
	})
}

func isInertSpan(node *html.Node) bool {
	if len(node.Attr) != 1 {
		return false
	}
	style, ok := attrValue(node, "style")
	if !ok {
		return false
	}
	return normalizeStyle(style) == inertStyle
}

// normalizeStyle strips whitespace, stray quotes and trailing semicolons and
// lowercases the declaration list.
func normalizeStyle(style string) string {
	compact := strings.Join(strings.Fields(style), "")
	compact = strings.Trim(compact, `"'`)
	compact = strings.TrimRight(compact, ";")
	return strings.ToLower(compact)
}
