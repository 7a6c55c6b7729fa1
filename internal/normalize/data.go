package normalize

import "golang.org/x/net/html/atom"

// Pass is one rewrite rule of the normalizer. Apply reads the whole document
// and returns a new one; passes share nothing besides the document itself.
type Pass struct {
	Name  string
	Apply func(document string) (string, error)
}

const (
	PassSpanUnwrap        = "span-unwrap"
	PassLineBreakOpen     = "line-break-open"
	PassAnchorTarget      = "anchor-target"
	PassHeadingEmphasisH2 = "heading-emphasis-h2"
	PassHeadingEmphasisH3 = "heading-emphasis-h3"
	PassNumberedListH2    = "numbered-list-h2"
	PassNumberedListH3    = "numbered-list-h3"
	PassLineBreakClose    = "line-break-close"
)

// Passes returns the normalizer rules in the order they must run.
// Later rules assume the earlier ones already ran.
func Passes(baseDomain string) []Pass {
	return []Pass{
		{Name: PassSpanUnwrap, Apply: UnwrapInertSpans},
		{Name: PassLineBreakOpen, Apply: OpenLineBreaks},
		{Name: PassAnchorTarget, Apply: func(document string) (string, error) {
			return InjectAnchorTargets(document, baseDomain)
		}},
		{Name: PassHeadingEmphasisH2, Apply: func(document string) (string, error) {
			return EnforceHeadingEmphasis(document, atom.H2)
		}},
		{Name: PassHeadingEmphasisH3, Apply: func(document string) (string, error) {
			return EnforceHeadingEmphasis(document, atom.H3)
		}},
		{Name: PassNumberedListH2, Apply: func(document string) (string, error) {
			return PromoteNumberedLists(document, atom.H2)
		}},
		{Name: PassNumberedListH3, Apply: func(document string) (string, error) {
			return PromoteNumberedLists(document, atom.H3)
		}},
		{Name: PassLineBreakClose, Apply: func(document string) (string, error) {
			return CloseLineBreaks(document), nil
		}},
	}
}

// Heading is a heading element's level and trimmed text content.
type Heading struct {
	Level int
	Text  string
}
