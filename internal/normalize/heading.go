package normalize

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// EnforceHeadingEmphasis makes every heading of the given level carry its
// whole content inside exactly one <strong>. Legacy <b> nodes are renamed to
// <strong> first; if the content is then not a single <strong>, nested
// <strong> nodes are flattened and the content is wrapped in a new one.
// Headings without visible content are skipped.
func EnforceHeadingEmphasis(document string, level atom.Atom) (string, error) {
	pass := PassHeadingEmphasisH2
	if level == atom.H3 {
		pass = PassHeadingEmphasisH3
	}
	return transform(pass, document, func(root *html.Node) {
		for _, heading := range descendants(root, level) {
			enforceEmphasis(heading)
		}
	})
}

// enforceEmphasis rewrites one heading in place.
func enforceEmphasis(heading *html.Node) {
	for _, bold := range descendants(heading, atom.B) {
		bold.Data = atom.Strong.String()
		bold.DataAtom = atom.Strong
	}

	if isBlankNode(heading) {
		return
	}

	strongs := descendants(heading, atom.Strong)
	if len(strongs) == 1 && soleElementChild(heading) == strongs[0] {
		return
	}

	for _, strong := range strongs {
		unwrapNode(strong)
	}

	wrapper := newElement(atom.Strong)
	for _, child := range childNodes(heading) {
		heading.RemoveChild(child)
		wrapper.AppendChild(child)
	}
	heading.AppendChild(wrapper)
}

// soleElementChild returns the only element child of node when every other
// child is blank text, nil otherwise.
func soleElementChild(node *html.Node) *html.Node {
	var sole *html.Node
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case html.ElementNode:
			if sole != nil {
				return nil
			}
			sole = child
		case html.TextNode:
			if !isBlankText(child) {
				return nil
			}
		}
	}
	return sole
}
