package normalize

import (
	"bytes"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

const (
	nbspEntity = "&nbsp;"
	// nbspPlaceholder stands in for the entity while a tree pass runs, because
	// the parser would otherwise decode it into a bare U+00A0 and the encoding
	// toggle could no longer find it.
	nbspPlaceholder = "\ue000nbsp\ue001"
)

// guardEntities hides non-breaking-space entities from the HTML parser.
func guardEntities(document string) string {
	return strings.ReplaceAll(document, nbspEntity, nbspPlaceholder)
}

// restoreEntities undoes guardEntities on rendered markup.
func restoreEntities(document string) string {
	return strings.ReplaceAll(document, nbspPlaceholder, nbspEntity)
}

// isFullDocument reports whether the input carries its own html/doctype
// wrapper. Article bodies are usually bare fragments.
func isFullDocument(document string) bool {
	head := strings.ToLower(strings.TrimSpace(document))
	return strings.HasPrefix(head, "<!doctype") || strings.HasPrefix(head, "<html")
}

func newElement(tag atom.Atom) *html.Node {
	return &html.Node{
		Type:     html.ElementNode,
		Data:     tag.String(),
		DataAtom: tag,
	}
}

// parseDocument parses a document into a tree. Fragments are parsed in a
// <body> context and hung under a synthetic body node so that every rule can
// treat the result as one tree.
func parseDocument(document string) (*html.Node, bool, error) {
	if isFullDocument(document) {
		root, err := html.Parse(strings.NewReader(document))
		return root, true, err
	}

	root := newElement(atom.Body)
	nodes, err := html.ParseFragment(strings.NewReader(document), newElement(atom.Body))
	if err != nil {
		return nil, false, err
	}
	for _, n := range nodes {
		root.AppendChild(n)
	}
	return root, false, nil
}

func renderDocument(root *html.Node, full bool) (string, error) {
	var buf bytes.Buffer
	if full {
		if err := html.Render(&buf, root); err != nil {
			return "", err
		}
		return relaxTextEscapes(buf.String()), nil
	}
	for c := root.FirstChild; c != nil; c = c.NextSibling {
		if err := html.Render(&buf, c); err != nil {
			return "", err
		}
	}
	return relaxTextEscapes(buf.String()), nil
}

// relaxTextEscapes turns the numeric quote escapes the renderer emits for
// text content back into literal quotes. Quotes inside tags are left escaped.
// Captions are matched against prose, so prose must keep the characters the
// author typed.
func relaxTextEscapes(rendered string) string {
	if !strings.Contains(rendered, "&#34;") && !strings.Contains(rendered, "&#39;") {
		return rendered
	}

	var b strings.Builder
	b.Grow(len(rendered))
	inTag := false
	for i := 0; i < len(rendered); {
		c := rendered[i]
		switch {
		case c == '<':
			inTag = true
		case c == '>':
			inTag = false
		case !inTag && strings.HasPrefix(rendered[i:], "&#34;"):
			b.WriteByte('"')
			i += len("&#34;")
			continue
		case !inTag && strings.HasPrefix(rendered[i:], "&#39;"):
			b.WriteByte('\'')
			i += len("&#39;")
			continue
		}
		b.WriteByte(c)
		i++
	}
	return b.String()
}

// transform runs fn over a freshly parsed tree of document and renders the
// result. The input string is never mutated.
func transform(pass string, document string, fn func(root *html.Node)) (string, error) {
	root, full, err := parseDocument(guardEntities(document))
	if err != nil {
		return "", &NormalizationError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseUnparseableInput,
			Pass:      pass,
		}
	}

	fn(root)

	rendered, err := renderDocument(root, full)
	if err != nil {
		return "", &NormalizationError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseRenderFailure,
			Pass:      pass,
		}
	}
	return restoreEntities(rendered), nil
}

// childNodes snapshots the children of node. Rules that move or remove
// children iterate over the snapshot, never over the live sibling list.
func childNodes(node *html.Node) []*html.Node {
	var children []*html.Node
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		children = append(children, child)
	}
	return children
}

// unwrapNode replaces node with its own children. A node without children is
// simply removed.
func unwrapNode(node *html.Node) {
	parent := node.Parent
	if parent == nil {
		return
	}
	for _, child := range childNodes(node) {
		node.RemoveChild(child)
		parent.InsertBefore(child, node)
	}
	parent.RemoveChild(node)
}

// descendants returns every element below node whose atom is tag, in document order.
func descendants(node *html.Node, tag atom.Atom) []*html.Node {
	var found []*html.Node
	var walk func(n *html.Node)
	walk = func(n *html.Node) {
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			if c.Type == html.ElementNode && c.DataAtom == tag {
				found = append(found, c)
			}
			walk(c)
		}
	}
	walk(node)
	return found
}

func isBlankText(node *html.Node) bool {
	return node.Type == html.TextNode && strings.TrimSpace(node.Data) == ""
}

// isBlankNode reports whether node holds neither elements nor visible text.
func isBlankNode(node *html.Node) bool {
	for child := node.FirstChild; child != nil; child = child.NextSibling {
		switch child.Type {
		case html.ElementNode:
			return false
		case html.TextNode:
			if strings.TrimSpace(child.Data) != "" {
				return false
			}
		}
	}
	return true
}

func attrValue(node *html.Node, key string) (string, bool) {
	for _, attr := range node.Attr {
		if attr.Namespace == "" && attr.Key == key {
			return attr.Val, true
		}
	}
	return "", false
}
