package normalize

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// PromoteNumberedLists flattens list items that wrap a single heading of the
// given level into numbered sibling headings.
//
// Every level-1 item whose only meaningful child is such a heading (carrying a
// <strong>) is replaced by that heading, and "{n}. " is prepended to the
// heading's <strong>. The counter starts at 1 and runs across every list in
// the document. The h3 variant applies the emphasis rule to the heading first
// so it also holds when called on its own, ahead of the emphasis pass.
//
// Items that do not qualify stay inside a list: the original wrapper is split
// into runs so document order is kept, and a list in which nothing qualifies
// is not touched.
//
// Lifting a heading out of a nested list can leave the enclosing item holding
// only that heading. Lists are rescanned until nothing moves; a heading that
// was already numbered in this call is lifted again but never renumbered.
func PromoteNumberedLists(document string, level atom.Atom) (string, error) {
	pass := PassNumberedListH2
	var prepare func(*html.Node)
	if level == atom.H3 {
		pass = PassNumberedListH3
		prepare = enforceEmphasis
	}

	return transform(pass, document, func(root *html.Node) {
		numbered := make(map[*html.Node]bool)
		counter := 0
		for {
			var lists []*html.Node
			goquery.NewDocumentFromNode(root).Find("ul, ol").Each(func(_ int, s *goquery.Selection) {
				lists = append(lists, s.Get(0))
			})

			moved := false
			for _, list := range lists {
				var changed bool
				counter, changed = promoteList(list, level, prepare, counter, numbered)
				moved = moved || changed
			}
			if !moved {
				return
			}
		}
	})
}

// promoteList promotes the qualifying items of one list. It returns the
// counter value after the last number it handed out and whether any item
// was promoted.
func promoteList(
	list *html.Node,
	level atom.Atom,
	prepare func(*html.Node),
	counter int,
	numbered map[*html.Node]bool,
) (int, bool) {
	if list.Parent == nil {
		return counter, false
	}

	promoted := make(map[*html.Node]*html.Node)
	for _, item := range childNodes(list) {
		if item.Type != html.ElementNode || item.DataAtom != atom.Li || itemLevel(item) != 1 {
			continue
		}
		heading := soleElementChild(item)
		if heading == nil || heading.DataAtom != level {
			continue
		}
		if numbered[heading] {
			promoted[item] = heading
			continue
		}
		if prepare != nil {
			prepare(heading)
		}
		strongs := descendants(heading, atom.Strong)
		if len(strongs) == 0 {
			continue
		}
		counter++
		prependText(strongs[0], fmt.Sprintf("%d. ", counter))
		numbered[heading] = true
		promoted[item] = heading
	}

	if len(promoted) == 0 {
		return counter, false
	}
	splitList(list, promoted)
	return counter, true
}

// splitList replaces list with its promoted headings, keeping the items that
// were not promoted inside copies of the original wrapper at their position.
func splitList(list *html.Node, promoted map[*html.Node]*html.Node) {
	parent := list.Parent
	var run *html.Node
	for _, child := range childNodes(list) {
		list.RemoveChild(child)

		if heading, ok := promoted[child]; ok {
			child.RemoveChild(heading)
			parent.InsertBefore(heading, list)
			run = nil
			continue
		}

		if run == nil {
			if child.Type != html.ElementNode {
				parent.InsertBefore(child, list)
				continue
			}
			run = shallowCopy(list)
			parent.InsertBefore(run, list)
		}
		run.AppendChild(child)
	}
	parent.RemoveChild(list)
}

// itemLevel reads the nesting level of a list item from aria-level. Items
// without it are leveled by the number of list items they sit inside.
func itemLevel(item *html.Node) int {
	if raw, ok := attrValue(item, "aria-level"); ok {
		level, err := strconv.Atoi(strings.TrimSpace(raw))
		if err != nil {
			return 0
		}
		return level
	}

	level := 1
	for p := item.Parent; p != nil; p = p.Parent {
		if p.Type == html.ElementNode && p.DataAtom == atom.Li {
			level++
		}
	}
	return level
}

func prependText(node *html.Node, text string) {
	if first := node.FirstChild; first != nil && first.Type == html.TextNode {
		first.Data = text + first.Data
		return
	}
	node.InsertBefore(&html.Node{Type: html.TextNode, Data: text}, node.FirstChild)
}

func shallowCopy(node *html.Node) *html.Node {
	attrs := make([]html.Attribute, len(node.Attr))
	copy(attrs, node.Attr)
	return &html.Node{
		Type:      node.Type,
		Data:      node.Data,
		DataAtom:  node.DataAtom,
		Namespace: node.Namespace,
		Attr:      attrs,
	}
}
