package normalize

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

const (
	externalTarget = "_blank"
	externalRel    = "noopener noreferrer"
)

// InjectAnchorTargets marks every anchor whose href does not start with
// baseDomain to open in a new browsing context without opener or referrer.
// Anchors within the base domain are left as they are. Running it again on an
// already marked anchor changes nothing.
func InjectAnchorTargets(document string, baseDomain string) (string, error) {
	return transform(PassAnchorTarget, document, func(root *html.Node) {
		goquery.NewDocumentFromNode(root).Find("a[href]").Each(func(_ int, s *goquery.Selection) {
			href, _ := s.Attr("href")
			if strings.HasPrefix(strings.TrimSpace(href), baseDomain) {
				return
			}
			s.SetAttr("target", externalTarget)
			s.SetAttr("rel", externalRel)
		})
	})
}
