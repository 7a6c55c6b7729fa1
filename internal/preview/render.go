package preview

import (
	"regexp"
	"strings"
	"time"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/PuerkitoBio/goquery"
	"github.com/rohmanhakim/article-prep/internal/metadata"
	"github.com/rohmanhakim/article-prep/pkg/failure"
	"golang.org/x/net/html"
)

/*
Responsibilities
- Render the processed article as Markdown for a quick read-through
- List the links and images the article points at

The preview is a diagnostic artifact. It never feeds back into the HTML
document, and caption shortcodes are shown as figures with their caption
text below the image.
*/

var captionRe = regexp.MustCompile(`(?s)\[caption[^\]]*\](.*?<img[^>]*>)\s*(.*?)\[/caption\]`)

type Renderer struct {
	metadataSink metadata.MetadataSink
	baseDomain   string
}

func NewRenderer(metadataSink metadata.MetadataSink, baseDomain string) Renderer {
	return Renderer{
		metadataSink: metadataSink,
		baseDomain:   baseDomain,
	}
}

func (r *Renderer) Render(document string) (Preview, failure.ClassifiedError) {
	p, err := render(document, r.baseDomain)
	if err != nil {
		r.metadataSink.RecordError(
			time.Now(),
			"preview",
			"Renderer.Render",
			mapPreviewErrorToMetadataCause(err),
			err.Error(),
			[]metadata.Attribute{},
		)
		return Preview{}, err
	}
	return p, nil
}

// figures rewrites caption shortcodes into figure markup the Markdown
// converter understands.
func figures(document string) string {
	return captionRe.ReplaceAllString(document, "<figure>$1<figcaption>$2</figcaption></figure>")
}

func render(document string, baseDomain string) (Preview, *PreviewError) {
	root, err := html.Parse(strings.NewReader(figures(document)))
	if err != nil {
		return Preview{}, &PreviewError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseParseFailure,
		}
	}

	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	markdown, err := conv.ConvertNode(root)
	if err != nil {
		return Preview{}, &PreviewError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseConversionFailure,
		}
	}

	return NewPreview(markdown, collectLinkRefs(root, baseDomain)), nil
}

// collectLinkRefs lists anchors and images in document order.
func collectLinkRefs(root *html.Node, baseDomain string) []LinkRef {
	var refs []LinkRef
	goquery.NewDocumentFromNode(root).Find("a[href], img[src]").Each(func(_ int, s *goquery.Selection) {
		if goquery.NodeName(s) == "img" {
			src, _ := s.Attr("src")
			refs = append(refs, NewLinkRef(src, KindImage))
			return
		}
		href, _ := s.Attr("href")
		kind := KindExternal
		if baseDomain != "" && strings.HasPrefix(strings.TrimSpace(href), baseDomain) {
			kind = KindNavigation
		}
		refs = append(refs, NewLinkRef(href, kind))
	})
	return refs
}
