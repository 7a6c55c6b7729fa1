package preview

import (
	"github.com/gomarkdown/markdown"
	mdhtml "github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
)

// HTML renders the Markdown preview back to HTML, the way a Markdown viewer
// would show it. Caption shortcodes are already figures at this point, so
// the output carries plain images followed by their caption text.
func (p *Preview) HTML() []byte {
	doc := parser.NewWithExtensions(parser.CommonExtensions).Parse(p.markdownContent)
	renderer := mdhtml.NewRenderer(mdhtml.RendererOptions{Flags: mdhtml.CommonFlags})
	return markdown.Render(doc, renderer)
}
