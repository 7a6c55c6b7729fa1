package storage

// Document is what one run persists: the final HTML and, optionally, its
// Markdown preview with the HTML a Markdown viewer renders from it.
type Document struct {
	html        string
	markdown    []byte
	previewHTML []byte
}

func NewDocument(html string, markdown []byte, previewHTML []byte) Document {
	return Document{
		html:        html,
		markdown:    markdown,
		previewHTML: previewHTML,
	}
}

func (d *Document) HTML() string {
	return d.html
}

func (d *Document) Markdown() []byte {
	return d.markdown
}

func (d *Document) PreviewHTML() []byte {
	return d.previewHTML
}

type WriteResult struct {
	contentHash     string // identity (filename without extension)
	htmlPath        string
	markdownPath    string
	previewHTMLPath string
	written         bool
}

func NewWriteResult(
	contentHash string,
	htmlPath string,
	markdownPath string,
	previewHTMLPath string,
	written bool,
) WriteResult {
	return WriteResult{
		contentHash:     contentHash,
		htmlPath:        htmlPath,
		markdownPath:    markdownPath,
		previewHTMLPath: previewHTMLPath,
		written:         written,
	}
}

func (w *WriteResult) ContentHash() string {
	return w.contentHash
}

func (w *WriteResult) HTMLPath() string {
	return w.htmlPath
}

// MarkdownPath is empty when no preview was stored.
func (w *WriteResult) MarkdownPath() string {
	return w.markdownPath
}

// PreviewHTMLPath is empty when no rendered preview was stored.
func (w *WriteResult) PreviewHTMLPath() string {
	return w.previewHTMLPath
}

// Written is false for dry runs.
func (w *WriteResult) Written() bool {
	return w.written
}
