package preview

type Preview struct {
	markdownContent []byte
	linkRefs        []LinkRef
}

func NewPreview(markdownContent []byte, linkRefs []LinkRef) Preview {
	return Preview{
		markdownContent: markdownContent,
		linkRefs:        linkRefs,
	}
}

func (p *Preview) GetMarkdownContent() []byte {
	return p.markdownContent
}

func (p *Preview) GetLinkRefs() []LinkRef {
	return p.linkRefs
}

// LinkCounts tallies the links of a preview by kind.
type LinkCounts struct {
	Navigation int
	External   int
	Images     int
}

func (p *Preview) CountLinks() LinkCounts {
	var counts LinkCounts
	for _, ref := range p.linkRefs {
		switch ref.GetKind() {
		case KindNavigation:
			counts.Navigation++
		case KindExternal:
			counts.External++
		case KindImage:
			counts.Images++
		}
	}
	return counts
}

type LinkKind string

const (
	KindNavigation LinkKind = "navigation"
	KindExternal   LinkKind = "external"
	KindImage      LinkKind = "image"
)

type LinkRef struct {
	raw  string
	kind LinkKind
}

func NewLinkRef(raw string, kind LinkKind) LinkRef {
	return LinkRef{
		raw:  raw,
		kind: kind,
	}
}

func (l *LinkRef) GetRaw() string {
	return l.raw
}

func (l *LinkRef) GetKind() LinkKind {
	return l.kind
}
