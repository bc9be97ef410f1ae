package mdconvert

// ConversionResult is the Markdown rendering of one cleaned fragment plus
// the link targets found in it.
type ConversionResult struct {
	markdownContent []byte
	linkRefs        []LinkRef
}

func NewConversionResult(
	markdownContent []byte,
	linkRefs []LinkRef,
) ConversionResult {
	return ConversionResult{
		markdownContent: markdownContent,
		linkRefs:        linkRefs,
	}
}

func (c *ConversionResult) GetMarkdownContent() []byte {
	return c.markdownContent
}

func (c *ConversionResult) GetLinkRefs() []LinkRef {
	return c.linkRefs
}

type LinkKind string

const (
	// KindNavigation is an anchor pointing at another page.
	KindNavigation LinkKind = "navigation"
	// KindImage is the src of an image.
	KindImage LinkKind = "image"
	// KindAnchor is an in-page fragment link such as "#top".
	KindAnchor LinkKind = "anchor"
)

// LinkRef is a link target exactly as written in the cleaned fragment.
type LinkRef struct {
	raw  string
	kind LinkKind
}

func NewLinkRef(raw string, kind LinkKind) LinkRef {
	return LinkRef{raw: raw, kind: kind}
}

func (l *LinkRef) GetRaw() string {
	return l.raw
}

func (l *LinkRef) GetKind() LinkKind {
	return l.kind
}
