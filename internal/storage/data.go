package storage

import "github.com/rohmanhakim/wiki-content/internal/metadata"

// Document is a rendered fragment ready to be persisted.
type Document struct {
	sourceURL string
	content   []byte
	kind      metadata.ArtifactKind
}

func NewDocument(sourceURL string, content []byte, kind metadata.ArtifactKind) Document {
	return Document{
		sourceURL: sourceURL,
		content:   content,
		kind:      kind,
	}
}

func (d Document) SourceURL() string {
	return d.sourceURL
}

func (d Document) Content() []byte {
	return d.content
}

func (d Document) Kind() metadata.ArtifactKind {
	return d.kind
}

// extension maps the artifact kind to a file extension. Unknown kinds are
// stored as HTML.
func (d Document) extension() string {
	if d.kind == metadata.ArtifactMarkdown {
		return ".md"
	}
	return ".html"
}

type WriteResult struct {
	urlHash     string // identity (filename without extension)
	path        string
	contentHash string
}

func NewWriteResult(
	urlHash string,
	path string,
	contentHash string,
) WriteResult {
	return WriteResult{
		urlHash:     urlHash,
		path:        path,
		contentHash: contentHash,
	}
}

func (w *WriteResult) URLHash() string {
	return w.urlHash
}

func (w *WriteResult) Path() string {
	return w.path
}

func (w *WriteResult) ContentHash() string {
	return w.contentHash
}
