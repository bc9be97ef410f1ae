package metadata

/*
	ErrorCause is a closed, canonical classification used exclusively for
	observability (logging, reporting).

	Rules:
	 - ErrorCause MUST NOT influence control flow.
	 - ErrorCause values have stable, package-agnostic semantics.
	 - Pipeline packages MAY map their local errors to ErrorCause,
	   but MUST NOT invent new meanings.

If a failure does not clearly match a defined cause, CauseUnknown MUST be used.
*/
type ErrorCause int

/*
Canonical ErrorCause Table

# CauseUnknown

  - The failure does not map cleanly to any known category.

# CauseNetworkFailure

  - Failure caused by network transport or remote availability.
  - Examples: connection refused, TCP timeout, truncated body,
    redirect response without a usable Location header.

# CauseContentInvalid

  - Content was received but could not be processed meaningfully.
  - Examples: input that is not valid UTF-8, Markdown conversion failure.

# CauseStorageFailure

  - Failure while persisting a cleaned fragment.
  - Examples: disk full, write permission errors.
*/
const (
	CauseUnknown ErrorCause = iota
	CauseNetworkFailure
	CauseContentInvalid
	CauseStorageFailure
)

func (c ErrorCause) String() string {
	switch c {
	case CauseNetworkFailure:
		return "network_failure"
	case CauseContentInvalid:
		return "content_invalid"
	case CauseStorageFailure:
		return "storage_failure"
	default:
		return "unknown"
	}
}

type ArtifactKind string

const (
	ArtifactHTML     ArtifactKind = "html"
	ArtifactMarkdown ArtifactKind = "markdown"
)

type Attribute struct {
	Key   AttributeKey
	Value string
}

func NewAttr(key AttributeKey, val string) Attribute {
	return Attribute{
		Key:   key,
		Value: val,
	}
}

type AttributeKey string

const (
	AttrURL         AttributeKey = "url"
	AttrLocation    AttributeKey = "location"
	AttrHTTPStatus  AttributeKey = "http_status"
	AttrReason      AttributeKey = "reason"
	AttrField       AttributeKey = "field"
	AttrMessage     AttributeKey = "message"
	AttrWritePath   AttributeKey = "write_path"
	AttrURLHash     AttributeKey = "url_hash"
	AttrContentHash AttributeKey = "content_hash"
	AttrRewritten   AttributeKey = "rewritten_links"
	AttrRemoved     AttributeKey = "removed_nodes"
	AttrFinalURL    AttributeKey = "final_url"
	AttrRedirected  AttributeKey = "redirected"
)
