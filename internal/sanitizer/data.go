package sanitizer

import (
	"golang.org/x/net/html"
)

const (
	// DefaultOrigin is prefixed to root-relative href and src values.
	DefaultOrigin = "https://wiki.jenkins-ci.org"
	// DefaultContentClass marks the content block of a wiki page.
	DefaultContentClass = "wiki-content"
	// DefaultNoiseClass marks presentation wrappers dropped from the block.
	DefaultNoiseClass = "table-wrap"
)

// SanitizeParam holds configuration parameters for the cleaning process.
type SanitizeParam struct {
	Origin       string
	ContentClass string
	NoiseClass   string
}

func DefaultSanitizeParam() SanitizeParam {
	return SanitizeParam{
		Origin:       DefaultOrigin,
		ContentClass: DefaultContentClass,
		NoiseClass:   DefaultNoiseClass,
	}
}

// AbsenceReason tells why cleaning produced no fragment.
type AbsenceReason string

const (
	AbsenceNone                AbsenceReason = ""
	AbsenceBlankContent        AbsenceReason = "blank content"
	AbsenceContentBlockMissing AbsenceReason = "content block missing"
)

// CleanResult is either the cleaned content fragment or an absence signal.
type CleanResult struct {
	fragment       string
	contentNode    *html.Node
	present        bool
	reason         AbsenceReason
	rewrittenLinks int
	removedNodes   int
}

// Fragment returns the serialized inner HTML of the cleaned content block.
func (c *CleanResult) Fragment() string {
	return c.fragment
}

// GetContentNode returns the cleaned content block element. It is nil for
// an absent result.
func (c *CleanResult) GetContentNode() *html.Node {
	return c.contentNode
}

func (c *CleanResult) IsAbsent() bool {
	return !c.present
}

func (c *CleanResult) AbsenceReason() AbsenceReason {
	return c.reason
}

// RewrittenLinks counts href and src values that were made absolute.
func (c *CleanResult) RewrittenLinks() int {
	return c.rewrittenLinks
}

// RemovedNodes counts noise elements dropped from the block.
func (c *CleanResult) RemovedNodes() int {
	return c.removedNodes
}

func newCleanResult(fragment string, contentNode *html.Node, rewrittenLinks int, removedNodes int) CleanResult {
	return CleanResult{
		fragment:       fragment,
		contentNode:    contentNode,
		present:        true,
		rewrittenLinks: rewrittenLinks,
		removedNodes:   removedNodes,
	}
}

func newAbsentResult(reason AbsenceReason) CleanResult {
	return CleanResult{reason: reason}
}

// NewCleanResultForTest creates a present CleanResult for testing purposes.
// The fields remain private to maintain immutability.
func NewCleanResultForTest(fragment string, contentNode *html.Node) CleanResult {
	return newCleanResult(fragment, contentNode, 0, 0)
}

// NewAbsentCleanResultForTest creates an absent CleanResult for testing purposes.
func NewAbsentCleanResultForTest(reason AbsenceReason) CleanResult {
	return newAbsentResult(reason)
}
