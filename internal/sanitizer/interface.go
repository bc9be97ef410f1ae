package sanitizer

import (
	"github.com/rohmanhakim/wiki-content/pkg/failure"
)

// Sanitizer defines the interface for wiki content cleaning.
// Implementations must be deterministic: identical input yields identical output.
type Sanitizer interface {
	// Clean extracts the content block from raw page HTML and returns it
	// cleaned. Blank input or a page without a content block is an absent
	// CleanResult with a nil error; only unparseable input is an error.
	Clean(content string) (CleanResult, failure.ClassifiedError)
}

// Compile-time interface check
var _ Sanitizer = (*HtmlSanitizer)(nil)
