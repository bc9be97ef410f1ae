package fetcher

import (
	"context"

	"github.com/rohmanhakim/wiki-content/pkg/failure"
)

type Fetcher interface {
	// Fetch retrieves the page at rawURL. A page that is not available
	// (blank URL, unusable status, second redirect) is an absent FetchResult
	// with a nil error; only transport faults are returned as errors.
	Fetch(ctx context.Context, rawURL string) (FetchResult, failure.ClassifiedError)
}

// Compile-time interface check
var _ Fetcher = (*HtmlFetcher)(nil)
