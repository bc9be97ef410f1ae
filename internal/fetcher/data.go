package fetcher

// AbsenceReason tells why a fetch produced no content.
type AbsenceReason string

const (
	AbsenceNone             AbsenceReason = ""
	AbsenceBlankURL         AbsenceReason = "blank url"
	AbsenceUnexpectedStatus AbsenceReason = "unexpected status"
	AbsenceRedirectLimit    AbsenceReason = "redirect limit reached"
)

// FetchResult is either the full HTML body of a page or an absence signal.
// It never carries transport error text.
type FetchResult struct {
	url        string
	finalURL   string
	html       string
	present    bool
	reason     AbsenceReason
	statusCode int
	redirects  int
}

// URL returns the URL the caller asked for.
func (f *FetchResult) URL() string {
	return f.url
}

// FinalURL returns the URL the content was served from. It differs from
// URL when a redirect was followed.
func (f *FetchResult) FinalURL() string {
	return f.finalURL
}

func (f *FetchResult) HTML() string {
	return f.html
}

func (f *FetchResult) IsAbsent() bool {
	return !f.present
}

func (f *FetchResult) AbsenceReason() AbsenceReason {
	return f.reason
}

// Code returns the status of the last response, or 0 when no request was made.
func (f *FetchResult) Code() int {
	return f.statusCode
}

func (f *FetchResult) Redirected() bool {
	return f.redirects > 0
}

func newFoundResult(url string, finalURL string, html string, redirects int) FetchResult {
	return FetchResult{
		url:        url,
		finalURL:   finalURL,
		html:       html,
		present:    true,
		statusCode: 200,
		redirects:  redirects,
	}
}

func newAbsentResult(url string, reason AbsenceReason, statusCode int, redirects int) FetchResult {
	return FetchResult{
		url:        url,
		reason:     reason,
		statusCode: statusCode,
		redirects:  redirects,
	}
}

// NewFetchResultForTest creates a FetchResult for testing purposes.
// An empty html with present=false yields an absent result.
func NewFetchResultForTest(url string, html string, present bool, reason AbsenceReason) FetchResult {
	if present {
		return newFoundResult(url, url, html, 0)
	}
	return newAbsentResult(url, reason, 0, 0)
}

type outcomeKind int

const (
	outcomeUnusable outcomeKind = iota
	outcomeContent
	outcomeRedirect
)

// attemptOutcome is what a single GET produced once its response is released.
type attemptOutcome struct {
	kind       outcomeKind
	statusCode int
	body       string
	// location is the raw Location header of a redirect response.
	location string
}
