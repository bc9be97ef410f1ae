package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rohmanhakim/wiki-content/internal/metadata"
	"github.com/rohmanhakim/wiki-content/pkg/failure"
)

/*
Responsibilities

- Perform a single HTTP GET per attempt
- Follow at most one redirect (301, 302, 303)
- Classify responses into content, absence or transport failure

Fetch Semantics

- Only 200 responses produce content; the body is returned verbatim
- Any other status is an absence, never an error
- Every client and response is released before Fetch returns

The fetcher never parses content; it only returns text and records metadata.
*/

// maxAttempts is the initial request plus one redirect hop.
const maxAttempts = 2

type HtmlFetcher struct {
	metadataSink metadata.MetadataSink
	newClient    func() *http.Client
}

func NewHtmlFetcher(
	metadataSink metadata.MetadataSink,
) HtmlFetcher {
	return NewHtmlFetcherWithClient(metadataSink, newScopedClient)
}

// NewHtmlFetcherWithClient uses newClient to obtain the per-call client.
// Whatever redirect policy the returned client has is replaced: redirects
// are always handled by the fetcher itself.
func NewHtmlFetcherWithClient(
	metadataSink metadata.MetadataSink,
	newClient func() *http.Client,
) HtmlFetcher {
	return HtmlFetcher{
		metadataSink: metadataSink,
		newClient:    newClient,
	}
}

func (h *HtmlFetcher) Fetch(
	ctx context.Context,
	rawURL string,
) (FetchResult, failure.ClassifiedError) {
	callerMethod := "HtmlFetcher.Fetch"

	if strings.TrimSpace(rawURL) == "" {
		return newAbsentResult(rawURL, AbsenceBlankURL, 0, 0), nil
	}

	client := h.scopedClient()
	defer client.CloseIdleConnections()

	target := rawURL
	for hop := 0; hop < maxAttempts; hop++ {
		outcome, err := h.attempt(ctx, client, target, hop)
		if err != nil {
			h.recordFetchError(callerMethod, target, err)
			return FetchResult{}, err
		}

		switch outcome.kind {
		case outcomeContent:
			return newFoundResult(rawURL, target, outcome.body, hop), nil

		case outcomeRedirect:
			if hop+1 == maxAttempts {
				h.metadataSink.RecordWarning(
					"fetcher",
					callerMethod,
					"already followed one redirect to get wiki content",
					[]metadata.Attribute{
						metadata.NewAttr(metadata.AttrURL, rawURL),
						metadata.NewAttr(metadata.AttrLocation, outcome.location),
						metadata.NewAttr(metadata.AttrHTTPStatus, strconv.Itoa(outcome.statusCode)),
					},
				)
				return newAbsentResult(rawURL, AbsenceRedirectLimit, outcome.statusCode, hop), nil
			}
			next, err := resolveLocation(target, outcome.location)
			if err != nil {
				h.recordFetchError(callerMethod, target, err)
				return FetchResult{}, err
			}
			target = next

		default:
			h.metadataSink.RecordWarning(
				"fetcher",
				callerMethod,
				fmt.Sprintf("unable to get content from %s", target),
				[]metadata.Attribute{
					metadata.NewAttr(metadata.AttrURL, target),
					metadata.NewAttr(metadata.AttrHTTPStatus, strconv.Itoa(outcome.statusCode)),
				},
			)
			return newAbsentResult(rawURL, AbsenceUnexpectedStatus, outcome.statusCode, hop), nil
		}
	}

	// every iteration returns or advances target; the final one always returns
	return newAbsentResult(rawURL, AbsenceRedirectLimit, 0, maxAttempts-1), nil
}

// attempt performs one GET and releases the response before returning.
func (h *HtmlFetcher) attempt(
	ctx context.Context,
	client *http.Client,
	target string,
	hop int,
) (attemptOutcome, *FetchError) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return attemptOutcome{}, &FetchError{
			Message:   fmt.Sprintf("failed to create request: %v", err),
			Retryable: false,
			Cause:     ErrCauseInvalidURL,
		}
	}

	startTime := time.Now()
	resp, err := client.Do(req)
	if err != nil {
		return attemptOutcome{}, classifyTransportError(err)
	}
	defer h.closeBody(target, resp.Body)

	outcome := attemptOutcome{
		kind:       outcomeUnusable,
		statusCode: resp.StatusCode,
	}

	switch resp.StatusCode {
	case http.StatusMovedPermanently, http.StatusFound, http.StatusSeeOther:
		outcome.kind = outcomeRedirect
		outcome.location = resp.Header.Get("Location")

	case http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return attemptOutcome{}, &FetchError{
				Message:   fmt.Sprintf("failed to read response body: %v", err),
				Retryable: true,
				Cause:     ErrCauseReadResponseBodyError,
			}
		}
		outcome.kind = outcomeContent
		outcome.body = string(body)
	}

	h.metadataSink.RecordFetch(
		target,
		resp.StatusCode,
		time.Since(startTime),
		resp.Header.Get("Content-Type"),
		len(outcome.body),
		hop,
	)

	return outcome, nil
}

// scopedClient returns a client owned by a single Fetch call that never
// follows redirects on its own.
func (h *HtmlFetcher) scopedClient() *http.Client {
	client := *h.newClient()
	client.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	return &client
}

func (h *HtmlFetcher) closeBody(target string, body io.Closer) {
	if err := body.Close(); err != nil {
		h.metadataSink.RecordWarning(
			"fetcher",
			"HtmlFetcher.Fetch",
			"problem closing response",
			[]metadata.Attribute{
				metadata.NewAttr(metadata.AttrURL, target),
				metadata.NewAttr(metadata.AttrMessage, err.Error()),
			},
		)
	}
}

func (h *HtmlFetcher) recordFetchError(callerMethod string, target string, err *FetchError) {
	h.metadataSink.RecordError(
		time.Now(),
		"fetcher",
		callerMethod,
		mapFetchErrorToMetadataCause(err),
		err.Error(),
		[]metadata.Attribute{
			metadata.NewAttr(metadata.AttrURL, target),
			metadata.NewAttr(metadata.AttrMessage, err.Message),
		},
	)
}

// newScopedClient builds a client with its own transport so that no
// connection outlives the Fetch call that created it.
func newScopedClient() *http.Client {
	return &http.Client{
		Transport: http.DefaultTransport.(*http.Transport).Clone(),
	}
}

// resolveLocation resolves a redirect Location header against the URL that
// produced it. Relative locations are accepted.
func resolveLocation(requestURL string, location string) (string, *FetchError) {
	if strings.TrimSpace(location) == "" {
		return "", &FetchError{
			Message:   fmt.Sprintf("redirect from %s has no Location header", requestURL),
			Retryable: false,
			Cause:     ErrCauseMissingLocation,
		}
	}

	base, err := url.Parse(requestURL)
	if err != nil {
		return "", &FetchError{
			Message:   fmt.Sprintf("failed to parse request url: %v", err),
			Retryable: false,
			Cause:     ErrCauseInvalidURL,
		}
	}
	ref, err := url.Parse(location)
	if err != nil {
		return "", &FetchError{
			Message:   fmt.Sprintf("failed to parse Location %q: %v", location, err),
			Retryable: false,
			Cause:     ErrCauseMissingLocation,
		}
	}
	return base.ResolveReference(ref).String(), nil
}

func classifyTransportError(err error) *FetchError {
	var netErr net.Error
	if errors.Is(err, context.DeadlineExceeded) || (errors.As(err, &netErr) && netErr.Timeout()) {
		return &FetchError{
			Message:   fmt.Sprintf("request timed out: %v", err),
			Retryable: true,
			Cause:     ErrCauseTimeout,
		}
	}
	return &FetchError{
		Message:   fmt.Sprintf("request failed: %v", err),
		Retryable: !errors.Is(err, context.Canceled),
		Cause:     ErrCauseNetworkFailure,
	}
}
