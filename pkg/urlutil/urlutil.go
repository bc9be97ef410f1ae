package urlutil

import (
	"net/url"
	"strings"
)

// IsRootRelative reports whether ref is a root-relative reference: a value
// with exactly one leading "/". Protocol-relative references ("//host/path")
// start with two slashes and do not qualify.
func IsRootRelative(ref string) bool {
	return strings.HasPrefix(ref, "/") && !strings.HasPrefix(ref, "//")
}

// ResolveRootRelative prefixes origin to ref when ref is root-relative.
// Any other value (absolute, protocol-relative, fragment-only, relative to the
// current page, empty) is returned unchanged and ok is false.
//
// The rule is purely textual; origin is never parsed and ref is never
// normalized, so resolving an already resolved value is a no-op.
func ResolveRootRelative(origin string, ref string) (resolved string, ok bool) {
	if !IsRootRelative(ref) {
		return ref, false
	}
	return origin + ref, true
}

// Canonicalize maps equivalent spellings of a page URL to a single form:
//   - scheme and host lowercased
//   - default ports dropped (:80 for http, :443 for https)
//   - trailing slashes stripped from the path, except for root "/"
//   - fragment and query removed
//
// It is pure and idempotent.
func Canonicalize(sourceUrl url.URL) url.URL {
	canonical := sourceUrl

	canonical.Scheme = strings.ToLower(canonical.Scheme)
	canonical.Host = strings.ToLower(canonical.Host)

	if host, port := canonical.Hostname(), canonical.Port(); port != "" {
		if (canonical.Scheme == "http" && port == "80") ||
			(canonical.Scheme == "https" && port == "443") {
			canonical.Host = host
		}
	}

	if len(canonical.Path) > 1 {
		canonical.Path = stripTrailingSlash(canonical.Path)
		canonical.RawPath = ""
	}

	canonical.Fragment = ""
	canonical.RawFragment = ""
	canonical.RawQuery = ""
	canonical.ForceQuery = false

	return canonical
}

// CanonicalString parses rawURL and returns its canonical string form.
func CanonicalString(rawURL string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return "", err
	}
	canonical := Canonicalize(*parsed)
	return canonical.String(), nil
}

func stripTrailingSlash(path string) string {
	for len(path) > 1 && path[len(path)-1] == '/' {
		path = path[:len(path)-1]
	}
	return path
}
