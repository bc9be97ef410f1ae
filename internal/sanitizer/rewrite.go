package sanitizer

import (
	"github.com/PuerkitoBio/goquery"
	"github.com/rohmanhakim/wiki-content/pkg/urlutil"
)

// rewriteRootRelative prefixes origin to every root-relative value of attr
// found on descendants of block. It returns the number of rewritten values.
func rewriteRootRelative(block *goquery.Selection, attr string, origin string) int {
	rewritten := 0
	block.Find("[" + attr + "]").Each(func(_ int, s *goquery.Selection) {
		value, _ := s.Attr(attr)
		if resolved, ok := urlutil.ResolveRootRelative(origin, value); ok {
			s.SetAttr(attr, resolved)
			rewritten++
		}
	})
	return rewritten
}
