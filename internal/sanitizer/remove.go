package sanitizer

import "github.com/PuerkitoBio/goquery"

// findByClass returns the descendants of root whose class attribute
// contains the token class, in document order.
func findByClass(root *goquery.Selection, class string) *goquery.Selection {
	return root.Find("[class]").FilterFunction(func(_ int, s *goquery.Selection) bool {
		return s.HasClass(class)
	})
}

// removeByClass detaches every descendant of block carrying class and
// returns how many were matched. Nested matches are counted individually.
func removeByClass(block *goquery.Selection, class string) int {
	noise := findByClass(block, class)
	removed := noise.Length()
	noise.Remove()
	return removed
}
