package catalog

import (
	"strings"
	"unicode"
)

// Slugify derives a URL-safe slug from a category name: lowercase, with every
// run of non-letter/non-digit characters collapsed to a single hyphen.
// Deterministic and idempotent; Unicode letters survive so Korean category
// names keep a usable slug.
func Slugify(name string) string {
	var b strings.Builder
	lastHyphen := false
	for _, r := range strings.ToLower(strings.TrimSpace(name)) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			lastHyphen = false
			continue
		}
		if !lastHyphen && b.Len() > 0 {
			b.WriteRune('-')
			lastHyphen = true
		}
	}
	return strings.Trim(b.String(), "-")
}
