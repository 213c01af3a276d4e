package resource

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"

	"github.com/storefront/storefront-admin/internal/domain"
	"github.com/storefront/storefront-admin/internal/util"
)

// Arabic code points that Persian keyboards also produce.
var persianFolder = strings.NewReplacer(
	"ي", "ی",
	"ى", "ی",
	"ك", "ک",
	"\u200c", "", // zero-width non-joiner
)

// foldText normalizes s for matching: NFKC, Persian letter variants, case.
func foldText(s string) string {
	s = norm.NFKC.String(s)
	s = persianFolder.Replace(s)
	// Casers are stateful; one per call.
	return cases.Fold().String(strings.TrimSpace(s))
}

// filter matches query against names, and its slug form against slugs,
// so "slow burn" finds "slow-burn".
func filter[T domain.Entity](items []T, query string) []T {
	q := foldText(query)
	slug := util.Slugify(query)
	out := []T{}
	for _, it := range items {
		if q == "" ||
			strings.Contains(foldText(it.DisplayName()), q) ||
			strings.Contains(foldText(it.GetSlug()), q) ||
			(slug != "" && strings.Contains(util.Slugify(it.GetSlug()), slug)) {
			out = append(out, it)
		}
	}
	return out
}
