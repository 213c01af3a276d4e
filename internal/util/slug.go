// Package util provides common utility functions.
package util

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/unicode/norm"
)

var (
	wordSeparatorRe = regexp.MustCompile(`[\s_/\x{200c}]+`)
	// Letters and digits of any script survive, so Persian names keep their slug.
	disallowedRe   = regexp.MustCompile(`[^\p{L}\p{N}\p{M}-]`)
	multipleDashRe = regexp.MustCompile(`-+`)
)

// Slugify converts a display name to the slug form the storefront API uses.
//
//	"Slow Burn"       → "slow-burn"
//	"کفش ورزشی"       → "کفش-ورزشی"
//	"Top 10 / Summer" → "top-10-summer"
//	"--leading--"     → "leading"
func Slugify(input string) string {
	s := cases.Fold().String(norm.NFKC.String(strings.TrimSpace(input)))
	s = wordSeparatorRe.ReplaceAllString(s, "-")
	s = disallowedRe.ReplaceAllString(s, "")
	s = multipleDashRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
