package simplecms

import (
	"regexp"
	"strings"
)

var (
	slugPattern     = regexp.MustCompile(`^[a-z0-9-]+$`)
	fieldKeyPattern = regexp.MustCompile(`^[a-z0-9_]+$`)
	slugStrip       = regexp.MustCompile(`[^a-z0-9]+`)
)

// Slugify derives a slug from a title: lowercased, runs of other characters
// replaced by a single hyphen, trimmed of hyphens.
func Slugify(title string) string {
	s := slugStrip.ReplaceAllString(strings.ToLower(title), "-")
	return strings.Trim(s, "-")
}

// NormalizeSlug trims surrounding whitespace from a slug.
func NormalizeSlug(s string) string {
	return strings.TrimSpace(s)
}

// ValidSlug reports whether s matches [a-z0-9-]+.
func ValidSlug(s string) bool {
	return slugPattern.MatchString(s)
}

// ValidFieldKey reports whether s matches [a-z0-9_]+.
func ValidFieldKey(s string) bool {
	return fieldKeyPattern.MatchString(s)
}
