package utils

import (
	"regexp"
	"strings"
)

var nonSlugChars = regexp.MustCompile(`[^a-z0-9]+`)

// Slugify derives a URL-safe clan slug from its display name: lowercase,
// runs of anything outside [a-z0-9] collapse to a single dash, dashes are
// trimmed from both ends. Returns "" when nothing usable remains.
func Slugify(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = nonSlugChars.ReplaceAllString(slug, "-")
	return strings.Trim(slug, "-")
}
