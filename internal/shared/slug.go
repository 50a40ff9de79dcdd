package shared

import (
	"regexp"
	"strings"
)

var (
	slugStrip    = regexp.MustCompile(`[^a-z0-9\s\p{Z}-]`)
	slugSeparate = regexp.MustCompile(`[\s\p{Z}-]+`)
)

// Slugify converts a title into a URL-safe identifier.
//
// The text is lower-cased and trimmed, anything other than ASCII letters, digits, whitespace (Unicode separators included) and hyphens is removed,
// and runs of whitespace or hyphens collapse into a single hyphen. The result only contains [a-z0-9-] and never
// starts or ends with a hyphen, so Slugify(Slugify(s)) == Slugify(s).
func Slugify(text string) string {
	s := strings.TrimSpace(strings.ToLower(text))
	s = slugStrip.ReplaceAllString(s, "")
	s = slugSeparate.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
