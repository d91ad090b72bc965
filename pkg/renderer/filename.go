package renderer

import (
	"regexp"
	"strings"
)

var unsafeFilenameChars = regexp.MustCompile(`[^a-z0-9]+`) //nolint:gochecknoglobals // compiled once

// SanitizeFilename lowercases name and reduces it to letters, digits and
// single hyphens. An empty result becomes "document".
func SanitizeFilename(name string) (clean string) {
	clean = strings.Trim(unsafeFilenameChars.ReplaceAllString(strings.ToLower(name), "-"), "-")
	if clean == "" {
		clean = "document"
	}
	return clean
}
