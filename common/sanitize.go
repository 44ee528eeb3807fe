package common

import (
	"regexp"
	"strings"
)

// htmlTagPattern matches anything that looks like an HTML/XML tag.
// Examples: "<script>", "</b>", "<img src=x onerror=alert(1)>"
var htmlTagPattern = regexp.MustCompile(`<[^>]*>`)

// SanitizeText strips HTML-like tags from free-text input and trims
// surrounding whitespace. Applied to every free-text field before
// persistence so stored records never carry markup.
func SanitizeText(s string) string {
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(s, ""))
}

// SanitizeTextPtr sanitizes an optional free-text field. A nil input or an
// input that sanitizes to the empty string yields nil.
func SanitizeTextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	cleaned := SanitizeText(*s)
	if cleaned == "" {
		return nil
	}
	return &cleaned
}
