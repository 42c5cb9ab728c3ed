// Package htmlsanitize strips markup from user supplied text before it is
// stored. Names and notes are plain text; nothing is ever rendered as HTML.
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict is safe for concurrent use once built.
var strict = bluemonday.StrictPolicy()

// Text removes every tag (and the body of script/style elements) from s and
// returns the remaining text, trimmed.
func Text(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// Name is Text with runs of whitespace collapsed to a single space.
func Name(s string) string {
	return strings.Join(strings.Fields(Text(s)), " ")
}
