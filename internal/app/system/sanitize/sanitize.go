// internal/app/system/sanitize/sanitize.go

// Package sanitize cleans user-supplied display strings (group titles,
// player names, profile names) before they are stored. Mobile clients send
// plain text, so anything that parses as markup is stripped rather than
// escaped.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var strict = bluemonday.StrictPolicy()

// Text strips all HTML from s and trims surrounding whitespace.
func Text(s string) string {
	return strings.TrimSpace(strict.Sanitize(s))
}
