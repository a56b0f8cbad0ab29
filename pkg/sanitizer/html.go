package sanitizer

import (
	"html"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	safePolicy   *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()

		safePolicy = bluemonday.NewPolicy()
		safePolicy.AllowStandardURLs()
		safePolicy.AllowElements(
			"p", "br",
			"strong", "b", "em", "i",
			"ul", "ol", "li",
			"code", "pre", "blockquote",
		)
		safePolicy.AllowAttrs("href").OnElements("a")
		safePolicy.RequireNoFollowOnLinks(true)
	})
}

// StripHTML removes all markup and returns plain text.
func StripHTML(s string) string {
	initPolicies()
	return html.UnescapeString(strictPolicy.Sanitize(s))
}

// SanitizeHTML keeps basic formatting tags and links and drops everything
// else, including scripts, event handlers and javascript: URLs.
func SanitizeHTML(s string) string {
	initPolicies()
	return safePolicy.Sanitize(s)
}

// Field cleans a single-line form value: markup is stripped, runs of
// whitespace collapse to one space, and the result is cut to maxLen
// runes. A maxLen of zero or less means no limit.
func Field(s string, maxLen int) string {
	s = strings.Join(strings.Fields(StripHTML(s)), " ")
	if maxLen > 0 && utf8.RuneCountInString(s) > maxLen {
		s = string([]rune(s)[:maxLen])
	}
	return s
}
