package partials

import (
	"html"
	"regexp"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var (
	urlPattern = regexp.MustCompile(`https?://[^\s<]+`)

	richTextPolicy = func() *bluemonday.Policy {
		p := bluemonday.NewPolicy()
		p.AllowAttrs("href").OnElements("a")
		p.AllowURLSchemes("http", "https")
		p.RequireParseableURLs(true)
		p.RequireNoFollowOnLinks(true)
		p.AddTargetBlankToFullyQualifiedLinks(true)
		return p
	}()
)

// RichText renders a stored long answer as HTML: the text is escaped, bare
// http(s) URLs become links, and the result is run through a policy that
// admits nothing but those anchors. Whitespace is left for the caller's CSS.
func RichText(s string) string {
	escaped := html.EscapeString(s)
	linked := urlPattern.ReplaceAllStringFunc(escaped, func(u string) string {
		trimmed := strings.TrimRight(u, ".,;:!?)")
		rest := u[len(trimmed):]
		return `<a href="` + trimmed + `">` + trimmed + `</a>` + rest
	})
	return richTextPolicy.Sanitize(linked)
}
