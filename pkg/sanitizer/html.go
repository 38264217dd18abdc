package sanitizer

import (
	"html"
	"strings"
	"sync"

	"github.com/jaytaylor/html2text"
	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	linkPolicy   *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		// Strips all HTML; script and style contents are dropped.
		strictPolicy = bluemonday.StrictPolicy()

		// Keeps the structure html2text understands and drops hrefs with
		// schemes other than http, https and mailto.
		linkPolicy = bluemonday.UGCPolicy()
		linkPolicy.SkipElementsContent("head", "title")
	})
}

// StripHTML removes all HTML, returning the text content with entities
// decoded.
func StripHTML(s string) string {
	initPolicies()
	return strings.TrimSpace(html.UnescapeString(strictPolicy.Sanitize(s)))
}

// HTMLToText converts an HTML mail body into a plain-text alternative.
// Block elements become line breaks, list items are bulleted, tables are
// laid out and links keep their target as "label ( url )". Only http,
// https and mailto targets are kept. Input html2text cannot parse falls
// back to StripHTML.
func HTMLToText(s string) string {
	initPolicies()

	text, err := html2text.FromString(linkPolicy.Sanitize(s), html2text.Options{PrettyTables: true})
	if err != nil {
		return StripHTML(s)
	}
	return strings.TrimSpace(text)
}
