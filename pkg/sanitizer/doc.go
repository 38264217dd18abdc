// Package sanitizer turns HTML mail bodies into plain text.
//
// StripHTML drops every tag with bluemonday's strict policy. HTMLToText
// keeps the layout: bluemonday first filters the markup and link schemes,
// then github.com/jaytaylor/html2text renders paragraphs, lists, tables and
// links.
//
//	text := sanitizer.HTMLToText(`<p>Hi <a href="https://example.com">there</a></p>`)
//	// "Hi there ( https://example.com )"
package sanitizer
