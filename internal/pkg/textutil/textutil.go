// Package textutil derives plain-text views of post content.
package textutil

import (
	"html"
	"math"
	"strings"
	"unicode/utf8"

	"github.com/microcosm-cc/bluemonday"
)

// ExcerptLength is the default excerpt size in characters.
const ExcerptLength = 160

// WordsPerMinute drives the reading time estimate.
const WordsPerMinute = 200

var (
	stripPolicy    = bluemonday.StrictPolicy()
	sanitizePolicy = newSanitizePolicy()
)

func newSanitizePolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowImages()
	p.AddTargetBlankToFullyQualifiedLinks(true)
	p.RequireNoReferrerOnLinks(true)
	return p
}

// StripTags removes all markup and decodes entities.
func StripTags(content string) string {
	return html.UnescapeString(stripPolicy.Sanitize(content))
}

// Excerpt strips markup from content and truncates it to maxLength characters,
// appending "..." when truncation happened.
func Excerpt(content string, maxLength int) string {
	if maxLength <= 0 {
		maxLength = ExcerptLength
	}
	text := StripTags(content)
	if utf8.RuneCountInString(text) <= maxLength {
		return text
	}
	runes := []rune(text)
	return strings.TrimSpace(string(runes[:maxLength])) + "..."
}

// WordCount counts whitespace-delimited tokens.
func WordCount(content string) int {
	return len(strings.Fields(content))
}

// ReadingTime estimates minutes to read content at WordsPerMinute.
func ReadingTime(content string) int {
	return int(math.Ceil(float64(WordCount(content)) / WordsPerMinute))
}

// SanitizeHTML drops scripts, event handlers and other unsafe markup from rich content.
func SanitizeHTML(content string) string {
	return sanitizePolicy.Sanitize(content)
}
