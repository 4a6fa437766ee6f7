package analyzer

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

var (
	tagPattern      = regexp.MustCompile(`<[^>]*>`)
	sentencePattern = regexp.MustCompile(`[.!?]+`)
)

// StripHTML removes anything that looks like a markup tag from the
// content. Entities are left as-is and malformed markup is tolerated:
// any substring matching <[^>]*> is removed verbatim, nothing more.
// Every other analyzer works on this same text view so all counts agree.
func StripHTML(html string) string {
	return tagPattern.ReplaceAllString(html, "")
}

// WordCount counts whitespace-delimited tokens.
func WordCount(text string) int {
	return len(strings.Fields(text))
}

func basicMetrics(plainText string) BasicMetrics {
	return BasicMetrics{
		WordCount:      WordCount(plainText),
		CharacterCount: utf8.RuneCountInString(plainText),
		ParagraphCount: len(strings.Split(plainText, "\n\n")),
		SentenceCount:  len(sentencePattern.Split(plainText, -1)),
	}
}
