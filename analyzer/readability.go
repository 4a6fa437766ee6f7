package analyzer

import (
	"strings"
	"unicode"
)

// Reading-level bands over the Flesch reading-ease score.
const (
	levelVeryEasy        = "Very Easy"
	levelEasy            = "Easy"
	levelFairlyEasy      = "Fairly Easy"
	levelStandard        = "Standard"
	levelFairlyDifficult = "Fairly Difficult"
	levelDifficult       = "Difficult"
	levelVeryDifficult   = "Very Difficult"
	levelUnknown         = "Unknown"
)

// analyzeReadability computes the Flesch reading-ease score and the
// Flesch-Kincaid grade level over the plain-text view. Text too
// degenerate to score (empty, no words) yields the neutral
// {0, 0, Unknown} result instead of an error.
func analyzeReadability(plainText string) ReadabilityScore {
	text := strings.TrimSpace(plainText)
	if text == "" {
		return ReadabilityScore{Level: levelUnknown}
	}

	words := strings.Fields(text)
	if len(words) == 0 {
		return ReadabilityScore{Level: levelUnknown}
	}

	syllables := 0
	for _, word := range words {
		syllables += countSyllables(word)
	}

	sentences := countSentences(text)
	if sentences < 1 {
		sentences = 1
	}

	wordsPerSentence := float64(len(words)) / float64(sentences)
	syllablesPerWord := float64(syllables) / float64(len(words))

	ease := 206.835 - 1.015*wordsPerSentence - 84.6*syllablesPerWord
	grade := 0.39*wordsPerSentence + 11.8*syllablesPerWord - 15.59

	return ReadabilityScore{
		FleschEase:    round(ease, 1),
		FleschKincaid: round(grade, 1),
		Level:         readingLevel(ease),
	}
}

func readingLevel(ease float64) string {
	switch {
	case ease >= 90:
		return levelVeryEasy
	case ease >= 80:
		return levelEasy
	case ease >= 70:
		return levelFairlyEasy
	case ease >= 60:
		return levelStandard
	case ease >= 50:
		return levelFairlyDifficult
	case ease >= 30:
		return levelDifficult
	default:
		return levelVeryDifficult
	}
}

// countSentences counts non-empty fragments between sentence
// terminators. Distinct from BasicMetrics.SentenceCount, which keeps
// the raw split count for compatibility with the reported metrics.
func countSentences(text string) int {
	count := 0
	for _, part := range sentencePattern.Split(text, -1) {
		if strings.TrimSpace(part) != "" {
			count++
		}
	}
	return count
}

// countSyllables estimates syllables by counting vowel groups, with a
// silent-e adjustment. Every word counts as at least one syllable.
func countSyllables(word string) int {
	var letters []rune
	for _, r := range strings.ToLower(word) {
		if unicode.IsLetter(r) {
			letters = append(letters, r)
		}
	}
	if len(letters) == 0 {
		return 1
	}

	count := 0
	prevVowel := false
	for _, r := range letters {
		vowel := isVowel(r)
		if vowel && !prevVowel {
			count++
		}
		prevVowel = vowel
	}

	// Trailing silent e.
	if len(letters) > 2 && letters[len(letters)-1] == 'e' && !isVowel(letters[len(letters)-2]) {
		count--
	}

	if count < 1 {
		return 1
	}
	return count
}

func isVowel(r rune) bool {
	switch r {
	case 'a', 'e', 'i', 'o', 'u', 'y':
		return true
	}
	return false
}
