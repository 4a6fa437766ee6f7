package analyzer

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// The rubric counts raw <a ...> openings in the HTML, matching the
// calibration of the original scoring model rather than the parsed view.
var anchorPattern = regexp.MustCompile(`(?i)<a[^>]*>`)

// Score computes the document's 0-100 SEO score under the fixed
// additive rubric. It is a pure function of the document: calling it
// twice on the same input yields the same score.
func (a *Analyzer) Score(doc Document) int {
	return a.scoreText(doc, StripHTML(doc.ContentHTML))
}

func (a *Analyzer) scoreText(doc Document, plainText string) int {
	score := 0

	// SEO title length (20 points). A dedicated SEO title in the 30-60
	// band earns full marks; falling back to the plain title earns 15.
	if doc.SEOTitle != "" {
		switch n := utf8.RuneCountInString(doc.SEOTitle); {
		case n >= 30 && n <= 60:
			score += 20
		case n < 30:
			score += 10
		}
	} else if n := utf8.RuneCountInString(doc.Title); n >= 30 && n <= 60 {
		score += 15
	}

	// Meta description length (20 points).
	if doc.MetaDescription != "" {
		switch n := utf8.RuneCountInString(doc.MetaDescription); {
		case n >= 120 && n <= 160:
			score += 20
		case n < 120:
			score += 10
		}
	}

	words := WordCount(plainText)

	if doc.FocusKeyword != "" {
		keyword := strings.ToLower(doc.FocusKeyword)

		// Keyword in title (15 points): plain title or SEO title.
		if strings.Contains(strings.ToLower(doc.Title), keyword) ||
			(doc.SEOTitle != "" && strings.Contains(strings.ToLower(doc.SEOTitle), keyword)) {
			score += 15
		}

		// Keyword density in content (15 points). The optimal band is
		// [0.5, 2.5] inclusive at both ends.
		if words > 0 {
			density := float64(strings.Count(strings.ToLower(plainText), keyword)) / float64(words) * 100
			switch {
			case density >= 0.5 && density <= 2.5:
				score += 15
			case density > 0:
				score += 8
			}
		}

		// Slug contains keyword (5 points).
		if strings.Contains(doc.Slug, strings.ReplaceAll(keyword, " ", "-")) {
			score += 5
		}
	}

	// Featured or Open Graph image (10 points).
	if doc.HasFeaturedImage || doc.HasOGImage {
		score += 10
	}

	// Content length (10 points).
	switch {
	case words >= 300:
		score += 10
	case words >= 150:
		score += 5
	}

	// Link count (5 points).
	switch links := len(anchorPattern.FindAllString(doc.ContentHTML, -1)); {
	case links >= 3:
		score += 5
	case links >= 1:
		score += 3
	}

	if score > 100 {
		return 100
	}
	return score
}

// BuildReport produces the human-readable findings for a document. Per
// dimension exactly one finding is emitted: either an issue with a
// paired recommendation, or a good-practice note. The order is fixed:
// title, meta description, keyword in title, keyword density, content
// length, image.
func (a *Analyzer) BuildReport(doc Document) Report {
	return a.buildReport(doc, StripHTML(doc.ContentHTML))
}

func (a *Analyzer) buildReport(doc Document, plainText string) Report {
	report := Report{
		Issues:          []string{},
		Recommendations: []string{},
		GoodPractices:   []string{},
	}

	issue := func(problem, fix string) {
		report.Issues = append(report.Issues, problem)
		report.Recommendations = append(report.Recommendations, fix)
	}
	good := func(note string) {
		report.GoodPractices = append(report.GoodPractices, note)
	}

	// Title length, on the effective SEO title.
	title := doc.SEOTitle
	if title == "" {
		title = doc.Title
	}
	switch n := utf8.RuneCountInString(title); {
	case n < 30:
		issue("SEO title is too short (less than 30 characters)",
			"Consider expanding your title to 30-60 characters")
	case n > 60:
		issue("SEO title is too long (more than 60 characters)",
			"Shorten your title to under 60 characters")
	default:
		good("SEO title length is optimal")
	}

	// Meta description length.
	switch n := utf8.RuneCountInString(doc.MetaDescription); {
	case n == 0:
		issue("Meta description is missing",
			"Add a compelling meta description (120-160 characters)")
	case n < 120:
		issue("Meta description is too short",
			"Expand meta description to 120-160 characters")
	case n > 160:
		issue("Meta description is too long",
			"Shorten meta description to under 160 characters")
	default:
		good("Meta description length is optimal")
	}

	// Focus keyword presence, placement and density.
	if doc.FocusKeyword == "" {
		issue("No focus keyword set",
			"Set a focus keyword to optimize this post")
	} else {
		keyword := strings.ToLower(doc.FocusKeyword)

		if strings.Contains(strings.ToLower(title), keyword) {
			good("Focus keyword found in title")
		} else {
			issue("Focus keyword not found in title",
				"Include your focus keyword in the title")
		}

		if words := WordCount(plainText); words > 0 {
			density := float64(strings.Count(strings.ToLower(plainText), keyword)) / float64(words) * 100
			switch {
			case density < 0.5:
				issue("Focus keyword density is too low",
					"Use your focus keyword more frequently (aim for 0.5-2.5% density)")
			case density > 2.5:
				issue("Focus keyword density is too high (keyword stuffing)",
					"Reduce focus keyword usage to avoid keyword stuffing")
			default:
				good("Focus keyword density is optimal")
			}
		}
	}

	// Content length.
	if WordCount(plainText) < 300 {
		issue("Content is too short for good SEO",
			"Aim for at least 300 words of quality content")
	} else {
		good("Content length is good for SEO")
	}

	// Featured image.
	if !doc.HasFeaturedImage && !doc.HasOGImage {
		issue("No featured image set",
			"Add a featured image to improve social sharing")
	} else {
		good("Featured image is set")
	}

	return report
}
