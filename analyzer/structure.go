package analyzer

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

var headingLevels = []string{"h1", "h2", "h3", "h4", "h5", "h6"}

// analyzeHeadings inventories the h1-h6 structure of the raw HTML and
// counts how many heading texts contain the focus keyword.
func (a *Analyzer) analyzeHeadings(parsed *goquery.Document, focusKeyword string) HeadingAnalysis {
	result := HeadingAnalysis{
		Structure:     make(map[string][]string, len(headingLevels)),
		CountsByLevel: make(map[string]int, len(headingLevels)),
	}
	if parsed == nil {
		return result
	}

	keyword := strings.ToLower(focusKeyword)

	for _, level := range headingLevels {
		texts := []string{}
		parsed.Find(level).Each(func(_ int, s *goquery.Selection) {
			text := strings.TrimSpace(s.Text())
			texts = append(texts, text)
			if keyword != "" && strings.Contains(strings.ToLower(text), keyword) {
				result.KeywordInHeadings++
			}
		})
		result.Structure[level] = texts
		result.CountsByLevel[level] = len(texts)
		result.TotalHeadings += len(texts)
	}

	return result
}

// analyzeLinks extracts every anchor with an href and classifies it as
// internal or external. Internal means a path-relative href or a host
// that matches the configured site domain or localhost. Anchors with
// other schemes (mailto:, tel:, fragments) count toward the total but
// are not classified.
func (a *Analyzer) analyzeLinks(parsed *goquery.Document) LinkAnalysis {
	result := LinkAnalysis{
		Internal: []Link{},
		External: []Link{},
	}
	if parsed == nil {
		return result
	}

	parsed.Find("a[href]").Each(func(_ int, s *goquery.Selection) {
		href, _ := s.Attr("href")
		result.TotalLinks++

		link := Link{URL: href, Text: strings.TrimSpace(s.Text())}
		switch {
		case strings.HasPrefix(href, "/"):
			result.Internal = append(result.Internal, link)
		case strings.HasPrefix(href, "http://"), strings.HasPrefix(href, "https://"):
			parsedURL, err := url.Parse(href)
			if err != nil {
				return
			}
			if a.isInternalHost(parsedURL.Hostname()) {
				result.Internal = append(result.Internal, link)
			} else {
				result.External = append(result.External, link)
			}
		}
	})

	result.InternalCount = len(result.Internal)
	result.ExternalCount = len(result.External)
	return result
}

func (a *Analyzer) isInternalHost(host string) bool {
	return strings.Contains(host, a.cfg.SiteDomain) || strings.Contains(host, "localhost")
}

// analyzeImages counts images and their alt/title attribute coverage.
// Zero images yields 0% coverage, not a division error.
func (a *Analyzer) analyzeImages(parsed *goquery.Document, focusKeyword string) ImageAnalysis {
	result := ImageAnalysis{}
	if parsed == nil {
		return result
	}

	keyword := strings.ToLower(focusKeyword)

	parsed.Find("img").Each(func(_ int, s *goquery.Selection) {
		result.TotalImages++

		if alt, exists := s.Attr("alt"); exists {
			result.WithAlt++
			if keyword != "" && strings.Contains(strings.ToLower(alt), keyword) {
				result.KeywordInAlt++
			}
		}
		if _, exists := s.Attr("title"); exists {
			result.WithTitle++
		}
	})

	if result.TotalImages > 0 {
		result.AltCoverage = float64(result.WithAlt) / float64(result.TotalImages) * 100
	}
	return result
}
