package analyzer

import (
	"math"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Config carries the site-level constants the analyzer needs. They are
// passed in explicitly so the engine never reads ambient settings.
type Config struct {
	// SiteDomain is used to classify links as internal. Links whose host
	// contains this domain (or localhost) count as internal.
	SiteDomain string
	// SiteName and BaseURL are carried for collaborators that render
	// meta tags and structured data alongside the analysis.
	SiteName string
	BaseURL  string
}

// Analyzer performs SEO analysis on blog documents. It holds no mutable
// state: Analyze is a pure function of its input and is safe to call
// concurrently on different documents.
type Analyzer struct {
	cfg Config
}

// New creates an Analyzer with the given site configuration.
func New(cfg Config) *Analyzer {
	if cfg.SiteDomain == "" {
		cfg.SiteDomain = "localhost"
	}
	return &Analyzer{cfg: cfg}
}

// Config returns the analyzer's site configuration.
func (a *Analyzer) Config() Config {
	return a.cfg
}

// Analyze runs the full analysis pipeline over a single document. The
// stripped-text and parsed-HTML views are computed once up front and
// shared by every sub-analyzer. Degenerate input (empty content,
// missing optional fields) degrades to zero values and report issues;
// there is no error path.
func (a *Analyzer) Analyze(doc Document) *AnalysisResult {
	plainText := StripHTML(doc.ContentHTML)
	parsed := parseHTML(doc.ContentHTML)

	result := &AnalysisResult{
		Basic:       basicMetrics(plainText),
		Keyword:     a.analyzeKeyword(doc, plainText),
		Readability: analyzeReadability(plainText),
		Headings:    a.analyzeHeadings(parsed, doc.FocusKeyword),
		Links:       a.analyzeLinks(parsed),
		Images:      a.analyzeImages(parsed, doc.FocusKeyword),
	}
	result.Keyword.InHeadings = result.Headings.KeywordInHeadings
	result.Score = a.scoreText(doc, plainText)
	result.Report = a.buildReport(doc, plainText)

	return result
}

// parseHTML builds the tolerant-tokenizer view used by the structural
// analyzers. The parser accepts arbitrary fragments and never fails on
// malformed markup; a nil document is only possible on a reader error,
// which strings.Reader cannot produce.
func parseHTML(html string) *goquery.Document {
	parsed, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil
	}
	return parsed
}

// analyzeKeyword computes focus-keyword placement and density over the
// plain-text view. Occurrences are raw substring counts, not
// token-boundary matches; the score rubric is calibrated against that.
func (a *Analyzer) analyzeKeyword(doc Document, plainText string) KeywordAnalysis {
	result := KeywordAnalysis{FocusKeyword: doc.FocusKeyword}
	if doc.FocusKeyword == "" {
		return result
	}

	keyword := strings.ToLower(doc.FocusKeyword)
	result.CountInContent = strings.Count(strings.ToLower(plainText), keyword)

	var density float64
	if words := WordCount(plainText); words > 0 {
		density = float64(result.CountInContent) / float64(words) * 100
	}
	result.Density = round(density, 2)
	result.OptimalDensity = density >= 0.5 && density <= 2.5

	title := doc.SEOTitle
	if title == "" {
		title = doc.Title
	}
	result.InTitle = strings.Contains(strings.ToLower(title), keyword)

	return result
}

func round(v float64, decimals int) float64 {
	scale := math.Pow(10, float64(decimals))
	return math.Round(v*scale) / scale
}
