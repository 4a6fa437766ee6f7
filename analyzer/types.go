package analyzer

// Document is the input to a single analysis pass. It is treated as
// immutable for the duration of the pass; every field except Title,
// Slug and ContentHTML is optional.
type Document struct {
	Title            string `json:"title"`
	SEOTitle         string `json:"seoTitle"`
	MetaDescription  string `json:"metaDescription"`
	FocusKeyword     string `json:"focusKeyword"`
	Slug             string `json:"slug"`
	ContentHTML      string `json:"contentHtml"`
	HasFeaturedImage bool   `json:"hasFeaturedImage"`
	HasOGImage       bool   `json:"hasOgImage"`
}

// AnalysisResult is the complete SEO analysis of one document. A fresh
// result is produced on every call; nothing is cached between calls.
type AnalysisResult struct {
	Score       int              `json:"score"`
	Basic       BasicMetrics     `json:"basic"`
	Keyword     KeywordAnalysis  `json:"keyword"`
	Readability ReadabilityScore `json:"readability"`
	Headings    HeadingAnalysis  `json:"headings"`
	Links       LinkAnalysis     `json:"links"`
	Images      ImageAnalysis    `json:"images"`
	Report      Report           `json:"report"`
}

// BasicMetrics are lexical counts over the stripped-text view of the content.
type BasicMetrics struct {
	WordCount      int `json:"wordCount"`
	CharacterCount int `json:"characterCount"`
	ParagraphCount int `json:"paragraphCount"`
	SentenceCount  int `json:"sentenceCount"`
}

type KeywordAnalysis struct {
	FocusKeyword   string  `json:"focusKeyword"`
	Density        float64 `json:"densityPercent"`
	CountInContent int     `json:"countInContent"`
	InTitle        bool    `json:"inTitle"`
	InHeadings     int     `json:"inHeadings"`
	OptimalDensity bool    `json:"optimalDensity"`
}

type ReadabilityScore struct {
	FleschEase    float64 `json:"fleschEase"`
	FleschKincaid float64 `json:"fleschKincaidGrade"`
	Level         string  `json:"level"`
}

// HeadingAnalysis inventories the h1-h6 structure of the raw HTML.
// Structure maps "h1".."h6" to the stripped text of each heading.
type HeadingAnalysis struct {
	Structure         map[string][]string `json:"structure"`
	CountsByLevel     map[string]int      `json:"countsByLevel"`
	TotalHeadings     int                 `json:"totalHeadings"`
	KeywordInHeadings int                 `json:"keywordInHeadings"`
}

type Link struct {
	URL  string `json:"url"`
	Text string `json:"text"`
}

type LinkAnalysis struct {
	Internal      []Link `json:"internalLinks"`
	External      []Link `json:"externalLinks"`
	InternalCount int    `json:"internalCount"`
	ExternalCount int    `json:"externalCount"`
	TotalLinks    int    `json:"totalLinks"`
}

type ImageAnalysis struct {
	TotalImages  int     `json:"totalImages"`
	WithAlt      int     `json:"imagesWithAlt"`
	WithTitle    int     `json:"imagesWithTitle"`
	KeywordInAlt int     `json:"keywordInAlt"`
	AltCoverage  float64 `json:"altCoveragePercent"`
}

// Report holds the natural-language findings. Each checked dimension
// contributes exactly one of: an issue (with a paired recommendation)
// or a good-practice note.
type Report struct {
	Issues          []string `json:"issues"`
	Recommendations []string `json:"recommendations"`
	GoodPractices   []string `json:"goodPractices"`
}
