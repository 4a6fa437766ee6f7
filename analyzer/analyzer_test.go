package analyzer

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnalyzer() *Analyzer {
	return New(Config{
		SiteDomain: "example.com",
		SiteName:   "Example Blog",
		BaseURL:    "https://example.com",
	})
}

// words produces n repetitions of word as space-separated text.
func words(word string, n int) string {
	return strings.TrimSpace(strings.Repeat(word+" ", n))
}

func TestStripHTML(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{"nested tags", "<p>A <b>bold</b> word</p>", "A bold word"},
		{"no markup", "plain text", "plain text"},
		{"empty", "", ""},
		{"attributes", `<a href="/x" class="y">link</a>`, "link"},
		{"entities preserved", "<p>salt &amp; pepper</p>", "salt &amp; pepper"},
		{"unclosed tag left alone", "<p unclosed", "<p unclosed"},
		{"dangling markup", "<div><p>text", "text"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripHTML(tt.html))
		})
	}
}

func TestWordCount(t *testing.T) {
	assert.Equal(t, 3, WordCount(StripHTML("<p>A <b>bold</b> word</p>")))
	assert.Equal(t, 0, WordCount(""))
	assert.Equal(t, 0, WordCount("   \n\t "))
	assert.Equal(t, 2, WordCount("  two   words  "))
}

func TestBasicMetrics(t *testing.T) {
	m := basicMetrics("First sentence. Second one! A question?\n\nNew paragraph here")

	assert.Equal(t, 9, m.WordCount)
	assert.Equal(t, 2, m.ParagraphCount)
	// Raw split count: three sentences plus the trailing fragment.
	assert.Equal(t, 4, m.SentenceCount)
	assert.Equal(t, 59, m.CharacterCount)
}

func TestKeywordDensity(t *testing.T) {
	a := newTestAnalyzer()

	tests := []struct {
		name        string
		keyword     string
		content     string
		wantCount   int
		wantDensity float64
		wantOptimal bool
	}{
		{
			name:        "exactly 0.5 percent is optimal",
			keyword:     "golang",
			content:     "<p>" + words("filler", 199) + " golang</p>",
			wantCount:   1,
			wantDensity: 0.5,
			wantOptimal: true,
		},
		{
			name:        "exactly 2.5 percent is optimal",
			keyword:     "golang",
			content:     "<p>" + words("filler", 195) + " " + words("golang", 5) + "</p>",
			wantCount:   5,
			wantDensity: 2.5,
			wantOptimal: true,
		},
		{
			name:        "just under 0.5 percent is not optimal",
			keyword:     "golang",
			content:     "<p>" + words("filler", 203) + " golang</p>",
			wantCount:   1,
			wantDensity: 0.49,
			wantOptimal: false,
		},
		{
			name:        "just over 2.5 percent is not optimal",
			keyword:     "golang",
			content:     "<p>" + words("filler", 194) + " " + words("golang", 5) + "</p>",
			wantCount:   5,
			wantDensity: 2.51,
			wantOptimal: false,
		},
		{
			name:        "substring matches count",
			keyword:     "cat",
			content:     "<p>" + words("filler", 98) + " concatenate concatenation</p>",
			wantCount:   2,
			wantDensity: 2,
			wantOptimal: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := a.Analyze(Document{
				FocusKeyword: tt.keyword,
				ContentHTML:  tt.content,
			})
			assert.Equal(t, tt.wantCount, result.Keyword.CountInContent)
			assert.InDelta(t, tt.wantDensity, result.Keyword.Density, 0.005)
			assert.Equal(t, tt.wantOptimal, result.Keyword.OptimalDensity)
		})
	}
}

func TestKeywordEdgeCases(t *testing.T) {
	a := newTestAnalyzer()

	t.Run("no keyword skips checks", func(t *testing.T) {
		result := a.Analyze(Document{ContentHTML: "<p>some content here</p>"})
		assert.Empty(t, result.Keyword.FocusKeyword)
		assert.Zero(t, result.Keyword.Density)
		assert.False(t, result.Keyword.OptimalDensity)
		assert.Contains(t, result.Report.Issues, "No focus keyword set")
	})

	t.Run("empty content has zero density", func(t *testing.T) {
		result := a.Analyze(Document{FocusKeyword: "golang", ContentHTML: ""})
		assert.Zero(t, result.Keyword.Density)
		assert.Zero(t, result.Keyword.CountInContent)
	})

	t.Run("in-title prefers the SEO title", func(t *testing.T) {
		result := a.Analyze(Document{
			Title:        "A post about golang",
			SEOTitle:     "Something else entirely",
			FocusKeyword: "golang",
		})
		assert.False(t, result.Keyword.InTitle)

		result = a.Analyze(Document{
			Title:        "Unrelated",
			SEOTitle:     "The Golang Handbook",
			FocusKeyword: "golang",
		})
		assert.True(t, result.Keyword.InTitle)
	})

	t.Run("case insensitive matching", func(t *testing.T) {
		result := a.Analyze(Document{
			Title:        "GOLANG tips",
			FocusKeyword: "Golang",
			ContentHTML:  "<p>GoLang golang GOLANG</p>",
		})
		assert.True(t, result.Keyword.InTitle)
		assert.Equal(t, 3, result.Keyword.CountInContent)
	})
}

func TestHeadingAnalysis(t *testing.T) {
	a := newTestAnalyzer()

	t.Run("two h2 and nothing else", func(t *testing.T) {
		result := a.Analyze(Document{
			ContentHTML: "<h2>First</h2><p>body</p><h2>Second heading</h2>",
		})

		assert.Equal(t, 2, result.Headings.TotalHeadings)
		assert.Equal(t, []string{"First", "Second heading"}, result.Headings.Structure["h2"])
		assert.Equal(t, 2, result.Headings.CountsByLevel["h2"])
		for _, level := range []string{"h1", "h3", "h4", "h5", "h6"} {
			assert.Empty(t, result.Headings.Structure[level])
			assert.Zero(t, result.Headings.CountsByLevel[level])
		}
	})

	t.Run("keyword in headings counts substrings", func(t *testing.T) {
		result := a.Analyze(Document{
			FocusKeyword: "guide",
			ContentHTML:  "<h1>The Complete Guide</h1><h3>Some guidelines</h3><h2>Other topic</h2>",
		})

		assert.Equal(t, 3, result.Headings.TotalHeadings)
		assert.Equal(t, 2, result.Headings.KeywordInHeadings)
		assert.Equal(t, 2, result.Keyword.InHeadings)
	})

	t.Run("inner markup stripped from heading text", func(t *testing.T) {
		result := a.Analyze(Document{
			ContentHTML: "<h2>A <em>styled</em> heading</h2>",
		})
		assert.Equal(t, []string{"A styled heading"}, result.Headings.Structure["h2"])
	})
}

func TestLinkAnalysis(t *testing.T) {
	a := newTestAnalyzer()

	result := a.Analyze(Document{
		ContentHTML: `<p>
			<a href="/about">About us</a>
			<a href="https://example.com/post">Own domain</a>
			<a href="http://localhost:8082/dev">Local</a>
			<a href="https://google.com">Search</a>
			<a href="mailto:hi@example.com">Mail</a>
		</p>`,
	})

	assert.Equal(t, 5, result.Links.TotalLinks)
	assert.Equal(t, 3, result.Links.InternalCount)
	assert.Equal(t, 1, result.Links.ExternalCount)

	require.Len(t, result.Links.Internal, 3)
	assert.Equal(t, "/about", result.Links.Internal[0].URL)
	assert.Equal(t, "About us", result.Links.Internal[0].Text)
	assert.Equal(t, "https://google.com", result.Links.External[0].URL)
}

func TestImageAnalysis(t *testing.T) {
	a := newTestAnalyzer()

	t.Run("half alt coverage", func(t *testing.T) {
		result := a.Analyze(Document{
			ContentHTML: `<img src="a.png" alt="x"><img src="b.png">`,
		})
		assert.Equal(t, 2, result.Images.TotalImages)
		assert.Equal(t, 1, result.Images.WithAlt)
		assert.InDelta(t, 50.0, result.Images.AltCoverage, 0.001)
	})

	t.Run("keyword and title attributes", func(t *testing.T) {
		result := a.Analyze(Document{
			FocusKeyword: "seo",
			ContentHTML:  `<img src="a.png" alt="seo tips" title="chart"><img src="b.png" alt="other">`,
		})
		assert.Equal(t, 2, result.Images.WithAlt)
		assert.Equal(t, 1, result.Images.WithTitle)
		assert.Equal(t, 1, result.Images.KeywordInAlt)
		assert.InDelta(t, 100.0, result.Images.AltCoverage, 0.001)
	})

	t.Run("no images yields zero coverage", func(t *testing.T) {
		result := a.Analyze(Document{ContentHTML: "<p>no images</p>"})
		assert.Zero(t, result.Images.TotalImages)
		assert.Zero(t, result.Images.AltCoverage)
	})
}

func TestAnalyzeIsPure(t *testing.T) {
	a := newTestAnalyzer()
	doc := Document{
		Title:        "A post about testing analyzers thoroughly",
		FocusKeyword: "testing",
		Slug:         "testing-analyzers",
		ContentHTML:  "<h2>Testing</h2><p>" + words("filler", 200) + " testing testing</p>",
	}

	first := a.Analyze(doc)
	second := a.Analyze(doc)
	assert.Equal(t, first, second)
}
