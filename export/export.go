// Package export folds per-post analysis results into bulk reports:
// CSV rows for spreadsheets and aggregate summaries for dashboards.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"sort"

	"github.com/blog-seo/backend/analyzer"
	"github.com/blog-seo/backend/post"
)

// Row is one post's worth of exported analysis data.
type Row struct {
	Slug         string  `json:"slug"`
	Title        string  `json:"title"`
	Score        int     `json:"score"`
	WordCount    int     `json:"wordCount"`
	Density      float64 `json:"densityPercent"`
	FleschEase   float64 `json:"fleschEase"`
	IssueCount   int     `json:"issueCount"`
	FocusKeyword string  `json:"focusKeyword"`
}

// Summary aggregates analysis results across a post collection.
type Summary struct {
	TotalPosts   int     `json:"totalPosts"`
	AverageScore float64 `json:"averageScore"`

	// Score distribution buckets, matching the dashboard thresholds.
	Excellent        int `json:"excellent"`        // >= 90
	Good             int `json:"good"`             // 80-89
	NeedsImprovement int `json:"needsImprovement"` // 60-79
	Poor             int `json:"poor"`             // < 60

	MissingFocusKeyword    int `json:"missingFocusKeyword"`
	MissingMetaDescription int `json:"missingMetaDescription"`
	MissingFeaturedImage   int `json:"missingFeaturedImage"`

	// NeedsAttention lists the lowest-scoring posts (score < 70), worst first.
	NeedsAttention []Row `json:"needsAttention"`
}

const needsAttentionLimit = 10

func analyzeRow(a *analyzer.Analyzer, p *post.Post) (Row, *analyzer.AnalysisResult) {
	result := a.Analyze(p.Document())
	return Row{
		Slug:         p.Slug,
		Title:        p.Title,
		Score:        result.Score,
		WordCount:    result.Basic.WordCount,
		Density:      result.Keyword.Density,
		FleschEase:   result.Readability.FleschEase,
		IssueCount:   len(result.Report.Issues),
		FocusKeyword: p.FocusKeyword,
	}, result
}

// Summarize analyzes every post and folds the results into a Summary.
func Summarize(a *analyzer.Analyzer, posts []*post.Post) Summary {
	summary := Summary{NeedsAttention: []Row{}}

	totalScore := 0
	for _, p := range posts {
		row, _ := analyzeRow(a, p)
		summary.TotalPosts++
		totalScore += row.Score

		switch {
		case row.Score >= 90:
			summary.Excellent++
		case row.Score >= 80:
			summary.Good++
		case row.Score >= 60:
			summary.NeedsImprovement++
		default:
			summary.Poor++
		}

		if p.FocusKeyword == "" {
			summary.MissingFocusKeyword++
		}
		if p.GetMetaDescription() == "" {
			summary.MissingMetaDescription++
		}
		if p.FeaturedImage == "" && p.OGImage == "" {
			summary.MissingFeaturedImage++
		}

		if row.Score < 70 {
			summary.NeedsAttention = append(summary.NeedsAttention, row)
		}
	}

	if summary.TotalPosts > 0 {
		summary.AverageScore = float64(totalScore) / float64(summary.TotalPosts)
	}

	sort.Slice(summary.NeedsAttention, func(i, j int) bool {
		return summary.NeedsAttention[i].Score < summary.NeedsAttention[j].Score
	})
	if len(summary.NeedsAttention) > needsAttentionLimit {
		summary.NeedsAttention = summary.NeedsAttention[:needsAttentionLimit]
	}

	return summary
}

var csvHeader = []string{
	"slug", "title", "seo_score", "word_count",
	"keyword_density", "flesch_ease", "issue_count", "focus_keyword",
}

// WriteCSV analyzes every post and writes one CSV row per post.
func WriteCSV(w io.Writer, a *analyzer.Analyzer, posts []*post.Post) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(csvHeader); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, p := range posts {
		row, _ := analyzeRow(a, p)
		record := []string{
			row.Slug,
			row.Title,
			fmt.Sprintf("%d", row.Score),
			fmt.Sprintf("%d", row.WordCount),
			fmt.Sprintf("%.2f", row.Density),
			fmt.Sprintf("%.1f", row.FleschEase),
			fmt.Sprintf("%d", row.IssueCount),
			row.FocusKeyword,
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write CSV row for %s: %w", p.Slug, err)
		}
	}

	cw.Flush()
	return cw.Error()
}
