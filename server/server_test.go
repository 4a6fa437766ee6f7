package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blog-seo/backend/analyzer"
)

const testPost = `---
title: Understanding Keyword Density
excerpt: A short primer on keyword density.
focus_keyword: keyword density
---

Keyword density measures how often your focus keyword appears in the content.
`

func newTestServer(t *testing.T) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)

	contentDir := t.TempDir()
	path := filepath.Join(contentDir, "density.md")
	require.NoError(t, os.WriteFile(path, []byte(testPost), 0644))

	srv, err := New(Config{
		Analyzer: analyzer.Config{
			SiteDomain: "example.com",
			SiteName:   "Example Blog",
			BaseURL:    "https://example.com",
		},
		ContentDir: contentDir,
		DataDir:    t.TempDir(),
	})
	require.NoError(t, err)
	return srv
}

func doRequest(srv *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	w := httptest.NewRecorder()
	srv.Router().ServeHTTP(w, req)
	return w
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(srv, http.MethodGet, "/api/health", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"status":"ok"`)
}

func TestAnalyzeEndpoint(t *testing.T) {
	srv := newTestServer(t)

	body := `{
		"title": "A post about golang",
		"seoTitle": "The Practical Golang Guide For Working Devs",
		"metaDescription": "Everything you need to know about writing practical Go programs, from project layout to testing, in one long reference guide.",
		"focusKeyword": "golang",
		"slug": "practical-golang-guide",
		"contentHtml": "<p>golang is a language. golang has goroutines. Many words follow here to fill the paragraph out a little more.</p>"
	}`

	w := doRequest(srv, http.MethodPost, "/api/analyze", body)
	require.Equal(t, http.StatusOK, w.Code)

	var payload struct {
		Success  bool `json:"success"`
		Analysis struct {
			Score   int `json:"score"`
			Keyword struct {
				FocusKeyword string `json:"focusKeyword"`
			} `json:"keyword"`
		} `json:"analysis"`
		Issues struct {
			Issues []string `json:"issues"`
		} `json:"seo_issues"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))

	assert.True(t, payload.Success)
	assert.Greater(t, payload.Analysis.Score, 0)
	assert.Equal(t, "golang", payload.Analysis.Keyword.FocusKeyword)
	assert.NotEmpty(t, payload.Issues.Issues)
}

func TestAnalyzeRejectsEmptyDocument(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(srv, http.MethodPost, "/api/analyze", `{}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Document must have a title or content")
}

func TestAnalyzeRejectsBadJSON(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(srv, http.MethodPost, "/api/analyze", `{not json`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid document provided")
}

func TestPostAnalysisEndpoint(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(srv, http.MethodGet, "/api/posts/understanding-keyword-density/analysis", "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"slug":"understanding-keyword-density"`)

	w = doRequest(srv, http.MethodGet, "/api/posts/no-such-post/analysis", "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Post not found")
}

func TestStatisticsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	// Record one analysis so the current month has data
	doRequest(srv, http.MethodPost, "/api/analyze",
		`{"title": "A post", "contentHtml": "<p>hello world</p>"}`)

	w := doRequest(srv, http.MethodGet, "/api/statistics", "")
	require.Equal(t, http.StatusOK, w.Code)

	var payload map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))

	current, ok := payload["currentMonth"].(map[string]any)
	require.True(t, ok)
	assert.GreaterOrEqual(t, current["analysesRun"].(float64), 1.0)
	assert.Contains(t, payload, "months")
}

func TestRobotsEndpoint(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(srv, http.MethodGet, "/robots.txt", "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/plain")

	body := w.Body.String()
	assert.Contains(t, body, "User-agent: *")
	assert.Contains(t, body, "Sitemap:")
	assert.Contains(t, body, "Disallow: /admin/")
}

func TestCORSPreflight(t *testing.T) {
	srv := newTestServer(t)

	w := doRequest(srv, http.MethodOptions, "/api/analyze", "")
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}
