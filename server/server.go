// Package server exposes the analysis engine over HTTP for the admin
// and editor UI.
package server

import (
	"fmt"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/blog-seo/backend/analyzer"
	"github.com/blog-seo/backend/logging"
	"github.com/blog-seo/backend/middleware"
	"github.com/blog-seo/backend/post"
	"github.com/blog-seo/backend/stats"
)

// Config collects everything the server needs; nothing is read from
// ambient globals past construction.
type Config struct {
	Analyzer   analyzer.Config
	ContentDir string
	DataDir    string
}

// Server wires the analyzer, the content directory and the statistics
// stores behind a gin router.
type Server struct {
	cfg       Config
	analyzer  *analyzer.Analyzer
	scores    *stats.Storage
	requests  *logging.Statistics
	rateLimit *middleware.RateLimiter
}

// New creates a Server and its score storage.
func New(cfg Config) (*Server, error) {
	scores, err := stats.NewStorage(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize score storage: %w", err)
	}

	return &Server{
		cfg:       cfg,
		analyzer:  analyzer.New(cfg.Analyzer),
		scores:    scores,
		requests:  logging.Initialize(),
		rateLimit: middleware.NewRateLimiter(2, 5), // 2 requests per second, bucket size of 5
	}, nil
}

// Router builds the gin engine with all middlewares and routes.
func (s *Server) Router() *gin.Engine {
	r := gin.Default()

	r.Use(middleware.ErrorHandler())
	r.Use(s.rateLimit.RateLimit())
	r.Use(corsMiddleware())
	r.Use(middleware.RequestStats(s.requests))

	api := r.Group("/api")
	{
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		api.POST("/analyze", s.handleAnalyze)
		api.GET("/posts/:slug/analysis", s.handlePostAnalysis)
		api.GET("/statistics", s.handleStatistics)
	}

	r.GET("/robots.txt", s.handleRobots)

	return r
}

// Run starts the HTTP server on the given port.
func (s *Server) Run(port string) error {
	log.Printf("Server starting on http://localhost:%s\n", port)
	return s.Router().Run(":" + port)
}

// Shutdown flushes persisted statistics.
func (s *Server) Shutdown() error {
	return s.scores.Shutdown()
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

// handleAnalyze analyzes a document supplied in the request body and
// responds with the analysis plus the findings report, in the shape the
// editor UI consumes.
func (s *Server) handleAnalyze(c *gin.Context) {
	var doc analyzer.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Invalid document provided",
		})
		return
	}
	if doc.Title == "" && doc.ContentHTML == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   "Document must have a title or content",
		})
		return
	}

	result := s.analyzer.Analyze(doc)
	s.scores.RecordAnalysis(result.Score, false)

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"analysis":   result,
		"seo_issues": result.Report,
	})
}

// handlePostAnalysis loads a post from the content directory by slug
// and analyzes it.
func (s *Server) handlePostAnalysis(c *gin.Context) {
	slug := c.Param("slug")

	posts, err := post.LoadDir(s.cfg.ContentDir)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"error":   "Failed to load posts: " + err.Error(),
		})
		return
	}

	for _, p := range posts {
		if p.Slug != slug {
			continue
		}
		result := s.analyzer.Analyze(p.Document())
		s.scores.RecordAnalysis(result.Score, false)

		c.JSON(http.StatusOK, gin.H{
			"success":    true,
			"slug":       p.Slug,
			"analysis":   result,
			"seo_issues": result.Report,
		})
		return
	}

	c.JSON(http.StatusNotFound, gin.H{
		"success": false,
		"error":   "Post not found: " + slug,
	})
}

func (s *Server) handleStatistics(c *gin.Context) {
	payload := s.requests.GetStatistics()

	current := s.scores.GetCurrentStats()
	payload["currentMonth"] = gin.H{
		"analysesRun":      current.AnalysesRun,
		"averageScore":     current.AverageScore(),
		"excellent":        current.Excellent,
		"good":             current.Good,
		"needsImprovement": current.NeedsImprovement,
		"poor":             current.Poor,
	}
	payload["months"] = s.scores.GetAllMonths()

	c.JSON(http.StatusOK, payload)
}

func (s *Server) handleRobots(c *gin.Context) {
	baseURL := s.cfg.Analyzer.BaseURL

	content := fmt.Sprintf(`User-agent: *
Allow: /

# Sitemaps
Sitemap: %s/sitemap.xml

# Disallow admin and private areas
Disallow: /admin/
Disallow: /api/
Disallow: /accounts/

# Crawl delay (optional)
Crawl-delay: 1

# Block known bad bots
User-agent: SemrushBot
Disallow: /

User-agent: AhrefsBot
Disallow: /

User-agent: MJ12bot
Disallow: /
`, baseURL)

	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(content))
}
