package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/blog-seo/backend/logging"
)

// RequestStats tracks visitors and per-analysis latency
func RequestStats(stats *logging.Statistics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		// Track unique visitor
		stats.TrackVisitor(c.ClientIP())

		c.Next()

		// Only track analysis requests
		path := c.Request.URL.Path
		if path == "/api/analyze" || c.FullPath() == "/api/posts/:slug/analysis" {
			duration := float64(time.Since(start).Milliseconds())
			stats.TrackAnalysis(c.Param("slug"), duration, c.Writer.Status() >= 400)
		}

		// Periodically save statistics
		if stats.GetStatistics()["totalRequests"].(int)%100 == 0 {
			go stats.Save() // Save asynchronously to not block the request
		}
	}
}
