package logging

import (
	"encoding/json"
	"fmt"
	"os"
	"sync"
	"time"
)

// Environment variable name for controlling statistics visibility
const ENV_DEV_MODE = "DEV_MODE"

// Statistics represents the in-process request statistics
type Statistics struct {
	UniqueVisitors   map[string]time.Time `json:"uniqueVisitors"`   // IP -> Last Visit Time
	AnalysisRequests int                  `json:"analysisRequests"` // Total number of analysis requests
	ErrorCount       int                  `json:"errorCount"`       // Number of errors
	PopularSlugs     map[string]int       `json:"popularSlugs"`     // Post slug -> analysis count
	AverageDuration  float64              `json:"averageDuration"`  // Average analysis time in milliseconds
	TotalDuration    float64              `json:"-"`                // Used to calculate average
	RequestCount     int                  `json:"-"`                // Used to calculate average
	LastPersisted    time.Time            `json:"lastPersisted"`    // Last time stats were saved
	mutex            sync.RWMutex         `json:"-"`
}

var (
	stats *Statistics
	once  sync.Once
)

// Initialize creates or loads the statistics
func Initialize() *Statistics {
	once.Do(func() {
		stats = &Statistics{
			UniqueVisitors: make(map[string]time.Time),
			PopularSlugs:   make(map[string]int),
			LastPersisted:  time.Now(),
		}

		// Try to load existing statistics
		if err := stats.Load(); err != nil {
			fmt.Printf("Could not load existing statistics: %v\n", err)
		}
	})
	return stats
}

// TrackVisitor records a unique visitor
func (s *Statistics) TrackVisitor(ip string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.UniqueVisitors[ip] = time.Now()
}

// TrackAnalysis records an analysis request
func (s *Statistics) TrackAnalysis(slug string, duration float64, hasError bool) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.AnalysisRequests++

	if slug != "" {
		s.PopularSlugs[slug]++
	}

	if hasError {
		s.ErrorCount++
	}

	// Update average analysis duration
	s.TotalDuration += duration
	s.RequestCount++
	s.AverageDuration = s.TotalDuration / float64(s.RequestCount)
}

// GetUniqueVisitorsCount returns the number of unique visitors in the last 24 hours
func (s *Statistics) GetUniqueVisitorsCount() int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	count := 0
	cutoff := time.Now().Add(-24 * time.Hour)

	for _, lastVisit := range s.UniqueVisitors {
		if lastVisit.After(cutoff) {
			count++
		}
	}

	return count
}

// GetPopularSlugs returns up to N of the most analyzed post slugs
func (s *Statistics) GetPopularSlugs(n int) map[string]int {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	result := make(map[string]int)
	count := 0

	// Simple implementation - for production, use a heap or sorted data structure
	for slug, freq := range s.PopularSlugs {
		if count < n {
			result[slug] = freq
			count++
		}
	}

	return result
}

// GetErrorRate returns the error rate as a percentage
func (s *Statistics) GetErrorRate() float64 {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	if s.AnalysisRequests == 0 {
		return 0
	}

	return (float64(s.ErrorCount) / float64(s.AnalysisRequests)) * 100
}

// Save persists the statistics to a file
func (s *Statistics) Save() error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	s.LastPersisted = time.Now()

	file, err := os.Create("statistics.json")
	if err != nil {
		return fmt.Errorf("could not create statistics file: %v", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	if err := encoder.Encode(s); err != nil {
		return fmt.Errorf("could not encode statistics: %v", err)
	}

	return nil
}

// Load reads the statistics from a file
func (s *Statistics) Load() error {
	file, err := os.Open("statistics.json")
	if err != nil {
		if os.IsNotExist(err) {
			return nil // Not an error if file doesn't exist yet
		}
		return fmt.Errorf("could not open statistics file: %v", err)
	}
	defer file.Close()

	decoder := json.NewDecoder(file)
	if err := decoder.Decode(s); err != nil {
		return fmt.Errorf("could not decode statistics: %v", err)
	}

	return nil
}

// GetStatistics returns a copy of the current statistics, but only in development mode
func (s *Statistics) GetStatistics() map[string]interface{} {
	// Check if we're in development mode
	if os.Getenv(ENV_DEV_MODE) != "true" {
		// In production, return limited statistics without sensitive data
		s.mutex.RLock()
		defer s.mutex.RUnlock()

		return map[string]interface{}{
			"uniqueVisitors24h": s.GetUniqueVisitorsCount(),
			"totalRequests":     s.AnalysisRequests,
			"errorRate":         s.GetErrorRate(),
			"averageDuration":   s.AverageDuration,
		}
	}

	// In development mode, return full statistics
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	return map[string]interface{}{
		"uniqueVisitors24h": s.GetUniqueVisitorsCount(),
		"totalRequests":     s.AnalysisRequests,
		"errorRate":         s.GetErrorRate(),
		"averageDuration":   s.AverageDuration,
		"popularSlugs":      s.GetPopularSlugs(5), // Top 5 slugs only shown in dev mode
	}
}
