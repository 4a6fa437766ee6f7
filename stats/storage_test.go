package stats

import (
	"sync"
	"testing"
	"time"
)

func TestStorage(t *testing.T) {
	tempDir := t.TempDir()

	storage, err := NewStorage(tempDir)
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	t.Run("RecordAnalysis", func(t *testing.T) {
		storage.RecordAnalysis(95, false)
		storage.RecordAnalysis(85, false)
		storage.RecordAnalysis(65, false)
		storage.RecordAnalysis(40, false)
		storage.RecordAnalysis(0, true)

		stats := storage.GetCurrentStats()
		if stats.AnalysesRun != 5 {
			t.Errorf("Expected 5 analyses, got %d", stats.AnalysesRun)
		}
		if stats.ErrorCount != 1 {
			t.Errorf("Expected 1 error, got %d", stats.ErrorCount)
		}
		if stats.Excellent != 1 || stats.Good != 1 || stats.NeedsImprovement != 1 || stats.Poor != 1 {
			t.Errorf("Unexpected bucket counts: %+v", stats)
		}
		if stats.TotalScore != 285 {
			t.Errorf("Expected total score 285, got %d", stats.TotalScore)
		}
		if avg := stats.AverageScore(); avg != 71.25 {
			t.Errorf("Expected average 71.25, got %f", avg)
		}
	})

	t.Run("Persistence", func(t *testing.T) {
		// Force a write to disk
		storage.requestWrite()
		time.Sleep(100 * time.Millisecond)

		// Create new storage instance to test loading
		newStorage, err := NewStorage(tempDir)
		if err != nil {
			t.Fatalf("Failed to create new storage: %v", err)
		}

		stats := newStorage.GetCurrentStats()
		if stats.AnalysesRun != 5 {
			t.Errorf("Expected 5 analyses after reload, got %d", stats.AnalysesRun)
		}
		if stats.TotalScore != 285 {
			t.Errorf("Expected total score 285 after reload, got %d", stats.TotalScore)
		}
	})

	t.Run("MonthLookup", func(t *testing.T) {
		month := getCurrentMonth()

		if _, ok := storage.GetMonthlyStats(month); !ok {
			t.Errorf("Expected stats for current month %s", month)
		}
		if _, ok := storage.GetMonthlyStats("1999-01"); ok {
			t.Error("Did not expect stats for 1999-01")
		}

		months := storage.GetAllMonths()
		if len(months) == 0 || months[0] != month {
			t.Errorf("Expected current month first, got %v", months)
		}
	})

	t.Run("Cleanup", func(t *testing.T) {
		// Seed an old month directly
		storage.mutex.Lock()
		storage.stats["2020-01"] = &MonthlyStats{AnalysesRun: 10}
		storage.mutex.Unlock()

		storage.Cleanup()

		if _, ok := storage.GetMonthlyStats("2020-01"); ok {
			t.Error("Expected old month to be removed by cleanup")
		}
		if stats := storage.GetCurrentStats(); stats.AnalysesRun != 5 {
			t.Errorf("Expected current month to survive cleanup, got %d analyses", stats.AnalysesRun)
		}
	})
}

func TestStorageConcurrentAccess(t *testing.T) {
	storage, err := NewStorage(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(score int) {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				storage.RecordAnalysis(score, false)
				storage.GetCurrentStats()
			}
		}(i * 10)
	}
	wg.Wait()

	stats := storage.GetCurrentStats()
	if stats.AnalysesRun != 1000 {
		t.Errorf("Expected 1000 analyses, got %d", stats.AnalysesRun)
	}
}

func TestAverageScoreEmpty(t *testing.T) {
	var m MonthlyStats
	if avg := m.AverageScore(); avg != 0 {
		t.Errorf("Expected zero average for empty month, got %f", avg)
	}

	m = MonthlyStats{AnalysesRun: 2, ErrorCount: 2}
	if avg := m.AverageScore(); avg != 0 {
		t.Errorf("Expected zero average when all runs failed, got %f", avg)
	}
}
