package monitoring

import (
	"sync"
	"time"

	"kitchenorders/internal/forecast"
)

// RunSummary is what the monitor keeps of a customer's latest suggestion run
type RunSummary struct {
	Success            bool      `json:"success"`
	HistoricalOrders   int       `json:"historical_orders"`
	SuggestionsApplied int       `json:"suggestions_applied"`
	HighConfidence     int       `json:"high_confidence"`
	RecipesAnalyzed    int       `json:"recipes_analyzed"`
	Error              string    `json:"error,omitempty"`
	At                 time.Time `json:"at"`
}

// Summary is a point-in-time view of the monitor
type Summary struct {
	UptimeSeconds float64               `json:"uptime_seconds"`
	Runs          int                   `json:"runs"`
	FailedRuns    int                   `json:"failed_runs"`
	Customers     map[string]RunSummary `json:"customers"`
}

// Monitor keeps the latest suggestion run per customer for the API
type Monitor struct {
	mu        sync.RWMutex
	lastRuns  map[string]RunSummary
	runs      int
	failed    int
	startTime time.Time
	now       func() time.Time
}

// NewMonitor creates a new monitoring instance
func NewMonitor() *Monitor {
	return &Monitor{
		lastRuns:  make(map[string]RunSummary),
		startTime: time.Now(),
		now:       time.Now,
	}
}

// RecordRun replaces the customer's latest run with result
func (m *Monitor) RecordRun(customerID string, result forecast.Result) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.runs++
	if !result.Success {
		m.failed++
	}

	m.lastRuns[customerID] = RunSummary{
		Success:            result.Success,
		HistoricalOrders:   result.Metadata.HistoricalOrdersCount,
		SuggestionsApplied: result.Metadata.SuggestionsAppliedCount,
		HighConfidence:     result.Metadata.HighConfidenceCount,
		RecipesAnalyzed:    result.Metadata.RecipesAnalyzedCount,
		Error:              result.Error,
		At:                 m.now(),
	}
}

// LastRun returns the latest run recorded for a customer
func (m *Monitor) LastRun(customerID string) (RunSummary, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	run, ok := m.lastRuns[customerID]
	return run, ok
}

// Summary returns a copy of everything recorded so far
func (m *Monitor) Summary() Summary {
	m.mu.RLock()
	defer m.mu.RUnlock()

	customers := make(map[string]RunSummary, len(m.lastRuns))
	for id, run := range m.lastRuns {
		customers[id] = run
	}

	return Summary{
		UptimeSeconds: m.now().Sub(m.startTime).Seconds(),
		Runs:          m.runs,
		FailedRuns:    m.failed,
		Customers:     customers,
	}
}
