// Package metrics collects run diagnostics for the monitoring endpoints and
// the report footer. Degraded pipeline states (failed items, failed summary
// batches) never abort a run, so these counters are the only place the
// operator can see them.
package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	ArticlesFetched    int64
	DuplicatesFiltered int64
	RelevantArticles   int64
	SuccessfulItems    int64
	FailedItems        int64
	APICalls           int64
	SummariesWritten   int64
	FailedSummaries    int64

	// Timings
	LastRunDuration time.Duration

	// Status
	LastRunTime   time.Time
	LastErrorTime time.Time
	LastError     string
	IsHealthy     bool
}

var Global = &Metrics{IsHealthy: true}

func (m *Metrics) AddArticlesFetched(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesFetched += int64(n)
}

func (m *Metrics) AddDuplicatesFiltered(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesFiltered += int64(n)
}

func (m *Metrics) AddRelevantArticles(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RelevantArticles += int64(n)
}

func (m *Metrics) AddItemResults(successful, failed int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SuccessfulItems += int64(successful)
	m.FailedItems += int64(failed)
}

func (m *Metrics) AddAPICalls(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.APICalls += int64(n)
}

func (m *Metrics) AddSummaries(written, failed int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.SummariesWritten += int64(written)
	m.FailedSummaries += int64(failed)
}

func (m *Metrics) SetLastRun(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
	m.LastRunDuration = duration
	m.IsHealthy = true
}

func (m *Metrics) SetError(err string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastError = err
	m.LastErrorTime = time.Now()
	m.IsHealthy = false
}

func (m *Metrics) GetStats() map[string]interface{} {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return map[string]interface{}{
		"articles_fetched":     m.ArticlesFetched,
		"duplicates_filtered":  m.DuplicatesFiltered,
		"relevant_articles":    m.RelevantArticles,
		"successful_items":     m.SuccessfulItems,
		"failed_items":         m.FailedItems,
		"api_calls":            m.APICalls,
		"summaries_written":    m.SummariesWritten,
		"failed_summaries":     m.FailedSummaries,
		"last_run_duration_ms": m.LastRunDuration.Milliseconds(),
		"last_run_time":        m.LastRunTime.Format(time.RFC3339),
		"last_error_time":      m.LastErrorTime.Format(time.RFC3339),
		"last_error":           m.LastError,
		"is_healthy":           m.IsHealthy,
	}
}
