package metrics

import (
	"sync"
	"time"
)

type Metrics struct {
	mu sync.RWMutex

	// Counters
	ArticlesFetched    int64
	FeedFailures       int64
	ArticlesFiltered   int64
	DuplicatesRemoved  int64
	ItemsDropped       int64
	GeminiCalls        int64
	BriefingsDelivered int64

	// Timings
	LastRunDuration    time.Duration
	AverageRunDuration time.Duration
	TotalRunDuration   time.Duration
	RunCount           int64

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

func (m *Metrics) AddFeedFailures(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.FeedFailures += int64(n)
}

func (m *Metrics) AddArticlesFiltered(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ArticlesFiltered += int64(n)
}

func (m *Metrics) AddDuplicatesRemoved(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.DuplicatesRemoved += int64(n)
}

func (m *Metrics) AddItemsDropped(n int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ItemsDropped += int64(n)
}

func (m *Metrics) IncrementGeminiCalls() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.GeminiCalls++
}

func (m *Metrics) IncrementBriefingsDelivered() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BriefingsDelivered++
}

func (m *Metrics) RecordRunDuration(duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.LastRunDuration = duration
	m.TotalRunDuration += duration
	m.RunCount++

	if m.RunCount > 0 {
		m.AverageRunDuration = m.TotalRunDuration / time.Duration(m.RunCount)
	}
}

func (m *Metrics) SetLastRun() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.LastRunTime = time.Now()
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
		"articles_fetched":        m.ArticlesFetched,
		"feed_failures":           m.FeedFailures,
		"articles_filtered_out":   m.ArticlesFiltered,
		"duplicates_removed":      m.DuplicatesRemoved,
		"summary_items_dropped":   m.ItemsDropped,
		"gemini_calls":            m.GeminiCalls,
		"briefings_delivered":     m.BriefingsDelivered,
		"last_run_duration_ms":    m.LastRunDuration.Milliseconds(),
		"average_run_duration_ms": m.AverageRunDuration.Milliseconds(),
		"last_run_time":           m.LastRunTime.Format(time.RFC3339),
		"last_error_time":         m.LastErrorTime.Format(time.RFC3339),
		"last_error":              m.LastError,
		"is_healthy":              m.IsHealthy,
	}
}
