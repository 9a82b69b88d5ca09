package service

import (
	"sync"
	"time"

	"github.com/codelens-ai/pydebug/domain"
)

// HistoryEntry summarizes one past analysis for the session history view
type HistoryEntry struct {
	ReportID  string    `json:"report_id" yaml:"report_id"`
	Timestamp time.Time `json:"timestamp" yaml:"timestamp"`
	Summary   string    `json:"summary" yaml:"summary"`
	Findings  int       `json:"findings" yaml:"findings"`
	Explained bool      `json:"explained" yaml:"explained"`
}

// History keeps recent reports in memory, newest first, capped at a
// fixed limit. Safe for concurrent use.
type History struct {
	mu      sync.RWMutex
	limit   int
	reports []*domain.Report
}

// NewHistory creates a history capped at limit entries.
// A non-positive limit disables retention.
func NewHistory(limit int) *History {
	return &History{limit: limit}
}

// Add records a report. The oldest entry is evicted once the cap is reached.
func (h *History) Add(report *domain.Report) {
	if h.limit <= 0 || report == nil {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()

	h.reports = append(h.reports, report)
	if len(h.reports) > h.limit {
		h.reports = h.reports[len(h.reports)-h.limit:]
	}
}

// Get returns the report with the given ID, or nil
func (h *History) Get(id string) *domain.Report {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, r := range h.reports {
		if r.ID == id {
			return r
		}
	}
	return nil
}

// Entries returns history entries, newest first
func (h *History) Entries() []HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	entries := make([]HistoryEntry, 0, len(h.reports))
	for i := len(h.reports) - 1; i >= 0; i-- {
		r := h.reports[i]
		entries = append(entries, HistoryEntry{
			ReportID:  r.ID,
			Timestamp: r.GeneratedAt,
			Summary:   r.Summary(),
			Findings:  len(r.Findings),
			Explained: r.Explanation.Success,
		})
	}
	return entries
}

// Len returns the number of retained reports
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.reports)
}
