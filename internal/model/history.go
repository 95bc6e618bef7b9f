package model

import (
	"time"

	"github.com/ytget/yt-batch/internal/catalog"
)

// HistoryStatus is the terminal outcome recorded for one download attempt
type HistoryStatus string

const (
	HistoryStatusCompleted HistoryStatus = "completed"
	HistoryStatusFailed    HistoryStatus = "failed"
)

// HistoryEntry is one past download attempt
type HistoryEntry struct {
	URL       string          `json:"url"`
	Title     string          `json:"title"`
	Quality   catalog.Quality `json:"quality"`
	Format    catalog.Format  `json:"format"`
	Status    HistoryStatus   `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
}

// NewHistoryEntry records the outcome of item at time now
func NewHistoryEntry(item BatchItem, status HistoryStatus, now time.Time) HistoryEntry {
	return HistoryEntry{
		URL:       item.URL(),
		Title:     item.Metadata.Title,
		Quality:   item.Quality,
		Format:    item.Format,
		Status:    status,
		Timestamp: now,
	}
}

// HistoryStats summarizes the history log
type HistoryStats struct {
	Total     int
	Completed int
	Failed    int
}
