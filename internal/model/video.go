package model

import (
	"fmt"
	"strings"

	"github.com/ytget/yt-batch/internal/catalog"
)

// Placeholders for metadata the extractor did not report
const (
	UnknownTitle    = "Unknown"
	UnknownUploader = "Unknown"
	UnknownDuration = -1
)

// VideoMetadata is the result of resolving one URL
type VideoMetadata struct {
	SourceURL       string // canonical page URL
	Title           string
	DurationSeconds int    // -1 if unknown
	Uploader        string // empty if unknown
	ThumbnailURL    string // optional
	ViewCount       int64
}

// NewVideoMetadata builds metadata with placeholders applied for missing fields
func NewVideoMetadata(sourceURL, title string, durationSeconds int, uploader, thumbnail string) *VideoMetadata {
	title = cleanText(title)
	if title == "" {
		title = UnknownTitle
	}
	if durationSeconds < 0 {
		durationSeconds = UnknownDuration
	}
	return &VideoMetadata{
		SourceURL:       strings.TrimSpace(sourceURL),
		Title:           title,
		DurationSeconds: durationSeconds,
		Uploader:        cleanText(uploader),
		ThumbnailURL:    strings.TrimSpace(thumbnail),
	}
}

// GetDurationString returns duration formatted as hh:mm:ss or mm:ss, "—" if unknown
func (m *VideoMetadata) GetDurationString() string {
	if m.DurationSeconds < 0 {
		return "—"
	}

	hours := m.DurationSeconds / 3600
	minutes := (m.DurationSeconds % 3600) / 60
	seconds := m.DurationSeconds % 60

	if hours > 0 {
		return fmt.Sprintf("%02d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// GetUploader returns the uploader or a placeholder
func (m *VideoMetadata) GetUploader() string {
	if m.Uploader == "" {
		return UnknownUploader
	}
	return m.Uploader
}

// cleanText strips control whitespace that breaks single-line labels
func cleanText(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ReplaceAll(s, "\r", " ")
	s = strings.ReplaceAll(s, "\t", " ")
	return strings.TrimSpace(s)
}

// BatchItem is one queue entry of a batch run
type BatchItem struct {
	Metadata VideoMetadata
	Quality  catalog.Quality
	Format   catalog.Format
}

// URL returns the URL handed to the download capability
func (i BatchItem) URL() string {
	return i.Metadata.SourceURL
}

// NewBatchItems pairs every resolved video with one quality/format selection
func NewBatchItems(videos []VideoMetadata, quality catalog.Quality, format catalog.Format) []BatchItem {
	items := make([]BatchItem, 0, len(videos))
	for _, v := range videos {
		items = append(items, BatchItem{Metadata: v, Quality: quality, Format: format})
	}
	return items
}
