package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/ytget/yt-batch/internal/catalog"
	"github.com/ytget/yt-batch/internal/model"
)

// Timestamp layouts accepted when reading a JSON history file. Files written
// by older releases carry local time without a zone.
var jsonTimestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02T15:04:05",
}

const jsonFilePermissions = 0o644

// jsonEntry is the on-disk shape of one entry
type jsonEntry struct {
	URL       string `json:"url"`
	Title     string `json:"title"`
	Quality   string `json:"quality"`
	Format    string `json:"format"`
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
}

// JSONBackend keeps the whole log as a JSON array, rewritten on every change
type JSONBackend struct {
	path string

	mu      sync.Mutex
	entries []jsonEntry
}

// NewJSONBackend creates a backend for the file at path
func NewJSONBackend(path string) *JSONBackend {
	return &JSONBackend{path: path}
}

// Load reads the file. A missing file is an empty history.
func (b *JSONBackend) Load() ([]model.HistoryEntry, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	data, err := os.ReadFile(b.path)
	if errors.Is(err, os.ErrNotExist) {
		b.entries = nil
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read history file: %w", err)
	}

	var raw []jsonEntry
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("decode history file: %w", err)
	}

	entries := make([]model.HistoryEntry, 0, len(raw))
	for _, r := range raw {
		entries = append(entries, model.HistoryEntry{
			URL:       r.URL,
			Title:     r.Title,
			Quality:   catalog.Quality(r.Quality),
			Format:    catalog.Format(r.Format),
			Status:    model.HistoryStatus(r.Status),
			Timestamp: parseJSONTimestamp(r.Timestamp),
		})
	}
	b.entries = raw
	return entries, nil
}

// Append adds e and rewrites the file
func (b *JSONBackend) Append(e model.HistoryEntry) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries = append(b.entries, jsonEntry{
		URL:       e.URL,
		Title:     e.Title,
		Quality:   string(e.Quality),
		Format:    string(e.Format),
		Status:    string(e.Status),
		Timestamp: e.Timestamp.Format(time.RFC3339Nano),
	})
	return b.write()
}

// Clear writes an empty array
func (b *JSONBackend) Clear() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.entries = nil
	return b.write()
}

// Close is a no-op; every change is already on disk
func (b *JSONBackend) Close() error {
	return nil
}

// write replaces the file atomically via a temp file and rename
func (b *JSONBackend) write() error {
	entries := b.entries
	if entries == nil {
		entries = []jsonEntry{}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return fmt.Errorf("encode history: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(b.path), filepath.Base(b.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp history file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp history file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp history file: %w", err)
	}
	if err := os.Chmod(tmpName, jsonFilePermissions); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod history file: %w", err)
	}
	if err := os.Rename(tmpName, b.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace history file: %w", err)
	}
	return nil
}

func parseJSONTimestamp(s string) time.Time {
	for _, layout := range jsonTimestampLayouts {
		if layout == time.RFC3339Nano {
			if t, err := time.Parse(layout, s); err == nil {
				return t
			}
			continue
		}
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t
		}
	}
	return time.Time{}
}
