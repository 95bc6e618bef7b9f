package platform

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/ytget/ytdlp/v2"
)

// Timeout constants
const (
	DefaultPlaylistTimeout = 60 * time.Second
)

// URL parameters
const (
	PlaylistParam = "list"
)

// URL templates
const (
	YouTubeVideoURLTemplate = "https://www.youtube.com/watch?v=%s"
)

// PlaylistEntry is one video listed in a playlist
type PlaylistEntry struct {
	VideoID string
	Title   string
	URL     string
}

// PlaylistLister lists the videos of YouTube playlists using the ytdlp library
type PlaylistLister struct {
	timeout time.Duration
}

// NewPlaylistLister creates a new playlist lister
func NewPlaylistLister() *PlaylistLister {
	return &PlaylistLister{
		timeout: DefaultPlaylistTimeout,
	}
}

// SetTimeout sets the timeout for listing operations
func (p *PlaylistLister) SetTimeout(timeout time.Duration) {
	p.timeout = timeout
}

// List returns the videos of the playlist referenced by rawURL in order
func (p *PlaylistLister) List(ctx context.Context, rawURL string) ([]PlaylistEntry, error) {
	playlistID := ExtractPlaylistID(rawURL)
	if playlistID == "" {
		return nil, fmt.Errorf("could not extract playlist ID from URL: %s", rawURL)
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	items, err := ytdlp.New().GetPlaylistItemsAll(ctx, playlistID, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to get playlist items: %w", err)
	}

	entries := make([]PlaylistEntry, 0, len(items))
	for _, it := range items {
		if it.VideoID == "" {
			continue
		}
		entries = append(entries, PlaylistEntry{
			VideoID: it.VideoID,
			Title:   it.Title,
			URL:     fmt.Sprintf(YouTubeVideoURLTemplate, it.VideoID),
		})
	}
	return entries, nil
}

// IsPlaylistURL reports whether rawURL carries a playlist ID
func IsPlaylistURL(rawURL string) bool {
	return ExtractPlaylistID(rawURL) != ""
}

// ExtractPlaylistID returns the list= query value of rawURL, "" if absent
func ExtractPlaylistID(rawURL string) string {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return ""
	}
	return u.Query().Get(PlaylistParam)
}
