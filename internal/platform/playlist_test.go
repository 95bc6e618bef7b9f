package platform

import (
	"context"
	"testing"
	"time"
)

func TestNewPlaylistLister(t *testing.T) {
	lister := NewPlaylistLister()

	if lister == nil {
		t.Fatal("lister should not be nil")
	}

	if lister.timeout != DefaultPlaylistTimeout {
		t.Errorf("expected timeout %v, got %v", DefaultPlaylistTimeout, lister.timeout)
	}
}

func TestPlaylistLister_SetTimeout(t *testing.T) {
	tests := []struct {
		name            string
		newTimeout      time.Duration
		expectedTimeout time.Duration
	}{
		{
			name:            "should set new timeout",
			newTimeout:      30 * time.Second,
			expectedTimeout: 30 * time.Second,
		},
		{
			name:            "should set zero timeout",
			newTimeout:      0,
			expectedTimeout: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lister := NewPlaylistLister()
			lister.SetTimeout(tt.newTimeout)

			if lister.timeout != tt.expectedTimeout {
				t.Errorf("expected timeout %v, got %v", tt.expectedTimeout, lister.timeout)
			}
		})
	}
}

func TestExtractPlaylistID(t *testing.T) {
	tests := []struct {
		name     string
		url      string
		expected string
	}{
		{
			name:     "watch URL with list parameter",
			url:      "https://www.youtube.com/watch?v=VIDEO_ID&list=PLAYLIST_ID",
			expected: "PLAYLIST_ID",
		},
		{
			name:     "playlist URL",
			url:      "https://www.youtube.com/playlist?list=PL123&index=2",
			expected: "PL123",
		},
		{
			name:     "surrounding whitespace",
			url:      "  https://youtube.com/playlist?list=PLabc  ",
			expected: "PLabc",
		},
		{
			name:     "single video",
			url:      "https://www.youtube.com/watch?v=VIDEO_ID",
			expected: "",
		},
		{
			name:     "empty list value",
			url:      "https://www.youtube.com/playlist?list=",
			expected: "",
		},
		{
			name:     "malformed URL",
			url:      "://bad url",
			expected: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ExtractPlaylistID(tt.url); got != tt.expected {
				t.Errorf("expected %q, got %q", tt.expected, got)
			}
			if got := IsPlaylistURL(tt.url); got != (tt.expected != "") {
				t.Errorf("IsPlaylistURL(%q) = %v", tt.url, got)
			}
		})
	}
}

func TestPlaylistLister_ListRejectsNonPlaylist(t *testing.T) {
	lister := NewPlaylistLister()

	_, err := lister.List(context.Background(), "https://www.youtube.com/watch?v=VIDEO_ID")
	if err == nil {
		t.Fatal("expected error for URL without playlist ID")
	}
}
