package resolver

import (
	"context"
	"net/url"
	"strings"

	"github.com/kkdai/youtube/v2"

	"github.com/ytget/yt-batch/internal/errs"
	"github.com/ytget/yt-batch/internal/model"
)

// YouTube hosts handled by YouTubeResolver
var youtubeHosts = []string{"youtube.com", "youtu.be"}

// videoGetter is the part of youtube.Client the resolver uses
type videoGetter interface {
	GetVideoContext(ctx context.Context, url string) (*youtube.Video, error)
}

// YouTubeResolver reads metadata through the pure-Go YouTube client
type YouTubeResolver struct {
	client videoGetter
}

// NewYouTubeResolver creates a resolver with a default client
func NewYouTubeResolver() *YouTubeResolver {
	return &YouTubeResolver{client: &youtube.Client{}}
}

// IsYouTubeURL reports whether rawURL points at a YouTube host
func IsYouTubeURL(rawURL string) bool {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return false
	}
	host := strings.ToLower(u.Hostname())
	for _, h := range youtubeHosts {
		if host == h || strings.HasSuffix(host, "."+h) {
			return true
		}
	}
	return false
}

// Resolve implements Resolver
func (r *YouTubeResolver) Resolve(ctx context.Context, rawURL string) (*model.VideoMetadata, error) {
	if err := ValidateURL(rawURL); err != nil {
		return nil, &errs.ResolutionError{URL: rawURL, Err: err}
	}
	if !IsYouTubeURL(rawURL) {
		return nil, &errs.ResolutionError{URL: rawURL, Err: ErrUnsupportedURL}
	}

	video, err := r.client.GetVideoContext(ctx, rawURL)
	if err != nil {
		return nil, resolutionError(rawURL, "youtube: %w", err)
	}
	return videoToMetadata(rawURL, video), nil
}

func videoToMetadata(rawURL string, video *youtube.Video) *model.VideoMetadata {
	duration := model.UnknownDuration
	if video.Duration > 0 {
		duration = int(video.Duration.Seconds())
	}

	var thumbnail string
	var width uint
	for _, th := range video.Thumbnails {
		if th.Width >= width {
			thumbnail = th.URL
			width = th.Width
		}
	}

	meta := model.NewVideoMetadata(rawURL, video.Title, duration, video.Author, thumbnail)
	meta.ViewCount = int64(video.Views)
	return meta
}
