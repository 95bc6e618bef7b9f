package resolver

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/kkdai/youtube/v2"
	"github.com/lrstanley/go-ytdlp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/yt-batch/internal/errs"
	"github.com/ytget/yt-batch/internal/model"
)

type fakeVideoGetter struct {
	video *youtube.Video
	err   error
	calls int
}

func (f *fakeVideoGetter) GetVideoContext(ctx context.Context, url string) (*youtube.Video, error) {
	f.calls++
	return f.video, f.err
}

func TestIsYouTubeURL(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://www.youtube.com/watch?v=abc", true},
		{"https://youtube.com/shorts/abc", true},
		{"https://music.youtube.com/watch?v=abc", true},
		{"https://youtu.be/abc", true},
		{"https://notyoutube.com/watch?v=abc", false},
		{"https://vimeo.com/1", false},
		{"::bad::", false},
	}
	for _, tt := range tests {
		t.Run(tt.url, func(t *testing.T) {
			assert.Equal(t, tt.want, IsYouTubeURL(tt.url))
		})
	}
}

func TestYouTubeResolver_Resolve(t *testing.T) {
	getter := &fakeVideoGetter{video: &youtube.Video{
		Title:    "Never\nGonna",
		Author:   "Rick",
		Duration: 3*time.Minute + 33*time.Second,
		Views:    1234,
		Thumbnails: youtube.Thumbnails{
			{URL: "https://i.ytimg.com/small.jpg", Width: 120},
			{URL: "https://i.ytimg.com/large.jpg", Width: 1280},
			{URL: "https://i.ytimg.com/medium.jpg", Width: 480},
		},
	}}
	r := &YouTubeResolver{client: getter}

	meta, err := r.Resolve(context.Background(), "https://youtu.be/dQw4w9WgXcQ")
	require.NoError(t, err)

	assert.Equal(t, "https://youtu.be/dQw4w9WgXcQ", meta.SourceURL)
	assert.Equal(t, "Never Gonna", meta.Title)
	assert.Equal(t, 213, meta.DurationSeconds)
	assert.Equal(t, "Rick", meta.Uploader)
	assert.Equal(t, "https://i.ytimg.com/large.jpg", meta.ThumbnailURL)
	assert.Equal(t, int64(1234), meta.ViewCount)
}

func TestYouTubeResolver_Placeholders(t *testing.T) {
	r := &YouTubeResolver{client: &fakeVideoGetter{video: &youtube.Video{}}}

	meta, err := r.Resolve(context.Background(), "https://www.youtube.com/watch?v=x")
	require.NoError(t, err)
	assert.Equal(t, model.UnknownTitle, meta.Title)
	assert.Equal(t, model.UnknownDuration, meta.DurationSeconds)
	assert.Equal(t, model.UnknownUploader, meta.GetUploader())
}

func TestYouTubeResolver_Errors(t *testing.T) {
	getter := &fakeVideoGetter{err: youtube.ErrVideoPrivate}
	r := &YouTubeResolver{client: getter}

	_, err := r.Resolve(context.Background(), "https://vimeo.com/1")
	assert.ErrorIs(t, err, ErrUnsupportedURL)
	assert.Zero(t, getter.calls)

	_, err = r.Resolve(context.Background(), "nonsense")
	assert.ErrorIs(t, err, errs.ErrInvalidURL)

	_, err = r.Resolve(context.Background(), "https://www.youtube.com/watch?v=x")
	var resErr *errs.ResolutionError
	require.True(t, errors.As(err, &resErr))
	assert.ErrorIs(t, err, youtube.ErrVideoPrivate)
}

func TestInfoToMetadata(t *testing.T) {
	title := "Clip"
	uploader := "Someone"
	thumb := "https://cdn.example/t.jpg"
	page := "https://vimeo.com/42"
	duration := 95.7

	meta := infoToMetadata("https://vimeo.com/42?share=1", &ytdlp.ExtractedInfo{
		Title:      &title,
		Uploader:   &uploader,
		Thumbnail:  &thumb,
		WebpageURL: &page,
		Duration:   &duration,
	})

	assert.Equal(t, page, meta.SourceURL)
	assert.Equal(t, "Clip", meta.Title)
	assert.Equal(t, 95, meta.DurationSeconds)
	assert.Equal(t, "Someone", meta.Uploader)
	assert.Equal(t, thumb, meta.ThumbnailURL)

	empty := infoToMetadata("https://e.com/v", &ytdlp.ExtractedInfo{})
	assert.Equal(t, "https://e.com/v", empty.SourceURL)
	assert.Equal(t, model.UnknownTitle, empty.Title)
	assert.Equal(t, model.UnknownDuration, empty.DurationSeconds)
}

func TestYTDLPResolver_RejectsInvalidURL(t *testing.T) {
	_, err := NewYTDLPResolver().Resolve(context.Background(), "ftp://example.com/x")
	assert.ErrorIs(t, err, errs.ErrInvalidURL)
}
