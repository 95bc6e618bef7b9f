package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/yt-batch/internal/catalog"
	"github.com/ytget/yt-batch/internal/download"
	mock_download "github.com/ytget/yt-batch/internal/download/mocks"
	"github.com/ytget/yt-batch/internal/errs"
	"github.com/ytget/yt-batch/internal/history"
	"github.com/ytget/yt-batch/internal/logger"
	"github.com/ytget/yt-batch/internal/model"
	mock_resolver "github.com/ytget/yt-batch/internal/resolver/mocks"
)

const testURL = "https://www.youtube.com/watch?v=abc"

func TestMain(m *testing.M) {
	logger.InitTestLogger()
	os.Exit(m.Run())
}

func TestRun_Help(t *testing.T) {
	var out bytes.Buffer

	code := Run(context.Background(), "yt-batch", []string{"--help"}, &out, Deps{})

	assert.Equal(t, ExitOK, code)
	assert.Contains(t, out.String(), "Usage: yt-batch <url>")
	assert.Contains(t, out.String(), "720p HD")
	assert.Contains(t, out.String(), "MP3 Audio")
}

func TestRun_NoArgs(t *testing.T) {
	var out bytes.Buffer

	code := Run(context.Background(), "yt-batch", nil, &out, Deps{})

	assert.Equal(t, ExitUsage, code)
	assert.Contains(t, out.String(), "Usage:")
}

func TestIsHelp(t *testing.T) {
	assert.True(t, IsHelp([]string{"-h"}))
	assert.True(t, IsHelp([]string{"--help"}))
	assert.False(t, IsHelp([]string{testURL}))
	assert.False(t, IsHelp(nil))
}

func TestRun_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := t.TempDir()
	store := history.NewStore(nil)

	res := mock_resolver.NewMockResolver(ctrl)
	res.EXPECT().Resolve(gomock.Any(), testURL).
		Return(model.NewVideoMetadata(testURL, "Test Video", 205, "Channel", ""), nil)

	fetcher := mock_download.NewMockFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req download.Request, sink download.ProgressSink) error {
			assert.Equal(t, testURL, req.URL)
			assert.Equal(t, dir, req.DestinationDir)
			assert.Equal(t, catalog.Quality720p, req.Quality)
			assert.Equal(t, catalog.FormatMP3, req.Format)

			sink(model.Progress{DownloadedBytes: 512, TotalBytes: 1024, SpeedBytesPerSec: 2048})
			sink(model.Progress{Finished: true})
			return nil
		})

	var out bytes.Buffer
	code := Run(context.Background(), "yt-batch", []string{testURL, dir, "720p HD", "MP3 Audio"}, &out, Deps{
		Resolver: res,
		Fetcher:  fetcher,
		History:  store,
	})

	assert.Equal(t, ExitOK, code)

	text := out.String()
	assert.Contains(t, text, "Fetching video information for: "+testURL)
	assert.Contains(t, text, "Title: Test Video")
	assert.Contains(t, text, "Duration: 03:25")
	assert.Contains(t, text, "Uploader: Channel")
	assert.Contains(t, text, "Downloading to: "+dir)
	assert.Contains(t, text, "Quality: 720p HD")
	assert.Contains(t, text, "Format: MP3 Audio")
	assert.Contains(t, text, "Progress: 50.0% at 2.0 KiB/s")
	assert.Contains(t, text, "Download complete: Test Video")
	assert.Contains(t, text, "Download completed successfully!")

	entries := store.List(0)
	require.Len(t, entries, 1)
	assert.Equal(t, model.HistoryStatusCompleted, entries[0].Status)
	assert.Equal(t, "Test Video", entries[0].Title)
}

func TestRun_DefaultsApplied(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	dir := filepath.Join(t.TempDir(), "Downloads")

	res := mock_resolver.NewMockResolver(ctrl)
	res.EXPECT().Resolve(gomock.Any(), testURL).
		Return(model.NewVideoMetadata(testURL, "Clip", 30, "", ""), nil)

	fetcher := mock_download.NewMockFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req download.Request, _ download.ProgressSink) error {
			assert.Equal(t, dir, req.DestinationDir)
			assert.Equal(t, catalog.DefaultQuality, req.Quality)
			assert.Equal(t, catalog.DefaultFormat, req.Format)
			return nil
		})

	var out bytes.Buffer
	code := Run(context.Background(), "yt-batch", []string{testURL}, &out, Deps{
		Resolver:         res,
		Fetcher:          fetcher,
		History:          history.NewStore(nil),
		DefaultOutputDir: dir,
	})

	assert.Equal(t, ExitOK, code)
	assert.DirExists(t, dir)
	assert.Contains(t, out.String(), "Uploader: Unknown")
}

func TestRun_ResolveFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	res := mock_resolver.NewMockResolver(ctrl)
	res.EXPECT().Resolve(gomock.Any(), testURL).
		Return(nil, &errs.ResolutionError{URL: testURL, Err: errors.New("video unavailable")})

	fetcher := mock_download.NewMockFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).Times(0)

	var out bytes.Buffer
	code := Run(context.Background(), "yt-batch", []string{testURL, t.TempDir()}, &out, Deps{
		Resolver: res,
		Fetcher:  fetcher,
		History:  history.NewStore(nil),
	})

	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, out.String(), "Error:")
	assert.Contains(t, out.String(), "video unavailable")
}

func TestRun_DownloadFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	store := history.NewStore(nil)

	res := mock_resolver.NewMockResolver(ctrl)
	res.EXPECT().Resolve(gomock.Any(), testURL).
		Return(model.NewVideoMetadata(testURL, "Broken", 10, "X", ""), nil)

	fetcher := mock_download.NewMockFetcher(ctrl)
	fetcher.EXPECT().Fetch(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(errors.New("HTTP Error 403"))

	var out bytes.Buffer
	code := Run(context.Background(), "yt-batch", []string{testURL, t.TempDir()}, &out, Deps{
		Resolver: res,
		Fetcher:  fetcher,
		History:  store,
	})

	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, out.String(), "Download failed: Broken")
	assert.NotContains(t, out.String(), "Download completed successfully!")

	entries := store.List(0)
	require.Len(t, entries, 1)
	assert.Equal(t, model.HistoryStatusFailed, entries[0].Status)
}

func TestRun_OutputPathIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0o600))

	var out bytes.Buffer
	code := Run(context.Background(), "yt-batch", []string{testURL, file}, &out, Deps{})

	assert.Equal(t, ExitFailure, code)
	assert.Contains(t, out.String(), "cannot use output path")
}
