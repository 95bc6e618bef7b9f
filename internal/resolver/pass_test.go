package resolver

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/yt-batch/internal/errs"
	"github.com/ytget/yt-batch/internal/model"
	"github.com/ytget/yt-batch/internal/platform"
	mock_resolver "github.com/ytget/yt-batch/internal/resolver/mocks"
)

func metaFor(url string) *model.VideoMetadata {
	return model.NewVideoMetadata(url, "title "+url, 30, "", "")
}

func TestResolveAll_PreservesOrderAndIsolatesFailures(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	urls := []string{"https://e.com/1", "https://e.com/2", "https://e.com/3", "https://e.com/4"}

	r := mock_resolver.NewMockResolver(ctrl)
	r.EXPECT().Resolve(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, url string) (*model.VideoMetadata, error) {
			if url == "https://e.com/2" {
				return nil, &errs.ResolutionError{URL: url, Err: errors.New("404")}
			}
			// Later URLs finish first
			if url == "https://e.com/1" {
				time.Sleep(20 * time.Millisecond)
			}
			return metaFor(url), nil
		}).Times(4)

	pass := ResolveAll(context.Background(), r, urls, WithParallel(4))

	require.Len(t, pass.Resolved, 3)
	assert.Equal(t, "https://e.com/1", pass.Resolved[0].SourceURL)
	assert.Equal(t, "https://e.com/3", pass.Resolved[1].SourceURL)
	assert.Equal(t, "https://e.com/4", pass.Resolved[2].SourceURL)

	require.Equal(t, 1, pass.FailureCount())
	var resErr *errs.ResolutionError
	require.True(t, errors.As(pass.Failures[0], &resErr))
	assert.Equal(t, "https://e.com/2", resErr.URL)
}

func TestResolveAll_RespectsParallelLimit(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	var inFlight, peak int32
	r := mock_resolver.NewMockResolver(ctrl)
	r.EXPECT().Resolve(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, url string) (*model.VideoMetadata, error) {
			n := atomic.AddInt32(&inFlight, 1)
			for {
				p := atomic.LoadInt32(&peak)
				if n <= p || atomic.CompareAndSwapInt32(&peak, p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			atomic.AddInt32(&inFlight, -1)
			return metaFor(url), nil
		}).Times(6)

	urls := []string{"https://e.com/a", "https://e.com/b", "https://e.com/c", "https://e.com/d", "https://e.com/e", "https://e.com/f"}
	pass := ResolveAll(context.Background(), r, urls, WithParallel(2))

	assert.Len(t, pass.Resolved, 6)
	assert.LessOrEqual(t, atomic.LoadInt32(&peak), int32(2))
}

func TestResolveAll_PerURLTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := mock_resolver.NewMockResolver(ctrl)
	r.EXPECT().Resolve(gomock.Any(), "https://e.com/slow").DoAndReturn(
		func(ctx context.Context, url string) (*model.VideoMetadata, error) {
			<-ctx.Done()
			return nil, &errs.ResolutionError{URL: url, Err: ctx.Err()}
		})

	pass := ResolveAll(context.Background(), r, []string{"https://e.com/slow"}, WithTimeout(10*time.Millisecond))

	require.Equal(t, 1, pass.FailureCount())
	assert.ErrorIs(t, pass.Failures[0], context.DeadlineExceeded)
}

func TestResolveAll_ExpandsPlaylists(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	const playlist = "https://www.youtube.com/playlist?list=PL1"
	const broken = "https://www.youtube.com/playlist?list=PLbroken"

	expander := mock_resolver.NewMockPlaylistExpander(ctrl)
	expander.EXPECT().List(gomock.Any(), playlist).Return([]platform.PlaylistEntry{
		{VideoID: "a", URL: "https://www.youtube.com/watch?v=a"},
		{VideoID: "b", URL: "https://www.youtube.com/watch?v=b"},
	}, nil)
	expander.EXPECT().List(gomock.Any(), broken).Return(nil, errors.New("playlist is private"))

	r := mock_resolver.NewMockResolver(ctrl)
	r.EXPECT().Resolve(gomock.Any(), gomock.Any()).DoAndReturn(
		func(ctx context.Context, url string) (*model.VideoMetadata, error) {
			return metaFor(url), nil
		}).Times(3)

	urls := []string{"https://e.com/first", playlist, broken}
	pass := ResolveAll(context.Background(), r, urls, WithPlaylistExpander(expander))

	require.Len(t, pass.Resolved, 3)
	assert.Equal(t, "https://e.com/first", pass.Resolved[0].SourceURL)
	assert.Equal(t, "https://www.youtube.com/watch?v=a", pass.Resolved[1].SourceURL)
	assert.Equal(t, "https://www.youtube.com/watch?v=b", pass.Resolved[2].SourceURL)

	require.Equal(t, 1, pass.FailureCount())
	var resErr *errs.ResolutionError
	require.True(t, errors.As(pass.Failures[0], &resErr))
	assert.Equal(t, broken, resErr.URL)
}

func TestResolveAll_NilMetadataIsFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	r := mock_resolver.NewMockResolver(ctrl)
	r.EXPECT().Resolve(gomock.Any(), gomock.Any()).Return(nil, nil)

	pass := ResolveAll(context.Background(), r, []string{"https://e.com/x"})
	assert.Empty(t, pass.Resolved)
	assert.Equal(t, 1, pass.FailureCount())
}

func TestResolveAll_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	pass := ResolveAll(context.Background(), mock_resolver.NewMockResolver(ctrl), nil)
	assert.Empty(t, pass.Resolved)
	assert.Zero(t, pass.FailureCount())
}
