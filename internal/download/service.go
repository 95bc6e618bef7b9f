package download

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strconv"
	"time"

	"github.com/lrstanley/go-ytdlp"
	"go.uber.org/zap"

	"github.com/ytget/yt-batch/internal/catalog"
	"github.com/ytget/yt-batch/internal/logger"
	"github.com/ytget/yt-batch/internal/model"
)

// Service defaults
const (
	DefaultOutputTemplate   = "%(title)s.%(ext)s"
	DefaultMaxRetries       = 1
	DefaultRetryBackoff     = 2 * time.Second
	DefaultProgressInterval = 500 * time.Millisecond
)

// Service fetches media through the yt-dlp binary
type Service struct {
	ffmpegLocation   string
	outputTemplate   string
	maxRetries       int
	retryBackoff     time.Duration
	progressInterval time.Duration
}

// Option configures a Service
type Option func(*Service)

// WithFFmpegLocation points yt-dlp at a specific ffmpeg binary or directory
func WithFFmpegLocation(path string) Option {
	return func(s *Service) {
		s.ffmpegLocation = path
	}
}

// WithRetry overrides the retry count and backoff
func WithRetry(maxRetries int, backoff time.Duration) Option {
	return func(s *Service) {
		if maxRetries >= 0 {
			s.maxRetries = maxRetries
		}
		s.retryBackoff = backoff
	}
}

// WithOutputTemplate overrides the yt-dlp filename template
func WithOutputTemplate(template string) Option {
	return func(s *Service) {
		if template != "" {
			s.outputTemplate = template
		}
	}
}

// NewService creates a new download service
func NewService(opts ...Option) *Service {
	s := &Service{
		outputTemplate:   DefaultOutputTemplate,
		maxRetries:       DefaultMaxRetries,
		retryBackoff:     DefaultRetryBackoff,
		progressInterval: DefaultProgressInterval,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Plan is the toolchain invocation derived from a Request
type Plan struct {
	Output         string
	FormatSelector string
	MergeFormat    string
	ExtractAudio   bool
	AudioFormat    string
	AudioQuality   string
	LimitRate      string
	FFmpegLocation string
}

// Plan translates req into toolchain settings
func (s *Service) Plan(req Request) Plan {
	p := Plan{
		Output:         filepath.Join(req.DestinationDir, s.outputTemplate),
		FormatSelector: catalog.Selector(req.Quality, req.Format),
		FFmpegLocation: s.ffmpegLocation,
	}

	if req.Format.IsAudio() {
		p.ExtractAudio = true
		p.AudioFormat = string(req.Format)
		p.AudioQuality = catalog.AudioQuality
	} else {
		p.MergeFormat = req.Format.Container()
	}

	if req.SpeedLimit > 0 {
		p.LimitRate = strconv.FormatInt(req.SpeedLimit, 10)
	}

	return p
}

// command builds the yt-dlp command for p
func (p Plan) command() *ytdlp.Command {
	dl := ytdlp.New().
		NoPlaylist().
		Format(p.FormatSelector).
		Output(p.Output)

	if p.ExtractAudio {
		dl = dl.ExtractAudio().
			AudioFormat(p.AudioFormat).
			AudioQuality(p.AudioQuality)
	}
	if p.MergeFormat != "" {
		dl = dl.MergeOutputFormat(p.MergeFormat)
	}
	if p.LimitRate != "" {
		dl = dl.LimitRate(p.LimitRate)
	}
	if p.FFmpegLocation != "" {
		dl = dl.FFmpegLocation(p.FFmpegLocation)
	}
	return dl
}

// Fetch downloads req.URL into req.DestinationDir, reporting progress to sink
func (s *Service) Fetch(ctx context.Context, req Request, sink ProgressSink) error {
	const funcName = "Service.Fetch"

	plan := s.Plan(req)
	dl := plan.command()

	dl.ProgressFunc(s.progressInterval, func(update ytdlp.ProgressUpdate) {
		if sink != nil {
			sink(toProgress(update))
		}
	})

	logger.Debug("starting download",
		zap.String("function", funcName),
		zap.String("url", req.URL),
		zap.String("format", plan.FormatSelector),
		zap.String("output", plan.Output),
	)

	if err := s.runWithRetry(ctx, dl, req.URL); err != nil {
		return err
	}

	if sink != nil {
		sink(model.Progress{Finished: true})
	}
	return nil
}

// runWithRetry attempts the download with retry logic
func (s *Service) runWithRetry(ctx context.Context, dl *ytdlp.Command, url string) error {
	const funcName = "Service.runWithRetry"
	var lastErr error

	for attempt := 0; attempt <= s.maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(s.retryBackoff):
			case <-ctx.Done():
				return ctx.Err()
			}

			logger.Info("retrying download",
				zap.String("function", funcName),
				zap.String("url", url),
				zap.Int("attempt", attempt+1),
			)
		}

		_, err := dl.Run(ctx, url)
		if err == nil {
			return nil
		}

		lastErr = err
		logger.Warn("download attempt failed",
			zap.String("function", funcName),
			zap.String("url", url),
			zap.Int("attempt", attempt+1),
			zap.Error(err),
		)

		if ctx.Err() != nil {
			return ctx.Err()
		}
	}

	return fmt.Errorf("yt-dlp: %w", lastErr)
}

// toProgress converts a yt-dlp progress update
func toProgress(update ytdlp.ProgressUpdate) model.Progress {
	p := model.Progress{
		DownloadedBytes: int64(update.DownloadedBytes),
		TotalBytes:      int64(update.TotalBytes),
		Finished:        update.Status == ytdlp.ProgressStatusFinished,
	}

	if !update.Started.IsZero() {
		elapsed := time.Since(update.Started)
		if elapsed.Seconds() > 0 {
			p.SpeedBytesPerSec = float64(update.DownloadedBytes) / elapsed.Seconds()
		}
	}

	return p
}

// EnsureInstalled makes sure a yt-dlp binary is available, downloading one
// into the library cache when none is found.
func EnsureInstalled(ctx context.Context) error {
	if _, err := ytdlp.Install(ctx, nil); err != nil {
		return fmt.Errorf("install yt-dlp: %w", err)
	}
	return nil
}

// IsCanceled reports whether err came from context cancellation
func IsCanceled(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
