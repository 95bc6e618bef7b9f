package resolver

import (
	"context"

	"github.com/lrstanley/go-ytdlp"

	"github.com/ytget/yt-batch/internal/errs"
	"github.com/ytget/yt-batch/internal/model"
)

// YTDLPResolver reads metadata through the yt-dlp binary. It works for any
// site yt-dlp supports.
type YTDLPResolver struct{}

// NewYTDLPResolver creates a yt-dlp backed resolver
func NewYTDLPResolver() *YTDLPResolver {
	return &YTDLPResolver{}
}

// Resolve implements Resolver
func (r *YTDLPResolver) Resolve(ctx context.Context, rawURL string) (*model.VideoMetadata, error) {
	if err := ValidateURL(rawURL); err != nil {
		return nil, &errs.ResolutionError{URL: rawURL, Err: err}
	}

	result, err := ytdlp.New().
		SkipDownload().
		NoPlaylist().
		NoWarnings().
		PrintJSON().
		Run(ctx, rawURL)
	if err != nil {
		return nil, resolutionError(rawURL, "yt-dlp: %w", err)
	}

	info, err := result.GetExtractedInfo()
	if err != nil {
		return nil, resolutionError(rawURL, "parse yt-dlp output: %w", err)
	}
	if len(info) == 0 || info[0] == nil {
		return nil, resolutionError(rawURL, "yt-dlp returned no metadata")
	}
	return infoToMetadata(rawURL, info[0]), nil
}

func infoToMetadata(rawURL string, info *ytdlp.ExtractedInfo) *model.VideoMetadata {
	source := rawURL
	if info.WebpageURL != nil && *info.WebpageURL != "" {
		source = *info.WebpageURL
	}

	duration := model.UnknownDuration
	if info.Duration != nil && *info.Duration >= 0 {
		duration = int(*info.Duration)
	}

	return model.NewVideoMetadata(
		source,
		deref(info.Title),
		duration,
		deref(info.Uploader),
		deref(info.Thumbnail),
	)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
