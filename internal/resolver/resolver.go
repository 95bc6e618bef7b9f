// Package resolver turns user supplied URLs into video metadata without
// downloading any media.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/ytget/yt-batch/internal/errs"
	"github.com/ytget/yt-batch/internal/model"
	"github.com/ytget/yt-batch/internal/platform"
)

//go:generate mockgen -source=resolver.go -destination=mocks/mock.go

// Resolver fetches metadata for one URL. Every failure is a
// *errs.ResolutionError.
type Resolver interface {
	Resolve(ctx context.Context, rawURL string) (*model.VideoMetadata, error)
}

// PlaylistExpander lists the videos of a playlist URL
type PlaylistExpander interface {
	List(ctx context.Context, rawURL string) ([]platform.PlaylistEntry, error)
}

// ErrUnsupportedURL is returned by a resolver that does not handle a host
var ErrUnsupportedURL = errors.New("unsupported URL")

// ValidateURL accepts absolute http(s) URLs with a host
func ValidateURL(rawURL string) error {
	u, err := url.Parse(strings.TrimSpace(rawURL))
	if err != nil {
		return errs.ErrInvalidURL
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return errs.ErrInvalidURL
	}
	if u.Host == "" {
		return errs.ErrInvalidURL
	}
	return nil
}

// ParseURLs splits multi-line input into trimmed, de-duplicated URLs in
// input order. Blank lines are skipped.
func ParseURLs(text string) ([]string, error) {
	seen := make(map[string]struct{})
	var urls []string
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if _, dup := seen[line]; dup {
			continue
		}
		seen[line] = struct{}{}
		urls = append(urls, line)
	}
	if len(urls) == 0 {
		return nil, errs.ErrNoURLs
	}
	return urls, nil
}

// Chain tries each resolver in order and returns the first success
type Chain []Resolver

// Resolve implements Resolver
func (c Chain) Resolve(ctx context.Context, rawURL string) (*model.VideoMetadata, error) {
	if err := ValidateURL(rawURL); err != nil {
		return nil, &errs.ResolutionError{URL: rawURL, Err: err}
	}

	var lastErr error = ErrUnsupportedURL
	for _, r := range c {
		meta, err := r.Resolve(ctx, rawURL)
		if err == nil {
			return meta, nil
		}
		if !errors.Is(err, ErrUnsupportedURL) {
			lastErr = err
		}
		if ctx.Err() != nil {
			break
		}
	}

	var resErr *errs.ResolutionError
	if errors.As(lastErr, &resErr) {
		return nil, resErr
	}
	return nil, &errs.ResolutionError{URL: rawURL, Err: lastErr}
}

// NewDefault returns the YouTube client followed by the generic yt-dlp
// extractor
func NewDefault() Chain {
	return Chain{NewYouTubeResolver(), NewYTDLPResolver()}
}

func resolutionError(rawURL string, format string, args ...any) error {
	return &errs.ResolutionError{URL: rawURL, Err: fmt.Errorf(format, args...)}
}
