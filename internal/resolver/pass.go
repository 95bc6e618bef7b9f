package resolver

import (
	"context"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/ytget/yt-batch/internal/errs"
	"github.com/ytget/yt-batch/internal/logger"
	"github.com/ytget/yt-batch/internal/model"
	"github.com/ytget/yt-batch/internal/platform"
)

// Pass defaults
const (
	DefaultParallel = 4
	DefaultTimeout  = 60 * time.Second
)

// Pass is the outcome of resolving a list of URLs
type Pass struct {
	Resolved []model.VideoMetadata // input order
	Failures []error               // *errs.ResolutionError each
}

// FailureCount returns how many URLs could not be resolved
func (p Pass) FailureCount() int {
	return len(p.Failures)
}

type passConfig struct {
	parallel int
	timeout  time.Duration
	expander PlaylistExpander
}

// PassOption configures ResolveAll
type PassOption func(*passConfig)

// WithParallel bounds how many URLs are resolved at once
func WithParallel(n int) PassOption {
	return func(c *passConfig) {
		if n > 0 {
			c.parallel = n
		}
	}
}

// WithTimeout bounds each single resolution
func WithTimeout(d time.Duration) PassOption {
	return func(c *passConfig) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithPlaylistExpander expands playlist URLs into their videos first
func WithPlaylistExpander(e PlaylistExpander) PassOption {
	return func(c *passConfig) {
		c.expander = e
	}
}

// ResolveAll resolves every URL independently. One URL failing never stops
// the others; failures are collected in the returned Pass.
func ResolveAll(ctx context.Context, r Resolver, urls []string, opts ...PassOption) Pass {
	const funcName = "ResolveAll"

	cfg := passConfig{parallel: DefaultParallel, timeout: DefaultTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	var pass Pass
	targets := expand(ctx, cfg.expander, urls, &pass)

	type outcome struct {
		meta *model.VideoMetadata
		err  error
	}
	outcomes := make([]outcome, len(targets))

	var g errgroup.Group
	g.SetLimit(cfg.parallel)
	for i, target := range targets {
		g.Go(func() error {
			rctx, cancel := context.WithTimeout(ctx, cfg.timeout)
			defer cancel()

			meta, err := r.Resolve(rctx, target)
			if err == nil && meta == nil {
				err = &errs.ResolutionError{URL: target, Err: ErrUnsupportedURL}
			}
			outcomes[i] = outcome{meta: meta, err: err}
			return nil
		})
	}
	_ = g.Wait()

	for i, o := range outcomes {
		if o.err != nil {
			logger.Warn("failed to resolve URL",
				zap.String("function", funcName),
				zap.String("url", targets[i]),
				zap.Error(o.err),
			)
			pass.Failures = append(pass.Failures, o.err)
			continue
		}
		pass.Resolved = append(pass.Resolved, *o.meta)
	}

	logger.Info("resolution pass finished",
		zap.String("function", funcName),
		zap.Int("resolved", len(pass.Resolved)),
		zap.Int("failed", pass.FailureCount()),
	)
	return pass
}

// expand replaces playlist URLs by their video URLs. A playlist that cannot
// be listed counts as one failure.
func expand(ctx context.Context, e PlaylistExpander, urls []string, pass *Pass) []string {
	const funcName = "expand"

	if e == nil {
		return urls
	}

	targets := make([]string, 0, len(urls))
	for _, u := range urls {
		if !platform.IsPlaylistURL(u) {
			targets = append(targets, u)
			continue
		}

		entries, err := e.List(ctx, u)
		if err != nil {
			pass.Failures = append(pass.Failures, &errs.ResolutionError{URL: u, Err: err})
			continue
		}

		logger.Debug("expanded playlist",
			zap.String("function", funcName),
			zap.String("url", u),
			zap.Int("videos", len(entries)),
		)
		for _, entry := range entries {
			targets = append(targets, entry.URL)
		}
	}
	return targets
}
