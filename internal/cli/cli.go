// Package cli implements the non-interactive mode:
//
//	yt-batch <url> [outputPath] [qualityLabel] [formatLabel]
package cli

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/dustin/go-humanize"
	"go.uber.org/zap"

	"github.com/ytget/yt-batch/internal/batch"
	"github.com/ytget/yt-batch/internal/catalog"
	"github.com/ytget/yt-batch/internal/download"
	"github.com/ytget/yt-batch/internal/logger"
	"github.com/ytget/yt-batch/internal/model"
	"github.com/ytget/yt-batch/internal/platform"
	"github.com/ytget/yt-batch/internal/resolver"
)

// Exit codes
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

const eventBuffer = 64

// Deps are the capabilities the CLI drives
type Deps struct {
	Resolver         resolver.Resolver
	Expander         resolver.PlaylistExpander // optional
	Fetcher          download.Fetcher
	History          batch.Recorder
	DefaultOutputDir string
	ResolveTimeout   time.Duration
	ResolveParallel  int
}

// IsHelp reports whether args ask for the usage text
func IsHelp(args []string) bool {
	return len(args) > 0 && (args[0] == "-h" || args[0] == "--help" || args[0] == "help")
}

// Usage writes the usage text including the preset labels
func Usage(w io.Writer, program string) {
	fmt.Fprintf(w, "Usage: %s <url> [output_path] [quality] [format]\n", program)
	fmt.Fprintf(w, "Example: %s https://www.youtube.com/watch?v=VIDEO_ID ~/Downloads \"720p HD\" \"MP4 Video\"\n", program)
	fmt.Fprintf(w, "Quality options: %s\n", strings.Join(catalog.QualityLabels(), ", "))
	fmt.Fprintf(w, "Format options: %s\n", strings.Join(catalog.FormatLabels(), ", "))
}

// Run executes one CLI invocation and returns the process exit code
func Run(ctx context.Context, program string, args []string, stdout io.Writer, deps Deps) int {
	const funcName = "cli.Run"

	out := &syncWriter{w: stdout}

	if len(args) == 0 || IsHelp(args) {
		Usage(out, program)
		if len(args) == 0 {
			return ExitUsage
		}
		return ExitOK
	}

	rawURL := args[0]
	outputDir := deps.DefaultOutputDir
	if len(args) > 1 && strings.TrimSpace(args[1]) != "" {
		outputDir = args[1]
	}
	quality := catalog.DefaultQuality
	if len(args) > 2 {
		quality = catalog.LabelToQuality(args[2])
	}
	format := catalog.DefaultFormat
	if len(args) > 3 {
		format = catalog.LabelToFormat(args[3])
	}

	if err := platform.CreateDirectoryIfNotExists(outputDir); err != nil {
		fmt.Fprintf(out, "Error: cannot use output path %s: %v\n", outputDir, err)
		return ExitFailure
	}

	fmt.Fprintf(out, "Fetching video information for: %s\n", rawURL)

	opts := []resolver.PassOption{
		resolver.WithTimeout(deps.ResolveTimeout),
		resolver.WithParallel(deps.ResolveParallel),
	}
	if deps.Expander != nil {
		opts = append(opts, resolver.WithPlaylistExpander(deps.Expander))
	}
	pass := resolver.ResolveAll(ctx, deps.Resolver, []string{rawURL}, opts...)
	for _, err := range pass.Failures {
		fmt.Fprintf(out, "Error: %v\n", err)
	}
	if len(pass.Resolved) == 0 {
		return ExitFailure
	}

	for _, meta := range pass.Resolved {
		fmt.Fprintf(out, "Title: %s\n", meta.Title)
		fmt.Fprintf(out, "Duration: %s\n", meta.GetDurationString())
		fmt.Fprintf(out, "Uploader: %s\n", meta.GetUploader())
	}

	fmt.Fprintf(out, "\nDownloading to: %s\n", outputDir)
	fmt.Fprintf(out, "Quality: %s\n", quality.Label())
	fmt.Fprintf(out, "Format: %s\n", format.Label())

	orch := batch.NewOrchestrator(deps.Fetcher, deps.History, batch.WithNotifier(consoleNotifier{w: out}))
	events, unsubscribe := orch.Subscribe(eventBuffer)
	defer unsubscribe()

	items := model.NewBatchItems(pass.Resolved, quality, format)
	run, err := orch.Start(ctx, items, model.Snapshot{
		DownloadDirectory:   outputDir,
		DefaultQualityLabel: quality.Label(),
		DefaultFormatLabel:  format.Label(),
	})
	if err != nil {
		fmt.Fprintf(out, "Error: %v\n", err)
		return ExitFailure
	}

	printEvents(out, events)

	res := run.Result()
	logger.Info("cli run finished",
		zap.String("function", funcName),
		zap.String("state", res.State.String()),
		zap.Int("completed", res.Completed),
		zap.Int("failed", res.Failed),
	)

	if res.State == model.RunStateCanceled || res.Failed > 0 || pass.FailureCount() > 0 {
		return ExitFailure
	}
	fmt.Fprintln(out, "Download completed successfully!")
	return ExitOK
}

// printEvents renders progress until the run finishes
func printEvents(out io.Writer, events <-chan batch.Event) {
	for ev := range events {
		switch ev.Type {
		case batch.EventItemStarted:
			if ev.Total > 1 {
				fmt.Fprintf(out, "\n[%d/%d] %s\n", ev.Index+1, ev.Total, ev.Item.Metadata.Title)
			}
		case batch.EventItemProgress:
			if !ev.ItemPercentKnown {
				continue
			}
			line := fmt.Sprintf("\rProgress: %.1f%%", ev.ItemPercent)
			if ev.SpeedBytesPerSec > 0 {
				line += fmt.Sprintf(" at %s/s", humanize.IBytes(uint64(ev.SpeedBytesPerSec)))
			}
			fmt.Fprint(out, line)
		case batch.EventRunFinished:
			return
		}
	}
}

// consoleNotifier prints item outcomes
type consoleNotifier struct {
	w io.Writer
}

func (n consoleNotifier) Notify(title, message string) {
	fmt.Fprintf(n.w, "\n%s: %s\n", title, message)
}

// syncWriter serializes writes from the worker and the event loop
type syncWriter struct {
	mu sync.Mutex
	w  io.Writer
}

func (s *syncWriter) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.w.Write(p)
}
