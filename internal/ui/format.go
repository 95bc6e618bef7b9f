package ui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"

	"github.com/ytget/yt-batch/internal/batch"
	"github.com/ytget/yt-batch/internal/catalog"
	"github.com/ytget/yt-batch/internal/model"
)

// truncateTitle shortens long titles for single-line labels
func truncateTitle(title string) string {
	runes := []rune(title)
	if len(runes) <= TitleMaxRunes {
		return title
	}
	return string(runes[:TitleMaxRunes]) + Ellipsis
}

func statusIcon(s model.ItemStatus) string {
	switch s {
	case model.ItemStatusDownloading:
		return IconPlay
	case model.ItemStatusCompleted:
		return IconDone
	case model.ItemStatusFailed:
		return IconError
	default:
		return IconPending
	}
}

// videoLine renders one resolved video for the queue list
func videoLine(m model.VideoMetadata) string {
	parts := []string{truncateTitle(m.Title), m.GetDurationString(), m.GetUploader()}
	if m.ViewCount > 0 {
		parts = append(parts, humanize.Comma(m.ViewCount)+" views")
	}
	return strings.Join(parts, MiddleDotSeparator)
}

// progressText renders the status line for an item progress event
func progressText(ev batch.Event) string {
	text := fmt.Sprintf("Downloading %d/%d: %s", ev.Index+1, ev.Total, truncateTitle(ev.Item.Metadata.Title))
	if ev.ItemPercentKnown {
		text += MiddleDotSeparator + fmt.Sprintf(ProgressLabelFormat, ev.ItemPercent)
	}
	if ev.SpeedBytesPerSec > 0 {
		text += MiddleDotSeparator + humanize.IBytes(uint64(ev.SpeedBytesPerSec)) + "/s"
	}
	return text
}

// outcomeLine renders the log line for a terminal item event
func outcomeLine(ev batch.Event) string {
	switch ev.Type {
	case batch.EventItemCompleted:
		return "Downloaded: " + ev.Item.Metadata.Title
	case batch.EventItemFailed:
		return fmt.Sprintf("Failed: %s (%v)", ev.Item.Metadata.Title, ev.Err)
	default:
		return ""
	}
}

// runSummary renders the final status line of a run
func runSummary(res batch.Result) string {
	switch res.State {
	case model.RunStateCanceled:
		return fmt.Sprintf("Batch canceled: %d completed, %d failed, %d skipped", res.Completed, res.Failed, res.Skipped())
	default:
		return fmt.Sprintf("Batch download complete: %d completed, %d failed", res.Completed, res.Failed)
	}
}

// stateText describes a run after a pause, resume or cancel request
func stateText(s batch.RunSnapshot) string {
	switch {
	case s.CancelRequested:
		return "Canceling after the current item..."
	case s.State == model.RunStatePaused:
		return fmt.Sprintf("Paused: %d/%d done", s.Finished(), s.Total)
	case s.State == model.RunStateRunning:
		return fmt.Sprintf("Resumed: %d/%d done", s.Finished(), s.Total)
	default:
		return string(s.State)
	}
}

func historyLine(e model.HistoryEntry) string {
	return strings.Join([]string{
		e.Timestamp.Local().Format(HistoryTimeLayout),
		string(e.Status),
		truncateTitle(e.Title),
		e.Quality.Label() + " / " + e.Format.Label(),
	}, MiddleDotSeparator)
}

func statsText(s model.HistoryStats) string {
	return fmt.Sprintf("Total downloads: %d%sSuccessful: %d%sFailed: %d",
		s.Total, MiddleDotSeparator, s.Completed, MiddleDotSeparator, s.Failed)
}

// parseSpeedLimit converts a MB/s entry into bytes per second. Empty means
// unlimited.
func parseSpeedLimit(text string) (int64, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return 0, nil
	}
	mbps, err := strconv.ParseFloat(text, 64)
	if err != nil || mbps < 0 {
		return 0, fmt.Errorf("speed limit must be a non-negative number of MB/s: %q", text)
	}
	return int64(mbps * BytesPerMegabyte), nil
}

func formatSpeedLimit(bytesPerSec int64) string {
	if bytesPerSec <= 0 {
		return "0"
	}
	return strconv.FormatFloat(float64(bytesPerSec)/BytesPerMegabyte, 'f', -1, 64)
}

// controls is the enabled state of the batch buttons
type controls struct {
	fetch      bool
	start      bool
	pause      bool
	cancel     bool
	pauseLabel string
}

func controlsFor(s batch.RunSnapshot, resolving, haveVideos bool) controls {
	c := controls{pauseLabel: IconPause + " Pause"}

	if s.State.IsActive() {
		c.pause = !s.CancelRequested
		c.cancel = !s.CancelRequested
		if s.State == model.RunStatePaused {
			c.pauseLabel = IconPlay + " Resume"
		}
		return c
	}

	c.fetch = !resolving
	c.start = !resolving && haveVideos
	return c
}

// selectedPresets reads the preset pickers, falling back to the catalog
// defaults for unknown labels
func selectedPresets(qualityLabel, formatLabel string) (catalog.Quality, catalog.Format) {
	return catalog.LabelToQuality(qualityLabel), catalog.LabelToFormat(formatLabel)
}
