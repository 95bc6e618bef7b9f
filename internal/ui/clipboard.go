package ui

import (
	"regexp"
	"strings"
	"time"

	"fyne.io/fyne/v2"
	"go.uber.org/zap"

	"github.com/ytget/yt-batch/internal/logger"
	"github.com/ytget/yt-batch/internal/resolver"
)

var clipboardURLPattern = regexp.MustCompile(`https?://(?:www\.)?youtube\.com/watch\?v=[\w-]+|https?://youtu\.be/[\w-]+`)

// clipboardURLs extracts YouTube video URLs from arbitrary clipboard text
func clipboardURLs(clip string) []string {
	var urls []string
	for _, u := range clipboardURLPattern.FindAllString(clip, -1) {
		if resolver.ValidateURL(u) == nil && resolver.IsYouTubeURL(u) {
			urls = append(urls, u)
		}
	}
	return urls
}

// mergeClipboardURLs prepends the clipboard URLs missing from the input
// text, one per line, and returns the new text with the URLs it added
func mergeClipboardURLs(current, clip string) (string, []string) {
	present := make(map[string]struct{})
	for _, line := range strings.Split(current, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			present[line] = struct{}{}
		}
	}

	var added []string
	for _, u := range clipboardURLs(clip) {
		if _, ok := present[u]; ok {
			continue
		}
		present[u] = struct{}{}
		added = append(added, u)
	}
	if len(added) == 0 {
		return current, nil
	}

	text := strings.Join(added, "\n") + "\n" + current
	return text, added
}

// startClipboardMonitor polls the clipboard until ctx is done
func (ui *RootUI) startClipboardMonitor() {
	ticker := time.NewTicker(ClipboardPollInterval)

	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ui.ctx.Done():
				return
			case <-ticker.C:
				fyne.Do(ui.checkClipboard)
			}
		}
	}()
}

// checkClipboard adds newly copied URLs to the input. Must run on the fyne
// thread.
func (ui *RootUI) checkClipboard() {
	const funcName = "RootUI.checkClipboard"

	if !ui.deps.Settings.GetClipboardMonitoring() || ui.urlEntry.Disabled() {
		return
	}

	clip := ui.app.Clipboard().Content()
	if clip == "" || clip == ui.lastClipboard {
		return
	}
	ui.lastClipboard = clip

	text, added := mergeClipboardURLs(ui.urlEntry.Text, clip)
	if len(added) == 0 {
		return
	}
	ui.urlEntry.SetText(text)

	for _, u := range added {
		ui.appendLog("URL detected from clipboard: " + u)
	}
	logger.Debug("clipboard URLs added",
		zap.String("function", funcName),
		zap.Strings("urls", added),
	)
}
