package ui

import (
	"context"
	"fmt"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/ytget/yt-batch/internal/batch"
	"github.com/ytget/yt-batch/internal/catalog"
	"github.com/ytget/yt-batch/internal/config"
	"github.com/ytget/yt-batch/internal/history"
	"github.com/ytget/yt-batch/internal/logger"
	"github.com/ytget/yt-batch/internal/model"
	"github.com/ytget/yt-batch/internal/platform"
	"github.com/ytget/yt-batch/internal/resolver"
)

// Deps are the services the main window drives
type Deps struct {
	Settings        *config.Settings
	Resolver        resolver.Resolver
	Expander        resolver.PlaylistExpander
	Orchestrator    *batch.Orchestrator
	History         *history.Store
	FFmpegPath      string
	ResolveTimeout  time.Duration
	ResolveParallel int
}

// RootUI represents the main UI structure. Fields below the widgets are
// touched on the fyne thread only.
type RootUI struct {
	ctx    context.Context
	app    fyne.App
	window fyne.Window
	deps   Deps

	urlEntry      *widget.Entry
	fetchBtn      *widget.Button
	qualitySelect *widget.Select
	formatSelect  *widget.Select
	startBtn      *widget.Button
	pauseBtn      *widget.Button
	cancelBtn     *widget.Button
	progressBar   *widget.ProgressBar
	statusLabel   *widget.Label
	videoList     *widget.List
	logList       *widget.List
	historyView   *HistoryView
	thumbnailBox  *fyne.Container
	detailLabel   *widget.Label
	previewBtn    *widget.Button

	videos    []model.VideoMetadata
	statuses  []model.ItemStatus
	logLines  []string
	resolving bool
	run       *batch.Run
	runDir    string
	selected  int

	// last clipboard content seen, so a URL the user removed is not re-added
	lastClipboard string
}

// NewRootUI creates and initializes the main UI. Orchestrator events are
// consumed until ctx is done.
func NewRootUI(ctx context.Context, app fyne.App, window fyne.Window, deps Deps) *RootUI {
	ui := &RootUI{
		ctx:      ctx,
		app:      app,
		window:   window,
		deps:     deps,
		selected: -1,
	}

	ui.applyTheme()
	ui.setupUI()
	ui.consumeEvents()
	ui.startClipboardMonitor()

	logger.Info("main window ready",
		zap.String("function", "NewRootUI"),
		zap.String("download_directory", deps.Settings.GetDownloadDirectory()),
		zap.Bool("ffmpeg_found", deps.FFmpegPath != ""),
	)
	return ui
}

// setupUI creates and arranges all UI components
func (ui *RootUI) setupUI() {
	ui.createMenu()

	ui.urlEntry = widget.NewMultiLineEntry()
	ui.urlEntry.SetPlaceHolder("Paste one or more video or playlist URLs, one per line")
	ui.urlEntry.SetMinRowsVisible(URLEntryRows)

	ui.fetchBtn = widget.NewButton("Fetch Info", ui.onFetchClick)
	ui.fetchBtn.Importance = widget.HighImportance

	settingsBtn := widget.NewButton(IconSettings, ui.onShowSettings)
	settingsBtn.Importance = widget.LowImportance

	left := container.NewHBox(settingsBtn)
	if logo, err := LoadLogoResource(); err == nil {
		img := canvas.NewImageFromResource(logo)
		img.SetMinSize(fyne.NewSize(LogoSize, LogoSize))
		img.FillMode = canvas.ImageFillContain
		left = container.NewHBox(img, settingsBtn)
	}
	urlPanel := container.NewBorder(nil, nil, left, ui.fetchBtn, ui.urlEntry)

	ui.qualitySelect = widget.NewSelect(catalog.QualityLabels(), nil)
	ui.formatSelect = widget.NewSelect(catalog.FormatLabels(), nil)
	ui.syncPresetDefaults()

	presets := container.NewHBox(
		widget.NewLabel("Quality:"), ui.qualitySelect,
		widget.NewLabel("Format:"), ui.formatSelect,
	)

	ui.startBtn = widget.NewButton(IconPlay+" Download All", ui.onStartClick)
	ui.startBtn.Importance = widget.HighImportance
	ui.pauseBtn = widget.NewButton(IconPause+" Pause", ui.onPauseResumeClick)
	ui.cancelBtn = widget.NewButton(IconStop+" Cancel", ui.onCancelClick)
	ui.cancelBtn.Importance = widget.DangerImportance
	openBtn := widget.NewButton(IconFolder+" Open Folder", ui.onOpenFolder)

	buttons := container.NewHBox(ui.startBtn, ui.pauseBtn, ui.cancelBtn, openBtn)

	ui.progressBar = widget.NewProgressBar()
	ui.statusLabel = widget.NewLabel("Ready")
	ui.statusLabel.Truncation = fyne.TextTruncateEllipsis

	top := container.NewVBox(urlPanel, presets, buttons, ui.progressBar, ui.statusLabel)

	ui.videoList = widget.NewList(
		func() int { return len(ui.videos) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(ui.videos) {
				return
			}
			obj.(*widget.Label).SetText(statusIcon(ui.statuses[id]) + " " + videoLine(ui.videos[id]))
		},
	)
	ui.videoList.OnSelected = ui.onVideoSelected
	videosPanel := container.NewBorder(nil, nil, nil, ui.createDetails(), ui.videoList)

	ui.logList = widget.NewList(
		func() int { return len(ui.logLines) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(ui.logLines) {
				return
			}
			obj.(*widget.Label).SetText(ui.logLines[id])
		},
	)

	split := container.NewVSplit(
		widget.NewCard("", "Videos", videosPanel),
		widget.NewCard("", "Log", ui.logList),
	)
	split.SetOffset(0.6)

	downloadTab := container.NewBorder(top, nil, nil, nil, split)

	ui.historyView = NewHistoryView(ui.deps.History, ui.window)

	tabs := container.NewAppTabs(
		container.NewTabItem("Download", downloadTab),
		container.NewTabItem("History", ui.historyView.Content()),
	)
	tabs.OnSelected = func(tab *container.TabItem) {
		if tab.Text == "History" {
			ui.historyView.Refresh()
		}
	}

	ui.window.SetContent(tabs)
	ui.updateControls()

	if ui.deps.FFmpegPath == "" {
		ui.appendLog("ffmpeg not found: audio extraction and format merging may fail")
	}
}

// createMenu creates the application menu
func (ui *RootUI) createMenu() {
	settingsItem := fyne.NewMenuItem("Settings", ui.onShowSettings)
	openItem := fyne.NewMenuItem("Open Download Folder", ui.onOpenFolder)

	ui.window.SetMainMenu(fyne.NewMainMenu(
		fyne.NewMenu("File", settingsItem, openItem),
	))
}

// consumeEvents marshals orchestrator events onto the fyne thread
func (ui *RootUI) consumeEvents() {
	events, unsubscribe := ui.deps.Orchestrator.Subscribe(EventBufferSize)

	go func() {
		defer unsubscribe()
		for {
			select {
			case <-ui.ctx.Done():
				return
			case ev := <-events:
				fyne.Do(func() {
					ui.applyEvent(ev)
				})
			}
		}
	}()
}

// applyEvent renders one orchestrator event. Must run on the fyne thread.
func (ui *RootUI) applyEvent(ev batch.Event) {
	if ui.run == nil || ev.RunID != ui.run.ID() {
		return
	}

	switch ev.Type {
	case batch.EventRunStarted:
		ui.progressBar.SetValue(0)
		ui.statusLabel.SetText("Starting batch download...")
		ui.appendLog(fmt.Sprintf("Batch started: %d video(s)", ev.Total))

	case batch.EventItemStarted:
		ui.setStatus(ev.Index, model.ItemStatusDownloading)
		ui.statusLabel.SetText(progressText(ev))

	case batch.EventItemProgress:
		ui.progressBar.SetValue(ev.Aggregate / 100)
		ui.statusLabel.SetText(progressText(ev))

	case batch.EventItemCompleted, batch.EventItemFailed:
		status := model.ItemStatusCompleted
		if ev.Type == batch.EventItemFailed {
			status = model.ItemStatusFailed
		}
		ui.setStatus(ev.Index, status)
		ui.progressBar.SetValue(ev.Aggregate / 100)
		ui.statusLabel.SetText(fmt.Sprintf("Completed %d/%d", ev.Index+1, ev.Total))
		ui.appendLog(outcomeLine(ev))
		ui.historyView.Refresh()

	case batch.EventStateChanged:
		text := stateText(ui.deps.Orchestrator.Snapshot())
		ui.statusLabel.SetText(text)
		ui.appendLog(text)

	case batch.EventRunFinished:
		res := ui.run.Result()
		ui.progressBar.SetValue(ev.Aggregate / 100)
		ui.statusLabel.SetText(runSummary(res))
		ui.appendLog(runSummary(res))
		ui.historyView.Refresh()

		if res.Completed > 0 && ui.deps.Settings.GetAutoOpenFolder() {
			ui.openFolder(ui.runDir)
		}
	}

	ui.updateControls()
}

func (ui *RootUI) setStatus(index int, status model.ItemStatus) {
	if index < 0 || index >= len(ui.statuses) {
		return
	}
	ui.statuses[index] = status
	ui.videoList.RefreshItem(index)
}

// updateControls enables the buttons allowed in the current state
func (ui *RootUI) updateControls() {
	c := controlsFor(ui.deps.Orchestrator.Snapshot(), ui.resolving, len(ui.videos) > 0)

	setEnabled(ui.fetchBtn, c.fetch)
	setEnabled(ui.startBtn, c.start)
	setEnabled(ui.pauseBtn, c.pause)
	setEnabled(ui.cancelBtn, c.cancel)
	ui.pauseBtn.SetText(c.pauseLabel)

	if c.fetch {
		ui.urlEntry.Enable()
	} else {
		ui.urlEntry.Disable()
	}
}

func setEnabled(btn *widget.Button, enabled bool) {
	if enabled {
		btn.Enable()
	} else {
		btn.Disable()
	}
}

// appendLog adds a timestamped line to the log panel
func (ui *RootUI) appendLog(message string) {
	if message == "" {
		return
	}
	line := fmt.Sprintf("[%s] %s", time.Now().Format(time.TimeOnly), message)
	ui.logLines = append(ui.logLines, line)
	if over := len(ui.logLines) - MaxLogLines; over > 0 {
		ui.logLines = ui.logLines[over:]
	}
	ui.logList.Refresh()
	ui.logList.ScrollToBottom()
}

// onFetchClick resolves the pasted URLs on a background goroutine
func (ui *RootUI) onFetchClick() {
	urls, err := resolver.ParseURLs(ui.urlEntry.Text)
	if err != nil {
		dialog.ShowError(fmt.Errorf("please enter at least one URL: %w", err), ui.window)
		return
	}

	ui.resolving = true
	ui.updateControls()
	ui.statusLabel.SetText(fmt.Sprintf("Fetching video information for %d URL(s)...", len(urls)))
	ui.appendLog(fmt.Sprintf("Fetching video information for %d URL(s)...", len(urls)))

	opts := []resolver.PassOption{
		resolver.WithTimeout(ui.deps.ResolveTimeout),
		resolver.WithParallel(ui.deps.ResolveParallel),
	}
	if ui.deps.Expander != nil {
		opts = append(opts, resolver.WithPlaylistExpander(ui.deps.Expander))
	}

	go func() {
		pass := resolver.ResolveAll(ui.ctx, ui.deps.Resolver, urls, opts...)
		fyne.Do(func() {
			ui.onResolved(pass)
		})
	}()
}

func (ui *RootUI) onResolved(pass resolver.Pass) {
	ui.resolving = false

	ui.videos = pass.Resolved
	ui.statuses = make([]model.ItemStatus, len(pass.Resolved))
	for i := range ui.statuses {
		ui.statuses[i] = model.ItemStatusPending
	}
	ui.videoList.Refresh()
	ui.videoList.UnselectAll()
	if len(ui.videos) > 0 {
		ui.videoList.Select(0)
	} else {
		ui.clearDetails()
	}

	for _, err := range pass.Failures {
		ui.appendLog("Error: " + err.Error())
	}

	if len(ui.videos) == 0 {
		ui.statusLabel.SetText("No valid videos found.")
		ui.appendLog("No valid videos found.")
	} else {
		msg := fmt.Sprintf("Ready to download %d video(s). Errors: %d", len(ui.videos), pass.FailureCount())
		ui.statusLabel.SetText(msg)
		ui.appendLog(msg)
	}

	ui.updateControls()
}

// onStartClick starts a batch over the resolved videos with the selected presets
func (ui *RootUI) onStartClick() {
	const funcName = "RootUI.onStartClick"

	if len(ui.videos) == 0 {
		dialog.ShowError(fmt.Errorf("please fetch video information first"), ui.window)
		return
	}

	snapshot := ui.deps.Settings.Snapshot()
	if err := platform.CreateDirectoryIfNotExists(snapshot.DownloadDirectory); err != nil {
		dialog.ShowError(err, ui.window)
		return
	}

	quality, format := selectedPresets(ui.qualitySelect.Selected, ui.formatSelect.Selected)
	items := model.NewBatchItems(ui.videos, quality, format)

	for i := range ui.statuses {
		ui.statuses[i] = model.ItemStatusPending
	}
	ui.videoList.Refresh()

	run, err := ui.deps.Orchestrator.Start(ui.ctx, items, snapshot)
	if err != nil {
		logger.Warn("batch start failed", zap.String("function", funcName), zap.Error(err))
		dialog.ShowError(err, ui.window)
		return
	}

	ui.run = run
	ui.runDir = snapshot.DownloadDirectory
	ui.updateControls()
}

func (ui *RootUI) onPauseResumeClick() {
	if ui.deps.Orchestrator.Snapshot().State == model.RunStatePaused {
		ui.deps.Orchestrator.Resume()
	} else {
		ui.deps.Orchestrator.Pause()
	}
	ui.updateControls()
}

func (ui *RootUI) onCancelClick() {
	ui.deps.Orchestrator.Cancel()
	ui.updateControls()
}

func (ui *RootUI) onOpenFolder() {
	ui.openFolder(ui.deps.Settings.GetDownloadDirectory())
}

func (ui *RootUI) openFolder(dir string) {
	if err := platform.OpenFolder(dir); err != nil {
		logger.Warn("failed to open folder",
			zap.String("function", "RootUI.openFolder"),
			zap.String("dir", dir),
			zap.Error(err),
		)
		dialog.ShowError(err, ui.window)
	}
}

// onShowSettings shows the settings dialog
func (ui *RootUI) onShowSettings() {
	NewSettingsDialog(ui.deps.Settings, ui.window, ui.deps.FFmpegPath, func() {
		ui.applyTheme()
		ui.syncPresetDefaults()
		ui.appendLog("Settings saved")
	}).Show()
}

func (ui *RootUI) applyTheme() {
	ui.app.Settings().SetTheme(NewCompactTheme(ui.deps.Settings.GetDarkTheme()))
}

// syncPresetDefaults preselects the pickers from the saved defaults
func (ui *RootUI) syncPresetDefaults() {
	ui.qualitySelect.SetSelected(ui.deps.Settings.GetDefaultQualityLabel())
	ui.formatSelect.SetSelected(ui.deps.Settings.GetDefaultFormatLabel())
}
