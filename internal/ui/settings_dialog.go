package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/ytget/yt-batch/internal/catalog"
	"github.com/ytget/yt-batch/internal/config"
	"github.com/ytget/yt-batch/internal/logger"
	"github.com/ytget/yt-batch/internal/platform"
)

// SettingsDialog edits the persisted preferences. Changes apply to the next
// batch; a run in progress keeps the snapshot it was started with.
type SettingsDialog struct {
	settings   *config.Settings
	window     fyne.Window
	dialog     *dialog.ConfirmDialog
	ffmpegPath string
	onSaved    func()

	// UI components
	downloadDirEntry *widget.Entry
	speedLimitEntry  *widget.Entry
	qualitySelect    *widget.Select
	formatSelect     *widget.Select
	autoOpenCheck    *widget.Check
	darkThemeCheck   *widget.Check
	clipboardCheck   *widget.Check
}

// NewSettingsDialog creates a new settings dialog. ffmpegPath is shown as
// information only; empty means ffmpeg was not found.
func NewSettingsDialog(settings *config.Settings, window fyne.Window, ffmpegPath string, onSaved func()) *SettingsDialog {
	sd := &SettingsDialog{
		settings:   settings,
		window:     window,
		ffmpegPath: ffmpegPath,
		onSaved:    onSaved,
	}

	sd.createUI()
	return sd
}

// Show displays the settings dialog
func (sd *SettingsDialog) Show() {
	sd.loadCurrentSettings()
	sd.dialog.Show()
}

func (sd *SettingsDialog) createUI() {
	sd.downloadDirEntry = widget.NewEntry()
	sd.downloadDirEntry.SetPlaceHolder("Download directory path")

	browseDirBtn := widget.NewButton("Browse", sd.onBrowseDirectory)
	downloadDirRow := container.NewBorder(nil, nil, nil, browseDirBtn, sd.downloadDirEntry)

	sd.speedLimitEntry = widget.NewEntry()
	sd.speedLimitEntry.SetPlaceHolder("0 = unlimited")
	sd.speedLimitEntry.Validator = func(s string) error {
		_, err := parseSpeedLimit(s)
		return err
	}

	sd.qualitySelect = widget.NewSelect(catalog.QualityLabels(), nil)
	sd.formatSelect = widget.NewSelect(catalog.FormatLabels(), nil)

	sd.autoOpenCheck = widget.NewCheck("Open download folder when a batch finishes", nil)
	sd.darkThemeCheck = widget.NewCheck("Dark theme", nil)
	sd.clipboardCheck = widget.NewCheck("Auto-detect YouTube URLs from clipboard", nil)

	ffmpegStatus := "ffmpeg: " + sd.ffmpegPath
	if sd.ffmpegPath == "" {
		ffmpegStatus = "ffmpeg: not found (audio extraction and merging may fail)"
	}

	form := container.NewVBox(
		widget.NewLabel("Download Settings"),
		widget.NewSeparator(),

		widget.NewLabel("Download Directory:"),
		downloadDirRow,

		widget.NewLabel("Max speed (MB/s, 0 = unlimited):"),
		sd.speedLimitEntry,

		widget.NewLabel("Default Quality:"),
		sd.qualitySelect,

		widget.NewLabel("Default Format:"),
		sd.formatSelect,

		sd.autoOpenCheck,

		widget.NewSeparator(),
		widget.NewLabel("Interface Settings"),
		widget.NewSeparator(),

		sd.darkThemeCheck,
		sd.clipboardCheck,
		widget.NewLabel(ffmpegStatus),
	)

	sd.dialog = dialog.NewCustomConfirm(
		"Settings",
		"Save",
		"Cancel",
		form,
		sd.onSave,
		sd.window,
	)

	sd.dialog.Resize(fyne.NewSize(SettingsDialogWidth, SettingsDialogHeight))
}

func (sd *SettingsDialog) loadCurrentSettings() {
	sd.downloadDirEntry.SetText(sd.settings.GetDownloadDirectory())
	sd.speedLimitEntry.SetText(formatSpeedLimit(sd.settings.GetSpeedLimit()))
	sd.qualitySelect.SetSelected(sd.settings.GetDefaultQualityLabel())
	sd.formatSelect.SetSelected(sd.settings.GetDefaultFormatLabel())
	sd.autoOpenCheck.SetChecked(sd.settings.GetAutoOpenFolder())
	sd.darkThemeCheck.SetChecked(sd.settings.GetDarkTheme())
	sd.clipboardCheck.SetChecked(sd.settings.GetClipboardMonitoring())
}

func (sd *SettingsDialog) onBrowseDirectory() {
	dialog.ShowFolderOpen(func(uri fyne.ListableURI, err error) {
		if err != nil || uri == nil {
			return
		}
		sd.downloadDirEntry.SetText(uri.Path())
	}, sd.window)
}

func (sd *SettingsDialog) onSave(confirmed bool) {
	if !confirmed {
		return
	}
	if err := sd.apply(); err != nil {
		dialog.ShowError(err, sd.window)
		return
	}
	if sd.onSaved != nil {
		sd.onSaved()
	}
}

// apply validates the form and writes it to the settings
func (sd *SettingsDialog) apply() error {
	const funcName = "SettingsDialog.apply"

	speedLimit, err := parseSpeedLimit(sd.speedLimitEntry.Text)
	if err != nil {
		return err
	}

	if dir := sd.downloadDirEntry.Text; dir != "" {
		if err := platform.CreateDirectoryIfNotExists(dir); err != nil {
			return err
		}
		sd.settings.SetDownloadDirectory(dir)
	}

	sd.settings.SetSpeedLimit(speedLimit)

	if sd.qualitySelect.Selected != "" {
		sd.settings.SetDefaultQualityLabel(sd.qualitySelect.Selected)
	}
	if sd.formatSelect.Selected != "" {
		sd.settings.SetDefaultFormatLabel(sd.formatSelect.Selected)
	}

	sd.settings.SetAutoOpenFolder(sd.autoOpenCheck.Checked)
	sd.settings.SetDarkTheme(sd.darkThemeCheck.Checked)
	sd.settings.SetClipboardMonitoring(sd.clipboardCheck.Checked)

	logger.Info("settings saved",
		zap.String("function", funcName),
		zap.String("download_directory", sd.settings.GetDownloadDirectory()),
		zap.Int64("speed_limit", speedLimit),
		zap.Bool("clipboard_monitoring", sd.clipboardCheck.Checked),
	)
	return nil
}
