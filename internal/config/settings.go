package config

import (
	"path/filepath"
	"strings"

	"fyne.io/fyne/v2"

	"github.com/ytget/yt-batch/internal/catalog"
	"github.com/ytget/yt-batch/internal/model"
	"github.com/ytget/yt-batch/internal/platform"
)

// Settings keys for Fyne preferences
const (
	KeyDownloadDir    = "download_directory"
	KeySpeedLimit     = "speed_limit_bytes"
	KeyDefaultQuality = "default_quality_label"
	KeyDefaultFormat  = "default_format_label"
	KeyAutoOpenFolder = "auto_open_folder"
	KeyDarkTheme      = "dark_theme"
	KeyClipboard      = "clipboard_monitoring"
)

// Default values
const (
	DefaultSpeedLimit     = 0 // unlimited
	DefaultAutoOpenFolder = false
	DefaultDarkTheme      = true
	DefaultClipboard      = true
	FallbackDownloadsDir  = "downloads"
)

// Settings manages application configuration
type Settings struct {
	app fyne.App
}

// NewSettings creates a new settings manager
func NewSettings(app fyne.App) *Settings {
	return &Settings{app: app}
}

// GetDownloadDirectory returns the configured download directory
func (s *Settings) GetDownloadDirectory() string {
	dir := s.app.Preferences().String(KeyDownloadDir)
	if dir == "" {
		// Use system default Downloads directory
		defaultDir, err := platform.GetHomeDownloadsDir()
		if err != nil {
			defaultDir = filepath.Join(".", FallbackDownloadsDir)
		}
		s.SetDownloadDirectory(defaultDir)
		return defaultDir
	}
	return dir
}

// SetDownloadDirectory sets the download directory
func (s *Settings) SetDownloadDirectory(dir string) {
	s.app.Preferences().SetString(KeyDownloadDir, strings.TrimSpace(dir))
}

// GetSpeedLimit returns the download speed limit in bytes per second, 0 for unlimited
func (s *Settings) GetSpeedLimit() int64 {
	value := s.app.Preferences().IntWithFallback(KeySpeedLimit, DefaultSpeedLimit)
	if value < 0 {
		return 0
	}
	return int64(value)
}

// SetSpeedLimit sets the download speed limit; negative values mean unlimited
func (s *Settings) SetSpeedLimit(bytesPerSec int64) {
	if bytesPerSec < 0 {
		bytesPerSec = 0
	}
	s.app.Preferences().SetInt(KeySpeedLimit, int(bytesPerSec))
}

// GetDefaultQualityLabel returns the preselected quality label
func (s *Settings) GetDefaultQualityLabel() string {
	label := s.app.Preferences().String(KeyDefaultQuality)
	if label == "" {
		return catalog.DefaultQuality.Label()
	}
	// Normalize labels saved by older versions or edited by hand
	return catalog.LabelToQuality(label).Label()
}

// SetDefaultQualityLabel sets the preselected quality label
func (s *Settings) SetDefaultQualityLabel(label string) {
	s.app.Preferences().SetString(KeyDefaultQuality, catalog.LabelToQuality(label).Label())
}

// GetDefaultFormatLabel returns the preselected format label
func (s *Settings) GetDefaultFormatLabel() string {
	label := s.app.Preferences().String(KeyDefaultFormat)
	if label == "" {
		return catalog.DefaultFormat.Label()
	}
	return catalog.LabelToFormat(label).Label()
}

// SetDefaultFormatLabel sets the preselected format label
func (s *Settings) SetDefaultFormatLabel(label string) {
	s.app.Preferences().SetString(KeyDefaultFormat, catalog.LabelToFormat(label).Label())
}

// GetAutoOpenFolder returns whether to open the download folder after a batch
func (s *Settings) GetAutoOpenFolder() bool {
	return s.app.Preferences().BoolWithFallback(KeyAutoOpenFolder, DefaultAutoOpenFolder)
}

// SetAutoOpenFolder sets whether to open the download folder after a batch
func (s *Settings) SetAutoOpenFolder(open bool) {
	s.app.Preferences().SetBool(KeyAutoOpenFolder, open)
}

// GetDarkTheme returns whether the dark variant of the theme is used
func (s *Settings) GetDarkTheme() bool {
	return s.app.Preferences().BoolWithFallback(KeyDarkTheme, DefaultDarkTheme)
}

// SetDarkTheme selects the dark or light theme variant
func (s *Settings) SetDarkTheme(dark bool) {
	s.app.Preferences().SetBool(KeyDarkTheme, dark)
}

// GetClipboardMonitoring returns whether URLs copied to the clipboard are
// added to the URL input
func (s *Settings) GetClipboardMonitoring() bool {
	return s.app.Preferences().BoolWithFallback(KeyClipboard, DefaultClipboard)
}

// SetClipboardMonitoring enables or disables clipboard URL detection
func (s *Settings) SetClipboardMonitoring(enabled bool) {
	s.app.Preferences().SetBool(KeyClipboard, enabled)
}

// Snapshot captures the settings a batch run is started with
func (s *Settings) Snapshot() model.Snapshot {
	return model.Snapshot{
		DownloadDirectory:     s.GetDownloadDirectory(),
		SpeedLimitBytesPerSec: s.GetSpeedLimit(),
		DefaultQualityLabel:   s.GetDefaultQualityLabel(),
		DefaultFormatLabel:    s.GetDefaultFormatLabel(),
	}
}
