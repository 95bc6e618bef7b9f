package ui

import "time"

// UI-wide constants to avoid magic numbers/strings scattered across the codebase.

// Icons (emojis/symbols)
const (
	IconSettings = "⚙"
	IconPlay     = "▶"
	IconPause    = "⏸"
	IconStop     = "⏹"
	IconFolder   = "📁"
	IconError    = "❌"
	IconDone     = "✔"
	IconPending  = "•"
)

// Text fragments
const (
	MiddleDotSeparator  = " · "
	ProgressLabelFormat = "%.1f%%"
	TitleMaxRunes       = 60
	Ellipsis            = "..."
)

// Window and layout sizing
const (
	WindowWidth  float32 = 900
	WindowHeight float32 = 680

	URLEntryRows         = 4
	LogoSize     float32 = 32

	SettingsDialogWidth  float32 = 520
	SettingsDialogHeight float32 = 480

	ThumbnailWidth  float32 = 160
	ThumbnailHeight float32 = 90
)

// Limits
const (
	MaxLogLines       = 500
	HistoryViewLimit  = 50
	HistoryTimeLayout = "2006-01-02 15:04"
	BytesPerMegabyte  = 1024 * 1024
	EventBufferSize   = 64

	ClipboardPollInterval = 1500 * time.Millisecond
)
