package model

// Snapshot is the settings view a batch run is started with. Later edits to
// the settings do not affect a run already in progress.
type Snapshot struct {
	DownloadDirectory     string
	SpeedLimitBytesPerSec int64 // 0 = unlimited
	DefaultQualityLabel   string
	DefaultFormatLabel    string
}
