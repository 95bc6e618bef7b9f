package model

// Progress is one incremental update from the download capability
type Progress struct {
	DownloadedBytes  int64
	TotalBytes       int64   // 0 if unknown
	SpeedBytesPerSec float64 // 0 if unknown
	Finished         bool    // the toolchain reported the file as finished
}

// Percent returns the item percent and whether it is known. A finished signal
// always reports 100.
func (p Progress) Percent() (float64, bool) {
	if p.Finished {
		return 100, true
	}
	if p.TotalBytes <= 0 {
		return 0, false
	}
	percent := float64(p.DownloadedBytes) / float64(p.TotalBytes) * 100
	if percent > 100 {
		percent = 100
	}
	if percent < 0 {
		percent = 0
	}
	return percent, true
}
