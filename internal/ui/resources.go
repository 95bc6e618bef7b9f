package ui

import (
	"path/filepath"

	"fyne.io/fyne/v2"

	"github.com/ytget/yt-batch/internal/platform"
)

const (
	AppIcon = "yt-batch.png"
)

// LoadLogoResource loads the logo from the working directory, then from the
// directory of the executable
func LoadLogoResource() (fyne.Resource, error) {
	res, err := fyne.LoadResourceFromPath(AppIcon)
	if err == nil {
		return res, nil
	}

	dir, derr := platform.ExecutableDir()
	if derr != nil {
		return nil, err
	}
	return fyne.LoadResourceFromPath(filepath.Join(dir, AppIcon))
}
