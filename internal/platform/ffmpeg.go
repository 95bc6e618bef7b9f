package platform

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"time"
)

// FFmpeg discovery constants
const (
	FFmpegCommand       = "ffmpeg"
	FFmpegVersionFlag   = "-version"
	FFmpegBundleDir     = "ffmpeg"
	WindowsExeSuffix    = ".exe"
	FFmpegVerifyTimeout = 5 * time.Second
)

// ErrFFmpegNotFound is returned when no usable ffmpeg binary was located
var ErrFFmpegNotFound = errors.New("ffmpeg not found")

// ffmpegLocator holds the OS hooks used during discovery
type ffmpegLocator struct {
	goos       string
	lookPath   func(string) (string, error)
	verify     func(ctx context.Context, path string) error
	searchDirs []string
}

// LocateFFmpeg finds an ffmpeg binary. An explicit override wins; otherwise
// PATH is tried, then an ffmpeg/ folder next to the executable or in the
// working directory.
func LocateFFmpeg(ctx context.Context, override string) (string, error) {
	var dirs []string
	if dir, err := ExecutableDir(); err == nil {
		dirs = append(dirs, dir)
	}
	if wd, err := os.Getwd(); err == nil {
		dirs = append(dirs, wd)
	}

	l := ffmpegLocator{
		goos:       runtime.GOOS,
		lookPath:   exec.LookPath,
		verify:     verifyFFmpeg,
		searchDirs: dirs,
	}
	return l.locate(ctx, override)
}

func (l ffmpegLocator) locate(ctx context.Context, override string) (string, error) {
	if override != "" {
		if _, err := os.Stat(override); err != nil {
			return "", fmt.Errorf("ffmpeg override %s: %w", override, err)
		}
		return override, nil
	}

	if path, err := l.lookPath(FFmpegCommand); err == nil {
		if err := l.verify(ctx, path); err == nil {
			return path, nil
		}
	}

	name := FFmpegCommand
	if l.goos == OSWindows {
		name += WindowsExeSuffix
	}
	for _, dir := range l.searchDirs {
		candidate := filepath.Join(dir, FFmpegBundleDir, name)
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			return candidate, nil
		}
	}

	return "", ErrFFmpegNotFound
}

// verifyFFmpeg runs "ffmpeg -version" to make sure the binary actually starts
func verifyFFmpeg(ctx context.Context, path string) error {
	ctx, cancel := context.WithTimeout(ctx, FFmpegVerifyTimeout)
	defer cancel()
	return exec.CommandContext(ctx, path, FFmpegVersionFlag).Run()
}
