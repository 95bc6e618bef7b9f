package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Environment variable names
const (
	EnvLogMode         = "LOG_MODE"
	EnvHistoryPath     = "HISTORY_PATH"
	EnvFFmpegLocation  = "FFMPEG_LOCATION"
	EnvResolveTimeout  = "RESOLVE_TIMEOUT"
	EnvResolveParallel = "RESOLVE_PARALLEL"
)

// Environment defaults
const (
	DefaultEnvFile         = ".env"
	DefaultLogMode         = "production"
	DefaultResolveTimeout  = 60 * time.Second
	DefaultResolveParallel = 4
	AppConfigDirName       = "yt-batch"
	DefaultHistoryFile     = "history.db"
)

// Env is the process configuration read from the environment
type Env struct {
	LogMode         string
	HistoryPath     string // "" keeps history in memory
	FFmpegLocation  string // "" means discover
	ResolveTimeout  time.Duration
	ResolveParallel int
}

// LoadEnv loads path into the environment (a missing file is fine) and reads
// the configuration from it. Variables already set in the process win.
func LoadEnv(path string) (*Env, error) {
	if path != "" {
		if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load configuration file: %w", err)
		}
	}

	env := &Env{
		LogMode:         getenv(EnvLogMode, DefaultLogMode),
		HistoryPath:     getenv(EnvHistoryPath, defaultHistoryPath()),
		FFmpegLocation:  strings.TrimSpace(os.Getenv(EnvFFmpegLocation)),
		ResolveTimeout:  DefaultResolveTimeout,
		ResolveParallel: DefaultResolveParallel,
	}

	if raw := strings.TrimSpace(os.Getenv(EnvResolveTimeout)); raw != "" {
		d, err := time.ParseDuration(raw)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("LoadEnv: invalid %s %q", EnvResolveTimeout, raw)
		}
		env.ResolveTimeout = d
	}

	if raw := strings.TrimSpace(os.Getenv(EnvResolveParallel)); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("LoadEnv: invalid %s %q", EnvResolveParallel, raw)
		}
		env.ResolveParallel = n
	}

	return env, nil
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// defaultHistoryPath places the history database in the user config dir
func defaultHistoryPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, AppConfigDirName, DefaultHistoryFile)
}
