package platform

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func notFound(string) (string, error) { return "", errors.New("not found") }

func verifyOK(context.Context, string) error { return nil }

func writeBundledFFmpeg(t *testing.T, dir, name string) string {
	t.Helper()
	bundle := filepath.Join(dir, FFmpegBundleDir)
	require.NoError(t, os.MkdirAll(bundle, 0o755))
	path := filepath.Join(bundle, name)
	require.NoError(t, os.WriteFile(path, []byte("#!/bin/sh\n"), 0o755))
	return path
}

func TestLocateFFmpeg_Override(t *testing.T) {
	path := writeBundledFFmpeg(t, t.TempDir(), "ffmpeg")

	l := ffmpegLocator{goos: OSLinux, lookPath: notFound, verify: verifyOK}
	got, err := l.locate(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, got)

	_, err = l.locate(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.Error(t, err)
}

func TestLocateFFmpeg_PATH(t *testing.T) {
	l := ffmpegLocator{
		goos:     OSLinux,
		lookPath: func(string) (string, error) { return "/usr/bin/ffmpeg", nil },
		verify:   verifyOK,
	}
	got, err := l.locate(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "/usr/bin/ffmpeg", got)
}

func TestLocateFFmpeg_BrokenPATHFallsBackToBundle(t *testing.T) {
	dir := t.TempDir()
	bundled := writeBundledFFmpeg(t, dir, "ffmpeg")

	l := ffmpegLocator{
		goos:       OSLinux,
		lookPath:   func(string) (string, error) { return "/usr/bin/ffmpeg", nil },
		verify:     func(context.Context, string) error { return errors.New("exit status 1") },
		searchDirs: []string{dir},
	}
	got, err := l.locate(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, bundled, got)
}

func TestLocateFFmpeg_WindowsBundle(t *testing.T) {
	dir := t.TempDir()
	bundled := writeBundledFFmpeg(t, dir, "ffmpeg.exe")

	l := ffmpegLocator{goos: OSWindows, lookPath: notFound, verify: verifyOK, searchDirs: []string{t.TempDir(), dir}}
	got, err := l.locate(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, bundled, got)
}

func TestLocateFFmpeg_NotFound(t *testing.T) {
	l := ffmpegLocator{goos: OSLinux, lookPath: notFound, verify: verifyOK, searchDirs: []string{t.TempDir()}}
	_, err := l.locate(context.Background(), "")
	assert.ErrorIs(t, err, ErrFFmpegNotFound)
}
