// Package download implements the download capability on top of yt-dlp
// (via github.com/lrstanley/go-ytdlp). It translates catalog selections into
// toolchain flags, converts the toolchain's progress callbacks into
// model.Progress updates and retries transient failures once.
package download
