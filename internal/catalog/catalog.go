// Package catalog holds the fixed mapping between the preset labels shown to the
// user and the selections understood by the download toolchain.
package catalog

import (
	"fmt"
	"strings"
)

// Quality is the target video height preset
type Quality string

const (
	Quality2160p Quality = "2160p"
	Quality1440p Quality = "1440p"
	Quality1080p Quality = "1080p"
	Quality720p  Quality = "720p"
	Quality480p  Quality = "480p"
	Quality360p  Quality = "360p"
	QualityBest  Quality = "best"
)

// Format is the output container or audio codec preset
type Format string

const (
	FormatMP4  Format = "mp4"
	FormatMP3  Format = "mp3"
	FormatWebM Format = "webm"
	FormatM4A  Format = "m4a"
	FormatAAC  Format = "aac"
	FormatBest Format = "best"
)

// Defaults used for unrecognized labels
const (
	DefaultQuality = QualityBest
	DefaultFormat  = FormatMP4
)

// AudioQuality is the bitrate target (kbps) used for audio extraction
const AudioQuality = "192"

// Selector templates
const (
	heightSelectorTemplate     = "bestvideo[height<=%d][ext=mp4]+bestaudio[ext=m4a]/best[height<=%d]/best"
	webmHeightSelectorTemplate = "bestvideo[height<=%d][ext=webm]+bestaudio[ext=webm]/best[height<=%d][ext=webm]/best[height<=%d]"
	bestSelector               = "best"
	webmBestSelector           = "bestvideo[ext=webm]+bestaudio[ext=webm]/best[ext=webm]/best"
	audioSelector              = "bestaudio/best"
)

type qualityPreset struct {
	label   string
	quality Quality
	height  int
}

type formatPreset struct {
	label  string
	format Format
}

// Display order matches the preset pickers.
var qualityPresets = []qualityPreset{
	{"4K Ultra HD", Quality2160p, 2160},
	{"2K QHD", Quality1440p, 1440},
	{"1080p Full HD", Quality1080p, 1080},
	{"720p HD", Quality720p, 720},
	{"480p SD", Quality480p, 480},
	{"360p", Quality360p, 360},
	{"Best Quality", QualityBest, 0},
}

var formatPresets = []formatPreset{
	{"MP4 Video", FormatMP4},
	{"MP3 Audio", FormatMP3},
	{"WebM Video", FormatWebM},
	{"M4A Audio", FormatM4A},
	{"AAC Audio", FormatAAC},
	{"Best Format", FormatBest},
}

// LabelToQuality maps a preset label (or a raw value such as "720p") to a
// Quality. Unknown input yields DefaultQuality.
func LabelToQuality(label string) Quality {
	label = strings.TrimSpace(label)
	for _, p := range qualityPresets {
		if p.label == label || strings.EqualFold(string(p.quality), label) {
			return p.quality
		}
	}
	return DefaultQuality
}

// LabelToFormat maps a preset label (or a raw value such as "mp3") to a
// Format. Unknown input yields DefaultFormat.
func LabelToFormat(label string) Format {
	label = strings.TrimSpace(label)
	for _, p := range formatPresets {
		if p.label == label || strings.EqualFold(string(p.format), label) {
			return p.format
		}
	}
	return DefaultFormat
}

// QualityLabels returns the quality labels in display order
func QualityLabels() []string {
	labels := make([]string, 0, len(qualityPresets))
	for _, p := range qualityPresets {
		labels = append(labels, p.label)
	}
	return labels
}

// FormatLabels returns the format labels in display order
func FormatLabels() []string {
	labels := make([]string, 0, len(formatPresets))
	for _, p := range formatPresets {
		labels = append(labels, p.label)
	}
	return labels
}

// Label returns the display label of q
func (q Quality) Label() string {
	for _, p := range qualityPresets {
		if p.quality == q {
			return p.label
		}
	}
	return DefaultQuality.Label()
}

// Height returns the maximum video height for q, 0 for best
func (q Quality) Height() int {
	for _, p := range qualityPresets {
		if p.quality == q {
			return p.height
		}
	}
	return 0
}

// Selector returns the yt-dlp format selector for q: prefer video up to the
// preset height muxed with the best m4a audio, then the best single file up to
// that height, then the best overall.
func (q Quality) Selector() string {
	h := q.Height()
	if h == 0 {
		return bestSelector
	}
	return fmt.Sprintf(heightSelectorTemplate, h, h)
}

// Label returns the display label of f
func (f Format) Label() string {
	for _, p := range formatPresets {
		if p.format == f {
			return p.label
		}
	}
	return DefaultFormat.Label()
}

// IsAudio reports whether f requests audio extraction
func (f Format) IsAudio() bool {
	return f == FormatMP3 || f == FormatM4A || f == FormatAAC
}

// Container returns the merge container for video formats, "" when the
// toolchain should keep whatever container it picked.
func (f Format) Container() string {
	switch f {
	case FormatMP4, FormatWebM:
		return string(f)
	default:
		return ""
	}
}

// webmSelector picks VP8/VP9/AV1 video with Vorbis/Opus audio so the streams
// can be merged into a WebM container.
func (q Quality) webmSelector() string {
	h := q.Height()
	if h == 0 {
		return webmBestSelector
	}
	return fmt.Sprintf(webmHeightSelectorTemplate, h, h, h)
}

// Selector returns the yt-dlp format selector for the pair. Audio formats
// ignore the quality preset. WebM needs its own streams: h264/aac cannot be
// muxed into a WebM container.
func Selector(q Quality, f Format) string {
	switch {
	case f.IsAudio():
		return audioSelector
	case f == FormatWebM:
		return q.webmSelector()
	default:
		return q.Selector()
	}
}
