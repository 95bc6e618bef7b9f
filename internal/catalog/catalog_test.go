package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLabelToQuality(t *testing.T) {
	tests := []struct {
		label    string
		expected Quality
	}{
		{"4K Ultra HD", Quality2160p},
		{"2K QHD", Quality1440p},
		{"1080p Full HD", Quality1080p},
		{"720p HD", Quality720p},
		{"480p SD", Quality480p},
		{"360p", Quality360p},
		{"Best Quality", QualityBest},
		{"720p", Quality720p},
		{" 1080P ", Quality1080p},
		{"", QualityBest},
		{"8K", QualityBest},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.expected, LabelToQuality(tt.label))
		})
	}
}

func TestLabelToFormat(t *testing.T) {
	tests := []struct {
		label    string
		expected Format
	}{
		{"MP4 Video", FormatMP4},
		{"MP3 Audio", FormatMP3},
		{"WebM Video", FormatWebM},
		{"M4A Audio", FormatM4A},
		{"AAC Audio", FormatAAC},
		{"Best Format", FormatBest},
		{"mp3", FormatMP3},
		{"FLAC Audio", FormatMP4},
		{"", FormatMP4},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			assert.Equal(t, tt.expected, LabelToFormat(tt.label))
		})
	}
}

func TestLabelMappingIsPure(t *testing.T) {
	for _, label := range append(QualityLabels(), "unknown") {
		first := LabelToQuality(label)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, LabelToQuality(label))
		}
	}
	for _, label := range append(FormatLabels(), "unknown") {
		first := LabelToFormat(label)
		for i := 0; i < 5; i++ {
			assert.Equal(t, first, LabelToFormat(label))
		}
	}
}

func TestLabelsRoundTrip(t *testing.T) {
	seenQ := map[Quality]bool{}
	for _, label := range QualityLabels() {
		q := LabelToQuality(label)
		assert.False(t, seenQ[q], "label %q maps to an already used quality", label)
		seenQ[q] = true
		assert.Equal(t, label, q.Label())
	}

	seenF := map[Format]bool{}
	for _, label := range FormatLabels() {
		f := LabelToFormat(label)
		assert.False(t, seenF[f], "label %q maps to an already used format", label)
		seenF[f] = true
		assert.Equal(t, label, f.Label())
	}
}

func TestQualitySelector(t *testing.T) {
	assert.Equal(t,
		"bestvideo[height<=1080][ext=mp4]+bestaudio[ext=m4a]/best[height<=1080]/best",
		Quality1080p.Selector())
	assert.Equal(t,
		"bestvideo[height<=360][ext=mp4]+bestaudio[ext=m4a]/best[height<=360]/best",
		Quality360p.Selector())
	assert.Equal(t, "best", QualityBest.Selector())
	assert.Equal(t, "best", Quality("unknown").Selector())
}

func TestSelector(t *testing.T) {
	assert.Equal(t, "bestaudio/best", Selector(Quality2160p, FormatMP3))
	assert.Equal(t, "bestaudio/best", Selector(QualityBest, FormatAAC))
	assert.Equal(t, Quality720p.Selector(), Selector(Quality720p, FormatMP4))
	assert.Equal(t, Quality720p.Selector(), Selector(Quality720p, FormatBest))
}

func TestSelectorWebM(t *testing.T) {
	tests := []struct {
		quality Quality
		want    string
	}{
		{Quality1080p, "bestvideo[height<=1080][ext=webm]+bestaudio[ext=webm]/best[height<=1080][ext=webm]/best[height<=1080]"},
		{Quality360p, "bestvideo[height<=360][ext=webm]+bestaudio[ext=webm]/best[height<=360][ext=webm]/best[height<=360]"},
		{QualityBest, "bestvideo[ext=webm]+bestaudio[ext=webm]/best[ext=webm]/best"},
	}

	for _, tt := range tests {
		t.Run(string(tt.quality), func(t *testing.T) {
			got := Selector(tt.quality, FormatWebM)
			assert.Equal(t, tt.want, got)
			// Never pairs mp4/m4a streams with a WebM merge
			assert.NotContains(t, got, "ext=mp4")
			assert.NotContains(t, got, "ext=m4a")
		})
	}
}

func TestFormatProperties(t *testing.T) {
	tests := []struct {
		format    Format
		audio     bool
		container string
	}{
		{FormatMP4, false, "mp4"},
		{FormatWebM, false, "webm"},
		{FormatBest, false, ""},
		{FormatMP3, true, ""},
		{FormatM4A, true, ""},
		{FormatAAC, true, ""},
	}

	for _, tt := range tests {
		t.Run(string(tt.format), func(t *testing.T) {
			assert.Equal(t, tt.audio, tt.format.IsAudio())
			assert.Equal(t, tt.container, tt.format.Container())
		})
	}
}
