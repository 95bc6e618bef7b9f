package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ytget/yt-batch/internal/resolver"
)

func TestClipboardURLs(t *testing.T) {
	tests := []struct {
		name string
		clip string
		want []string
	}{
		{
			name: "watch URL inside text",
			clip: "look at https://www.youtube.com/watch?v=abc_123-X now",
			want: []string{"https://www.youtube.com/watch?v=abc_123-X"},
		},
		{
			name: "short links",
			clip: "https://youtu.be/one\nhttps://youtu.be/two",
			want: []string{"https://youtu.be/one", "https://youtu.be/two"},
		},
		{
			name: "other hosts ignored",
			clip: "https://vimeo.com/123 https://example.com/watch?v=1",
		},
		{
			name: "plain text",
			clip: "hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, clipboardURLs(tt.clip))
		})
	}
}

func TestMergeClipboardURLs(t *testing.T) {
	current := "https://youtu.be/old\n"

	text, added := mergeClipboardURLs(current, "https://youtu.be/new https://youtu.be/old https://youtu.be/new")
	assert.Equal(t, []string{"https://youtu.be/new"}, added)
	assert.Equal(t, "https://youtu.be/new\nhttps://youtu.be/old\n", text)

	urls, err := resolver.ParseURLs(text)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://youtu.be/new", "https://youtu.be/old"}, urls)

	text, added = mergeClipboardURLs(current, "https://youtu.be/old")
	assert.Nil(t, added)
	assert.Equal(t, current, text)
}

func TestRootUI_CheckClipboard(t *testing.T) {
	ui := newTestRoot(t)

	ui.app.Clipboard().SetContent("https://www.youtube.com/watch?v=clip1")
	ui.checkClipboard()
	assert.Equal(t, "https://www.youtube.com/watch?v=clip1\n", ui.urlEntry.Text)
	require.NotEmpty(t, ui.logLines)
	assert.Contains(t, ui.logLines[len(ui.logLines)-1], "URL detected from clipboard: https://www.youtube.com/watch?v=clip1")

	// The same clipboard content is not added back after the user removes it
	ui.urlEntry.SetText("")
	ui.checkClipboard()
	assert.Empty(t, ui.urlEntry.Text)

	// Disabled monitoring leaves the input alone
	ui.deps.Settings.SetClipboardMonitoring(false)
	ui.app.Clipboard().SetContent("https://youtu.be/clip2")
	ui.checkClipboard()
	assert.Empty(t, ui.urlEntry.Text)

	// A disabled input (resolve or run in progress) is not touched
	ui.deps.Settings.SetClipboardMonitoring(true)
	ui.urlEntry.Disable()
	ui.checkClipboard()
	assert.Empty(t, ui.urlEntry.Text)

	ui.urlEntry.Enable()
	ui.checkClipboard()
	assert.Equal(t, "https://youtu.be/clip2\n", ui.urlEntry.Text)
}
