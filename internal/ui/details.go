package ui

import (
	"fmt"
	"net/url"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/storage"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/ytget/yt-batch/internal/logger"
)

// thumbnailURI parses an http(s) thumbnail address; anything else yields nil
func thumbnailURI(raw string) fyne.URI {
	if raw == "" {
		return nil
	}
	uri, err := storage.ParseURI(raw)
	if err != nil {
		return nil
	}
	if s := uri.Scheme(); s != "http" && s != "https" {
		return nil
	}
	return uri
}

// createDetails builds the panel showing the selected video
func (ui *RootUI) createDetails() fyne.CanvasObject {
	ui.thumbnailBox = container.NewGridWrap(fyne.NewSize(ThumbnailWidth, ThumbnailHeight),
		widget.NewLabel("No thumbnail"))

	ui.detailLabel = widget.NewLabel("No video selected")
	ui.detailLabel.Wrapping = fyne.TextWrapWord

	ui.previewBtn = widget.NewButton(IconPlay+" Preview", ui.onPreviewClick)
	ui.previewBtn.Disable()

	return container.NewVBox(ui.thumbnailBox, ui.detailLabel, ui.previewBtn)
}

// onVideoSelected shows the details of the video at id
func (ui *RootUI) onVideoSelected(id widget.ListItemID) {
	if id < 0 || id >= len(ui.videos) {
		ui.clearDetails()
		return
	}
	ui.selected = id
	v := ui.videos[id]

	var thumb fyne.CanvasObject = widget.NewLabel("No thumbnail")
	if uri := thumbnailURI(v.ThumbnailURL); uri != nil {
		img := canvas.NewImageFromURI(uri)
		img.FillMode = canvas.ImageFillContain
		thumb = img
	}
	ui.thumbnailBox.Objects = []fyne.CanvasObject{thumb}
	ui.thumbnailBox.Refresh()

	ui.detailLabel.SetText(videoLine(v))
	ui.previewBtn.Enable()
}

func (ui *RootUI) clearDetails() {
	ui.selected = -1
	ui.thumbnailBox.Objects = []fyne.CanvasObject{widget.NewLabel("No thumbnail")}
	ui.thumbnailBox.Refresh()
	ui.detailLabel.SetText("No video selected")
	ui.previewBtn.Disable()
}

// onPreviewClick opens the selected video in the browser
func (ui *RootUI) onPreviewClick() {
	const funcName = "RootUI.onPreviewClick"

	if ui.selected < 0 || ui.selected >= len(ui.videos) {
		dialog.ShowError(fmt.Errorf("no video selected"), ui.window)
		return
	}
	raw := ui.videos[ui.selected].SourceURL

	u, err := url.Parse(raw)
	if err == nil {
		err = ui.app.OpenURL(u)
	}
	if err != nil {
		logger.Warn("failed to open browser",
			zap.String("function", funcName),
			zap.String("url", raw),
			zap.Error(err),
		)
		dialog.ShowError(fmt.Errorf("could not open browser: %w", err), ui.window)
		return
	}
	ui.appendLog("Opening video in browser: " + raw)
}
