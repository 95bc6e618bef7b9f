package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/ytget/yt-batch/internal/history"
	"github.com/ytget/yt-batch/internal/logger"
	"github.com/ytget/yt-batch/internal/model"
)

// HistoryView lists the most recent downloads with their statistics
type HistoryView struct {
	store  *history.Store
	window fyne.Window

	entries    []model.HistoryEntry
	list       *widget.List
	statsLabel *widget.Label
	content    fyne.CanvasObject
}

// NewHistoryView builds the history tab content
func NewHistoryView(store *history.Store, window fyne.Window) *HistoryView {
	hv := &HistoryView{
		store:  store,
		window: window,
	}

	hv.statsLabel = widget.NewLabel("")
	hv.list = widget.NewList(
		func() int { return len(hv.entries) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			if id >= len(hv.entries) {
				return
			}
			obj.(*widget.Label).SetText(historyLine(hv.entries[id]))
		},
	)

	refreshBtn := widget.NewButton("Refresh", hv.Refresh)
	clearBtn := widget.NewButton("Clear History", hv.onClear)
	clearBtn.Importance = widget.DangerImportance

	top := container.NewBorder(nil, nil, nil, container.NewHBox(refreshBtn, clearBtn), hv.statsLabel)
	hv.content = container.NewBorder(top, nil, nil, nil, hv.list)

	hv.Refresh()
	return hv
}

// Content returns the tab content
func (hv *HistoryView) Content() fyne.CanvasObject {
	return hv.content
}

// Refresh reloads entries and statistics. Must run on the fyne thread.
func (hv *HistoryView) Refresh() {
	hv.entries = hv.store.List(HistoryViewLimit)
	hv.statsLabel.SetText(statsText(hv.store.Stats()))
	hv.list.Refresh()
}

func (hv *HistoryView) onClear() {
	dialog.ShowConfirm("Clear History", "Remove all download history entries?", func(ok bool) {
		if !ok {
			return
		}
		hv.store.Clear()
		logger.Info("history cleared from UI", zap.String("function", "HistoryView.onClear"))
		hv.Refresh()
	}, hv.window)
}
