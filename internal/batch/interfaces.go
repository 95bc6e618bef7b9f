package batch

import (
	"github.com/ytget/yt-batch/internal/model"
)

//go:generate mockgen -source=interfaces.go -destination=mocks/mock.go

// Recorder receives one history entry per terminal item outcome
type Recorder interface {
	Append(entry model.HistoryEntry)
}

// Notifier shows a user-visible notification. Implementations must not block
// for long; the worker calls it between items.
type Notifier interface {
	Notify(title, message string)
}

type nopNotifier struct{}

func (nopNotifier) Notify(string, string) {}
