package ui

import (
	"fyne.io/fyne/v2"
)

// Notifier delivers item outcomes as desktop notifications
type Notifier struct {
	app fyne.App
}

// NewNotifier creates a notifier bound to app
func NewNotifier(app fyne.App) *Notifier {
	return &Notifier{app: app}
}

// Notify sends one desktop notification. Safe to call from any goroutine.
func (n *Notifier) Notify(title, message string) {
	if n == nil || n.app == nil {
		return
	}
	n.app.SendNotification(fyne.NewNotification(title, message))
}
