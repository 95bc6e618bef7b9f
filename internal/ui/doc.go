// Package ui contains the Fyne-based desktop user interface. It collects URLs,
// runs the resolution pass, drives the batch orchestrator and renders its
// events, and shows the download history and settings.
package ui
