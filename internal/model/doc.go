// Package model defines domain data structures shared across the app: resolved
// video metadata, batch items and their statuses, run states, progress updates,
// history entries and the settings snapshot handed to a batch run.
package model
