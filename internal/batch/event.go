package batch

import (
	"github.com/ytget/yt-batch/internal/model"
)

// EventType identifies what happened in a run
type EventType int

const (
	EventRunStarted EventType = iota
	EventItemStarted
	EventItemProgress
	EventItemCompleted
	EventItemFailed
	EventStateChanged
	EventRunFinished
)

var eventTypeNames = map[EventType]string{
	EventRunStarted:    "run_started",
	EventItemStarted:   "item_started",
	EventItemProgress:  "item_progress",
	EventItemCompleted: "item_completed",
	EventItemFailed:    "item_failed",
	EventStateChanged:  "state_changed",
	EventRunFinished:   "run_finished",
}

func (t EventType) String() string {
	if name, ok := eventTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Event is one observation of a run. Item fields are meaningful for item
// events only.
type Event struct {
	Type  EventType
	RunID string
	State model.RunState

	Index int // item index, -1 for run-level events
	Total int
	Item  model.BatchItem

	ItemPercent      float64
	ItemPercentKnown bool
	Aggregate        float64
	SpeedBytesPerSec float64

	Err error // set on EventItemFailed
}

// subscriber receives events until quit is closed. ch is never closed so a
// late publish cannot panic.
type subscriber struct {
	ch   chan Event
	quit chan struct{}
}

func (s *subscriber) send(ev Event, block bool) {
	if block {
		select {
		case s.ch <- ev:
		case <-s.quit:
		}
		return
	}

	select {
	case s.ch <- ev:
	case <-s.quit:
	default:
	}
}
