package batch

import (
	"context"
	"sync"

	"github.com/ytget/yt-batch/internal/model"
)

// Run is one batch execution. Its mutable state is written by the worker and
// by the control methods of the Orchestrator.
type Run struct {
	id       string
	items    []model.BatchItem
	snapshot model.Snapshot
	done     chan struct{}

	mu              sync.Mutex
	cond            *sync.Cond
	state           model.RunState
	current         int
	itemPercent     float64
	aggregate       float64
	cancelRequested bool
	statuses        []model.ItemStatus
	errors          []error
}

// RunSnapshot is a consistent copy of a run's state.
//
// CurrentIndex is the item being downloaded, or the next one to start
// between items; it equals Total once every item finished. Outcome holds the
// terminal state (completed or canceled) of a run that ended and is empty
// while the run is active.
type RunSnapshot struct {
	RunID           string
	State           model.RunState
	Outcome         model.RunState
	CurrentIndex    int
	Total           int
	Aggregate       float64
	CancelRequested bool
	Statuses        []model.ItemStatus
}

// Finished returns the number of items that reached a terminal status
func (s RunSnapshot) Finished() int {
	n := 0
	for _, st := range s.Statuses {
		if st.IsFinished() {
			n++
		}
	}
	return n
}

// Result is the per-item outcome vector of a run
type Result struct {
	RunID     string
	State     model.RunState
	Statuses  []model.ItemStatus
	Errors    []error // nil entries for items that did not fail
	Completed int
	Failed    int
}

// Skipped returns the number of items never started
func (r Result) Skipped() int {
	return len(r.Statuses) - r.Completed - r.Failed
}

func newRun(id string, items []model.BatchItem, snapshot model.Snapshot) *Run {
	owned := make([]model.BatchItem, len(items))
	copy(owned, items)

	r := &Run{
		id:       id,
		items:    owned,
		snapshot: snapshot,
		done:     make(chan struct{}),
		state:    model.RunStateRunning,
		statuses: make([]model.ItemStatus, len(items)),
		errors:   make([]error, len(items)),
	}
	for i := range r.statuses {
		r.statuses[i] = model.ItemStatusPending
	}
	r.cond = sync.NewCond(&r.mu)
	return r
}

// ID returns the run identifier
func (r *Run) ID() string {
	return r.id
}

// Items returns the queued items in processing order
func (r *Run) Items() []model.BatchItem {
	out := make([]model.BatchItem, len(r.items))
	copy(out, r.items)
	return out
}

// Done is closed when the worker exits
func (r *Run) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the run finishes or ctx is done
func (r *Run) Wait(ctx context.Context) (Result, error) {
	select {
	case <-r.done:
		return r.Result(), nil
	case <-ctx.Done():
		return Result{}, ctx.Err()
	}
}

// State returns the current lifecycle state
func (r *Run) State() model.RunState {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.state
}

// Result returns the outcome vector observed so far
func (r *Run) Result() Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := Result{
		RunID:    r.id,
		State:    r.state,
		Statuses: append([]model.ItemStatus(nil), r.statuses...),
		Errors:   append([]error(nil), r.errors...),
	}
	for _, s := range r.statuses {
		switch s {
		case model.ItemStatusCompleted:
			res.Completed++
		case model.ItemStatusFailed:
			res.Failed++
		}
	}
	return res
}

// Snapshot returns a consistent copy of the run state
func (r *Run) Snapshot() RunSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	snap := RunSnapshot{
		RunID:           r.id,
		State:           r.state,
		CurrentIndex:    r.current,
		Total:           len(r.items),
		Aggregate:       r.aggregate,
		CancelRequested: r.cancelRequested,
		Statuses:        append([]model.ItemStatus(nil), r.statuses...),
	}
	if r.state.IsFinished() {
		snap.Outcome = r.state
	}
	return snap
}

func (r *Run) pause() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != model.RunStateRunning || r.cancelRequested {
		return false
	}
	r.state = model.RunStatePaused
	return true
}

func (r *Run) resume() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.state != model.RunStatePaused || r.cancelRequested {
		return false
	}
	r.state = model.RunStateRunning
	r.cond.Broadcast()
	return true
}

func (r *Run) cancel() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.state.IsActive() || r.cancelRequested {
		return false
	}
	r.cancelRequested = true
	r.cond.Broadcast()
	return true
}

func (r *Run) wake() {
	r.mu.Lock()
	r.cond.Broadcast()
	r.mu.Unlock()
}

// checkpoint blocks while paused and reports whether the next item may start
func (r *Run) checkpoint(ctx context.Context) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	for r.state == model.RunStatePaused && !r.cancelRequested && ctx.Err() == nil {
		r.cond.Wait()
	}
	return !r.cancelRequested && ctx.Err() == nil
}

func (r *Run) begin(index int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.current = index
	r.itemPercent = 0
	r.statuses[index] = model.ItemStatusDownloading
}

// progress folds one capability update into the aggregate. Updates for an
// item that is no longer current are ignored.
func (r *Run) progress(index int, p model.Progress) (Event, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if index != r.current || r.statuses[index] != model.ItemStatusDownloading {
		return Event{}, false
	}

	percent, known := p.Percent()
	if known {
		if percent > r.itemPercent {
			r.itemPercent = percent
		}
		agg := (float64(index) + r.itemPercent/100) / float64(len(r.items)) * 100
		if agg > r.aggregate {
			r.aggregate = agg
		}
	}

	ev := r.eventLocked(EventItemProgress, index)
	ev.ItemPercentKnown = known
	ev.SpeedBytesPerSec = p.SpeedBytesPerSec
	return ev, true
}

// finishItem records a terminal item status, moves the cursor past the item
// and advances the aggregate to the item's upper bound
func (r *Run) finishItem(index int, status model.ItemStatus, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.statuses[index] = status
	r.errors[index] = err
	r.current = index + 1
	r.itemPercent = 100

	agg := float64(index+1) * 100 / float64(len(r.items))
	if agg > r.aggregate {
		r.aggregate = agg
	}
}

// finish moves the run out of running/paused
func (r *Run) finish(ctx context.Context) model.RunState {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.cancelRequested || ctx.Err() != nil {
		r.state = model.RunStateCanceled
	} else {
		r.state = model.RunStateCompleted
	}
	r.cond.Broadcast()
	return r.state
}

func (r *Run) event(t EventType, index int) Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.eventLocked(t, index)
}

func (r *Run) eventLocked(t EventType, index int) Event {
	ev := Event{
		Type:      t,
		RunID:     r.id,
		State:     r.state,
		Index:     index,
		Total:     len(r.items),
		Aggregate: r.aggregate,
	}
	if index >= 0 {
		ev.Item = r.items[index]
		ev.ItemPercent = r.itemPercent
		ev.ItemPercentKnown = true
	}
	return ev
}
