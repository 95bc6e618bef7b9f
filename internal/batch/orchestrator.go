// Package batch runs a list of resolved items through the download capability
// one at a time, with pause, resume and cooperative cancellation.
package batch

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/ytget/yt-batch/internal/download"
	"github.com/ytget/yt-batch/internal/errs"
	"github.com/ytget/yt-batch/internal/logger"
	"github.com/ytget/yt-batch/internal/model"
)

// Orchestrator owns at most one active run at a time
type Orchestrator struct {
	fetcher  download.Fetcher
	recorder Recorder
	notifier Notifier
	now      func() time.Time

	mu      sync.Mutex
	current *Run // active run, or the last finished one

	subsMu    sync.Mutex
	subs      map[int]*subscriber
	nextSubID int
}

// Option configures an Orchestrator
type Option func(*Orchestrator)

// WithNotifier injects the user notification capability
func WithNotifier(n Notifier) Option {
	return func(o *Orchestrator) {
		if n != nil {
			o.notifier = n
		}
	}
}

// WithClock overrides the clock used for history timestamps
func WithClock(now func() time.Time) Option {
	return func(o *Orchestrator) {
		if now != nil {
			o.now = now
		}
	}
}

// NewOrchestrator creates an orchestrator around the given capabilities
func NewOrchestrator(fetcher download.Fetcher, recorder Recorder, opts ...Option) *Orchestrator {
	o := &Orchestrator{
		fetcher:  fetcher,
		recorder: recorder,
		notifier: nopNotifier{},
		now:      time.Now,
		subs:     make(map[int]*subscriber),
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}

// Start validates the batch and launches its worker. Empty batches and a
// second run while one is active are rejected before any goroutine starts.
func (o *Orchestrator) Start(ctx context.Context, items []model.BatchItem, snapshot model.Snapshot) (*Run, error) {
	const funcName = "Orchestrator.Start"

	if len(items) == 0 {
		return nil, errs.ErrEmptyBatch
	}

	o.mu.Lock()
	if o.current != nil && o.current.State().IsActive() {
		o.mu.Unlock()
		logger.Warn("start rejected, run in progress",
			zap.String("function", funcName),
			zap.String("active_run", o.current.ID()),
		)
		return nil, errs.ErrBatchActive
	}

	run := newRun(newRunID(), items, snapshot)
	o.current = run
	o.mu.Unlock()

	logger.Info("batch run started",
		zap.String("function", funcName),
		zap.String("run_id", run.id),
		zap.Int("items", len(items)),
		zap.String("destination", snapshot.DownloadDirectory),
	)

	go o.work(ctx, run)

	return run, nil
}

// Pause halts further item starts. No-op unless running.
func (o *Orchestrator) Pause() {
	run := o.active()
	if run == nil || !run.pause() {
		return
	}
	logger.Info("batch run paused", zap.String("function", "Orchestrator.Pause"), zap.String("run_id", run.id))
	o.publishState(run)
}

// Resume continues a paused run. No-op unless paused.
func (o *Orchestrator) Resume() {
	run := o.active()
	if run == nil || !run.resume() {
		return
	}
	logger.Info("batch run resumed", zap.String("function", "Orchestrator.Resume"), zap.String("run_id", run.id))
	o.publishState(run)
}

// Cancel requests the active run to stop at its next checkpoint. The item in
// flight, if any, runs to its own completion or failure.
func (o *Orchestrator) Cancel() {
	run := o.active()
	if run == nil || !run.cancel() {
		return
	}
	logger.Info("batch run cancel requested", zap.String("function", "Orchestrator.Cancel"), zap.String("run_id", run.id))
	o.publishState(run)
}

// Snapshot returns a copy of the current or last run's state. It reports
// RunStateIdle unless a run is active; a run that ended keeps its terminal
// state in Outcome.
func (o *Orchestrator) Snapshot() RunSnapshot {
	o.mu.Lock()
	run := o.current
	o.mu.Unlock()

	if run == nil {
		return RunSnapshot{State: model.RunStateIdle}
	}
	snap := run.Snapshot()
	if snap.Outcome != "" {
		snap.State = model.RunStateIdle
	}
	return snap
}

// Active reports whether a run is running or paused
func (o *Orchestrator) Active() bool {
	return o.active() != nil
}

// Subscribe registers an observer. Progress events are dropped when the
// channel is full; item and run lifecycle events wait for the receiver.
// Control events (pause, resume, cancel) never block the caller and may be
// dropped. The returned function unsubscribes; the channel is not closed.
func (o *Orchestrator) Subscribe(buffer int) (<-chan Event, func()) {
	if buffer < 0 {
		buffer = 0
	}
	sub := &subscriber{
		ch:   make(chan Event, buffer),
		quit: make(chan struct{}),
	}

	o.subsMu.Lock()
	id := o.nextSubID
	o.nextSubID++
	o.subs[id] = sub
	o.subsMu.Unlock()

	var once sync.Once
	unsubscribe := func() {
		once.Do(func() {
			close(sub.quit)
			o.subsMu.Lock()
			delete(o.subs, id)
			o.subsMu.Unlock()
		})
	}
	return sub.ch, unsubscribe
}

func (o *Orchestrator) active() *Run {
	o.mu.Lock()
	defer o.mu.Unlock()
	if o.current == nil || !o.current.State().IsActive() {
		return nil
	}
	return o.current
}

// work is the per-run worker goroutine
func (o *Orchestrator) work(ctx context.Context, run *Run) {
	const funcName = "Orchestrator.work"
	defer close(run.done)

	// Parent cancellation must wake a paused worker
	stop := context.AfterFunc(ctx, run.wake)
	defer stop()

	o.publish(run.event(EventRunStarted, -1), true)

	for index := range run.items {
		if !run.checkpoint(ctx) {
			break
		}

		item := run.items[index]
		run.begin(index)
		o.publish(run.event(EventItemStarted, index), true)

		logger.Debug("item started",
			zap.String("function", funcName),
			zap.String("run_id", run.id),
			zap.Int("index", index),
			zap.String("url", item.URL()),
		)

		err := o.fetch(ctx, run, index)
		now := o.now()

		if err != nil {
			run.finishItem(index, model.ItemStatusFailed, err)
			o.recorder.Append(model.NewHistoryEntry(item, model.HistoryStatusFailed, now))
			o.notifier.Notify("Download failed", fmt.Sprintf("%s: %v", item.Metadata.Title, err))

			logger.Warn("item failed",
				zap.String("function", funcName),
				zap.String("run_id", run.id),
				zap.Int("index", index),
				zap.String("url", item.URL()),
				zap.Error(err),
			)

			ev := run.event(EventItemFailed, index)
			ev.Err = err
			o.publish(ev, true)
			continue
		}

		run.finishItem(index, model.ItemStatusCompleted, nil)
		o.recorder.Append(model.NewHistoryEntry(item, model.HistoryStatusCompleted, now))
		o.notifier.Notify("Download complete", item.Metadata.Title)

		logger.Info("item completed",
			zap.String("function", funcName),
			zap.String("run_id", run.id),
			zap.Int("index", index),
			zap.String("url", item.URL()),
		)

		o.publish(run.event(EventItemCompleted, index), true)
	}

	state := run.finish(ctx)
	result := run.Result()

	logger.Info("batch run finished",
		zap.String("function", funcName),
		zap.String("run_id", run.id),
		zap.String("state", state.String()),
		zap.Int("completed", result.Completed),
		zap.Int("failed", result.Failed),
	)

	o.publish(run.event(EventRunFinished, -1), true)
}

// fetch invokes the download capability for one item. A panic inside the
// capability is converted into a DownloadError.
func (o *Orchestrator) fetch(ctx context.Context, run *Run, index int) (err error) {
	const funcName = "Orchestrator.fetch"
	item := run.items[index]

	defer func() {
		if r := recover(); r != nil {
			logger.Error("download capability panicked",
				zap.String("function", funcName),
				zap.String("url", item.URL()),
				zap.Any("panic", r),
			)
			err = &errs.DownloadError{URL: item.URL(), Err: fmt.Errorf("panic: %v", r)}
		}
	}()

	req := download.Request{
		URL:            item.URL(),
		DestinationDir: run.snapshot.DownloadDirectory,
		Quality:        item.Quality,
		Format:         item.Format,
		SpeedLimit:     run.snapshot.SpeedLimitBytesPerSec,
	}

	sink := func(p model.Progress) {
		if ev, ok := run.progress(index, p); ok {
			o.publish(ev, false)
		}
	}

	if ferr := o.fetcher.Fetch(ctx, req, sink); ferr != nil {
		return &errs.DownloadError{URL: item.URL(), Err: ferr}
	}
	return nil
}

func (o *Orchestrator) publishState(run *Run) {
	o.publish(run.event(EventStateChanged, -1), false)
}

func (o *Orchestrator) publish(ev Event, block bool) {
	o.subsMu.Lock()
	subs := make([]*subscriber, 0, len(o.subs))
	for _, s := range o.subs {
		subs = append(subs, s)
	}
	o.subsMu.Unlock()

	for _, s := range subs {
		s.send(ev, block)
	}
}

func newRunID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}
