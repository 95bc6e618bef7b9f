package model

// ItemStatus represents the status of one item within a batch run
type ItemStatus string

const (
	// ItemStatusPending means the item is queued but not started
	ItemStatusPending ItemStatus = "pending"

	// ItemStatusDownloading means the download is in progress
	ItemStatusDownloading ItemStatus = "downloading"

	// ItemStatusCompleted means the item finished successfully
	ItemStatusCompleted ItemStatus = "completed"

	// ItemStatusFailed means the download capability reported an error
	ItemStatusFailed ItemStatus = "failed"
)

// String returns the string representation of ItemStatus
func (s ItemStatus) String() string {
	return string(s)
}

// IsFinished returns true if the item reached a terminal status
func (s ItemStatus) IsFinished() bool {
	return s == ItemStatusCompleted || s == ItemStatusFailed
}

// RunState represents the lifecycle state of a batch run
type RunState string

const (
	RunStateIdle      RunState = "idle"
	RunStateRunning   RunState = "running"
	RunStatePaused    RunState = "paused"
	RunStateCompleted RunState = "completed"
	RunStateCanceled  RunState = "canceled"
)

// String returns the string representation of RunState
func (s RunState) String() string {
	return string(s)
}

// IsActive returns true while a run owns the worker (running or paused)
func (s RunState) IsActive() bool {
	return s == RunStateRunning || s == RunStatePaused
}

// IsFinished returns true if the run ended, naturally or by cancellation
func (s RunState) IsFinished() bool {
	return s == RunStateCompleted || s == RunStateCanceled
}
