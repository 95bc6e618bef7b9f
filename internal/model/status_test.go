package model

import "testing"

func TestItemStatus_IsFinished(t *testing.T) {
	tests := []struct {
		status   ItemStatus
		expected bool
	}{
		{ItemStatusPending, false},
		{ItemStatusDownloading, false},
		{ItemStatusCompleted, true},
		{ItemStatusFailed, true},
	}

	for _, test := range tests {
		result := test.status.IsFinished()
		if result != test.expected {
			t.Errorf("ItemStatus(%s).IsFinished() = %v, expected %v", test.status, result, test.expected)
		}
	}
}

func TestRunState_IsActive(t *testing.T) {
	tests := []struct {
		state    RunState
		active   bool
		finished bool
	}{
		{RunStateIdle, false, false},
		{RunStateRunning, true, false},
		{RunStatePaused, true, false},
		{RunStateCompleted, false, true},
		{RunStateCanceled, false, true},
	}

	for _, test := range tests {
		if got := test.state.IsActive(); got != test.active {
			t.Errorf("RunState(%s).IsActive() = %v, expected %v", test.state, got, test.active)
		}
		if got := test.state.IsFinished(); got != test.finished {
			t.Errorf("RunState(%s).IsFinished() = %v, expected %v", test.state, got, test.finished)
		}
	}
}

func TestItemStatus_String(t *testing.T) {
	if got := ItemStatusDownloading.String(); got != "downloading" {
		t.Errorf("ItemStatus.String() = %s, expected downloading", got)
	}
}
