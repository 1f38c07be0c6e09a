package model

import "testing"

func TestTrackStatus_IsActive(t *testing.T) {
	tests := []struct {
		status   TrackStatus
		expected bool
	}{
		{TrackStatusPending, false},
		{TrackStatusDownloading, true},
		{TrackStatusCompleted, false},
		{TrackStatusSkipped, false},
		{TrackStatusStopped, false},
		{TrackStatusError, false},
	}

	for _, test := range tests {
		result := test.status.IsActive()
		if result != test.expected {
			t.Errorf("TrackStatus(%s).IsActive() = %v, expected %v", test.status, result, test.expected)
		}
	}
}

func TestTrackStatus_IsFinished(t *testing.T) {
	tests := []struct {
		status   TrackStatus
		expected bool
	}{
		{TrackStatusPending, false},
		{TrackStatusDownloading, false},
		{TrackStatusCompleted, true},
		{TrackStatusSkipped, true},
		{TrackStatusStopped, true},
		{TrackStatusError, true},
	}

	for _, test := range tests {
		result := test.status.IsFinished()
		if result != test.expected {
			t.Errorf("TrackStatus(%s).IsFinished() = %v, expected %v", test.status, result, test.expected)
		}
	}
}

func TestTrackStatus_IsSuccess(t *testing.T) {
	tests := []struct {
		status   TrackStatus
		expected bool
	}{
		{TrackStatusPending, false},
		{TrackStatusDownloading, false},
		{TrackStatusCompleted, true},
		{TrackStatusSkipped, true},
		{TrackStatusStopped, false},
		{TrackStatusError, false},
	}

	for _, test := range tests {
		result := test.status.IsSuccess()
		if result != test.expected {
			t.Errorf("TrackStatus(%s).IsSuccess() = %v, expected %v", test.status, result, test.expected)
		}
	}
}

func TestTrackStatus_String(t *testing.T) {
	status := TrackStatusDownloading
	expected := "Downloading"
	result := status.String()

	if result != expected {
		t.Errorf("TrackStatus.String() = %s, expected %s", result, expected)
	}
}
