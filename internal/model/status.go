package model

// TrackStatus represents the status of a single track within a batch run
type TrackStatus string

const (
	// TrackStatusPending means the track is queued but not started
	TrackStatusPending TrackStatus = "Pending"

	// TrackStatusDownloading means the fetch is in progress
	TrackStatusDownloading TrackStatus = "Downloading"

	// TrackStatusCompleted means an MP3 file was written
	TrackStatusCompleted TrackStatus = "Completed"

	// TrackStatusSkipped means the target file already existed or the run was a dry run
	TrackStatusSkipped TrackStatus = "Skipped"

	// TrackStatusStopped means the run was interrupted while the track was in progress
	TrackStatusStopped TrackStatus = "Stopped"

	// TrackStatusError means the track failed with an error
	TrackStatusError TrackStatus = "Error"
)

// String returns the string representation of TrackStatus
func (ts TrackStatus) String() string {
	return string(ts)
}

// IsActive returns true if the track is being processed
func (ts TrackStatus) IsActive() bool {
	return ts == TrackStatusDownloading
}

// IsFinished returns true if the track reached a final state
func (ts TrackStatus) IsFinished() bool {
	return ts == TrackStatusCompleted || ts == TrackStatusSkipped ||
		ts == TrackStatusStopped || ts == TrackStatusError
}

// IsSuccess returns true for final states that do not count as failures
func (ts TrackStatus) IsSuccess() bool {
	return ts == TrackStatusCompleted || ts == TrackStatusSkipped
}
