package model

import (
	"fmt"
	"strings"
	"time"
)

// Outcome is the result of processing a single track
type Outcome struct {
	ID           string
	Index        int // position in the tracks file, 0-based
	Track        Track
	Query        string
	Status       TrackStatus
	OutputPath   string    // path to the written MP3
	MatchedTitle string    // title of the video the audio was taken from
	MatchScore   float64   // 0.0 to 1.0, similarity of MatchedTitle to the track
	Err          error     // reason for Error and Stopped outcomes
	Reason       string    // human readable reason for Skipped outcomes
	StartedAt    time.Time // when processing started
	FinishedAt   time.Time // when processing finished
}

// Elapsed returns how long the track took, or 0 if it has not finished
func (o *Outcome) Elapsed() time.Duration {
	if o.StartedAt.IsZero() || o.FinishedAt.IsZero() {
		return 0
	}
	return o.FinishedAt.Sub(o.StartedAt)
}

// GetElapsedString returns elapsed time formatted as "Xm Ys", or "—" if unknown
func (o *Outcome) GetElapsedString() string {
	total := int(o.Elapsed().Seconds())
	if total <= 0 {
		return "—"
	}
	return fmt.Sprintf("%dm %ds", total/60, total%60)
}

// GetDisplayTitle returns the track name, filename, or query in order of preference
func (o *Outcome) GetDisplayTitle() string {
	if name := o.Track.DisplayName(); name != "" {
		return name
	}

	if o.OutputPath != "" {
		parts := strings.FieldsFunc(o.OutputPath, func(r rune) bool {
			return r == '/' || r == '\\'
		})
		if len(parts) > 0 {
			filename := parts[len(parts)-1]
			if idx := strings.LastIndex(filename, "."); idx > 0 {
				filename = filename[:idx]
			}
			return filename
		}
	}

	return o.Query
}

// Report aggregates the outcomes of one batch run
type Report struct {
	RunID       string
	Outcomes    []*Outcome
	Interrupted bool
	StartedAt   time.Time
	FinishedAt  time.Time
}

// count returns the number of outcomes with the given status
func (r *Report) count(status TrackStatus) int {
	n := 0
	for _, o := range r.Outcomes {
		if o.Status == status {
			n++
		}
	}
	return n
}

// Completed returns the number of tracks that produced a file
func (r *Report) Completed() int { return r.count(TrackStatusCompleted) }

// Skipped returns the number of tracks that were skipped
func (r *Report) Skipped() int { return r.count(TrackStatusSkipped) }

// Failed returns the number of tracks that ended in error
func (r *Report) Failed() int { return r.count(TrackStatusError) }

// Stopped returns the number of tracks cut short by an interrupt
func (r *Report) Stopped() int { return r.count(TrackStatusStopped) }

// Pending returns the number of tracks never attempted because the run was interrupted
func (r *Report) Pending() int { return r.count(TrackStatusPending) }

// Failures returns the outcomes that ended in error, in run order
func (r *Report) Failures() []*Outcome {
	var failed []*Outcome
	for _, o := range r.Outcomes {
		if o.Status == TrackStatusError {
			failed = append(failed, o)
		}
	}
	return failed
}

// Succeeded reports whether the run finished without failures or interruption
func (r *Report) Succeeded() bool {
	return !r.Interrupted && r.Failed() == 0 && r.Stopped() == 0
}
