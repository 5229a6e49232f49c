package domain

import (
	"fmt"
	"time"
)

// timeNow is a variable so tests can control the clock.
var timeNow = time.Now

// CalcProgress computes the total seconds of active work recorded in a task's
// history. The records must be the task's full history in canonical order;
// strict start/stop alternation is an invariant the caller guarantees. An
// interval left open by a trailing start is counted up to now.
func CalcProgress(history []HistoryRecord) int64 {
	var progress int64
	var open *int64
	for _, record := range history {
		if record.IsStart {
			t := record.Time
			open = &t
		} else if open != nil {
			progress += record.Time - *open
			open = nil
		}
	}
	if open != nil {
		progress += timeNow().Unix() - *open
	}
	return progress
}

// FormatProgress renders a number of seconds as zero-padded HH:MM:SS.
// The hours field widens past two digits when the total demands it.
func FormatProgress(seconds int64) string {
	minutes, secs := seconds/60, seconds%60
	hours, mins := minutes/60, minutes%60
	return fmt.Sprintf("%02d:%02d:%02d", hours, mins, secs)
}
