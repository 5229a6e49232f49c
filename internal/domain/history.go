package domain

import (
	"fmt"
	"sort"
)

// HistoryRecord represents one start or stop event in a task's time-tracking
// history. Records are created by the lifecycle operations and the text-format
// import path, and are never mutated afterwards.
type HistoryRecord struct {
	ID      int64
	TaskID  int64
	IsStart bool
	Time    int64
}

// Equal reports identity equality on the record ID.
func (r HistoryRecord) Equal(other HistoryRecord) bool {
	return r.ID == other.ID
}

// Less orders records by task, then time, with a start sorting before a stop
// at the same time so a zero-duration interval keeps its shape.
func (r HistoryRecord) Less(other HistoryRecord) bool {
	if r.TaskID != other.TaskID {
		return r.TaskID < other.TaskID
	}
	if r.Time != other.Time {
		return r.Time < other.Time
	}
	return r.IsStart && !other.IsStart
}

// TimeDisplay renders the record's timestamp in local time.
func (r HistoryRecord) TimeDisplay() string {
	return FormatTimestamp(r.Time)
}

// String returns a short human-readable description of the record.
func (r HistoryRecord) String() string {
	verb := "Stopped"
	if r.IsStart {
		verb = "Started"
	}
	return fmt.Sprintf("%d %s at %s", r.ID, verb, r.TimeDisplay())
}

// SortHistory sorts records into canonical order.
func SortHistory(records []HistoryRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Less(records[j])
	})
}
