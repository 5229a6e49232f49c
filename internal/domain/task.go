package domain

import (
	"fmt"
	"sort"
	"time"
)

// TimeDisplayFormat renders Unix timestamps for display and for the task text format.
const TimeDisplayFormat = "2006-01-02 15:04:05"

// Task represents a task in the domain model.
// Values are immutable snapshots of a stored row; mutations go through the
// store, which hands back a fresh snapshot.
type Task struct {
	ID           int64
	Name         string
	Estimate     *int64
	Description  *string
	Status       Status
	LastModified int64
}

// Equal reports identity equality: two snapshots of the same stored task are
// equal even when their other fields differ.
func (t Task) Equal(other Task) bool {
	return t.ID == other.ID
}

// Less orders tasks by status rank, then most recently modified first.
func (t Task) Less(other Task) bool {
	if t.Status.Rank() != other.Status.Rank() {
		return t.Status.Rank() < other.Status.Rank()
	}
	return t.LastModified > other.LastModified
}

// EstimateDisplay returns the estimate as "N hr"/"N hrs", or "" when unset.
func (t Task) EstimateDisplay() string {
	if t.Estimate == nil {
		return ""
	}
	display := fmt.Sprintf("%d hr", *t.Estimate)
	if *t.Estimate > 1 {
		display += "s"
	}
	return display
}

// LastModifiedDisplay renders the last-modified timestamp in local time.
func (t Task) LastModifiedDisplay() string {
	return FormatTimestamp(t.LastModified)
}

// String returns a short human-readable description of the task.
func (t Task) String() string {
	desc := ""
	if t.Description != nil {
		desc = *t.Description
	}
	return fmt.Sprintf("%s (%s): %s", t.Name, t.Status, desc)
}

// SortTasks sorts tasks into canonical display order.
func SortTasks(tasks []Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].Less(tasks[j])
	})
}

// FormatTimestamp renders a Unix timestamp (seconds) in local time.
func FormatTimestamp(ts int64) string {
	return time.Unix(ts, 0).Format(TimeDisplayFormat)
}
