package domain

import "fmt"

// Status represents the lifecycle state of a task.
type Status string

const (
	StatusCurrent    Status = "Current"
	StatusInProgress Status = "In Progress"
	StatusTodo       Status = "TODO"
	StatusFinished   Status = "Finished"
)

// statusRanks defines the display priority of each status. Lower ranks sort first.
var statusRanks = map[Status]int{
	StatusCurrent:    0,
	StatusInProgress: 1,
	StatusTodo:       2,
	StatusFinished:   3,
}

// AllStatuses lists every status in rank order.
var AllStatuses = []Status{StatusCurrent, StatusInProgress, StatusTodo, StatusFinished}

// OpenStatuses lists the statuses of tasks that are not yet finished.
var OpenStatuses = []Status{StatusCurrent, StatusInProgress, StatusTodo}

// ParseStatus converts a stored status string into a Status.
func ParseStatus(s string) (Status, error) {
	status := Status(s)
	if _, ok := statusRanks[status]; !ok {
		return "", fmt.Errorf("unknown status: %q", s)
	}
	return status, nil
}

// Rank returns the sort priority of the status. Unknown statuses sort last.
func (s Status) Rank() int {
	rank, ok := statusRanks[s]
	if !ok {
		return len(statusRanks)
	}
	return rank
}

// String returns the status as stored and displayed.
func (s Status) String() string {
	return string(s)
}
