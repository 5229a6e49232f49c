// Package taskformat renders a task and its history as a canonical,
// human-editable text block and parses that block back into validated data.
// It powers the edit-in-external-editor workflow: render, let a human edit,
// parse, validate, replace.
package taskformat

import (
	"fmt"
	"strings"

	"task-hunter/internal/domain"
)

// noneValue marks an unset estimate or description in the text format.
const noneValue = "None"

// Render produces the canonical text block for a task and its history.
// History records must be in chronological order. The output always parses
// back to equivalent data, provided the task itself satisfies the history
// invariants.
func Render(task domain.Task, history []domain.HistoryRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "NAME: %s\n", task.Name)
	if task.Estimate != nil {
		fmt.Fprintf(&b, "ESTIMATE: %d\n", *task.Estimate)
	} else {
		fmt.Fprintf(&b, "ESTIMATE: %s\n", noneValue)
	}
	fmt.Fprintf(&b, "STATUS: %s\n", task.Status)
	if task.Description != nil {
		fmt.Fprintf(&b, "DESCRIPTION: %s\n", *task.Description)
	} else {
		fmt.Fprintf(&b, "DESCRIPTION: %s\n", noneValue)
	}

	b.WriteString("\nHISTORY\n")
	for _, record := range history {
		recordType := "Stop"
		if record.IsStart {
			recordType = "Start"
		}
		fmt.Fprintf(&b, "%s\t%s\n", recordType, record.TimeDisplay())
	}

	return b.String()
}
