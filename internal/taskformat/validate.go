package taskformat

import (
	"fmt"

	"task-hunter/internal/domain"
	"task-hunter/internal/errors"
)

// validate applies the semantic rules tying a task's status to the shape of
// its history. It assumes structural parsing already succeeded.
func validate(task *ParsedTask) error {
	if task.Status == domain.StatusTodo {
		if len(task.History) != 0 {
			return errors.NewTaskValidationError("Can't have a history if the status is TODO")
		}
		return nil
	}

	if len(task.History) == 0 {
		return errors.NewTaskValidationError(
			fmt.Sprintf("Must have a history if status is %s", task.Status))
	}

	last := task.History[len(task.History)-1]
	if task.Status == domain.StatusCurrent {
		if !last.IsStart {
			return errors.NewTaskValidationError(
				"Last history record must be a Start if the status is Current")
		}
	} else if last.IsStart {
		return errors.NewTaskValidationError(
			fmt.Sprintf("Last history record must be a Stop if the status is %s", task.Status))
	}

	expectStart := true
	var lastTime int64
	for _, record := range task.History {
		if record.IsStart != expectStart {
			return errors.NewTaskValidationError("History must alternate between Start and Stop")
		}
		if record.Time <= lastTime {
			return errors.NewTaskValidationError("History must be in ascending order by time")
		}
		expectStart = !expectStart
		lastTime = record.Time
	}

	return nil
}
