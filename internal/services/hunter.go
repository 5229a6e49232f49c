// Package services implements the task lifecycle state machine on top of the
// sqlite store.
package services

import (
	"context"
	"strings"
	"time"

	"task-hunter/internal/domain"
	"task-hunter/internal/errors"
	"task-hunter/internal/logging"
	"task-hunter/internal/repository/sqlite"
	"task-hunter/internal/taskformat"
)

// timeNow is a variable so tests can control the clock.
var timeNow = time.Now

// Hunter is the business surface the CLI layer talks to. It owns the task
// lifecycle transitions and keeps the single-current-task invariant.
type Hunter struct {
	store *sqlite.Store
}

// NewHunter creates a Hunter over the given store.
func NewHunter(store *sqlite.Store) *Hunter {
	return &Hunter{store: store}
}

// GetTask resolves a task by identifier (id or name prefix), optionally
// restricted to the given statuses. An empty identifier resolves to the
// current task.
func (h *Hunter) GetTask(ctx context.Context, identifier string, statuses ...domain.Status) (domain.Task, error) {
	return h.store.GetTask(ctx, identifier, statuses)
}

// GetTasks lists tasks matching every supplied filter, in canonical order.
func (h *Hunter) GetTasks(ctx context.Context, statuses []domain.Status, startsWith, contains string) ([]domain.Task, error) {
	return h.store.GetTasks(ctx, statuses, startsWith, contains)
}

// GetCurrentTask returns the task being worked on right now, or nil.
func (h *Hunter) GetCurrentTask(ctx context.Context) (*domain.Task, error) {
	return h.store.GetCurrentTask(ctx)
}

// GetHistory returns the history records for the given tasks in canonical order.
func (h *Hunter) GetHistory(ctx context.Context, taskIDs []int64) ([]domain.HistoryRecord, error) {
	return h.store.GetHistory(ctx, taskIDs)
}

// CreateTask creates a new TODO task and returns its snapshot.
func (h *Hunter) CreateTask(ctx context.Context, name string, estimate *int64, description *string) (domain.Task, error) {
	return h.createTask(ctx, name, estimate, description, domain.StatusTodo)
}

func (h *Hunter) createTask(ctx context.Context, name string, estimate *int64, description *string, status domain.Status) (domain.Task, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return domain.Task{}, errors.NewTaskValidationError("task name must not be empty")
	}
	if estimate != nil && *estimate < 1 {
		return domain.Task{}, errors.NewTaskValidationError("estimate must be a positive number of hours")
	}
	return h.store.CreateTask(ctx, name, estimate, description, status)
}

// Workon starts (or continues) working on the task matching the identifier.
// If a different task is current it gets a stop record and moves to
// In Progress; the target task gets a start record and becomes Current.
// Working on the task that is already current is a no-op.
func (h *Hunter) Workon(ctx context.Context, identifier string) (domain.Task, error) {
	task, err := h.store.GetTask(ctx, identifier, nil)
	if err != nil {
		return domain.Task{}, err
	}
	return h.workonTask(ctx, task)
}

// WorkonTask runs the workon transition for an already resolved task.
func (h *Hunter) WorkonTask(ctx context.Context, task domain.Task) (domain.Task, error) {
	return h.workonTask(ctx, task)
}

func (h *Hunter) workonTask(ctx context.Context, task domain.Task) (domain.Task, error) {
	current, err := h.store.GetCurrentTask(ctx)
	if err != nil {
		return domain.Task{}, err
	}

	if current != nil {
		if current.Equal(task) {
			logging.Debugf("workon: task %d already current\n", task.ID)
			return *current, nil
		}
		if err := h.store.InsertHistory(ctx, current.ID, false, h.now()); err != nil {
			return domain.Task{}, err
		}
		if err := h.store.UpdateTaskField(ctx, current.ID, "status", domain.StatusInProgress.String()); err != nil {
			return domain.Task{}, err
		}
	}

	if err := h.store.InsertHistory(ctx, task.ID, true, h.now()); err != nil {
		return domain.Task{}, err
	}
	if err := h.store.UpdateTaskField(ctx, task.ID, "status", domain.StatusCurrent.String()); err != nil {
		return domain.Task{}, err
	}

	return h.store.GetTaskByID(ctx, task.ID)
}

// Restart resumes work on a finished task, continuing its history trail.
// It is the workon transition restricted to Finished tasks.
func (h *Hunter) Restart(ctx context.Context, identifier string) (domain.Task, error) {
	task, err := h.store.GetTask(ctx, identifier, []domain.Status{domain.StatusFinished})
	if err != nil {
		return domain.Task{}, err
	}
	return h.workonTask(ctx, task)
}

// StopCurrentTask stops the current task, moving it to In Progress, and
// returns its refreshed snapshot. Returns nil when no task is current.
func (h *Hunter) StopCurrentTask(ctx context.Context) (*domain.Task, error) {
	current, err := h.store.GetCurrentTask(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, nil
	}

	if err := h.store.InsertHistory(ctx, current.ID, false, h.now()); err != nil {
		return nil, err
	}
	if err := h.store.UpdateTaskField(ctx, current.ID, "status", domain.StatusInProgress.String()); err != nil {
		return nil, err
	}

	stopped, err := h.store.GetTaskByID(ctx, current.ID)
	if err != nil {
		return nil, err
	}
	return &stopped, nil
}

// FinishTask marks a task Finished. A current task gets its open interval
// closed with a stop record first. Finishing an already finished task is a
// no-op.
func (h *Hunter) FinishTask(ctx context.Context, id int64) error {
	task, err := h.store.GetTaskByID(ctx, id)
	if err != nil {
		return err
	}

	if task.Status == domain.StatusCurrent {
		if err := h.store.InsertHistory(ctx, task.ID, false, h.now()); err != nil {
			return err
		}
	}
	if task.Status != domain.StatusFinished {
		if err := h.store.UpdateTaskField(ctx, task.ID, "status", domain.StatusFinished.String()); err != nil {
			return err
		}
	}
	return nil
}

// EstimateTask overwrites a task's estimate. Hours must be positive.
func (h *Hunter) EstimateTask(ctx context.Context, id int64, hours int64) error {
	if hours < 1 {
		return errors.NewTaskValidationError("estimate must be a positive number of hours")
	}
	return h.store.UpdateTaskField(ctx, id, "estimate", hours)
}

// RemoveTask permanently deletes a task and its history.
func (h *Hunter) RemoveTask(ctx context.Context, id int64) error {
	return h.store.RemoveTask(ctx, id)
}

// Progress computes the seconds of active work recorded for a task.
func (h *Hunter) Progress(ctx context.Context, taskID int64) (int64, error) {
	history, err := h.store.GetHistory(ctx, []int64{taskID})
	if err != nil {
		return 0, err
	}
	return domain.CalcProgress(history), nil
}

// DisplayTask renders a task and its history in the canonical text format.
func (h *Hunter) DisplayTask(ctx context.Context, id int64) (string, error) {
	task, err := h.store.GetTaskByID(ctx, id)
	if err != nil {
		return "", err
	}
	history, err := h.store.GetHistory(ctx, []int64{id})
	if err != nil {
		return "", err
	}
	return taskformat.Render(task, history), nil
}

// ReplaceTask atomically swaps a task for the parsed result of an edit:
// the old task and its history are removed and a new task is created with
// the parsed fields and history records.
func (h *Hunter) ReplaceTask(ctx context.Context, oldID int64, parsed *taskformat.ParsedTask) (domain.Task, error) {
	if _, err := h.store.GetTaskByID(ctx, oldID); err != nil {
		return domain.Task{}, err
	}

	if err := h.store.RemoveTask(ctx, oldID); err != nil {
		return domain.Task{}, err
	}

	task, err := h.createTask(ctx, parsed.Name, parsed.Estimate, parsed.Description, parsed.Status)
	if err != nil {
		return domain.Task{}, err
	}
	for _, record := range parsed.History {
		if err := h.store.InsertHistory(ctx, task.ID, record.IsStart, record.Time); err != nil {
			return domain.Task{}, err
		}
	}

	return task, nil
}

func (h *Hunter) now() int64 {
	return timeNow().Unix()
}
