package services

import (
	"context"
	"path/filepath"
	"strconv"
	"testing"
	"time"

	"task-hunter/internal/domain"
	"task-hunter/internal/errors"
	"task-hunter/internal/repository/sqlite"
	"task-hunter/internal/taskformat"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHunter(t *testing.T) *Hunter {
	t.Helper()
	store, err := sqlite.Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	require.NoError(t, store.Initialize(context.Background()))
	return NewHunter(store)
}

func fixClock(t *testing.T, at time.Time) {
	t.Helper()
	originalNow := timeNow
	timeNow = func() time.Time { return at }
	t.Cleanup(func() { timeNow = originalNow })
}

func countCurrent(t *testing.T, hunter *Hunter) int {
	t.Helper()
	tasks, err := hunter.GetTasks(context.Background(), []domain.Status{domain.StatusCurrent}, "", "")
	require.NoError(t, err)
	return len(tasks)
}

func TestHunter_CreateTask(t *testing.T) {
	t.Run("should create a TODO task", func(t *testing.T) {
		hunter := newTestHunter(t)

		task, err := hunter.CreateTask(context.Background(), "a new task", nil, nil)

		require.NoError(t, err)
		assert.Equal(t, domain.StatusTodo, task.Status)
		assert.Equal(t, "a new task", task.Name)
	})

	t.Run("should reject an empty name", func(t *testing.T) {
		hunter := newTestHunter(t)

		_, err := hunter.CreateTask(context.Background(), "   ", nil, nil)

		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
	})

	t.Run("should reject a non-positive estimate", func(t *testing.T) {
		hunter := newTestHunter(t)
		estimate := int64(0)

		_, err := hunter.CreateTask(context.Background(), "a task", &estimate, nil)

		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
	})
}

func TestHunter_Workon(t *testing.T) {
	t.Run("should make the target task current with a start record", func(t *testing.T) {
		hunter := newTestHunter(t)
		fixClock(t, time.Unix(5000, 0))
		created, err := hunter.CreateTask(context.Background(), "a task", nil, nil)
		require.NoError(t, err)

		task, err := hunter.Workon(context.Background(), "a task")

		require.NoError(t, err)
		assert.True(t, created.Equal(task))
		assert.Equal(t, domain.StatusCurrent, task.Status)

		history, err := hunter.GetHistory(context.Background(), []int64{task.ID})
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.True(t, history[0].IsStart)
		assert.Equal(t, int64(5000), history[0].Time)
	})

	t.Run("should stop the previous current task", func(t *testing.T) {
		hunter := newTestHunter(t)
		fixClock(t, time.Unix(5000, 0))
		first, err := hunter.CreateTask(context.Background(), "first task", nil, nil)
		require.NoError(t, err)
		second, err := hunter.CreateTask(context.Background(), "second task", nil, nil)
		require.NoError(t, err)

		_, err = hunter.Workon(context.Background(), "first task")
		require.NoError(t, err)
		_, err = hunter.Workon(context.Background(), "second task")
		require.NoError(t, err)

		firstAfter, err := hunter.GetTask(context.Background(), "first task")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusInProgress, firstAfter.Status)

		firstHistory, err := hunter.GetHistory(context.Background(), []int64{first.ID})
		require.NoError(t, err)
		require.Len(t, firstHistory, 2)
		assert.True(t, firstHistory[0].IsStart)
		assert.False(t, firstHistory[1].IsStart)

		secondHistory, err := hunter.GetHistory(context.Background(), []int64{second.ID})
		require.NoError(t, err)
		require.Len(t, secondHistory, 1)
		assert.True(t, secondHistory[0].IsStart)
	})

	t.Run("should keep at most one current task across many transitions", func(t *testing.T) {
		hunter := newTestHunter(t)
		fixClock(t, time.Unix(5000, 0))
		names := []string{"task one", "task two", "task three"}
		for _, name := range names {
			_, err := hunter.CreateTask(context.Background(), name, nil, nil)
			require.NoError(t, err)
		}

		sequence := []string{"task one", "task two", "task one", "task three", "task three", "task two"}
		for _, name := range sequence {
			_, err := hunter.Workon(context.Background(), name)
			require.NoError(t, err)
			assert.Equal(t, 1, countCurrent(t, hunter))
		}
	})

	t.Run("should be a no-op when the task is already current", func(t *testing.T) {
		hunter := newTestHunter(t)
		fixClock(t, time.Unix(5000, 0))
		created, err := hunter.CreateTask(context.Background(), "a task", nil, nil)
		require.NoError(t, err)

		_, err = hunter.Workon(context.Background(), "a task")
		require.NoError(t, err)
		task, err := hunter.Workon(context.Background(), "a task")
		require.NoError(t, err)

		assert.Equal(t, domain.StatusCurrent, task.Status)
		history, err := hunter.GetHistory(context.Background(), []int64{created.ID})
		require.NoError(t, err)
		assert.Len(t, history, 1)
	})

	t.Run("should propagate not found errors", func(t *testing.T) {
		hunter := newTestHunter(t)

		_, err := hunter.Workon(context.Background(), "999")

		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	})
}

func TestHunter_StopCurrentTask(t *testing.T) {
	t.Run("should return nil when no task is current", func(t *testing.T) {
		hunter := newTestHunter(t)

		stopped, err := hunter.StopCurrentTask(context.Background())

		require.NoError(t, err)
		assert.Nil(t, stopped)
	})

	t.Run("should stop the current task and move it to In Progress", func(t *testing.T) {
		hunter := newTestHunter(t)
		fixClock(t, time.Unix(5000, 0))
		created, err := hunter.CreateTask(context.Background(), "a task", nil, nil)
		require.NoError(t, err)
		_, err = hunter.Workon(context.Background(), "a task")
		require.NoError(t, err)

		stopped, err := hunter.StopCurrentTask(context.Background())

		require.NoError(t, err)
		require.NotNil(t, stopped)
		assert.True(t, created.Equal(*stopped))
		assert.Equal(t, domain.StatusInProgress, stopped.Status)

		history, err := hunter.GetHistory(context.Background(), []int64{created.ID})
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.False(t, history[1].IsStart)
	})
}

func TestHunter_FinishTask(t *testing.T) {
	t.Run("should close the open interval before finishing a current task", func(t *testing.T) {
		hunter := newTestHunter(t)
		fixClock(t, time.Unix(5000, 0))
		created, err := hunter.CreateTask(context.Background(), "a task", nil, nil)
		require.NoError(t, err)
		_, err = hunter.Workon(context.Background(), "a task")
		require.NoError(t, err)

		fixClock(t, time.Unix(5600, 0))
		require.NoError(t, hunter.FinishTask(context.Background(), created.ID))

		task, err := hunter.GetTask(context.Background(), "a task")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusFinished, task.Status)

		history, err := hunter.GetHistory(context.Background(), []int64{created.ID})
		require.NoError(t, err)
		require.Len(t, history, 2)
		assert.False(t, history[1].IsStart)
		assert.Equal(t, int64(5600), history[1].Time)
	})

	t.Run("should finish a TODO task without touching history", func(t *testing.T) {
		hunter := newTestHunter(t)
		created, err := hunter.CreateTask(context.Background(), "a task", nil, nil)
		require.NoError(t, err)

		require.NoError(t, hunter.FinishTask(context.Background(), created.ID))

		task, err := hunter.GetTask(context.Background(), "a task")
		require.NoError(t, err)
		assert.Equal(t, domain.StatusFinished, task.Status)

		history, err := hunter.GetHistory(context.Background(), []int64{created.ID})
		require.NoError(t, err)
		assert.Empty(t, history)
	})

	t.Run("should be a no-op on an already finished task", func(t *testing.T) {
		hunter := newTestHunter(t)
		fixClock(t, time.Unix(5000, 0))
		created, err := hunter.CreateTask(context.Background(), "a task", nil, nil)
		require.NoError(t, err)
		_, err = hunter.Workon(context.Background(), "a task")
		require.NoError(t, err)
		require.NoError(t, hunter.FinishTask(context.Background(), created.ID))

		before, err := hunter.GetTask(context.Background(), "a task")
		require.NoError(t, err)

		require.NoError(t, hunter.FinishTask(context.Background(), created.ID))

		after, err := hunter.GetTask(context.Background(), "a task")
		require.NoError(t, err)
		assert.Equal(t, before.LastModified, after.LastModified)

		history, err := hunter.GetHistory(context.Background(), []int64{created.ID})
		require.NoError(t, err)
		assert.Len(t, history, 2)
	})
}

func TestHunter_Restart(t *testing.T) {
	t.Run("should continue the history of a finished task", func(t *testing.T) {
		hunter := newTestHunter(t)
		fixClock(t, time.Unix(5000, 0))
		created, err := hunter.CreateTask(context.Background(), "a task", nil, nil)
		require.NoError(t, err)
		_, err = hunter.Workon(context.Background(), "a task")
		require.NoError(t, err)
		require.NoError(t, hunter.FinishTask(context.Background(), created.ID))

		fixClock(t, time.Unix(6000, 0))
		task, err := hunter.Restart(context.Background(), "a task")

		require.NoError(t, err)
		assert.Equal(t, domain.StatusCurrent, task.Status)

		history, err := hunter.GetHistory(context.Background(), []int64{created.ID})
		require.NoError(t, err)
		require.Len(t, history, 3)
		assert.True(t, history[2].IsStart)
		assert.Equal(t, int64(6000), history[2].Time)
	})

	t.Run("should only match finished tasks", func(t *testing.T) {
		hunter := newTestHunter(t)
		_, err := hunter.CreateTask(context.Background(), "open task", nil, nil)
		require.NoError(t, err)

		_, err = hunter.Restart(context.Background(), "open task")

		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	})
}

func TestHunter_EstimateTask(t *testing.T) {
	t.Run("should overwrite the estimate", func(t *testing.T) {
		hunter := newTestHunter(t)
		created, err := hunter.CreateTask(context.Background(), "a task", nil, nil)
		require.NoError(t, err)

		require.NoError(t, hunter.EstimateTask(context.Background(), created.ID, 8))

		task, err := hunter.GetTask(context.Background(), "a task")
		require.NoError(t, err)
		require.NotNil(t, task.Estimate)
		assert.Equal(t, int64(8), *task.Estimate)
	})

	t.Run("should reject non-positive hours", func(t *testing.T) {
		hunter := newTestHunter(t)
		created, err := hunter.CreateTask(context.Background(), "a task", nil, nil)
		require.NoError(t, err)

		err = hunter.EstimateTask(context.Background(), created.ID, 0)

		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeValidation))
	})
}

func TestHunter_Progress(t *testing.T) {
	t.Run("should total closed intervals from workon and stop", func(t *testing.T) {
		hunter := newTestHunter(t)
		created, err := hunter.CreateTask(context.Background(), "a task", nil, nil)
		require.NoError(t, err)

		fixClock(t, time.Unix(1000, 0))
		_, err = hunter.Workon(context.Background(), "a task")
		require.NoError(t, err)

		fixClock(t, time.Unix(1100, 0))
		_, err = hunter.StopCurrentTask(context.Background())
		require.NoError(t, err)

		progress, err := hunter.Progress(context.Background(), created.ID)
		require.NoError(t, err)
		assert.Equal(t, int64(100), progress)
	})
}

func TestHunter_DisplayAndReplace(t *testing.T) {
	t.Run("should round trip a task through the text format", func(t *testing.T) {
		hunter := newTestHunter(t)
		fixClock(t, time.Unix(1_633_036_800, 0))
		estimate := int64(4)
		description := "a description"
		created, err := hunter.CreateTask(context.Background(), "editable task", &estimate, &description)
		require.NoError(t, err)
		_, err = hunter.Workon(context.Background(), "editable task")
		require.NoError(t, err)

		display, err := hunter.DisplayTask(context.Background(), created.ID)
		require.NoError(t, err)

		parsed, err := taskformat.Parse(display)
		require.NoError(t, err)
		assert.Equal(t, created.Name, parsed.Name)
		assert.Equal(t, domain.StatusCurrent, parsed.Status)

		replacement, err := hunter.ReplaceTask(context.Background(), created.ID, parsed)
		require.NoError(t, err)
		assert.NotEqual(t, created.ID, replacement.ID)
		assert.Equal(t, created.Name, replacement.Name)
		assert.Equal(t, domain.StatusCurrent, replacement.Status)

		_, err = hunter.GetTask(context.Background(), strconv.FormatInt(created.ID, 10))
		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

		history, err := hunter.GetHistory(context.Background(), []int64{replacement.ID})
		require.NoError(t, err)
		require.Len(t, history, 1)
		assert.True(t, history[0].IsStart)
		assert.Equal(t, int64(1_633_036_800), history[0].Time)
	})

	t.Run("should fail to replace a missing task", func(t *testing.T) {
		hunter := newTestHunter(t)

		_, err := hunter.ReplaceTask(context.Background(), 999, &taskformat.ParsedTask{
			Name:   "ghost",
			Status: domain.StatusTodo,
		})

		require.Error(t, err)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	})
}
