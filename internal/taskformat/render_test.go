package taskformat

import (
	"fmt"
	"testing"

	"task-hunter/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	t.Run("should render the canonical block", func(t *testing.T) {
		estimate := int64(4)
		description := "This is a test task."
		task := domain.Task{
			ID:          1,
			Name:        "Test Task",
			Estimate:    &estimate,
			Description: &description,
			Status:      domain.StatusInProgress,
		}
		history := []domain.HistoryRecord{
			{ID: 1, TaskID: 1, IsStart: true, Time: 1633036800},
			{ID: 2, TaskID: 1, IsStart: false, Time: 1633037200},
		}

		expected := "NAME: Test Task\n" +
			"ESTIMATE: 4\n" +
			"STATUS: In Progress\n" +
			"DESCRIPTION: This is a test task.\n" +
			"\n" +
			"HISTORY\n" +
			fmt.Sprintf("Start\t%s\n", domain.FormatTimestamp(1633036800)) +
			fmt.Sprintf("Stop\t%s\n", domain.FormatTimestamp(1633037200))

		assert.Equal(t, expected, Render(task, history))
	})

	t.Run("should render None for unset estimate and description", func(t *testing.T) {
		task := domain.Task{ID: 2, Name: "Bare Task", Status: domain.StatusTodo}

		expected := "NAME: Bare Task\n" +
			"ESTIMATE: None\n" +
			"STATUS: TODO\n" +
			"DESCRIPTION: None\n" +
			"\n" +
			"HISTORY\n"

		assert.Equal(t, expected, Render(task, nil))
	})
}
