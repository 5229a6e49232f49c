package cli

import (
	"context"
	"strconv"

	"github.com/spf13/cobra"

	"task-hunter/internal/domain"
	"task-hunter/internal/errors"
)

func (a *App) newEstimateCommand() *cobra.Command {
	var identifier string

	cmd := &cobra.Command{
		Use:   "estimate HOURS",
		Short: "Estimate how long a task will take",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			hours, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return errors.NewTaskValidationError("estimate must be a whole number of hours")
			}
			return a.runEstimate(cmd.Context(), hours, identifier)
		},
	}

	cmd.Flags().StringVarP(&identifier, "task-identifier", "t", "", "Estimate task by ID or name, instead of the current task")

	return cmd
}

func (a *App) runEstimate(ctx context.Context, hours int64, identifier string) error {
	hunter, closeStore, err := a.openHunter()
	if err != nil {
		return err
	}
	defer closeStore()

	var task domain.Task
	if identifier != "" {
		task, err = hunter.GetTask(ctx, identifier)
		if err != nil {
			return err
		}
	} else {
		current, err := hunter.GetCurrentTask(ctx)
		if err != nil {
			return err
		}
		if current == nil {
			return errors.NewTaskNotFoundError("No current task found to estimate. Use --task-identifier / -t to specify a task.")
		}
		task = *current
	}

	if err := hunter.EstimateTask(ctx, task.ID, hours); err != nil {
		return err
	}

	task, err = hunter.GetTask(ctx, strconv.FormatInt(task.ID, 10))
	if err != nil {
		return err
	}
	a.printf("%s estimated to take %s\n",
		styleSuccess.Render(task.Name), styleWarning.Render(task.EstimateDisplay()))
	return nil
}
