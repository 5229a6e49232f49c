package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"task-hunter/internal/domain"
)

func (a *App) newFinishCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "finish [task]",
		Short: "Finish a task (defaults to finishing the current task)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runFinish(cmd.Context(), strings.Join(args, " "))
		},
	}
}

func (a *App) runFinish(ctx context.Context, identifier string) error {
	hunter, closeStore, err := a.openHunter()
	if err != nil {
		return err
	}
	defer closeStore()

	var task *domain.Task
	if identifier != "" {
		found, err := hunter.GetTask(ctx, identifier)
		if err != nil {
			return err
		}
		task = &found
	} else {
		task, err = hunter.GetCurrentTask(ctx)
		if err != nil {
			return err
		}
	}

	if task == nil {
		a.println(styleWarning.Render("No task to finish."))
		return nil
	}

	if err := hunter.FinishTask(ctx, task.ID); err != nil {
		return err
	}
	a.printf("Finished %s!\n", styleSuccess.Render(task.Name))
	return nil
}
