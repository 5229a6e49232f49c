package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"task-hunter/internal/domain"
	"task-hunter/internal/errors"
)

func (a *App) newWorkonCommand() *cobra.Command {
	var (
		createMissing bool
		estimate      int64
		description   string
	)

	cmd := &cobra.Command{
		Use:   "workon [task]",
		Short: "Start or continue working on an unfinished task",
		Long: `Start or continue working on an unfinished task.

The task becomes Current and its clock starts; a previously Current task is
stopped and moved to In Progress. Without arguments this re-resolves the
current task.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runWorkon(cmd.Context(), strings.Join(args, " "), createMissing,
				optionalEstimate(cmd, estimate), optionalString(cmd, "description", description))
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&createMissing, "create", "c", false, "Create the task if it does not exist")
	flags.Int64VarP(&estimate, "estimate", "e", 0, "Add an estimate (in hours) when creating the task")
	flags.StringVarP(&description, "description", "d", "", "Add a description when creating the task")

	return cmd
}

func (a *App) runWorkon(ctx context.Context, identifier string, createMissing bool, estimate *int64, description *string) error {
	hunter, closeStore, err := a.openHunter()
	if err != nil {
		return err
	}
	defer closeStore()

	task, err := hunter.GetTask(ctx, identifier, domain.OpenStatuses...)
	if err != nil {
		if identifier == "" || !createMissing || !errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return err
		}
		task, err = hunter.CreateTask(ctx, identifier, estimate, description)
		if err != nil {
			return err
		}
	}

	if _, err := hunter.WorkonTask(ctx, task); err != nil {
		return err
	}

	return a.listTasks(ctx, hunter, lsOptions{open: true})
}
