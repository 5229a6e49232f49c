package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

func (a *App) newRmCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "rm TASK...",
		Short: "Remove a task and its tracking history",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRm(cmd.Context(), strings.Join(args, " "), force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "No confirmation prompt")

	return cmd
}

func (a *App) runRm(ctx context.Context, identifier string, force bool) error {
	hunter, closeStore, err := a.openHunter()
	if err != nil {
		return err
	}
	defer closeStore()

	task, err := hunter.GetTask(ctx, identifier)
	if err != nil {
		return err
	}

	sure := force
	if !sure {
		prompt := fmt.Sprintf("Are you sure you want to permanently delete %s!? [yN]",
			styleDanger.Render(task.Name))
		sure = a.confirm(prompt)
	}

	if !sure {
		a.printf("Didn't remove %s.\n", styleWarning.Render(task.Name))
		return nil
	}

	if err := hunter.RemoveTask(ctx, task.ID); err != nil {
		return err
	}
	a.printf("Removed %s!\n", styleDanger.Render(task.Name))
	return nil
}
