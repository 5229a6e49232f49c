package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

func (a *App) newShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show [task]",
		Short: "Display a task",
		Long:  "Display a task as a text block. Defaults to the current task if there is one.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runShow(cmd.Context(), strings.Join(args, " "))
		},
	}
}

func (a *App) runShow(ctx context.Context, identifier string) error {
	hunter, closeStore, err := a.openHunter()
	if err != nil {
		return err
	}
	defer closeStore()

	task, err := hunter.GetTask(ctx, identifier)
	if err != nil {
		return err
	}

	display, err := hunter.DisplayTask(ctx, task.ID)
	if err != nil {
		return err
	}
	a.printf("%s", display)
	return nil
}
