package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

func (a *App) newRestartCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "restart TASK...",
		Short: "Restart a finished task (progress will continue from before)",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runRestart(cmd.Context(), strings.Join(args, " "))
		},
	}
}

func (a *App) runRestart(ctx context.Context, identifier string) error {
	hunter, closeStore, err := a.openHunter()
	if err != nil {
		return err
	}
	defer closeStore()

	if _, err := hunter.Restart(ctx, identifier); err != nil {
		return err
	}

	return a.listTasks(ctx, hunter, lsOptions{open: true})
}
