package cli

import (
	"context"

	"github.com/spf13/cobra"
)

func (a *App) newStopCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop working on the current task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runStop(cmd.Context())
		},
	}
}

func (a *App) runStop(ctx context.Context) error {
	hunter, closeStore, err := a.openHunter()
	if err != nil {
		return err
	}
	defer closeStore()

	stopped, err := hunter.StopCurrentTask(ctx)
	if err != nil {
		return err
	}
	if stopped == nil {
		a.println(styleWarning.Render("No current task to stop."))
		return nil
	}
	a.printf("Stopped working on %s!\n", styleWarning.Render(stopped.Name))
	return nil
}
