package cli

import (
	"context"
	"strings"

	"github.com/spf13/cobra"
)

func (a *App) newCreateCommand() *cobra.Command {
	var (
		estimate    int64
		description string
	)

	cmd := &cobra.Command{
		Use:   "create NAME...",
		Short: "Create a new task",
		Long:  "Create a new task. All arguments are joined into the task name.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runCreate(cmd.Context(), strings.Join(args, " "),
				optionalEstimate(cmd, estimate), optionalString(cmd, "description", description))
		},
	}

	cmd.Flags().Int64VarP(&estimate, "estimate", "e", 0, "Add an estimate (in hours)")
	cmd.Flags().StringVarP(&description, "description", "d", "", "Add a description")

	return cmd
}

func (a *App) runCreate(ctx context.Context, name string, estimate *int64, description *string) error {
	hunter, closeStore, err := a.openHunter()
	if err != nil {
		return err
	}
	defer closeStore()

	task, err := hunter.CreateTask(ctx, name, estimate, description)
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

// optionalEstimate returns the estimate flag value only when the flag was
// given, so an absent flag stays an absent estimate.
func optionalEstimate(cmd *cobra.Command, value int64) *int64 {
	if !cmd.Flags().Changed("estimate") {
		return nil
	}
	return &value
}

func optionalString(cmd *cobra.Command, name, value string) *string {
	if !cmd.Flags().Changed(name) {
		return nil
	}
	return &value
}
