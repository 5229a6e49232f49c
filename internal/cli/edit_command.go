package cli

import (
	"context"
	"os"
	"os/exec"
	"strings"

	"github.com/spf13/cobra"

	"task-hunter/internal/errors"
	"task-hunter/internal/taskformat"
)

func (a *App) newEditCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "edit [task]",
		Short: "Edit a task in your editor. Use with caution",
		Long: `Edit a task in your editor. Use with caution.

The task is written to a temporary file as a text block, opened in $EDITOR,
then parsed back, validated and used to replace the task. The task gets a
new ID; history is rewritten from the edited block.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runEdit(cmd.Context(), strings.Join(args, " "))
		},
	}
}

func (a *App) runEdit(ctx context.Context, identifier string) error {
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

	edited, err := a.editInEditor(display)
	if err != nil {
		return err
	}

	parsed, err := taskformat.Parse(edited)
	if err != nil {
		return err
	}

	replacement, err := hunter.ReplaceTask(ctx, task.ID, parsed)
	if err != nil {
		return err
	}

	return a.listTasks(ctx, hunter, lsOptions{all: true, startsWith: replacement.Name})
}

// editInEditor round-trips text through the configured editor via a
// temporary file.
func (a *App) editInEditor(text string) (string, error) {
	tmp, err := os.CreateTemp("", "thunter-edit-*.tmp")
	if err != nil {
		return "", errors.NewInternalError("failed to create temporary file: " + err.Error())
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(text); err != nil {
		tmp.Close()
		return "", errors.NewInternalError("failed to write temporary file: " + err.Error())
	}
	if err := tmp.Close(); err != nil {
		return "", errors.NewInternalError("failed to write temporary file: " + err.Error())
	}

	// The editor setting may carry arguments, e.g. "code --wait".
	parts := strings.Fields(a.config.Editor)
	cmd := exec.Command(parts[0], append(parts[1:], tmp.Name())...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return "", errors.NewInternalError("editor failed: " + err.Error())
	}

	data, err := os.ReadFile(tmp.Name())
	if err != nil {
		return "", errors.NewInternalError("failed to read edited file: " + err.Error())
	}
	return string(data), nil
}
