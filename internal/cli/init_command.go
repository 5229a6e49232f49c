package cli

import (
	"os"

	"github.com/spf13/cobra"

	"task-hunter/internal/errors"
	"task-hunter/internal/repository/sqlite"
)

func (a *App) newInitCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize the thunter sqlite database",
		Long: `Initialize the thunter sqlite database.

The database file name can be set with THUNTER_DATABASE_NAME, defaults to
'thunter_database.db'. The database file lives in THUNTER_DIRECTORY,
defaults to ~/.thunter.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.runInit(cmd, force)
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "Skip the re-initialization confirmation prompt")

	return cmd
}

func (a *App) runInit(cmd *cobra.Command, force bool) error {
	a.println("Initializing THunter...")

	dbPath := a.config.DatabasePath()
	if _, err := os.Stat(dbPath); err == nil {
		if !force {
			sure := a.confirm("WARNING: Are you sure you want to re-initialize? You will lose all tasks and tracking info [yN]")
			if !sure {
				a.println("Aborting re-initialization")
				return nil
			}
		}
		a.printf("Deleting existing database: %s\n", dbPath)
		if err := os.Remove(dbPath); err != nil {
			return errors.NewInternalError("failed to delete existing database: " + err.Error())
		}
	}

	if err := os.MkdirAll(a.config.Directory, 0755); err != nil {
		return errors.NewInternalError("failed to create thunter directory: " + err.Error())
	}

	a.printf("Creating sqlite database %s\n", dbPath)
	store, err := sqlite.Open(dbPath)
	if err != nil {
		return err
	}
	defer store.Close()

	a.println("Creating tables")
	if err := store.Initialize(cmd.Context()); err != nil {
		return err
	}

	a.println("THunter initialized successfully!")
	return nil
}
