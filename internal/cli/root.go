package cli

import (
	"io"

	"github.com/spf13/cobra"

	"task-hunter/internal/config"
	"task-hunter/internal/logging"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd *cobra.Command
	app *App
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(cfg *config.Config, out io.Writer, in io.Reader) *RootCommand {
	root := &RootCommand{
		app: NewApp(cfg, out, in),
	}

	root.cmd = &cobra.Command{
		Use:   "thunter",
		Short: "THunter - your task hunter, tracking time spent on your TODO list",
		Long: `THunter - your task hunter, tracking time spent on your TODO list!

Tasks move through four statuses: TODO, Current, In Progress and Finished.
At most one task is Current at a time; working on a task starts its clock,
stopping or switching away closes the open interval.

EXAMPLES:
  thunter init                             # Create the task database
  thunter create fix the flaky test -e 2   # Create a task with a 2 hour estimate
  thunter workon fix                       # Start working on it (prefix match)
  thunter ls                               # List open tasks with progress
  thunter stop                             # Stop the clock
  thunter finish                           # Finish the current task

CONFIGURATION:
  THUNTER_DIRECTORY                        Data directory (default: ~/.thunter)
  THUNTER_DATABASE_NAME                    Database filename (default: thunter_database.db)
  THUNTER_CONFIG                           Path to a YAML config file
  EDITOR                                   Editor used by 'thunter edit' (default: vim)
  THUNTER_SILENT                           Suppress informational output
  THUNTER_DEBUG                            Enable debug tracing`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			root.applyGlobalFlags()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()
	flags.BoolP("silent", "s", false, "Suppress informational output (overrides THUNTER_SILENT)")
	flags.BoolP("debug", "d", false, "Enable debug tracing (overrides THUNTER_DEBUG)")
}

// applyGlobalFlags folds flag values into the configuration before any
// command runs. Flags only ever turn the switches on; the environment can
// still enable them on its own.
func (r *RootCommand) applyGlobalFlags() {
	flags := r.cmd.PersistentFlags()
	if silent, _ := flags.GetBool("silent"); silent {
		r.app.config.Silent = true
	}
	if debug, _ := flags.GetBool("debug"); debug {
		r.app.config.Debug = true
	}
	if r.app.config.Debug {
		logging.Enable()
	}
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	r.cmd.AddCommand(
		r.app.newInitCommand(),
		r.app.newLsCommand(),
		r.app.newShowCommand(),
		r.app.newCreateCommand(),
		r.app.newWorkonCommand(),
		r.app.newStopCommand(),
		r.app.newFinishCommand(),
		r.app.newEstimateCommand(),
		r.app.newRestartCommand(),
		r.app.newEditCommand(),
		r.app.newRmCommand(),
	)
}
