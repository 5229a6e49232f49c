package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"task-hunter/internal/config"
	"task-hunter/internal/logging"
	"task-hunter/internal/repository/sqlite"
	"task-hunter/internal/services"
)

// App wires command handlers to their service and output dependencies.
type App struct {
	config *config.Config
	out    io.Writer
	in     io.Reader
}

// NewApp creates a new CLI application instance
func NewApp(cfg *config.Config, out io.Writer, in io.Reader) *App {
	return &App{
		config: cfg,
		out:    out,
		in:     in,
	}
}

// openHunter opens the task database and returns the service facade plus a
// close function. It fails with a not-initialized error when the database
// has not been created yet.
func (a *App) openHunter() (*services.Hunter, func(), error) {
	dbPath := a.config.DatabasePath()
	logging.Debugf("opening task database at %s\n", dbPath)

	store, err := sqlite.OpenExisting(dbPath)
	if err != nil {
		return nil, nil, err
	}
	return services.NewHunter(store), func() { store.Close() }, nil
}

// printf writes informational output unless silent mode is on.
func (a *App) printf(format string, args ...interface{}) {
	if a.config.Silent {
		return
	}
	fmt.Fprintf(a.out, format, args...)
}

// println writes informational output unless silent mode is on.
func (a *App) println(args ...interface{}) {
	if a.config.Silent {
		return
	}
	fmt.Fprintln(a.out, args...)
}

// confirm prompts the user and returns true only on a "y" answer.
// Prompts bypass silent mode: a confirmation the user cannot see is a trap.
func (a *App) confirm(prompt string) bool {
	fmt.Fprint(a.out, prompt+" ")
	reader := bufio.NewReader(a.in)
	answer, err := reader.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(answer), "y")
}
