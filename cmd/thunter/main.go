package main

import (
	"fmt"
	"os"

	"task-hunter/internal/cli"
	"task-hunter/internal/config"
	"task-hunter/internal/errors"
	"task-hunter/internal/logging"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading configuration: %v\n", err)
		os.Exit(1)
	}

	root := cli.NewRootCommand(cfg, os.Stdout, os.Stdin)
	if err := root.Execute(); err != nil {
		if logging.DebugEnabled() {
			fmt.Fprintf(os.Stderr, "Error: %+v\n", err)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(errors.ExitStatus(err))
	}
}
