package main

import (
	"errors"
	"fmt"
)

// Sentinel errors for command dispatch.
var (
	ErrNoCommand      = errors.New("no command specified")
	ErrUnknownCommand = errors.New("unknown command")
	errBadFlags       = errors.New("invalid flags")
)

// run dispatches to a subcommand. Errors bubble back to main for
// exit-code mapping.
func run(args []string, deps *Dependencies) error {
	if len(args) == 0 {
		printUsage(deps.Stderr)
		return ErrNoCommand
	}

	switch args[0] {
	case "render":
		return runRender(args[1:], deps)
	case "preview":
		return runPreview(args[1:], deps)
	case "themes":
		return runThemes(args[1:], deps)
	case "version":
		fmt.Fprintf(deps.Stdout, "cv2pdf version %s\n", Version)
		return nil
	case "help", "--help", "-h":
		runHelp(args[1:], deps)
		return nil
	default:
		fmt.Fprintf(deps.Stderr, "Unknown command: %s\n\n", args[0])
		printUsage(deps.Stderr)
		return fmt.Errorf("%w: %s", ErrUnknownCommand, args[0])
	}
}
