// Package cliutil holds the pieces shared by the CLI commands: logging
// setup and the mapping of resolution errors onto exit codes.
package cliutil

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/nightconcept/cargo-project/internal/core/platform"
	"github.com/nightconcept/cargo-project/internal/core/project"
)

// VerboseFlag enables debug output about each resolution step.
var VerboseFlag = &cli.BoolFlag{
	Name:  "verbose",
	Usage: "Enable verbose output",
}

// New returns a text logger writing to w. Debug records are emitted only
// when verbose is set.
func New(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

// Logger returns the logger for a command invocation, honouring its
// --verbose flag.
func Logger(c *cli.Context) *slog.Logger {
	return New(c.App.ErrWriter, c.Bool(VerboseFlag.Name))
}

// ExitError turns a resolution failure for path into a cli exit error with a
// message suited to its class.
func ExitError(path string, err error) error {
	switch {
	case errors.Is(err, project.ErrNotAProject):
		return cli.Exit(fmt.Sprintf("Error: %s is not inside a Cargo project.", path), 1)
	case errors.Is(err, project.ErrConfigInvalid), errors.Is(err, platform.ErrUnknownTarget),
		errors.Is(err, project.ErrInvalidArtifact):
		return cli.Exit(fmt.Sprintf("Error: %v", err), 1)
	default:
		return cli.Exit(fmt.Sprintf("Error resolving project at %s: %v", path, err), 1)
	}
}
