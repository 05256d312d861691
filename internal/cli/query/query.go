package query

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/urfave/cli/v2"

	"github.com/nightconcept/cargo-project/internal/cli/cliutil"
	"github.com/nightconcept/cargo-project/internal/core/project"
)

// QueryCmd defines the structure for the 'query' command.
var QueryCmd = &cli.Command{
	Name:      "query",
	Aliases:   []string{"q"},
	Usage:     "Displays information about the Cargo project containing a path",
	ArgsUsage: "[path]",
	Flags: []cli.Flag{
		cliutil.VerboseFlag,
	},
	Action: func(c *cli.Context) error {
		path := "."
		if c.NArg() > 0 {
			path = c.Args().First()
		}

		resolver := project.NewResolver(project.WithLogger(cliutil.Logger(c)))
		proj, err := resolver.Query(path)
		if err != nil {
			return cliutil.ExitError(path, err)
		}

		projectNameColor := color.New(color.FgMagenta, color.Bold, color.Underline).SprintFunc()
		projectVersionColor := color.New(color.FgMagenta).SprintFunc()
		projectPathColor := color.New(color.FgHiBlack, color.Bold, color.Underline).SprintFunc()
		headerColor := color.New(color.FgCyan, color.Bold).SprintFunc()
		binNameColor := color.New(color.FgWhite).SprintFunc()
		binPathColor := color.New(color.FgHiBlack).SprintFunc()

		version := proj.Version()
		if v := proj.SemVer(); v != nil {
			version = v.String()
		}

		w := c.App.Writer
		_, _ = fmt.Fprintf(w, "%s@%s %s\n", projectNameColor(proj.Name()), projectVersionColor(version), projectPathColor(proj.Root()))
		if proj.Description() != "" {
			_, _ = fmt.Fprintln(w, proj.Description())
		}
		_, _ = fmt.Fprintln(w)

		target := proj.Target()
		if target == "" {
			target = "(host)"
		}
		workspace := proj.WorkspaceRoot()
		if workspace == "" {
			workspace = "(none)"
		}
		_, _ = fmt.Fprintf(w, "%s %s\n", headerColor("manifest:  "), proj.Manifest())
		_, _ = fmt.Fprintf(w, "%s %s\n", headerColor("target dir:"), proj.TargetDir())
		_, _ = fmt.Fprintf(w, "%s %s\n", headerColor("target:    "), target)
		_, _ = fmt.Fprintf(w, "%s %s\n", headerColor("workspace: "), workspace)
		_, _ = fmt.Fprintln(w)

		_, _ = fmt.Fprintln(w, headerColor("binaries:"))
		binaries := proj.Binaries()
		if len(binaries) == 0 {
			_, _ = fmt.Fprintln(w, "No binaries found in Cargo.toml.")
			return nil
		}
		for _, bin := range binaries {
			_, _ = fmt.Fprintf(w, "%s %s\n", binNameColor(bin.Name), binPathColor(bin.Path))
		}
		return nil
	},
}
