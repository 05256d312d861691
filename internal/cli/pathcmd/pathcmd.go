package pathcmd

import (
	"fmt"

	"github.com/urfave/cli/v2"

	"github.com/nightconcept/cargo-project/internal/cli/cliutil"
	"github.com/nightconcept/cargo-project/internal/core/platform"
	"github.com/nightconcept/cargo-project/internal/core/project"
)

// PathCmd prints where Cargo would place a build artifact.
var PathCmd = &cli.Command{
	Name:  "path",
	Usage: "Prints the path of a build artifact of the Cargo project",
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:  "bin",
			Usage: "Name of the binary artifact",
		},
		&cli.StringFlag{
			Name:  "example",
			Usage: "Name of the example artifact",
		},
		&cli.BoolFlag{
			Name:  "lib",
			Usage: "Use the library artifact",
		},
		&cli.BoolFlag{
			Name:  "release",
			Usage: "Use the release profile instead of dev",
		},
		&cli.StringFlag{
			Name:  "target",
			Usage: "Target triple to build for (defaults to the project's build.target)",
		},
		&cli.StringFlag{
			Name:  "host",
			Usage: "Host triple used to classify the platform when no target is set",
			Value: platform.HostTriple(),
		},
		&cli.BoolFlag{
			Name:  "rustc",
			Usage: "Ask rustc for target attributes instead of the built-in triple table",
		},
		&cli.StringFlag{
			Name:    "dir",
			Aliases: []string{"C"},
			Usage:   "Path inside the Cargo project",
			Value:   ".",
		},
		cliutil.VerboseFlag,
	},
	Action: func(c *cli.Context) error {
		dir := c.String("dir")

		options := []project.Option{project.WithLogger(cliutil.Logger(c))}
		if c.Bool("rustc") {
			options = append(options, project.WithPlatform(platform.NewRustc("")))
		}
		proj, err := project.NewResolver(options...).Query(dir)
		if err != nil {
			return cliutil.ExitError(dir, err)
		}

		artifact, err := selectArtifact(c, proj)
		if err != nil {
			return err
		}

		profile := project.Dev
		if c.Bool("release") {
			profile = project.Release
		}

		path, err := proj.Path(c.Context, artifact, profile, c.String("target"), c.String("host"))
		if err != nil {
			return cliutil.ExitError(dir, err)
		}
		_, _ = fmt.Fprintln(c.App.Writer, path)
		return nil
	},
}

// selectArtifact picks the artifact named by the flags. Without a flag the
// project's only binary is used.
func selectArtifact(c *cli.Context, proj *project.Project) (project.Artifact, error) {
	var selected []project.Artifact
	if c.IsSet("bin") {
		selected = append(selected, project.Bin(c.String("bin")))
	}
	if c.IsSet("example") {
		selected = append(selected, project.Example(c.String("example")))
	}
	if c.Bool("lib") {
		selected = append(selected, project.Lib())
	}

	switch len(selected) {
	case 1:
		return selected[0], nil
	case 0:
		binaries := proj.Binaries()
		if len(binaries) != 1 {
			return project.Artifact{}, cli.Exit(fmt.Sprintf("Error: %s has %d binaries; choose one with --bin, --example or --lib.", proj.Name(), len(binaries)), 1)
		}
		return project.Bin(binaries[0].Name), nil
	default:
		return project.Artifact{}, cli.Exit("Error: --bin, --example and --lib are mutually exclusive.", 1)
	}
}
