package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/nightconcept/cargo-project/internal/cli/pathcmd"
	"github.com/nightconcept/cargo-project/internal/cli/query"
	"github.com/nightconcept/cargo-project/internal/cli/self"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "v0.1.0"

func main() {
	app := &cli.App{
		Name:    "cargo-project",
		Usage:   "Inspect Cargo projects and locate their build artifacts",
		Version: version,
		Action: func(c *cli.Context) error {
			_ = cli.ShowAppHelp(c)
			return nil
		},
		Commands: []*cli.Command{
			query.QueryCmd,
			pathcmd.PathCmd,
			self.NewSelfCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
