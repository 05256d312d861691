package self

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/creativeprojects/go-selfupdate"
	"github.com/urfave/cli/v2"

	"github.com/nightconcept/cargo-project/internal/cli/cliutil"
)

// DefaultSource is the GitHub repository releases are fetched from.
const DefaultSource = "nightconcept/cargo-project"

// NewSelfCommand creates a new command for self-management.
func NewSelfCommand() *cli.Command {
	return &cli.Command{
		Name:  "self",
		Usage: "Manage the cargo-project CLI application itself",
		Subcommands: []*cli.Command{
			{
				Name:  "update",
				Usage: "Update cargo-project to the latest version",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:    "yes",
						Aliases: []string{"y"},
						Usage:   "Automatically confirm the update",
					},
					&cli.BoolFlag{
						Name:  "check",
						Usage: "Check for available updates without installing",
					},
					&cli.StringFlag{
						Name:  "source",
						Usage: "Specify a custom GitHub update source as 'owner/repo' (e.g., '" + DefaultSource + "')",
					},
					cliutil.VerboseFlag,
				},
				Action: updateAction,
			},
		},
	}
}

// parseVersion accepts versions written as vX.Y.Z or X.Y.Z.
func parseVersion(version string) (*semver.Version, error) {
	v, err := semver.NewVersion(strings.TrimPrefix(version, "v"))
	if err != nil {
		return nil, fmt.Errorf("error parsing current version '%s': %w. Ensure version is like vX.Y.Z or X.Y.Z", version, err)
	}
	return v, nil
}

// parseSource validates an 'owner/repo' slug. An empty flag selects DefaultSource.
func parseSource(source string) (string, error) {
	if source == "" {
		return DefaultSource, nil
	}
	parts := strings.Split(source, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", fmt.Errorf("invalid --source format. Expected 'owner/repo', got: %s", source)
	}
	return source, nil
}

func updateAction(c *cli.Context) error {
	logger := cliutil.Logger(c)
	w := c.App.Writer
	currentVersionStr := c.App.Version

	currentSemVer, err := parseVersion(currentVersionStr)
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	logger.Debug("current version", "version", currentSemVer.String())

	repoSlug, err := parseSource(c.String("source"))
	if err != nil {
		return cli.Exit(err.Error(), 1)
	}
	logger.Debug("update source", "repository", repoSlug)

	ghSource, err := selfupdate.NewGitHubSource(selfupdate.GitHubConfig{})
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error creating GitHub source: %v", err), 1)
	}

	updater, err := selfupdate.NewUpdater(selfupdate.Config{
		Source: ghSource,
	})
	if err != nil {
		return cli.Exit(fmt.Sprintf("Failed to initialize updater: %v", err), 1)
	}

	latestRelease, found, err := updater.DetectLatest(c.Context, selfupdate.ParseSlug(repoSlug))
	if err != nil {
		return cli.Exit(fmt.Sprintf("Error detecting latest version: %v", err), 1)
	}
	if !found {
		_, _ = fmt.Fprintf(w, "Current version %s is already the latest.\n", currentVersionStr)
		return nil
	}
	logger.Debug("latest release", "version", latestRelease.Version(), "url", latestRelease.URL, "asset", latestRelease.AssetURL)

	if !latestRelease.GreaterThan(currentSemVer.String()) {
		_, _ = fmt.Fprintf(w, "Current version %s is already the latest or newer.\n", currentVersionStr)
		return nil
	}

	_, _ = fmt.Fprintf(w, "New version available: %s (current: %s)\n", latestRelease.Version(), currentVersionStr)
	if latestRelease.ReleaseNotes != "" {
		_, _ = fmt.Fprintf(w, "Release Notes:\n%s\n", latestRelease.ReleaseNotes)
	}

	if c.Bool("check") {
		return nil
	}

	if !c.Bool("yes") {
		_, _ = fmt.Fprint(w, "Do you want to update? (y/N): ")
		input, _ := bufio.NewReader(c.App.Reader).ReadString('\n')
		if strings.TrimSpace(strings.ToLower(input)) != "y" {
			_, _ = fmt.Fprintln(w, "Update cancelled.")
			return nil
		}
	}

	_, _ = fmt.Fprintf(w, "Updating to %s...\n", latestRelease.Version())
	execPath, err := os.Executable()
	if err != nil {
		return cli.Exit(fmt.Sprintf("Could not get executable path: %v", err), 1)
	}
	logger.Debug("replacing executable", "path", execPath)

	if err := updater.UpdateTo(c.Context, latestRelease, execPath); err != nil {
		return cli.Exit(fmt.Sprintf("Failed to update: %v", err), 1)
	}

	_, _ = fmt.Fprintf(w, "Successfully updated to version %s.\n", latestRelease.Version())
	return nil
}
