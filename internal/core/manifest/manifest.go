// Package manifest holds the typed shapes of the Cargo.toml documents the
// resolver reads: the package manifest and its workspace-root variant.
package manifest

import (
	"github.com/Masterminds/semver/v3"
)

// Manifest represents the parts of a package's Cargo.toml used here.
type Manifest struct {
	Package *PackageInfo `toml:"package"`
	Bin     []Binary     `toml:"bin"`
}

// PackageInfo holds the [package] table.
type PackageInfo struct {
	Name        string `toml:"name"`
	Version     string `toml:"version"`
	Description string `toml:"description,omitempty"`
}

// Binary is a [[bin]] target declared in the manifest.
type Binary struct {
	Name string `toml:"name"`
	Path string `toml:"path"`
}

// Version parses the declared package version. Partial versions such as
// "0.1" are accepted.
func (m *Manifest) Version() (*semver.Version, error) {
	return semver.NewVersion(m.Package.Version)
}

// WorkspaceManifest represents a Cargo.toml at the root of a workspace.
type WorkspaceManifest struct {
	Workspace *Workspace `toml:"workspace"`
}

// Workspace holds the [workspace] table.
type Workspace struct {
	Members []string `toml:"members"`
	Exclude []string `toml:"exclude,omitempty"`
}
