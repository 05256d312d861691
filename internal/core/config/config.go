// Package config reads the TOML documents that describe a Cargo project:
// Cargo.toml (package and workspace variants) and .cargo/config.
package config

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/nightconcept/cargo-project/internal/core/filesystem"
	"github.com/nightconcept/cargo-project/internal/core/manifest"
)

const ManifestName = "Cargo.toml"
const TargetDirEnv = "CARGO_TARGET_DIR"
const DefaultTargetDir = "target"

// BuildConfigPaths are the locations of the build configuration relative to
// a project directory, in order of preference.
var BuildConfigPaths = []string{
	filepath.Join(".cargo", "config.toml"),
	filepath.Join(".cargo", "config"),
}

// ErrDecode marks a document that exists but does not have the expected shape.
var ErrDecode = errors.New("failed to decode")

// BuildConfig represents the parts of .cargo/config used here.
type BuildConfig struct {
	Build *Build `toml:"build"`
}

// Build holds the [build] table.
type Build struct {
	Target    string `toml:"target,omitempty"`
	TargetDir string `toml:"target-dir,omitempty"`
}

// LoadManifest reads the Cargo.toml in dirPath. The package.name key is
// required; its value may be empty.
func LoadManifest(fsys filesystem.FileSystem, dirPath string) (*manifest.Manifest, error) {
	fullPath := filepath.Join(dirPath, ManifestName)

	var m manifest.Manifest
	md, err := decodeFile(fsys, fullPath, &m)
	if err != nil {
		return nil, err
	}
	if !md.IsDefined("package", "name") {
		return nil, fmt.Errorf("%w %s: missing package.name", ErrDecode, fullPath)
	}
	return &m, nil
}

// LoadWorkspaceManifest reads the Cargo.toml in dirPath as a workspace root.
// A manifest without [workspace].members fails with ErrDecode.
func LoadWorkspaceManifest(fsys filesystem.FileSystem, dirPath string) (*manifest.WorkspaceManifest, error) {
	fullPath := filepath.Join(dirPath, ManifestName)

	var m manifest.WorkspaceManifest
	md, err := decodeFile(fsys, fullPath, &m)
	if err != nil {
		return nil, err
	}
	if !md.IsDefined("workspace", "members") {
		return nil, fmt.Errorf("%w %s: missing workspace.members", ErrDecode, fullPath)
	}
	return &m, nil
}

// LoadBuildConfig reads the build configuration file at path.
func LoadBuildConfig(fsys filesystem.FileSystem, path string) (*BuildConfig, error) {
	var cfg BuildConfig
	if _, err := decodeFile(fsys, path, &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func decodeFile(fsys filesystem.FileSystem, path string, v any) (toml.MetaData, error) {
	data, err := fsys.ReadFile(path)
	if err != nil {
		return toml.MetaData{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	md, err := toml.Decode(string(data), v)
	if err != nil {
		return toml.MetaData{}, fmt.Errorf("%w %s: %w", ErrDecode, path, err)
	}
	return md, nil
}
