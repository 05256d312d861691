// Package project resolves the Cargo project that encloses a path and
// predicts where Cargo places the project's build artifacts.
package project

import (
	"errors"
	"slices"

	"github.com/Masterminds/semver/v3"

	"github.com/nightconcept/cargo-project/internal/core/manifest"
	"github.com/nightconcept/cargo-project/internal/core/platform"
)

var (
	// ErrNotAProject means no Cargo.toml exists in the queried directory or
	// any of its parents.
	ErrNotAProject = errors.New("not a Cargo project")
	// ErrConfigInvalid means a Cargo.toml or .cargo/config exists but does
	// not have the expected shape.
	ErrConfigInvalid = errors.New("invalid configuration")
	// ErrIO means a filesystem operation failed.
	ErrIO = errors.New("i/o failure")
	// ErrInvalidGlobPattern means a workspace member pattern could not be
	// expanded.
	ErrInvalidGlobPattern = errors.New("invalid workspace member pattern")
	// ErrInvalidArtifact means a binary or example name is empty or is not a
	// single path element.
	ErrInvalidArtifact = errors.New("invalid artifact name")
)

// Project is a resolved Cargo project. It is immutable once returned by
// Resolver.Query.
type Project struct {
	name          string
	version       string
	semver        *semver.Version
	description   string
	target        string
	targetDir     string
	root          string
	manifestPath  string
	workspaceRoot string
	binaries      []manifest.Binary

	platform platform.Resolver
}

// Name returns the name of the project (package.name).
func (p *Project) Name() string {
	return p.name
}

// Version returns package.version as written in the manifest.
func (p *Project) Version() string {
	return p.version
}

// SemVer returns package.version parsed as a semantic version, or nil when
// the version is missing or does not parse.
func (p *Project) SemVer() *semver.Version {
	return p.semver
}

// Description returns package.description, if any.
func (p *Project) Description() string {
	return p.description
}

// Target returns the default compilation target declared in .cargo/config,
// or "" when none is declared.
func (p *Project) Target() string {
	return p.target
}

// TargetDir returns the absolute directory where build artifacts are placed.
func (p *Project) TargetDir() string {
	return p.targetDir
}

// Root returns the directory that contains the project's Cargo.toml.
func (p *Project) Root() string {
	return p.root
}

// Manifest returns the path to the project's Cargo.toml.
func (p *Project) Manifest() string {
	return p.manifestPath
}

// WorkspaceRoot returns the root of the enclosing workspace, or "" when the
// project is not a workspace member.
func (p *Project) WorkspaceRoot() string {
	return p.workspaceRoot
}

// Binaries returns the declared [[bin]] targets. When none are declared and
// src/main.rs exists, the inferred default binary is returned instead.
func (p *Project) Binaries() []manifest.Binary {
	return slices.Clone(p.binaries)
}
