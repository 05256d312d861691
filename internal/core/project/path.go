package project

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
)

// ArtifactKind distinguishes the build artifacts Cargo produces.
type ArtifactKind int

const (
	// KindBin is a binary target (--bin).
	KindBin ArtifactKind = iota
	// KindExample is an example target (--example).
	KindExample
	// KindLib is the library target (--lib).
	KindLib
)

// Artifact identifies a build artifact.
type Artifact struct {
	Kind ArtifactKind
	Name string
}

// Bin returns the binary artifact called name.
func Bin(name string) Artifact {
	return Artifact{Kind: KindBin, Name: name}
}

// Example returns the example artifact called name.
func Example(name string) Artifact {
	return Artifact{Kind: KindExample, Name: name}
}

// Lib returns the project's library artifact.
func Lib() Artifact {
	return Artifact{Kind: KindLib}
}

// Profile is a compilation profile.
type Profile int

const (
	// Dev is the development profile.
	Dev Profile = iota
	// Release is the release profile (--release).
	Release
)

// IsRelease reports whether this is the release profile.
func (p Profile) IsRelease() bool {
	return p == Release
}

// String returns the directory name Cargo uses for the profile.
func (p Profile) String() string {
	if p == Release {
		return "release"
	}
	return "debug"
}

// Path returns where Cargo places artifact when building with profile.
//
// target is the compilation target given with --target, or "". host is the
// triple of the host; it is only used to classify the platform when neither
// target nor the project's default target is set, and never appears in the
// returned path. The path is a prediction: nothing is checked on disk.
func (p *Project) Path(ctx context.Context, artifact Artifact, profile Profile, target, host string) (string, error) {
	if artifact.Kind == KindBin || artifact.Kind == KindExample {
		if err := checkArtifactName(artifact.Name); err != nil {
			return "", err
		}
	}

	path := p.targetDir

	if target == "" {
		target = p.target
	}
	if target != "" {
		path = filepath.Join(path, target)
	}

	triple := target
	if triple == "" {
		triple = host
	}
	cfg, err := p.platform.Lookup(ctx, triple)
	if err != nil {
		return "", err
	}

	path = filepath.Join(path, profile.String())

	switch artifact.Kind {
	case KindBin, KindExample:
		if artifact.Kind == KindExample {
			path = filepath.Join(path, "examples")
		}
		path = filepath.Join(path, artifact.Name)

		if cfg.IsWasm() {
			path = setExtension(path, "wasm")
		} else if cfg.IsWindows() {
			path = setExtension(path, "exe")
		}
	case KindLib:
		path = filepath.Join(path, fmt.Sprintf("lib%s.rlib", strings.ReplaceAll(p.name, "-", "_")))
	default:
		return "", fmt.Errorf("unknown artifact kind %d", artifact.Kind)
	}

	return path, nil
}

func checkArtifactName(name string) error {
	switch {
	case name == "", name == ".", name == "..":
		return fmt.Errorf("%w: %q", ErrInvalidArtifact, name)
	case strings.ContainsRune(name, '/'), strings.ContainsRune(name, filepath.Separator):
		return fmt.Errorf("%w: %q contains a path separator", ErrInvalidArtifact, name)
	}
	return nil
}

// setExtension replaces the extension of the last path element with ext,
// or appends ext when there is none.
func setExtension(path, ext string) string {
	base := filepath.Base(path)
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		path = path[:len(path)-len(base)+i]
	}
	return path + "." + ext
}
