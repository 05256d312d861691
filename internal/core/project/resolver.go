package project

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/nightconcept/cargo-project/internal/core/config"
	"github.com/nightconcept/cargo-project/internal/core/filesystem"
	"github.com/nightconcept/cargo-project/internal/core/manifest"
	"github.com/nightconcept/cargo-project/internal/core/platform"
	"github.com/nightconcept/cargo-project/internal/core/search"
)

const defaultBinaryPath = "src/main.rs"

// Resolver locates Cargo projects. It holds no mutable state and may be
// shared between goroutines.
type Resolver struct {
	fs        filesystem.FileSystem
	platform  platform.Resolver
	lookupEnv func(string) (string, bool)
	logger    *slog.Logger
}

// Option configures a Resolver.
type Option func(*Resolver)

// WithFileSystem sets the filesystem used for every lookup.
func WithFileSystem(fs filesystem.FileSystem) Option {
	return func(r *Resolver) {
		r.fs = fs
	}
}

// WithPlatform sets the resolver that resolved projects use to classify
// target triples.
func WithPlatform(p platform.Resolver) Option {
	return func(r *Resolver) {
		r.platform = p
	}
}

// WithEnv replaces os.LookupEnv for reading CARGO_TARGET_DIR.
func WithEnv(lookup func(string) (string, bool)) Option {
	return func(r *Resolver) {
		r.lookupEnv = lookup
	}
}

// WithLogger sets the logger that receives debug output about each step of
// the resolution.
func WithLogger(logger *slog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a Resolver backed by the OS filesystem, the process
// environment and the built-in target triple table unless overridden.
func NewResolver(options ...Option) *Resolver {
	r := &Resolver{
		fs:        filesystem.NewOSFileSystem(),
		platform:  platform.NewTriples(),
		lookupEnv: os.LookupEnv,
		logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
	}

	for _, option := range options {
		option(r)
	}

	return r
}

// Query retrieves information about the Cargo project at path using the
// default Resolver.
func Query(path string) (*Project, error) {
	return NewResolver().Query(path)
}

// Query retrieves information about the Cargo project at path.
//
// path doesn't need to be the directory that contains Cargo.toml; it can be
// any point within the project.
func (r *Resolver) Query(path string) (*Project, error) {
	canonical, err := r.fs.Canonicalize(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}

	root, _, found := search.Up(r.fs, canonical, config.ManifestName)
	if !found {
		return nil, fmt.Errorf("%w: no %s in %s or any parent directory", ErrNotAProject, config.ManifestName, canonical)
	}
	r.logger.Debug("found project root", "path", canonical, "root", root)

	m, err := config.LoadManifest(r.fs, root)
	if err != nil {
		return nil, classify(err)
	}

	target, targetDir, err := r.buildSettings(root)
	if err != nil {
		return nil, err
	}

	workspaceRoot, err := r.findWorkspace(root)
	if err != nil {
		return nil, err
	}

	if targetDir == "" && workspaceRoot != "" {
		targetDir = filepath.Join(workspaceRoot, config.DefaultTargetDir)
	}
	if targetDir == "" {
		targetDir = filepath.Join(root, config.DefaultTargetDir)
	}
	r.logger.Debug("resolved target directory", "root", root, "target_dir", targetDir, "target", target)

	return &Project{
		name:          m.Package.Name,
		version:       m.Package.Version,
		semver:        r.version(m),
		description:   m.Package.Description,
		target:        target,
		targetDir:     targetDir,
		root:          root,
		manifestPath:  filepath.Join(root, config.ManifestName),
		workspaceRoot: workspaceRoot,
		binaries:      r.binaries(root, m),
		platform:      r.platform,
	}, nil
}

// buildSettings applies CARGO_TARGET_DIR and the nearest .cargo/config.
// CARGO_TARGET_DIR takes precedence over build.target-dir.
func (r *Resolver) buildSettings(root string) (target, targetDir string, err error) {
	if value, ok := r.lookupEnv(config.TargetDirEnv); ok && value != "" {
		targetDir, err = r.absolute(value)
		if err != nil {
			return "", "", err
		}
		r.logger.Debug("target directory from environment", "env", config.TargetDirEnv, "target_dir", targetDir)
	}

	dir, name, found := search.Up(r.fs, root, config.BuildConfigPaths...)
	if !found {
		return "", targetDir, nil
	}

	path := filepath.Join(dir, name)
	cfg, err := config.LoadBuildConfig(r.fs, path)
	if err != nil {
		return "", "", classify(err)
	}
	r.logger.Debug("loaded build config", "path", path)

	if cfg.Build == nil {
		return "", targetDir, nil
	}

	target = cfg.Build.Target
	if targetDir == "" && cfg.Build.TargetDir != "" {
		targetDir = cfg.Build.TargetDir
		if !filepath.IsAbs(targetDir) {
			// Relative to the directory that holds .cargo/.
			targetDir = filepath.Join(dir, targetDir)
		}
		targetDir = filepath.Clean(targetDir)
	}
	return target, targetDir, nil
}

func (r *Resolver) absolute(path string) (string, error) {
	if filepath.IsAbs(path) {
		return filepath.Clean(path), nil
	}
	wd, err := r.fs.Getwd()
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrIO, err)
	}
	return filepath.Join(wd, path), nil
}

// workspaceStatus is the outcome of probing one ancestor Cargo.toml.
type workspaceStatus int

const (
	// notWorkspace: the manifest has no [workspace].members.
	notWorkspace workspaceStatus = iota
	// otherWorkspace: a workspace that does not list the project.
	otherWorkspace
	// memberOf: the project is a member of this workspace.
	memberOf
)

// findWorkspace walks up from the parent of root and returns the first
// ancestor whose workspace members include root, or "" if there is none.
// An ancestor with a Cargo.toml that is not a matching workspace does not
// end the search.
func (r *Resolver) findWorkspace(root string) (string, error) {
	cwd := filepath.Dir(root)
	if cwd == root {
		return "", nil
	}

	for {
		r.logger.Debug("workspace search", "cwd", cwd)
		outerRoot, _, found := search.Up(r.fs, cwd, config.ManifestName)
		if !found {
			return "", nil
		}

		status, err := r.probeWorkspace(outerRoot, root)
		if err != nil {
			return "", err
		}
		if status == memberOf {
			r.logger.Debug("found workspace", "root", root, "workspace", outerRoot)
			return outerRoot, nil
		}

		parent := filepath.Dir(outerRoot)
		if parent == outerRoot {
			return "", nil
		}
		cwd = parent
	}
}

func (r *Resolver) probeWorkspace(outerRoot, root string) (workspaceStatus, error) {
	ws, err := config.LoadWorkspaceManifest(r.fs, outerRoot)
	if err != nil {
		if errors.Is(err, config.ErrDecode) {
			r.logger.Debug("not a workspace root", "dir", outerRoot, "reason", err)
			return notWorkspace, nil
		}
		return notWorkspace, fmt.Errorf("%w: %w", ErrIO, err)
	}

	for _, member := range ws.Workspace.Members {
		matched, err := r.matchesMember(outerRoot, member, root)
		if err != nil {
			return notWorkspace, err
		}
		if matched {
			if excluded(outerRoot, ws.Workspace.Exclude, root) {
				r.logger.Debug("member excluded from workspace", "workspace", outerRoot, "root", root)
				return otherWorkspace, nil
			}
			return memberOf, nil
		}
	}
	return otherWorkspace, nil
}

func (r *Resolver) matchesMember(outerRoot, member, root string) (bool, error) {
	manifestPath := filepath.Join(outerRoot, config.ManifestName)

	pattern := filepath.Join(filesystem.EscapeGlob(outerRoot), member)
	if _, err := filepath.Match(pattern, ""); err != nil {
		return false, fmt.Errorf("%w %q in %s: %w", ErrInvalidGlobPattern, member, manifestPath, err)
	}

	matches, err := r.fs.Glob(pattern)
	if filesystem.IsBadPattern(err) {
		return false, fmt.Errorf("%w %q in %s: %w", ErrInvalidGlobPattern, member, manifestPath, err)
	}
	if err != nil {
		return false, fmt.Errorf("%w: expanding %q in %s: %w", ErrIO, member, manifestPath, err)
	}

	for _, match := range matches {
		r.logger.Debug("workspace member", "pattern", member, "member_dir", match)
		if filepath.Clean(match) == root {
			return true, nil
		}
	}
	return false, nil
}

// excluded reports whether root lies under one of the workspace's exclude
// paths.
func excluded(outerRoot string, exclude []string, root string) bool {
	for _, e := range exclude {
		path := filepath.Join(outerRoot, e)
		if root == path || strings.HasPrefix(root, path+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

// version parses package.version. A missing or unparseable version yields
// nil.
func (r *Resolver) version(m *manifest.Manifest) *semver.Version {
	if m.Package.Version == "" {
		return nil
	}
	v, err := m.Version()
	if err != nil {
		r.logger.Debug("package version is not semver", "version", m.Package.Version, "error", err)
		return nil
	}
	return v
}

func (r *Resolver) binaries(root string, m *manifest.Manifest) []manifest.Binary {
	if len(m.Bin) > 0 {
		return m.Bin
	}
	if r.fs.Exists(filepath.Join(root, filepath.FromSlash(defaultBinaryPath))) {
		return []manifest.Binary{{Name: m.Package.Name, Path: defaultBinaryPath}}
	}
	return nil
}

// classify maps a config loading error onto ErrConfigInvalid or ErrIO.
func classify(err error) error {
	if errors.Is(err, config.ErrDecode) {
		return fmt.Errorf("%w: %w", ErrConfigInvalid, err)
	}
	return fmt.Errorf("%w: %w", ErrIO, err)
}
