// Package filesystem_test contains tests for the filesystem package.
package filesystem_test

import (
	"errors"
	"io/fs"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightconcept/cargo-project/internal/core/filesystem"
)

func TestMockFileSystem_AddFileCreatesParents(t *testing.T) {
	t.Parallel()
	mfs := filesystem.NewMockFileSystem()
	mfs.AddFile("/ws/crates/foo/Cargo.toml", []byte("[package]"))

	assert.True(t, mfs.Exists("/ws"))
	assert.True(t, mfs.Exists("/ws/crates"))
	assert.True(t, mfs.Exists("/ws/crates/foo"))
	assert.True(t, mfs.Exists("/ws/crates/foo/Cargo.toml"))
	assert.False(t, mfs.Exists("/ws/crates/bar"))

	data, err := mfs.ReadFile("/ws/crates/foo/Cargo.toml")
	require.NoError(t, err)
	assert.Equal(t, "[package]", string(data))
}

func TestMockFileSystem_ReadFileErrors(t *testing.T) {
	t.Parallel()
	mfs := filesystem.NewMockFileSystem()
	mfs.AddDir("/ws")
	mfs.AddUnreadableFile("/ws/locked", fs.ErrPermission)

	_, err := mfs.ReadFile("/ws/missing")
	assert.True(t, errors.Is(err, fs.ErrNotExist))

	_, err = mfs.ReadFile("/ws")
	assert.Error(t, err)

	_, err = mfs.ReadFile("/ws/locked")
	assert.True(t, errors.Is(err, fs.ErrPermission))
}

func TestMockFileSystem_Canonicalize(t *testing.T) {
	t.Parallel()
	mfs := filesystem.NewMockFileSystem()
	mfs.AddDir("/workspace/project/src")

	path, err := mfs.Canonicalize("project/src/../src")
	require.NoError(t, err)
	assert.Equal(t, filepath.Clean("/workspace/project/src"), path)

	_, err = mfs.Canonicalize("/nope")
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestMockFileSystem_Glob(t *testing.T) {
	t.Parallel()
	mfs := filesystem.NewMockFileSystem()
	mfs.AddDir("/ws/crates/a")
	mfs.AddDir("/ws/crates/b/nested")
	mfs.AddDir("/ws/tools/c")

	matches, err := mfs.Glob("/ws/crates/*")
	require.NoError(t, err)
	assert.Equal(t, []string{"/ws/crates/a", "/ws/crates/b"}, matches)

	matches, err = mfs.Glob("/ws/**/nested")
	require.NoError(t, err)
	assert.Equal(t, []string{"/ws/crates/b/nested"}, matches)

	matches, err = mfs.Glob("/ws/none/*")
	require.NoError(t, err)
	assert.Empty(t, matches)
}

func TestOSFileSystem_GlobAndExists(t *testing.T) {
	t.Parallel()
	tempDir := t.TempDir()
	for _, dir := range []string{"crates/a", "crates/b", "other"} {
		require.NoError(t, os.MkdirAll(filepath.Join(tempDir, dir), 0755))
	}

	osfs := filesystem.NewOSFileSystem()
	assert.True(t, osfs.Exists(filepath.Join(tempDir, "crates", "a")))
	assert.False(t, osfs.Exists(filepath.Join(tempDir, "crates", "z")))

	matches, err := osfs.Glob(filepath.Join(tempDir, "crates", "*"))
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{
		filepath.Join(tempDir, "crates", "a"),
		filepath.Join(tempDir, "crates", "b"),
	}, matches)
}

func TestOSFileSystem_CanonicalizeResolvesSymlinks(t *testing.T) {
	t.Parallel()
	tempDir, err := filepath.EvalSymlinks(t.TempDir())
	require.NoError(t, err)

	realDir := filepath.Join(tempDir, "real")
	require.NoError(t, os.MkdirAll(realDir, 0755))
	link := filepath.Join(tempDir, "link")
	if err := os.Symlink(realDir, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	osfs := filesystem.NewOSFileSystem()
	canonical, err := osfs.Canonicalize(link)
	require.NoError(t, err)
	assert.Equal(t, realDir, canonical)

	_, err = osfs.Canonicalize(filepath.Join(tempDir, "missing"))
	assert.True(t, errors.Is(err, fs.ErrNotExist))
}

func TestEscapeGlob(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("backslash is the path separator")
	}

	assert.Equal(t, "/ws/plain", filesystem.EscapeGlob("/ws/plain"))
	assert.Equal(t, `/ws/x\[1\]/\{a,b\}/\*\?`, filesystem.EscapeGlob("/ws/x[1]/{a,b}/*?"))
}

func TestMockFileSystem_GlobEscapedPrefix(t *testing.T) {
	t.Parallel()
	if runtime.GOOS == "windows" {
		t.Skip("backslash is the path separator")
	}
	mfs := filesystem.NewMockFileSystem()
	mfs.AddDir("/ws/x[1]/crates/a")
	mfs.AddDir("/ws/x1/crates/b")

	matches, err := mfs.Glob(filesystem.EscapeGlob("/ws/x[1]") + "/crates/*")
	require.NoError(t, err)
	assert.Equal(t, []string{"/ws/x[1]/crates/a"}, matches)
}

func TestOSFileSystem_GlobEscapedPrefix(t *testing.T) {
	t.Parallel()
	tempDir := filepath.Join(t.TempDir(), "x[1]")
	require.NoError(t, os.MkdirAll(filepath.Join(tempDir, "crates", "a"), 0755))

	matches, err := filesystem.NewOSFileSystem().Glob(filepath.Join(filesystem.EscapeGlob(tempDir), "crates", "*"))
	require.NoError(t, err)
	assert.Equal(t, []string{filepath.Join(tempDir, "crates", "a")}, matches)
}

func TestIsBadPattern(t *testing.T) {
	t.Parallel()
	assert.True(t, filesystem.IsBadPattern(path.ErrBadPattern))
	assert.True(t, filesystem.IsBadPattern(fmt.Errorf("expanding: %w", filepath.ErrBadPattern)))
	assert.False(t, filesystem.IsBadPattern(fs.ErrPermission))
	assert.False(t, filesystem.IsBadPattern(nil))
}
