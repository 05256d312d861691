package project_test

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nightconcept/cargo-project/internal/core/filesystem"
	"github.com/nightconcept/cargo-project/internal/core/platform"
	"github.com/nightconcept/cargo-project/internal/core/project"
)

func queryFixture(t *testing.T, name string, buildConfig string) *project.Project {
	t.Helper()
	mfs := filesystem.NewMockFileSystem()
	mfs.AddFile("/p/Cargo.toml", packageToml(name))
	if buildConfig != "" {
		mfs.AddFile("/p/.cargo/config", []byte(buildConfig))
	}
	proj, err := newResolver(mfs).Query("/p")
	require.NoError(t, err)
	return proj
}

func TestPath(t *testing.T) {
	t.Parallel()
	proj := queryFixture(t, "foo", "")

	tests := []struct {
		name     string
		artifact project.Artifact
		profile  project.Profile
		target   string
		host     string
		want     string
	}{
		{"bin on windows host", project.Bin("foo"), project.Dev, "", windows, "target/debug/foo.exe"},
		{"example on windows host", project.Example("bar"), project.Dev, "", windows, "target/debug/examples/bar.exe"},
		{"bin for thumb", project.Bin("foo"), project.Dev, thumb, windows, "target/" + thumb + "/debug/foo"},
		{"example for thumb", project.Example("bar"), project.Dev, thumb, windows, "target/" + thumb + "/debug/examples/bar"},
		{"bin for wasm", project.Bin("foo"), project.Dev, wasm, linux, "target/" + wasm + "/debug/foo.wasm"},
		{"example for wasm", project.Example("bar"), project.Dev, wasm, linux, "target/" + wasm + "/debug/examples/bar.wasm"},
		{"bin on linux host", project.Bin("foo"), project.Dev, "", linux, "target/debug/foo"},
		{"release bin", project.Bin("foo"), project.Release, "", linux, "target/release/foo"},
		{"explicit windows target", project.Bin("foo"), project.Release, windows, linux, "target/" + windows + "/release/foo.exe"},
		{"lib", project.Lib(), project.Dev, "", linux, "target/debug/libfoo.rlib"},
		{"lib for thumb", project.Lib(), project.Release, thumb, linux, "target/" + thumb + "/release/libfoo.rlib"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			p, err := proj.Path(context.Background(), tt.artifact, tt.profile, tt.target, tt.host)
			require.NoError(t, err)
			assert.True(t, strings.HasSuffix(p, filepath.FromSlash(tt.want)), "%s does not end with %s", p, tt.want)
			assert.Equal(t, filepath.Join("/p", filepath.FromSlash(tt.want)), p)
		})
	}
}

func TestPath_HostIsNeverASegment(t *testing.T) {
	t.Parallel()
	proj := queryFixture(t, "foo", "")

	p, err := proj.Path(context.Background(), project.Bin("foo"), project.Dev, "", windows)
	require.NoError(t, err)
	assert.NotContains(t, p, windows)
	assert.Equal(t, "/p/target/debug/foo.exe", p)
}

func TestPath_DeclaredTarget(t *testing.T) {
	t.Parallel()
	proj := queryFixture(t, "foo", "[build]\ntarget = \"wasm32-unknown-unknown\"\n")

	p, err := proj.Path(context.Background(), project.Bin("foo"), project.Dev, "", windows)
	require.NoError(t, err)
	assert.Equal(t, "/p/target/"+wasm+"/debug/foo.wasm", p)

	p, err = proj.Path(context.Background(), project.Example("bar"), project.Dev, thumb, windows)
	require.NoError(t, err)
	assert.Equal(t, "/p/target/"+thumb+"/debug/examples/bar", p, "explicit target overrides the declared one")
}

func TestPath_DeclaredTargetEqualToHostIsStillASegment(t *testing.T) {
	t.Parallel()
	proj := queryFixture(t, "foo", "[build]\ntarget = \"x86_64-unknown-linux-gnu\"\n")

	p, err := proj.Path(context.Background(), project.Bin("foo"), project.Dev, "", linux)
	require.NoError(t, err)
	assert.Equal(t, "/p/target/"+linux+"/debug/foo", p)
}

func TestPath_LibraryName(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"foo", "my-crate", "a-b-c", "under_score"} {
		proj := queryFixture(t, name, "")
		p, err := proj.Path(context.Background(), project.Lib(), project.Dev, "", windows)
		require.NoError(t, err)
		assert.Equal(t, "lib"+strings.ReplaceAll(name, "-", "_")+".rlib", filepath.Base(p))
	}
}

func TestPath_ReplacesExistingExtension(t *testing.T) {
	t.Parallel()
	proj := queryFixture(t, "foo", "")

	p, err := proj.Path(context.Background(), project.Bin("foo.bar"), project.Dev, "", windows)
	require.NoError(t, err)
	assert.Equal(t, "/p/target/debug/foo.exe", p)

	p, err = proj.Path(context.Background(), project.Bin("foo.bar"), project.Dev, "", linux)
	require.NoError(t, err)
	assert.Equal(t, "/p/target/debug/foo.bar", p)
}

func TestPath_UnknownTarget(t *testing.T) {
	t.Parallel()
	proj := queryFixture(t, "foo", "")

	_, err := proj.Path(context.Background(), project.Bin("foo"), project.Dev, "mystery-triple", linux)
	require.Error(t, err)
	assert.True(t, errors.Is(err, platform.ErrUnknownTarget))

	_, err = proj.Path(context.Background(), project.Bin("foo"), project.Dev, "", "mystery-host")
	assert.True(t, errors.Is(err, platform.ErrUnknownTarget))
}

func TestPath_UnknownArtifactKind(t *testing.T) {
	t.Parallel()
	proj := queryFixture(t, "foo", "")

	_, err := proj.Path(context.Background(), project.Artifact{Kind: project.ArtifactKind(42)}, project.Dev, "", linux)
	assert.Error(t, err)
}

func TestPath_RejectsInvalidArtifactNames(t *testing.T) {
	t.Parallel()
	proj := queryFixture(t, "foo", "")

	for _, artifact := range []project.Artifact{
		project.Bin(""),
		project.Bin("."),
		project.Bin(".."),
		project.Bin("../../x"),
		project.Bin("nested/x"),
		project.Example(""),
		project.Example("../x"),
	} {
		p, err := proj.Path(context.Background(), artifact, project.Dev, "", windows)
		require.Error(t, err, "%+v", artifact)
		assert.True(t, errors.Is(err, project.ErrInvalidArtifact), "%+v", artifact)
		assert.Empty(t, p)
	}

	p, err := proj.Path(context.Background(), project.Lib(), project.Dev, "", windows)
	require.NoError(t, err)
	assert.Equal(t, "/p/target/debug/libfoo.rlib", p)
}

func TestProfile(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "debug", project.Dev.String())
	assert.Equal(t, "release", project.Release.String())
	assert.True(t, project.Release.IsRelease())
	assert.False(t, project.Dev.IsRelease())
}
