package bundle

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolvePrefersLocalBundle(t *testing.T) {
	isolateEnv(t)
	dir := makeBundle(t, t.TempDir())
	g := &fakeGit{version: "git version 2.39.3"}

	b, err := Resolve(context.Background(), ResolveOptions{
		Explicit: dir,
		RepoURL:  "https://example.com/bundle.git",
		Git:      g.run,
	})
	require.NoError(t, err)
	defer b.Close()

	assert.Equal(t, OriginLocal, b.Origin)
	assert.Empty(t, g.calls, "git must not run when a local bundle exists")
}

func TestResolveFetchesWhenNoLocalBundle(t *testing.T) {
	isolateEnv(t)
	exe := filepath.Join(t.TempDir(), "bin", "agentctx")
	g := &fakeGit{version: "git version 2.39.3"}

	b, err := Resolve(context.Background(), ResolveOptions{
		RepoURL:    "https://example.com/bundle.git",
		Branch:     "main",
		Executable: fakeExecutable(exe),
		Git:        g.run,
	})
	require.NoError(t, err)
	assert.Equal(t, OriginRemote, b.Origin)

	tmp := filepath.Dir(b.Root)
	assert.DirExists(t, tmp)
	require.NoError(t, b.Close())
	assert.NoDirExists(t, tmp)
}

func TestResolveRejectsTooOldInstaller(t *testing.T) {
	isolateEnv(t)
	dir := makeBundle(t, t.TempDir())
	writeFile(t, filepath.Join(dir, ManifestFile), "name: docs\nversion: \"1.0.0\"\nmin_installer_version: \"2.0.0\"\n")

	_, err := Resolve(context.Background(), ResolveOptions{Explicit: dir, InstallerVersion: "1.4.0"})
	assert.ErrorIs(t, err, ErrInstallerTooOld)

	b, err := Resolve(context.Background(), ResolveOptions{Explicit: dir, InstallerVersion: "2.1.0"})
	require.NoError(t, err)
	assert.NoError(t, b.Close())
}

func TestResolveExplicitNotABundle(t *testing.T) {
	isolateEnv(t)
	_, err := Resolve(context.Background(), ResolveOptions{Explicit: t.TempDir()})
	assert.ErrorIs(t, err, ErrNotFound)
}
