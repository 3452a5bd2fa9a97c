package bundle

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeExecutable(path string) func() (string, error) {
	return func() (string, error) { return path, nil }
}

func TestLocateExplicit(t *testing.T) {
	isolateEnv(t)
	dir := makeBundle(t, t.TempDir())

	got, ok, err := Locate(dir, fakeExecutable("/nonexistent/bin/agentctx"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, dir, got)
}

func TestLocateExplicitNotABundle(t *testing.T) {
	isolateEnv(t)
	_, ok, err := Locate(t.TempDir(), fakeExecutable("/nonexistent/bin/agentctx"))
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestLocateFromEnv(t *testing.T) {
	isolateEnv(t)
	dir := makeBundle(t, t.TempDir())
	t.Setenv("AGENTCTX_BUNDLE", dir)

	got, ok, err := Locate("", fakeExecutable("/nonexistent/bin/agentctx"))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, dir, got)
}

func TestLocateNextToExecutable(t *testing.T) {
	isolateEnv(t)
	dir := makeBundle(t, t.TempDir())
	exe := filepath.Join(dir, "install")
	writeFile(t, exe, "#!/bin/sh\n")

	got, ok, err := Locate("", fakeExecutable(exe))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, dir, got)
}

func TestLocateReleaseLayout(t *testing.T) {
	isolateEnv(t)
	dir := makeBundle(t, t.TempDir())
	exe := filepath.Join(dir, "bin", "agentctx")
	writeFile(t, exe, "")

	got, ok, err := Locate("", fakeExecutable(exe))
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, dir, got)
}

func TestLocateNone(t *testing.T) {
	isolateEnv(t)
	exe := filepath.Join(t.TempDir(), "bin", "agentctx")
	writeFile(t, exe, "")

	_, ok, err := Locate("", fakeExecutable(exe))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLocateExecutableError(t *testing.T) {
	isolateEnv(t)
	_, ok, err := Locate("", func() (string, error) { return "", errors.New("no exe") })
	require.NoError(t, err)
	assert.False(t, ok)
}
