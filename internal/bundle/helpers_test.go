package bundle

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// writeFile creates path (and its parents) with content.
func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

// makeBundle lays out a minimal bundle under dir and returns dir.
func makeBundle(t *testing.T, dir string) string {
	t.Helper()
	writeFile(t, filepath.Join(dir, ContextDir, "a.md"), "A")
	writeFile(t, filepath.Join(dir, IndexFile), "INDEX")
	return dir
}

// isolateEnv clears the env overrides that would leak in from the developer's shell.
func isolateEnv(t *testing.T) {
	t.Helper()
	t.Setenv("AGENTCTX_BUNDLE", "")
	t.Setenv("AGENTCTX_BUNDLE_REPO_URL", "")
	t.Setenv("AGENTCTX_BUNDLE_BRANCH", "")
}
