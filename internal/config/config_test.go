package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

func isolateHome(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	viper.Reset()
	t.Cleanup(viper.Reset)
	return home
}

func TestFilePathUnderHome(t *testing.T) {
	home := isolateHome(t)
	want := filepath.Join(home, ".agentctx", "config.yaml")
	if got := FilePath(); got != want {
		t.Errorf("FilePath() = %q, want %q", got, want)
	}
}

func TestSetWritesConfigFile(t *testing.T) {
	isolateHome(t)
	Load()

	if err := Set(KeyBundleRepo, "https://example.com/bundle.git"); err != nil {
		t.Fatalf("Set: %v", err)
	}

	data, err := os.ReadFile(FilePath())
	if err != nil {
		t.Fatalf("reading config file: %v", err)
	}
	if !strings.Contains(string(data), "https://example.com/bundle.git") {
		t.Errorf("config file missing value:\n%s", data)
	}

	// A fresh load sees the persisted value.
	viper.Reset()
	Load()
	if got := Get(KeyBundleRepo); got != "https://example.com/bundle.git" {
		t.Errorf("Get(%q) = %q after reload", KeyBundleRepo, got)
	}
}

func TestSetRejectsUnknownKey(t *testing.T) {
	isolateHome(t)
	if err := Set("mirror", "x"); err == nil {
		t.Fatal("expected error for unknown key")
	}
	if _, err := os.Stat(FilePath()); err == nil {
		t.Error("config file should not be created for unknown key")
	}
}

func TestGetReadsEnvironment(t *testing.T) {
	isolateHome(t)
	t.Setenv("AGENTCTX_BUNDLE_BRANCH", "release")
	Load()
	if got := Get(KeyBundleBranch); got != "release" {
		t.Errorf("Get(%q) = %q, want %q", KeyBundleBranch, got, "release")
	}
}
