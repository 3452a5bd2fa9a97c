// Package branding provides compile-time identity values for the installer.
//
// Forks edit branding.yaml in this directory to point the installer at their
// own bundle repository. Go's //go:embed bakes it into the binary.
package branding

import (
	_ "embed"
	"strings"
	"sync"

	"go.yaml.in/yaml/v3"
)

//go:embed branding.yaml
var rawBranding []byte

var (
	once     sync.Once
	defaults brand
)

type brand struct {
	CLIName       string `yaml:"cli_name"`
	DisplayName   string `yaml:"display_name"`
	Description   string `yaml:"description"`
	HomeDir       string `yaml:"home_dir"`
	EnvPrefix     string `yaml:"env_prefix"`
	BundleRepoURL string `yaml:"bundle_repo_url"`
	BundleBranch  string `yaml:"bundle_branch"`
}

func load() {
	once.Do(func() {
		// Hard defaults in case the embedded file is missing/empty.
		defaults = brand{
			CLIName:       "agentctx",
			DisplayName:   "AgentCtx",
			Description:   "Installs the agent context bundle into a project",
			HomeDir:       ".agentctx",
			EnvPrefix:     "AGENTCTX",
			BundleRepoURL: "https://github.com/agentx-labs/agentctx.git",
		}
		_ = yaml.Unmarshal(rawBranding, &defaults)
	})
}

// CLIName returns the root command name (e.g., "agentctx").
func CLIName() string { load(); return defaults.CLIName }

// DisplayName returns the human-readable product name.
func DisplayName() string { load(); return defaults.DisplayName }

// Description returns the short product description.
func Description() string { load(); return defaults.Description }

// HomeDir returns the dot-directory name under $HOME (e.g., ".agentctx").
func HomeDir() string { load(); return defaults.HomeDir }

// EnvPrefix returns the environment variable prefix (e.g., "AGENTCTX").
func EnvPrefix() string { load(); return defaults.EnvPrefix }

// BundleRepoURL returns the default git URL the bundle is cloned from.
func BundleRepoURL() string { load(); return defaults.BundleRepoURL }

// BundleBranch returns the default branch to clone. Empty means the remote HEAD.
func BundleBranch() string { load(); return defaults.BundleBranch }

// EnvVar returns a fully qualified env var name, e.g., EnvVar("BUNDLE") → "AGENTCTX_BUNDLE".
func EnvVar(suffix string) string {
	load()
	return defaults.EnvPrefix + "_" + strings.ToUpper(suffix)
}
