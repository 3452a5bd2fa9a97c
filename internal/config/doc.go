// Package config manages user-level settings stored at ~/.agentctx/config.yaml.
// It provides functions to load, read, and write configuration keys such as
// the bundle repository URL and branch used when no local bundle is present.
package config
