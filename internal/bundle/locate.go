package bundle

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/agentx-labs/agentctx/internal/branding"
	"github.com/agentx-labs/agentctx/internal/platform"
)

// Locate finds a local bundle directory.
//
// Resolution order:
//  1. explicit (the --bundle flag), else <PREFIX>_BUNDLE
//  2. the executable's directory
//  3. the executable's parent directory (bin/../ release layout)
//
// An explicit directory that is not a bundle is an error. Otherwise ok is
// false when no local bundle exists and the caller should fetch one.
func Locate(explicit string, executable func() (string, error)) (dir string, ok bool, err error) {
	if explicit == "" {
		explicit = os.Getenv(branding.EnvVar("BUNDLE"))
	}
	if explicit != "" {
		if !IsBundle(explicit) {
			return "", false, fmt.Errorf("%w: %s has no %s/ directory", ErrNotFound, explicit, ContextDir)
		}
		return explicit, true, nil
	}

	if executable == nil {
		executable = platform.ExecutablePath
	}
	exe, err := executable()
	if err != nil {
		return "", false, nil
	}

	exeDir := filepath.Dir(exe)
	for _, candidate := range []string{exeDir, filepath.Dir(exeDir)} {
		if IsBundle(candidate) {
			return candidate, true, nil
		}
	}
	return "", false, nil
}
