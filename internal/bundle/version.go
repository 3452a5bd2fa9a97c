package bundle

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// ErrInstallerTooOld is returned when a bundle requires a newer installer.
var ErrInstallerTooOld = errors.New("installer too old for bundle")

// CompareVersions compares two version strings using semver.
// Returns -1 if a < b, 0 if equal, 1 if a > b. A leading "v" is tolerated.
func CompareVersions(a, b string) (int, error) {
	av, err := parseSemver(a)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", a, err)
	}
	bv, err := parseSemver(b)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", b, err)
	}
	return av.Compare(bv), nil
}

// CheckInstallerVersion fails with ErrInstallerTooOld when the manifest asks
// for a newer installer than installerVersion. Unparseable installer versions
// (e.g. "dev" builds) are not checked.
func CheckInstallerVersion(m *Manifest, installerVersion string) error {
	if m == nil || m.MinInstallerVersion == "" {
		return nil
	}
	if _, err := parseSemver(installerVersion); err != nil {
		return nil
	}
	cmp, err := CompareVersions(installerVersion, m.MinInstallerVersion)
	if err != nil {
		return err
	}
	if cmp < 0 {
		return fmt.Errorf("%w: %s requires >= %s, running %s",
			ErrInstallerTooOld, m.Name, m.MinInstallerVersion, installerVersion)
	}
	return nil
}

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}

// parseGitVersion extracts the semantic version from `git --version` output,
// e.g. "git version 2.39.3 (Apple Git-146)" or "git version 2.41.0.windows.1".
func parseGitVersion(output string) (*semver.Version, error) {
	fields := strings.Fields(output)
	if len(fields) < 3 || fields[0] != "git" || fields[1] != "version" {
		return nil, fmt.Errorf("unrecognized git version output %q", strings.TrimSpace(output))
	}
	parts := strings.SplitN(fields[2], ".", 4)
	if len(parts) > 3 {
		parts = parts[:3]
	}
	return semver.NewVersion(strings.Join(parts, "."))
}
