package bundle

import (
	"context"
	"fmt"
	"io"

	"github.com/agentx-labs/agentctx/internal/logging"
	"go.uber.org/zap"
)

// ResolveOptions configures Resolve.
type ResolveOptions struct {
	// Explicit is a bundle directory named by the user (--bundle).
	Explicit string
	// RepoURL and Branch override the configured remote (--repo, --branch).
	RepoURL string
	Branch  string
	// InstallerVersion is checked against the manifest's min_installer_version.
	InstallerVersion string

	Out    io.Writer
	Logger *zap.Logger

	// Executable overrides os.Executable for local discovery.
	Executable func() (string, error)
	// Git overrides the git runner used for remote fetches.
	Git GitRunner
}

// Resolve returns the local bundle when one is colocated with the program and
// clones the remote bundle otherwise. The caller must Close the result.
func Resolve(ctx context.Context, opts ResolveOptions) (*Bundle, error) {
	log := logging.OrNop(opts.Logger)

	dir, ok, err := Locate(opts.Explicit, opts.Executable)
	if err != nil {
		return nil, err
	}

	var b *Bundle
	if ok {
		log.Debug("using local bundle", zap.String("path", dir))
		b, err = Open(dir, OriginLocal)
		if err != nil {
			return nil, err
		}
	} else {
		f := &Fetcher{
			RepoURL: RepoURL(opts.RepoURL),
			Branch:  Branch(opts.Branch),
			Out:     opts.Out,
			Logger:  log,
			Git:     opts.Git,
		}
		log.Debug("no local bundle, fetching",
			zap.String("repo", f.RepoURL),
			zap.String("branch", f.Branch))
		b, err = f.Fetch(ctx)
		if err != nil {
			return nil, err
		}
	}

	if err := CheckInstallerVersion(b.Manifest, opts.InstallerVersion); err != nil {
		if cerr := b.Close(); cerr != nil {
			log.Warn("removing download directory", zap.Error(cerr))
		}
		return nil, fmt.Errorf("checking bundle %s: %w", b.Name(), err)
	}
	return b, nil
}
