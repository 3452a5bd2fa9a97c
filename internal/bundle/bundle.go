package bundle

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/agentx-labs/agentctx/internal/platform"
)

// Layout names inside a bundle root.
const (
	ContextDir   = "context"
	IndexFile    = "AGENTS.md"
	ManifestFile = "bundle.yaml"
)

// ErrNotFound is returned when a directory does not hold a bundle.
var ErrNotFound = errors.New("bundle not found")

// Origin records where a bundle came from.
type Origin int

const (
	// OriginLocal is a bundle colocated with the executable or named explicitly.
	OriginLocal Origin = iota
	// OriginRemote is a bundle cloned into a temporary directory.
	OriginRemote
)

// String returns a human-readable name for the origin.
func (o Origin) String() string {
	switch o {
	case OriginLocal:
		return "local"
	case OriginRemote:
		return "remote"
	default:
		return "unknown"
	}
}

// Bundle is an opened bundle directory.
type Bundle struct {
	Root     string
	Origin   Origin
	Manifest *Manifest // nil when the bundle has no bundle.yaml

	cleanup   func() error
	closeOnce sync.Once
	closeErr  error
}

// ContextPath returns the bundle's context/ directory.
func (b *Bundle) ContextPath() string {
	return filepath.Join(b.Root, ContextDir)
}

// IndexPath returns the bundle's AGENTS.md path.
func (b *Bundle) IndexPath() string {
	return filepath.Join(b.Root, IndexFile)
}

// Name returns the manifest name, or the root directory's base name.
func (b *Bundle) Name() string {
	if b.Manifest != nil {
		return b.Manifest.Name
	}
	return filepath.Base(b.Root)
}

// Close releases the bundle. For remote bundles this removes the temporary
// clone. It is safe to call more than once.
func (b *Bundle) Close() error {
	b.closeOnce.Do(func() {
		if b.cleanup != nil {
			b.closeErr = b.cleanup()
		}
	})
	return b.closeErr
}

// IsBundle reports whether dir contains a context/ directory.
func IsBundle(dir string) bool {
	return platform.IsDir(filepath.Join(dir, ContextDir))
}

// Open opens the bundle rooted at dir and loads its manifest if present.
func Open(dir string, origin Origin) (*Bundle, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving bundle path %s: %w", dir, err)
	}
	if !IsBundle(abs) {
		return nil, fmt.Errorf("%w: %s has no %s/ directory", ErrNotFound, abs, ContextDir)
	}

	b := &Bundle{Root: abs, Origin: origin}

	manifestPath := filepath.Join(abs, ManifestFile)
	if _, err := os.Stat(manifestPath); err == nil {
		m, err := LoadManifest(manifestPath)
		if err != nil {
			return nil, err
		}
		b.Manifest = m
	}

	return b, nil
}
