package installer

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/agentx-labs/agentctx/internal/bundle"
	"github.com/agentx-labs/agentctx/internal/logging"
	"go.uber.org/zap"
)

// ErrTargetNotFound is returned when the target directory does not exist.
var ErrTargetNotFound = errors.New("target not found")

// Source is the bundle content an install copies from.
type Source interface {
	ContextPath() string
	IndexPath() string
	Name() string
}

// IndexAction records what happened to the target's AGENTS.md.
type IndexAction int

const (
	// IndexCreated means the bundle index was copied in as a new file.
	IndexCreated IndexAction = iota
	// IndexAppended means the bundle index was appended to an existing file.
	IndexAppended
)

// String returns a human-readable name for the action.
func (a IndexAction) String() string {
	switch a {
	case IndexCreated:
		return "created"
	case IndexAppended:
		return "appended"
	default:
		return "unknown"
	}
}

// Result summarizes a completed install.
type Result struct {
	Target      string // absolute target directory
	ContextDir  string // <target>/context
	IndexPath   string // <target>/AGENTS.md
	FilesCopied int
	Index       IndexAction
}

// Installer copies bundles into target directories.
type Installer struct {
	Out    io.Writer // progress messages; nil discards
	Logger *zap.Logger
}

// CheckTarget resolves target to an absolute path and verifies it is an
// existing directory. It performs no writes.
func CheckTarget(target string) (string, error) {
	if target == "" {
		target = "."
	}
	abs, err := filepath.Abs(target)
	if err != nil {
		return "", fmt.Errorf("resolving target %s: %w", target, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrTargetNotFound, target)
		}
		return "", fmt.Errorf("checking target %s: %w", target, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s is not a directory", ErrTargetNotFound, target)
	}
	return abs, nil
}

// Install copies src into target. The target must already exist.
func (i *Installer) Install(ctx context.Context, src Source, target string) (*Result, error) {
	log := logging.OrNop(i.Logger)
	out := i.Out
	if out == nil {
		out = io.Discard
	}

	abs, err := CheckTarget(target)
	if err != nil {
		return nil, err
	}
	log.Debug("installing bundle",
		zap.String("bundle", src.Name()),
		zap.String("target", abs))

	res := &Result{
		Target:     abs,
		ContextDir: filepath.Join(abs, bundle.ContextDir),
		IndexPath:  filepath.Join(abs, bundle.IndexFile),
	}

	n, err := CopyContext(ctx, src.ContextPath(), res.ContextDir, log)
	if err != nil {
		return nil, fmt.Errorf("copying context: %w", err)
	}
	res.FilesCopied = n
	fmt.Fprintf(out, "✓ Copied %d files into %s\n", n, res.ContextDir)

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	action, err := MergeIndex(src.IndexPath(), res.IndexPath)
	if err != nil {
		return nil, fmt.Errorf("merging %s: %w", bundle.IndexFile, err)
	}
	res.Index = action
	switch action {
	case IndexAppended:
		fmt.Fprintf(out, "✓ Appended bundle index to %s\n", res.IndexPath)
	default:
		fmt.Fprintf(out, "✓ Copied %s to %s\n", bundle.IndexFile, res.IndexPath)
	}

	fmt.Fprintf(out, "✓ Installed %s into %s\n", src.Name(), abs)
	return res, nil
}
