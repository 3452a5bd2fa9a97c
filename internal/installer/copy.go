package installer

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/agentx-labs/agentctx/internal/logging"
	"github.com/agentx-labs/agentctx/internal/platform"
	"go.uber.org/zap"
)

// CopyContext recursively copies src into dst, creating dst if needed and
// overwriting same-named files. Files already in dst that are not in src are
// left alone. It returns the number of regular files copied.
func CopyContext(ctx context.Context, src, dst string, log *zap.Logger) (int, error) {
	log = logging.OrNop(log)

	info, err := os.Stat(src)
	if err != nil {
		return 0, fmt.Errorf("reading bundle context: %w", err)
	}
	if !info.IsDir() {
		return 0, fmt.Errorf("bundle context %s is not a directory", src)
	}

	if within, err := isWithin(src, dst); err != nil {
		return 0, err
	} else if within {
		return 0, fmt.Errorf("destination %s is inside bundle context %s", dst, src)
	}

	count := 0
	if err := copyDir(ctx, src, dst, log, &count); err != nil {
		return count, err
	}
	return count, nil
}

// isWithin reports whether dst is root or lies below it, after resolving
// symlinks on whatever part of dst already exists.
func isWithin(root, dst string) (bool, error) {
	r, err := resolvePath(root)
	if err != nil {
		return false, err
	}
	d, err := resolvePath(dst)
	if err != nil {
		return false, err
	}
	rel, err := filepath.Rel(r, d)
	if err != nil {
		return false, nil
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))), nil
}

// resolvePath returns the absolute, symlink-free form of path. Missing
// trailing components are kept as written.
func resolvePath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolving %s: %w", path, err)
	}
	var missing []string
	for cur := abs; ; {
		if resolved, err := filepath.EvalSymlinks(cur); err == nil {
			for i := len(missing) - 1; i >= 0; i-- {
				resolved = filepath.Join(resolved, missing[i])
			}
			return resolved, nil
		}
		parent := filepath.Dir(cur)
		if parent == cur {
			return abs, nil
		}
		missing = append(missing, filepath.Base(cur))
		cur = parent
	}
}

// copyDir recursively copies src to dst.
func copyDir(ctx context.Context, src, dst string, log *zap.Logger, count *int) error {
	if err := ensureDir(src, dst); err != nil {
		return err
	}

	entries, err := os.ReadDir(src)
	if err != nil {
		return err
	}

	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return err
		}

		srcPath := filepath.Join(src, entry.Name())
		dstPath := filepath.Join(dst, entry.Name())

		if entry.IsDir() {
			if err := copyDir(ctx, srcPath, dstPath, log, count); err != nil {
				return err
			}
		} else if entry.Type().IsRegular() {
			if err := copyFile(srcPath, dstPath); err != nil {
				return fmt.Errorf("copying %s: %w", entry.Name(), err)
			}
			*count++
			log.Debug("copied file", zap.String("path", dstPath))
		} else {
			log.Debug("skipping non-regular file", zap.String("path", srcPath))
		}
	}

	return nil
}

// ensureDir creates dst with src's permissions unless it already exists as a
// directory.
func ensureDir(src, dst string) error {
	if info, err := os.Stat(dst); err == nil {
		if info.IsDir() {
			return nil
		}
		return fmt.Errorf("%s exists but is not a directory", dst)
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}
	perm := srcInfo.Mode().Perm() | 0700
	if err := os.MkdirAll(dst, perm); err != nil {
		return fmt.Errorf("creating directory %s: %w", dst, err)
	}
	// MkdirAll applies the umask.
	if err := platform.Chmod(dst, perm); err != nil {
		return fmt.Errorf("setting permissions on %s: %w", dst, err)
	}
	return nil
}

// copyFile copies a single file from src to dst, preserving permissions.
func copyFile(src, dst string) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}

	srcInfo, err := os.Stat(src)
	if err != nil {
		return err
	}

	return os.WriteFile(dst, data, srcInfo.Mode().Perm())
}
