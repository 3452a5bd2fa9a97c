package bundle

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/agentx-labs/agentctx/internal/branding"
	"github.com/agentx-labs/agentctx/internal/config"
	"github.com/agentx-labs/agentctx/internal/logging"
	"go.uber.org/zap"
)

// ErrGitMissing is returned when a fetch is needed but git is not on PATH.
var ErrGitMissing = errors.New("git is required but not found in PATH")

const (
	// tmpPattern names the process-scoped download directory.
	tmpPattern = "agentctx-bundle-*"

	// cloneDir is the clone destination inside the temp directory.
	cloneDir = "repo"

	// sparseMinGit is the first git release with `clone --sparse`.
	sparseMinGit = ">= 2.25.0"
)

// RepoURL returns the bundle repository URL, checking (in order):
// 1. override (the --repo flag)
// 2. <PREFIX>_BUNDLE_REPO_URL env var
// 3. config key "bundle_repo"
// 4. branding.BundleRepoURL()
func RepoURL(override string) string {
	if override != "" {
		return override
	}
	if v := os.Getenv(branding.EnvVar("BUNDLE_REPO_URL")); v != "" {
		return v
	}
	if v := config.Get(config.KeyBundleRepo); v != "" {
		return v
	}
	return branding.BundleRepoURL()
}

// Branch returns the branch to clone, using the same precedence as RepoURL.
// An empty result means the remote's default branch.
func Branch(override string) string {
	if override != "" {
		return override
	}
	if v := os.Getenv(branding.EnvVar("BUNDLE_BRANCH")); v != "" {
		return v
	}
	if v := config.Get(config.KeyBundleBranch); v != "" {
		return v
	}
	return branding.BundleBranch()
}

// GitRunner runs git with args in dir and returns its combined output.
type GitRunner func(ctx context.Context, dir string, args ...string) ([]byte, error)

// Fetcher clones a remote bundle into a temporary directory.
type Fetcher struct {
	RepoURL string
	Branch  string
	Out     io.Writer // clone notice; nil discards
	Logger  *zap.Logger

	// Git runs git commands. Nil uses the git binary on PATH.
	Git GitRunner
	// TempDir is the parent of the download directory. Empty uses os.TempDir.
	TempDir string
}

// Fetch performs a shallow, single-branch clone and opens the result. The
// returned bundle owns the temporary directory; Close removes it. On error
// nothing is left behind.
func (f *Fetcher) Fetch(ctx context.Context) (*Bundle, error) {
	log := logging.OrNop(f.Logger)
	run := f.Git
	if run == nil {
		if _, err := exec.LookPath("git"); err != nil {
			return nil, ErrGitMissing
		}
		run = execGit
	}

	out := f.Out
	if out == nil {
		out = io.Discard
	}
	fmt.Fprintf(out, "Cloning bundle from %s...\n", f.RepoURL)

	tmpDir, err := os.MkdirTemp(f.TempDir, tmpPattern)
	if err != nil {
		return nil, fmt.Errorf("creating download directory: %w", err)
	}
	cleanup := func() error {
		log.Debug("removing download directory", zap.String("path", tmpDir))
		return os.RemoveAll(tmpDir)
	}

	target := filepath.Join(tmpDir, cloneDir)
	if err := f.clone(ctx, run, target, log); err != nil {
		_ = cleanup()
		return nil, fmt.Errorf("cloning bundle: %w", err)
	}

	b, err := Open(target, OriginRemote)
	if err != nil {
		_ = cleanup()
		return nil, fmt.Errorf("opening cloned bundle from %s: %w", f.RepoURL, err)
	}
	b.cleanup = cleanup
	return b, nil
}

// clone tries a sparse clone when git supports it, falling back to a full
// shallow clone.
func (f *Fetcher) clone(ctx context.Context, run GitRunner, target string, log *zap.Logger) error {
	if supportsSparse(ctx, run) {
		err := f.sparseClone(ctx, run, target)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		log.Debug("sparse clone failed, falling back", zap.Error(err))
		if err := os.RemoveAll(target); err != nil {
			return fmt.Errorf("removing partial clone: %w", err)
		}
	}
	return f.shallowClone(ctx, run, target)
}

func (f *Fetcher) cloneArgs(target string, extra ...string) []string {
	args := []string{"clone", "--depth=1", "--single-branch"}
	if f.Branch != "" {
		args = append(args, "--branch", f.Branch)
	}
	args = append(args, extra...)
	return append(args, f.RepoURL, target)
}

// sparseClone checks out only context/ plus root files (AGENTS.md, bundle.yaml).
func (f *Fetcher) sparseClone(ctx context.Context, run GitRunner, target string) error {
	// --sparse checks out root files only; `set` then widens the cone to context/.
	if output, err := run(ctx, "", f.cloneArgs(target, "--sparse")...); err != nil {
		return fmt.Errorf("sparse clone: %w\n%s", err, strings.TrimSpace(string(output)))
	}
	// Cone mode is set explicitly: git before 2.37 defaults to non-cone
	// patterns, where "context" would replace /* and drop the root files.
	// `init --cone` exists since 2.25; `set --cone` only since 2.35.
	if output, err := run(ctx, target, "sparse-checkout", "init", "--cone"); err != nil {
		return fmt.Errorf("sparse-checkout init: %w\n%s", err, strings.TrimSpace(string(output)))
	}
	if output, err := run(ctx, target, "sparse-checkout", "set", ContextDir); err != nil {
		return fmt.Errorf("sparse-checkout set: %w\n%s", err, strings.TrimSpace(string(output)))
	}
	if _, err := os.Stat(filepath.Join(target, IndexFile)); err != nil {
		return fmt.Errorf("sparse checkout is missing %s: %w", IndexFile, err)
	}
	return nil
}

// shallowClone performs a regular --depth=1 clone (fallback for older git).
func (f *Fetcher) shallowClone(ctx context.Context, run GitRunner, target string) error {
	if output, err := run(ctx, "", f.cloneArgs(target)...); err != nil {
		return fmt.Errorf("shallow clone: %w\n%s", err, strings.TrimSpace(string(output)))
	}
	return nil
}

// supportsSparse reports whether the local git understands `clone --sparse`.
func supportsSparse(ctx context.Context, run GitRunner) bool {
	output, err := run(ctx, "", "--version")
	if err != nil {
		return false
	}
	v, err := parseGitVersion(string(output))
	if err != nil {
		return false
	}
	c, err := semver.NewConstraint(sparseMinGit)
	if err != nil {
		return false
	}
	return c.Check(v)
}

func execGit(ctx context.Context, dir string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir
	// Never block on a credential prompt.
	cmd.Env = append(os.Environ(), "GIT_TERMINAL_PROMPT=0")
	return cmd.CombinedOutput()
}
