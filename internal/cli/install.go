package cli

import (
	"fmt"

	"github.com/agentx-labs/agentctx/internal/bundle"
	"github.com/agentx-labs/agentctx/internal/installer"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	installBundle string
	installRepo   string
	installBranch string
)

func init() {
	rootCmd.Flags().StringVar(&installBundle, "bundle", "", "Use the bundle in this directory instead of locating or cloning one")
	rootCmd.Flags().StringVar(&installRepo, "repo", "", "Bundle repository URL to clone when no local bundle is found")
	rootCmd.Flags().StringVar(&installBranch, "branch", "", "Branch to clone (default: the configured bundle branch)")
}

func runInstall(cmd *cobra.Command, args []string) error {
	target := "."
	if len(args) == 1 {
		target = args[0]
	}

	// Check the target before touching the network or the filesystem.
	abs, err := installer.CheckTarget(target)
	if err != nil {
		return err
	}

	b, err := bundle.Resolve(cmd.Context(), bundle.ResolveOptions{
		Explicit:         installBundle,
		RepoURL:          installRepo,
		Branch:           installBranch,
		InstallerVersion: buildVersion,
		Out:              cmd.OutOrStdout(),
		Logger:           logger,
	})
	if err != nil {
		return fmt.Errorf("resolving bundle: %w", err)
	}
	defer func() {
		if err := b.Close(); err != nil {
			logger.Warn("removing download directory", zap.Error(err))
		}
	}()
	logger.Debug("bundle resolved",
		zap.String("root", b.Root),
		zap.Stringer("origin", b.Origin))

	inst := &installer.Installer{Out: cmd.OutOrStdout(), Logger: logger}
	if _, err := inst.Install(cmd.Context(), b, abs); err != nil {
		return err
	}
	return nil
}
