package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/agentx-labs/agentctx/internal/branding"
	"github.com/agentx-labs/agentctx/internal/config"
	"github.com/agentx-labs/agentctx/internal/installer"
	"github.com/agentx-labs/agentctx/internal/logging"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Exit codes returned by ExitCode.
const (
	ExitOK             = 0
	ExitError          = 1
	ExitTargetNotFound = 2
)

var (
	buildVersion string
	buildCommit  string
	buildDate    string

	verbose bool
	logger  = zap.NewNop()
)

var rootCmd = &cobra.Command{
	Use:   branding.CLIName() + " [target-directory]",
	Short: branding.Description(),
	Long: branding.DisplayName() + ` copies the context bundle (a context/ directory of reference
documents and an AGENTS.md index) into a project directory.

The bundle shipped next to the executable is used when present; otherwise
the bundle repository is shallow-cloned into a temporary directory that is
removed when the command exits. An existing AGENTS.md is appended to, never
replaced. The target directory defaults to the current directory and must
already exist.`,
	Example: `  ` + branding.CLIName() + `
  ` + branding.CLIName() + ` ~/src/my-project
  ` + branding.CLIName() + ` --bundle ./dist/bundle ../app
  ` + branding.CLIName() + ` --repo https://github.com/acme/context.git --branch release .`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Load()

		l, err := logging.New(verbose)
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
	RunE: runInstall,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log diagnostic detail to stderr")
}

// Execute runs the root command with build info injected via ldflags. The
// command context is cancelled on SIGINT/SIGTERM so temporary downloads are
// cleaned up before exit. Errors are printed to stderr and returned.
func Execute(version, commit, date string) error {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	}
	return err
}

// ExitCode maps an Execute error to the process exit status.
func ExitCode(err error) int {
	switch {
	case err == nil:
		return ExitOK
	case errors.Is(err, installer.ErrTargetNotFound):
		return ExitTargetNotFound
	default:
		return ExitError
	}
}
