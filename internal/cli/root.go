// Package cli wires the cobra command tree for the cloudist tool.
package cli

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/RishabhK9/cloudist/internal/ctxlog"
)

var (
	logLevel    string
	logFormat   string
	sandboxRoot string
	toolBinary  string
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "cloudist",
		Short:         "Generate Terraform from a canvas graph and run it sandboxed",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "logging level: debug, info, warn or error")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log output format: text or json")
	cmd.PersistentFlags().StringVar(&sandboxRoot, "sandbox-root", defaultSandboxRoot(), "directory all executions are confined to")
	cmd.PersistentFlags().StringVar(&toolBinary, "terraform-bin", "terraform", "provisioning tool binary")

	// The logger depends on flag values, so it is attached after parsing.
	cmd.PersistentPreRun = func(c *cobra.Command, _ []string) {
		logger := newLogger(logLevel, logFormat, os.Stderr)
		c.SetContext(ctxlog.WithLogger(c.Context(), logger))
	}

	cmd.AddCommand(newGenerateCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newPlanCmd())
	cmd.AddCommand(newApplyCmd())

	return cmd
}

// Execute runs the command tree and returns the process exit code.
func Execute() int {
	root := newRootCmd()
	root.SetContext(context.Background())

	if err := root.Execute(); err != nil {
		newLogger(logLevel, logFormat, os.Stderr).Error("Command failed.", "error", err)
		return 1
	}
	return 0
}

func defaultSandboxRoot() string {
	if cache, err := os.UserCacheDir(); err == nil {
		return cache + "/cloudist/deployments"
	}
	return ".cloudist/deployments"
}
