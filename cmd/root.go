// Package cmd implements the scribe command line interface.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/scribehq/scribe/internal/config"
	"github.com/scribehq/scribe/internal/git"
	"github.com/scribehq/scribe/internal/logger"
	"github.com/scribehq/scribe/internal/paths"
	"github.com/scribehq/scribe/internal/session"
)

var (
	workspaceFlag         string
	debugMode             bool
	quietMode             bool
	version, commit, date string
)

// SetVersionInfo sets version information from ldflags
func SetVersionInfo(v, c, d string) {
	version, commit, date = v, c, d
}

var rootCmd = &cobra.Command{
	Use:   "scribe",
	Short: "Session state manager for AI-assisted SRS authoring",
	Long: `Scribe tracks the durable session state of an AI-assisted SRS authoring
workspace: which project is active, its working directory, its git branch,
and a full audit trail of every operation performed against it.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	cobra.OnInitialize(initLogging)
	rootCmd.PersistentFlags().StringVarP(&workspaceFlag, "workspace", "w", "", "Workspace root (defaults to config, then the enclosing git root)")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Reduce logging to info level only")
}

func initLogging() {
	if quietMode {
		logger.SetDebug(false)
	} else if debugMode {
		logger.SetDebug(true)
	}
}

// Execute runs the root command
func Execute() error {
	rootCmd.Version = version
	rootCmd.SetVersionTemplate(versionTemplate())
	return rootCmd.Execute()
}

func versionTemplate() string {
	if commit != "none" && commit != "" {
		return fmt.Sprintf("scribe %s\n  commit: %s\n  built:  %s\n", version, commit, date)
	}
	return fmt.Sprintf("scribe %s\n", version)
}

// resolveWorkspace picks the workspace root: the --workspace flag wins,
// then the configured default, then the git root enclosing the current
// directory, then the current directory itself.
func resolveWorkspace(ctx context.Context) (string, error) {
	if workspaceFlag != "" {
		return workspaceFlag, nil
	}

	if cfg, err := config.Load(); err == nil {
		if ws := cfg.GetDefaultWorkspace(); ws != "" {
			return ws, nil
		}
		if cfg.GetDebugLogging() {
			logger.SetDebug(true)
		}
	}

	if root := git.Root(ctx, "."); root != "" {
		return root, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("cannot determine workspace: %w", err)
	}
	return cwd, nil
}

// newStore builds the session store for the resolved workspace and runs
// startup recovery. Recovery is best-effort and never fails the command.
func newStore(ctx context.Context) (*session.Store, error) {
	ws, err := resolveWorkspace(ctx)
	if err != nil {
		return nil, err
	}

	resolver := paths.NewResolver(ws)
	if err := resolver.Validate(); err != nil {
		return nil, err
	}

	store := session.NewStore(resolver)
	store.Recover(ctx)
	return store, nil
}
