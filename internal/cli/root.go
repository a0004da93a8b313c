// Package cli implements the cara command line interface.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	clierrors "github.com/ariel-frischer/cara/internal/errors"
	"github.com/ariel-frischer/cara/internal/gitlog"
	"github.com/ariel-frischer/cara/internal/logging"
	"github.com/spf13/cobra"
)

// Command groups for help output.
const (
	GroupGenerate = "generate"
	GroupInspect  = "inspect"
)

// globalFlags holds the persistent flags shared by every command.
type globalFlags struct {
	verbose bool
	debug   bool
	config  string
	logFile string
}

var (
	globals      globalFlags
	closeLogging = func() error { return nil }
)

var rootCmd = &cobra.Command{
	Use:   "cara",
	Short: "Generate a Markdown changelog from git history",
	Long: `cara reads commit history, drops duplicate and unwanted commits, groups the
rest by day, week, month or year and writes a Markdown changelog.

Configuration is loaded with the following priority (highest to lowest):
  1. Command line flags (--format)
  2. Environment variables (CARA_*)
  3. Config file (--config, default cara.conf)
  4. Built-in defaults`,
	Example: `  # Write CHANGELOG.md for the current repository
  cara

  # Group by week using a custom config
  CARA_GROUP_BY=week cara -c release.conf

  # Update an existing changelog, keeping its older sections
  cara -i CHANGELOG.md -o CHANGELOG.md

  # Generate from an exported history file
  cara --from history.txt -o -`,
	SilenceUsage:  true,
	SilenceErrors: true,
	Args: func(cmd *cobra.Command, args []string) error {
		if err := cobra.NoArgs(cmd, args); err != nil {
			return clierrors.NewArgumentError(err.Error(), "Run 'cara --help' for available commands")
		}
		return nil
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return setupLogging(cmd)
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		return closeLogging()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runGenerate(cmd, args)
	},
}

func init() {
	rootCmd.AddGroup(
		&cobra.Group{ID: GroupGenerate, Title: "Generate:"},
		&cobra.Group{ID: GroupInspect, Title: "Inspect:"},
	)

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&globals.verbose, "verbose", "v", false, "Enable verbose output")
	pf.BoolVarP(&globals.debug, "debug", "d", false, "Enable debug output")
	pf.StringVarP(&globals.config, "config", "c", "cara.conf", "Config file to use")
	pf.StringVar(&globals.logFile, "log-file", "", "Write JSON logs to this file instead of stderr")

	addSourceFlags(rootCmd)
	addGenerateFlags(rootCmd)

	rootCmd.SetFlagErrorFunc(func(cmd *cobra.Command, err error) error {
		return clierrors.NewArgumentError(err.Error(), "Run '"+cmd.CommandPath()+" --help' for usage")
	})
}

// setupLogging configures logrus and routes library debug output through it.
func setupLogging(cmd *cobra.Command) error {
	closeFn, err := logging.Init(logging.Options{
		Verbose: globals.verbose,
		Debug:   globals.debug,
		File:    globals.logFile,
		Output:  cmd.ErrOrStderr(),
	})
	if err != nil {
		return err
	}
	closeLogging = closeFn

	if logging.IsDebug() {
		gitlog.SetDebugLogger(logging.Debugf)
	} else {
		gitlog.SetDebugLogger(nil)
	}

	logging.WithFields(map[string]interface{}{
		"config":  globals.config,
		"verbose": globals.verbose,
		"debug":   globals.debug,
	}).Info("starting cara")
	return nil
}

// Execute runs the root command and reports any error on stderr.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}
