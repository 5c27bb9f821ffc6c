package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/nao1215/treeverify/internal/config"
	"github.com/nao1215/treeverify/internal/log"
)

// NewRootCmd creates the root command for treeverify.
func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "treeverify",
		Short: "Generate projects from directory trees and verify them",
		Long: `treeverify turns the ASCII directory tree of a Markdown document into a
project skeleton and scores how closely a generated project follows it.

The score combines seven weighted metrics: structure, file and directory
coverage, template accuracy, hierarchy accuracy, annotation preservation
and module independence.

A .env file in the current directory is loaded before any command runs.`,
		Version:           getVersion(),
		SilenceUsage:      true,
		SilenceErrors:     true,
		PersistentPreRunE: setupCommand,
	}

	cmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose logging")
	cmd.PersistentFlags().StringP("config", "c", "",
		"Configuration file path (default: .treeverify in current or home directory)")

	cmd.AddCommand(NewParseCmd())
	cmd.AddCommand(NewGenerateCmd())
	cmd.AddCommand(NewVerifyCmd())
	cmd.AddCommand(NewHistoryCmd())
	cmd.AddCommand(NewInitCmd())
	cmd.AddCommand(NewVersionCmd())

	return cmd
}

// setupCommand loads .env and installs the default logger.
func setupCommand(cmd *cobra.Command, _ []string) error {
	if err := config.LoadDotEnv(); err != nil {
		return err
	}
	slog.SetDefault(log.NewLogger(cmd.ErrOrStderr(), getVerboseFlag(cmd)))
	return nil
}

// Execute runs the root command.
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
