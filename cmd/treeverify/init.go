package main

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/nao1215/treeverify/internal/config"
)

//go:embed templates/treeverify.yaml
var configTemplate []byte

// NewInitCmd creates the init command.
func NewInitCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Create a treeverify configuration file",
		Long: `Init writes a commented .treeverify configuration file.

The file documents every layout setting used by verify: the wrapper
directories, the modules and feature paths that are checked, the file
extension allow-list and the default report language.

Examples:
  # Create .treeverify in the current directory
  treeverify init

  # Create the file at a specific path
  treeverify init -o configs/treeverify.yaml

  # Overwrite an existing file
  treeverify init -f`,
		Args: cobra.NoArgs,
		RunE: runInitCmd,
	}

	cmd.Flags().StringP("output", "o", config.DefaultConfigFile,
		"Output file path for the configuration")
	cmd.Flags().BoolP("force", "f", false,
		"Overwrite existing configuration file")

	return cmd
}

func runInitCmd(cmd *cobra.Command, _ []string) error {
	outputPath, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	if !force {
		_, err := os.Stat(outputPath)
		switch {
		case err == nil:
			return fmt.Errorf("configuration file already exists: %s (use -f to overwrite)", outputPath)
		case !errors.Is(err, fs.ErrNotExist):
			return fmt.Errorf("failed to check %s: %w", outputPath, err)
		}
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}
	if err := os.WriteFile(outputPath, configTemplate, 0o600); err != nil {
		return fmt.Errorf("failed to write configuration file: %w", err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Created configuration file: %s\n", outputPath)
	fmt.Fprintln(out, "\nEdit this file to describe your layout:")
	fmt.Fprintln(out, "  - wrapper directories (systemDir, projectName)")
	fmt.Fprintln(out, "  - modules and feature paths")
	fmt.Fprintln(out, "  - the default report language")
	return nil
}
