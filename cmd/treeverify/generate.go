package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/nao1215/treeverify/internal/generate"
)

// defaultOutputDir is where generate writes when -o is not given.
const defaultOutputDir = "output"

// NewGenerateCmd creates the generate command.
func NewGenerateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "generate <structure.md>",
		Short: "Create a project from a structure document",
		Long: `Generate creates every directory and file of the structure document
below the output directory.

Each directory receives a README.md. Files are filled from built-in
templates: pyproject.toml, package.json, Python modules and Markdown
documents carry their annotation so that verify can find it again.
Existing files are kept unless --force is given.

Examples:
  # Generate into ./output
  treeverify generate structure.md

  # Show what would be created
  treeverify generate --dry-run structure.md

  # Regenerate into a custom directory, replacing existing files
  treeverify generate -o build/project --force structure.md`,
		Args: cobra.ExactArgs(1),
		RunE: runGenerateCmd,
	}

	cmd.Flags().StringP("output", "o", defaultOutputDir, "Output directory")
	cmd.Flags().BoolP("dry-run", "n", false, "Print the plan without writing anything")
	cmd.Flags().BoolP("force", "f", false, "Overwrite existing files")

	return cmd
}

func runGenerateCmd(cmd *cobra.Command, args []string) error {
	outDir, err := cmd.Flags().GetString("output")
	if err != nil {
		return err
	}
	dryRun, err := cmd.Flags().GetBool("dry-run")
	if err != nil {
		return err
	}
	force, err := cmd.Flags().GetBool("force")
	if err != nil {
		return err
	}

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	cfg.StructureFile = args[0]

	m, err := parseStructure(cfg)
	if err != nil {
		return err
	}
	if m.IsEmpty() {
		return fmt.Errorf("%w: %s", errEmptyStructure, cfg.StructureFile)
	}

	out := cmd.OutOrStdout()
	opts := []generate.Option{
		generate.WithDryRun(dryRun),
		generate.WithForce(force),
		generate.WithLogger(slog.Default()),
	}
	if dryRun || cfg.Verbose {
		opts = append(opts, generate.WithPlanOutput(out))
	}

	result, err := generate.NewGenerator(opts...).Generate(cmd.Context(), m, outDir)
	if err != nil {
		return fmt.Errorf("failed to generate %s: %w", outDir, err)
	}

	verb := "Generated"
	if dryRun {
		verb = "Would generate"
	}
	fmt.Fprintf(out, "%s %s: %d directories, %d files created, %d overwritten, %d skipped\n",
		verb, outDir,
		result.Count(generate.ActionMkdir),
		result.Count(generate.ActionCreate),
		result.Count(generate.ActionOverwrite),
		result.Count(generate.ActionSkip),
	)
	return nil
}
