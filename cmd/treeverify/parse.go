package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/treeverify/internal/tree"
)

// errEmptyStructure is returned when a document holds no tree.
var errEmptyStructure = errors.New("no directory tree found in the structure document")

// NewParseCmd creates the parse command.
func NewParseCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "parse <structure.md>",
		Short: "Print the directory tree of a structure document",
		Long: `Parse reads the first ASCII directory tree of a Markdown document and
prints the nodes it found, one per line, indented by depth.

Directories are shown as [DIR], files as [FILE]; annotations written
after "←" follow "<-".

Examples:
  # Show the parsed tree
  treeverify parse structure.md

  # Print the tree as nested JSON
  treeverify parse --json structure.md`,
		Args: cobra.ExactArgs(1),
		RunE: runParseCmd,
	}

	cmd.Flags().BoolP("json", "j", false, "Print the tree as nested JSON")

	return cmd
}

func runParseCmd(cmd *cobra.Command, args []string) error {
	asJSON, err := cmd.Flags().GetBool("json")
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
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(m)
	}

	printTree(out, m)
	dirs, files := m.Counts()
	fmt.Fprintf(out, "\n%d directories, %d files\n", dirs, files)
	return nil
}

// printTree writes one line per node in document order.
func printTree(w io.Writer, m *tree.Model) {
	m.Walk(func(e tree.Entry) bool {
		label := "[FILE]"
		if e.Node.Kind == tree.KindDirectory {
			label = "[DIR]"
		}
		line := strings.Repeat("  ", e.Depth) + label + " " + e.Node.Name
		if e.Node.Annotation != "" {
			line += "  <- " + e.Node.Annotation
		}
		fmt.Fprintln(w, line)
		return true
	})
}
