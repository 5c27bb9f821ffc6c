package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/nao1215/treeverify/internal/config"
	"github.com/nao1215/treeverify/internal/i18n"
	"github.com/nao1215/treeverify/internal/tree"
)

// langAuto selects the report language from the locale environment.
const langAuto = "auto"

// getVerboseFlag retrieves the verbose flag from the command or its parent.
func getVerboseFlag(cmd *cobra.Command) bool {
	return boolFlag(cmd, "verbose")
}

// boolFlag returns the named flag, or false when cmd does not define it.
// Persistent flags of a parent are found once cobra has parsed them.
func boolFlag(cmd *cobra.Command, name string) bool {
	if f := cmd.Flags().Lookup(name); f != nil {
		v, err := cmd.Flags().GetBool(name)
		return err == nil && v
	}
	v, err := cmd.Root().PersistentFlags().GetBool(name)
	return err == nil && v
}

// stringFlag is boolFlag for string flags.
func stringFlag(cmd *cobra.Command, name string) string {
	if f := cmd.Flags().Lookup(name); f != nil {
		return f.Value.String()
	}
	if f := cmd.Root().PersistentFlags().Lookup(name); f != nil {
		return f.Value.String()
	}
	return ""
}

// loadSettings builds a Config from the configuration file and the
// TREEVERIFY_* environment. Command flags are applied by the caller.
//
// An explicit --config path must exist; without one, a missing
// .treeverify simply leaves the defaults in place.
func loadSettings(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.NewConfig()
	cfg.Verbose = getVerboseFlag(cmd)
	cfg.ConfigFilePath = stringFlag(cmd, "config")

	var file *config.File
	if path := config.FindConfigFile(cfg.ConfigFilePath); path != "" {
		f, err := config.LoadConfigFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
		file = f
	} else if cfg.ConfigFilePath != "" {
		return nil, fmt.Errorf("%w: %s", config.ErrConfigNotFound, cfg.ConfigFilePath)
	}

	langFromFlag := cmd.Flags().Changed("lang")
	if err := cfg.ApplyFile(file, langFromFlag); err != nil {
		return nil, err
	}
	if err := cfg.ApplyEnv(nil, langFromFlag); err != nil {
		return nil, err
	}
	if langFromFlag {
		value := stringFlag(cmd, "lang")
		lang, err := resolveLang(value)
		if err != nil {
			return nil, fmt.Errorf("%w: %q", config.ErrUnsupportedLanguage, value)
		}
		cfg.Lang = lang
	}
	return cfg, nil
}

// resolveLang parses a --lang value. "auto" matches the locale variables
// against the supported languages and falls back to English.
func resolveLang(value string) (i18n.Lang, error) {
	if strings.EqualFold(value, langAuto) {
		return i18n.Match(localeTags()...), nil
	}
	return i18n.Parse(value)
}

// localeTags converts LC_ALL, LC_MESSAGES and LANG into BCP 47 tags,
// e.g. "zh_TW.UTF-8" becomes "zh-TW".
func localeTags() []string {
	var tags []string
	for _, key := range []string{"LC_ALL", "LC_MESSAGES", "LANG"} {
		v := os.Getenv(key)
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		tags = append(tags, strings.ReplaceAll(v, "_", "-"))
	}
	return tags
}

// newParser creates a tree parser honouring the configured extensions.
func newParser(cfg *config.Config) *tree.Parser {
	return tree.NewParser(
		tree.WithExtensions(cfg.File.Extensions()),
		tree.WithLogger(slog.Default()),
	)
}

// parseStructure parses the structure document of cfg.
func parseStructure(cfg *config.Config) (*tree.Model, error) {
	return newParser(cfg).ParseFile(cfg.StructureFile)
}

// openOutputFile creates path and its parent directories, truncating an
// existing file.
func openOutputFile(path string) (io.Writer, func() error, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, nil, fmt.Errorf("failed to create output directory: %w", err)
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600) //nolint:gosec // path is chosen by the user
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create output file: %w", err)
	}
	return f, f.Close, nil
}
