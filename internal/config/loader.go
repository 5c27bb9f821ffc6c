package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/nao1215/treeverify/internal/i18n"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".treeverify"

// Environment variables that override configuration.
const (
	EnvLang        = "TREEVERIFY_LANG"
	EnvDBDir       = "TREEVERIFY_DB_DIR"
	EnvSystemDir   = "TREEVERIFY_SYSTEM_DIR"
	EnvProjectName = "TREEVERIFY_PROJECT_NAME"
)

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// LoadConfigFile loads a YAML configuration file.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path is intentional
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. configPath, when given
// 2. .treeverify in the current directory
// 3. .treeverify in the user's home directory
//
// It returns "" when nothing is found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	if cwd, err := os.Getwd(); err == nil {
		p := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		p := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// LoadDotEnv loads KEY=VALUE pairs from the given .env files (default
// ".env") into the process environment. Missing files are ignored and
// variables that are already set are kept.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, p := range paths {
		if _, err := os.Stat(p); errors.Is(err, os.ErrNotExist) {
			continue
		}
		if err := godotenv.Load(p); err != nil {
			return fmt.Errorf("failed to load %s: %w", p, err)
		}
	}
	return nil
}

// LookupFunc looks up an environment variable.
type LookupFunc func(key string) (string, bool)

// ApplyEnv applies TREEVERIFY_* overrides read through lookup (os.LookupEnv
// when nil). Layout overrides create c.File when needed. langFromFlag keeps
// a language chosen on the command line.
func (c *Config) ApplyEnv(lookup LookupFunc, langFromFlag bool) error {
	if lookup == nil {
		lookup = os.LookupEnv
	}

	if v, ok := lookup(EnvLang); ok && v != "" && !langFromFlag {
		lang, err := i18n.Parse(v)
		if err != nil {
			return fmt.Errorf("%w: %s=%s", ErrUnsupportedLanguage, EnvLang, v)
		}
		c.Lang = lang
	}
	if v, ok := lookup(EnvDBDir); ok && v != "" {
		c.DBDir = v
	}

	systemDir, hasSystem := lookup(EnvSystemDir)
	projectName, hasProject := lookup(EnvProjectName)
	if (hasSystem && systemDir != "") || (hasProject && projectName != "") {
		if c.File == nil {
			c.File = &File{}
		}
		if systemDir != "" {
			c.File.Layout.SystemDir = systemDir
		}
		if projectName != "" {
			c.File.Layout.ProjectName = projectName
		}
	}
	return nil
}
