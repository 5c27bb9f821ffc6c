package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/nao1215/treeverify/internal/i18n"
)

const (
	// AppName is the application name used for XDG directory paths.
	AppName = "treeverify"

	// DefaultBatchSize is the number of generated roots verified at once.
	DefaultBatchSize = 4

	// DefaultDebounce coalesces bursts of file system events in watch mode.
	DefaultDebounce = 500 * time.Millisecond
)

// Config holds the options of one verify run. It is populated from flags,
// the config file and the environment, then passed down explicitly.
type Config struct {
	// StructureFile is the path of the structure document.
	StructureFile string

	// GeneratedPaths are the generated roots to verify.
	GeneratedPaths []string

	// Verbose enables debug logging and detailed text reports.
	Verbose bool

	// BatchSize is the number of roots verified concurrently.
	BatchSize int

	// JSONReport selects JSON output. Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport selects Markdown output. Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile is the output file of the report. Empty means stdout.
	// A language suffix is inserted before the extension for non-English
	// reports, e.g. report.zh-TW.md.
	ReportFile string

	// Lang is the report language.
	Lang i18n.Lang

	// Color enables coloured text reports.
	Color bool

	// DBDir is the directory of the history database.
	// Defaults to the XDG data directory (~/.local/share/treeverify on Linux).
	DBDir string

	// SaveToDB stores every finished run in the history database.
	SaveToDB bool

	// Watch re-runs the verification when a generated root changes.
	Watch bool

	// Debounce is the quiet period before a watch re-run.
	Debounce time.Duration

	// ConfigFilePath is an explicit config file. When empty, .treeverify is
	// searched in the current and home directories.
	ConfigFilePath string

	// File holds the loaded config file, or nil when there is none.
	File *File
}

// NewConfig creates a Config with default values.
func NewConfig() *Config {
	return &Config{
		BatchSize: DefaultBatchSize,
		Lang:      i18n.DefaultLang,
		DBDir:     XDGDataDir(),
		SaveToDB:  true,
		Debounce:  DefaultDebounce,
	}
}

// XDGDataDir returns the XDG data directory for treeverify.
// On Linux: ~/.local/share/treeverify
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// XDGConfigDir returns the XDG config directory for treeverify.
// On Linux: ~/.config/treeverify
func XDGConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// Validate returns the first violated rule, or nil.
func (c *Config) Validate() error {
	if c.StructureFile == "" {
		return ErrNoStructureFile
	}
	if len(c.GeneratedPaths) == 0 {
		return ErrNoGeneratedPath
	}
	if c.BatchSize <= 0 {
		return ErrInvalidBatchSize
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	if _, err := i18n.Parse(string(c.Lang)); err != nil {
		return ErrUnsupportedLanguage
	}
	if c.Watch && c.Debounce <= 0 {
		return ErrInvalidDebounce
	}
	return nil
}

// ReportPath returns ReportFile with the language suffix inserted before
// its extension. It returns "" when ReportFile is empty.
func (c *Config) ReportPath() string {
	if c.ReportFile == "" {
		return ""
	}
	ext := filepath.Ext(c.ReportFile)
	base := c.ReportFile[:len(c.ReportFile)-len(ext)]
	return base + c.Lang.Suffix() + ext
}

// ApplyFile merges the report settings of f into c. Values already set by
// flags win over the file; pass langFromFlag=false when --lang was not given.
func (c *Config) ApplyFile(f *File, langFromFlag bool) error {
	c.File = f
	if f == nil || langFromFlag || f.Report.Lang == "" {
		return nil
	}
	lang, err := i18n.Parse(f.Report.Lang)
	if err != nil {
		return ErrUnsupportedLanguage
	}
	c.Lang = lang
	return nil
}
