package config

import (
	"github.com/nao1215/treeverify/internal/coverage"
)

// LayoutConfig overrides where generated content is expected.
// Empty fields keep the built-in defaults.
type LayoutConfig struct {
	// SystemDir is the outer wrapper directory (default "system").
	SystemDir string `yaml:"systemDir,omitempty"`

	// ProjectName is the project directory inside SystemDir (default "project1").
	ProjectName string `yaml:"projectName,omitempty"`

	// Modules are checked by the hierarchy and independence metrics.
	Modules []string `yaml:"modules,omitempty"`

	// FrontendModule is the module whose manifest is package.json.
	FrontendModule string `yaml:"frontendModule,omitempty"`

	// FeaturePaths are feature directories relative to the project root.
	FeaturePaths []string `yaml:"featurePaths,omitempty"`

	// Extensions replaces the file extension allow-list of the parser.
	Extensions []string `yaml:"extensions,omitempty"`
}

// ReportConfig holds report preferences.
type ReportConfig struct {
	// Lang is the default report language (en, zh-TW, zh-CN).
	Lang string `yaml:"lang,omitempty"`
}

// File represents the structure of the .treeverify configuration file.
type File struct {
	Layout LayoutConfig `yaml:"layout,omitempty"`
	Report ReportConfig `yaml:"report,omitempty"`
}

// CoverageLayout returns the coverage layout described by the file, with
// defaults for every field left empty. A nil file yields the default layout.
func (f *File) CoverageLayout() coverage.Layout {
	if f == nil {
		return coverage.DefaultLayout()
	}
	return coverage.Layout{
		SystemDir:      f.Layout.SystemDir,
		ProjectName:    f.Layout.ProjectName,
		Modules:        f.Layout.Modules,
		FrontendModule: f.Layout.FrontendModule,
		FeaturePaths:   f.Layout.FeaturePaths,
	}.WithDefaults()
}

// Extensions returns the configured extension allow-list, or nil for the
// parser default.
func (f *File) Extensions() []string {
	if f == nil {
		return nil
	}
	return f.Layout.Extensions
}
