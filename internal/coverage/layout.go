package coverage

import (
	"path"
	"path/filepath"
)

// Default layout values.
const (
	DefaultSystemDir      = "system"
	DefaultProjectName    = "project1"
	DefaultFrontendModule = "frontend"
)

// Manifest file names checked per module.
const (
	BuildManifest   = "pyproject.toml"
	PackageManifest = "package.json"
	ReadmeFile      = "README.md"
	SourceDir       = "src"
	DocsDir         = "docs"
)

// DefaultModules returns the modules checked by the hierarchy and
// independence metrics.
func DefaultModules() []string {
	return []string{"core", "backend", "jobs", "cli", "frontend"}
}

// DefaultFeaturePaths returns the feature directories, relative to the
// project root, checked by the hierarchy metric.
func DefaultFeaturePaths() []string {
	return []string{
		"core/src/core",
		"core/src/domain",
		"backend/src/api",
		"backend/src/domain",
		"jobs/src/tasks",
		"cli/src/commands",
		"frontend/src/components",
	}
}

// Layout describes where generated content lives and which modules and
// features are expected in it.
type Layout struct {
	SystemDir      string
	ProjectName    string
	Modules        []string
	FrontendModule string
	FeaturePaths   []string
}

// DefaultLayout returns the standard system/project1 layout.
func DefaultLayout() Layout {
	return Layout{
		SystemDir:      DefaultSystemDir,
		ProjectName:    DefaultProjectName,
		Modules:        DefaultModules(),
		FrontendModule: DefaultFrontendModule,
		FeaturePaths:   DefaultFeaturePaths(),
	}
}

// WithDefaults fills every empty field from DefaultLayout.
func (l Layout) WithDefaults() Layout {
	d := DefaultLayout()
	if l.SystemDir == "" {
		l.SystemDir = d.SystemDir
	}
	if l.ProjectName == "" {
		l.ProjectName = d.ProjectName
	}
	if len(l.Modules) == 0 {
		l.Modules = d.Modules
	}
	if l.FrontendModule == "" {
		l.FrontendModule = d.FrontendModule
	}
	if len(l.FeaturePaths) == 0 {
		l.FeaturePaths = d.FeaturePaths
	}
	return l
}

// ProjectRoot returns the project directory below a generated root.
func (l Layout) ProjectRoot(root string) string {
	return filepath.Join(root, l.SystemDir, l.ProjectName)
}

// SkipSegments returns the wrapper names stripped from expected paths.
func (l Layout) SkipSegments() []string {
	return []string{l.SystemDir, l.ProjectName}
}

// Manifest returns the manifest expected in module: the package manifest
// for the front-end module and the build manifest for every other one.
func (l Layout) Manifest(module string) string {
	if module == l.FrontendModule {
		return PackageManifest
	}
	return BuildManifest
}

// join builds a project-relative slash path.
func join(elem ...string) string {
	return path.Join(elem...)
}
