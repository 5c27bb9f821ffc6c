package coverage

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/nao1215/treeverify/internal/model"
)

// Template category names.
const (
	CategoryBuildManifest   = "pyproject.toml"
	CategoryPackageManifest = "package.json"
	CategoryPython          = "python_files"
	CategoryReadme          = "readme_files"
)

// templateRule checks the content of one category of generated files.
type templateRule struct {
	category string
	match    func(rel string) bool
	check    func(content string) (passed bool, details map[string]bool)
}

var templateRules = []templateRule{
	{
		category: CategoryBuildManifest,
		match:    baseIs(BuildManifest),
		check: func(content string) (bool, map[string]bool) {
			hasProject := strings.Contains(content, "[project]")
			return hasProject && strings.Contains(content, "name ="), map[string]bool{
				"has_build_system":    strings.Contains(content, "[build-system]"),
				"has_project_section": hasProject,
			}
		},
	},
	{
		category: CategoryPackageManifest,
		match:    baseIs(PackageManifest),
		check: func(content string) (bool, map[string]bool) {
			hasName := strings.Contains(content, `"name"`)
			hasVersion := strings.Contains(content, `"version"`)
			return hasName && hasVersion, map[string]bool{
				"has_name":    hasName,
				"has_version": hasVersion,
			}
		},
	},
	{
		category: CategoryPython,
		match: func(rel string) bool {
			return strings.HasSuffix(rel, ".py")
		},
		check: func(content string) (bool, map[string]bool) {
			hasDocstring := strings.Contains(content, `"""`)
			hasMain := strings.Contains(content, "def main()")
			return hasDocstring || hasMain, map[string]bool{
				"has_docstring": hasDocstring,
				"has_main":      hasMain,
			}
		},
	},
	{
		category: CategoryReadme,
		match:    baseIs(ReadmeFile),
		check: func(content string) (bool, map[string]bool) {
			hasContent := strings.TrimSpace(content) != ""
			return hasContent, map[string]bool{"has_content": hasContent}
		},
	},
}

func baseIs(name string) func(string) bool {
	return func(rel string) bool {
		return path.Base(rel) == name
	}
}

// TemplateMetric checks that generated files carry their template markers.
// Files that cannot be read count as failed checks.
type TemplateMetric struct {
	in *Input
}

// Kind implements Metric.
func (m *TemplateMetric) Kind() model.MetricKind { return model.MetricTemplateAccuracy }

// Name implements Metric.
func (m *TemplateMetric) Name() string { return m.Kind().String() }

// Do implements Metric.
func (m *TemplateMetric) Do(ctx context.Context, report *model.Report) error {
	snap, err := m.in.Snapshot()
	if err != nil {
		return fmt.Errorf("template accuracy: %w", err)
	}

	result := model.TemplateAccuracy{
		TemplateFiles: make([]model.TemplateCategory, 0, len(templateRules)),
	}
	for _, rule := range templateRules {
		if err := ctx.Err(); err != nil {
			return err
		}

		category := model.TemplateCategory{Name: rule.category, Checks: []model.TemplateCheck{}}
		for _, rel := range snap.FilesMatching(rule.match) {
			category.Checks = append(category.Checks, m.check(rule, rel))
		}
		for _, c := range category.Checks {
			result.TotalChecks++
			if c.Passed {
				result.PassedChecks++
			}
		}
		result.TemplateFiles = append(result.TemplateFiles, category)
	}
	result.AccuracyRate = model.Ratio(result.PassedChecks, result.TotalChecks)

	report.TemplateAccuracy = result
	return nil
}

func (m *TemplateMetric) check(rule templateRule, rel string) model.TemplateCheck {
	content, err := m.in.read(rel)
	if err != nil {
		m.in.logger.Debug("template check failed to read file", "file", rel, "error", err)
		return model.TemplateCheck{File: rel, Error: err.Error()}
	}
	passed, details := rule.check(content)
	return model.TemplateCheck{File: rel, Passed: passed, Details: details}
}
