package coverage

import (
	"context"

	"github.com/nao1215/treeverify/internal/fsscan"
	"github.com/nao1215/treeverify/internal/model"
)

// HierarchyMetric checks the three levels of a generated project: the
// project itself, each module, and each feature directory. The overall
// accuracy is the mean of the three level accuracies.
type HierarchyMetric struct {
	in *Input
}

// Kind implements Metric.
func (m *HierarchyMetric) Kind() model.MetricKind { return model.MetricHierarchyAccuracy }

// Name implements Metric.
func (m *HierarchyMetric) Name() string { return m.Kind().String() }

// Do implements Metric.
func (m *HierarchyMetric) Do(_ context.Context, report *model.Report) error {
	layout := m.in.layout

	project := model.NewLevelResult([]model.NamedCheck{
		{Name: "has_project_root", Passed: fsscan.IsDir(m.in.ProjectRoot())},
		{Name: "has_project_readme", Passed: m.in.exists(ReadmeFile)},
		{Name: "has_docs", Passed: m.in.exists(DocsDir)},
	})

	modules := make([]model.ModuleCheck, 0, len(layout.Modules))
	for _, module := range layout.Modules {
		modules = append(modules, model.ModuleCheck{
			Module: module,
			Checks: []model.NamedCheck{
				{Name: "exists", Passed: m.in.exists(module)},
				{Name: "has_readme", Passed: m.in.exists(join(module, ReadmeFile))},
				{Name: "has_config", Passed: m.in.exists(join(module, layout.Manifest(module)))},
			},
		})
	}

	features := make([]model.NamedCheck, 0, len(layout.FeaturePaths))
	for _, feature := range layout.FeaturePaths {
		features = append(features, model.NamedCheck{Name: feature, Passed: m.in.exists(feature)})
	}

	h := model.HierarchyAccuracy{
		ProjectLevel: project,
		ModuleLevel:  model.NewModuleLevelResult(modules),
		FeatureLevel: model.NewLevelResult(features),
	}
	h.OverallAccuracy = (h.ProjectLevel.Accuracy + h.ModuleLevel.Accuracy + h.FeatureLevel.Accuracy) / 3

	report.HierarchyAccuracy = h
	return nil
}
