package coverage

import (
	"context"

	"github.com/nao1215/treeverify/internal/model"
)

// IndependenceMetric checks that every module has its own readme,
// manifest and source directory.
type IndependenceMetric struct {
	in *Input
}

// Kind implements Metric.
func (m *IndependenceMetric) Kind() model.MetricKind { return model.MetricModuleIndependence }

// Name implements Metric.
func (m *IndependenceMetric) Name() string { return m.Kind().String() }

// Do implements Metric.
func (m *IndependenceMetric) Do(_ context.Context, report *model.Report) error {
	layout := m.in.layout

	modules := make([]model.ModuleCheck, 0, len(layout.Modules))
	for _, module := range layout.Modules {
		modules = append(modules, model.ModuleCheck{
			Module: module,
			Checks: []model.NamedCheck{
				{Name: "has_readme", Passed: m.in.exists(join(module, ReadmeFile))},
				{Name: "has_config", Passed: m.in.exists(join(module, layout.Manifest(module)))},
				{Name: "has_src", Passed: m.in.exists(join(module, SourceDir))},
			},
		})
	}

	report.ModuleIndependence = model.NewModuleIndependence(modules)
	return nil
}
