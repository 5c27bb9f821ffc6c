package coverage

import (
	"context"
	"fmt"

	"github.com/nao1215/treeverify/internal/model"
)

// StructureMetric compares how many directories and files exist in total.
// Expected counts include every node of the model, the layout wrapper
// segments too; actual counts cover everything below the project root.
// Rates stop at 1 when the generated tree holds extra entries.
type StructureMetric struct {
	in *Input
}

// Kind implements Metric.
func (m *StructureMetric) Kind() model.MetricKind { return model.MetricStructureCoverage }

// Name implements Metric.
func (m *StructureMetric) Name() string { return m.Kind().String() }

// Do implements Metric.
func (m *StructureMetric) Do(_ context.Context, report *model.Report) error {
	snap, err := m.in.Snapshot()
	if err != nil {
		return fmt.Errorf("structure coverage: %w", err)
	}

	expDirs, expFiles := m.in.model.Counts()
	actDirs, actFiles := snap.Counts()

	report.StructureCoverage = model.StructureCoverage{
		ExpectedDirectories:   expDirs,
		ActualDirectories:     actDirs,
		ExpectedFiles:         expFiles,
		ActualFiles:           actFiles,
		DirectoryCoverageRate: model.CappedRatio(actDirs, expDirs),
		FileCoverageRate:      model.CappedRatio(actFiles, expFiles),
		OverallCoverage:       model.CappedRatio(actDirs+actFiles, expDirs+expFiles),
	}
	return nil
}
