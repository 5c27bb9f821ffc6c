package coverage

import (
	"context"
	"fmt"

	"github.com/nao1215/treeverify/internal/model"
)

// Metric computes one sub-record of a model.Report. Every Metric satisfies
// pipeline.Step.
type Metric interface {
	// Kind returns the metric computed by this variant.
	Kind() model.MetricKind
	// Name returns the step name used in logs.
	Name() string
	// Do fills the metric's sub-record of report.
	Do(ctx context.Context, report *model.Report) error
}

// New returns the Metric variant for kind.
func New(kind model.MetricKind, in *Input) (Metric, error) {
	switch kind {
	case model.MetricStructureCoverage:
		return &StructureMetric{in: in}, nil
	case model.MetricFileCoverage:
		return &FileMetric{in: in}, nil
	case model.MetricDirectoryCoverage:
		return &DirectoryMetric{in: in}, nil
	case model.MetricTemplateAccuracy:
		return &TemplateMetric{in: in}, nil
	case model.MetricHierarchyAccuracy:
		return &HierarchyMetric{in: in}, nil
	case model.MetricAnnotationPreservation:
		return &AnnotationMetric{in: in}, nil
	case model.MetricModuleIndependence:
		return &IndependenceMetric{in: in}, nil
	default:
		return nil, fmt.Errorf("unknown metric kind %d", kind)
	}
}

// Steps returns one Metric per kind, in weight order.
func Steps(in *Input) []Metric {
	return []Metric{
		&StructureMetric{in: in},
		&FileMetric{in: in},
		&DirectoryMetric{in: in},
		&TemplateMetric{in: in},
		&HierarchyMetric{in: in},
		&AnnotationMetric{in: in},
		&IndependenceMetric{in: in},
	}
}

// Compute runs every metric sequentially and finalizes the report.
// It stops at the first error, leaving earlier sub-records filled.
func Compute(ctx context.Context, in *Input, report *model.Report) error {
	for _, m := range Steps(in) {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := m.Do(ctx, report); err != nil {
			report.Error = err
			report.Finalize()
			return err
		}
		report.MarkPerformed(m.Name())
	}
	report.StructureDigest = in.model.Digest()
	report.Finalize()
	return nil
}
