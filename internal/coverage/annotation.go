package coverage

import (
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/nao1215/treeverify/internal/model"
)

// AnnotationMetric looks for every annotation of the model, verbatim, in
// the generated readme and Python files. An annotation counts as preserved
// when it occurs as a substring of any of them. Repeated annotation texts
// are separate expected entries; unreadable files are skipped.
type AnnotationMetric struct {
	in *Input
}

// Kind implements Metric.
func (m *AnnotationMetric) Kind() model.MetricKind { return model.MetricAnnotationPreservation }

// Name implements Metric.
func (m *AnnotationMetric) Name() string { return m.Kind().String() }

// Do implements Metric.
func (m *AnnotationMetric) Do(ctx context.Context, report *model.Report) error {
	snap, err := m.in.Snapshot()
	if err != nil {
		return fmt.Errorf("annotation preservation: %w", err)
	}

	var contents []string
	for _, rel := range snap.FilesMatching(isAnnotationCarrier) {
		if err := ctx.Err(); err != nil {
			return err
		}
		content, err := m.in.read(rel)
		if err != nil {
			m.in.logger.Debug("annotation check skipped file", "file", rel, "error", err)
			continue
		}
		contents = append(contents, content)
	}

	report.AnnotationPreservation = Preservation(m.in.model.Annotations(), contents)
	return nil
}

// isAnnotationCarrier reports whether a generated file may hold annotations.
func isAnnotationCarrier(rel string) bool {
	return path.Base(rel) == ReadmeFile || strings.HasSuffix(rel, ".py")
}

// Preservation counts how many annotations occur in any of contents.
func Preservation(annotations, contents []string) model.AnnotationPreservation {
	result := model.AnnotationPreservation{
		ExpectedCount:      len(annotations),
		MissingAnnotations: []string{},
	}
	for _, annotation := range annotations {
		if containedInAny(annotation, contents) {
			result.PreservedCount++
		} else {
			result.MissingAnnotations = append(result.MissingAnnotations, annotation)
		}
	}
	result.PreservationRate = model.Ratio(result.PreservedCount, result.ExpectedCount)
	return result
}

func containedInAny(needle string, haystacks []string) bool {
	for _, h := range haystacks {
		if strings.Contains(h, needle) {
			return true
		}
	}
	return false
}
