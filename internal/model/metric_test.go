package model

import (
	"math"
	"testing"
)

// TestMetricWeights tests that the weights sum to one.
func TestMetricWeights(t *testing.T) {
	t.Parallel()

	sum := 0.0
	for _, kind := range AllMetrics() {
		if kind.Weight() <= 0 {
			t.Errorf("%s: expected positive weight", kind)
		}
		sum += kind.Weight()
	}
	if math.Abs(sum-1.0) > 1e-9 {
		t.Errorf("expected weights to sum to 1.0, got %v", sum)
	}
	if len(AllMetrics()) != 7 {
		t.Errorf("expected 7 metrics, got %d", len(AllMetrics()))
	}
}

// TestMetricKindString tests names and their parsing.
func TestMetricKindString(t *testing.T) {
	t.Parallel()

	for _, kind := range AllMetrics() {
		t.Run(kind.String(), func(t *testing.T) {
			t.Parallel()

			got, ok := ParseMetricKind(kind.String())
			if !ok || got != kind {
				t.Errorf("expected %s to parse back, got %v (%v)", kind, got, ok)
			}
		})
	}
	if MetricKind(42).String() != "unknown" {
		t.Error("expected unknown for out-of-range kind")
	}
	if _, ok := ParseMetricKind("nope"); ok {
		t.Error("expected unknown name not to parse")
	}
}

// TestMetricStatus tests the per-metric thresholds.
func TestMetricStatus(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		kind MetricKind
		rate float64
		want Status
	}{
		{MetricStructureCoverage, 0.95, StatusPass},
		{MetricStructureCoverage, 0.9, StatusWarn},
		{MetricStructureCoverage, 0.79, StatusFail},
		{MetricTemplateAccuracy, 0.9, StatusPass},
		{MetricTemplateAccuracy, 0.7, StatusWarn},
		{MetricModuleIndependence, 0.5, StatusFail},
		{MetricAnnotationPreservation, 0.8, StatusPass},
		{MetricAnnotationPreservation, 0.6, StatusWarn},
		{MetricAnnotationPreservation, 0.59, StatusFail},
	}

	for _, tc := range testCases {
		if got := tc.kind.Status(tc.rate); got != tc.want {
			t.Errorf("%s(%v): expected %s, got %s", tc.kind, tc.rate, tc.want, got)
		}
	}
}

// TestGradeFor tests the overall score grades.
func TestGradeFor(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		score float64
		want  Grade
	}{
		{100, GradeExcellent},
		{90, GradeExcellent},
		{89.99, GradeGood},
		{80, GradeGood},
		{70, GradePass},
		{69.99, GradeFail},
		{0, GradeFail},
	}
	for _, tc := range testCases {
		if got := GradeFor(tc.score); got != tc.want {
			t.Errorf("GradeFor(%v): expected %s, got %s", tc.score, tc.want, got)
		}
	}
}

// TestStatusSymbol tests the report symbols.
func TestStatusSymbol(t *testing.T) {
	t.Parallel()

	if StatusPass.Symbol() != "✅" || StatusWarn.Symbol() != "⚠️" || StatusFail.Symbol() != "❌" {
		t.Error("unexpected status symbols")
	}
}
