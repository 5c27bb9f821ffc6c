package model

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Report is the Metrics Record of one verification run: the seven metric
// sub-records plus the run metadata needed to render and store it.
type Report struct {
	// === Run Information ===

	// RunID uniquely identifies the run across history.
	RunID string `json:"run_id"`

	// StructureFile is the path of the structure document.
	StructureFile string `json:"structure_file"`

	// StructureDigest is the hex SHA3-256 digest of the structure document.
	StructureDigest string `json:"structure_digest,omitempty"`

	// GeneratedPath is the generated root that was verified.
	GeneratedPath string `json:"generated_path"`

	// DateVerified is when the run started.
	DateVerified time.Time `json:"date_verified"`

	// === Metrics ===

	StructureCoverage      StructureCoverage      `json:"structure_coverage"`
	FileCoverage           FileCoverage           `json:"file_coverage"`
	DirectoryCoverage      DirectoryCoverage      `json:"directory_coverage"`
	TemplateAccuracy       TemplateAccuracy       `json:"template_accuracy"`
	HierarchyAccuracy      HierarchyAccuracy      `json:"hierarchy_accuracy"`
	AnnotationPreservation AnnotationPreservation `json:"annotation_preservation"`
	ModuleIndependence     ModuleIndependence     `json:"module_independence"`

	// OverallScore is the weighted score in [0, 100], set by Finalize.
	OverallScore float64 `json:"overall_score"`

	// === Run State ===

	// PerformedSteps lists the steps that completed, in order.
	PerformedSteps []string `json:"performed_steps,omitempty"`

	// Cancelled is true if the run was stopped by context cancellation.
	Cancelled bool `json:"cancelled,omitempty"`

	// Error is the first error that stopped the run, if any.
	Error error `json:"-"`

	// ErrorMessage is the string form of Error for serialization.
	ErrorMessage string `json:"error,omitempty"` //nolint:tagliatelle // error is conventional
}

// NewReport creates an empty report for verifying generatedPath against
// the structure document at structureFile.
func NewReport(structureFile, generatedPath string) *Report {
	return &Report{
		RunID:         uuid.New().String(),
		StructureFile: structureFile,
		GeneratedPath: generatedPath,
		DateVerified:  time.Now(),
	}
}

// Rate returns the headline rate of the given metric.
func (r *Report) Rate(kind MetricKind) float64 {
	switch kind {
	case MetricStructureCoverage:
		return r.StructureCoverage.OverallCoverage
	case MetricFileCoverage:
		return r.FileCoverage.CoverageRate
	case MetricDirectoryCoverage:
		return r.DirectoryCoverage.CoverageRate
	case MetricTemplateAccuracy:
		return r.TemplateAccuracy.AccuracyRate
	case MetricHierarchyAccuracy:
		return r.HierarchyAccuracy.OverallAccuracy
	case MetricAnnotationPreservation:
		return r.AnnotationPreservation.PreservationRate
	case MetricModuleIndependence:
		return r.ModuleIndependence.IndependenceRate
	default:
		return 0
	}
}

// Contribution returns the points the metric adds to the overall score.
func (r *Report) Contribution(kind MetricKind) float64 {
	return kind.Weight() * r.Rate(kind) * 100
}

// Score computes the weighted overall score rounded to two decimals.
func (r *Report) Score() float64 {
	total := 0.0
	for _, kind := range AllMetrics() {
		total += r.Contribution(kind)
	}
	total = min(max(total, 0), 100)
	return math.Round(total*100) / 100
}

// Grade returns the grade of the overall score.
func (r *Report) Grade() Grade {
	return GradeFor(r.OverallScore)
}

// MarkPerformed records that the named step has completed.
func (r *Report) MarkPerformed(step string) {
	r.PerformedSteps = append(r.PerformedSteps, step)
}

// Finalize sets OverallScore and copies Error into ErrorMessage.
func (r *Report) Finalize() {
	r.OverallScore = r.Score()
	if r.Error != nil {
		r.ErrorMessage = r.Error.Error()
	}
}

// Ratio divides n by d and returns 0 when d is zero.
func Ratio(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}

// CappedRatio is Ratio limited to 1. Count comparisons use it because the
// actual tree may hold more entries than the model lists.
func CappedRatio(n, d int) float64 {
	return min(Ratio(n, d), 1)
}
