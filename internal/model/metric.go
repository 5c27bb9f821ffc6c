package model

// MetricKind identifies one of the seven verification metrics.
// The set is closed; every switch over MetricKind lists all of them.
type MetricKind int

const (
	// MetricStructureCoverage compares total directory and file counts.
	MetricStructureCoverage MetricKind = iota
	// MetricFileCoverage diffs expected and actual file paths.
	MetricFileCoverage
	// MetricDirectoryCoverage diffs expected and actual directory paths.
	MetricDirectoryCoverage
	// MetricTemplateAccuracy checks generated file contents for template markers.
	MetricTemplateAccuracy
	// MetricHierarchyAccuracy checks the project, module and feature levels.
	MetricHierarchyAccuracy
	// MetricAnnotationPreservation looks for annotations in generated files.
	MetricAnnotationPreservation
	// MetricModuleIndependence checks that each module is self-contained.
	MetricModuleIndependence
)

// AllMetrics returns every metric kind in weight order.
func AllMetrics() []MetricKind {
	return []MetricKind{
		MetricStructureCoverage,
		MetricFileCoverage,
		MetricDirectoryCoverage,
		MetricTemplateAccuracy,
		MetricHierarchyAccuracy,
		MetricAnnotationPreservation,
		MetricModuleIndependence,
	}
}

// String returns the snake_case key used in JSON output and history.
func (k MetricKind) String() string {
	switch k {
	case MetricStructureCoverage:
		return "structure_coverage"
	case MetricFileCoverage:
		return "file_coverage"
	case MetricDirectoryCoverage:
		return "directory_coverage"
	case MetricTemplateAccuracy:
		return "template_accuracy"
	case MetricHierarchyAccuracy:
		return "hierarchy_accuracy"
	case MetricAnnotationPreservation:
		return "annotation_preservation"
	case MetricModuleIndependence:
		return "module_independence"
	default:
		return "unknown"
	}
}

// Weight returns the share of the metric in the overall score.
// The weights of all kinds sum to 1.0.
func (k MetricKind) Weight() float64 {
	switch k {
	case MetricStructureCoverage:
		return 0.30
	case MetricFileCoverage, MetricDirectoryCoverage:
		return 0.20
	case MetricTemplateAccuracy, MetricHierarchyAccuracy:
		return 0.10
	case MetricAnnotationPreservation, MetricModuleIndependence:
		return 0.05
	default:
		return 0
	}
}

// Thresholds returns the minimum rates for StatusPass and StatusWarn.
func (k MetricKind) Thresholds() (pass, warn float64) {
	switch k {
	case MetricStructureCoverage, MetricFileCoverage, MetricDirectoryCoverage:
		return 0.95, 0.8
	case MetricTemplateAccuracy, MetricHierarchyAccuracy, MetricModuleIndependence:
		return 0.9, 0.7
	case MetricAnnotationPreservation:
		return 0.8, 0.6
	default:
		return 1, 1
	}
}

// Status classifies a rate of this metric.
func (k MetricKind) Status(rate float64) Status {
	pass, warn := k.Thresholds()
	switch {
	case rate >= pass:
		return StatusPass
	case rate >= warn:
		return StatusWarn
	default:
		return StatusFail
	}
}

// ParseMetricKind returns the kind whose String form is s.
func ParseMetricKind(s string) (MetricKind, bool) {
	for _, k := range AllMetrics() {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}
