package model

// StructureCoverage compares the total number of directories and files.
type StructureCoverage struct {
	ExpectedDirectories   int     `json:"expected_directories"`
	ActualDirectories     int     `json:"actual_directories"`
	ExpectedFiles         int     `json:"expected_files"`
	ActualFiles           int     `json:"actual_files"`
	DirectoryCoverageRate float64 `json:"directory_coverage_rate"`
	FileCoverageRate      float64 `json:"file_coverage_rate"`
	OverallCoverage       float64 `json:"overall_coverage"`
}

// FileCoverage is the diff of expected and actual file paths.
type FileCoverage struct {
	ExpectedCount int      `json:"expected_count"`
	ActualCount   int      `json:"actual_count"`
	MatchedCount  int      `json:"matched_count"`
	MissingFiles  []string `json:"missing_files"`
	ExtraFiles    []string `json:"extra_files"`
	// CoverageRate is matched / expected.
	CoverageRate float64 `json:"coverage_rate"`
	// AccuracyRate is matched / actual.
	AccuracyRate float64 `json:"accuracy_rate"`
}

// DirectoryCoverage is the diff of expected and actual directory paths.
type DirectoryCoverage struct {
	ExpectedCount      int      `json:"expected_count"`
	ActualCount        int      `json:"actual_count"`
	MatchedCount       int      `json:"matched_count"`
	MissingDirectories []string `json:"missing_directories"`
	ExtraDirectories   []string `json:"extra_directories"`
	CoverageRate       float64  `json:"coverage_rate"`
	AccuracyRate       float64  `json:"accuracy_rate"`
}

// TemplateCheck is the result of checking one generated file.
type TemplateCheck struct {
	// File is the path relative to the project root.
	File   string `json:"file"`
	Passed bool   `json:"passed"`
	// Details holds the individual markers that were looked for.
	// It is empty when the file could not be read.
	Details map[string]bool `json:"details,omitempty"`
	// Error explains why the file could not be read.
	Error string `json:"error,omitempty"`
}

// TemplateCategory groups the checks of one file category, such as
// "pyproject.toml" or "python_files".
type TemplateCategory struct {
	Name   string          `json:"name"`
	Checks []TemplateCheck `json:"checks"`
}

// TemplateAccuracy is the share of generated files carrying their template markers.
type TemplateAccuracy struct {
	TemplateFiles []TemplateCategory `json:"template_files"`
	TotalChecks   int                `json:"total_checks"`
	PassedChecks  int                `json:"passed_checks"`
	AccuracyRate  float64            `json:"accuracy_rate"`
}

// NamedCheck is a boolean check with a stable key.
type NamedCheck struct {
	Name   string `json:"name"`
	Passed bool   `json:"passed"`
}

// ModuleCheck holds the checks made for one module.
type ModuleCheck struct {
	Module string       `json:"module"`
	Checks []NamedCheck `json:"checks"`
}

// Passed returns the number of passed checks of the module.
func (m ModuleCheck) Passed() int {
	return countPassed(m.Checks)
}

// LevelResult is the outcome of one hierarchy level.
type LevelResult struct {
	Checks       []NamedCheck  `json:"checks,omitempty"`
	ModuleChecks []ModuleCheck `json:"module_checks,omitempty"`
	Passed       int           `json:"passed"`
	Total        int           `json:"total"`
	Accuracy     float64       `json:"accuracy"`
}

// NewLevelResult tallies flat checks.
func NewLevelResult(checks []NamedCheck) LevelResult {
	passed := countPassed(checks)
	return LevelResult{
		Checks:   checks,
		Passed:   passed,
		Total:    len(checks),
		Accuracy: Ratio(passed, len(checks)),
	}
}

// NewModuleLevelResult tallies per-module checks.
func NewModuleLevelResult(modules []ModuleCheck) LevelResult {
	passed, total := tallyModules(modules)
	return LevelResult{
		ModuleChecks: modules,
		Passed:       passed,
		Total:        total,
		Accuracy:     Ratio(passed, total),
	}
}

// HierarchyAccuracy checks the project, module and feature levels.
type HierarchyAccuracy struct {
	ProjectLevel LevelResult `json:"project_level"`
	ModuleLevel  LevelResult `json:"module_level"`
	FeatureLevel LevelResult `json:"feature_level"`
	// OverallAccuracy is the mean of the three level accuracies.
	OverallAccuracy float64 `json:"overall_accuracy"`
}

// AnnotationPreservation is the share of annotations found in generated files.
type AnnotationPreservation struct {
	ExpectedCount      int      `json:"expected_count"`
	PreservedCount     int      `json:"preserved_count"`
	PreservationRate   float64  `json:"preservation_rate"`
	MissingAnnotations []string `json:"missing_annotations"`
}

// ModuleIndependence checks that every module carries its own readme,
// manifest and source directory.
type ModuleIndependence struct {
	ModuleChecks     []ModuleCheck `json:"module_checks"`
	TotalChecks      int           `json:"total_checks"`
	PassedChecks     int           `json:"passed_checks"`
	IndependenceRate float64       `json:"independence_rate"`
}

// NewModuleIndependence tallies per-module checks.
func NewModuleIndependence(modules []ModuleCheck) ModuleIndependence {
	passed, total := tallyModules(modules)
	return ModuleIndependence{
		ModuleChecks:     modules,
		TotalChecks:      total,
		PassedChecks:     passed,
		IndependenceRate: Ratio(passed, total),
	}
}

func countPassed(checks []NamedCheck) int {
	n := 0
	for _, c := range checks {
		if c.Passed {
			n++
		}
	}
	return n
}

func tallyModules(modules []ModuleCheck) (passed, total int) {
	for _, m := range modules {
		passed += m.Passed()
		total += len(m.Checks)
	}
	return passed, total
}
