package coverage

import (
	"context"
	"fmt"
	"slices"

	"github.com/nao1215/treeverify/internal/model"
)

// PathDiff is the comparison of an expected and an actual path set.
type PathDiff struct {
	Expected int
	Actual   int
	Matched  int
	// Missing holds expected paths that do not exist, sorted.
	Missing []string
	// Extra holds existing paths that were not expected, sorted.
	Extra []string
}

// CoverageRate returns matched / expected.
func (d PathDiff) CoverageRate() float64 {
	return model.Ratio(d.Matched, d.Expected)
}

// AccuracyRate returns matched / actual.
func (d PathDiff) AccuracyRate() float64 {
	return model.Ratio(d.Matched, d.Actual)
}

// Diff compares two path lists as sets. Duplicates count once.
func Diff(expected, actual []string) PathDiff {
	exp := toSet(expected)
	act := toSet(actual)

	d := PathDiff{
		Expected: len(exp),
		Actual:   len(act),
		Missing:  []string{},
		Extra:    []string{},
	}
	for p := range exp {
		if _, ok := act[p]; ok {
			d.Matched++
		} else {
			d.Missing = append(d.Missing, p)
		}
	}
	for p := range act {
		if _, ok := exp[p]; !ok {
			d.Extra = append(d.Extra, p)
		}
	}
	slices.Sort(d.Missing)
	slices.Sort(d.Extra)
	return d
}

func toSet(items []string) map[string]struct{} {
	set := make(map[string]struct{}, len(items))
	for _, item := range items {
		set[item] = struct{}{}
	}
	return set
}

// FileMetric diffs expected and actual file paths.
type FileMetric struct {
	in *Input
}

// Kind implements Metric.
func (m *FileMetric) Kind() model.MetricKind { return model.MetricFileCoverage }

// Name implements Metric.
func (m *FileMetric) Name() string { return m.Kind().String() }

// Do implements Metric.
func (m *FileMetric) Do(_ context.Context, report *model.Report) error {
	snap, err := m.in.Snapshot()
	if err != nil {
		return fmt.Errorf("file coverage: %w", err)
	}
	_, expected := m.in.ExpectedPaths()
	report.FileCoverage = FileCoverageOf(expected, snap.Files)
	return nil
}

// FileCoverageOf builds the file coverage record of two path lists.
func FileCoverageOf(expected, actual []string) model.FileCoverage {
	d := Diff(expected, actual)
	return model.FileCoverage{
		ExpectedCount: d.Expected,
		ActualCount:   d.Actual,
		MatchedCount:  d.Matched,
		MissingFiles:  d.Missing,
		ExtraFiles:    d.Extra,
		CoverageRate:  d.CoverageRate(),
		AccuracyRate:  d.AccuracyRate(),
	}
}

// DirectoryMetric diffs expected and actual directory paths.
type DirectoryMetric struct {
	in *Input
}

// Kind implements Metric.
func (m *DirectoryMetric) Kind() model.MetricKind { return model.MetricDirectoryCoverage }

// Name implements Metric.
func (m *DirectoryMetric) Name() string { return m.Kind().String() }

// Do implements Metric.
func (m *DirectoryMetric) Do(_ context.Context, report *model.Report) error {
	snap, err := m.in.Snapshot()
	if err != nil {
		return fmt.Errorf("directory coverage: %w", err)
	}
	expected, _ := m.in.ExpectedPaths()
	report.DirectoryCoverage = DirectoryCoverageOf(expected, snap.Directories)
	return nil
}

// DirectoryCoverageOf builds the directory coverage record of two path lists.
func DirectoryCoverageOf(expected, actual []string) model.DirectoryCoverage {
	d := Diff(expected, actual)
	return model.DirectoryCoverage{
		ExpectedCount:      d.Expected,
		ActualCount:        d.Actual,
		MatchedCount:       d.Matched,
		MissingDirectories: d.Missing,
		ExtraDirectories:   d.Extra,
		CoverageRate:       d.CoverageRate(),
		AccuracyRate:       d.AccuracyRate(),
	}
}
