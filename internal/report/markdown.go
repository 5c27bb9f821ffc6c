package report

import (
	"fmt"
	"io"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/markdown/mermaid/piechart"
	"github.com/nao1215/treeverify/internal/i18n"
	"github.com/nao1215/treeverify/internal/model"
	"golang.org/x/text/cases"
)

// MarkdownWriter outputs reports as GitHub-flavoured Markdown with a
// summary table, a mermaid chart of score contributions and one section
// per metric.
type MarkdownWriter struct {
	baseWriter

	title cases.Caser
}

// NewMarkdownWriter creates a MarkdownWriter with labels from catalog.
// A nil catalog uses the default language.
func NewMarkdownWriter(output io.Writer, catalog *i18n.Catalog) *MarkdownWriter {
	base := newBaseWriter(output, catalog)
	return &MarkdownWriter{
		baseWriter: base,
		title:      cases.Title(base.catalog.Lang().Tag()),
	}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, report)
	w.writeOverall(md, report)
	w.writeSummary(md, report)
	w.writeDetails(md, report)
	w.writeFooter(md)

	return len(md.String()), md.Build()
}

// writeHeader writes the title and the run information table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, report *model.Report) {
	md.H1(w.catalog.T(i18n.KeyTitle))
	md.PlainText("")

	rows := [][]string{
		{w.catalog.T(i18n.KeyStructureFile), "`" + report.StructureFile + "`"},
		{w.catalog.T(i18n.KeyGeneratedPath), "`" + report.GeneratedPath + "`"},
		{w.catalog.T(i18n.KeyDateVerified), report.DateVerified.Format("2006-01-02 15:04:05 MST")},
		{w.catalog.T(i18n.KeyRunID), "`" + report.RunID + "`"},
	}
	if report.StructureDigest != "" {
		rows = append(rows, []string{w.catalog.T(i18n.KeyStructureDigest), "`" + shortDigest(report.StructureDigest) + "`"})
	}
	md.Table(markdown.TableSet{
		Header: []string{w.catalog.T(i18n.KeyRunInfo), ""},
		Rows:   rows,
	})
	md.PlainText("")
}

// writeOverall writes the score, the grade and the grade alert.
func (w *MarkdownWriter) writeOverall(md *markdown.Markdown, report *model.Report) {
	md.H2(w.catalog.T(i18n.KeyOverallMetrics))
	md.PlainText("")
	md.PlainTextf("**%s**: %s / 100", w.catalog.T(i18n.KeyOverallScore), points(report.OverallScore))
	md.PlainText("")
	md.PlainTextf("**%s**: %s", w.catalog.T(i18n.KeyGrade), w.gradeLabel(report))
	md.PlainText("")

	desc := w.gradeDescription(report)
	switch report.Grade() {
	case model.GradeExcellent:
		md.Tip(desc)
	case model.GradeGood:
		md.Note(desc)
	case model.GradePass:
		md.Warningf("%s", desc)
	default:
		md.Cautionf("%s", desc)
	}
	md.PlainText("")

	if report.ErrorMessage != "" {
		md.Importantf("%s", w.catalog.T(i18n.KeyRunError, report.ErrorMessage))
		md.PlainText("")
	}
}

// writeSummary writes the metrics table and the contribution chart.
func (w *MarkdownWriter) writeSummary(md *markdown.Markdown, report *model.Report) {
	md.H2(w.catalog.T(i18n.KeySummary))
	md.PlainText("")

	rows := make([][]string, 0, len(model.AllMetrics()))
	for _, kind := range model.AllMetrics() {
		rate := report.Rate(kind)
		rows = append(rows, []string{
			w.metricName(kind),
			percent(rate),
			kind.Status(rate).Symbol(),
			strconv.Itoa(int(math.Round(kind.Weight()*100))) + "%",
			points(report.Contribution(kind)),
		})
	}
	rows = append(rows, []string{
		"**" + w.catalog.T(i18n.KeyOverallScore) + "**", "", "", "100%",
		"**" + points(report.OverallScore) + "**",
	})

	md.Table(markdown.TableSet{
		Header: []string{
			w.catalog.T(i18n.KeyMetric),
			w.catalog.T(i18n.KeyScore),
			w.catalog.T(i18n.KeyStatus),
			w.catalog.T(i18n.KeyWeight),
			w.catalog.T(i18n.KeyContribution),
		},
		Rows: rows,
	})
	md.PlainText("")

	if report.OverallScore > 0 {
		w.writePieChart(md, report)
	}
}

// writePieChart writes a mermaid pie chart of the weighted contributions,
// rounded to whole points.
func (w *MarkdownWriter) writePieChart(md *markdown.Markdown, report *model.Report) {
	chart := piechart.NewPieChart(
		io.Discard,
		piechart.WithTitle(w.catalog.T(i18n.KeyContributionChart)),
		piechart.WithShowData(true),
	)

	for _, kind := range model.AllMetrics() {
		value := math.Round(report.Contribution(kind))
		if value <= 0 {
			continue
		}
		chart.LabelAndIntValue(w.metricName(kind), uint64(value))
	}

	md.CodeBlocks(markdown.SyntaxHighlightMermaid, chart.String())
	md.PlainText("")
}

// writeDetails writes one section per metric.
func (w *MarkdownWriter) writeDetails(md *markdown.Markdown, report *model.Report) {
	md.H2(w.catalog.T(i18n.KeyDetails))
	md.PlainText("")

	w.writeStructure(md, report.StructureCoverage)
	w.writePaths(md, model.MetricFileCoverage, pathCounts{
		expected: report.FileCoverage.ExpectedCount,
		actual:   report.FileCoverage.ActualCount,
		matched:  report.FileCoverage.MatchedCount,
		coverage: report.FileCoverage.CoverageRate,
		accuracy: report.FileCoverage.AccuracyRate,
	}, i18n.KeyMissingFiles, report.FileCoverage.MissingFiles,
		i18n.KeyExtraFiles, report.FileCoverage.ExtraFiles)
	w.writePaths(md, model.MetricDirectoryCoverage, pathCounts{
		expected: report.DirectoryCoverage.ExpectedCount,
		actual:   report.DirectoryCoverage.ActualCount,
		matched:  report.DirectoryCoverage.MatchedCount,
		coverage: report.DirectoryCoverage.CoverageRate,
		accuracy: report.DirectoryCoverage.AccuracyRate,
	}, i18n.KeyMissingDirectories, report.DirectoryCoverage.MissingDirectories,
		i18n.KeyExtraDirectories, report.DirectoryCoverage.ExtraDirectories)
	w.writeTemplate(md, report.TemplateAccuracy)
	w.writeHierarchy(md, report.HierarchyAccuracy)
	w.writeAnnotations(md, report.AnnotationPreservation)
	w.writeIndependence(md, report.ModuleIndependence)
}

func (w *MarkdownWriter) writeMetricHeading(md *markdown.Markdown, kind model.MetricKind) {
	md.PlainText("### " + w.metricName(kind))
	md.PlainText("")
}

func (w *MarkdownWriter) writeStructure(md *markdown.Markdown, sc model.StructureCoverage) {
	w.writeMetricHeading(md, model.MetricStructureCoverage)
	md.Table(markdown.TableSet{
		Header: []string{"", w.catalog.T(i18n.KeyExpectedCount), w.catalog.T(i18n.KeyActualCount), w.catalog.T(i18n.KeyCoverageRate)},
		Rows: [][]string{
			{w.catalog.T(i18n.KeyDirectoryCoverageRate), strconv.Itoa(sc.ExpectedDirectories), strconv.Itoa(sc.ActualDirectories), percent(sc.DirectoryCoverageRate)},
			{w.catalog.T(i18n.KeyFileCoverageRate), strconv.Itoa(sc.ExpectedFiles), strconv.Itoa(sc.ActualFiles), percent(sc.FileCoverageRate)},
			{"**" + w.catalog.T(i18n.KeyOverallCoverage) + "**", strconv.Itoa(sc.ExpectedDirectories + sc.ExpectedFiles), strconv.Itoa(sc.ActualDirectories + sc.ActualFiles), "**" + percent(sc.OverallCoverage) + "**"},
		},
	})
	md.PlainText("")
}

// pathCounts are the numbers shared by the file and directory metrics.
type pathCounts struct {
	expected, actual, matched int
	coverage, accuracy        float64
}

func (w *MarkdownWriter) writePaths(md *markdown.Markdown, kind model.MetricKind, c pathCounts,
	missingKey string, missing []string, extraKey string, extra []string) {
	w.writeMetricHeading(md, kind)
	md.Table(markdown.TableSet{
		Header: []string{w.catalog.T(i18n.KeyExpectedCount), w.catalog.T(i18n.KeyActualCount), w.catalog.T(i18n.KeyMatchedCount), w.catalog.T(i18n.KeyCoverageRate), w.catalog.T(i18n.KeyAccuracyRate)},
		Rows: [][]string{
			{strconv.Itoa(c.expected), strconv.Itoa(c.actual), strconv.Itoa(c.matched), percent(c.coverage), percent(c.accuracy)},
		},
	})
	md.PlainText("")
	w.writeList(md, w.catalog.T(missingKey, len(missing)), missing)
	w.writeList(md, w.catalog.T(extraKey, len(extra)), extra)
}

// writeList writes a collapsible, truncated list. Empty lists are omitted.
func (w *MarkdownWriter) writeList(md *markdown.Markdown, title string, items []string) {
	if len(items) == 0 {
		return
	}
	lines := make([]string, 0, maxListItems+1)
	for _, item := range w.limitItems(items) {
		lines = append(lines, "- "+item)
	}
	md.Details(title, strings.Join(lines, "\n"))
	md.PlainText("")
}

func (w *MarkdownWriter) writeTemplate(md *markdown.Markdown, ta model.TemplateAccuracy) {
	w.writeMetricHeading(md, model.MetricTemplateAccuracy)
	md.PlainTextf("%s: %d/%d (%s)", w.catalog.T(i18n.KeyPassedChecks), ta.PassedChecks, ta.TotalChecks, percent(ta.AccuracyRate))
	md.PlainText("")

	var failed []string
	for _, category := range ta.TemplateFiles {
		for _, check := range category.Checks {
			if check.Passed {
				continue
			}
			failed = append(failed, fmt.Sprintf("`%s` (%s): %s", check.File, category.Name, failedMarkers(check)))
		}
	}
	w.writeList(md, w.catalog.T(i18n.KeyFailedFiles, len(failed)), failed)
}

// failedMarkers describes why a template check failed.
func failedMarkers(check model.TemplateCheck) string {
	if check.Error != "" {
		return check.Error
	}
	var names []string
	for name, ok := range check.Details {
		if !ok {
			names = append(names, name)
		}
	}
	slices.Sort(names)
	return strings.Join(names, ", ")
}

func (w *MarkdownWriter) writeHierarchy(md *markdown.Markdown, ha model.HierarchyAccuracy) {
	w.writeMetricHeading(md, model.MetricHierarchyAccuracy)
	level := func(key string, l model.LevelResult) []string {
		return []string{w.catalog.T(key), fmt.Sprintf("%d/%d", l.Passed, l.Total), percent(l.Accuracy)}
	}
	md.Table(markdown.TableSet{
		Header: []string{"", w.catalog.T(i18n.KeyPassedChecks), w.catalog.T(i18n.KeyAccuracyRate)},
		Rows: [][]string{
			level(i18n.KeyProjectLevel, ha.ProjectLevel),
			level(i18n.KeyModuleLevel, ha.ModuleLevel),
			level(i18n.KeyFeatureLevel, ha.FeatureLevel),
			{"**" + w.catalog.T(i18n.KeyOverallAccuracy) + "**", "", "**" + percent(ha.OverallAccuracy) + "**"},
		},
	})
	md.PlainText("")
}

func (w *MarkdownWriter) writeAnnotations(md *markdown.Markdown, ap model.AnnotationPreservation) {
	w.writeMetricHeading(md, model.MetricAnnotationPreservation)
	md.PlainTextf("%s: %d/%d (%s)", w.catalog.T(i18n.KeyPreservedCount), ap.PreservedCount, ap.ExpectedCount, percent(ap.PreservationRate))
	md.PlainText("")
	w.writeList(md, w.catalog.T(i18n.KeyMissingAnnotations, len(ap.MissingAnnotations)), ap.MissingAnnotations)
}

func (w *MarkdownWriter) writeIndependence(md *markdown.Markdown, mi model.ModuleIndependence) {
	w.writeMetricHeading(md, model.MetricModuleIndependence)
	md.PlainTextf("%s: %d/%d (%s)", w.catalog.T(i18n.KeyPassedChecks), mi.PassedChecks, mi.TotalChecks, percent(mi.IndependenceRate))
	md.PlainText("")
	if len(mi.ModuleChecks) == 0 {
		return
	}

	header := []string{w.catalog.T(i18n.KeyModule)}
	for _, c := range mi.ModuleChecks[0].Checks {
		header = append(header, "`"+c.Name+"`")
	}
	rows := make([][]string, 0, len(mi.ModuleChecks))
	for _, m := range mi.ModuleChecks {
		row := []string{w.title.String(m.Module)}
		for _, c := range m.Checks {
			row = append(row, checkSymbol(c.Passed))
		}
		rows = append(rows, row)
	}
	md.Table(markdown.TableSet{Header: header, Rows: rows})
	md.PlainText("")
}

// writeFooter writes the report footer.
func (w *MarkdownWriter) writeFooter(md *markdown.Markdown) {
	md.HorizontalRule()
	md.PlainText("")
	md.PlainText("*Report generated by [treeverify](https://github.com/nao1215/treeverify)*")
}

func checkSymbol(ok bool) string {
	if ok {
		return model.StatusPass.Symbol()
	}
	return model.StatusFail.Symbol()
}

// shortDigest keeps the first 16 hex digits of a digest.
func shortDigest(digest string) string {
	if len(digest) <= 16 {
		return digest
	}
	return digest[:16]
}
