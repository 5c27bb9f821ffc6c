package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nao1215/treeverify/internal/i18n"
	"github.com/nao1215/treeverify/internal/model"
)

const (
	ruleWidth   = 70
	labelWidth  = 28
	metricWidth = 26
)

// SimpleWriter outputs human-readable text reports for the terminal.
// Output is plain text unless colour is enabled with WithColor.
type SimpleWriter struct {
	baseWriter

	// verbose adds the per-metric details section.
	verbose bool

	// color enables lipgloss styling of statuses and headings.
	color bool

	heading lipgloss.Style
	pass    lipgloss.Style
	warn    lipgloss.Style
	fail    lipgloss.Style
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithVerbose enables the per-metric details section.
func WithVerbose(verbose bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.verbose = verbose
	}
}

// WithColor enables coloured output.
func WithColor(color bool) SimpleWriterOption {
	return func(w *SimpleWriter) {
		w.color = color
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer
// with labels from catalog. A nil catalog uses the default language.
func NewSimpleWriter(output io.Writer, catalog *i18n.Catalog, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter: newBaseWriter(output, catalog),
		heading:    lipgloss.NewStyle().Bold(true),
		pass:       lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
		warn:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		fail:       lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the report in human-readable format.
func (w *SimpleWriter) Write(report *model.Report) (int, error) {
	var sb strings.Builder

	w.writeHeader(&sb, report)
	w.writeSummary(&sb, report)
	w.writeMissing(&sb, report)
	if w.verbose {
		w.writeDetails(&sb, report)
	}
	w.writeFooter(&sb, report)

	return io.WriteString(w.output, sb.String())
}

// writeHeader writes the title and run information.
func (w *SimpleWriter) writeHeader(sb *strings.Builder, report *model.Report) {
	title := w.catalog.T(i18n.KeyTitle)
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat(" ", max(0, (ruleWidth-lipgloss.Width(title))/2)))
	sb.WriteString(w.style(w.heading, title))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n\n")

	w.writeField(sb, i18n.KeyStructureFile, report.StructureFile)
	w.writeField(sb, i18n.KeyGeneratedPath, report.GeneratedPath)
	w.writeField(sb, i18n.KeyDateVerified, report.DateVerified.Format("2006-01-02 15:04:05 MST"))
	w.writeField(sb, i18n.KeyRunID, report.RunID)

	score := fmt.Sprintf("%s / 100 (%s)", points(report.OverallScore), w.gradeLabel(report))
	w.writeField(sb, i18n.KeyOverallScore, w.style(w.gradeStyle(report.Grade()), score))

	if report.ErrorMessage != "" {
		sb.WriteString("\n")
		sb.WriteString(w.style(w.fail, w.catalog.T(i18n.KeyRunError, report.ErrorMessage)))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
}

// writeField writes one "label: value" line with aligned values.
func (w *SimpleWriter) writeField(sb *strings.Builder, key, value string) {
	sb.WriteString(pad(w.catalog.T(key)+":", labelWidth))
	sb.WriteString(" ")
	sb.WriteString(value)
	sb.WriteString("\n")
}

// writeSummary writes one line per metric.
func (w *SimpleWriter) writeSummary(sb *strings.Builder, report *model.Report) {
	w.writeSection(sb, w.catalog.T(i18n.KeySummary))

	for _, kind := range model.AllMetrics() {
		rate := report.Rate(kind)
		status := kind.Status(rate)
		fmt.Fprintf(sb, "  %s %s %8s  %s %3.0f%%  %s +%s\n",
			w.style(w.statusStyle(status), status.Symbol()),
			pad(w.metricName(kind), metricWidth),
			percent(rate),
			w.catalog.T(i18n.KeyWeight),
			kind.Weight()*100,
			w.catalog.T(i18n.KeyContribution),
			points(report.Contribution(kind)),
		)
	}
	sb.WriteString("\n")
	sb.WriteString("  ")
	sb.WriteString(w.gradeDescription(report))
	sb.WriteString("\n\n")
}

// writeMissing lists what the generated layout lacks.
func (w *SimpleWriter) writeMissing(sb *strings.Builder, report *model.Report) {
	lists := []struct {
		key   string
		items []string
	}{
		{i18n.KeyMissingFiles, report.FileCoverage.MissingFiles},
		{i18n.KeyMissingDirectories, report.DirectoryCoverage.MissingDirectories},
		{i18n.KeyMissingAnnotations, report.AnnotationPreservation.MissingAnnotations},
	}
	for _, l := range lists {
		if len(l.items) == 0 {
			continue
		}
		w.writeSection(sb, w.catalog.T(l.key, len(l.items)))
		for _, item := range w.limitItems(l.items) {
			fmt.Fprintf(sb, "  - %s\n", item)
		}
		sb.WriteString("\n")
	}
}

// writeDetails writes the counts behind every metric.
func (w *SimpleWriter) writeDetails(sb *strings.Builder, report *model.Report) {
	w.writeSection(sb, w.catalog.T(i18n.KeyDetails))

	sc := report.StructureCoverage
	fmt.Fprintf(sb, "[%s]\n", w.metricName(model.MetricStructureCoverage))
	w.writeCount(sb, i18n.KeyExpectedDirectories, sc.ExpectedDirectories)
	w.writeCount(sb, i18n.KeyActualDirectories, sc.ActualDirectories)
	w.writeCount(sb, i18n.KeyExpectedFiles, sc.ExpectedFiles)
	w.writeCount(sb, i18n.KeyActualFiles, sc.ActualFiles)

	fc := report.FileCoverage
	fmt.Fprintf(sb, "[%s]\n", w.metricName(model.MetricFileCoverage))
	w.writeRatio(sb, i18n.KeyMatchedCount, fc.MatchedCount, fc.ExpectedCount)
	w.writeCount(sb, i18n.KeyActualCount, fc.ActualCount)

	dc := report.DirectoryCoverage
	fmt.Fprintf(sb, "[%s]\n", w.metricName(model.MetricDirectoryCoverage))
	w.writeRatio(sb, i18n.KeyMatchedCount, dc.MatchedCount, dc.ExpectedCount)
	w.writeCount(sb, i18n.KeyActualCount, dc.ActualCount)

	ta := report.TemplateAccuracy
	fmt.Fprintf(sb, "[%s]\n", w.metricName(model.MetricTemplateAccuracy))
	w.writeRatio(sb, i18n.KeyPassedChecks, ta.PassedChecks, ta.TotalChecks)

	ha := report.HierarchyAccuracy
	fmt.Fprintf(sb, "[%s]\n", w.metricName(model.MetricHierarchyAccuracy))
	w.writeRatio(sb, i18n.KeyProjectLevel, ha.ProjectLevel.Passed, ha.ProjectLevel.Total)
	w.writeRatio(sb, i18n.KeyModuleLevel, ha.ModuleLevel.Passed, ha.ModuleLevel.Total)
	w.writeRatio(sb, i18n.KeyFeatureLevel, ha.FeatureLevel.Passed, ha.FeatureLevel.Total)

	ap := report.AnnotationPreservation
	fmt.Fprintf(sb, "[%s]\n", w.metricName(model.MetricAnnotationPreservation))
	w.writeRatio(sb, i18n.KeyPreservedCount, ap.PreservedCount, ap.ExpectedCount)

	mi := report.ModuleIndependence
	fmt.Fprintf(sb, "[%s]\n", w.metricName(model.MetricModuleIndependence))
	w.writeRatio(sb, i18n.KeyPassedChecks, mi.PassedChecks, mi.TotalChecks)
	sb.WriteString("\n")
}

func (w *SimpleWriter) writeCount(sb *strings.Builder, key string, n int) {
	fmt.Fprintf(sb, "    %s %d\n", pad(w.catalog.T(key)+":", labelWidth), n)
}

func (w *SimpleWriter) writeRatio(sb *strings.Builder, key string, n, total int) {
	fmt.Fprintf(sb, "    %s %d/%d\n", pad(w.catalog.T(key)+":", labelWidth), n, total)
}

// writeSection writes a heading between two rules.
func (w *SimpleWriter) writeSection(sb *strings.Builder, title string) {
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n")
	sb.WriteString(w.style(w.heading, title))
	sb.WriteString("\n")
	sb.WriteString(strings.Repeat("-", ruleWidth))
	sb.WriteString("\n\n")
}

// writeFooter writes the closing rule.
func (w *SimpleWriter) writeFooter(sb *strings.Builder, _ *model.Report) {
	sb.WriteString(strings.Repeat("=", ruleWidth))
	sb.WriteString("\n")
}

// style renders s with st when colour is enabled.
func (w *SimpleWriter) style(st lipgloss.Style, s string) string {
	if !w.color {
		return s
	}
	return st.Render(s)
}

func (w *SimpleWriter) statusStyle(s model.Status) lipgloss.Style {
	switch s {
	case model.StatusPass:
		return w.pass
	case model.StatusWarn:
		return w.warn
	default:
		return w.fail
	}
}

func (w *SimpleWriter) gradeStyle(g model.Grade) lipgloss.Style {
	switch g {
	case model.GradeExcellent, model.GradeGood:
		return w.pass
	case model.GradePass:
		return w.warn
	default:
		return w.fail
	}
}

// pad right-pads s to width terminal cells. Wide runes count as two cells.
func pad(s string, width int) string {
	n := lipgloss.Width(s)
	if n >= width {
		return s
	}
	return s + strings.Repeat(" ", width-n)
}
