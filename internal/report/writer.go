package report

import (
	"fmt"
	"io"

	"github.com/nao1215/treeverify/internal/i18n"
	"github.com/nao1215/treeverify/internal/model"
)

// maxListItems is how many paths of a missing or extra list are shown
// before the rest is summarised.
const maxListItems = 10

// Writer defines the interface for report output.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.Report) (int, error)
}

// MultiWriter writes to multiple Writers in order.
type MultiWriter struct {
	writers []Writer
}

// NewMultiWriter creates a Writer that writes to all provided Writers.
func NewMultiWriter(writers ...Writer) *MultiWriter {
	return &MultiWriter{writers: writers}
}

// Write outputs the report to all configured Writers.
// Returns the total bytes written and stops on the first error.
func (m *MultiWriter) Write(report *model.Report) (int, error) {
	var total int
	for _, w := range m.writers {
		n, err := w.Write(report)
		total += n
		if err != nil {
			return total, err
		}
	}
	return total, nil
}

// baseWriter holds what every writer needs.
type baseWriter struct {
	output  io.Writer
	catalog *i18n.Catalog
}

// newBaseWriter creates a baseWriter. A nil catalog means the default language.
func newBaseWriter(output io.Writer, catalog *i18n.Catalog) baseWriter {
	if catalog == nil {
		catalog = i18n.New(i18n.DefaultLang)
	}
	return baseWriter{output: output, catalog: catalog}
}

// metricName returns the localized name of a metric.
func (b baseWriter) metricName(kind model.MetricKind) string {
	return b.catalog.T(kind.String())
}

// gradeLabel returns the localized grade of the report.
func (b baseWriter) gradeLabel(report *model.Report) string {
	return b.catalog.T(report.Grade().String())
}

// gradeDescription returns the localized one-line verdict of the grade.
func (b baseWriter) gradeDescription(report *model.Report) string {
	return b.catalog.T(report.Grade().String() + "_desc")
}

// limitItems returns at most maxListItems entries of items, followed by a
// "... N more" line when some were left out.
func (b baseWriter) limitItems(items []string) []string {
	if len(items) <= maxListItems {
		return items
	}
	out := make([]string, 0, maxListItems+1)
	out = append(out, items[:maxListItems]...)
	return append(out, b.catalog.T(i18n.KeyMoreItems, len(items)-maxListItems))
}

// percent formats a rate in [0, 1] as a percentage.
func percent(rate float64) string {
	return fmt.Sprintf("%.1f%%", rate*100)
}

// points formats a score or contribution.
func points(v float64) string {
	return fmt.Sprintf("%.2f", v)
}
