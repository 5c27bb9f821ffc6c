// Package report renders verification reports.
//
// Three writers share the Writer interface:
//   - SimpleWriter: plain text for the terminal, optionally coloured
//   - JSONWriter: the Metrics Record as JSON for tooling
//   - MarkdownWriter: a GitHub-flavoured Markdown document
//
// Text and Markdown output take their labels from an i18n.Catalog, so one
// report can be rendered in every supported language.
package report
