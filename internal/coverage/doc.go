// Package coverage measures how well a generated project matches a parsed
// structure model.
//
// Seven metrics are computed, one Metric per model.MetricKind. Each Metric
// is a pipeline step: it reads the shared Input, fills its sub-record of the
// model.Report, and never fails because expected sets are empty or the
// generated root is missing. Rates with a zero denominator are 0.
//
// Generated projects follow a two-segment layout: the content produced for
// a model lives at <root>/<SystemDir>/<ProjectName>. Expected path sets are
// built with those two segment names skipped wherever they appear in the
// model, so both sides are relative to the project root.
package coverage
