// Package model defines the Metrics Record produced by a verification run.
//
// This package contains the following main types:
//   - Report: the seven metric sub-records plus run metadata
//   - MetricKind: the closed set of metrics with their weights and thresholds
//   - Status and Grade: verdicts for single rates and for the overall score
//
// The types serialize to JSON with snake_case keys and are shared by the
// coverage, report and database packages.
package model
