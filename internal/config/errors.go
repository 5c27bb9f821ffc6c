package config

import "errors"

// Configuration validation errors returned by Config.Validate.
// Callers match them with errors.Is.
var (
	// ErrNoStructureFile is returned when no structure document is given.
	ErrNoStructureFile = errors.New("no structure document specified")

	// ErrNoGeneratedPath is returned when no generated root is given.
	ErrNoGeneratedPath = errors.New("no generated path specified: use --generated")

	// ErrInvalidBatchSize is returned when the number of concurrent
	// verifications is not positive.
	ErrInvalidBatchSize = errors.New("invalid batch size: must be positive")

	// ErrConflictingReportFormats is returned when both --json and --markdown
	// are specified.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrUnsupportedLanguage is returned for a report language other than
	// en, zh-TW or zh-CN.
	ErrUnsupportedLanguage = errors.New("unsupported report language: use en, zh-TW or zh-CN")

	// ErrInvalidDebounce is returned when watch mode has a non-positive
	// debounce window.
	ErrInvalidDebounce = errors.New("invalid debounce: must be positive")
)
