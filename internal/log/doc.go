// Package log builds the slog loggers used by treeverify.
//
// Loggers wrap their output handler in a RedactingHandler, which shortens
// absolute paths under the user's home directory to "~/..." and masks
// values of secret-looking attributes, so that logs can be pasted into bug
// reports as they are.
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	slog.SetDefault(logger)
package log
