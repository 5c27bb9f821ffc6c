// Package database stores the history of verification runs in SQLite.
//
// Every run of the verify command can be saved together with its full
// Metrics Record, keyed by the absolute path of the generated root, so that
// later runs can be compared metric by metric. The database is a single
// file (modernc.org/sqlite, no cgo) in the XDG data directory.
package database
