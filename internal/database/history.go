package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/treeverify/internal/model"
)

// FileName is the name of the history database inside its directory.
const FileName = "treeverify.db"

// timestampLayout has a fixed width so stored timestamps sort as text.
const timestampLayout = "2006-01-02T15:04:05.000000000Z07:00"

var (
	// ErrDatabaseNotFound is returned by Open when the database does not
	// exist and CreateIfNotExists is false.
	ErrDatabaseNotFound = errors.New("history database not found")

	// ErrRunNotFound is returned when no run has the requested ID.
	ErrRunNotFound = errors.New("verification run not found")
)

// HistoryDB stores verification runs.
type HistoryDB struct {
	db     *sql.DB
	dbPath string
}

// Options configures HistoryDB behavior.
type Options struct {
	// CreateIfNotExists creates the directory and database file if missing.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// Open opens or creates the history database in dbDir.
func Open(dbDir string, opts Options) (*HistoryDB, error) {
	dbPath := filepath.Join(dbDir, FileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrDatabaseNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else if err := os.MkdirAll(dbDir, 0o750); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// mode=rw refuses to create a missing file.
	dsn := dbPath + "?mode=rw"
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc"
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1) // SQLite only supports one writer
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	hdb := &HistoryDB{db: db, dbPath: dbPath}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := hdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}
	return hdb, nil
}

// Close closes the database connection.
func (h *HistoryDB) Close() error {
	return h.db.Close()
}

// Path returns the path of the database file.
func (h *HistoryDB) Path() string {
	return h.dbPath
}

func (h *HistoryDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS verification_runs (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		run_id TEXT NOT NULL UNIQUE,
		project_key TEXT NOT NULL,
		structure_digest TEXT,
		generated_path TEXT NOT NULL,
		overall_score REAL NOT NULL,
		metric_rates TEXT,
		timestamp TEXT NOT NULL,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_runs_project ON verification_runs(project_key);
	CREATE INDEX IF NOT EXISTS idx_runs_timestamp ON verification_runs(timestamp);
	`
	_, err := h.db.ExecContext(context.Background(), schema)
	return err
}

// ProjectKey returns the history key of a generated root: its absolute,
// cleaned path.
func ProjectKey(generatedPath string) string {
	abs, err := filepath.Abs(generatedPath)
	if err != nil {
		return filepath.Clean(generatedPath)
	}
	return abs
}

// Run is a stored verification run.
type Run struct {
	// ID is the database ID of the run.
	ID int64

	// ProjectKey is the key the run is stored under.
	ProjectKey string

	// Report is the full Metrics Record.
	Report *model.Report
}

// RunMetadata summarises a run without decoding its report.
type RunMetadata struct {
	ID              int64
	RunID           string
	ProjectKey      string
	StructureDigest string
	OverallScore    float64
	Timestamp       time.Time

	// MetricRates maps metric keys such as "file_coverage" to their rate.
	MetricRates map[string]float64
}

// SaveReport stores a finalized report under ProjectKey(report.GeneratedPath)
// and returns the database ID of the new run.
func (h *HistoryDB) SaveReport(ctx context.Context, report *model.Report) (int64, error) {
	reportJSON, err := json.Marshal(report)
	if err != nil {
		return 0, fmt.Errorf("failed to serialize report: %w", err)
	}

	rates := make(map[string]float64, len(model.AllMetrics()))
	for _, kind := range model.AllMetrics() {
		rates[kind.String()] = report.Rate(kind)
	}
	ratesJSON, _ := json.Marshal(rates) //nolint:errcheck,errchkjson // a map of floats always marshals

	query := `
	INSERT INTO verification_runs
		(run_id, project_key, structure_digest, generated_path, overall_score, metric_rates, timestamp, report_json)
	VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`
	result, err := h.db.ExecContext(ctx, query,
		report.RunID,
		ProjectKey(report.GeneratedPath),
		report.StructureDigest,
		report.GeneratedPath,
		report.OverallScore,
		string(ratesJSON),
		report.DateVerified.UTC().Format(timestampLayout),
		string(reportJSON),
	)
	if err != nil {
		return 0, fmt.Errorf("failed to save verification run: %w", err)
	}
	return result.LastInsertId()
}

// GetLatestReports returns up to n runs of a project, newest first.
// A non-positive n returns every run.
func (h *HistoryDB) GetLatestReports(ctx context.Context, projectKey string, n int) ([]*Run, error) {
	query := `
	SELECT id, project_key, report_json FROM verification_runs
	WHERE project_key = ?
	ORDER BY timestamp DESC, id DESC
	`
	args := []any{projectKey}
	if n > 0 {
		query += " LIMIT ?"
		args = append(args, n)
	}

	rows, err := h.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to get verification runs: %w", err)
	}
	defer rows.Close()

	var runs []*Run
	for rows.Next() {
		var (
			run        Run
			reportJSON string
		)
		if err := rows.Scan(&run.ID, &run.ProjectKey, &reportJSON); err != nil {
			return nil, fmt.Errorf("failed to scan verification run: %w", err)
		}
		report, err := decodeReport(reportJSON)
		if err != nil {
			continue // skip malformed rows
		}
		run.Report = report
		runs = append(runs, &run)
	}
	return runs, rows.Err()
}

// GetHistory returns the metadata of every run of a project, newest first.
func (h *HistoryDB) GetHistory(ctx context.Context, projectKey string) ([]RunMetadata, error) {
	query := `
	SELECT id, run_id, project_key, structure_digest, overall_score, metric_rates, timestamp
	FROM verification_runs
	WHERE project_key = ?
	ORDER BY timestamp DESC, id DESC
	`
	rows, err := h.db.QueryContext(ctx, query, projectKey)
	if err != nil {
		return nil, fmt.Errorf("failed to get verification history: %w", err)
	}
	defer rows.Close()

	var results []RunMetadata
	for rows.Next() {
		var (
			meta      RunMetadata
			digest    sql.NullString
			ratesJSON sql.NullString
			timestamp string
		)
		if err := rows.Scan(&meta.ID, &meta.RunID, &meta.ProjectKey, &digest,
			&meta.OverallScore, &ratesJSON, &timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan metadata: %w", err)
		}
		meta.StructureDigest = digest.String
		meta.Timestamp = parseTimestamp(timestamp)
		meta.MetricRates = make(map[string]float64)
		if ratesJSON.Valid && ratesJSON.String != "" {
			if err := json.Unmarshal([]byte(ratesJSON.String), &meta.MetricRates); err != nil {
				meta.MetricRates = make(map[string]float64)
			}
		}
		results = append(results, meta)
	}
	return results, rows.Err()
}

// GetReportByID returns the run with the given database ID.
func (h *HistoryDB) GetReportByID(ctx context.Context, id int64) (*Run, error) {
	query := `
	SELECT id, project_key, report_json FROM verification_runs
	WHERE id = ?
	`
	var (
		run        Run
		reportJSON string
	)
	err := h.db.QueryRowContext(ctx, query, id).Scan(&run.ID, &run.ProjectKey, &reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: id %d", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get verification run: %w", err)
	}

	run.Report, err = decodeReport(reportJSON)
	if err != nil {
		return nil, err
	}
	return &run, nil
}

// ListProjects returns every project key with at least one run, sorted.
func (h *HistoryDB) ListProjects(ctx context.Context) ([]string, error) {
	query := `
	SELECT DISTINCT project_key FROM verification_runs
	ORDER BY project_key
	`
	rows, err := h.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list projects: %w", err)
	}
	defer rows.Close()

	var projects []string
	for rows.Next() {
		var key string
		if err := rows.Scan(&key); err != nil {
			return nil, fmt.Errorf("failed to scan project: %w", err)
		}
		projects = append(projects, key)
	}
	return projects, rows.Err()
}

func decodeReport(reportJSON string) (*model.Report, error) {
	var report model.Report
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse report: %w", err)
	}
	return &report, nil
}

// timestampFormats are tried in order by parseTimestamp.
var timestampFormats = []string{
	timestampLayout,
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
}

// parseTimestamp parses a stored timestamp and returns the zero time when
// no format matches.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
