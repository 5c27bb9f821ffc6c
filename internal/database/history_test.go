package database

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/nao1215/treeverify/internal/model"
)

// setupTestDB creates a temporary database for testing.
func setupTestDB(t *testing.T) *HistoryDB {
	t.Helper()

	db, err := Open(t.TempDir(), DefaultOptions())
	if err != nil {
		t.Fatalf("failed to open database: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

// newTestReport creates a finalized report verified at the given time.
func newTestReport(generatedPath string, at time.Time, fileRate float64) *model.Report {
	r := model.NewReport("structure.md", generatedPath)
	r.DateVerified = at
	r.StructureDigest = "deadbeef"
	r.FileCoverage.CoverageRate = fileRate
	r.FileCoverage.MissingFiles = []string{"core/README.md"}
	r.Finalize()
	return r
}

// TestOpen tests database opening and creation.
func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database in new directory", func(t *testing.T) {
		t.Parallel()

		dbDir := filepath.Join(t.TempDir(), "newdir", "subdir")
		db, err := Open(dbDir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		defer db.Close()

		if _, err := os.Stat(filepath.Join(dbDir, FileName)); err != nil {
			t.Errorf("database file was not created: %v", err)
		}
		if db.Path() != filepath.Join(dbDir, FileName) {
			t.Errorf("unexpected path %q", db.Path())
		}
	})

	t.Run("missing database without CreateIfNotExists", func(t *testing.T) {
		t.Parallel()

		_, err := Open(filepath.Join(t.TempDir(), "absent"), Options{})
		if !errors.Is(err, ErrDatabaseNotFound) {
			t.Errorf("expected ErrDatabaseNotFound, got %v", err)
		}
	})

	t.Run("reopens an existing database", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		db, err := Open(dir, DefaultOptions())
		if err != nil {
			t.Fatalf("failed to open database: %v", err)
		}
		if _, err := db.SaveReport(context.Background(), newTestReport("/tmp/a", time.Now(), 1)); err != nil {
			t.Fatalf("failed to save: %v", err)
		}
		_ = db.Close()

		db, err = Open(dir, Options{EnableWAL: true})
		if err != nil {
			t.Fatalf("failed to reopen database: %v", err)
		}
		defer db.Close()

		projects, err := db.ListProjects(context.Background())
		if err != nil {
			t.Fatalf("failed to list projects: %v", err)
		}
		if len(projects) != 1 {
			t.Errorf("expected 1 project, got %d", len(projects))
		}
	})
}

// TestSaveAndLoad tests the save / list / load round-trip.
func TestSaveAndLoad(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	ctx := context.Background()
	base := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	older := newTestReport("/work/gen", base, 0.5)
	newer := newTestReport("/work/gen", base.Add(100*time.Millisecond), 1)
	other := newTestReport("/work/other", base, 1)

	var ids []int64
	for _, r := range []*model.Report{older, newer, other} {
		id, err := db.SaveReport(ctx, r)
		if err != nil {
			t.Fatalf("failed to save report: %v", err)
		}
		ids = append(ids, id)
	}

	t.Run("latest reports are newest first", func(t *testing.T) {
		runs, err := db.GetLatestReports(ctx, "/work/gen", 2)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(runs) != 2 {
			t.Fatalf("expected 2 runs, got %d", len(runs))
		}
		if runs[0].Report.RunID != newer.RunID || runs[1].Report.RunID != older.RunID {
			t.Error("expected newest run first")
		}
		if runs[0].Report.FileCoverage.CoverageRate != 1 {
			t.Errorf("expected decoded file coverage 1, got %v", runs[0].Report.FileCoverage.CoverageRate)
		}
		if runs[1].Report.OverallScore != older.OverallScore {
			t.Errorf("expected score %v, got %v", older.OverallScore, runs[1].Report.OverallScore)
		}
	})

	t.Run("limit one", func(t *testing.T) {
		runs, err := db.GetLatestReports(ctx, "/work/gen", 1)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(runs) != 1 || runs[0].ID != ids[1] {
			t.Error("expected only the newest run")
		}
	})

	t.Run("history metadata", func(t *testing.T) {
		history, err := db.GetHistory(ctx, "/work/gen")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(history) != 2 {
			t.Fatalf("expected 2 entries, got %d", len(history))
		}
		if history[0].RunID != newer.RunID {
			t.Error("expected newest entry first")
		}
		if !history[0].Timestamp.Equal(newer.DateVerified) {
			t.Errorf("expected timestamp %v, got %v", newer.DateVerified, history[0].Timestamp)
		}
		if history[1].MetricRates["file_coverage"] != 0.5 {
			t.Errorf("expected file_coverage 0.5, got %v", history[1].MetricRates["file_coverage"])
		}
		if history[0].StructureDigest != "deadbeef" {
			t.Errorf("unexpected digest %q", history[0].StructureDigest)
		}
	})

	t.Run("report by id", func(t *testing.T) {
		run, err := db.GetReportByID(ctx, ids[2])
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if run.ProjectKey != "/work/other" || run.Report.RunID != other.RunID {
			t.Error("expected the other project's run")
		}

		_, err = db.GetReportByID(ctx, 9999)
		if !errors.Is(err, ErrRunNotFound) {
			t.Errorf("expected ErrRunNotFound, got %v", err)
		}
	})

	t.Run("projects", func(t *testing.T) {
		projects, err := db.ListProjects(ctx)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(projects) != 2 || projects[0] != "/work/gen" || projects[1] != "/work/other" {
			t.Errorf("unexpected projects %v", projects)
		}
	})

	t.Run("unknown project", func(t *testing.T) {
		runs, err := db.GetLatestReports(ctx, "/nowhere", 0)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(runs) != 0 {
			t.Error("expected no runs")
		}
	})
}

// TestSaveDuplicateRunID tests that a run can only be saved once.
func TestSaveDuplicateRunID(t *testing.T) {
	t.Parallel()

	db := setupTestDB(t)
	r := newTestReport("/work/gen", time.Now(), 1)

	if _, err := db.SaveReport(context.Background(), r); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := db.SaveReport(context.Background(), r); err == nil {
		t.Error("expected error for duplicate run ID")
	}
}

// TestProjectKey tests key normalization.
func TestProjectKey(t *testing.T) {
	t.Parallel()

	if got := ProjectKey("/work/gen/../gen/"); got != "/work/gen" {
		t.Errorf("expected /work/gen, got %q", got)
	}

	wd, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if got := ProjectKey("out"); got != filepath.Join(wd, "out") {
		t.Errorf("expected relative path to become absolute, got %q", got)
	}
}

// TestParseTimestamp tests the accepted timestamp layouts.
func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input string
		want  time.Time
	}{
		{"2026-01-02T03:04:05.100000000Z", time.Date(2026, 1, 2, 3, 4, 5, 100000000, time.UTC)},
		{"2026-01-02T03:04:05Z", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
		{"2026-01-02 03:04:05", time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)},
		{"garbage", time.Time{}},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := parseTimestamp(tt.input); !got.Equal(tt.want) {
				t.Errorf("parseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
