package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"slices"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/spf13/cobra"

	"github.com/nao1215/treeverify/internal/database"
	"github.com/nao1215/treeverify/internal/model"
)

// Directions of a metric between two runs.
const (
	directionImproved  = "improved"
	directionWorsened  = "worsened"
	directionUnchanged = "unchanged"
)

// rateEpsilon absorbs float noise when comparing stored rates.
const rateEpsilon = 1e-9

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [generated-dir]",
		Short: "Compare stored verification runs",
		Long: `History shows how the verification of a generated project changed over
time, using the runs stored by 'treeverify verify'.

By default the latest two runs are compared metric by metric, together
with the files that went missing or were restored in between.

Examples:
  # Compare the latest two runs of ./output
  treeverify history output

  # List every stored run of ./output
  treeverify history --list output

  # Compare the latest run with run 5
  treeverify history --with-run-id 5 output

  # Comparison as JSON or Markdown
  treeverify history --json output
  treeverify history --markdown output

  # List every project with stored runs
  treeverify history --list-projects`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().BoolP("list", "l", false, "List stored runs of the project")
	cmd.Flags().BoolP("list-projects", "L", false, "List every project in the database")
	cmd.Flags().Int64P("with-run-id", "i", 0,
		"Compare the latest run with the run of this ID (see --list)")
	cmd.Flags().BoolP("json", "j", false, "Output the comparison as JSON")
	cmd.Flags().BoolP("markdown", "m", false, "Output the comparison as Markdown")

	return cmd
}

func runHistoryCmd(cmd *cobra.Command, args []string) error {
	flags := cmd.Flags()
	listProjects, err := flags.GetBool("list-projects")
	if err != nil {
		return err
	}
	list, err := flags.GetBool("list")
	if err != nil {
		return err
	}
	withID, err := flags.GetInt64("with-run-id")
	if err != nil {
		return err
	}
	asJSON, err := flags.GetBool("json")
	if err != nil {
		return err
	}
	asMarkdown, err := flags.GetBool("markdown")
	if err != nil {
		return err
	}
	if asJSON && asMarkdown {
		return errors.New("--json and --markdown cannot be used together")
	}

	// Validate arguments before opening the database.
	var projectKey string
	if !listProjects {
		if len(args) == 0 {
			return errors.New("generated directory is required (use --list-projects to see stored projects)")
		}
		projectKey = database.ProjectKey(args[0])
	}

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	db, err := database.Open(cfg.DBDir, database.Options{CreateIfNotExists: false, EnableWAL: true})
	if err != nil {
		if errors.Is(err, database.ErrDatabaseNotFound) {
			return errors.New("no verification history yet (run 'treeverify verify' first)")
		}
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer db.Close()

	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	switch {
	case listProjects:
		return printProjects(ctx, out, db)
	case list:
		return printRuns(ctx, out, db, projectKey)
	}

	c, err := loadComparison(ctx, db, projectKey, withID)
	if err != nil {
		return err
	}
	switch {
	case asJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(c)
	case asMarkdown:
		return writeComparisonMarkdown(out, c)
	default:
		writeComparisonText(out, c)
		return nil
	}
}

func printProjects(ctx context.Context, out io.Writer, db *database.HistoryDB) error {
	projects, err := db.ListProjects(ctx)
	if err != nil {
		return err
	}
	if len(projects) == 0 {
		fmt.Fprintln(out, "No verified projects found in the database.")
		fmt.Fprintln(out, "\nUse 'treeverify verify <structure.md> -g <dir>' to verify a project.")
		return nil
	}

	fmt.Fprintf(out, "Verified projects (%d):\n\n", len(projects))
	for _, p := range projects {
		fmt.Fprintf(out, "  • %s\n", p)
	}
	fmt.Fprintln(out, "\nUse 'treeverify history --list <dir>' to see the runs of a project.")
	return nil
}

func printRuns(ctx context.Context, out io.Writer, db *database.HistoryDB, projectKey string) error {
	runs, err := db.GetHistory(ctx, projectKey)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintf(out, "No verification history found for %s\n", projectKey)
		return nil
	}

	fmt.Fprintf(out, "Verification history for %s (%d runs):\n\n", projectKey, len(runs))
	fmt.Fprintf(out, "  %-6s  %-20s  %-8s  %s\n", "ID", "Date", "Score", "Structure")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 60))
	for _, meta := range runs {
		fmt.Fprintf(out, "  %-6d  %-20s  %-8.2f  %s\n",
			meta.ID,
			meta.Timestamp.Local().Format("2006-01-02 15:04:05"),
			meta.OverallScore,
			shortDigest(meta.StructureDigest),
		)
	}
	fmt.Fprintln(out, "\nUse 'treeverify history <dir>' to compare the latest two runs.")
	return nil
}

// metricChange is one metric of a comparison.
type metricChange struct {
	Metric    string  `json:"metric"`
	Previous  float64 `json:"previous"`
	Current   float64 `json:"current"`
	Delta     float64 `json:"delta"`
	Direction string  `json:"direction"`
}

// comparison is the difference between two runs of one project.
type comparison struct {
	ProjectKey       string         `json:"project_key"`
	PreviousID       int64          `json:"previous_id"`
	CurrentID        int64          `json:"current_id"`
	PreviousScore    float64        `json:"previous_score"`
	CurrentScore     float64        `json:"current_score"`
	ScoreDelta       float64        `json:"score_delta"`
	PreviousGrade    string         `json:"previous_grade"`
	CurrentGrade     string         `json:"current_grade"`
	StructureChanged bool           `json:"structure_changed"`
	Metrics          []metricChange `json:"metrics"`
	NewlyMissing     []string       `json:"newly_missing_files"`
	Restored         []string       `json:"restored_files"`
}

// loadComparison compares the latest run with run withID, or with the run
// before it when withID is zero.
func loadComparison(ctx context.Context, db *database.HistoryDB, projectKey string, withID int64) (*comparison, error) {
	limit := 2
	if withID != 0 {
		limit = 1
	}
	runs, err := db.GetLatestReports(ctx, projectKey, limit)
	if err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, fmt.Errorf("no verification history found for %s", projectKey)
	}
	current := runs[0]

	var previous *database.Run
	if withID != 0 {
		previous, err = db.GetReportByID(ctx, withID)
		if err != nil {
			return nil, err
		}
		if previous.ProjectKey != projectKey {
			return nil, fmt.Errorf("run %d belongs to %s, not %s", withID, previous.ProjectKey, projectKey)
		}
	} else {
		if len(runs) < 2 {
			return nil, fmt.Errorf("at least 2 runs are required for comparison (found %d)", len(runs))
		}
		previous = runs[1]
	}
	return compareRuns(previous, current), nil
}

// compareRuns computes the difference from previous to current.
func compareRuns(previous, current *database.Run) *comparison {
	p, c := previous.Report, current.Report
	cmp := &comparison{
		ProjectKey:       current.ProjectKey,
		PreviousID:       previous.ID,
		CurrentID:        current.ID,
		PreviousScore:    p.OverallScore,
		CurrentScore:     c.OverallScore,
		ScoreDelta:       round2(c.OverallScore - p.OverallScore),
		PreviousGrade:    p.Grade().String(),
		CurrentGrade:     c.Grade().String(),
		StructureChanged: p.StructureDigest != c.StructureDigest,
		NewlyMissing:     subtract(c.FileCoverage.MissingFiles, p.FileCoverage.MissingFiles),
		Restored:         subtract(p.FileCoverage.MissingFiles, c.FileCoverage.MissingFiles),
	}
	for _, kind := range model.AllMetrics() {
		prev, cur := p.Rate(kind), c.Rate(kind)
		cmp.Metrics = append(cmp.Metrics, metricChange{
			Metric:    kind.String(),
			Previous:  prev,
			Current:   cur,
			Delta:     cur - prev,
			Direction: direction(cur - prev),
		})
	}
	return cmp
}

func direction(delta float64) string {
	switch {
	case delta > rateEpsilon:
		return directionImproved
	case delta < -rateEpsilon:
		return directionWorsened
	default:
		return directionUnchanged
	}
}

// subtract returns the items of a that are not in b, in the order of a.
func subtract(a, b []string) []string {
	out := []string{}
	for _, item := range a {
		if !slices.Contains(b, item) {
			out = append(out, item)
		}
	}
	return out
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func shortDigest(digest string) string {
	if len(digest) > 12 {
		return digest[:12]
	}
	return digest
}

func signedPercent(delta float64) string {
	return fmt.Sprintf("%+.1f%%", delta*100)
}

func writeComparisonText(out io.Writer, c *comparison) {
	fmt.Fprintf(out, "Comparison for %s\n", c.ProjectKey)
	fmt.Fprintf(out, "  run %d -> run %d\n\n", c.PreviousID, c.CurrentID)
	fmt.Fprintf(out, "Overall score: %.2f (%s) -> %.2f (%s), %+.2f\n",
		c.PreviousScore, c.PreviousGrade, c.CurrentScore, c.CurrentGrade, c.ScoreDelta)
	if c.StructureChanged {
		fmt.Fprintln(out, "Note: the structure document changed between the runs.")
	}

	fmt.Fprintln(out)
	fmt.Fprintf(out, "  %-24s  %8s  %8s  %8s  %s\n", "Metric", "Before", "After", "Delta", "")
	fmt.Fprintln(out, "  "+strings.Repeat("-", 66))
	for _, m := range c.Metrics {
		fmt.Fprintf(out, "  %-24s  %7.1f%%  %7.1f%%  %8s  %s\n",
			m.Metric, m.Previous*100, m.Current*100, signedPercent(m.Delta), m.Direction)
	}

	writeFileList(out, "Newly missing files", c.NewlyMissing)
	writeFileList(out, "Restored files", c.Restored)
}

func writeFileList(out io.Writer, title string, files []string) {
	if len(files) == 0 {
		return
	}
	fmt.Fprintf(out, "\n%s (%d):\n", title, len(files))
	for _, f := range files {
		fmt.Fprintf(out, "  - %s\n", f)
	}
}

func writeComparisonMarkdown(out io.Writer, c *comparison) error {
	md := markdown.NewMarkdown(out)
	md.H1("Verification History")
	md.PlainTextf("Project: `%s`, run %d → run %d", c.ProjectKey, c.PreviousID, c.CurrentID)
	md.PlainTextf("Overall score: **%.2f** (%s) → **%.2f** (%s), %+.2f",
		c.PreviousScore, c.PreviousGrade, c.CurrentScore, c.CurrentGrade, c.ScoreDelta)
	if c.StructureChanged {
		md.Note("The structure document changed between the runs.")
	}

	rows := make([][]string, 0, len(c.Metrics))
	for _, m := range c.Metrics {
		rows = append(rows, []string{
			m.Metric,
			fmt.Sprintf("%.1f%%", m.Previous*100),
			fmt.Sprintf("%.1f%%", m.Current*100),
			signedPercent(m.Delta),
			m.Direction,
		})
	}
	md.H2("Metrics")
	md.Table(markdown.TableSet{
		Header: []string{"Metric", "Before", "After", "Delta", "Direction"},
		Rows:   rows,
	})

	if len(c.NewlyMissing) > 0 {
		md.H2("Newly Missing Files")
		md.BulletList(c.NewlyMissing...)
	}
	if len(c.Restored) > 0 {
		md.H2("Restored Files")
		md.BulletList(c.Restored...)
	}
	return md.Build()
}
