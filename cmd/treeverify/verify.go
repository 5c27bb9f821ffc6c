package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/nao1215/treeverify/internal/config"
	"github.com/nao1215/treeverify/internal/coverage"
	"github.com/nao1215/treeverify/internal/database"
	"github.com/nao1215/treeverify/internal/i18n"
	"github.com/nao1215/treeverify/internal/model"
	"github.com/nao1215/treeverify/internal/pipeline"
	"github.com/nao1215/treeverify/internal/report"
	"github.com/nao1215/treeverify/internal/watch"
)

// errScoreBelowThreshold is returned when a report scores below --min-score.
var errScoreBelowThreshold = errors.New("overall score below threshold")

// NewVerifyCmd creates the verify command.
func NewVerifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "verify <structure.md>",
		Short: "Score generated projects against a structure document",
		Long: `Verify compares one or more generated projects with the directory tree
of a structure document and reports seven weighted metrics plus an
overall score between 0 and 100.

Generated content is expected below <generated>/system/project1; the
wrapper names, modules and feature paths can be changed in the
configuration file (see 'treeverify init').

Every finished run is stored in the history database so that
'treeverify history' can compare runs. Use --no-save to skip this.

Examples:
  # Verify one generated project
  treeverify verify structure.md -g output

  # Verify several projects concurrently
  treeverify verify structure.md -g run1 -g run2 -g run3 --parallel 3

  # Markdown report in Traditional Chinese, written to report.zh-TW.md
  treeverify verify structure.md -g output --markdown --lang zh-TW -o report.md

  # Reports in every supported language
  treeverify verify structure.md -g output --markdown --all-langs -o report.md

  # Re-verify whenever the generated project changes
  treeverify verify structure.md -g output --watch

  # Fail in CI when the score drops below 90
  treeverify verify structure.md -g output --min-score 90`,
		Args: cobra.MaximumNArgs(1),
		RunE: runVerifyCmd,
	}

	cmd.Flags().StringSliceP("generated", "g", nil,
		"Generated project root to verify (repeatable)")
	cmd.Flags().IntP("parallel", "p", config.DefaultBatchSize,
		"Number of generated roots verified concurrently")

	cmd.Flags().BoolP("json", "j", false,
		"Output JSON report (mutually exclusive with --markdown)")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output Markdown report (mutually exclusive with --json)")
	cmd.Flags().StringP("lang", "l", string(i18n.DefaultLang),
		`Report language: en, zh-TW, zh-CN or "auto" for the locale`)
	cmd.Flags().Bool("all-langs", false,
		"Write the report in every supported language")
	cmd.Flags().StringP("output", "o", "",
		"Write report to file; non-English reports get a language suffix")
	cmd.Flags().Bool("color", false, "Colour the text report")

	cmd.Flags().Bool("no-save", false, "Do not store the run in the history database")
	cmd.Flags().Float64("min-score", 0, "Fail when any overall score is below this value")

	cmd.Flags().BoolP("watch", "w", false, "Re-verify when a generated root changes")
	cmd.Flags().Duration("debounce", config.DefaultDebounce,
		"Quiet period before a watch re-run")

	return cmd
}

// verifyOptions are the verify flags that have no Config counterpart.
type verifyOptions struct {
	allLangs bool
	minScore float64
}

func runVerifyCmd(cmd *cobra.Command, args []string) error {
	cfg, opts, err := buildVerifyConfig(cmd, args)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("configuration error: %w", err)
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	v := &verifier{
		cfg:    cfg,
		opts:   opts,
		layout: cfg.File.CoverageLayout(),
		logger: slog.Default(),
		out:    cmd.OutOrStdout(),
		errOut: cmd.ErrOrStderr(),
	}

	if cfg.SaveToDB {
		db, err := database.Open(cfg.DBDir, database.DefaultOptions())
		if err != nil {
			return fmt.Errorf("failed to open history database: %w", err)
		}
		defer db.Close()
		v.db = db
	}

	err = v.run(ctx, cfg.GeneratedPaths)
	if !cfg.Watch {
		return err
	}
	if err != nil && !errors.Is(err, errScoreBelowThreshold) {
		return err
	}
	return v.watch(ctx)
}

// buildVerifyConfig creates a Config from the settings and the verify flags.
func buildVerifyConfig(cmd *cobra.Command, args []string) (*config.Config, verifyOptions, error) {
	var opts verifyOptions

	cfg, err := loadSettings(cmd)
	if err != nil {
		return nil, opts, err
	}
	if len(args) > 0 {
		cfg.StructureFile = args[0]
	}

	flags := cmd.Flags()
	if cfg.GeneratedPaths, err = flags.GetStringSlice("generated"); err != nil {
		return nil, opts, err
	}
	if cfg.BatchSize, err = flags.GetInt("parallel"); err != nil {
		return nil, opts, err
	}
	if cfg.JSONReport, err = flags.GetBool("json"); err != nil {
		return nil, opts, err
	}
	if cfg.MarkdownReport, err = flags.GetBool("markdown"); err != nil {
		return nil, opts, err
	}
	if cfg.ReportFile, err = flags.GetString("output"); err != nil {
		return nil, opts, err
	}
	if cfg.Color, err = flags.GetBool("color"); err != nil {
		return nil, opts, err
	}
	noSave, err := flags.GetBool("no-save")
	if err != nil {
		return nil, opts, err
	}
	cfg.SaveToDB = !noSave
	if cfg.Watch, err = flags.GetBool("watch"); err != nil {
		return nil, opts, err
	}
	if cfg.Debounce, err = flags.GetDuration("debounce"); err != nil {
		return nil, opts, err
	}

	if opts.allLangs, err = flags.GetBool("all-langs"); err != nil {
		return nil, opts, err
	}
	if opts.minScore, err = flags.GetFloat64("min-score"); err != nil {
		return nil, opts, err
	}
	return cfg, opts, nil
}

// verifier runs verifications and delivers their reports.
type verifier struct {
	cfg    *config.Config
	opts   verifyOptions
	layout coverage.Layout
	db     *database.HistoryDB
	logger *slog.Logger
	out    io.Writer
	errOut io.Writer

	// mu serializes output when several watchers fire at once.
	mu sync.Mutex
}

// run verifies roots, writes the reports and stores them. The structure
// document is parsed on every run so that watch mode picks up edits.
func (v *verifier) run(ctx context.Context, roots []string) error {
	m, err := parseStructure(v.cfg)
	if err != nil {
		return err
	}
	if m.IsEmpty() {
		v.logger.Warn("structure document has no tree; every metric will be zero",
			"structure_file", v.cfg.StructureFile)
	}

	factory := func(root string) (*pipeline.Pipeline, error) {
		in, err := coverage.NewInput(m, root,
			coverage.WithLayout(v.layout),
			coverage.WithInputLogger(v.logger),
		)
		if err != nil {
			return nil, err
		}
		return pipeline.NewVerificationPipeline(in,
			pipeline.WithLogger(v.logger),
			pipeline.WithContinueOnError(true),
		), nil
	}

	bp := pipeline.NewBatchProcessor(v.cfg.StructureFile, factory,
		pipeline.WithConcurrency(v.cfg.BatchSize),
		pipeline.WithBatchLogger(v.logger),
	)
	results, batchErr := bp.ProcessBatch(ctx, roots)

	reports := make([]*model.Report, 0, len(results))
	for _, r := range results {
		if r != nil {
			reports = append(reports, r)
		}
	}

	v.mu.Lock()
	defer v.mu.Unlock()

	if err := v.output(reports); err != nil {
		return err
	}
	v.save(ctx, reports)
	if batchErr != nil {
		return batchErr
	}
	return v.checkScores(reports)
}

// languages returns the report languages of this run.
func (v *verifier) languages() []i18n.Lang {
	if v.opts.allLangs && !v.cfg.JSONReport {
		return i18n.Supported()
	}
	return []i18n.Lang{v.cfg.Lang}
}

// output writes reports to stdout, or to one file per language.
func (v *verifier) output(reports []*model.Report) error {
	langs := v.languages()
	if v.cfg.ReportFile == "" {
		return writeReports(v.out, v.cfg, langs, reports)
	}

	for _, lang := range langs {
		c := *v.cfg
		c.Lang = lang
		c.Color = false
		path := c.ReportPath()

		w, closeFn, err := openOutputFile(path)
		if err != nil {
			return err
		}
		err = writeReports(w, &c, []i18n.Lang{lang}, reports)
		if cerr := closeFn(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		fmt.Fprintf(v.errOut, "Report written to %s\n", path)
	}
	return nil
}

// save stores reports in the history database. Failures are logged only.
func (v *verifier) save(ctx context.Context, reports []*model.Report) {
	if v.db == nil {
		return
	}
	for _, r := range reports {
		if r.Cancelled {
			continue
		}
		id, err := v.db.SaveReport(ctx, r)
		if err != nil {
			v.logger.Error("failed to save report", "generated_path", r.GeneratedPath, "error", err)
			continue
		}
		v.logger.Info("report saved to history", "id", id, "generated_path", r.GeneratedPath)
	}
}

// checkScores enforces --min-score.
func (v *verifier) checkScores(reports []*model.Report) error {
	if v.opts.minScore <= 0 {
		return nil
	}
	var low []string
	for _, r := range reports {
		if r.OverallScore < v.opts.minScore {
			low = append(low, fmt.Sprintf("%s (%.2f)", r.GeneratedPath, r.OverallScore))
		}
	}
	if len(low) > 0 {
		return fmt.Errorf("%w %.2f: %s", errScoreBelowThreshold, v.opts.minScore, strings.Join(low, ", "))
	}
	return nil
}

// watch re-verifies each root after it changes until ctx is cancelled.
func (v *verifier) watch(ctx context.Context) error {
	watchers := make([]*watch.Watcher, 0, len(v.cfg.GeneratedPaths))
	defer func() {
		for _, w := range watchers {
			_ = w.Close()
		}
	}()
	for _, root := range v.cfg.GeneratedPaths {
		w, err := watch.New(root,
			watch.WithDebounce(v.cfg.Debounce),
			watch.WithLogger(v.logger),
		)
		if err != nil {
			return fmt.Errorf("failed to watch %s: %w", root, err)
		}
		watchers = append(watchers, w)
	}

	fmt.Fprintf(v.errOut, "Watching %s for changes (Ctrl+C to stop)...\n",
		strings.Join(v.cfg.GeneratedPaths, ", "))

	g, gctx := errgroup.WithContext(ctx)
	for i, w := range watchers {
		root := v.cfg.GeneratedPaths[i]
		g.Go(func() error {
			return w.Run(gctx, func(ctx context.Context, changed []string) {
				v.logger.Info("change detected", "generated_path", root, "paths", len(changed))
				if err := v.run(ctx, []string{root}); err != nil {
					fmt.Fprintf(v.errOut, "Verification of %s: %v\n", root, err)
				}
			})
		})
	}
	return g.Wait()
}

// writeReports renders reports with one writer per language. JSON is
// language independent; several JSON reports form one array.
func writeReports(out io.Writer, cfg *config.Config, langs []i18n.Lang, reports []*model.Report) error {
	if cfg.JSONReport && len(reports) > 1 {
		_, err := report.NewJSONWriter(out, report.WithPrettyPrint()).WriteAll(reports)
		return err
	}

	w := newReportWriter(out, cfg, langs)
	for _, r := range reports {
		if _, err := w.Write(r); err != nil {
			return err
		}
	}
	return nil
}

// newReportWriter picks the writer for the configured format. Several
// languages are combined with a MultiWriter.
func newReportWriter(out io.Writer, cfg *config.Config, langs []i18n.Lang) report.Writer {
	if cfg.JSONReport {
		return report.NewFullJSONWriter(out, getVersion(), report.WithPrettyPrint())
	}

	writers := make([]report.Writer, 0, len(langs))
	for _, lang := range langs {
		catalog := i18n.New(lang)
		if cfg.MarkdownReport {
			writers = append(writers, report.NewMarkdownWriter(out, catalog))
			continue
		}
		writers = append(writers, report.NewSimpleWriter(out, catalog,
			report.WithVerbose(cfg.Verbose),
			report.WithColor(cfg.Color),
		))
	}
	if len(writers) == 1 {
		return writers[0]
	}
	return report.NewMultiWriter(writers...)
}
