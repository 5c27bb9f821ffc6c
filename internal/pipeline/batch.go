package pipeline

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/nao1215/treeverify/internal/model"
)

// DefaultConcurrency is the number of generated roots verified at once.
const DefaultConcurrency = 4

// Factory builds the pipeline that verifies one generated root.
type Factory func(generatedPath string) (*Pipeline, error)

// BatchProcessor verifies several generated roots against the same
// structure document concurrently. Every root gets its own pipeline and
// its own report.
type BatchProcessor struct {
	// structureFile is recorded in every report.
	structureFile string

	// factory creates a new pipeline for each root.
	factory Factory

	// concurrency is the maximum number of concurrent verifications.
	concurrency int

	// logger is used for batch-level logging.
	logger *slog.Logger

	// results stores completed reports in input order.
	results []*model.Report
	mu      sync.Mutex
}

// BatchOption configures a BatchProcessor.
type BatchOption func(*BatchProcessor)

// WithBatchLogger sets a custom logger for batch processing.
func WithBatchLogger(logger *slog.Logger) BatchOption {
	return func(b *BatchProcessor) {
		b.logger = logger
	}
}

// WithConcurrency sets the maximum number of concurrent verifications.
// Non-positive values keep DefaultConcurrency.
func WithConcurrency(n int) BatchOption {
	return func(b *BatchProcessor) {
		if n > 0 {
			b.concurrency = n
		}
	}
}

// NewBatchProcessor creates a new BatchProcessor for structureFile.
// factory is called once per root so that no state leaks between runs.
func NewBatchProcessor(structureFile string, factory Factory, opts ...BatchOption) *BatchProcessor {
	bp := &BatchProcessor{
		structureFile: structureFile,
		factory:       factory,
		concurrency:   DefaultConcurrency,
		results:       make([]*model.Report, 0),
	}

	for _, opt := range opts {
		opt(bp)
	}

	if bp.logger == nil {
		bp.logger = slog.Default()
	}

	return bp
}

// ProcessBatch verifies every root and returns one finalized report per
// root, in input order. A failing root does not stop the others; its error
// is kept in its report. The returned error is set only when the batch
// was cancelled.
func (bp *BatchProcessor) ProcessBatch(ctx context.Context, roots []string) ([]*model.Report, error) {
	bp.logger.Info("starting verification batch",
		"total_roots", len(roots),
		"concurrency", bp.concurrency,
	)

	startTime := time.Now()
	bp.results = make([]*model.Report, len(roots))

	err := bp.run(ctx, roots, func(report *model.Report, index int) {
		bp.mu.Lock()
		bp.results[index] = report
		bp.mu.Unlock()
	})

	bp.logger.Info("verification batch complete",
		"total_roots", len(roots),
		"elapsed", time.Since(startTime),
	)

	return bp.results, err
}

// ProcessBatchWithCallback verifies every root and calls callback as soon
// as each report is finalized. callback runs on the goroutine that finished
// the root and must be safe for concurrent use.
func (bp *BatchProcessor) ProcessBatchWithCallback(
	ctx context.Context,
	roots []string,
	callback func(report *model.Report, index int),
) error {
	return bp.run(ctx, roots, callback)
}

func (bp *BatchProcessor) run(ctx context.Context, roots []string, done func(*model.Report, int)) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(bp.concurrency)

	for i, root := range roots {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			bp.logger.Info("verifying generated root",
				"generated_path", root,
				"index", i+1,
				"total", len(roots),
			)

			report := model.NewReport(bp.structureFile, root)
			if err := bp.verify(ctx, root, report); err != nil {
				bp.logger.Warn("verification failed",
					"generated_path", root,
					"error", err,
				)
			}
			report.Finalize()
			done(report, i)

			return nil
		})
	}

	return g.Wait()
}

func (bp *BatchProcessor) verify(ctx context.Context, root string, report *model.Report) error {
	p, err := bp.factory(root)
	if err != nil {
		report.Error = err
		return err
	}
	return p.Execute(ctx, report)
}
