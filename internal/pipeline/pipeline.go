package pipeline

import (
	"context"
	"log/slog"
	"time"

	"github.com/nao1215/treeverify/internal/model"
)

// Step fills one part of a verification report. Every coverage.Metric is
// a Step.
type Step interface {
	// Do updates report. A returned error means the step could not produce
	// its result at all; files that merely fail a check are recorded in the
	// report instead.
	Do(ctx context.Context, report *model.Report) error

	// Name identifies the step in logs and in report.PerformedSteps.
	Name() string
}

// Pipeline runs its steps in order against a single report.
type Pipeline struct {
	steps           []Step
	logger          *slog.Logger
	continueOnError bool
}

// Option configures a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger. The default is slog.Default.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) {
		p.logger = logger
	}
}

// WithContinueOnError keeps running the remaining steps after a failure.
// The report keeps the first error either way.
func WithContinueOnError(continueOnError bool) Option {
	return func(p *Pipeline) {
		p.continueOnError = continueOnError
	}
}

// New returns an empty pipeline.
func New(opts ...Option) *Pipeline {
	p := &Pipeline{logger: slog.Default()}
	for _, opt := range opts {
		opt(p)
	}
	if p.logger == nil {
		p.logger = slog.Default()
	}
	return p
}

// AddStep appends step.
func (p *Pipeline) AddStep(step Step) {
	p.steps = append(p.steps, step)
}

// AddSteps appends steps in the given order.
func (p *Pipeline) AddSteps(steps ...Step) {
	p.steps = append(p.steps, steps...)
}

// Execute runs every step against report.
//
// The context is checked between steps; on cancellation the report is
// marked Cancelled and ctx.Err() is returned. A failing step stops the run
// unless WithContinueOnError was given, in which case Execute returns nil
// and the failure is only visible through report.Error.
func (p *Pipeline) Execute(ctx context.Context, report *model.Report) error {
	for _, step := range p.steps {
		if err := ctx.Err(); err != nil {
			p.logger.Warn("verification cancelled",
				"next_step", step.Name(),
				"generated_path", report.GeneratedPath,
			)
			report.Cancelled = true
			return err
		}

		start := time.Now()
		err := step.Do(ctx, report)
		if err != nil {
			p.logger.Error("step failed",
				"step", step.Name(),
				"generated_path", report.GeneratedPath,
				"error", err,
			)
			if report.Error == nil {
				report.Error = err
				report.ErrorMessage = err.Error()
			}
			if !p.continueOnError {
				return err
			}
			continue
		}

		p.logger.Debug("step done",
			"step", step.Name(),
			"generated_path", report.GeneratedPath,
			"elapsed", time.Since(start),
		)
		report.MarkPerformed(step.Name())
	}
	return nil
}

// StepCount returns the number of steps.
func (p *Pipeline) StepCount() int {
	return len(p.steps)
}

// StepNames returns the step names in execution order.
func (p *Pipeline) StepNames() []string {
	names := make([]string, len(p.steps))
	for i, step := range p.steps {
		names[i] = step.Name()
	}
	return names
}
