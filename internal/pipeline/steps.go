package pipeline

import (
	"context"

	"github.com/nao1215/treeverify/internal/coverage"
	"github.com/nao1215/treeverify/internal/model"
)

// DigestStep records the structure document digest on the report.
type DigestStep struct {
	digest string
}

// NewDigestStep creates a step recording digest.
func NewDigestStep(digest string) *DigestStep {
	return &DigestStep{digest: digest}
}

// Name returns the step name.
func (s *DigestStep) Name() string {
	return "structure_digest"
}

// Do implements Step.
func (s *DigestStep) Do(_ context.Context, report *model.Report) error {
	report.StructureDigest = s.digest
	return nil
}

// MetricSteps returns the seven coverage metrics for in as pipeline steps.
func MetricSteps(in *coverage.Input) []Step {
	metrics := coverage.Steps(in)
	steps := make([]Step, len(metrics))
	for i, m := range metrics {
		steps[i] = m
	}
	return steps
}

// NewVerificationPipeline builds the standard pipeline for one generated
// root: the digest step followed by every metric in weight order.
func NewVerificationPipeline(in *coverage.Input, opts ...Option) *Pipeline {
	p := New(opts...)
	p.AddStep(NewDigestStep(in.Model().Digest()))
	p.AddSteps(MetricSteps(in)...)
	return p
}
