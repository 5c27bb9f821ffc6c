// Package pipeline executes verification steps in sequence and fans out
// over several generated roots.
//
// A Pipeline runs Steps against one model.Report. The seven coverage
// metrics are Steps; NewVerificationPipeline assembles them with the digest
// step in weight order. BatchProcessor verifies several generated roots
// against the same structure document concurrently, bounded by errgroup's
// limit, and returns one finalized report per root.
package pipeline
