// Package pipeline runs one input file through a chunking strategy and writes
// the resulting chunks.
//
// Size strategies plan first (planner.Binpack / planner.Stream), then resolve
// each chunk through an indexed fasta.Repository on a bounded errgroup; the
// first failure cancels the rest. The count strategy is a single sequential
// pass that needs no index.
package pipeline
