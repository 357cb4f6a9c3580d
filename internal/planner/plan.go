// Package planner groups indexed records into size-bounded chunks.
//
// Two strategies are offered and they are not interchangeable:
//   - Binpack walks records sorted by name and packs them greedily. Record
//     order in the output does not follow the input file.
//   - Stream walks records in index (file) order and never reorders them.
//
// Both guarantee that every record lands in exactly one chunk and that a
// chunk's summed length stays within the budget unless the chunk is a single
// record that is larger than the budget on its own.
package planner

import (
	"context"
	"errors"
	"fmt"

	"fachunk/internal/fasta"
)

// ErrPlanningIncomplete is returned when a group cannot be brought under budget.
var ErrPlanningIncomplete = errors.New("planning incomplete")

// Strategy selects a size-constrained planner.
type Strategy string

const (
	StrategyBinpack Strategy = "binpack"
	StrategyStream  Strategy = "stream"
)

// Member is one record assigned to a chunk.
type Member struct {
	Name   string
	Length uint64
}

// Chunk is one output file's worth of records.
type Chunk struct {
	ID      int
	Members []Member
}

// Total is the summed length of the chunk's members.
func (c Chunk) Total() uint64 {
	var n uint64
	for _, m := range c.Members {
		n += m.Length
	}
	return n
}

// Names lists member names in chunk order.
func (c Chunk) Names() []string {
	out := make([]string, len(c.Members))
	for i, m := range c.Members {
		out[i] = m.Name
	}
	return out
}

// Plan is the ordered list of chunks produced by a planner. IDs start at 1.
type Plan []Chunk

// Residues is the summed length over all chunks.
func (p Plan) Residues() uint64 {
	var n uint64
	for _, c := range p {
		n += c.Total()
	}
	return n
}

// Planner partitions index entries into a Plan.
type Planner interface {
	Strategy() Strategy
	Plan(ctx context.Context, entries []fasta.IndexEntry) (Plan, error)
}

// New returns the planner for s with the given residue budget.
func New(s Strategy, budget uint64) (Planner, error) {
	if budget == 0 {
		return nil, errors.New("chunk budget must be > 0")
	}
	switch s {
	case StrategyBinpack:
		return Binpack{Budget: budget}, nil
	case StrategyStream:
		return Stream{Budget: budget}, nil
	default:
		return nil, fmt.Errorf("unknown size strategy %q (want binpack | stream)", s)
	}
}

// builder hands out consecutive chunk IDs starting at 1.
type builder struct {
	plan Plan
}

func (b *builder) emit(members []Member) {
	if len(members) == 0 {
		return
	}
	b.plan = append(b.plan, Chunk{ID: len(b.plan) + 1, Members: members})
}
