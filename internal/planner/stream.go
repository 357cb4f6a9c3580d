// internal/planner/stream.go
package planner

import (
	"context"

	"fachunk/internal/fasta"
)

// Stream groups records in index order. A record whose length reaches Budget
// is emitted alone; a record that would bring the pending group to Budget or
// beyond closes that group and opens the next one.
type Stream struct {
	Budget uint64
}

func (Stream) Strategy() Strategy { return StrategyStream }

func (s Stream) Plan(ctx context.Context, entries []fasta.IndexEntry) (Plan, error) {
	var (
		b       builder
		pending []Member
		total   uint64
	)
	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m := Member{Name: e.Name, Length: e.Length}
		switch {
		case m.Length >= s.Budget:
			b.emit(pending)
			b.emit([]Member{m})
			pending, total = nil, 0
		case total+m.Length >= s.Budget:
			b.emit(pending)
			pending, total = []Member{m}, m.Length
		default:
			pending = append(pending, m)
			total += m.Length
		}
	}
	b.emit(pending)
	return b.plan, nil
}
