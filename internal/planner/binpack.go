// internal/planner/binpack.go
package planner

import (
	"context"
	"fmt"
	"sort"

	"fachunk/internal/fasta"
)

// Binpack packs records greedily in ascending name order. A record longer
// than Budget is emitted alone; otherwise records accumulate until the next
// one would overflow, at which point the open group is closed and the
// overflowing record starts the next group.
type Binpack struct {
	Budget uint64
}

func (Binpack) Strategy() Strategy { return StrategyBinpack }

// Plan ignores entry order; only names and lengths are used.
func (bp Binpack) Plan(ctx context.Context, entries []fasta.IndexEntry) (Plan, error) {
	sizes := make(map[string]uint64, len(entries))
	for _, e := range entries {
		sizes[e.Name] = e.Length
	}
	return bp.PlanSizes(ctx, sizes)
}

// PlanSizes plans from a name → length mapping such as fasta.ValidateFormat returns.
func (bp Binpack) PlanSizes(ctx context.Context, sizes map[string]uint64) (Plan, error) {
	names := make([]string, 0, len(sizes))
	for n := range sizes {
		names = append(names, n)
	}
	sort.Strings(names)

	var (
		b     builder
		group []Member
		sum   uint64
	)
	for _, name := range names {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		m := Member{Name: name, Length: sizes[name]}
		if m.Length > bp.Budget {
			b.emit([]Member{m})
			continue
		}
		group = append(group, m)
		sum += m.Length
		if len(group) > 1 && sum > bp.Budget {
			group = group[:len(group)-1]
			sum -= m.Length
			if sum > bp.Budget {
				return b.plan, fmt.Errorf("%w: group ending before %q sums to %d > budget %d", ErrPlanningIncomplete, name, sum, bp.Budget)
			}
			b.emit(group)
			group = []Member{m}
			sum = m.Length
		}
	}
	b.emit(group)
	return b.plan, nil
}
