// internal/pipeline/size.go
package pipeline

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"golang.org/x/sync/errgroup"

	"fachunk/internal/fasta"
	"fachunk/internal/planner"
	"fachunk/internal/writers"
)

// SplitBySize plans path under cfg.ChunkSize residues per file and writes
// every chunk. Binpack takes its name → length mapping from a full scan of
// the FASTA; Stream walks the sidecar index in file order. Both fetch
// sequence through the index.
func SplitBySize(ctx context.Context, cfg Config, path string) (Result, error) {
	res := Result{Input: path, Strategy: cfg.Strategy}
	pl, err := planner.New(planner.Strategy(cfg.Strategy), cfg.ChunkSize)
	if err != nil {
		return res, err
	}
	entries, err := fasta.LoadIndex(path, cfg.IndexSuffix, cfg.BuildIndex)
	if err != nil {
		return res, err
	}

	var plan planner.Plan
	if bp, ok := pl.(planner.Binpack); ok {
		sizes, err := fasta.ValidateFormat(ctx, path)
		if err != nil {
			return res, err
		}
		plan, err = bp.PlanSizes(ctx, sizes)
		if err != nil {
			return res, err
		}
	} else if plan, err = pl.Plan(ctx, entries); err != nil {
		return res, err
	}

	repo, err := fasta.OpenRepository(path, entries)
	if err != nil {
		return res, err
	}
	defer repo.Close()

	base := writers.BaseName(path)
	name := func(c planner.Chunk) string {
		if pl.Strategy() == planner.StrategyBinpack {
			return writers.BinpackName(base, c.ID, cfg.DataType)
		}
		return writers.StreamName(base, len(c.Members), c.ID)
	}
	res.Chunks, res.Bare, err = WritePlan(ctx, cfg, repo, plan, writers.OutDir(cfg.OutRoot, base, cfg.DataType), name)
	return res, err
}

// WritePlan resolves and writes each chunk of plan into dir, one task per
// chunk on at most cfg.Threads goroutines. Results are in chunk order; on
// error the results of chunks that did finish are still returned. Nothing is
// written when any target already holds data.
func WritePlan(
	ctx context.Context,
	cfg Config,
	repo *fasta.Repository,
	plan planner.Plan,
	dir string,
	name func(planner.Chunk) string,
) ([]ChunkResult, int, error) {
	for _, ch := range plan {
		if err := writers.CheckTarget(filepath.Join(dir, name(ch))); err != nil {
			return nil, 0, err
		}
	}
	if err := writers.EnsurePathExists(dir); err != nil {
		return nil, 0, err
	}
	var (
		results = make([]ChunkResult, len(plan))
		done    = make([]bool, len(plan))
		bare    atomic.Int64
		opts    = cfg.writerOptions()
	)
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(cfg.threads())

	for i, ch := range plan {
		if gctx.Err() != nil {
			break
		}
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			recs := make([]fasta.Record, 0, len(ch.Members))
			for _, m := range ch.Members {
				rec, err := repo.Record(m.Name)
				if err != nil {
					return fmt.Errorf("chunk %d: %w", ch.ID, err)
				}
				rec, isBare := sanitizeRecord(cfg.Sanitizer, rec)
				if isBare {
					bare.Add(1)
				}
				recs = append(recs, rec)
			}
			file := name(ch)
			n, err := writers.WriteRecords(dir, file, recs, opts)
			if err != nil {
				return err
			}
			results[i] = ChunkResult{
				ID:       ch.ID,
				File:     filepath.Join(dir, file),
				Records:  len(recs),
				Residues: ch.Total(),
				Bytes:    n,
			}
			done[i] = true
			return nil
		})
	}
	err := g.Wait()
	if err == nil {
		err = ctx.Err()
	}

	out := results[:0]
	for i, r := range results {
		if done[i] {
			out = append(out, r)
		}
	}
	return out, int(bare.Load()), err
}
