// internal/pipeline/count.go
package pipeline

import (
	"context"
	"errors"
	"path/filepath"

	"fachunk/internal/fasta"
	"fachunk/internal/writers"
)

// SplitByCount streams path and writes every cfg.ChunkSize records to a new
// file numbered from 1; the last file holds the remainder. No index is used,
// so gzip input and stdin ("-") work. A non-empty file already at a target
// name stops the run with writers.ErrOutputExists.
func SplitByCount(ctx context.Context, cfg Config, path string) (Result, error) {
	res := Result{Input: path, Strategy: StrategyCount}
	if cfg.ChunkSize == 0 {
		return res, errors.New("records per file must be > 0")
	}
	n := int(cfg.ChunkSize)
	base := writers.BaseName(path)
	dir := writers.OutDir(cfg.OutRoot, base, cfg.DataType)
	opts := cfg.writerOptions()

	var (
		group    []fasta.Record
		residues uint64
	)
	flush := func() error {
		if len(group) == 0 {
			return nil
		}
		id := len(res.Chunks) + 1
		file := writers.CountName(base, id, n)
		if err := writers.CheckTarget(filepath.Join(dir, file)); err != nil {
			return err
		}
		written, err := writers.WriteRecords(dir, file, group, opts)
		if err != nil {
			return err
		}
		res.Chunks = append(res.Chunks, ChunkResult{
			ID:       id,
			File:     filepath.Join(dir, file),
			Records:  len(group),
			Residues: residues,
			Bytes:    written,
		})
		group, residues = group[:0], 0
		return nil
	}

	err := fasta.Scan(ctx, path, cfg.DataType.Alphabet(), func(rec fasta.Record) error {
		rec, bare := sanitizeRecord(cfg.Sanitizer, rec)
		if bare {
			res.Bare++
		}
		group = append(group, rec)
		residues += uint64(len(rec.Seq))
		if len(group) == n {
			return flush()
		}
		return nil
	})
	if err != nil {
		return res, err
	}
	return res, flush()
}
