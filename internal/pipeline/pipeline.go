// internal/pipeline/pipeline.go
package pipeline

import (
	"context"
	"fmt"
	"runtime"

	"fachunk/internal/config"
	"fachunk/internal/fasta"
	"fachunk/internal/planner"
	"fachunk/internal/sanitize"
	"fachunk/internal/writers"
)

// StrategyCount splits by record count rather than residue budget.
const StrategyCount = "count"

// Config controls one run over one input file.
type Config struct {
	Strategy  string // binpack | stream | count
	ChunkSize uint64 // residue budget, or records per file for count
	DataType  config.DataType
	OutRoot   string

	Sanitizer sanitize.Sanitizer // nil keeps original headers

	IndexSuffix string
	BuildIndex  bool

	Threads   int // size strategies only; <= 0 means all CPUs
	LineWidth int
}

// ChunkResult describes one written output file.
type ChunkResult struct {
	ID       int
	File     string
	Records  int
	Residues uint64
	Bytes    int64
}

// Result summarizes a run over one input.
type Result struct {
	Input    string
	Strategy string
	Chunks   []ChunkResult
	// Bare counts records whose header yielded no metadata under sanitizing;
	// those keep their record name as header.
	Bare int
}

// Records is the number of records written.
func (r Result) Records() int {
	n := 0
	for _, c := range r.Chunks {
		n += c.Records
	}
	return n
}

// Residues is the number of residues written.
func (r Result) Residues() uint64 {
	var n uint64
	for _, c := range r.Chunks {
		n += c.Residues
	}
	return n
}

// Bytes is the number of bytes written.
func (r Result) Bytes() int64 {
	var n int64
	for _, c := range r.Chunks {
		n += c.Bytes
	}
	return n
}

// Split dispatches path to the configured strategy.
func Split(ctx context.Context, cfg Config, path string) (Result, error) {
	switch cfg.Strategy {
	case StrategyCount:
		return SplitByCount(ctx, cfg, path)
	case string(planner.StrategyBinpack), string(planner.StrategyStream):
		return SplitBySize(ctx, cfg, path)
	default:
		return Result{}, fmt.Errorf("unknown strategy %q (want binpack | stream | count)", cfg.Strategy)
	}
}

func (cfg Config) writerOptions() writers.Options {
	return writers.Options{LineWidth: cfg.LineWidth, Alphabet: cfg.DataType.Alphabet()}
}

func (cfg Config) threads() int {
	if cfg.Threads <= 0 {
		return runtime.NumCPU()
	}
	return cfg.Threads
}

// sanitizeRecord rewrites rec's header when s is set. bare reports that
// nothing was extracted, in which case the header falls back to the name.
func sanitizeRecord(s sanitize.Sanitizer, rec fasta.Record) (out fasta.Record, bare bool) {
	if s == nil {
		return rec, false
	}
	f := s.Extract(rec.Header)
	if f.IsZero() {
		rec.Header = rec.Name
		return rec, true
	}
	rec.Header = f.String()
	return rec, false
}
