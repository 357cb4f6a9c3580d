// internal/cli/options.go
package cli

import (
	"errors"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"fachunk/internal/cliutil"
	"fachunk/internal/config"
	"fachunk/internal/fasta"
	"fachunk/internal/output"
	"fachunk/internal/pipeline"
	"fachunk/internal/planner"
	"fachunk/internal/sanitize"
	"fachunk/internal/writers"
)

// ErrExamples is returned by ParseArgs when --examples was given.
var ErrExamples = errors.New("examples requested")

// Options holds all CLI flags and arguments after validation.
type Options struct {
	// Input
	Inputs      []string
	IndexSuffix string
	BuildIndex  bool

	// Chunking
	Strategy  string
	ChunkSize uint64
	DataType  config.DataType
	Origin    sanitize.Origin
	Sanitize  bool
	Sanitizer sanitize.Sanitizer // set by Validate when Sanitize is on

	// Output
	OutDir    string
	LineWidth int
	Report    string
	Header    bool

	// Performance
	Threads int

	// Misc
	ConfigFile string
	Quiet      bool
	Version    bool
}

// raw holds flag values before they are typed and validated.
type raw struct {
	dataType string
	origin   string
	noHeader bool
	examples bool
}

// aliases maps short flag names to the long name they share a value with.
var aliases = map[string]string{
	"S": "strategy", "n": "chunk-size", "d": "data-type", "g": "origin",
	"o": "outdir", "t": "threads", "q": "quiet", "f": "fasta", "v": "version",
}

// NewFlagSet returns a FlagSet with ContinueOnError and the fachunk usage text.
func NewFlagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	Usage(fs, name)
	return fs
}

func register(fs *flag.FlagSet, o *Options, r *raw) {
	inVal := &sliceValue{dst: &o.Inputs}
	fs.Var(inVal, "fasta", "FASTA file (repeatable) or '-'")
	fs.Var(inVal, "f", "alias of --fasta")
	fs.StringVar(&o.IndexSuffix, "index-suffix", fasta.DefaultIndexSuffix, "sidecar index suffix")
	fs.BoolVar(&o.BuildIndex, "build-index", false, "build the index when it is missing")

	fs.StringVar(&o.Strategy, "strategy", string(planner.StrategyStream), "binpack | stream | count")
	fs.StringVar(&o.Strategy, "S", string(planner.StrategyStream), "alias of --strategy")
	fs.Uint64Var(&o.ChunkSize, "chunk-size", 0, "residues per file (binpack/stream) or records per file (count)")
	fs.Uint64Var(&o.ChunkSize, "n", 0, "alias of --chunk-size")
	fs.StringVar(&r.dataType, "data-type", string(config.DataPep), "pep | cdna | cds | rna")
	fs.StringVar(&r.dataType, "d", string(config.DataPep), "alias of --data-type")
	fs.StringVar(&r.origin, "origin", string(sanitize.OriginOther), "ensembl | ncbi | other")
	fs.StringVar(&r.origin, "g", string(sanitize.OriginOther), "alias of --origin")
	fs.BoolVar(&o.Sanitize, "sanitize", false, "rewrite headers into protein_id/gene_id/transcript_id/gene_name")

	fs.StringVar(&o.OutDir, "outdir", ".", "output root; files go to <outdir>/<base>/<data-type>/")
	fs.StringVar(&o.OutDir, "o", ".", "alias of --outdir")
	fs.IntVar(&o.LineWidth, "line-width", writers.DefaultLineWidth, "residues per FASTA line")
	fs.StringVar(&o.Report, "output", output.FormatText, "run report on stdout: text | json | jsonl | none")
	fs.BoolVar(&r.noHeader, "no-header", false, "suppress the text report header")

	fs.IntVar(&o.Threads, "threads", 0, "chunk writers (0=all CPUs)")
	fs.IntVar(&o.Threads, "t", 0, "alias of --threads")

	fs.StringVar(&o.ConfigFile, "config", "", "YAML file with defaults for the long flags")
	fs.BoolVar(&o.Quiet, "quiet", false, "suppress progress and warnings")
	fs.BoolVar(&o.Quiet, "q", false, "alias of --quiet")
	fs.BoolVar(&o.Version, "version", false, "print version and exit")
	fs.BoolVar(&o.Version, "v", false, "alias of --version")
	fs.BoolVar(&r.examples, "examples", false, "print usage examples and exit")
}

// ParseArgs registers flags on fs, parses argv (flags and positional FASTA
// paths may be mixed), merges --config defaults, and validates the result.
func ParseArgs(fs *flag.FlagSet, argv []string) (Options, error) {
	var (
		opt Options
		r   raw
	)
	register(fs, &opt, &r)

	flagArgs, posArgs := cliutil.SplitFlagsAndPositionals(fs, argv)
	if err := fs.Parse(flagArgs); err != nil {
		return opt, err
	}
	posArgs = append(posArgs, fs.Args()...)
	if opt.Version {
		return opt, nil
	}
	if r.examples {
		return opt, ErrExamples
	}
	if len(posArgs) > 0 {
		exp, err := cliutil.ExpandPositionals(posArgs)
		if err != nil {
			return opt, err
		}
		opt.Inputs = append(opt.Inputs, exp...)
	}
	if opt.ConfigFile != "" {
		if err := applyConfig(fs, &opt, opt.ConfigFile); err != nil {
			return opt, err
		}
	}
	opt.Inputs = cliutil.Dedupe(opt.Inputs)
	opt.Header = !r.noHeader

	var err error
	if opt.DataType, err = config.ParseDataType(r.dataType); err != nil {
		return opt, err
	}
	if opt.Origin, err = sanitize.ParseOrigin(r.origin); err != nil {
		return opt, err
	}
	return opt, Validate(&opt)
}

// Validate applies cross-flag invariants.
func Validate(o *Options) error {
	if len(o.Inputs) == 0 {
		return errors.New("at least one FASTA input is required")
	}
	switch o.Strategy {
	case string(planner.StrategyBinpack), string(planner.StrategyStream):
		for _, in := range o.Inputs {
			if in == "-" {
				return fmt.Errorf("--strategy %s needs an indexed file; stdin is only supported with count", o.Strategy)
			}
		}
	case pipeline.StrategyCount:
	default:
		return fmt.Errorf("invalid --strategy %q", o.Strategy)
	}
	if err := writers.CheckBases(o.Inputs); err != nil {
		return err
	}
	if o.ChunkSize == 0 {
		return errors.New("--chunk-size must be > 0")
	}
	if o.Strategy == pipeline.StrategyCount && o.ChunkSize > uint64(int(^uint(0)>>1)) {
		return errors.New("--chunk-size too large for count")
	}
	o.Sanitizer = nil
	if o.Sanitize {
		s, err := sanitize.New(o.Origin)
		if err != nil {
			return fmt.Errorf("--sanitize: %w", err)
		}
		o.Sanitizer = s
	}
	if o.Threads < 0 {
		return errors.New("--threads must be ≥ 0")
	}
	if o.LineWidth <= 0 {
		return errors.New("--line-width must be > 0")
	}
	switch o.Report {
	case output.FormatText, output.FormatJSON, output.FormatJSONL, output.FormatNone:
	default:
		return fmt.Errorf("invalid --output %q", o.Report)
	}
	if o.IndexSuffix == "" {
		return errors.New("--index-suffix must not be empty")
	}
	return nil
}

// applyConfig fills every long flag that was not given on the command line
// from the YAML file at path.
func applyConfig(fs *flag.FlagSet, o *Options, path string) error {
	f, err := config.Load(path)
	if err != nil {
		return err
	}
	set := cliutil.VisitedFlags(fs, aliases)
	apply := func(name, v string) error {
		if v == "" || set[name] {
			return nil
		}
		if err := fs.Set(name, v); err != nil {
			return fmt.Errorf("config %s: %s: %w", path, name, err)
		}
		return nil
	}
	fmtBool := func(b *bool) string {
		if b == nil {
			return ""
		}
		return strconv.FormatBool(*b)
	}
	fmtInt := func(i *int) string {
		if i == nil {
			return ""
		}
		return strconv.Itoa(*i)
	}
	fmtUint := func(u uint64) string {
		if u == 0 {
			return ""
		}
		return strconv.FormatUint(u, 10)
	}
	fmtPos := func(i int) string {
		if i == 0 {
			return ""
		}
		return strconv.Itoa(i)
	}
	for _, kv := range [][2]string{
		{"strategy", f.Strategy},
		{"chunk-size", fmtUint(f.ChunkSize)},
		{"data-type", f.DataType},
		{"origin", f.Origin},
		{"sanitize", fmtBool(f.Sanitize)},
		{"outdir", f.OutDir},
		{"index-suffix", f.IndexSuffix},
		{"build-index", fmtBool(f.BuildIndex)},
		{"threads", fmtInt(f.Threads)},
		{"line-width", fmtPos(f.LineWidth)},
		{"output", f.Output},
		{"quiet", fmtBool(f.Quiet)},
	} {
		if err := apply(kv[0], kv[1]); err != nil {
			return err
		}
	}
	if len(o.Inputs) == 0 {
		o.Inputs = append(o.Inputs, f.Inputs...)
	}
	return nil
}

// sliceValue appends each value to a *[]string (for --fasta/-f).
type sliceValue struct{ dst *[]string }

func (s *sliceValue) String() string {
	if s.dst == nil {
		return ""
	}
	return strings.Join(*s.dst, ",")
}

func (s *sliceValue) Set(v string) error {
	*s.dst = append(*s.dst, v)
	return nil
}
