// internal/cli/usage.go
package cli

import (
	"flag"
	"fmt"
	"io"

	"fachunk/internal/version"
)

// Usage installs the fachunk help text on fs.
func Usage(fs *flag.FlagSet, name string) {
	fs.Usage = func() {
		out := fs.Output()
		def := func(flagName string) string {
			if f := fs.Lookup(flagName); f != nil {
				return f.DefValue
			}
			return ""
		}

		fmt.Fprintf(out, "%s – split FASTA files into size- or count-bounded chunks\n\n", name)
		fmt.Fprintln(out, "License: MIT")
		fmt.Fprintf(out, "Version: %s\n\n", version.Version)

		fmt.Fprintln(out, "Usage:")
		fmt.Fprintf(out, "  %s [options] -n N file.fa [file.fa ...]\n", name)

		fmt.Fprintln(out, "\nInput:")
		fmt.Fprintln(out, "  -f, --fasta file            FASTA file(s) (repeatable); '-' for STDIN (count only)")
		fmt.Fprintf(out, "      --index-suffix string   Sidecar index suffix [%s]\n", def("index-suffix"))
		fmt.Fprintf(out, "      --build-index           Build <fasta><suffix> when it is missing [%s]\n", def("build-index"))

		fmt.Fprintln(out, "\nChunking:")
		fmt.Fprintf(out, "  -S, --strategy string       binpack | stream | count [%s]\n", def("strategy"))
		fmt.Fprintln(out, "  -n, --chunk-size int        Residues per file, or records per file for count [*]")
		fmt.Fprintf(out, "  -d, --data-type string      pep | cdna | cds | rna [%s]\n", def("data-type"))
		fmt.Fprintf(out, "  -g, --origin string         Header convention: ensembl | ncbi | other [%s]\n", def("origin"))
		fmt.Fprintf(out, "      --sanitize              Rewrite headers as key=value; metadata [%s]\n", def("sanitize"))

		fmt.Fprintln(out, "\nPerformance:")
		fmt.Fprintf(out, "  -t, --threads int           Chunk writers (0=all CPUs) [%s]\n", def("threads"))

		fmt.Fprintln(out, "\nOutput:")
		fmt.Fprintf(out, "  -o, --outdir dir            Output root; files go to <outdir>/<base>/<data-type>/ [%s]\n", def("outdir"))
		fmt.Fprintf(out, "      --line-width int        Residues per FASTA line [%s]\n", def("line-width"))
		fmt.Fprintf(out, "      --output string         Run report: text | json | jsonl | none [%s]\n", def("output"))
		fmt.Fprintf(out, "      --no-header             Suppress the text report header [%s]\n", def("no-header"))

		fmt.Fprintln(out, "\nMiscellaneous:")
		fmt.Fprintln(out, "      --config file           YAML defaults for long flags (command line wins)")
		fmt.Fprintf(out, "  -q, --quiet                 Suppress progress and warnings [%s]\n", def("quiet"))
		fmt.Fprintln(out, "      --examples              Print usage examples and exit")
		fmt.Fprintln(out, "  -v, --version               Print version and exit")
		fmt.Fprintln(out, "  -h, --help                  Show this help and exit")
	}
}

// PrintExamples writes a few typical invocations.
func PrintExamples(w io.Writer, name string) {
	fmt.Fprintln(w, "Examples:")
	fmt.Fprintln(w, "  # Pack an Ensembl proteome into ~1 Mbp files with sanitized headers")
	fmt.Fprintf(w, "  %s -S binpack -n 1000000 -g ensembl --sanitize Homo_sapiens.GRCh38.pep.all.fa\n\n", name)
	fmt.Fprintln(w, "  # Stream transcripts in file order, building the .fai if needed")
	fmt.Fprintf(w, "  %s -S stream -n 5000000 -d cdna --build-index -o chunks/ transcripts.fa\n\n", name)
	fmt.Fprintln(w, "  # 500 records per file from a gzipped RefSeq proteome on STDIN")
	fmt.Fprintf(w, "  zcat protein.faa.gz | %s -S count -n 500 -g ncbi --sanitize -\n\n", name)
	fmt.Fprintln(w, "  # Defaults from a YAML file, JSON run report")
	fmt.Fprintf(w, "  %s --config chunking.yaml --output json *.fa\n", name)
}
