// internal/integration/integration_test.go
package integration

import (
	"bytes"
	"compress/gzip"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fachunk/internal/app"
	"fachunk/pkg/api"
)

func write(t *testing.T, fn, data string) string {
	t.Helper()
	if err := os.WriteFile(fn, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}

func record(name, desc string, n int) string {
	seq := strings.Repeat("ACDEFGHIKLMNPQRSTVWY", n/20+1)[:n]
	var b strings.Builder
	fmt.Fprintf(&b, ">%s", name)
	if desc != "" {
		fmt.Fprintf(&b, " %s", desc)
	}
	b.WriteByte('\n')
	for i := 0; i < len(seq); i += 60 {
		end := min(i+60, len(seq))
		b.WriteString(seq[i:end])
		b.WriteByte('\n')
	}
	return b.String()
}

func runJSON(t *testing.T, argv ...string) api.RunReportV1 {
	t.Helper()
	var out, errBuf bytes.Buffer
	code := app.Run(append(argv, "--output", "json", "-q"), &out, &errBuf)
	require.Equalf(t, 0, code, "stderr: %s", errBuf.String())
	var rep api.RunReportV1
	require.NoError(t, json.Unmarshal(out.Bytes(), &rep))
	return rep
}

func TestEndToEnd_StreamBuildsIndex(t *testing.T) {
	dir := t.TempDir()
	fa := write(t, filepath.Join(dir, "prot.pep.fa"),
		record("A", "", 50)+record("B", "", 60)+record("C", "", 120))
	outdir := filepath.Join(dir, "out")

	rep := runJSON(t, "-S", "stream", "-n", "100", "--build-index", "-o", outdir, fa)

	require.Len(t, rep.Inputs, 1)
	in := rep.Inputs[0]
	assert.Equal(t, "stream", in.Strategy)
	require.Len(t, in.Chunks, 3)
	for i, c := range in.Chunks {
		assert.Equal(t, i+1, c.ID)
		assert.Equal(t, 1, c.Records)
		assert.FileExists(t, c.File)
	}
	assert.Equal(t, filepath.Join(outdir, "prot", "pep", "prot-c1-f1.fasta"), in.Chunks[0].File)
	assert.Equal(t, uint64(120), in.Chunks[2].Residues)
	assert.FileExists(t, fa+".fai")
}

func TestEndToEnd_BinpackSanitized(t *testing.T) {
	dir := t.TempDir()
	fa := write(t, filepath.Join(dir, "ens.fa"),
		record("ENSP00000000001.1", "pep chromosome:GRCh38:1:1:10:1 gene:ENSG00000000001.2 transcript:ENST00000000001.3 gene_symbol:ABC1", 40)+
			record("ENSP00000000002.1", "pep gene:ENSG00000000002.1 transcript:ENST00000000002.1", 30)+
			record("weird", "nothing useful here", 20))

	rep := runJSON(t, "-S", "binpack", "-n", "100", "-g", "ensembl", "--sanitize", "--build-index", "-o", dir, fa)

	require.Len(t, rep.Inputs, 1)
	in := rep.Inputs[0]
	require.Len(t, in.Chunks, 1)
	assert.Equal(t, 3, in.Chunks[0].Records)
	assert.Equal(t, 1, in.BareHeaders)
	assert.Equal(t, filepath.Join(dir, "ens", "pep", "ens_f1_pep.fasta"), in.Chunks[0].File)

	data, err := os.ReadFile(in.Chunks[0].File)
	require.NoError(t, err)
	text := string(data)
	assert.Contains(t, text, ">protein_id=ENSP00000000001.1;gene_id=ENSG00000000001.2;transcript_id=ENST00000000001.3;")
	assert.Contains(t, text, ">weird\n")
	assert.NotContains(t, text, "chromosome:")
}

func TestEndToEnd_CountGzip(t *testing.T) {
	dir := t.TempDir()
	var raw strings.Builder
	for i := 1; i <= 5; i++ {
		raw.WriteString(record(fmt.Sprintf("r%d", i), "", 10))
	}
	fn := filepath.Join(dir, "reads.fa.gz")
	var gz bytes.Buffer
	zw := gzip.NewWriter(&gz)
	_, _ = zw.Write([]byte(raw.String()))
	require.NoError(t, zw.Close())
	require.NoError(t, os.WriteFile(fn, gz.Bytes(), 0o644))

	rep := runJSON(t, "-S", "count", "-n", "2", "-d", "cds", "-o", dir, fn)
	in := rep.Inputs[0]
	require.Len(t, in.Chunks, 3)
	assert.Equal(t, []int{2, 2, 1}, []int{in.Chunks[0].Records, in.Chunks[1].Records, in.Chunks[2].Records})
	assert.Equal(t, filepath.Join(dir, "reads", "cds", "reads_f3_c2.fa"), in.Chunks[2].File)
}

func TestEndToEnd_TextReport(t *testing.T) {
	dir := t.TempDir()
	fa := write(t, filepath.Join(dir, "t.fa"), record("x", "", 5)+record("y", "", 5))
	var out, errBuf bytes.Buffer
	code := app.Run([]string{"-S", "count", "-n", "10", "-o", dir, fa}, &out, &errBuf)
	require.Equalf(t, 0, code, "stderr: %s", errBuf.String())
	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 2)
	assert.Equal(t, "input\tstrategy\tchunk\tfile\trecords\tresidues\tbytes", lines[0])
	assert.True(t, strings.HasPrefix(lines[1], fa+"\tcount\t1\t"))
	assert.Contains(t, errBuf.String(), "INFO: ")
}

func TestParallelMatchesSerial(t *testing.T) {
	var data strings.Builder
	for i := 0; i < 40; i++ {
		data.WriteString(record(fmt.Sprintf("seq%02d", i), "", 10+i*7))
	}

	run := func(threads int) api.RunReportV1 {
		dir := t.TempDir()
		fa := write(t, filepath.Join(dir, "par.fa"), data.String())
		rep := runJSON(t, "-S", "binpack", "-n", "300", "--build-index", "-t", fmt.Sprint(threads), "-o", dir, fa)
		for i := range rep.Inputs {
			rep.Inputs[i].Input = filepath.Base(rep.Inputs[i].Input)
			for j := range rep.Inputs[i].Chunks {
				rep.Inputs[i].Chunks[j].File = filepath.Base(rep.Inputs[i].Chunks[j].File)
			}
		}
		return rep
	}

	assert.Equal(t, run(1), run(8))
}

func TestExitCodes(t *testing.T) {
	dir := t.TempDir()
	fa := write(t, filepath.Join(dir, "noidx.fa"), record("a", "", 5))

	cases := []struct {
		name string
		argv []string
		code int
		out  string
		err  string
	}{
		{"no args prints usage", nil, 0, "Usage:", ""},
		{"help", []string{"-h"}, 0, "Chunking:", ""},
		{"version", []string{"--version"}, 0, "fachunk version ", ""},
		{"examples", []string{"--examples"}, 0, "Examples:", ""},
		{"unknown flag", []string{"--bogus"}, 2, "", "error:"},
		{"unsupported origin", []string{"--sanitize", "-n", "5", fa}, 2, "", "unsupported origin"},
		{"missing index", []string{"-S", "stream", "-n", "5", "-o", dir, fa}, 3, "", "index not found"},
		{"missing file", []string{"-S", "count", "-n", "5", "-o", dir, filepath.Join(dir, "nope.fa")}, 3, "", "error:"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out, errBuf bytes.Buffer
			code := app.Run(tc.argv, &out, &errBuf)
			assert.Equalf(t, tc.code, code, "stderr: %s", errBuf.String())
			assert.Contains(t, out.String(), tc.out)
			assert.Contains(t, errBuf.String(), tc.err)
		})
	}
}

func TestCancelled_Exit130(t *testing.T) {
	dir := t.TempDir()
	fa := write(t, filepath.Join(dir, "c.fa"), record("a", "", 5))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var out, errBuf bytes.Buffer
	code := app.RunContext(ctx, []string{"-S", "count", "-n", "1", "-o", dir, fa}, &out, &errBuf)
	assert.Equal(t, 130, code)
}

func TestEndToEnd_JSONLStreamsPerInput(t *testing.T) {
	dir := t.TempDir()
	a := write(t, filepath.Join(dir, "a.fa"), record("x", "", 5)+record("y", "", 5)+record("z", "", 5))
	b := write(t, filepath.Join(dir, "b.fa"), record("w", "", 5))

	var out, errBuf bytes.Buffer
	code := app.Run([]string{"-S", "count", "-n", "2", "-q", "--output", "jsonl", "-o", dir, a, b}, &out, &errBuf)
	require.Equalf(t, 0, code, "stderr: %s", errBuf.String())

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	var got []api.ChunkLineV1
	for _, l := range lines {
		var c api.ChunkLineV1
		require.NoError(t, json.Unmarshal([]byte(l), &c))
		got = append(got, c)
	}
	assert.Equal(t, a, got[0].Input)
	assert.Equal(t, 2, got[0].Records)
	assert.Equal(t, 1, got[1].Records)
	assert.Equal(t, b, got[2].Input)
	assert.Equal(t, filepath.Join(dir, "b", "pep", "b_f1_c2.fa"), got[2].File)
	assert.Empty(t, errBuf.String())
}

func TestInputsSharingBaseNameAreRejected(t *testing.T) {
	dir := t.TempDir()
	a := write(t, filepath.Join(dir, "genome.fa"), record("a", "", 5))
	b := write(t, filepath.Join(dir, "genome.fasta"), record("b", "", 5))
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub"), 0o755))
	c := write(t, filepath.Join(dir, "sub", "genome.fa"), record("c", "", 5))
	outdir := filepath.Join(dir, "out")

	for _, pair := range [][2]string{{a, b}, {a, c}} {
		var out, errBuf bytes.Buffer
		code := app.Run([]string{"-S", "count", "-n", "5", "-o", outdir, pair[0], pair[1]}, &out, &errBuf)
		assert.Equal(t, 2, code)
		assert.Contains(t, errBuf.String(), "share an output base name")
		assert.NoDirExists(t, outdir)
	}
}

func TestRerunRefusesToAppend(t *testing.T) {
	dir := t.TempDir()
	fa := write(t, filepath.Join(dir, "g.fa"), record("a", "", 5)+record("b", "", 5))

	rep := runJSON(t, "-S", "count", "-n", "5", "-o", dir, fa)
	require.Len(t, rep.Inputs, 1)
	chunk := rep.Inputs[0].Chunks[0].File
	before, err := os.ReadFile(chunk)
	require.NoError(t, err)

	var out, errBuf bytes.Buffer
	code := app.Run([]string{"-S", "count", "-n", "5", "-o", dir, fa}, &out, &errBuf)
	assert.Equal(t, 3, code)
	assert.Contains(t, errBuf.String(), "already exists")

	after, err := os.ReadFile(chunk)
	require.NoError(t, err)
	assert.Equal(t, string(before), string(after))
	assert.Equal(t, 2, strings.Count(string(after), ">"))
}
