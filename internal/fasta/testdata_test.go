package fasta

import (
	"os"
	"path/filepath"
	"testing"
)

const sample = `>seq1 first record
ACGTACGTAC
GTACG
>seq2
AAAAAAAAAA
CC
>empty
>seq3 desc here
TT
`

var sampleIndex = []IndexEntry{
	{Name: "seq1", Length: 15, Offset: 19, LineBase: 10, LineWidth: 11},
	{Name: "seq2", Length: 12, Offset: 42, LineBase: 10, LineWidth: 11},
	{Name: "empty", Length: 0, Offset: 63, LineBase: 0, LineWidth: 0},
	{Name: "seq3", Length: 2, Offset: 79, LineBase: 2, LineWidth: 3},
}

// writeFile drops data into a fresh temp dir and returns its path.
func writeFile(t *testing.T, name, data string) string {
	t.Helper()
	fn := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(fn, []byte(data), 0o644); err != nil {
		t.Fatalf("write %s: %v", fn, err)
	}
	return fn
}
