// internal/writers/naming.go
package writers

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"fachunk/internal/config"
)

// BaseName is the input file name up to its first '.'; stdin is "stdin".
func BaseName(path string) string {
	if path == "-" {
		return "stdin"
	}
	b := filepath.Base(path)
	if i := strings.IndexByte(b, '.'); i > 0 {
		return b[:i]
	}
	return b
}

// OutDir is <root>/<base>/<dtype>.
func OutDir(root, base string, dt config.DataType) string {
	return filepath.Join(root, base, string(dt))
}

// BinpackName is <base>_f<id>_<dtype>.fasta.
func BinpackName(base string, id int, dt config.DataType) string {
	return fmt.Sprintf("%s_f%d_%s.fasta", base, id, dt)
}

// StreamName is <base>-c<records>-f<id>.fasta.
func StreamName(base string, records, id int) string {
	return fmt.Sprintf("%s-c%d-f%d.fasta", base, records, id)
}

// CountName is <base>_f<id>_c<n>.fa, n being the requested records per file.
func CountName(base string, id, n int) string {
	return fmt.Sprintf("%s_f%d_c%d.fa", base, id, n)
}

// ErrBaseCollision is returned by CheckBases when two inputs map to the same
// output tree.
var ErrBaseCollision = errors.New("inputs share an output base name")

// CheckBases fails when two inputs have the same BaseName, e.g. genome.fa and
// genome.fasta, or a/x.fa and b/x.fa.
func CheckBases(inputs []string) error {
	seen := make(map[string]string, len(inputs))
	for _, in := range inputs {
		b := BaseName(in)
		if prev, ok := seen[b]; ok {
			return fmt.Errorf("%w: %s and %s both write to %q", ErrBaseCollision, prev, in, b)
		}
		seen[b] = in
	}
	return nil
}
