// internal/writers/chunk.go
package writers

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/biogo/biogo/alphabet"
	biofasta "github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"

	"fachunk/internal/fasta"
)

var (
	// ErrIO wraps directory/file creation and write failures.
	ErrIO = errors.New("output I/O failure")
	// ErrOutputExists is returned by CheckTarget for a non-empty existing file.
	ErrOutputExists = errors.New("output file already exists")
)

// DefaultLineWidth matches the common FASTA wrap used by Ensembl and samtools.
const DefaultLineWidth = 80

// Options controls record serialization.
type Options struct {
	LineWidth int               // residues per line; <= 0 means DefaultLineWidth
	Alphabet  alphabet.Alphabet // nil means alphabet.DNA
}

func (o Options) normalized() Options {
	if o.LineWidth <= 0 {
		o.LineWidth = DefaultLineWidth
	}
	if o.Alphabet == nil {
		o.Alphabet = alphabet.DNA
	}
	return o
}

// EnsurePathExists creates dir and any missing parents.
func EnsurePathExists(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: mkdir %s: %w", ErrIO, dir, err)
	}
	return nil
}

// EnsureFileExists creates path if it is missing and leaves it untouched otherwise.
func EnsureFileExists(path string) error {
	fh, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("%w: create %s: %w", ErrIO, path, err)
	}
	if err := fh.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %w", ErrIO, path, err)
	}
	return nil
}

// CheckTarget fails with ErrOutputExists when path is a non-empty file.
// A missing or empty file is fine.
func CheckTarget(path string) error {
	st, err := os.Stat(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil
	case err != nil:
		return fmt.Errorf("%w: stat %s: %w", ErrIO, path, err)
	case st.IsDir():
		return fmt.Errorf("%w: %s is a directory", ErrOutputExists, path)
	case st.Size() > 0:
		return fmt.Errorf("%w: %s (%d bytes)", ErrOutputExists, path, st.Size())
	}
	return nil
}

// WriteRecords appends recs to dir/name as FASTA and returns the bytes written.
// Calling it twice with the same name concatenates.
func WriteRecords(dir, name string, recs []fasta.Record, opt Options) (int64, error) {
	opt = opt.normalized()
	if err := EnsurePathExists(dir); err != nil {
		return 0, err
	}
	path := filepath.Join(dir, name)
	if err := EnsureFileExists(path); err != nil {
		return 0, err
	}
	fh, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return 0, fmt.Errorf("%w: open %s: %w", ErrIO, path, err)
	}
	bw := bufio.NewWriterSize(fh, 1<<16)
	w := biofasta.NewWriter(bw, opt.LineWidth)

	var total int64
	for _, r := range recs {
		n, err := w.Write(toSeq(r, opt.Alphabet))
		total += int64(n)
		if err != nil {
			_ = fh.Close()
			return total, fmt.Errorf("%w: write %s (%s): %w", ErrIO, path, r.Name, err)
		}
	}
	if err := bw.Flush(); err != nil {
		_ = fh.Close()
		return total, fmt.Errorf("%w: flush %s: %w", ErrIO, path, err)
	}
	if err := fh.Close(); err != nil {
		return total, fmt.Errorf("%w: close %s: %w", ErrIO, path, err)
	}
	return total, nil
}

// toSeq splits the header into biogo's ID and description at the first blank.
func toSeq(r fasta.Record, alpha alphabet.Alphabet) *linear.Seq {
	header := r.Header
	if header == "" {
		header = r.Name
	}
	id, desc, _ := strings.Cut(header, " ")
	s := linear.NewSeq(id, alphabet.BytesToLetters(r.Seq), alpha)
	s.Desc = strings.TrimSpace(desc)
	return s
}
