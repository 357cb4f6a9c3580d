// internal/fasta/scan.go
package fasta

import (
	"context"
	"fmt"

	"github.com/biogo/biogo/alphabet"
	"github.com/biogo/biogo/io/seqio"
	biofasta "github.com/biogo/biogo/io/seqio/fasta"
	"github.com/biogo/biogo/seq/linear"
)

// Scan reads path ("-" for stdin, gzip allowed) and calls emit for each
// record in file order. Cancellation is checked between records.
func Scan(ctx context.Context, path string, alpha alphabet.Alphabet, emit func(Record) error) error {
	rc, err := openReader(path)
	if err != nil {
		return err
	}
	defer rc.Close()

	sc := seqio.NewScanner(biofasta.NewReader(rc, linear.NewSeq("", nil, alpha)))
	for sc.Next() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		s, ok := sc.Seq().(*linear.Seq)
		if !ok {
			return fmt.Errorf("fasta scan %s: unexpected sequence type %T", path, sc.Seq())
		}
		header := s.Name()
		if d := s.Description(); d != "" {
			header += " " + d
		}
		if err := emit(Record{Name: s.Name(), Header: header, Seq: alphabet.LettersToBytes(s.Seq)}); err != nil {
			return err
		}
	}
	if err := sc.Error(); err != nil {
		return fmt.Errorf("fasta scan %s: %w", path, err)
	}
	return nil
}

// ValidateFormat reads every record of path and returns name → sequence length.
// It fails on files with no records or with repeated names.
func ValidateFormat(ctx context.Context, path string) (map[string]uint64, error) {
	sizes := make(map[string]uint64)
	err := Scan(ctx, path, alphabet.Protein, func(r Record) error {
		if _, dup := sizes[r.Name]; dup {
			return fmt.Errorf("%w: %q in %s", ErrDuplicateName, r.Name, path)
		}
		sizes[r.Name] = uint64(len(r.Seq))
		return nil
	})
	if err != nil {
		return nil, err
	}
	if len(sizes) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoRecords, path)
	}
	return sizes, nil
}
