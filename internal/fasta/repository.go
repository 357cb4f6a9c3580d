// internal/fasta/repository.go
package fasta

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
)

const maxHeaderLen = 1 << 20

// Repository serves records by name from an indexed, uncompressed FASTA.
// Lookups use positioned reads only, so concurrent Get/Header calls are safe
// when the underlying ReaderAt is (*os.File is).
type Repository struct {
	r       io.ReaderAt
	closer  io.Closer
	size    int64 // -1 when unknown
	entries []IndexEntry
	byName  map[string]int
}

// NewRepository wraps r with entries. The caller keeps ownership of r.
// When r has a Size method (bytes.Reader, strings.Reader, io.SectionReader)
// index spans are checked against it before any buffer is allocated.
func NewRepository(r io.ReaderAt, entries []IndexEntry) *Repository {
	m := make(map[string]int, len(entries))
	for i, e := range entries {
		m[e.Name] = i
	}
	size := int64(-1)
	if sz, ok := r.(interface{ Size() int64 }); ok {
		size = sz.Size()
	}
	return &Repository{r: r, size: size, entries: entries, byName: m}
}

// OpenRepository opens path and builds a Repository that owns the handle.
func OpenRepository(path string, entries []IndexEntry) (*Repository, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	st, err := fh.Stat()
	if err != nil {
		_ = fh.Close()
		return nil, err
	}
	repo := NewRepository(fh, entries)
	repo.closer = fh
	repo.size = st.Size()
	return repo, nil
}

// Close releases the file handle when the repository owns one.
func (r *Repository) Close() error {
	if r.closer == nil {
		return nil
	}
	return r.closer.Close()
}

// Entries returns the index in file order. The slice must not be modified.
func (r *Repository) Entries() []IndexEntry { return r.entries }

// Len is the number of indexed records.
func (r *Repository) Len() int { return len(r.entries) }

// Entry looks up the index row for name.
func (r *Repository) Entry(name string) (IndexEntry, error) {
	i, ok := r.byName[name]
	if !ok {
		return IndexEntry{}, fmt.Errorf("%w: %q", ErrRecordNotFound, name)
	}
	return r.entries[i], nil
}

// Get returns the residues of name with line terminators removed.
func (r *Repository) Get(name string) ([]byte, error) {
	e, err := r.Entry(name)
	if err != nil {
		return nil, err
	}
	if e.Length == 0 {
		return []byte{}, nil
	}
	span, err := r.span(e)
	if err != nil {
		return nil, err
	}

	buf := make([]byte, span)
	n, err := r.r.ReadAt(buf, e.Offset)
	if n < len(buf) {
		if err == nil || errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: %q: short read at offset %d (%d of %d bytes)", ErrMalformedIndex, name, e.Offset, n, len(buf))
		}
		return nil, fmt.Errorf("read %q: %w", name, err)
	}

	seq := buf[:0]
	for _, c := range buf {
		if c != '\n' && c != '\r' {
			seq = append(seq, c)
		}
	}
	if uint64(len(seq)) != e.Length {
		return nil, fmt.Errorf("%w: %q: decoded %d residues, index says %d", ErrMalformedIndex, name, len(seq), e.Length)
	}
	return seq, nil
}

// span is the byte length from e.Offset through the last residue. It fails
// when the index row points past the end of the data or cannot be addressed.
func (r *Repository) span(e IndexEntry) (int64, error) {
	if e.LineBase <= 0 || e.LineWidth < e.LineBase {
		return 0, fmt.Errorf("%w: %q: line_base %d, line_width %d", ErrMalformedIndex, e.Name, e.LineBase, e.LineWidth)
	}
	last := e.Length - 1
	lines := last / uint64(e.LineBase)
	width := uint64(e.LineWidth)
	if lines > (math.MaxInt64-uint64(e.LineBase))/width {
		return 0, fmt.Errorf("%w: %q: length %d out of range", ErrMalformedIndex, e.Name, e.Length)
	}
	n := int64(lines*width + last%uint64(e.LineBase) + 1)
	if n > math.MaxInt64-e.Offset || n > math.MaxInt {
		return 0, fmt.Errorf("%w: %q: length %d out of range", ErrMalformedIndex, e.Name, e.Length)
	}
	if r.size >= 0 && e.Offset+n > r.size {
		return 0, fmt.Errorf("%w: %q: record ends at byte %d past end of file (%d bytes)", ErrMalformedIndex, e.Name, e.Offset+n, r.size)
	}
	return n, nil
}

// Header recovers the definition line (without '>') that precedes name's
// sequence by reading backwards from its offset.
func (r *Repository) Header(name string) (string, error) {
	e, err := r.Entry(name)
	if err != nil {
		return "", err
	}
	if r.size >= 0 && e.Offset > r.size {
		return "", fmt.Errorf("%w: %q: offset %d past end of file (%d bytes)", ErrMalformedIndex, name, e.Offset, r.size)
	}
	for size := int64(4096); ; size *= 2 {
		start := e.Offset - size
		if start < 0 {
			start = 0
		}
		buf := make([]byte, e.Offset-start)
		if n, err := r.r.ReadAt(buf, start); n < len(buf) {
			if err == nil || errors.Is(err, io.EOF) {
				return "", fmt.Errorf("%w: %q: offset %d past end of file", ErrMalformedIndex, name, e.Offset)
			}
			return "", fmt.Errorf("read %q: %w", name, err)
		}
		buf = bytes.TrimRight(buf, "\r\n")
		i := bytes.LastIndexByte(buf, '\n')
		if i < 0 && start > 0 {
			if size >= maxHeaderLen {
				return "", fmt.Errorf("%w: %q: header longer than %d bytes", ErrMalformedIndex, name, maxHeaderLen)
			}
			continue
		}
		line := buf[i+1:]
		if len(line) == 0 || line[0] != '>' {
			return "", fmt.Errorf("%w: %q: no header line before offset %d", ErrMalformedIndex, name, e.Offset)
		}
		return string(line[1:]), nil
	}
}

// Record returns the header and residues of name.
func (r *Repository) Record(name string) (Record, error) {
	h, err := r.Header(name)
	if err != nil {
		return Record{}, err
	}
	seq, err := r.Get(name)
	if err != nil {
		return Record{}, err
	}
	return Record{Name: name, Header: h, Seq: seq}, nil
}
