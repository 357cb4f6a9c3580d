// internal/fasta/index.go
package fasta

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"
)

// DefaultIndexSuffix is the samtools faidx sidecar suffix.
const DefaultIndexSuffix = ".fai"

// IndexEntry is one row of a faidx sidecar. Offset is the byte position of the
// first residue; LineBase is residues per full line and LineWidth is bytes per
// full line including the terminator.
type IndexEntry struct {
	Name      string
	Length    uint64
	Offset    int64
	LineBase  int
	LineWidth int
}

// ReadIndex opens path+suffix and decodes its rows in file order.
func ReadIndex(path, suffix string) ([]IndexEntry, error) {
	idxPath := path + suffix
	fh, err := os.Open(idxPath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrIndexNotFound, idxPath)
		}
		return nil, err
	}
	defer fh.Close()
	return parseIndex(fh, idxPath)
}

func parseIndex(r io.Reader, name string) ([]IndexEntry, error) {
	var (
		list []IndexEntry
		seen = make(map[string]struct{})
	)
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 64*1024), 16*1024*1024)
	ln := 0
	for sc.Scan() {
		ln++
		line := strings.TrimRight(sc.Text(), "\r")
		if line == "" {
			continue
		}
		e, err := decodeIndexRow(line)
		if err != nil {
			return nil, fmt.Errorf("%w: %s:%d: %v", ErrMalformedIndex, name, ln, err)
		}
		if _, dup := seen[e.Name]; dup {
			return nil, fmt.Errorf("%w: %s:%d: duplicate name %q", ErrMalformedIndex, name, ln, e.Name)
		}
		seen[e.Name] = struct{}{}
		list = append(list, e)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	return list, nil
}

func decodeIndexRow(line string) (IndexEntry, error) {
	var e IndexEntry
	f := strings.Split(line, "\t")
	if len(f) != 5 {
		return e, fmt.Errorf("want 5 tab-separated fields, got %d", len(f))
	}
	if f[0] == "" {
		return e, errors.New("empty name")
	}
	e.Name = f[0]
	var err error
	if e.Length, err = strconv.ParseUint(f[1], 10, 64); err != nil {
		return e, fmt.Errorf("length %q: %v", f[1], err)
	}
	if e.Offset, err = strconv.ParseInt(f[2], 10, 64); err != nil || e.Offset < 0 {
		return e, fmt.Errorf("offset %q: not a non-negative integer", f[2])
	}
	if e.LineBase, err = strconv.Atoi(f[3]); err != nil || e.LineBase < 0 {
		return e, fmt.Errorf("line_base %q: not a non-negative integer", f[3])
	}
	if e.LineWidth, err = strconv.Atoi(f[4]); err != nil || e.LineWidth < 0 {
		return e, fmt.Errorf("line_width %q: not a non-negative integer", f[4])
	}
	if e.Length > 0 && e.LineBase == 0 {
		return e, errors.New("line_base is 0 for a non-empty record")
	}
	if e.LineWidth < e.LineBase {
		return e, fmt.Errorf("line_width %d < line_base %d", e.LineWidth, e.LineBase)
	}
	return e, nil
}

// WriteIndex serializes entries in faidx layout.
func WriteIndex(w io.Writer, entries []IndexEntry) error {
	bw := bufio.NewWriter(w)
	for _, e := range entries {
		if _, err := fmt.Fprintf(bw, "%s\t%d\t%d\t%d\t%d\n", e.Name, e.Length, e.Offset, e.LineBase, e.LineWidth); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// BuildIndex scans an uncompressed FASTA and computes its faidx entries.
// Every sequence line of a record except the last must have the same length.
func BuildIndex(path string) ([]IndexEntry, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer fh.Close()

	var (
		list   []IndexEntry
		seen   = make(map[string]struct{})
		cur    *IndexEntry
		short  bool // a short (final) line has been seen in cur
		offset int64
		ln     int
	)
	finish := func() {
		if cur != nil {
			list = append(list, *cur)
		}
	}
	br := bufio.NewReaderSize(fh, 1<<20)
	for {
		raw, rerr := br.ReadBytes('\n')
		if rerr != nil && rerr != io.EOF {
			return nil, fmt.Errorf("read %s: %w", path, rerr)
		}
		if len(raw) == 0 && rerr == io.EOF {
			break
		}
		ln++
		n := len(raw)
		content := strings.TrimRight(string(raw), "\r\n")
		terminated := raw[n-1] == '\n'

		switch {
		case strings.HasPrefix(content, ">"):
			finish()
			name := NameOf(content)
			if name == "" {
				return nil, fmt.Errorf("%w: %s:%d: empty record name", ErrMalformedIndex, path, ln)
			}
			if _, dup := seen[name]; dup {
				return nil, fmt.Errorf("%w: %s:%d: duplicate name %q", ErrMalformedIndex, path, ln, name)
			}
			seen[name] = struct{}{}
			cur = &IndexEntry{Name: name, Offset: offset + int64(n)}
			short = false
		case cur == nil:
			if strings.TrimSpace(content) != "" {
				return nil, fmt.Errorf("%w: %s:%d: sequence before first header", ErrMalformedIndex, path, ln)
			}
		case len(content) == 0:
			short = true
		default:
			if short {
				return nil, fmt.Errorf("%w: %s:%d: ragged line lengths in %q", ErrMalformedIndex, path, ln, cur.Name)
			}
			switch {
			case cur.LineBase == 0:
				cur.LineBase = len(content)
				cur.LineWidth = n
			case len(content) > cur.LineBase:
				return nil, fmt.Errorf("%w: %s:%d: ragged line lengths in %q", ErrMalformedIndex, path, ln, cur.Name)
			case len(content) < cur.LineBase:
				short = true
			case terminated && n != cur.LineWidth:
				return nil, fmt.Errorf("%w: %s:%d: mixed line terminators in %q", ErrMalformedIndex, path, ln, cur.Name)
			}
			cur.Length += uint64(len(content))
		}
		offset += int64(n)
		if rerr == io.EOF {
			break
		}
	}
	finish()
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoRecords, path)
	}
	return list, nil
}

// LoadIndex reads path+suffix. When the sidecar is missing and build is set,
// the index is computed from the FASTA and written next to it.
func LoadIndex(path, suffix string, build bool) ([]IndexEntry, error) {
	entries, err := ReadIndex(path, suffix)
	if err == nil || !build || !errors.Is(err, ErrIndexNotFound) {
		return entries, err
	}
	entries, err = BuildIndex(path)
	if err != nil {
		return nil, err
	}
	fh, err := os.Create(path + suffix)
	if err != nil {
		return nil, err
	}
	if err := WriteIndex(fh, entries); err != nil {
		_ = fh.Close()
		return nil, err
	}
	return entries, fh.Close()
}
