package fasta

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepository_Get(t *testing.T) {
	repo := NewRepository(strings.NewReader(sample), sampleIndex)
	want := map[string]string{
		"seq1":  "ACGTACGTACGTACG",
		"seq2":  "AAAAAAAAAACC",
		"empty": "",
		"seq3":  "TT",
	}
	for name, seq := range want {
		got, err := repo.Get(name)
		require.NoError(t, err, name)
		assert.Equal(t, seq, string(got), name)
	}
	assert.Equal(t, 4, repo.Len())
}

func TestRepository_Header(t *testing.T) {
	repo := NewRepository(strings.NewReader(sample), sampleIndex)
	h, err := repo.Header("seq1")
	require.NoError(t, err)
	assert.Equal(t, "seq1 first record", h)

	h, err = repo.Header("empty")
	require.NoError(t, err)
	assert.Equal(t, "empty", h)

	rec, err := repo.Record("seq3")
	require.NoError(t, err)
	assert.Equal(t, Record{Name: "seq3", Header: "seq3 desc here", Seq: []byte("TT")}, rec)
}

func TestRepository_CRLF(t *testing.T) {
	data := ">a x\r\nACGT\r\nAC\r\n"
	repo := NewRepository(strings.NewReader(data), []IndexEntry{{Name: "a", Length: 6, Offset: 6, LineBase: 4, LineWidth: 6}})
	rec, err := repo.Record("a")
	require.NoError(t, err)
	assert.Equal(t, "a x", rec.Header)
	assert.Equal(t, "ACGTAC", string(rec.Seq))
}

func TestRepository_NotFound(t *testing.T) {
	repo := NewRepository(strings.NewReader(sample), sampleIndex)
	_, err := repo.Get("nope")
	require.ErrorIs(t, err, ErrRecordNotFound)
	assert.Contains(t, err.Error(), `"nope"`)

	_, err = repo.Header("nope")
	require.ErrorIs(t, err, ErrRecordNotFound)
}

func TestRepository_IndexDisagreesWithFile(t *testing.T) {
	// Length runs past EOF.
	repo := NewRepository(strings.NewReader(sample), []IndexEntry{{Name: "seq3", Length: 40, Offset: 79, LineBase: 2, LineWidth: 3}})
	_, err := repo.Get("seq3")
	require.ErrorIs(t, err, ErrMalformedIndex)

	// Offset does not follow a header line.
	repo = NewRepository(strings.NewReader(sample), []IndexEntry{{Name: "seq1", Length: 5, Offset: 30, LineBase: 10, LineWidth: 11}})
	_, err = repo.Header("seq1")
	require.ErrorIs(t, err, ErrMalformedIndex)
}

func TestRepository_OutOfRangeLength(t *testing.T) {
	data := ">a\nACGT\n"
	for _, length := range []uint64{1 << 62, 1<<64 - 1, 1 << 40} {
		repo := NewRepository(strings.NewReader(data), []IndexEntry{{Name: "a", Length: length, Offset: 3, LineBase: 4, LineWidth: 5}})
		require.NotPanics(t, func() {
			_, err := repo.Get("a")
			require.ErrorIs(t, err, ErrMalformedIndex)
		}, "length %d", length)
	}

	// Same check when the size comes from the opened file.
	fa := writeFile(t, "short.fa", data)
	repo, err := OpenRepository(fa, []IndexEntry{{Name: "a", Length: 1 << 62, Offset: 3, LineBase: 4, LineWidth: 5}})
	require.NoError(t, err)
	defer repo.Close()
	_, err = repo.Get("a")
	require.ErrorIs(t, err, ErrMalformedIndex)

	repo2 := NewRepository(strings.NewReader(data), []IndexEntry{{Name: "a", Length: 4, Offset: 1 << 40, LineBase: 4, LineWidth: 5}})
	_, err = repo2.Header("a")
	require.ErrorIs(t, err, ErrMalformedIndex)
}

func TestRepository_ConcurrentLookups(t *testing.T) {
	fa := writeFile(t, "x.fa", sample)
	repo, err := OpenRepository(fa, sampleIndex)
	require.NoError(t, err)
	defer repo.Close()

	var wg sync.WaitGroup
	errs := make(chan error, 64)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, e := range sampleIndex {
				rec, err := repo.Record(e.Name)
				if err != nil {
					errs <- err
					return
				}
				if uint64(len(rec.Seq)) != e.Length {
					errs <- assert.AnError
					return
				}
			}
		}()
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		t.Fatalf("concurrent lookup: %v", err)
	}
}
