// internal/fasta/errors.go
package fasta

import "errors"

var (
	// ErrIndexNotFound is returned when the sidecar index does not exist.
	ErrIndexNotFound = errors.New("index not found")

	// ErrMalformedIndex is returned when an index row cannot be decoded, or
	// when the index disagrees with the FASTA it describes.
	ErrMalformedIndex = errors.New("malformed index")

	// ErrRecordNotFound is returned for a lookup of a name absent from the index.
	ErrRecordNotFound = errors.New("record not found")

	// ErrNoRecords is returned when a FASTA file holds no header/sequence pairs.
	ErrNoRecords = errors.New("no FASTA records")

	// ErrDuplicateName is returned when two records share a name.
	ErrDuplicateName = errors.New("duplicate record name")
)
