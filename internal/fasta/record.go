// internal/fasta/record.go
package fasta

import "strings"

// Record is one FASTA entry. Header is the definition line without '>'.
type Record struct {
	Name   string
	Header string
	Seq    []byte
}

// NameOf returns the first whitespace-delimited token of a definition line.
func NameOf(header string) string {
	header = strings.TrimPrefix(header, ">")
	if f := strings.Fields(header); len(f) > 0 {
		return f[0]
	}
	return ""
}
