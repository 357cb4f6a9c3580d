// internal/sanitize/fields.go
package sanitize

import (
	"regexp"
	"strings"
)

// Keys in output order.
const (
	KeyProteinID    = "protein_id"
	KeyGeneID       = "gene_id"
	KeyTranscriptID = "transcript_id"
	KeyGeneName     = "gene_name"
)

// Fields is the structured form of a sanitized header. Empty means absent.
type Fields struct {
	ProteinID    string
	GeneID       string
	TranscriptID string
	GeneName     string
}

// String renders present fields as "key=value;" in canonical order.
func (f Fields) String() string {
	var b strings.Builder
	seg := func(k, v string) {
		if v == "" {
			return
		}
		b.WriteString(k)
		b.WriteByte('=')
		b.WriteString(v)
		b.WriteByte(';')
	}
	seg(KeyProteinID, f.ProteinID)
	seg(KeyGeneID, f.GeneID)
	seg(KeyTranscriptID, f.TranscriptID)
	seg(KeyGeneName, f.GeneName)
	return b.String()
}

// IsZero reports whether nothing was extracted.
func (f Fields) IsZero() bool { return f == Fields{} }

// ParseFields reads a sanitized header back into Fields. Unknown keys and
// segments without '=' are ignored.
func ParseFields(s string) Fields {
	var f Fields
	for _, seg := range strings.Split(strings.TrimPrefix(s, ">"), ";") {
		k, v, ok := strings.Cut(seg, "=")
		if !ok {
			continue
		}
		switch k {
		case KeyProteinID:
			f.ProteinID = v
		case KeyGeneID:
			f.GeneID = v
		case KeyTranscriptID:
			f.TranscriptID = v
		case KeyGeneName:
			f.GeneName = v
		}
	}
	return f
}

type matcher func(string) string

// whole matches re and returns the full match.
func whole(re *regexp.Regexp) matcher {
	return func(s string) string { return re.FindString(s) }
}

// group matches re and returns its first capture group.
func group(re *regexp.Regexp) matcher {
	return func(s string) string {
		if m := re.FindStringSubmatch(s); len(m) > 1 {
			return m[1]
		}
		return ""
	}
}
