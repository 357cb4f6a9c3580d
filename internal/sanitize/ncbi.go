// internal/sanitize/ncbi.go
package sanitize

import (
	"regexp"
	"strings"
)

var (
	ncbiProteinRE    = regexp.MustCompile(`\b[NX]P_\d+(?:\.\d+)?`)
	ncbiTranscriptRE = regexp.MustCompile(`\b[NX]M_\d+(?:\.\d+)?`)
	ncbiProteinTagRE = regexp.MustCompile(`\[protein_id=([^\]\s;=]+)\]`)
	ncbiTransTagRE   = regexp.MustCompile(`\[transcript_id=([^\]\s;=]+)\]`)
	ncbiGeneTagRE    = regexp.MustCompile(`\[gene=([^\];=]+)\]`)
	ncbiGeneIDTagRE  = regexp.MustCompile(`\[db_xref=[^\]]*\bGeneID:(\d+)`)

	ncbiProtein    = []matcher{whole(ncbiProteinRE), group(ncbiProteinTagRE)}
	ncbiTranscript = []matcher{whole(ncbiTranscriptRE), group(ncbiTransTagRE)}
	ncbiGeneName   = []matcher{group(ncbiGeneTagRE)}
	ncbiGeneID     = []matcher{group(ncbiGeneIDTagRE)}
)

type ncbi struct{}

func (ncbi) Origin() Origin { return OriginNCBI }

func (ncbi) Extract(header string) Fields {
	header = strings.TrimPrefix(header, ">")
	return Fields{
		ProteinID:    firstMatch(header, ncbiProtein...),
		GeneID:       firstMatch(header, ncbiGeneID...),
		TranscriptID: firstMatch(header, ncbiTranscript...),
		GeneName:     strings.TrimSpace(firstMatch(header, ncbiGeneName...)),
	}
}

func (n ncbi) Sanitize(header string) string { return n.Extract(header).String() }
