// internal/sanitize/ensembl.go
package sanitize

import (
	"regexp"
	"strings"
)

// Stable IDs are ENS + species code + feature letter + digits, optionally versioned.
// Captured values never contain ';' or '=' so rendered headers parse back.
var (
	ensProteinRE    = regexp.MustCompile(`ENS[A-Z]*P\d+(?:\.\d+)?`)
	ensGeneRE       = regexp.MustCompile(`ENS[A-Z]*G\d+(?:\.\d+)?`)
	ensTranscriptRE = regexp.MustCompile(`ENS[A-Z]*T\d+(?:\.\d+)?`)
	ensGeneLabelRE  = regexp.MustCompile(`\bgene:([^\s;=]+)`)
	ensTransLabelRE = regexp.MustCompile(`\btranscript:([^\s;=]+)`)

	ensProtein    = []matcher{whole(ensProteinRE)}
	ensGene       = []matcher{whole(ensGeneRE), group(ensGeneLabelRE)}
	ensTranscript = []matcher{whole(ensTranscriptRE), group(ensTransLabelRE)}
)

type ensembl struct{}

func (ensembl) Origin() Origin { return OriginEnsembl }

func (ensembl) Extract(header string) Fields {
	header = strings.TrimPrefix(header, ">")
	return Fields{
		ProteinID:    firstMatch(header, ensProtein...),
		GeneID:       firstMatch(header, ensGene...),
		TranscriptID: firstMatch(header, ensTranscript...),
		GeneName:     pipeGeneName(header),
	}
}

func (e ensembl) Sanitize(header string) string { return e.Extract(header).String() }

// pipeGeneName reads the gene symbol from gffread/biomart style headers:
// prot|tran|gene|havana_gene|havana_tran|tran_name|gene_name|length.
func pipeGeneName(header string) string {
	f := strings.Split(header, "|")
	if len(f) <= 3 {
		return ""
	}
	v := strings.TrimSpace(f[len(f)-2])
	if v == "-" || strings.ContainsAny(v, ";=") {
		return ""
	}
	return v
}
