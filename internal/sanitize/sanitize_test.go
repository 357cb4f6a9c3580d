package sanitize

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustNew(t *testing.T, o Origin) Sanitizer {
	t.Helper()
	s, err := New(o)
	require.NoError(t, err)
	return s
}

func TestEnsembl_LabeledHeader(t *testing.T) {
	s := mustNew(t, OriginEnsembl)
	got := s.Sanitize(">ENSMUSP00000070648.5 gene:ENSMUSG00000051951.6 transcript:ENSMUST00000070533.5")
	assert.Equal(t, "protein_id=ENSMUSP00000070648.5;gene_id=ENSMUSG00000051951.6;transcript_id=ENSMUST00000070533.5;", got)
}

func TestEnsembl_PipeHeaderGivesGeneName(t *testing.T) {
	s := mustNew(t, OriginEnsembl)
	got := s.Extract(">ENSMUSP00000137363.3|ENSMUST00000178446.3|ENSMUSG00000096178.8|OTTMUSG00000047352.1|-|Gm20837-201|Gm20837|222")
	assert.Equal(t, Fields{
		ProteinID:    "ENSMUSP00000137363.3",
		GeneID:       "ENSMUSG00000096178.8",
		TranscriptID: "ENSMUST00000178446.3",
		GeneName:     "Gm20837",
	}, got)
}

func TestEnsembl_FewPipesOmitGeneName(t *testing.T) {
	s := mustNew(t, OriginEnsembl)
	got := s.Extract("ENSP00000354587.3|ENST00000361390.2|ENSG00000198888.2")
	assert.Empty(t, got.GeneName)
	assert.Equal(t, "ENSG00000198888.2", got.GeneID)

	got = s.Extract("ENSP1|ENST1|ENSG1|x|-|y")
	assert.Empty(t, got.GeneName, "dash placeholder is not a name")
}

func TestEnsembl_LabelFallback(t *testing.T) {
	s := mustNew(t, OriginEnsembl)
	got := s.Extract("AT1G01010.1 pep chromosome:TAIR10:1:3631:5899:1 gene:AT1G01010 transcript:AT1G01010.1 gene_biotype:protein_coding")
	assert.Equal(t, Fields{GeneID: "AT1G01010", TranscriptID: "AT1G01010.1"}, got)
	assert.Equal(t, "gene_id=AT1G01010;transcript_id=AT1G01010.1;", got.String())
}

func TestEnsembl_SpeciesCodeContainingFeatureLetters(t *testing.T) {
	s := mustNew(t, OriginEnsembl)
	got := s.Extract("ENSGALP00010000001.1 gene:ENSGALG00010000002.1 transcript:ENSGALT00010000003.1")
	assert.Equal(t, "ENSGALP00010000001.1", got.ProteinID)
	assert.Equal(t, "ENSGALG00010000002.1", got.GeneID)
	assert.Equal(t, "ENSGALT00010000003.1", got.TranscriptID)
}

func TestNCBI_AccessionBeatsBracketFallback(t *testing.T) {
	s := mustNew(t, OriginNCBI)
	got := s.Extract(">XP_001234567.1 some protein [organism] [protein_id=ABC123.1]")
	assert.Equal(t, "XP_001234567.1", got.ProteinID)
	assert.Equal(t, "protein_id=XP_001234567.1;", s.Sanitize(">XP_001234567.1 some protein [organism] [protein_id=ABC123.1]"))
}

func TestNCBI_BracketedCDSHeader(t *testing.T) {
	s := mustNew(t, OriginNCBI)
	h := "lcl|NC_000001.11_cds_NP_001005484.2_1 [gene=OR4F5] [db_xref=CCDS:CCDS30547.2,GeneID:79501] [protein=olfactory receptor 4F5] [protein_id=NP_001005484.2] [location=join(65565..65573,69037..70008)] [gbkey=CDS]"
	got := s.Extract(h)
	assert.Equal(t, Fields{ProteinID: "NP_001005484.2", GeneID: "79501", GeneName: "OR4F5"}, got)
}

func TestNCBI_Transcript(t *testing.T) {
	s := mustNew(t, OriginNCBI)
	got := s.Extract("NM_001005484.2 Homo sapiens olfactory receptor family 4 (OR4F5), mRNA")
	assert.Equal(t, Fields{TranscriptID: "NM_001005484.2"}, got)
}

func TestSanitize_MissesAreEmptyNotErrors(t *testing.T) {
	for _, o := range []Origin{OriginEnsembl, OriginNCBI} {
		s := mustNew(t, o)
		assert.Equal(t, "", s.Sanitize(">contig_1 nothing to see"), string(o))
		assert.True(t, s.Extract("contig_1").IsZero())
	}
}

func TestSanitize_RoundTrip(t *testing.T) {
	headers := map[Origin][]string{
		OriginEnsembl: {
			"ENSMUSP00000070648.5 gene:ENSMUSG00000051951.6 transcript:ENSMUST00000070533.5",
			"ENSMUSP00000137363.3|ENSMUST00000178446.3|ENSMUSG00000096178.8|OTTMUSG00000047352.1|-|Gm20837-201|Gm20837|222",
			"X gene:G1",
			"nothing",
		},
		OriginNCBI: {
			"XP_001234567.1 some protein [gene=abc]",
			"lcl|x [protein_id=NP_1.1] [db_xref=GeneID:42]",
			"nothing",
		},
	}
	for o, list := range headers {
		s := mustNew(t, o)
		for _, h := range list {
			want := s.Extract(h)
			assert.Equal(t, want, ParseFields(s.Sanitize(h)), h)
			assert.NotContains(t, s.Sanitize(h), "=;", "no placeholder values")
		}
	}
}

func TestSanitize_SeparatorsNeverCaptured(t *testing.T) {
	ens := mustNew(t, OriginEnsembl)
	f := ens.Extract("X gene:G1;gene_name=evil transcript:T1=x")
	assert.Equal(t, Fields{GeneID: "G1", TranscriptID: "T1"}, f)
	f = ens.Extract("P|T|G|H|HT|tn|na;me|9")
	assert.Empty(t, f.GeneName)

	ncbi := mustNew(t, OriginNCBI)
	f = ncbi.Extract("lcl|x [gene=a;b] [protein_id=P=1] [transcript_id=T;1]")
	assert.True(t, f.IsZero(), "%+v", f)
	f = ncbi.Extract("lcl|x [gene=two words]")
	assert.Equal(t, "two words", f.GeneName)

	for _, h := range []string{
		"X gene:G1;gene_name=evil transcript:T1=x",
		"P|T|G|H|HT|tn|na;me|9",
	} {
		assert.Equal(t, ens.Extract(h), ParseFields(ens.Sanitize(h)), h)
	}
	h := "lcl|x [gene=a;b] [gene=ok]"
	assert.Equal(t, ncbi.Extract(h), ParseFields(ncbi.Sanitize(h)), h)
}

func TestNew_UnsupportedOrigin(t *testing.T) {
	_, err := New(OriginOther)
	require.True(t, errors.Is(err, ErrUnsupportedOrigin))
	_, err = New("genbank")
	require.ErrorIs(t, err, ErrUnsupportedOrigin)
}

func TestParseOrigin(t *testing.T) {
	o, err := ParseOrigin(" NCBI ")
	require.NoError(t, err)
	assert.Equal(t, OriginNCBI, o)
	_, err = ParseOrigin("refseq")
	assert.ErrorIs(t, err, ErrUnsupportedOrigin)
}
