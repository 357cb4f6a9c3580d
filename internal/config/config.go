// Package config holds run settings shared by the CLI and the pipeline, and
// loads optional YAML defaults for them.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/biogo/biogo/alphabet"
	"gopkg.in/yaml.v3"
)

// DataType is the kind of sequence in the input; it names the output
// subdirectory and picks the residue alphabet.
type DataType string

const (
	DataPep  DataType = "pep"
	DataCDNA DataType = "cdna"
	DataCDS  DataType = "cds"
	DataRNA  DataType = "rna"
)

// ParseDataType accepts the short names plus the long spellings used in
// pipeline configs (peptide, cDNA, CDS, RNA).
func ParseDataType(s string) (DataType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pep", "peptide", "protein":
		return DataPep, nil
	case "cdna":
		return DataCDNA, nil
	case "cds":
		return DataCDS, nil
	case "rna":
		return DataRNA, nil
	default:
		return "", fmt.Errorf("invalid data type %q (want pep | cdna | cds | rna)", s)
	}
}

// Alphabet is the biogo alphabet used when reading and writing records.
func (d DataType) Alphabet() alphabet.Alphabet {
	switch d {
	case DataPep:
		return alphabet.Protein
	case DataRNA:
		return alphabet.RNA
	default:
		return alphabet.DNA
	}
}

// File mirrors the long CLI flags. Pointer fields distinguish "unset" from
// an explicit false/zero.
type File struct {
	Strategy    string   `yaml:"strategy"`
	ChunkSize   uint64   `yaml:"chunk_size"`
	DataType    string   `yaml:"data_type"`
	Origin      string   `yaml:"origin"`
	Sanitize    *bool    `yaml:"sanitize"`
	OutDir      string   `yaml:"outdir"`
	IndexSuffix string   `yaml:"index_suffix"`
	BuildIndex  *bool    `yaml:"build_index"`
	Threads     *int     `yaml:"threads"`
	LineWidth   int      `yaml:"line_width"`
	Output      string   `yaml:"output"`
	Quiet       *bool    `yaml:"quiet"`
	Inputs      []string `yaml:"inputs"`
}

// Load decodes a YAML config. Unknown keys are rejected; an empty file is
// an empty config.
func Load(path string) (File, error) {
	var f File
	fh, err := os.Open(path)
	if err != nil {
		return f, err
	}
	defer fh.Close()
	dec := yaml.NewDecoder(fh)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return f, fmt.Errorf("config %s: %w", path, err)
	}
	return f, nil
}
