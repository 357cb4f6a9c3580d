// pkg/api/report_v1.go
package api

// ChunkV1 is the stable JSON schema for one written chunk file.
// Keep fields, names, and types stable. Add new fields only with ",omitempty".
type ChunkV1 struct {
	ID       int    `json:"id"`
	File     string `json:"file"`
	Records  int    `json:"records"`
	Residues uint64 `json:"residues"`
	Bytes    int64  `json:"bytes"`
}

// InputV1 reports the chunks produced from one input file.
type InputV1 struct {
	Input       string    `json:"input"`
	Strategy    string    `json:"strategy"` // "binpack" | "stream" | "count"
	Chunks      []ChunkV1 `json:"chunks"`
	BareHeaders int       `json:"bare_headers,omitempty"`
}

// RunReportV1 is the top-level document printed by --output json.
type RunReportV1 struct {
	Version string    `json:"version"`
	Inputs  []InputV1 `json:"inputs"`
}

// ChunkLineV1 is one line of --output jsonl: a chunk tagged with its input.
type ChunkLineV1 struct {
	Input    string `json:"input"`
	Strategy string `json:"strategy"`
	ChunkV1
}
