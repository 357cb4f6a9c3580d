// internal/output/report.go
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"fachunk/internal/jsonlutil"
	"fachunk/internal/pipeline"
	"fachunk/internal/version"
	"fachunk/pkg/api"
)

// Report formats.
const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
	FormatNone  = "none"
)

// TextHeader is the column line printed before text rows.
const TextHeader = "input\tstrategy\tchunk\tfile\trecords\tresidues\tbytes"

// ToAPI converts run results into the stable v1 report.
func ToAPI(results []pipeline.Result) api.RunReportV1 {
	rep := api.RunReportV1{Version: version.Version, Inputs: make([]api.InputV1, 0, len(results))}
	for _, r := range results {
		in := api.InputV1{
			Input:       r.Input,
			Strategy:    r.Strategy,
			Chunks:      make([]api.ChunkV1, 0, len(r.Chunks)),
			BareHeaders: r.Bare,
		}
		for _, c := range r.Chunks {
			in.Chunks = append(in.Chunks, api.ChunkV1{
				ID: c.ID, File: c.File, Records: c.Records, Residues: c.Residues, Bytes: c.Bytes,
			})
		}
		rep.Inputs = append(rep.Inputs, in)
	}
	return rep
}

// WriteText prints one TSV row per chunk.
func WriteText(w io.Writer, results []pipeline.Result, header bool) error {
	if header {
		if _, err := fmt.Fprintln(w, TextHeader); err != nil {
			return err
		}
	}
	for _, r := range results {
		for _, c := range r.Chunks {
			_, err := fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%d\t%d\t%d\n",
				r.Input, r.Strategy, c.ID, c.File, c.Records, c.Residues, c.Bytes)
			if err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteJSON prints the v1 report as one indented document.
func WriteJSON(w io.Writer, results []pipeline.Result) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(ToAPI(results))
}

// Lines flattens one result into its jsonl rows.
func Lines(r pipeline.Result) []api.ChunkLineV1 {
	out := make([]api.ChunkLineV1, 0, len(r.Chunks))
	for _, c := range r.Chunks {
		out = append(out, api.ChunkLineV1{
			Input:    r.Input,
			Strategy: r.Strategy,
			ChunkV1:  api.ChunkV1{ID: c.ID, File: c.File, Records: c.Records, Residues: c.Residues, Bytes: c.Bytes},
		})
	}
	return out
}

// StartJSONL starts a streaming jsonl writer on w. Send each finished input's
// result, close the channel, then wait on the error channel.
func StartJSONL(w io.Writer) (chan<- pipeline.Result, <-chan error) {
	return jsonlutil.Start[pipeline.Result](w, 16, func(enc *json.Encoder, r pipeline.Result) error {
		for _, l := range Lines(r) {
			if err := enc.Encode(l); err != nil {
				return err
			}
		}
		return nil
	}, IsBrokenPipe)
}

// Write dispatches on format; "none" writes nothing.
func Write(format string, w io.Writer, results []pipeline.Result, header bool) error {
	switch format {
	case FormatText:
		return WriteText(w, results, header)
	case FormatJSON:
		return WriteJSON(w, results)
	case FormatJSONL:
		in, done := StartJSONL(w)
		for _, r := range results {
			in <- r
		}
		close(in)
		return <-done
	case FormatNone:
		return nil
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}
