package cmdutil

import (
	"context"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"

	"fachunk/internal/pipeline"
)

// RunInputs splits each input in order with cfg, passes each result to send,
// and reports progress on stderr. It stops at the first failing input; the
// partial result of that input is still sent when it wrote any chunks.
// It returns the number of inputs fully processed.
func RunInputs(
	ctx context.Context,
	cfg pipeline.Config,
	inputs []string,
	stderr io.Writer,
	quiet bool,
	send func(pipeline.Result) error,
) (int, error) {
	total := 0
	for _, in := range inputs {
		if err := ctx.Err(); err != nil {
			return total, err
		}
		origin := "headers kept"
		if cfg.Sanitizer != nil {
			origin = "sanitizing " + string(cfg.Sanitizer.Origin()) + " headers"
		}
		Infof(stderr, quiet, "%s: %s, chunk size %s, %s", in, cfg.Strategy, humanize.Comma(int64(cfg.ChunkSize)), origin)
		res, err := pipeline.Split(ctx, cfg, in)
		if err != nil {
			if len(res.Chunks) > 0 {
				if sErr := send(res); sErr != nil {
					return total, sErr
				}
			}
			return total, fmt.Errorf("%s: %w", in, err)
		}
		if err := send(res); err != nil {
			return total, err
		}
		total++
		Infof(stderr, quiet, "%s: %s records, %s residues in %d file(s), %s written",
			in,
			humanize.Comma(int64(res.Records())),
			humanize.Comma(int64(res.Residues())),
			len(res.Chunks),
			humanize.Bytes(uint64(res.Bytes())))
		if res.Bare > 0 {
			Warnf(stderr, quiet, "%s: %d header(s) had no extractable metadata; kept record name", in, res.Bare)
		}
	}
	return total, nil
}
