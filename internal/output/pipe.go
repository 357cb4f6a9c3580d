// internal/output/pipe.go
package output

import (
	"errors"
	"io"
	"os"
	"syscall"
)

// IsBrokenPipe reports whether err means the reader of stdout went away
// (`fachunk ... | head`), in which case the run report is dropped silently.
func IsBrokenPipe(err error) bool {
	if err == nil {
		return false
	}
	var errno syscall.Errno
	if errors.As(err, &errno) {
		return errno == syscall.EPIPE
	}
	return errors.Is(err, io.ErrClosedPipe) || errors.Is(err, os.ErrClosed)
}
