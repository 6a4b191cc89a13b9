package hist

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/histflow/histflow/internal/constants"
)

// WriteGnuplot writes the current bin contents in a gnuplot-compatible
// format. Each bin produces two lines, one per boundary, both carrying the
// bin count; plotting the points joined by lines draws the histogram as a
// staircase:
//
//	0 2
//	2 2
//	2 1
//	4 1
//
// The output is a consistent snapshot of the histogram at the time of the
// call. Writes are buffered and flushed before returning; the writer is
// not retained afterwards.
func (h *Histogram[T]) WriteGnuplot(w io.Writer) error {
	bw := bufio.NewWriterSize(w, constants.GnuplotBufferSize)
	for _, b := range h.Snapshot() {
		if _, err := fmt.Fprintf(bw, "%v %d\n", b.Left, b.Count); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(bw, "%v %d\n", b.Right, b.Count); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// WriteGnuplotFile writes the histogram to the named file, creating or
// truncating it. The file is closed on every return path.
func (h *Histogram[T]) WriteGnuplotFile(path string) (err error) {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return h.WriteGnuplot(f)
}
