package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"strings"

	"golang.org/x/term"

	"github.com/histflow/histflow/internal/constants"
	"github.com/histflow/histflow/pkg/hist"
)

// isTerminal reports whether stdout is attached to a terminal.
func isTerminal() bool {
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// writeGraph renders an ascii bar graph of a histogram snapshot. Empty
// bins are skipped and bars are scaled to the fullest bin.
//
// For example:
//	latency (42 samples, 3 discarded)
//	[0 - 2)         12   28.57% ################
//	[2 - 4)         21   50.00% ########################################
//	[4 - 6)          9   21.43% #################
func writeGraph(w io.Writer, name string, bins []hist.Bin, total, discarded uint64) {
	var maxCount uint64
	ranges := make([]string, len(bins))
	longestRange := 0

	for i, b := range bins {
		if b.Count > maxCount {
			maxCount = b.Count
		}
		ranges[i] = fmt.Sprintf("[%v - %v)", b.Left, b.Right)
		if b.Count > 0 && len(ranges[i]) > longestRange {
			longestRange = len(ranges[i])
		}
	}

	fmt.Fprintf(w, "%s (%d samples, %d discarded)\n", name, total, discarded)

	for i, b := range bins {
		if b.Count == 0 {
			continue
		}

		padding := strings.Repeat(" ", longestRange-len(ranges[i]))
		fmt.Fprintf(w, "%s %s%10d %8.2f%%", ranges[i], padding, b.Count,
			100.0*float64(b.Count)/float64(total))

		barWant := int(math.Floor(constants.DefaultGraphWidth * (float64(b.Count) / float64(maxCount))))
		fmt.Fprintf(w, " %s\n", strings.Repeat("#", barWant))
	}
}
