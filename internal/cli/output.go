package cli

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/jmylchreest/nightowl/internal/colour"
)

// isTerminal reports whether w is a terminal. Anything other than an
// *os.File (buffers in tests, pipes wrapped by cobra) is not.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// printPalette writes the role mapping summary, one line per role.
func printPalette(w io.Writer, p *colour.Palette, swatches bool) {
	fmt.Fprintln(w, "Generated colour mapping:")
	for _, e := range p.Entries() {
		line := colour.FormatEntry(e, swatches)
		if e.Synthesized {
			line += " (synthesized)"
		}
		fmt.Fprintf(w, "  %s\n", line)
	}
}
