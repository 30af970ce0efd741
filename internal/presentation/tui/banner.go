package tui

import (
	"fmt"
	"io"

	"github.com/muesli/termenv"
)

// PrintStatus writes a one-line check result, coloured when w supports it.
func PrintStatus(w io.Writer, ok bool, msg string) {
	out := termenv.NewOutput(w)
	mark := out.String("✔").Foreground(out.Color("#22c55e"))
	if !ok {
		mark = out.String("✘").Foreground(out.Color("#ef4444"))
	}
	fmt.Fprintf(w, "%s %s\n", mark, msg)
}
