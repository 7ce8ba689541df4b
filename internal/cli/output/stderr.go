package output

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// ErrorLine writes "error: msg" as a single line to w, in red when w is a
// terminal.
func ErrorLine(w io.Writer, msg string) {
	red := color.New(color.FgRed)
	if isTerminal(w) {
		red.EnableColor()
	} else {
		red.DisableColor()
	}
	fmt.Fprintln(w, red.Sprint("error: "+msg))
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
