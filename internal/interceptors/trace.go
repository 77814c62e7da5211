// Package interceptors provides ready-made interp.Interceptor
// implementations for tracing and profiling evaluation, the way
// tooling built atop the interceptor protocol is expected to.
package interceptors

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"

	"github.com/profiles/metaes/internal/interp"
)

// TraceInterceptor prints an indented enter/exit line per node visit
// to w. Colorized when w is an *os.File attached to a terminal.
func TraceInterceptor(w io.Writer) interp.Interceptor {
	color := false
	if f, ok := w.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}
	depth := 0
	return func(ev interp.Evaluation) error {
		switch ev.Phase {
		case interp.PhaseEnter:
			fmt.Fprintf(w, "%s%s\n", indent(depth, color, "enter"), ev.Node.Kind())
			depth++
		case interp.PhaseExit:
			depth--
			fmt.Fprintf(w, "%s%s -> %s\n", indent(depth, color, "exit"), ev.Node.Kind(), interp.ToDisplayString(ev.Value))
		}
		return nil
	}
}

func indent(depth int, color bool, tag string) string {
	pad := strings.Repeat("  ", depth)
	if !color {
		return fmt.Sprintf("%s[%s] ", pad, tag)
	}
	code := "36"
	if tag == "exit" {
		code = "35"
	}
	return fmt.Sprintf("%s\x1b[%sm[%s]\x1b[0m ", pad, code, tag)
}
