// Package hostenv installs the host globals interpreted programs
// expect to find already bound in their root frame: the console, Math
// and JSON objects. It only imports internal/interp, never the
// reverse, keeping container types (Array, Record, HostFunc) owned by
// interp itself.
package hostenv

import (
	"fmt"
	"io"

	"github.com/profiles/metaes/internal/interp"
)

// Install binds every host global this package defines into root,
// the way a teacher's builtins installer walks a fixed table of
// names and calls env.Set for each.
func Install(root *interp.Environment, stdout io.Writer) {
	root.Define("console", newConsole(stdout))
	root.Define("Math", newMathObject())
	root.Define("JSON", newJSONObject())
}

func newConsole(stdout io.Writer) interp.Value {
	console := interp.NewRecord()
	logFn := func(this interp.Value, args []interp.Value) (interp.Value, error) {
		parts := make([]interface{}, len(args))
		for i, a := range args {
			parts[i] = interp.ToDisplayString(a)
		}
		fmt.Fprintln(stdout, parts...)
		return interp.Undefined(), nil
	}
	console.SetProperty(interp.String("log"), interp.NewHostFunc("console.log", logFn))
	console.SetProperty(interp.String("error"), interp.NewHostFunc("console.error", logFn))
	return interp.FromHost(console)
}
