package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/profiles/metaes/internal/clicfg"
	"github.com/profiles/metaes/internal/hostenv"
	"github.com/profiles/metaes/internal/interceptors"
	"github.com/profiles/metaes/internal/interp"
)

var (
	evalExpr         string
	trace            bool
	profile          bool
	strictAssignment bool
	configPath       string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a program from a file or inline expression",
	Long: `Execute a program from a file or inline expression.

Examples:
  # Run a script file
  metaes run script.mes

  # Evaluate an inline expression
  metaes run -e "2 + 2"

  # Run with an execution trace
  metaes run --trace script.mes`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline source instead of reading from file")
	runCmd.Flags().BoolVar(&trace, "trace", false, "trace every node enter/exit")
	runCmd.Flags().BoolVar(&profile, "profile", false, "print per-node-kind timing after the run")
	runCmd.Flags().BoolVar(&strictAssignment, "strict", false, "treat assignment to an undeclared identifier as a ReferenceError")
	runCmd.Flags().StringVar(&configPath, "config", "", "path to metaes.yaml (searched upward from cwd if omitted)")
}

func runScript(_ *cobra.Command, args []string) error {
	var source, label string
	switch {
	case evalExpr != "":
		source, label = evalExpr, "<eval>"
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("reading %s: %w", args[0], err)
		}
		source, label = string(content), args[0]
	default:
		return fmt.Errorf("either provide a file path or use -e for inline source")
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	root := interp.NewEnvironment()
	hostenv.Install(root, os.Stdout)

	var profiler *interceptors.Profiler
	evalCfg := interp.EvaluationConfig{StrictAssignment: cfg.StrictAssignment || strictAssignment}
	switch {
	case (cfg.Profile || profile):
		profiler, evalCfg.Interceptor = interceptors.NewProfiler()
	case (cfg.Trace || trace):
		evalCfg.Interceptor = interceptors.TraceInterceptor(os.Stderr)
	}

	for name, value := range cfg.Globals {
		root.Define(name, interp.String(value))
	}

	ctx := interp.NewContext(root, evalCfg)
	if cfg.ScriptIDStrategy == "uuid" {
		ctx.WithScriptIDStrategy(interp.UUIDScriptIDs())
	}

	if verbose {
		fmt.Fprintf(os.Stderr, "running %s\n", label)
	}

	var result interp.Value
	var failure *interp.ExceptionPacket
	ctx.Evaluate(source, func(v interp.Value) { result = v }, func(pkt *interp.ExceptionPacket) { failure = pkt }, nil, interp.EvaluationConfig{})

	if profiler != nil {
		profiler.Report(os.Stderr)
	}

	if failure != nil {
		return fmt.Errorf("%s: %s: %s", label, failure.Type, interp.ToDisplayString(failure.Value))
	}

	fmt.Println(interp.ToDisplayString(result))
	return nil
}

func loadConfig() (*clicfg.Config, error) {
	path := configPath
	if path == "" {
		found, err := clicfg.Find(".")
		if err != nil {
			return nil, err
		}
		path = found
	}
	if path == "" {
		return clicfg.Default(), nil
	}
	return clicfg.Load(path)
}
