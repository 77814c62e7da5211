// Package clicfg loads the YAML configuration file the CLI reads to
// pick default interceptors, the script id strategy, and assignment
// strictness, the way ext.Config loads funxy.yaml for dependency
// bindings.
package clicfg

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Config is the top-level metaes.yaml configuration.
type Config struct {
	// Trace enables the enter/exit TraceInterceptor on every run. When
	// profiling is also enabled, the profiler is installed instead.
	Trace bool `yaml:"trace,omitempty"`

	// Profile enables the ProfilingInterceptor and prints a report
	// after the run completes.
	Profile bool `yaml:"profile,omitempty"`

	// StrictAssignment makes assignment to an undeclared identifier a
	// ReferenceError instead of creating a binding at the root frame.
	StrictAssignment bool `yaml:"strict_assignment,omitempty"`

	// ScriptIDStrategy selects how Context assigns scriptId values when
	// a caller doesn't pin one: "monotonic" (default) or "uuid".
	ScriptIDStrategy string `yaml:"script_id_strategy,omitempty"`

	// Globals lists extra name/value string pairs bound into the root
	// environment before a script runs, e.g. for passing a build tag.
	Globals map[string]string `yaml:"globals,omitempty"`
}

// Load reads and parses a metaes.yaml file.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}
	return Parse(data, path)
}

// Parse parses metaes.yaml content from bytes. path is used only for
// error messages.
func Parse(data []byte, path string) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if cfg.ScriptIDStrategy != "monotonic" && cfg.ScriptIDStrategy != "uuid" {
		return nil, fmt.Errorf("%s: script_id_strategy must be \"monotonic\" or \"uuid\", got %q", path, cfg.ScriptIDStrategy)
	}
	return cfg, nil
}

// Default returns the configuration a CLI invocation uses when no
// metaes.yaml is found.
func Default() *Config {
	return &Config{ScriptIDStrategy: "monotonic"}
}

// Find searches for metaes.yaml starting from dir and walking up to
// parent directories, similar to how ext.FindConfig locates funxy.yaml.
func Find(dir string) (string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving directory: %w", err)
	}
	for {
		for _, name := range []string{"metaes.yaml", "metaes.yml"} {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err == nil {
				return candidate, nil
			}
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", nil
		}
		dir = parent
	}
}
