package clicfg

import (
	"os"
	"path/filepath"
	"testing"
)

func TestParseAppliesDefaultsAndOverrides(t *testing.T) {
	data := []byte("trace: true\nstrict_assignment: true\nglobals:\n  env: production\n")
	cfg, err := Parse(data, "metaes.yaml")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Trace || !cfg.StrictAssignment {
		t.Fatalf("got %+v, want trace and strict_assignment true", cfg)
	}
	if cfg.ScriptIDStrategy != "monotonic" {
		t.Fatalf("got script id strategy %q, want the default \"monotonic\"", cfg.ScriptIDStrategy)
	}
	if cfg.Globals["env"] != "production" {
		t.Fatalf("got globals=%v, want env=production", cfg.Globals)
	}
}

func TestParseRejectsUnknownScriptIDStrategy(t *testing.T) {
	_, err := Parse([]byte("script_id_strategy: sequential\n"), "metaes.yaml")
	if err == nil {
		t.Fatalf("expected an error for an unknown script_id_strategy")
	}
}

func TestFindWalksUpToParentDirectories(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "metaes.yaml")
	if err := os.WriteFile(configPath, []byte("trace: true\n"), 0o644); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	nested := filepath.Join(dir, "a", "b")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	found, err := Find(nested)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found != configPath {
		t.Fatalf("got %q, want %q", found, configPath)
	}
}
