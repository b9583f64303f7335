package typedstream_test

import (
	"os"
	"path/filepath"
	"testing"

	ts "github.com/dgelessus-go/typedstream"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := ts.LoadConfig(filepath.Join(t.TempDir(), "missing.yml"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Strict != false || cfg.Color != true || cfg.Indent != 2 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
}

func TestLoadConfigYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte("strict: true\nindent: 4\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := ts.LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !cfg.Strict {
		t.Errorf("expected strict true, got false")
	}
	if cfg.Indent != 4 {
		t.Errorf("expected indent 4, got %d", cfg.Indent)
	}
}

func TestLoadConfigEnvOverridesYAML(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yml")
	if err := os.WriteFile(path, []byte("indent: 4\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv("TYPEDSTREAM_INDENT", "8")
	cfg, err := ts.LoadConfig(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Indent != 8 {
		t.Errorf("expected env override indent 8, got %d", cfg.Indent)
	}
}
