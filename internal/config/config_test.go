package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Log.Level != "info" || cfg.Log.Format != "json" {
		t.Errorf("unexpected log defaults: %+v", cfg.Log)
	}
	if cfg.Server.Listen != "127.0.0.1:8471" {
		t.Errorf("unexpected listen default: %q", cfg.Server.Listen)
	}
}

func TestLoadYAML(t *testing.T) {
	path := writeFile(t, "egressgate.yaml", `
log:
  level: debug
  format: text
server:
  listen: 0.0.0.0:9000
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Log.Level != "debug" || cfg.Log.Format != "text" {
		t.Errorf("unexpected log config: %+v", cfg.Log)
	}
	if cfg.Server.Listen != "0.0.0.0:9000" {
		t.Errorf("unexpected listen: %q", cfg.Server.Listen)
	}
}

func TestLoadJSON5(t *testing.T) {
	path := writeFile(t, "egressgate.json5", `{
  // comments are allowed in json5
  log: {level: "warn"},
}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Log.Level != "warn" {
		t.Errorf("level = %q, want warn", cfg.Log.Level)
	}
	if cfg.Log.Format != "json" {
		t.Errorf("format should default to json, got %q", cfg.Log.Format)
	}
}

func TestLoadExpandsEnv(t *testing.T) {
	t.Setenv("EGRESSGATE_LISTEN", "127.0.0.1:7777")
	path := writeFile(t, "egressgate.yaml", `
server:
  listen: ${EGRESSGATE_LISTEN}
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.Listen != "127.0.0.1:7777" {
		t.Errorf("listen = %q, want env-expanded value", cfg.Server.Listen)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad level", "log:\n  level: loud\n"},
		{"bad format", "log:\n  format: xml\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeFile(t, "egressgate.yaml", tt.content)
			if _, err := Load(path); err == nil {
				t.Error("expected an error")
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Error("expected an error for a missing file")
	}
}
