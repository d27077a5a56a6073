package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Panel.Listen != ":3000" {
		t.Fatalf("listen=%q", cfg.Panel.Listen)
	}
	if !cfg.WhatsApp.Enabled {
		t.Fatal("whatsapp should default to enabled")
	}
	if cfg.Store.Path == "" || cfg.WhatsApp.DBPath == "" {
		t.Fatal("state paths should have defaults")
	}
}

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.json"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Panel.Listen != ":3000" {
		t.Fatalf("listen=%q", cfg.Panel.Listen)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	data := `{"panel":{"listen":":8080"},"store":{"path":"/tmp/c.json"}}`
	if err := os.WriteFile(path, []byte(data), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Panel.Listen != ":8080" {
		t.Fatalf("listen=%q", cfg.Panel.Listen)
	}
	if cfg.Store.Path != "/tmp/c.json" {
		t.Fatalf("store path=%q", cfg.Store.Path)
	}
	// Untouched sections keep defaults.
	if !cfg.WhatsApp.Enabled || cfg.WhatsApp.DBPath == "" {
		t.Fatalf("whatsapp defaults lost: %+v", cfg.WhatsApp)
	}
}

func TestLoad_CorruptFileIsError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte("{"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("expected error for corrupt config")
	}
}
