package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultIsRunnable(t *testing.T) {
	cfg := Default()
	if cfg.Server.BindAddress == "" {
		t.Fatal("expected a default bind address")
	}
	if cfg.Trainer.PartySlots <= 0 {
		t.Fatal("expected a positive default party size")
	}
	if cfg.Queue.SIOQueueSize <= 0 {
		t.Fatal("expected a positive SIO queue size")
	}
}

func TestLoadOverlaysDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "server.toml")
	contents := `
[server]
bind_address = "0.0.0.0:9999"

[trainer]
name = "ASH"
`
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Server.BindAddress != "0.0.0.0:9999" {
		t.Fatalf("expected overridden bind address, got %q", cfg.Server.BindAddress)
	}
	if cfg.Trainer.Name != "ASH" {
		t.Fatalf("expected overridden trainer name, got %q", cfg.Trainer.Name)
	}
	// fields not present in the TOML keep their defaults.
	if cfg.Queue.SIOQueueSize != defaults().Queue.SIOQueueSize {
		t.Fatalf("expected default SIO queue size to survive partial overlay")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load("/nonexistent/server.toml"); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
