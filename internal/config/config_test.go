package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	c, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if c.Addr != ":3000" || c.Store != "file" || c.StorePath != "canvas.json" {
		t.Fatalf("defaults not applied: %+v", c)
	}
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "addr: \":9999\"\nstore: sqlite\nmdns: true\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.Addr != ":9999" || !c.MDNS {
		t.Fatalf("loaded %+v", c)
	}
	if c.Store != "sqlite" || c.StorePath != "canvas.db" {
		t.Fatalf("sqlite default path not applied: %+v", c)
	}
}

func TestLoadRejectsUnknownBackend(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("store: redis\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Fatal("unknown backend must be rejected")
	}
}
